package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"frota-service/internal/http/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// O token já foi validado pelo middleware; a checagem de origem fica a
	// cargo do CORS da borda.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const pingInterval = 30 * time.Second

// notificationStream mantém uma conexão WebSocket por funcionário e repassa
// os eventos do broker. Substitui o polling do painel antigo.
func (h *Handler) notificationStream(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer func() { _ = conn.Close() }()

	ch := h.events.Subscribe(principal.EmployeeID)
	defer h.events.Unsubscribe(principal.EmployeeID, ch)

	// Leitor dedicado: descarta o que o cliente mandar e detecta desconexão.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case evt, open := <-ch:
			if !open {
				return
			}
			if err := conn.WriteJSON(evt); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
