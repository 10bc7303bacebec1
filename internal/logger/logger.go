package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New devolve o logger raiz do serviço. Em produção a saída é JSON nível
// info; em desenvolvimento, console colorido nível debug.
func New(environment string) zerolog.Logger {
	if environment == "production" {
		return zerolog.New(os.Stdout).
			Level(zerolog.InfoLevel).
			With().
			Timestamp().
			Str("service", "frota-service").
			Logger()
	}

	writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	return zerolog.New(writer).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Logger()
}
