package broker

import (
	"sync"

	"frota-service/internal/model"
)

// Event é o que trafega do propagador de atribuições até os assinantes do
// stream (WebSocket por funcionário, ponte Redis entre instâncias).
type Event struct {
	Type         string             `json:"type"`
	Notification model.Notification `json:"notification"`
}

// Broker é um pub/sub em memória por funcionário. Substitui os eventos de
// storage entre abas do painel antigo: mutações publicam, streams assinam.
type Broker struct {
	mu   sync.Mutex
	subs map[string]map[chan Event]struct{}
}

func New() *Broker {
	return &Broker{subs: map[string]map[chan Event]struct{}{}}
}

func (b *Broker) Subscribe(employeeID string) chan Event {
	ch := make(chan Event, 8)
	b.mu.Lock()
	if b.subs[employeeID] == nil {
		b.subs[employeeID] = map[chan Event]struct{}{}
	}
	b.subs[employeeID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(employeeID string, ch chan Event) {
	b.mu.Lock()
	if m := b.subs[employeeID]; m != nil {
		delete(m, ch)
		if len(m) == 0 {
			delete(b.subs, employeeID)
		}
	}
	b.mu.Unlock()
	close(ch)
}

// Publish entrega sem bloquear; assinante lento perde o evento e recupera o
// estado pelo endpoint REST.
func (b *Broker) Publish(employeeID string, evt Event) {
	b.mu.Lock()
	for ch := range b.subs[employeeID] {
		select {
		case ch <- evt:
		default:
		}
	}
	b.mu.Unlock()
}
