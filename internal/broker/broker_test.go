package broker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frota-service/internal/model"
)

func TestBrokerPublishReachesSubscriber(t *testing.T) {
	b := New()

	ch := b.Subscribe("emp-1")
	defer b.Unsubscribe("emp-1", ch)

	evt := Event{Type: "atribuicao_entrega", Notification: model.Notification{ID: "n1"}}
	b.Publish("emp-1", evt)

	select {
	case got := <-ch:
		assert.Equal(t, "n1", got.Notification.ID)
	default:
		t.Fatal("expected event on subscriber channel")
	}
}

func TestBrokerPublishIsScopedToEmployee(t *testing.T) {
	b := New()

	mine := b.Subscribe("emp-1")
	defer b.Unsubscribe("emp-1", mine)
	other := b.Subscribe("emp-2")
	defer b.Unsubscribe("emp-2", other)

	b.Publish("emp-1", Event{Type: "x"})

	assert.Len(t, mine, 1)
	assert.Empty(t, other)
}

func TestBrokerFanOutToMultipleSubscribers(t *testing.T) {
	b := New()

	a := b.Subscribe("emp-1")
	defer b.Unsubscribe("emp-1", a)
	c := b.Subscribe("emp-1")
	defer b.Unsubscribe("emp-1", c)

	b.Publish("emp-1", Event{Type: "x"})

	assert.Len(t, a, 1)
	assert.Len(t, c, 1)
}

func TestBrokerSlowSubscriberDropsEvent(t *testing.T) {
	b := New()

	ch := b.Subscribe("emp-1")
	defer b.Unsubscribe("emp-1", ch)

	// Excede a capacidade do buffer; Publish nunca bloqueia.
	for i := 0; i < cap(ch)+5; i++ {
		b.Publish("emp-1", Event{Type: "x"})
	}

	assert.Len(t, ch, cap(ch))
}

func TestBrokerUnsubscribeClosesChannel(t *testing.T) {
	b := New()

	ch := b.Subscribe("emp-1")
	b.Unsubscribe("emp-1", ch)

	_, open := <-ch
	require.False(t, open)

	// Publicar depois do cancelamento não entra em pânico.
	b.Publish("emp-1", Event{Type: "x"})
}

func TestBrokerPublishWithoutSubscribersIsNoop(t *testing.T) {
	b := New()
	b.Publish("emp-ghost", Event{Type: "x"})
}
