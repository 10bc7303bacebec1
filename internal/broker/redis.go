package broker

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const channelPrefix = "frota:notify:"

// RedisBridge replica eventos do broker local entre instâncias do serviço via
// Redis Pub/Sub. Opcional: sem REDIS_URL configurada o broker em memória
// atende uma instância sozinha.
type RedisBridge struct {
	rdb   *redis.Client
	local *Broker
	log   zerolog.Logger
}

func NewRedisBridge(url string, local *Broker, log zerolog.Logger) (*RedisBridge, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisBridge{rdb: redis.NewClient(opt), local: local, log: log}, nil
}

// Publish envia o evento para as demais instâncias.
func (b *RedisBridge) Publish(employeeID string, evt Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	if err := b.rdb.Publish(ctx, channelPrefix+employeeID, data).Err(); err != nil {
		b.log.Warn().Err(err).Msg("redis publish failed")
	}
}

// Run consome o canal Redis e republica no broker local até o contexto
// encerrar. Deve rodar em goroutine própria.
func (b *RedisBridge) Run(ctx context.Context) {
	ps := b.rdb.PSubscribe(ctx, channelPrefix+"*")
	defer func() { _ = ps.Close() }()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ps.Channel():
			if !ok {
				return
			}
			var evt Event
			if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
				b.log.Warn().Err(err).Msg("redis bridge: bad payload")
				continue
			}
			employeeID := msg.Channel[len(channelPrefix):]
			b.local.Publish(employeeID, evt)
		}
	}
}
