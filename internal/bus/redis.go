package bus

import (
	"context"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const channelPrefix = "sitechama:changed:"

// RedisBus relays topics over redis pub/sub channels so views on other
// machines observe the change without polling. Delivery is fire-and-
// forget: a subscriber that is down during the publish relies on its
// ticker fallback, same as the other drivers.
type RedisBus struct {
	rdb    *redis.Client
	pubsub *redis.PubSub
	local  *LocalBus

	closeOnce sync.Once
}

func NewRedisBus(ctx context.Context, rdb *redis.Client) *RedisBus {
	b := &RedisBus{
		rdb:    rdb,
		pubsub: rdb.PSubscribe(ctx, channelPrefix+"*"),
		local:  NewLocalBus(),
	}
	go b.loop()
	return b
}

func (b *RedisBus) Publish(ctx context.Context, topic string) error {
	return b.rdb.Publish(ctx, channelPrefix+topic, "").Err()
}

func (b *RedisBus) Subscribe(topic string, fn Handler) func() {
	return b.local.Subscribe(topic, fn)
}

func (b *RedisBus) Close() error {
	var err error
	b.closeOnce.Do(func() {
		err = b.pubsub.Close()
		b.local.Close()
	})
	return err
}

func (b *RedisBus) loop() {
	for msg := range b.pubsub.Channel() {
		topic := strings.TrimPrefix(msg.Channel, channelPrefix)
		if err := b.local.Publish(context.Background(), topic); err != nil {
			log.Warn().Err(err).Str("topic", topic).Msg("bus: redis dispatch")
		}
	}
}
