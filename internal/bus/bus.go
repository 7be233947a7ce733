// Package bus is the change notification layer that keeps concurrently
// open workstation views consistent. Publishing a topic tells every
// mounted subscriber that the authoritative state behind that topic
// changed; no payload is carried — subscribers always re-read the store.
//
// Delivery is at-least-once to listeners subscribed at publish time.
// Listeners that mount later never see the event, which is why every view
// keeps a periodic re-poll as fallback. No ordering is guaranteed across
// processes.
package bus

import "context"

// Topics published by the engine. Any component may publish or subscribe.
const (
	TopicCaixa        = "cashSessionsChanged"
	TopicPedidos      = "ordersChanged"
	TopicFila         = "waitlistChanged"
	TopicRestaurantes = "restaurantsChanged"
)

// Handler is invoked once per observed publish. Handlers must not block;
// long work belongs in the subscriber's own goroutine.
type Handler func()

// Bus is the abstract change bus. Implementations:
//   - Local: in-process registry
//   - File:  fsnotify over a notifications directory (cross-process)
//   - Redis: go-redis pub/sub channels (cross-machine)
type Bus interface {
	Publish(ctx context.Context, topic string) error
	// Subscribe registers fn for topic and returns an unsubscribe func.
	Subscribe(topic string, fn Handler) (unsubscribe func())
	Close() error
}
