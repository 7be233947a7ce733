package bus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBusDeliversToMountedSubscribers(t *testing.T) {
	b := NewLocalBus()
	defer b.Close()

	got := 0
	unsub := b.Subscribe(TopicCaixa, func() { got++ })
	defer unsub()

	require.NoError(t, b.Publish(context.Background(), TopicCaixa))
	require.NoError(t, b.Publish(context.Background(), TopicCaixa))
	assert.Equal(t, 2, got)
}

func TestLocalBusTopicIsolation(t *testing.T) {
	b := NewLocalBus()
	defer b.Close()

	caixa, fila := 0, 0
	b.Subscribe(TopicCaixa, func() { caixa++ })
	b.Subscribe(TopicFila, func() { fila++ })

	require.NoError(t, b.Publish(context.Background(), TopicCaixa))
	assert.Equal(t, 1, caixa)
	assert.Equal(t, 0, fila)
}

func TestLocalBusUnsubscribeStopsDelivery(t *testing.T) {
	b := NewLocalBus()
	defer b.Close()

	got := 0
	unsub := b.Subscribe(TopicPedidos, func() { got++ })

	require.NoError(t, b.Publish(context.Background(), TopicPedidos))
	unsub()
	require.NoError(t, b.Publish(context.Background(), TopicPedidos))
	assert.Equal(t, 1, got)
}

func TestLocalBusLateSubscriberMissesEarlierPublish(t *testing.T) {
	b := NewLocalBus()
	defer b.Close()

	require.NoError(t, b.Publish(context.Background(), TopicFila))

	got := 0
	b.Subscribe(TopicFila, func() { got++ })
	// No replay — late mounts rely on the ticker fallback.
	assert.Equal(t, 0, got)
}
