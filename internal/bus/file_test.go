package bus

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileBusDeliversAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	publisher, err := NewFileBus(dir)
	require.NoError(t, err)
	defer publisher.Close()

	subscriber, err := NewFileBus(dir)
	require.NoError(t, err)
	defer subscriber.Close()

	var got atomic.Int32
	unsub := subscriber.Subscribe(TopicCaixa, func() { got.Add(1) })
	defer unsub()

	require.NoError(t, publisher.Publish(context.Background(), TopicCaixa))

	require.Eventually(t, func() bool { return got.Load() >= 1 },
		3*time.Second, 10*time.Millisecond, "subscriber em outro processo deve observar o publish")
}

func TestFileBusIgnoresOtherTopics(t *testing.T) {
	dir := t.TempDir()

	b, err := NewFileBus(dir)
	require.NoError(t, err)
	defer b.Close()

	var caixa, fila atomic.Int32
	b.Subscribe(TopicCaixa, func() { caixa.Add(1) })
	b.Subscribe(TopicFila, func() { fila.Add(1) })

	require.NoError(t, b.Publish(context.Background(), TopicFila))

	require.Eventually(t, func() bool { return fila.Load() >= 1 },
		3*time.Second, 10*time.Millisecond)
	require.Zero(t, caixa.Load())
}
