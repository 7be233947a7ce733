//go:build integration

package worker

// Integration test for the BRPOP pool's failure path against a real
// redis via testcontainers. Run with:
// go test -tags integration ./internal/worker/... -v

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/europeuzinho/sitechama-ops/internal/bus"
	"github.com/europeuzinho/sitechama-ops/internal/infra"
	"github.com/europeuzinho/sitechama-ops/internal/service"
	"github.com/europeuzinho/sitechama-ops/internal/store"
)

func TestPoolMovesFailingJobToDLQ(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	container, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(url)
	require.NoError(t, err)

	// Store vazio: o restaurante do job não existe, então Process falha
	// e o job deve parar na dead letter queue.
	st := store.New(store.NewMemoryBackend(), bus.NewLocalBus())
	handlers := &Handlers{
		Relatorio: NewRelatorioWorker(
			service.NewCaixaService(st, nil),
			service.NewRestauranteService(st),
			nil,
			t.TempDir(),
		),
	}
	StartWorkerPool(ctx, rdb, handlers, 1)

	dispatcher := NewDispatcher(rdb)
	require.NoError(t, dispatcher.EnqueueRelatorio(ctx, uuid.NewString(), "R404"))

	require.Eventually(t, func() bool {
		n, err := DLQLength(ctx, rdb, QueueRelatorio)
		return err == nil && n == 1
	}, 15*time.Second, 100*time.Millisecond, "job com falha deve ir para a DLQ")

	raw, err := rdb.LIndex(ctx, DLQPrefix+QueueRelatorio, 0).Result()
	require.NoError(t, err)
	var entry DLQEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &entry))
	assert.Equal(t, QueueRelatorio, entry.Queue)
	assert.Equal(t, "relatorio", entry.Job.Type)
	assert.Contains(t, entry.Reason, "R404")
	assert.Equal(t, 1, entry.Attempts)
}
