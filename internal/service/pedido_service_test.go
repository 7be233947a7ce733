package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/europeuzinho/sitechama-ops/internal/apperror"
	"github.com/europeuzinho/sitechama-ops/internal/bus"
	"github.com/europeuzinho/sitechama-ops/internal/model"
	"github.com/europeuzinho/sitechama-ops/internal/store"
)

func TestPedidoCicloDeStatus(t *testing.T) {
	b := bus.NewLocalBus()
	st := store.New(store.NewMemoryBackend(), b)
	svc := NewPedidoService(st)

	published := 0
	b.Subscribe(bus.TopicPedidos, func() { published++ })

	pedido, err := svc.Criar(context.Background(), "R1", 3, []model.ItemPedido{
		{Nome: "Moqueca", Quantidade: 2, Preco: decimal.NewFromInt(60)},
	})
	require.NoError(t, err)
	assert.Equal(t, model.PedidoAberto, pedido.Status)
	assert.True(t, pedido.Total().Equal(decimal.NewFromInt(120)))

	require.NoError(t, svc.AvancarStatus(context.Background(), "R1", pedido.ID, model.PedidoPronto))
	assert.Equal(t, model.PedidoPronto, svc.Listar("R1")[0].Status)
	assert.Equal(t, 2, published)
}

func TestPedidoInvalido(t *testing.T) {
	st := store.New(store.NewMemoryBackend(), bus.NewLocalBus())
	svc := NewPedidoService(st)

	_, err := svc.Criar(context.Background(), "R1", 0, nil)
	assert.ErrorIs(t, err, apperror.ErrValorInvalido)

	assert.ErrorIs(t,
		svc.AvancarStatus(context.Background(), "R1", uuid.New(), model.PedidoPronto),
		apperror.ErrNaoEncontrado)
}
