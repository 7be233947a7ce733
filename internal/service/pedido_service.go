package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/europeuzinho/sitechama-ops/internal/apperror"
	"github.com/europeuzinho/sitechama-ops/internal/model"
	"github.com/europeuzinho/sitechama-ops/internal/store"
)

// PedidoService is the shared order state mutated by the salão flow and
// advanced by the cozinha. Every mutation republishes ordersChanged so
// all open views re-read.
type PedidoService interface {
	Listar(restauranteID string) []model.Pedido
	Criar(ctx context.Context, restauranteID string, mesa int, itens []model.ItemPedido) (*model.Pedido, error)
	AvancarStatus(ctx context.Context, restauranteID string, id uuid.UUID, status string) error
}

type pedidoService struct {
	store *store.Store
}

func NewPedidoService(st *store.Store) PedidoService {
	return &pedidoService{store: st}
}

func (s *pedidoService) Listar(restauranteID string) []model.Pedido {
	var pedidos []model.Pedido
	s.store.Read(store.KeyPedidos(restauranteID), &pedidos)
	return pedidos
}

func (s *pedidoService) Criar(ctx context.Context, restauranteID string, mesa int, itens []model.ItemPedido) (*model.Pedido, error) {
	if mesa <= 0 || len(itens) == 0 {
		return nil, fmt.Errorf("%w: pedido sem mesa ou sem itens", apperror.ErrValorInvalido)
	}
	pedido := model.Pedido{
		ID:            uuid.New(),
		RestauranteID: restauranteID,
		Mesa:          mesa,
		Itens:         itens,
		Status:        model.PedidoAberto,
		CriadoEm:      time.Now().UTC(),
	}
	pedidos := append(s.Listar(restauranteID), pedido)
	if err := s.store.Write(ctx, store.KeyPedidos(restauranteID), pedidos); err != nil {
		return nil, err
	}
	log.Info().
		Str("restaurante_id", restauranteID).
		Int("mesa", mesa).
		Str("pedido_id", pedido.ID.String()).
		Msg("pedido: criado")
	return &pedido, nil
}

func (s *pedidoService) AvancarStatus(ctx context.Context, restauranteID string, id uuid.UUID, status string) error {
	pedidos := s.Listar(restauranteID)
	for i := range pedidos {
		if pedidos[i].ID == id {
			pedidos[i].Status = status
			return s.store.Write(ctx, store.KeyPedidos(restauranteID), pedidos)
		}
	}
	return apperror.ErrNaoEncontrado
}
