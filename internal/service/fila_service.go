package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/europeuzinho/sitechama-ops/internal/apperror"
	"github.com/europeuzinho/sitechama-ops/internal/dto"
	"github.com/europeuzinho/sitechama-ops/internal/model"
	"github.com/europeuzinho/sitechama-ops/internal/store"
)

// FilaService is the reception waitlist. Items move aguardando → chamado,
// or to cancelado from any state; physical removal only on explicit
// operator action.
type FilaService interface {
	Listar(restauranteID string) []model.ItemFilaEspera
	Entrar(ctx context.Context, req dto.EntrarFilaRequest) (*model.ItemFilaEspera, error)
	Chamar(ctx context.Context, restauranteID string, id uuid.UUID) error
	Cancelar(ctx context.Context, restauranteID string, id uuid.UUID) error
	Remover(ctx context.Context, restauranteID string, id uuid.UUID) error
}

type filaService struct {
	store *store.Store
}

func NewFilaService(st *store.Store) FilaService {
	return &filaService{store: st}
}

func (s *filaService) Listar(restauranteID string) []model.ItemFilaEspera {
	var fila []model.ItemFilaEspera
	s.store.Read(store.KeyFila(restauranteID), &fila)
	return fila
}

func (s *filaService) Entrar(ctx context.Context, req dto.EntrarFilaRequest) (*model.ItemFilaEspera, error) {
	if fields, ok := dto.Validate(req); !ok {
		return nil, fmt.Errorf("%w: %v", apperror.ErrValorInvalido, fields)
	}

	item := model.ItemFilaEspera{
		ID:            uuid.New(),
		RestauranteID: req.RestauranteID,
		Nome:          req.Nome,
		Telefone:      req.Telefone,
		Pessoas:       req.Pessoas,
		CriadoEm:      time.Now().UTC(),
		Status:        model.FilaAguardando,
	}
	fila := append(s.Listar(req.RestauranteID), item)
	if err := s.store.Write(ctx, store.KeyFila(req.RestauranteID), fila); err != nil {
		return nil, err
	}

	log.Info().
		Str("restaurante_id", req.RestauranteID).
		Str("nome", item.Nome).
		Int("pessoas", item.Pessoas).
		Msg("fila: entrada registrada")
	return &item, nil
}

func (s *filaService) Chamar(ctx context.Context, restauranteID string, id uuid.UUID) error {
	return s.transicao(ctx, restauranteID, id, func(item *model.ItemFilaEspera) error {
		if item.Status != model.FilaAguardando {
			return fmt.Errorf("fila: item %s não está aguardando", item.ID)
		}
		item.Status = model.FilaChamado
		return nil
	})
}

func (s *filaService) Cancelar(ctx context.Context, restauranteID string, id uuid.UUID) error {
	return s.transicao(ctx, restauranteID, id, func(item *model.ItemFilaEspera) error {
		item.Status = model.FilaCancelado
		return nil
	})
}

func (s *filaService) Remover(ctx context.Context, restauranteID string, id uuid.UUID) error {
	fila := s.Listar(restauranteID)
	for i := range fila {
		if fila[i].ID == id {
			fila = append(fila[:i], fila[i+1:]...)
			return s.store.Write(ctx, store.KeyFila(restauranteID), fila)
		}
	}
	return apperror.ErrNaoEncontrado
}

func (s *filaService) transicao(ctx context.Context, restauranteID string, id uuid.UUID, mudar func(*model.ItemFilaEspera) error) error {
	fila := s.Listar(restauranteID)
	for i := range fila {
		if fila[i].ID == id {
			if err := mudar(&fila[i]); err != nil {
				return err
			}
			return s.store.Write(ctx, store.KeyFila(restauranteID), fila)
		}
	}
	return apperror.ErrNaoEncontrado
}
