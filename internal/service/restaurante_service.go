package service

import (
	"github.com/europeuzinho/sitechama-ops/internal/model"
	"github.com/europeuzinho/sitechama-ops/internal/store"
)

// RestauranteService reads the restaurant roster. The roster is owned by
// an external collaborator (admin/back office sync); this engine never
// mutates it — only cmd/seedroster writes it, for demo setups.
type RestauranteService interface {
	Listar() []model.Restaurante
	// PorID returns the restaurant or nil when unknown; deep links to an
	// unknown restaurant render a not-found state.
	PorID(id string) *model.Restaurante
}

type restauranteService struct {
	store *store.Store
}

func NewRestauranteService(st *store.Store) RestauranteService {
	return &restauranteService{store: st}
}

func (s *restauranteService) Listar() []model.Restaurante {
	var restaurantes []model.Restaurante
	s.store.Read(store.KeyRestaurantes, &restaurantes)
	return restaurantes
}

func (s *restauranteService) PorID(id string) *model.Restaurante {
	for _, r := range s.Listar() {
		if r.ID == id {
			rest := r
			return &rest
		}
	}
	return nil
}
