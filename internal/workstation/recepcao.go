package workstation

import (
	"context"
	"sync"
	"time"

	"github.com/europeuzinho/sitechama-ops/internal/bus"
	"github.com/europeuzinho/sitechama-ops/internal/model"
	"github.com/europeuzinho/sitechama-ops/internal/service"
)

// RecepcaoView is the reception surface: the waitlist, waiting parties
// first.
type RecepcaoView struct {
	restauranteID string
	auth          service.AuthService
	restaurantes  service.RestauranteService
	fila          service.FilaService

	refresher *Refresher

	mu       sync.RWMutex
	snapshot []model.ItemFilaEspera
}

func NewRecepcaoView(restauranteID string, auth service.AuthService, restaurantes service.RestauranteService, fila service.FilaService, b bus.Bus, interval time.Duration, factory TickerFactory) *RecepcaoView {
	v := &RecepcaoView{
		restauranteID: restauranteID,
		auth:          auth,
		restaurantes:  restaurantes,
		fila:          fila,
	}
	v.refresher = &Refresher{
		Nome:      "recepcao",
		Bus:       b,
		Topics:    []string{bus.TopicFila},
		Interval:  interval,
		NewTicker: factory,
		Reload:    v.reload,
	}
	return v
}

func (v *RecepcaoView) Ativar(ctx context.Context) (*Ativacao, error) {
	return ativar(ctx, v.auth, v.restaurantes, v.restauranteID, model.CargoRecepcao)
}

func (v *RecepcaoView) Run(ctx context.Context) { v.refresher.Run(ctx) }

func (v *RecepcaoView) Fila() []model.ItemFilaEspera {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]model.ItemFilaEspera, len(v.snapshot))
	copy(out, v.snapshot)
	return out
}

func (v *RecepcaoView) reload() {
	var ativos []model.ItemFilaEspera
	for _, item := range v.fila.Listar(v.restauranteID) {
		if item.Status != model.FilaCancelado {
			ativos = append(ativos, item)
		}
	}
	v.mu.Lock()
	v.snapshot = ativos
	v.mu.Unlock()
}
