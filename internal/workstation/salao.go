package workstation

import (
	"context"
	"sync"
	"time"

	"github.com/europeuzinho/sitechama-ops/internal/bus"
	"github.com/europeuzinho/sitechama-ops/internal/model"
	"github.com/europeuzinho/sitechama-ops/internal/service"
)

// SalaoView is the table-service surface used by garçons: every order
// still in flight, grouped by table on the presentation side.
type SalaoView struct {
	restauranteID string
	auth          service.AuthService
	restaurantes  service.RestauranteService
	pedidos       service.PedidoService

	refresher *Refresher

	mu       sync.RWMutex
	snapshot []model.Pedido
}

func NewSalaoView(restauranteID string, auth service.AuthService, restaurantes service.RestauranteService, pedidos service.PedidoService, b bus.Bus, interval time.Duration, factory TickerFactory) *SalaoView {
	v := &SalaoView{
		restauranteID: restauranteID,
		auth:          auth,
		restaurantes:  restaurantes,
		pedidos:       pedidos,
	}
	v.refresher = &Refresher{
		Nome:      "salao",
		Bus:       b,
		Topics:    []string{bus.TopicPedidos},
		Interval:  interval,
		NewTicker: factory,
		Reload:    v.reload,
	}
	return v
}

func (v *SalaoView) Ativar(ctx context.Context) (*Ativacao, error) {
	return ativar(ctx, v.auth, v.restaurantes, v.restauranteID, model.CargoGarcom)
}

func (v *SalaoView) Run(ctx context.Context) { v.refresher.Run(ctx) }

func (v *SalaoView) Pedidos() []model.Pedido {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]model.Pedido, len(v.snapshot))
	copy(out, v.snapshot)
	return out
}

func (v *SalaoView) reload() {
	var emAndamento []model.Pedido
	for _, p := range v.pedidos.Listar(v.restauranteID) {
		if p.Status != model.PedidoPago {
			emAndamento = append(emAndamento, p)
		}
	}
	v.mu.Lock()
	v.snapshot = emAndamento
	v.mu.Unlock()
}
