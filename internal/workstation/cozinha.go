package workstation

import (
	"context"
	"sync"
	"time"

	"github.com/europeuzinho/sitechama-ops/internal/bus"
	"github.com/europeuzinho/sitechama-ops/internal/model"
	"github.com/europeuzinho/sitechama-ops/internal/service"
)

// CozinhaView is the kitchen display: every order not yet ready, oldest
// first. It refreshes on ordersChanged and on a short ticker — the
// kitchen is the view that least tolerates a missed event.
type CozinhaView struct {
	restauranteID string
	auth          service.AuthService
	restaurantes  service.RestauranteService
	pedidos       service.PedidoService

	refresher *Refresher

	mu       sync.RWMutex
	snapshot []model.Pedido
}

func NewCozinhaView(restauranteID string, auth service.AuthService, restaurantes service.RestauranteService, pedidos service.PedidoService, b bus.Bus, interval time.Duration, factory TickerFactory) *CozinhaView {
	v := &CozinhaView{
		restauranteID: restauranteID,
		auth:          auth,
		restaurantes:  restaurantes,
		pedidos:       pedidos,
	}
	v.refresher = &Refresher{
		Nome:      "cozinha",
		Bus:       b,
		Topics:    []string{bus.TopicPedidos},
		Interval:  interval,
		NewTicker: factory,
		Reload:    v.reload,
	}
	return v
}

// Ativar validates the session for the Cozinha role and the plan gate.
func (v *CozinhaView) Ativar(ctx context.Context) (*Ativacao, error) {
	return ativar(ctx, v.auth, v.restaurantes, v.restauranteID, model.CargoCozinha)
}

func (v *CozinhaView) Run(ctx context.Context) { v.refresher.Run(ctx) }

// Pedidos returns the current kitchen queue snapshot.
func (v *CozinhaView) Pedidos() []model.Pedido {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]model.Pedido, len(v.snapshot))
	copy(out, v.snapshot)
	return out
}

func (v *CozinhaView) reload() {
	var fila []model.Pedido
	for _, p := range v.pedidos.Listar(v.restauranteID) {
		if p.Status == model.PedidoAberto || p.Status == model.PedidoPreparando {
			fila = append(fila, p)
		}
	}
	v.mu.Lock()
	v.snapshot = fila
	v.mu.Unlock()
}
