package workstation

import (
	"context"
	"sync"
	"time"

	"github.com/europeuzinho/sitechama-ops/internal/bus"
	"github.com/europeuzinho/sitechama-ops/internal/model"
	"github.com/europeuzinho/sitechama-ops/internal/service"
)

// CaixaView is the cashier surface: the active register session plus the
// orders awaiting payment. It follows both cashSessionsChanged and
// ordersChanged.
type CaixaView struct {
	restauranteID string
	auth          service.AuthService
	restaurantes  service.RestauranteService
	caixa         service.CaixaService
	pedidos       service.PedidoService

	refresher *Refresher

	mu          sync.RWMutex
	sessaoAtiva *model.SessaoCaixa
	aCobrar     []model.Pedido
}

func NewCaixaView(restauranteID string, auth service.AuthService, restaurantes service.RestauranteService, caixa service.CaixaService, pedidos service.PedidoService, b bus.Bus, interval time.Duration, factory TickerFactory) *CaixaView {
	v := &CaixaView{
		restauranteID: restauranteID,
		auth:          auth,
		restaurantes:  restaurantes,
		caixa:         caixa,
		pedidos:       pedidos,
	}
	v.refresher = &Refresher{
		Nome:      "caixa",
		Bus:       b,
		Topics:    []string{bus.TopicCaixa, bus.TopicPedidos},
		Interval:  interval,
		NewTicker: factory,
		Reload:    v.reload,
	}
	return v
}

func (v *CaixaView) Ativar(ctx context.Context) (*Ativacao, error) {
	return ativar(ctx, v.auth, v.restaurantes, v.restauranteID, model.CargoCaixa)
}

func (v *CaixaView) Run(ctx context.Context) { v.refresher.Run(ctx) }

// SessaoAtiva returns the open register session snapshot, or nil.
func (v *CaixaView) SessaoAtiva() *model.SessaoCaixa {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.sessaoAtiva == nil {
		return nil
	}
	s := *v.sessaoAtiva
	return &s
}

// ACobrar returns the delivered orders still unpaid.
func (v *CaixaView) ACobrar() []model.Pedido {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]model.Pedido, len(v.aCobrar))
	copy(out, v.aCobrar)
	return out
}

func (v *CaixaView) reload() {
	sessao := v.caixa.SessaoAtiva(v.restauranteID)
	var aCobrar []model.Pedido
	for _, p := range v.pedidos.Listar(v.restauranteID) {
		if p.Status == model.PedidoEntregue {
			aCobrar = append(aCobrar, p)
		}
	}
	v.mu.Lock()
	v.sessaoAtiva = sessao
	v.aCobrar = aCobrar
	v.mu.Unlock()
}
