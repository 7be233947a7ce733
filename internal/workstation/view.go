// Package workstation holds the view controllers consuming the engine:
// cozinha, caixa, salão and recepção. Each view validates the employee
// session for its role on activation, then keeps its snapshot fresh two
// ways: the change bus, and a periodic ticker fallback for events it
// missed. Snapshots are always rebuilt from authoritative reads — a view
// never patches its own copy.
package workstation

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/europeuzinho/sitechama-ops/internal/apperror"
	"github.com/europeuzinho/sitechama-ops/internal/bus"
	"github.com/europeuzinho/sitechama-ops/internal/dispatch"
	"github.com/europeuzinho/sitechama-ops/internal/model"
	"github.com/europeuzinho/sitechama-ops/internal/service"
)

// Ticker abstracts time.Ticker so tests drive refreshes with a virtual
// clock.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory builds the fallback ticker for a view. RealTicker is the
// production factory.
type TickerFactory func(d time.Duration) Ticker

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

func RealTicker(d time.Duration) Ticker { return realTicker{t: time.NewTicker(d)} }

// Refresher runs the reload loop shared by every view: an immediate
// reload, then one reload per observed bus event or ticker tick,
// coalescing bursts into a single pending reload.
type Refresher struct {
	Nome      string
	Bus       bus.Bus
	Topics    []string
	Interval  time.Duration
	NewTicker TickerFactory
	Reload    func()
}

// Run blocks until ctx is done.
func (r *Refresher) Run(ctx context.Context) {
	factory := r.NewTicker
	if factory == nil {
		factory = RealTicker
	}

	changed := make(chan struct{}, 1)
	notify := func() {
		select {
		case changed <- struct{}{}:
		default: // a reload is already pending
		}
	}

	unsubs := make([]func(), 0, len(r.Topics))
	for _, topic := range r.Topics {
		unsubs = append(unsubs, r.Bus.Subscribe(topic, notify))
	}
	defer func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}()

	ticker := factory(r.Interval)
	defer ticker.Stop()

	r.Reload()
	log.Debug().Str("view", r.Nome).Dur("interval", r.Interval).Msg("workstation: refresh loop started")

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("view", r.Nome).Msg("workstation: refresh loop stopped")
			return
		case <-changed:
			r.Reload()
		case <-ticker.C():
			r.Reload()
		}
	}
}

// Ativacao is the outcome of activating a view for the current session.
type Ativacao struct {
	Autenticado bool
	Funcionario *model.Funcionario
	Posto       dispatch.Posto
	// Redirect is set when the view must not render: login page on
	// rejection, administrative surface on a missing plan entitlement.
	Redirect string
}

// ativar runs the two gates every view shares: the session guard and the
// plan entitlement.
func ativar(ctx context.Context, auth service.AuthService, restaurantes service.RestauranteService, restauranteID string, cargo model.Cargo) (*Ativacao, error) {
	restaurante := restaurantes.PorID(restauranteID)
	if restaurante == nil {
		return nil, apperror.ErrNaoEncontrado
	}

	decisao := auth.ValidarSessao(ctx, restauranteID, cargo)
	if decisao.Estado != service.EstadoAutenticado {
		return &Ativacao{Autenticado: false, Redirect: decisao.Redirect}, nil
	}

	posto, err := dispatch.Resolver(restaurante, cargo)
	if err != nil {
		return nil, err
	}
	a := &Ativacao{Autenticado: true, Funcionario: decisao.Funcionario, Posto: posto}
	if posto == dispatch.PostoAdmin {
		a.Redirect = "/restaurante/" + restauranteID + "/admin"
	}
	return a, nil
}
