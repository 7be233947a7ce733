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

// RelatorioDispatcher enqueues the end-of-shift report job after a close.
// Implemented by internal/worker; nil disables the feature.
type RelatorioDispatcher interface {
	EnqueueRelatorio(ctx context.Context, sessaoCaixaID, restauranteID string) error
}

// CaixaService drives the register lifecycle of each restaurant:
// NoActiveSession → aberta → fechada, with an append-only ledger of
// shifts and immutable reforços.
//
// The "at most one open session per restaurant" invariant is a
// check-then-create within one process. Two processes opening inside the
// same window both observe no active session and last-write-wins on the
// ledger key — an accepted limitation for single-operator deployments.
type CaixaService interface {
	// SessaoAtiva returns the unique open session of a restaurant, or nil.
	SessaoAtiva(restauranteID string) *model.SessaoCaixa
	Abrir(ctx context.Context, req dto.AbrirCaixaRequest) (*model.SessaoCaixa, error)
	RegistrarReforco(ctx context.Context, req dto.ReforcoRequest) (*model.Reforco, error)
	Fechar(ctx context.Context, req dto.FecharCaixaRequest) (*model.SessaoCaixa, error)
	// ReforcoPorID is a point lookup across every restaurant's ledger,
	// used by receipt rendering. Soft none on absence — the caller
	// renders the not-found state.
	ReforcoPorID(id uuid.UUID) (*model.Reforco, bool)
	// Sessoes returns the full shift ledger of a restaurant, newest last.
	Sessoes(restauranteID string) []model.SessaoCaixa
}

type caixaService struct {
	store      *store.Store
	dispatcher RelatorioDispatcher
}

func NewCaixaService(st *store.Store, dispatcher RelatorioDispatcher) CaixaService {
	return &caixaService{store: st, dispatcher: dispatcher}
}

func (s *caixaService) Sessoes(restauranteID string) []model.SessaoCaixa {
	var ledger []model.SessaoCaixa
	s.store.Read(store.KeyCaixa(restauranteID), &ledger)
	return ledger
}

func (s *caixaService) SessaoAtiva(restauranteID string) *model.SessaoCaixa {
	ledger := s.Sessoes(restauranteID)
	for i := range ledger {
		if ledger[i].Status == model.CaixaAberta {
			return &ledger[i]
		}
	}
	return nil
}

// erroValidacao maps a DTO failure: the amount field surfaces the
// operator-facing invalid-amount error, anything else is a plain field
// report — a missing restaurant id must not read as "valor inválido".
func erroValidacao(op string, fields map[string]string, campoValor string) error {
	if _, bad := fields[campoValor]; bad {
		return apperror.ErrValorInvalido
	}
	return fmt.Errorf("caixa: %s: campos inválidos: %v", op, fields)
}

func (s *caixaService) Abrir(ctx context.Context, req dto.AbrirCaixaRequest) (*model.SessaoCaixa, error) {
	if fields, ok := dto.Validate(req); !ok {
		return nil, erroValidacao("abrir", fields, "SaldoInicial")
	}
	if existing := s.SessaoAtiva(req.RestauranteID); existing != nil {
		return nil, apperror.ErrCaixaJaAberto
	}

	sessao := model.SessaoCaixa{
		ID:            uuid.New(),
		RestauranteID: req.RestauranteID,
		AbertoPor:     req.AbertoPor,
		AbertoEm:      time.Now().UTC(),
		SaldoInicial:  req.SaldoInicial,
		Status:        model.CaixaAberta,
		Reforcos:      []model.Reforco{},
	}

	ledger := append(s.Sessoes(req.RestauranteID), sessao)
	if err := s.store.Write(ctx, store.KeyCaixa(req.RestauranteID), ledger); err != nil {
		return nil, err
	}

	log.Info().
		Str("restaurante_id", req.RestauranteID).
		Str("sessao_id", sessao.ID.String()).
		Str("saldo_inicial", sessao.SaldoInicial.StringFixed(2)).
		Msg("caixa: sessão aberta")
	return &sessao, nil
}

func (s *caixaService) RegistrarReforco(ctx context.Context, req dto.ReforcoRequest) (*model.Reforco, error) {
	if fields, ok := dto.Validate(req); !ok {
		return nil, erroValidacao("reforço", fields, "Valor")
	}
	sessaoID, err := uuid.Parse(req.SessaoCaixaID)
	if err != nil {
		return nil, fmt.Errorf("sessao_caixa_id inválido: %w", err)
	}

	restauranteID, ledger, idx, ok := s.findSessao(sessaoID)
	if !ok {
		return nil, apperror.ErrCaixaNaoAberto
	}
	if ledger[idx].Status != model.CaixaAberta {
		return nil, apperror.ErrCaixaNaoAberto
	}

	reforco := model.Reforco{
		ID:            uuid.New(),
		SessaoCaixaID: sessaoID,
		Valor:         req.Valor,
		Motivo:        req.Motivo,
		AdicionadoPor: req.AdicionadoPor,
		CriadoEm:      time.Now().UTC(),
	}
	ledger[idx].Reforcos = append(ledger[idx].Reforcos, reforco)

	if err := s.store.Write(ctx, store.KeyCaixa(restauranteID), ledger); err != nil {
		return nil, err
	}

	log.Info().
		Str("sessao_id", sessaoID.String()).
		Str("valor", reforco.Valor.StringFixed(2)).
		Str("motivo", reforco.Motivo).
		Msg("caixa: reforço registrado")
	return &reforco, nil
}

func (s *caixaService) Fechar(ctx context.Context, req dto.FecharCaixaRequest) (*model.SessaoCaixa, error) {
	if fields, ok := dto.Validate(req); !ok {
		return nil, erroValidacao("fechar", fields, "SaldoFechamento")
	}
	sessaoID, err := uuid.Parse(req.SessaoCaixaID)
	if err != nil {
		return nil, fmt.Errorf("sessao_caixa_id inválido: %w", err)
	}

	restauranteID, ledger, idx, ok := s.findSessao(sessaoID)
	if !ok {
		return nil, apperror.ErrCaixaNaoAberto
	}
	if ledger[idx].Status != model.CaixaAberta {
		return nil, apperror.ErrCaixaNaoAberto
	}

	agora := time.Now().UTC()
	saldo := req.SaldoFechamento
	ledger[idx].Status = model.CaixaFechada
	ledger[idx].FechadoEm = &agora
	ledger[idx].SaldoFechamento = &saldo

	if err := s.store.Write(ctx, store.KeyCaixa(restauranteID), ledger); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		if err := s.dispatcher.EnqueueRelatorio(ctx, sessaoID.String(), restauranteID); err != nil {
			// The close already happened; the report can be re-sent.
			log.Warn().Err(err).Str("sessao_id", sessaoID.String()).Msg("caixa: enqueue relatório")
		}
	}

	log.Info().
		Str("restaurante_id", restauranteID).
		Str("sessao_id", sessaoID.String()).
		Str("saldo_fechamento", saldo.StringFixed(2)).
		Msg("caixa: sessão fechada")
	fechada := ledger[idx]
	return &fechada, nil
}

func (s *caixaService) ReforcoPorID(id uuid.UUID) (*model.Reforco, bool) {
	for _, restauranteID := range s.restauranteIDs() {
		for _, sessao := range s.Sessoes(restauranteID) {
			for _, r := range sessao.Reforcos {
				if r.ID == id {
					return &r, true
				}
			}
		}
	}
	return nil, false
}

// findSessao locates a session across every restaurant ledger and returns
// the ledger it lives in, ready for a read-modify-write.
func (s *caixaService) findSessao(sessaoID uuid.UUID) (string, []model.SessaoCaixa, int, bool) {
	for _, restauranteID := range s.restauranteIDs() {
		ledger := s.Sessoes(restauranteID)
		for i := range ledger {
			if ledger[i].ID == sessaoID {
				return restauranteID, ledger, i, true
			}
		}
	}
	return "", nil, 0, false
}

// restauranteIDs enumerates ledgers through the roster key: a ledger
// whose restaurant was removed from restaurantes is unreachable for
// close and receipt lookups until the roster entry returns. The ledger
// data itself stays untouched under its own key.
func (s *caixaService) restauranteIDs() []string {
	var restaurantes []model.Restaurante
	s.store.Read(store.KeyRestaurantes, &restaurantes)
	ids := make([]string, len(restaurantes))
	for i, r := range restaurantes {
		ids[i] = r.ID
	}
	return ids
}
