package service

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/europeuzinho/sitechama-ops/internal/apperror"
	"github.com/europeuzinho/sitechama-ops/internal/dto"
	"github.com/europeuzinho/sitechama-ops/internal/model"
	"github.com/europeuzinho/sitechama-ops/internal/store"
)

// Estado is the guard outcome for one protected page load.
type Estado string

const (
	EstadoAutenticado Estado = "autenticado"
	EstadoRejeitado   Estado = "rejeitado"
)

// Decisao is what a workstation page gets back from the guard: either an
// authenticated employee or a rejection with the redirect to follow.
type Decisao struct {
	Estado      Estado
	Funcionario *model.Funcionario
	// Redirect is set on rejection: the login page of the requested
	// restaurant, or the landing page when no scope is known.
	Redirect string
}

// sessaoClaims is the signed shape persisted under the session key. The
// signature turns any tampered or truncated blob into "no session".
type sessaoClaims struct {
	Funcionario   model.Funcionario `json:"funcionario"`
	RestauranteID string            `json:"restaurante_id"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// Login authenticates a login code + PIN against the restaurant
	// roster and persists the resulting session.
	Login(ctx context.Context, restaurante *model.Restaurante, req dto.LoginRequest) (*model.Funcionario, error)
	// ValidarSessao runs on every protected page load. A session scoped
	// to another restaurant, or to another role when cargoExigido is
	// set, is purged before the rejection — a stale token must never
	// grant cross-restaurant or cross-role access to a reused tab.
	ValidarSessao(ctx context.Context, restauranteID string, cargoExigido model.Cargo) Decisao
	// Logout purges the session unconditionally and returns the
	// redirect target.
	Logout(ctx context.Context) (string, error)
}

type authService struct {
	store  *store.Store
	secret []byte
}

func NewAuthService(st *store.Store, secret string) AuthService {
	return &authService{store: st, secret: []byte(secret)}
}

func (s *authService) Login(ctx context.Context, restaurante *model.Restaurante, req dto.LoginRequest) (*model.Funcionario, error) {
	if fields, ok := dto.Validate(req); !ok {
		return nil, fmt.Errorf("%w: %v", apperror.ErrLoginInvalido, fields)
	}

	funcionario := restaurante.FindFuncionario(req.Login)
	if funcionario == nil {
		return nil, apperror.ErrLoginInvalido
	}
	if !funcionario.ConferirSenha(req.Senha) {
		return nil, apperror.ErrSenhaIncorreta
	}

	token, err := s.assinar(model.SessaoFuncionario{
		Funcionario:   *funcionario,
		RestauranteID: restaurante.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("auth: sign session: %w", err)
	}
	if err := s.store.Write(ctx, store.KeySessaoFuncionario, token); err != nil {
		return nil, err
	}

	log.Info().
		Str("restaurante_id", restaurante.ID).
		Str("login", funcionario.Login).
		Str("cargo", string(funcionario.Cargo)).
		Msg("auth: login")
	return funcionario, nil
}

func (s *authService) ValidarSessao(ctx context.Context, restauranteID string, cargoExigido model.Cargo) Decisao {
	rejeitar := Decisao{Estado: EstadoRejeitado, Redirect: LoginRedirect(restauranteID)}

	sessao, ok := s.lerSessao()
	if !ok {
		return rejeitar
	}
	if sessao.RestauranteID != restauranteID || (cargoExigido != "" && sessao.Funcionario.Cargo != cargoExigido) {
		// Privilege confusion: purge before rejecting so the stale
		// session cannot be replayed on yet another surface.
		if err := s.store.Delete(ctx, store.KeySessaoFuncionario); err != nil {
			log.Warn().Err(err).Msg("auth: purge on scope mismatch")
		}
		log.Info().
			Str("sessao_restaurante", sessao.RestauranteID).
			Str("pagina_restaurante", restauranteID).
			Str("cargo_exigido", string(cargoExigido)).
			Msg("auth: session purged on scope mismatch")
		return rejeitar
	}

	f := sessao.Funcionario
	return Decisao{Estado: EstadoAutenticado, Funcionario: &f}
}

func (s *authService) Logout(ctx context.Context) (string, error) {
	redirect := "/"
	if sessao, ok := s.lerSessao(); ok {
		redirect = LoginRedirect(sessao.RestauranteID)
	}
	if err := s.store.Delete(ctx, store.KeySessaoFuncionario); err != nil {
		return "", err
	}
	return redirect, nil
}

// LoginRedirect is the login page of a restaurant, or the landing page
// when no restaurant scope is known.
func LoginRedirect(restauranteID string) string {
	if restauranteID == "" {
		return "/"
	}
	return "/restaurante/" + restauranteID + "/login"
}

func (s *authService) assinar(sessao model.SessaoFuncionario) (string, error) {
	claims := sessaoClaims{
		Funcionario:   sessao.Funcionario,
		RestauranteID: sessao.RestauranteID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// lerSessao reads and verifies the persisted session. Any parse or
// signature failure reads as "no session" — the soft-fail contract of the
// store applied to a signed value.
func (s *authService) lerSessao() (*model.SessaoFuncionario, bool) {
	var raw string
	if !s.store.Read(store.KeySessaoFuncionario, &raw) || raw == "" {
		return nil, false
	}
	claims := &sessaoClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		log.Warn().Err(err).Msg("auth: invalid stored session, treating as absent")
		return nil, false
	}
	return &model.SessaoFuncionario{
		Funcionario:   claims.Funcionario,
		RestauranteID: claims.RestauranteID,
	}, true
}
