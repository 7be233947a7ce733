package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/europeuzinho/sitechama-ops/internal/apperror"
	"github.com/europeuzinho/sitechama-ops/internal/bus"
	"github.com/europeuzinho/sitechama-ops/internal/dto"
	"github.com/europeuzinho/sitechama-ops/internal/model"
	"github.com/europeuzinho/sitechama-ops/internal/store"
)

const testSecret = "segredo-de-teste"

func hashPIN(t *testing.T, pin string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func restauranteR1(t *testing.T) *model.Restaurante {
	return &model.Restaurante{
		ID:    "R1",
		Nome:  "Cantina Um",
		Plano: model.PlanoCompleto,
		Funcionarios: []model.Funcionario{
			{Login: "1234", Senha: hashPIN(t, "5678"), Nome: "Ana", Cargo: model.CargoCaixa},
			{Login: "2222", Senha: "9999", Nome: "Bia", Cargo: model.CargoCozinha}, // roster legado, PIN plano
		},
	}
}

func newAuth(t *testing.T) (AuthService, *store.Store) {
	t.Helper()
	st := store.New(store.NewMemoryBackend(), bus.NewLocalBus())
	return NewAuthService(st, testSecret), st
}

func TestLoginSuccess(t *testing.T) {
	auth, _ := newAuth(t)

	f, err := auth.Login(context.Background(), restauranteR1(t), dto.LoginRequest{Login: "1234", Senha: "5678"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", f.Nome)
	assert.Equal(t, model.CargoCaixa, f.Cargo)

	decisao := auth.ValidarSessao(context.Background(), "R1", "")
	assert.Equal(t, EstadoAutenticado, decisao.Estado)
	assert.Equal(t, "1234", decisao.Funcionario.Login)
}

func TestLoginLegacyPlainPIN(t *testing.T) {
	auth, _ := newAuth(t)

	_, err := auth.Login(context.Background(), restauranteR1(t), dto.LoginRequest{Login: "2222", Senha: "9999"})
	require.NoError(t, err)
}

func TestLoginUnknownCodeFails(t *testing.T) {
	auth, _ := newAuth(t)

	_, err := auth.Login(context.Background(), restauranteR1(t), dto.LoginRequest{Login: "7777", Senha: "5678"})
	assert.ErrorIs(t, err, apperror.ErrLoginInvalido)
}

func TestLoginWrongPINFails(t *testing.T) {
	auth, _ := newAuth(t)

	_, err := auth.Login(context.Background(), restauranteR1(t), dto.LoginRequest{Login: "1234", Senha: "0000"})
	assert.ErrorIs(t, err, apperror.ErrSenhaIncorreta)
}

// Employee of R1 is not on R2's roster — same credentials must be
// rejected there with login inválido, not senha incorreta.
func TestLoginRejectedOnOtherRestaurantRoster(t *testing.T) {
	auth, _ := newAuth(t)

	r2 := &model.Restaurante{ID: "R2", Nome: "Cantina Dois", Funcionarios: []model.Funcionario{
		{Login: "9876", Senha: hashPIN(t, "1111"), Nome: "Caio", Cargo: model.CargoCaixa},
	}}
	_, err := auth.Login(context.Background(), r2, dto.LoginRequest{Login: "1234", Senha: "5678"})
	assert.ErrorIs(t, err, apperror.ErrLoginInvalido)
}

func TestValidarSessaoAbsent(t *testing.T) {
	auth, _ := newAuth(t)

	decisao := auth.ValidarSessao(context.Background(), "R1", "")
	assert.Equal(t, EstadoRejeitado, decisao.Estado)
	assert.Equal(t, "/restaurante/R1/login", decisao.Redirect)
}

// A session minted for restaurant A used on a page scoped to restaurant B
// must be purged and rejected — for every role combination.
func TestValidarSessaoPurgesOnRestaurantMismatch(t *testing.T) {
	for _, cargo := range []model.Cargo{"", model.CargoCaixa, model.CargoCozinha, model.CargoRecepcao, model.CargoGarcom} {
		auth, st := newAuth(t)

		_, err := auth.Login(context.Background(), restauranteR1(t), dto.LoginRequest{Login: "1234", Senha: "5678"})
		require.NoError(t, err)

		decisao := auth.ValidarSessao(context.Background(), "R2", cargo)
		assert.Equal(t, EstadoRejeitado, decisao.Estado, "cargo %q", cargo)
		assert.Equal(t, "/restaurante/R2/login", decisao.Redirect)

		var raw string
		assert.False(t, st.Read(store.KeySessaoFuncionario, &raw), "sessão deve ter sido purgada (cargo %q)", cargo)
	}
}

func TestValidarSessaoPurgesOnRoleMismatch(t *testing.T) {
	auth, st := newAuth(t)

	_, err := auth.Login(context.Background(), restauranteR1(t), dto.LoginRequest{Login: "1234", Senha: "5678"})
	require.NoError(t, err)

	// Ana is Caixa; the cozinha surface demands Cozinha.
	decisao := auth.ValidarSessao(context.Background(), "R1", model.CargoCozinha)
	assert.Equal(t, EstadoRejeitado, decisao.Estado)

	var raw string
	assert.False(t, st.Read(store.KeySessaoFuncionario, &raw))

	// And the purge is terminal: a follow-up validation for the original
	// role also rejects.
	decisao = auth.ValidarSessao(context.Background(), "R1", model.CargoCaixa)
	assert.Equal(t, EstadoRejeitado, decisao.Estado)
}

func TestTamperedSessionReadsAsAbsent(t *testing.T) {
	auth, st := newAuth(t)

	_, err := auth.Login(context.Background(), restauranteR1(t), dto.LoginRequest{Login: "1234", Senha: "5678"})
	require.NoError(t, err)

	var raw string
	require.True(t, st.Read(store.KeySessaoFuncionario, &raw))
	require.NoError(t, st.Write(context.Background(), store.KeySessaoFuncionario, raw+"x"))

	decisao := auth.ValidarSessao(context.Background(), "R1", "")
	assert.Equal(t, EstadoRejeitado, decisao.Estado)
}

func TestLogoutPurgesAndRedirects(t *testing.T) {
	auth, st := newAuth(t)

	_, err := auth.Login(context.Background(), restauranteR1(t), dto.LoginRequest{Login: "1234", Senha: "5678"})
	require.NoError(t, err)

	redirect, err := auth.Logout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/restaurante/R1/login", redirect)

	var raw string
	assert.False(t, st.Read(store.KeySessaoFuncionario, &raw))

	// Without a known scope the redirect is the landing page.
	redirect, err = auth.Logout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/", redirect)
}
