// Package apperror defines the canonical error kinds of the operational
// engine. All errors surfaced to an operator go through this package to
// ensure consistency and to prevent leaking internal details (file paths,
// storage errors, etc.).
package apperror

import "errors"

// Error is a domain error with a stable kind and an operator-facing detail
// message. Match with errors.Is against the exported sentinels.
type Error struct {
	Kind   string
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func New(kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

var (
	// Authentication
	ErrLoginInvalido  = New("login_invalido", "Login não encontrado neste restaurante")
	ErrSenhaIncorreta = New("senha_incorreta", "Senha incorreta")
	// ErrEscopoSessao means the stored session belongs to another
	// restaurant or role — the session is purged when this is returned.
	ErrEscopoSessao = New("escopo_sessao", "Sessão inválida para este restaurante ou cargo")

	// Caixa lifecycle
	ErrCaixaJaAberto  = New("caixa_ja_aberto", "Já existe um caixa aberto neste restaurante")
	ErrCaixaNaoAberto = New("caixa_nao_aberto", "Não há caixa aberto para esta operação")
	ErrValorInvalido  = New("valor_invalido", "O valor deve ser maior que zero")

	// Dispatch
	ErrCargoSemPosto = New("cargo_sem_posto", "Cargo sem posto de trabalho mapeado")

	// Storage
	ErrArmazenamentoCheio = New("armazenamento_cheio", "Não foi possível salvar: armazenamento cheio")
	ErrNaoEncontrado      = New("nao_encontrado", "Registro não encontrado")
)

// Is makes every *Error of the same kind match its sentinel, so wrapped
// errors still answer errors.Is(err, apperror.ErrCaixaJaAberto).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}
