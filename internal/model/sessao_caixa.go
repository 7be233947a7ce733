package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessaoCaixa represents one register shift, from open to close.
// Status: "aberta" | "fechada". Sessions are never deleted — the slice
// persisted per restaurant is an append-only ledger of shifts, and at most
// one session per restaurant may be "aberta" at any time.
type SessaoCaixa struct {
	ID            uuid.UUID       `json:"id"`
	RestauranteID string          `json:"restaurante_id"`
	AbertoPor     string          `json:"aberto_por"`
	AbertoEm      time.Time       `json:"aberto_em"`
	SaldoInicial  decimal.Decimal `json:"saldo_inicial"`
	// SaldoFechamento is declared by the operator on close; it is not
	// reconciled against reforços here.
	SaldoFechamento *decimal.Decimal `json:"saldo_fechamento,omitempty"`
	FechadoEm       *time.Time       `json:"fechado_em,omitempty"`
	Status          string           `json:"status"`

	Reforcos []Reforco `json:"reforcos"`
}

const (
	CaixaAberta  = "aberta"
	CaixaFechada = "fechada"
)

// Reforco is an immutable cash injection into an open shift.
// Reforços are NEVER modified or deleted once recorded.
type Reforco struct {
	ID            uuid.UUID       `json:"id"`
	SessaoCaixaID uuid.UUID       `json:"sessao_caixa_id"`
	Valor         decimal.Decimal `json:"valor"`
	Motivo        string          `json:"motivo"`
	AdicionadoPor string          `json:"adicionado_por"`
	CriadoEm      time.Time       `json:"criado_em"`
}

// SaldoEsperado is the opening balance plus every reforço of the shift.
func (s *SessaoCaixa) SaldoEsperado() decimal.Decimal {
	total := s.SaldoInicial
	for _, r := range s.Reforcos {
		total = total.Add(r.Valor)
	}
	return total
}
