package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pedido is the shared order state read by the cozinha, salão and caixa
// views. Orders are created by the table-service flow and advanced by the
// kitchen; every mutation goes through the store so all views converge.
// Status: "aberto" | "preparando" | "pronto" | "entregue" | "pago".
type Pedido struct {
	ID            uuid.UUID    `json:"id"`
	RestauranteID string       `json:"restaurante_id"`
	Mesa          int          `json:"mesa"`
	Itens         []ItemPedido `json:"itens"`
	Status        string       `json:"status"`
	CriadoEm      time.Time    `json:"criado_em"`
}

type ItemPedido struct {
	Nome       string          `json:"nome"`
	Quantidade int             `json:"quantidade"`
	Preco      decimal.Decimal `json:"preco"`
}

const (
	PedidoAberto     = "aberto"
	PedidoPreparando = "preparando"
	PedidoPronto     = "pronto"
	PedidoEntregue   = "entregue"
	PedidoPago       = "pago"
)

// Total sums the order items.
func (p *Pedido) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range p.Itens {
		total = total.Add(it.Preco.Mul(decimal.NewFromInt(int64(it.Quantidade))))
	}
	return total
}
