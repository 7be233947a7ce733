package model

import (
	"time"

	"github.com/google/uuid"
)

// ItemFilaEspera is a reception waitlist entry.
// Status: "aguardando" | "chamado" | "cancelado".
// Items change only through status transitions (aguardando → chamado,
// any → cancelado) and are removed only by explicit operator action.
type ItemFilaEspera struct {
	ID            uuid.UUID `json:"id"`
	RestauranteID string    `json:"restaurante_id"`
	Nome          string    `json:"nome"`
	Telefone      string    `json:"telefone"`
	Pessoas       int       `json:"pessoas"`
	CriadoEm      time.Time `json:"criado_em"`
	Status        string    `json:"status"`
}

const (
	FilaAguardando = "aguardando"
	FilaChamado    = "chamado"
	FilaCancelado  = "cancelado"
)
