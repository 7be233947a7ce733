package model

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Cargo is the role of an employee inside one restaurant.
// Each cargo maps to exactly one workstation surface (see internal/dispatch).
type Cargo string

const (
	CargoCaixa    Cargo = "Caixa"
	CargoCozinha  Cargo = "Cozinha"
	CargoRecepcao Cargo = "Recepção"
	CargoGarcom   Cargo = "Garçom"
)

// Plano is the subscription tier of a restaurant.
// Cozinha and salão surfaces require PlanoCompleto.
type Plano string

const (
	PlanoEssencial    Plano = "essencial"
	PlanoProfissional Plano = "profissional"
	PlanoCompleto     Plano = "completo"
)

// Funcionario is an employee entry in a restaurant roster.
// Identity is immutable once created — edits are full overwrites by an
// admin, outside this engine.
type Funcionario struct {
	// Login is a numeric code, unique within the restaurant.
	Login string `json:"login"`
	// Senha holds either a bcrypt hash (preferred) or a legacy plain
	// numeric PIN, distinguished by the bcrypt prefix.
	Senha string `json:"senha"`
	Nome  string `json:"nome"`
	Cargo Cargo  `json:"cargo"`
}

// ConferirSenha checks a PIN against the stored credential. Plain legacy
// PINs are compared in constant time.
func (f *Funcionario) ConferirSenha(pin string) bool {
	if len(f.Senha) > 4 && (f.Senha[:4] == "$2a$" || f.Senha[:4] == "$2b$" || f.Senha[:4] == "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(f.Senha), []byte(pin)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(f.Senha), []byte(pin)) == 1
}

// Restaurante is supplied by the roster collaborator; this engine only
// reads it.
type Restaurante struct {
	ID           string        `json:"id"`
	Nome         string        `json:"nome"`
	Email        string        `json:"email"`
	Plano        Plano         `json:"plano"`
	Funcionarios []Funcionario `json:"funcionarios"`
}

// FindFuncionario returns the roster entry for a login code, or nil.
func (r *Restaurante) FindFuncionario(login string) *Funcionario {
	for i := range r.Funcionarios {
		if r.Funcionarios[i].Login == login {
			return &r.Funcionarios[i]
		}
	}
	return nil
}

// SessaoFuncionario is the authenticated identity held by one storage
// scope. Exactly one may exist per scope; it is never shared across
// restaurants — a session minted for restaurant A is invalid on a page
// scoped to restaurant B and gets purged there.
type SessaoFuncionario struct {
	Funcionario   Funcionario `json:"funcionario"`
	RestauranteID string      `json:"restaurante_id"`
}
