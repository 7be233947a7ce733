// Package dispatch routes an authenticated employee to exactly one
// workstation surface and applies the restaurant plan gate on top of the
// role check. A role without a mapped surface is an explicit error shown
// to the operator — never a silent default.
package dispatch

import (
	"fmt"

	"github.com/europeuzinho/sitechama-ops/internal/apperror"
	"github.com/europeuzinho/sitechama-ops/internal/model"
)

// Posto is a workstation surface.
type Posto string

const (
	PostoCaixa    Posto = "caixa"
	PostoCozinha  Posto = "cozinha"
	PostoRecepcao Posto = "recepcao"
	PostoSalao    Posto = "salao"
	// PostoAdmin is the degraded administrative surface a workstation
	// falls back to when the restaurant plan lacks the entitlement.
	PostoAdmin Posto = "admin"
)

var postoPorCargo = map[model.Cargo]Posto{
	model.CargoCaixa:    PostoCaixa,
	model.CargoCozinha:  PostoCozinha,
	model.CargoRecepcao: PostoRecepcao,
	model.CargoGarcom:   PostoSalao,
}

// PostoParaCargo maps a role to its surface.
func PostoParaCargo(cargo model.Cargo) (Posto, error) {
	posto, ok := postoPorCargo[cargo]
	if !ok {
		return "", fmt.Errorf("%w: %q", apperror.ErrCargoSemPosto, cargo)
	}
	return posto, nil
}

// AplicarPlano is the second, independent gate layered on top of role
// authentication: cozinha and salão require the completo tier. Without
// it the dispatch degrades to the administrative surface instead of
// rendering the workstation.
func AplicarPlano(restaurante *model.Restaurante, posto Posto) Posto {
	switch posto {
	case PostoCozinha, PostoSalao:
		if restaurante.Plano != model.PlanoCompleto {
			return PostoAdmin
		}
	}
	return posto
}

// Resolver combines both gates for a logged-in employee.
func Resolver(restaurante *model.Restaurante, cargo model.Cargo) (Posto, error) {
	posto, err := PostoParaCargo(cargo)
	if err != nil {
		return "", err
	}
	return AplicarPlano(restaurante, posto), nil
}
