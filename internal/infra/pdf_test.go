package infra

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/europeuzinho/sitechama-ops/internal/model"
)

func TestGenerateReforcoPDF(t *testing.T) {
	storagePath := t.TempDir()
	reforco := &model.Reforco{
		ID:            uuid.New(),
		SessaoCaixaID: uuid.New(),
		Valor:         decimal.NewFromFloat(30.50),
		Motivo:        "Troco",
		AdicionadoPor: "op1",
		CriadoEm:      time.Now().UTC(),
	}
	restaurante := &model.Restaurante{ID: "R1", Nome: "Cantina Um"}

	path, err := GenerateReforcoPDF(reforco, restaurante, storagePath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(storagePath, "reforco_"+reforco.ID.String()+".pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerateRelatorioTurnoPDF(t *testing.T) {
	storagePath := t.TempDir()
	fechadoEm := time.Now().UTC()
	saldo := decimal.NewFromInt(80)
	sessao := &model.SessaoCaixa{
		ID:              uuid.New(),
		RestauranteID:   "R1",
		AbertoPor:       "op1",
		AbertoEm:        fechadoEm.Add(-8 * time.Hour),
		SaldoInicial:    decimal.NewFromInt(50),
		Status:          model.CaixaFechada,
		FechadoEm:       &fechadoEm,
		SaldoFechamento: &saldo,
		Reforcos: []model.Reforco{{
			ID:            uuid.New(),
			Valor:         decimal.NewFromInt(30),
			Motivo:        "Um motivo comprido demais para caber na linha",
			AdicionadoPor: "op1",
			CriadoEm:      fechadoEm.Add(-2 * time.Hour),
		}},
	}
	restaurante := &model.Restaurante{ID: "R1", Nome: "Cantina Um"}

	path, err := GenerateRelatorioTurnoPDF(sessao, restaurante, storagePath)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
