package worker

// relatorio_worker.go
// Processes end-of-shift report jobs: renders the shift PDF for a closed
// register session and mails it to the restaurant address.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/europeuzinho/sitechama-ops/internal/infra"
	"github.com/europeuzinho/sitechama-ops/internal/model"
	"github.com/europeuzinho/sitechama-ops/internal/service"
)

// RelatorioPayload is the job envelope sent to QueueRelatorio.
type RelatorioPayload struct {
	SessaoCaixaID string `json:"sessao_caixa_id"`
	RestauranteID string `json:"restaurante_id"`
}

type RelatorioWorker struct {
	caixa        service.CaixaService
	restaurantes service.RestauranteService
	mailer       *infra.Mailer
	storagePath  string
}

func NewRelatorioWorker(caixa service.CaixaService, restaurantes service.RestauranteService, mailer *infra.Mailer, storagePath string) *RelatorioWorker {
	return &RelatorioWorker{
		caixa:        caixa,
		restaurantes: restaurantes,
		mailer:       mailer,
		storagePath:  storagePath,
	}
}

// Process renders and sends one shift report. Errors are returned so the
// pool can route the job to the DLQ.
func (w *RelatorioWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload RelatorioPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("relatorio_worker: invalid payload: %w", err)
	}

	restaurante := w.restaurantes.PorID(payload.RestauranteID)
	if restaurante == nil {
		return fmt.Errorf("relatorio_worker: restaurante %s não encontrado", payload.RestauranteID)
	}

	var sessao *model.SessaoCaixa
	for _, s := range w.caixa.Sessoes(payload.RestauranteID) {
		if s.ID.String() == payload.SessaoCaixaID {
			sessao = &s
			break
		}
	}
	if sessao == nil {
		return fmt.Errorf("relatorio_worker: sessão %s não encontrada", payload.SessaoCaixaID)
	}

	pdfPath, err := infra.GenerateRelatorioTurnoPDF(sessao, restaurante, w.storagePath)
	if err != nil {
		return fmt.Errorf("relatorio_worker: render PDF: %w", err)
	}

	if restaurante.Email == "" {
		log.Warn().Str("restaurante_id", restaurante.ID).Msg("relatorio_worker: restaurante sem email — PDF gerado, envio pulado")
		return nil
	}

	subject := fmt.Sprintf("Relatório de turno — %s", restaurante.Nome)
	body := fmt.Sprintf("Turno aberto por %s em %s. Relatório em anexo.",
		sessao.AbertoPor, sessao.AbertoEm.Format("02/01/2006 15:04"))
	if err := w.mailer.SendRelatorio(restaurante.Email, subject, body, pdfPath); err != nil {
		return fmt.Errorf("relatorio_worker: send email: %w", err)
	}

	log.Info().
		Str("restaurante_id", restaurante.ID).
		Str("sessao_id", payload.SessaoCaixaID).
		Msg("relatorio_worker: relatório enviado")
	return nil
}
