package infra

// pdf.go — thermal receipt-style PDFs:
//   - reinforcement receipt (amount, reason, operator, timestamp)
//   - end-of-shift report for a closed register session
// Files are written under storagePath, created if needed.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/europeuzinho/sitechama-ops/internal/model"
)

// receipt paper ≈ 74mm × 105mm (A7-ish, not in fpdf's named sizes)
func newReceiptPDF() *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()
	return pdf
}

// GenerateReforcoPDF renders the receipt of one immutable reinforcement
// record. Returns the absolute path of the generated file.
func GenerateReforcoPDF(reforco *model.Reforco, restaurante *model.Restaurante, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("reforco_%s.pdf", reforco.ID))

	pdf := newReceiptPDF()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, restaurante.Nome, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Comprovante de Reforço de Caixa", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, reforco.CriadoEm.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, "Operador: "+reforco.AdicionadoPor, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, "Motivo: "+reforco.Motivo, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "R$ "+reforco.Valor.StringFixed(2), "", 1, "C", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 6)
	pdf.CellFormat(contentW, 4, "Registro imutável — "+reforco.ID.String(), "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerateRelatorioTurnoPDF renders the shift report of a closed register
// session: opening and declared closing balances, every reinforcement,
// and the expected balance for manual reconciliation.
func GenerateRelatorioTurnoPDF(sessao *model.SessaoCaixa, restaurante *model.Restaurante, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("turno_%s.pdf", sessao.ID))

	pdf := newReceiptPDF()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, restaurante.Nome, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Relatório de Turno de Caixa", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "Aberto:  "+sessao.AbertoEm.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	if sessao.FechadoEm != nil {
		pdf.CellFormat(contentW, 4, "Fechado: "+sessao.FechadoEm.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 4, "Operador: "+sessao.AbertoPor, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.68
	col2 := contentW * 0.32

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1, 5, "Saldo inicial:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "R$ "+sessao.SaldoInicial.StringFixed(2), "", 1, "R", false, 0, "")

	for _, r := range sessao.Reforcos {
		motivo := r.Motivo
		if len(motivo) > 20 {
			motivo = motivo[:19] + "…"
		}
		pdf.CellFormat(col1, 5, "Reforço — "+motivo, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, "R$ "+r.Valor.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(1)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 6, "Saldo esperado:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "R$ "+sessao.SaldoEsperado().StringFixed(2), "", 1, "R", false, 0, "")

	if sessao.SaldoFechamento != nil {
		pdf.CellFormat(col1, 6, "Saldo declarado:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, "R$ "+sessao.SaldoFechamento.StringFixed(2), "", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
