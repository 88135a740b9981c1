package infra

// pdf.go — Batch record generation using go-pdf/fpdf.
// Renders an A4 batch record sheet with:
//   - Batch number, recipe, status and dates
//   - Target vs actual quantity and yield percentage
//   - The full transaction ledger (type, product, quantity, lot)
//
// The output file is saved to storagePath/batch_{number}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"batchforge/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateBatchRecordPDF writes the printable batch record for a batch and
// its ledger. storagePath is created if needed. Returns the absolute path to
// the generated file.
func GenerateBatchRecordPDF(batch *model.ManufacturingBatch, transactions []model.BatchTransaction, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("batch_%s.pdf", batch.BatchNumber)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Batch Production Record", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Batch %s", batch.BatchNumber), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Status: %s", batch.Status), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Started: %s", batch.StartDate.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	if batch.EndDate != nil {
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Closed:  %s", batch.EndDate.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	// ── Quantities ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW/3, 6, fmt.Sprintf("Target: %s", batch.TargetQuantity.String()), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/3, 6, fmt.Sprintf("Actual: %s", batch.ActualQuantity.String()), "", 0, "L", false, 0, "")
	if batch.TargetQuantity.Sign() > 0 {
		yieldPct := batch.ActualQuantity.Div(batch.TargetQuantity).Mul(decimal.NewFromInt(100)).Round(2)
		pdf.CellFormat(contentW/3, 6, fmt.Sprintf("Yield: %s%%", yieldPct.String()), "", 0, "L", false, 0, "")
	}
	pdf.Ln(9)

	// ── Separator ────────────────────────────────────────────────────────────
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Ledger table ─────────────────────────────────────────────────────────
	col1 := contentW * 0.16 // type
	col2 := contentW * 0.34 // product id
	col3 := contentW * 0.20 // quantity
	col4 := contentW * 0.30 // lot

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Type", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "Quantity", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Lot", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, t := range transactions {
		lot := ""
		if t.LotNumber != nil {
			lot = *t.LotNumber
		}
		pdf.CellFormat(col1, 5, string(t.Type), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, t.ProductID.String(), "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, t.Quantity.String(), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 5, lot, "", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
