package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

var (
	pdfHeaders = []string{"ID", "Number", "Status", "Value", "Work hours", "Expenses", "Spent", "Profit", "Margin %", "Progress %"}
	pdfWidths  = []float64{22, 34, 36, 27, 27, 27, 27, 27, 20, 20}
)

// WritePDF writes an A4 landscape table of the summaries with a totals row.
func WritePDF(w io.Writer, r Report) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Core fonts are cp1252; ë and ç are covered.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Contract summary", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("As of %s  |  Run %s", r.AsOf.Format("02.01.2006"), r.RunID), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	drawRow(pdf, pdfHeaders, true)

	for _, s := range r.Summaries {
		drawRow(pdf, []string{
			tr(s.ContractID),
			tr(s.ContractNumber),
			tr(s.EffectiveStatus.Label()),
			amount(s.ContractValue),
			amount(s.WorkHourCost),
			amount(s.ExpenseCost),
			amount(s.TotalSpent),
			amount(s.Profit),
			amount(s.ProfitMarginPercent),
			strconv.Itoa(s.ProgressPercent),
		}, false)
	}

	totals := r.Totals()
	drawRow(pdf, []string{
		"Total", strconv.Itoa(len(r.Summaries)), "",
		amount(totals.Value), "", "",
		amount(totals.Spent), amount(totals.Profit), "", "",
	}, true)

	return pdf.Output(w)
}

func drawRow(pdf *gofpdf.Fpdf, cols []string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}

	pdf.SetFont("Helvetica", style, 9)

	for i, col := range cols {
		align := "L"
		if i > 2 {
			align = "R"
		}

		pdf.CellFormat(pdfWidths[i], 7, col, "1", 0, align, false, 0, "")
	}

	pdf.Ln(-1)
}
