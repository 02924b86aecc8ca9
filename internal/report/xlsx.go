package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/sitebook/internal/contract"
)

const (
	sheetSummary   = "Summary"
	sheetContracts = "Contracts"
)

// WriteXLSX writes a workbook with a totals sheet and a contracts sheet.
func WriteXLSX(w io.Writer, r Report) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", sheetSummary); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	if _, err := file.NewSheet(sheetContracts); err != nil {
		return fmt.Errorf("adding sheet: %w", err)
	}

	writeSummarySheet(file, r)

	if err := writeContractsSheet(file, r); err != nil {
		return err
	}

	file.SetActiveSheet(0)

	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

func writeSummarySheet(file *excelize.File, r Report) {
	totals := r.Totals()

	set := func(cell string, value any) {
		_ = file.SetCellValue(sheetSummary, cell, value)
	}

	set("A1", "Run")
	set("B1", r.RunID.String())
	set("A2", "As of")
	set("B2", r.AsOf.Format("02.01.2006"))
	set("A3", "Contracts")
	set("B3", len(r.Summaries))
	set("A4", "Total value")
	set("B4", totals.Value.InexactFloat64())
	set("A5", "Total spent")
	set("B5", totals.Spent.InexactFloat64())
	set("A6", "Total profit")
	set("B6", totals.Profit.InexactFloat64())

	tableRow := 8
	set(fmt.Sprintf("A%d", tableRow), "Status")
	set(fmt.Sprintf("B%d", tableRow), "Contracts")

	for i, st := range contract.Statuses() {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), st.Label())
		set(fmt.Sprintf("B%d", row), totals.Counts[st])
	}

	_ = file.SetColWidth(sheetSummary, "A", "A", 24)
	_ = file.SetColWidth(sheetSummary, "B", "B", 40)
}

func writeContractsSheet(file *excelize.File, r Report) error {
	for i, header := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}

		_ = file.SetCellValue(sheetContracts, cell, header)
	}

	for i, s := range r.Summaries {
		values := []any{
			s.ContractID,
			s.ContractNumber,
			s.EffectiveStatus.Label(),
			s.ContractValue.InexactFloat64(),
			s.WorkHourCost.InexactFloat64(),
			s.ExpenseCost.InexactFloat64(),
			s.TotalSpent.InexactFloat64(),
			s.Profit.InexactFloat64(),
			s.ProfitMarginPercent.Round(2).InexactFloat64(),
			s.ProgressPercent,
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row cell: %w", err)
		}

		if err := file.SetSheetRow(sheetContracts, cell, &values); err != nil {
			return fmt.Errorf("writing row %s: %w", s.ContractID, err)
		}
	}

	_ = file.SetColWidth(sheetContracts, "A", "C", 18)
	_ = file.SetColWidth(sheetContracts, "D", "J", 16)

	return nil
}
