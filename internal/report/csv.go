package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV writes one row per summary with amounts to two decimals.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, s := range r.Summaries {
		row := []string{
			s.ContractID,
			s.ContractNumber,
			string(s.EffectiveStatus),
			amount(s.ContractValue),
			amount(s.WorkHourCost),
			amount(s.ExpenseCost),
			amount(s.TotalSpent),
			amount(s.Profit),
			amount(s.ProfitMarginPercent),
			strconv.Itoa(s.ProgressPercent),
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %s: %w", s.ContractID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}
