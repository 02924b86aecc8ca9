package contract

import "time"

// Summarize assembles the summary of c from an already aggregated spend.
func Summarize(c Contract, spend Spend, now time.Time) Summary {
	total := spend.Total()
	profit := ComputeProfit(c.Value, total)

	return Summary{
		ContractID:          c.ID,
		ContractNumber:      c.ContractNumber,
		ContractValue:       c.Value,
		EffectiveStatus:     Resolve(c, now),
		WorkHourCost:        spend.WorkHours,
		ExpenseCost:         spend.Expenses,
		TotalSpent:          total,
		Profit:              profit.Profit,
		ProfitMarginPercent: profit.MarginPercent,
		ProgressPercent:     EstimateProgress(c.StartDate, c.FinishDate, now),
	}
}

// ComputeSummaries returns one summary per contract, in input order.
func ComputeSummaries(contracts []Contract, workHours []WorkHourEntry, expenses []ExpenseEntry, now time.Time) []Summary {
	idx := newSpendIndex(workHours, expenses)

	summaries := make([]Summary, 0, len(contracts))
	for _, c := range contracts {
		summaries = append(summaries, Summarize(c, idx.spend(c), now))
	}

	return summaries
}

// FilterByStatus keeps the summaries whose effective status is s.
func FilterByStatus(summaries []Summary, s Status) []Summary {
	out := make([]Summary, 0, len(summaries))

	for _, sum := range summaries {
		if sum.EffectiveStatus == s {
			out = append(out, sum)
		}
	}

	return out
}
