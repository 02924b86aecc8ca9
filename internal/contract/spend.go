package contract

import "github.com/shopspring/decimal"

// Spend is the cost attributed to one contract.
type Spend struct {
	WorkHours decimal.Decimal
	Expenses  decimal.Decimal
}

// Total is the combined work-hour and expense cost.
func (s Spend) Total() decimal.Decimal {
	return s.WorkHours.Add(s.Expenses)
}

// AggregateSpend sums the billable cost of c.
//
// Work hours match on contract id only. Expenses match on contract id; only
// when no expense carries the id are they matched on contract number instead.
// The two expense sets are never merged.
func AggregateSpend(c Contract, workHours []WorkHourEntry, expenses []ExpenseEntry) Spend {
	spend := Spend{
		WorkHours: decimal.Zero,
		Expenses:  decimal.Zero,
	}

	if c.ID != "" {
		for _, e := range workHours {
			if e.ContractID == c.ID {
				spend.WorkHours = spend.WorkHours.Add(e.Cost())
			}
		}
	}

	matched := false

	if c.ID != "" {
		for _, e := range expenses {
			if e.ContractID == c.ID {
				matched = true
				spend.Expenses = spend.Expenses.Add(e.Gross)
			}
		}
	}

	if matched || c.ContractNumber == "" {
		return spend
	}

	for _, e := range expenses {
		if e.ContractNumber == c.ContractNumber {
			spend.Expenses = spend.Expenses.Add(e.Gross)
		}
	}

	return spend
}

// Cost is hours multiplied by the hourly rate.
func (e WorkHourEntry) Cost() decimal.Decimal {
	return e.Hours.Mul(e.HourlyRate)
}

// spendIndex pre-groups entries so a whole contract list can be
// aggregated in one pass over each collection.
type spendIndex struct {
	workByID     map[string]decimal.Decimal
	expenseByID  map[string]decimal.Decimal
	expenseByNum map[string]decimal.Decimal
}

func newSpendIndex(workHours []WorkHourEntry, expenses []ExpenseEntry) *spendIndex {
	idx := &spendIndex{
		workByID:     make(map[string]decimal.Decimal),
		expenseByID:  make(map[string]decimal.Decimal),
		expenseByNum: make(map[string]decimal.Decimal),
	}

	for _, e := range workHours {
		idx.workByID[e.ContractID] = idx.workByID[e.ContractID].Add(e.Cost())
	}

	for _, e := range expenses {
		idx.expenseByID[e.ContractID] = idx.expenseByID[e.ContractID].Add(e.Gross)
		idx.expenseByNum[e.ContractNumber] = idx.expenseByNum[e.ContractNumber].Add(e.Gross)
	}

	return idx
}

// spend returns the same figures as AggregateSpend for c.
func (idx *spendIndex) spend(c Contract) Spend {
	spend := Spend{
		WorkHours: decimal.Zero,
		Expenses:  decimal.Zero,
	}

	if c.ID != "" {
		spend.WorkHours = spend.WorkHours.Add(idx.workByID[c.ID])

		if total, ok := idx.expenseByID[c.ID]; ok {
			spend.Expenses = total
			return spend
		}
	}

	if c.ContractNumber != "" {
		spend.Expenses = spend.Expenses.Add(idx.expenseByNum[c.ContractNumber])
	}

	return spend
}
