package contract

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contract is a construction contract as delivered by the backend.
// The engine reads it but never mutates it.
type Contract struct {
	ID             string
	ContractNumber string
	Value          decimal.Decimal
	StartDate      time.Time // zero when missing or unparseable
	FinishDate     time.Time // zero when missing or unparseable
	Status         string    // stored status, legacy or canonical
	ClosedManually bool
	ClosedDate     *time.Time
}

// WorkHourEntry is a timesheet line billed against a contract.
type WorkHourEntry struct {
	ContractID string
	Hours      decimal.Decimal
	HourlyRate decimal.Decimal
}

// ExpenseEntry is an expense or supplier invoice attributed to a contract.
type ExpenseEntry struct {
	ContractID     string
	ContractNumber string
	Gross          decimal.Decimal
}

// Summary is the derived financial picture of one contract. It has no
// identity of its own and must be recomputed whenever the inputs change.
type Summary struct {
	ContractID          string
	ContractNumber      string
	ContractValue       decimal.Decimal
	EffectiveStatus     Status
	WorkHourCost        decimal.Decimal
	ExpenseCost         decimal.Decimal
	TotalSpent          decimal.Decimal
	Profit              decimal.Decimal
	ProfitMarginPercent decimal.Decimal
	ProgressPercent     int
}
