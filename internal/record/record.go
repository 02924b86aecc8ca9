// Package record decodes contract, work-hour and expense records as the
// backend and its exports deliver them, and converts them to engine types.
package record

import (
	"github.com/MrJamesThe3rd/sitebook/internal/contract"
)

// Contract is the wire form of a contract.
type Contract struct {
	ID             Text   `json:"id" yaml:"id"`
	ContractNumber Text   `json:"contract_number" yaml:"contract_number"`
	ContractValue  Number `json:"contract_value" yaml:"contract_value"`
	StartDate      Date   `json:"start_date" yaml:"start_date"`
	FinishDate     Date   `json:"finish_date" yaml:"finish_date"`
	Status         Text   `json:"status" yaml:"status"`
	ClosedManually Flag   `json:"closed_manually" yaml:"closed_manually"`
	ClosedDate     *Date  `json:"closed_date" yaml:"closed_date"`
}

// WorkHour is the wire form of a timesheet line. Older records carry the
// rate under "rate" instead of "hourly_rate".
type WorkHour struct {
	ContractID Text    `json:"contract_id" yaml:"contract_id"`
	Hours      Number  `json:"hours" yaml:"hours"`
	HourlyRate *Number `json:"hourly_rate" yaml:"hourly_rate"`
	Rate       *Number `json:"rate" yaml:"rate"`
}

// Expense is the wire form of an expense or supplier invoice.
type Expense struct {
	ContractID     Text   `json:"contract_id" yaml:"contract_id"`
	ContractNumber Text   `json:"contract_number" yaml:"contract_number"`
	Gross          Number `json:"gross" yaml:"gross"`
}

// ToContract converts r to the engine type.
func (r Contract) ToContract() contract.Contract {
	c := contract.Contract{
		ID:             string(r.ID),
		ContractNumber: string(r.ContractNumber),
		Value:          r.ContractValue.Decimal(),
		StartDate:      r.StartDate.Time(),
		FinishDate:     r.FinishDate.Time(),
		Status:         string(r.Status),
		ClosedManually: bool(r.ClosedManually),
	}

	if r.ClosedDate != nil && !r.ClosedDate.Time().IsZero() {
		c.ClosedDate = new(r.ClosedDate.Time())
	}

	return c
}

// ToEntry converts r to the engine type, preferring hourly_rate over rate.
func (r WorkHour) ToEntry() contract.WorkHourEntry {
	rate := r.HourlyRate
	if rate == nil {
		rate = r.Rate
	}

	e := contract.WorkHourEntry{
		ContractID: string(r.ContractID),
		Hours:      r.Hours.Decimal(),
	}

	if rate != nil {
		e.HourlyRate = rate.Decimal()
	}

	return e
}

// ToEntry converts r to the engine type.
func (r Expense) ToEntry() contract.ExpenseEntry {
	return contract.ExpenseEntry{
		ContractID:     string(r.ContractID),
		ContractNumber: string(r.ContractNumber),
		Gross:          r.Gross.Decimal(),
	}
}

func Contracts(rs []Contract) []contract.Contract {
	out := make([]contract.Contract, len(rs))
	for i, r := range rs {
		out[i] = r.ToContract()
	}

	return out
}

func WorkHours(rs []WorkHour) []contract.WorkHourEntry {
	out := make([]contract.WorkHourEntry, len(rs))
	for i, r := range rs {
		out[i] = r.ToEntry()
	}

	return out
}

func Expenses(rs []Expense) []contract.ExpenseEntry {
	out := make([]contract.ExpenseEntry, len(rs))
	for i, r := range rs {
		out[i] = r.ToEntry()
	}

	return out
}
