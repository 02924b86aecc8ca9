package contract

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/sitebook/internal/contract"
	"github.com/MrJamesThe3rd/sitebook/internal/dashboard"
)

type summaryResponse struct {
	ContractID          string          `json:"contract_id"`
	ContractNumber      string          `json:"contract_number"`
	ContractValue       decimal.Decimal `json:"contract_value"`
	EffectiveStatus     contract.Status `json:"effective_status"`
	StatusLabel         string          `json:"status_label"`
	WorkHourCost        decimal.Decimal `json:"work_hour_cost"`
	ExpenseCost         decimal.Decimal `json:"expense_cost"`
	TotalSpent          decimal.Decimal `json:"total_spent"`
	Profit              decimal.Decimal `json:"profit"`
	ProfitMarginPercent decimal.Decimal `json:"profit_margin_percent"`
	ProgressPercent     int             `json:"progress_percent"`
}

type statusCountResponse struct {
	Status contract.Status `json:"status"`
	Label  string          `json:"label"`
	Count  int             `json:"count"`
}

type listResponse struct {
	AsOf      string                `json:"as_of"`
	Counts    []statusCountResponse `json:"counts"`
	Summaries []summaryResponse     `json:"summaries"`
}

type statusResponse struct {
	Key   contract.Status `json:"key"`
	Label string          `json:"label"`
}

func toResponse(s contract.Summary) summaryResponse {
	return summaryResponse{
		ContractID:          s.ContractID,
		ContractNumber:      s.ContractNumber,
		ContractValue:       s.ContractValue.Round(2),
		EffectiveStatus:     s.EffectiveStatus,
		StatusLabel:         s.EffectiveStatus.Label(),
		WorkHourCost:        s.WorkHourCost.Round(2),
		ExpenseCost:         s.ExpenseCost.Round(2),
		TotalSpent:          s.TotalSpent.Round(2),
		Profit:              s.Profit.Round(2),
		ProfitMarginPercent: s.ProfitMarginPercent.Round(2),
		ProgressPercent:     s.ProgressPercent,
	}
}

func toResponseList(summaries []contract.Summary) []summaryResponse {
	resp := make([]summaryResponse, len(summaries))
	for i, s := range summaries {
		resp[i] = toResponse(s)
	}

	return resp
}

func toListResponse(all, filtered []contract.Summary, asOf time.Time) listResponse {
	counts := dashboard.CountByStatus(all)

	resp := listResponse{
		AsOf:      asOf.Format(time.DateOnly),
		Counts:    make([]statusCountResponse, len(counts)),
		Summaries: toResponseList(filtered),
	}

	for i, c := range counts {
		resp.Counts[i] = statusCountResponse{Status: c.Status, Label: c.Status.Label(), Count: c.Count}
	}

	return resp
}
