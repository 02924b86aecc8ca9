// Package report renders contract summaries as CSV, XLSX or PDF.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/sitebook/internal/contract"
	"github.com/MrJamesThe3rd/sitebook/internal/metrics"
)

var ErrUnknownFormat = errors.New("unknown report format")

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

func Formats() []Format {
	return []Format{FormatCSV, FormatXLSX, FormatPDF}
}

// ParseFormat accepts a format name case-insensitively. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Report is one rendering run over a set of summaries.
type Report struct {
	RunID     uuid.UUID
	AsOf      time.Time
	Summaries []contract.Summary
}

func New(summaries []contract.Summary, asOf time.Time) Report {
	return Report{
		RunID:     uuid.New(),
		AsOf:      asOf,
		Summaries: summaries,
	}
}

// Filename is the suggested download name.
func (r Report) Filename(f Format) string {
	return fmt.Sprintf("contracts_%s.%s", r.AsOf.Format("20060102"), f)
}

type Totals struct {
	Value  decimal.Decimal
	Spent  decimal.Decimal
	Profit decimal.Decimal
	Counts map[contract.Status]int
}

func (r Report) Totals() Totals {
	t := Totals{Counts: make(map[contract.Status]int)}

	for _, s := range r.Summaries {
		t.Value = t.Value.Add(s.ContractValue)
		t.Spent = t.Spent.Add(s.TotalSpent)
		t.Profit = t.Profit.Add(s.Profit)
		t.Counts[s.EffectiveStatus]++
	}

	return t
}

// Exporter writes reports and records export metrics.
type Exporter struct {
	metrics *metrics.Metrics
}

// NewExporter creates an Exporter; m may be nil.
func NewExporter(m *metrics.Metrics) *Exporter {
	return &Exporter{metrics: m}
}

func (e *Exporter) Export(w io.Writer, f Format, r Report) error {
	started := time.Now()

	var err error

	switch f {
	case FormatCSV:
		err = WriteCSV(w, r)
	case FormatXLSX:
		err = WriteXLSX(w, r)
	case FormatPDF:
		err = WritePDF(w, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	e.metrics.ObserveExport(string(f), started, err)

	if err != nil {
		return fmt.Errorf("writing %s report: %w", f, err)
	}

	return nil
}

var columns = []string{
	"contract_id",
	"contract_number",
	"status",
	"contract_value",
	"work_hour_cost",
	"expense_cost",
	"total_spent",
	"profit",
	"profit_margin_percent",
	"progress_percent",
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
