package report_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/sitebook/internal/contract"
	"github.com/MrJamesThe3rd/sitebook/internal/metrics"
	"github.com/MrJamesThe3rd/sitebook/internal/report"
)

func sampleReport() report.Report {
	return report.New([]contract.Summary{
		{
			ContractID:          "1",
			ContractNumber:      "K-1",
			ContractValue:       decimal.NewFromInt(1000),
			EffectiveStatus:     contract.StatusInProgress,
			WorkHourCost:        decimal.NewFromInt(200),
			ExpenseCost:         decimal.RequireFromString("100.5"),
			TotalSpent:          decimal.RequireFromString("300.5"),
			Profit:              decimal.RequireFromString("699.5"),
			ProfitMarginPercent: decimal.RequireFromString("69.95"),
			ProgressPercent:     42,
		},
		{
			ContractID:      "2",
			ContractNumber:  "K-2",
			ContractValue:   decimal.NewFromInt(500),
			EffectiveStatus: contract.StatusClosedWithDelay,
			ExpenseCost:     decimal.NewFromInt(600),
			TotalSpent:      decimal.NewFromInt(600),
			Profit:          decimal.NewFromInt(-100),
			ProgressPercent: 100,
		},
	}, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
}

func TestParseFormat(t *testing.T) {
	type testCase struct {
		name    string
		in      string
		want    report.Format
		wantErr bool
	}

	tests := []testCase{
		{name: "Empty", in: "", want: report.FormatCSV},
		{name: "CSV", in: "csv", want: report.FormatCSV},
		{name: "UpperXLSX", in: "XLSX", want: report.FormatXLSX},
		{name: "PDF", in: " pdf ", want: report.FormatPDF},
		{name: "Unknown", in: "docx", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := report.ParseFormat(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, report.ErrUnknownFormat)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, sampleReport()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "contract_id", rows[0][0])
	assert.Equal(t, []string{"1", "K-1", "inProgress", "1000.00", "200.00", "100.50", "300.50", "699.50", "69.95", "42"}, rows[1])
	assert.Equal(t, []string{"2", "K-2", "closedWithDelay", "500.00", "0.00", "600.00", "600.00", "-100.00", "0.00", "100"}, rows[2])
}

func TestWriteXLSX(t *testing.T) {
	r := sampleReport()

	var buf bytes.Buffer
	require.NoError(t, report.WriteXLSX(&buf, r))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)

	defer f.Close()

	assert.Equal(t, []string{"Summary", "Contracts"}, f.GetSheetList())

	run, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, r.RunID.String(), run)

	count, err := f.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "2", count)

	rows, err := f.GetRows("Contracts")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "K-2", rows[2][1])
	assert.Equal(t, contract.StatusClosedWithDelay.Label(), rows[2][2])
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WritePDF(&buf, sampleReport()))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestReport_Totals(t *testing.T) {
	totals := sampleReport().Totals()

	assert.True(t, decimal.NewFromInt(1500).Equal(totals.Value))
	assert.True(t, decimal.RequireFromString("900.5").Equal(totals.Spent))
	assert.True(t, decimal.RequireFromString("599.5").Equal(totals.Profit))
	assert.Equal(t, 1, totals.Counts[contract.StatusInProgress])
	assert.Equal(t, 1, totals.Counts[contract.StatusClosedWithDelay])
}

func TestExporter_Export(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	e := report.NewExporter(m)

	for _, f := range report.Formats() {
		var buf bytes.Buffer
		require.NoError(t, e.Export(&buf, f, sampleReport()))
		assert.NotZero(t, buf.Len())
		assert.InDelta(t, 1, testutil.ToFloat64(m.ReportExports.WithLabelValues(string(f), "ok")), 0)
	}

	require.ErrorIs(t, e.Export(&bytes.Buffer{}, report.Format("docx"), sampleReport()), report.ErrUnknownFormat)
}

func TestReport_Filename(t *testing.T) {
	assert.Equal(t, "contracts_20240601.xlsx", sampleReport().Filename(report.FormatXLSX))
}
