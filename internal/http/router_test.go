package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/sitebook/internal/clock"
	"github.com/MrJamesThe3rd/sitebook/internal/contract"
	"github.com/MrJamesThe3rd/sitebook/internal/dashboard"
	sitebookHttp "github.com/MrJamesThe3rd/sitebook/internal/http"
	contractHandler "github.com/MrJamesThe3rd/sitebook/internal/http/contract"
	reportHandler "github.com/MrJamesThe3rd/sitebook/internal/http/report"
	"github.com/MrJamesThe3rd/sitebook/internal/metrics"
	"github.com/MrJamesThe3rd/sitebook/internal/report"
	"github.com/MrJamesThe3rd/sitebook/internal/snapshot"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var (
	today = date(2024, 6, 1)

	contracts = []contract.Contract{
		{
			ID: "1", ContractNumber: "K-1", Value: decimal.NewFromInt(1000),
			StartDate: date(2024, 1, 1), FinishDate: date(2024, 12, 31),
		},
		{
			ID: "2", ContractNumber: "K-2", Value: decimal.NewFromInt(500),
			StartDate: date(2023, 1, 1), FinishDate: date(2023, 12, 31),
		},
	}
	workHours = []contract.WorkHourEntry{
		{ContractID: "1", Hours: decimal.NewFromInt(10), HourlyRate: decimal.NewFromInt(20)},
	}
)

func newServer(t *testing.T, setup func(m *dashboard.MockSource)) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	src := dashboard.NewMockSource(ctrl)
	setup(src)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	svc := dashboard.NewService(src, "api", m)
	c := clock.Fixed(today)

	return sitebookHttp.New(
		contractHandler.NewHandler(svc, c),
		reportHandler.NewHandler(svc, report.NewExporter(m), c),
		sitebookHttp.Options{AllowedOrigins: []string{"*"}, Gatherer: reg},
	)
}

func expectFetch(m *dashboard.MockSource) {
	m.EXPECT().GetContracts(gomock.Any()).Return(contracts, nil).AnyTimes()
	m.EXPECT().GetWorkHours(gomock.Any()).Return(workHours, nil).AnyTimes()
	m.EXPECT().GetExpenses(gomock.Any()).Return(nil, nil).AnyTimes()
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestStatuses(t *testing.T) {
	h := newServer(t, func(*dashboard.MockSource) {})

	rec := do(h, http.MethodGet, "/api/v1/statuses", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []struct {
		Key   string `json:"key"`
		Label string `json:"label"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 6)
	assert.Equal(t, "draft", got[0].Key)
}

func TestListContracts(t *testing.T) {
	type testCase struct {
		name     string
		target   string
		wantCode int
		wantIDs  []string
		wantAsOf string
	}

	tests := []testCase{
		{name: "All", target: "/api/v1/contracts", wantCode: http.StatusOK, wantIDs: []string{"1", "2"}, wantAsOf: "2024-06-01"},
		{name: "FilterCanonical", target: "/api/v1/contracts?status=inProgress", wantCode: http.StatusOK, wantIDs: []string{"1"}, wantAsOf: "2024-06-01"},
		{name: "FilterLegacy", target: "/api/v1/contracts?status=Mbyllur%20me%20vonese", wantCode: http.StatusOK, wantIDs: []string{"2"}, wantAsOf: "2024-06-01"},
		{name: "NowOverride", target: "/api/v1/contracts?status=draft&now=2023-06-01", wantCode: http.StatusOK, wantIDs: []string{"1"}, wantAsOf: "2023-06-01"},
		{name: "UnknownStatus", target: "/api/v1/contracts?status=bogus", wantCode: http.StatusBadRequest},
		{name: "BadNow", target: "/api/v1/contracts?now=yesterday", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newServer(t, expectFetch)

			rec := do(h, http.MethodGet, tt.target, "")
			require.Equal(t, tt.wantCode, rec.Code)

			if tt.wantCode != http.StatusOK {
				return
			}

			var got struct {
				AsOf      string `json:"as_of"`
				Summaries []struct {
					ContractID string `json:"contract_id"`
				} `json:"summaries"`
				Counts []struct {
					Count int `json:"count"`
				} `json:"counts"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

			ids := make([]string, 0, len(got.Summaries))
			for _, s := range got.Summaries {
				ids = append(ids, s.ContractID)
			}

			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantAsOf, got.AsOf)
			assert.Len(t, got.Counts, 6)
		})
	}
}

func TestContractSummary(t *testing.T) {
	h := newServer(t, expectFetch)

	rec := do(h, http.MethodGet, "/api/v1/contracts/1/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "K-1", got["contract_number"])
	assert.Equal(t, "inProgress", got["effective_status"])
	assert.Equal(t, "200", got["total_spent"])
	assert.Equal(t, "800", got["profit"])

	rec = do(h, http.MethodGet, "/api/v1/contracts/404/summary", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTransition(t *testing.T) {
	type testCase struct {
		name     string
		target   string
		body     string
		setup    func(m *dashboard.MockSource)
		wantCode int
	}

	tests := []testCase{
		{
			name:   "Close",
			target: "/api/v1/contracts/1/transitions",
			body:   `{"event": "close"}`,
			setup: func(m *dashboard.MockSource) {
				m.EXPECT().UpdateLifecycle(gomock.Any(), "1", gomock.Any()).Return(nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "NotAllowed",
			target:   "/api/v1/contracts/2/transitions",
			body:     `{"event": "suspend"}`,
			setup:    func(*dashboard.MockSource) {},
			wantCode: http.StatusConflict,
		},
		{
			name:     "ReopenOverdue",
			target:   "/api/v1/contracts/2/transitions",
			body:     `{"event": "reopen"}`,
			setup:    func(*dashboard.MockSource) {},
			wantCode: http.StatusConflict,
		},
		{
			name:     "UnknownEvent",
			target:   "/api/v1/contracts/1/transitions",
			body:     `{"event": "explode"}`,
			setup:    func(*dashboard.MockSource) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "BadJSON",
			target:   "/api/v1/contracts/1/transitions",
			body:     `{`,
			setup:    func(*dashboard.MockSource) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "UnknownContract",
			target:   "/api/v1/contracts/9/transitions",
			body:     `{"event": "close"}`,
			setup:    func(*dashboard.MockSource) {},
			wantCode: http.StatusNotFound,
		},
		{
			name:   "ReadOnlySource",
			target: "/api/v1/contracts/1/transitions",
			body:   `{"event": "cancel"}`,
			setup: func(m *dashboard.MockSource) {
				m.EXPECT().UpdateLifecycle(gomock.Any(), "1", gomock.Any()).Return(snapshot.ErrReadOnly)
			},
			wantCode: http.StatusMethodNotAllowed,
		},
		{
			name:   "BackendDown",
			target: "/api/v1/contracts/1/transitions",
			body:   `{"event": "cancel"}`,
			setup: func(m *dashboard.MockSource) {
				m.EXPECT().UpdateLifecycle(gomock.Any(), "1", gomock.Any()).Return(errors.New("connection refused"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newServer(t, func(m *dashboard.MockSource) {
				expectFetch(m)
				tt.setup(m)
			})

			rec := do(h, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
		})
	}
}

func TestAllowedEvents(t *testing.T) {
	h := newServer(t, expectFetch)

	rec := do(h, http.MethodGet, "/api/v1/contracts/2/transitions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Events []string `json:"events"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, []string{"close"}, got.Events)
}

func TestReportDownload(t *testing.T) {
	type testCase struct {
		name            string
		target          string
		wantCode        int
		wantContentType string
	}

	tests := []testCase{
		{name: "DefaultCSV", target: "/api/v1/reports/summaries", wantCode: http.StatusOK, wantContentType: "text/csv; charset=utf-8"},
		{name: "XLSX", target: "/api/v1/reports/summaries?format=xlsx", wantCode: http.StatusOK, wantContentType: report.FormatXLSX.ContentType()},
		{name: "PDF", target: "/api/v1/reports/summaries?format=pdf&status=inProgress", wantCode: http.StatusOK, wantContentType: "application/pdf"},
		{name: "UnknownFormat", target: "/api/v1/reports/summaries?format=doc", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newServer(t, expectFetch)

			rec := do(h, http.MethodGet, tt.target, "")
			require.Equal(t, tt.wantCode, rec.Code)

			if tt.wantCode != http.StatusOK {
				return
			}

			assert.Equal(t, tt.wantContentType, rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Header().Get("Content-Disposition"), "contracts_20240601")
			assert.NotEmpty(t, rec.Header().Get("X-Report-Run"))
			assert.NotZero(t, rec.Body.Len())
		})
	}
}

func TestCSVReportBody(t *testing.T) {
	h := newServer(t, expectFetch)

	rec := do(h, http.MethodGet, "/api/v1/reports/summaries?format=csv", "")
	require.Equal(t, http.StatusOK, rec.Code)

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1,K-1,inProgress,1000.00,200.00,0.00,200.00,800.00,80.00,41", lines[1])
}

func TestMetricsEndpoint(t *testing.T) {
	h := newServer(t, expectFetch)

	_ = do(h, http.MethodGet, "/api/v1/contracts", "")

	rec := do(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sitebook_summaries_computed_total 2")
}
