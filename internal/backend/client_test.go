package backend_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/sitebook/internal/backend"
	"github.com/MrJamesThe3rd/sitebook/internal/contract"
)

func TestClient_GetContracts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/contracts", r.URL.Path)
		assert.Equal(t, "Token secret", r.Header.Get("Authorization"))

		fmt.Fprint(w, `[{"id": 12, "contract_number": "K-12", "contract_value": "5000",
			"start_date": "2024-01-01T00:00:00Z", "finish_date": "2024-06-30",
			"status": "Ne progres", "closed_manually": false, "closed_date": null}]`)
	}))
	defer srv.Close()

	c := backend.NewClient(srv.URL+"/api/", "secret", time.Second)

	contracts, err := c.GetContracts(context.Background())
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	assert.Equal(t, "12", contracts[0].ID)
	assert.True(t, decimal.NewFromInt(5000).Equal(contracts[0].Value))
	assert.Equal(t, "Ne progres", contracts[0].Status)
	assert.Nil(t, contracts[0].ClosedDate)
}

func TestClient_FollowsPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/work-hours", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `{"results": [{"contract_id": "2", "hours": 1, "hourly_rate": 10}], "next": null}`)
			return
		}

		fmt.Fprint(w, `{"results": [{"contract_id": "1", "hours": "2", "rate": "7.5"}], "next": "work-hours?page=2"}`)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	entries, err := backend.NewClient(srv.URL, "", time.Second).GetWorkHours(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, decimal.NewFromInt(15).Equal(entries[0].Cost()))
	assert.True(t, decimal.NewFromInt(10).Equal(entries[1].Cost()))
}

func TestClient_GetExpensesDataEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data": [{"contract_number": "K-1", "gross": 12.5}]}`)
	}))
	defer srv.Close()

	entries, err := backend.NewClient(srv.URL, "", time.Second).GetExpenses(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "K-1", entries[0].ContractNumber)
}

func TestClient_Errors(t *testing.T) {
	type testCase struct {
		name   string
		status int
		body   string
		target error
	}

	tests := []testCase{
		{name: "ServerError", status: http.StatusInternalServerError, body: "boom"},
		{name: "NotFound", status: http.StatusNotFound, target: backend.ErrNotFound},
		{name: "BadJSON", status: http.StatusOK, body: "{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			_, err := backend.NewClient(srv.URL, "", time.Second).GetContracts(context.Background())
			require.Error(t, err)

			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestClient_UpdateLifecycle(t *testing.T) {
	type args struct {
		patch contract.Patch
	}

	type testCase struct {
		name string
		args args
		want map[string]any
	}

	closed := time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)

	tests := []testCase{
		{
			name: "Close",
			args: args{patch: contract.Patch{Status: contract.StatusClosed, ClosedManually: true, ClosedDate: &closed}},
			want: map[string]any{"status": "closed", "closed_manually": true, "closed_date": "2024-03-09"},
		},
		{
			name: "Suspend",
			args: args{patch: contract.Patch{Status: contract.StatusSuspended}},
			want: map[string]any{"status": "suspended", "closed_manually": false, "closed_date": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]any

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPatch, r.Method)
				assert.Equal(t, "/contracts/a%2Fb", r.URL.EscapedPath())
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				raw, err := io.ReadAll(r.Body)
				assert.NoError(t, err)
				assert.NoError(t, json.Unmarshal(raw, &got))

				w.WriteHeader(http.StatusNoContent)
			}))
			defer srv.Close()

			err := backend.NewClient(srv.URL, "", time.Second).UpdateLifecycle(context.Background(), "a/b", tt.args.patch)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_UpdateLifecycleNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	err := backend.NewClient(srv.URL, "", time.Second).UpdateLifecycle(context.Background(), "404", contract.Patch{Status: contract.StatusCancelled})
	require.ErrorIs(t, err, backend.ErrNotFound)
}
