package record_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/MrJamesThe3rd/sitebook/internal/record"
)

func TestContract_JSON(t *testing.T) {
	type testCase struct {
		name   string
		body   string
		verify func(t *testing.T, r record.Contract)
	}

	tests := []testCase{
		{
			name: "NumericIdsAndAmounts",
			body: `{"id": 5, "contract_number": 1024, "contract_value": 1500.5,
				"start_date": "2024-01-01", "finish_date": "2024-01-11T00:00:00.000Z",
				"status": "Ne progres", "closed_manually": false, "closed_date": null}`,
			verify: func(t *testing.T, r record.Contract) {
				c := r.ToContract()
				assert.Equal(t, "5", c.ID)
				assert.Equal(t, "1024", c.ContractNumber)
				assert.Equal(t, "1500.5", c.Value.String())
				assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), c.StartDate)
				assert.True(t, time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC).Equal(c.FinishDate))
				assert.Equal(t, "Ne progres", c.Status)
				assert.False(t, c.ClosedManually)
				assert.Nil(t, c.ClosedDate)
			},
		},
		{
			name: "FormattedStringsAndManualClosure",
			body: `{"id": "a-1", "contract_number": "C-7", "contract_value": "12.500,00",
				"start_date": "01/02/2024", "finish_date": "garbage",
				"closed_manually": 1, "closed_date": "2024-03-01"}`,
			verify: func(t *testing.T, r record.Contract) {
				c := r.ToContract()
				assert.Equal(t, "12500", c.Value.String())
				assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), c.StartDate)
				assert.True(t, c.FinishDate.IsZero())
				assert.True(t, c.ClosedManually)
				require.NotNil(t, c.ClosedDate)
				assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *c.ClosedDate)
			},
		},
		{
			name: "UnreadableValue",
			body: `{"id": 1, "contract_value": "tbd", "closed_date": ""}`,
			verify: func(t *testing.T, r record.Contract) {
				c := r.ToContract()
				assert.True(t, c.Value.IsZero())
				assert.Nil(t, c.ClosedDate)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r record.Contract
			require.NoError(t, json.Unmarshal([]byte(tt.body), &r))
			tt.verify(t, r)
		})
	}
}

func TestWorkHour_LegacyRate(t *testing.T) {
	var rs []record.WorkHour

	body := `[
		{"contract_id": 1, "hours": 8, "hourly_rate": 15},
		{"contract_id": 1, "hours": "4", "rate": "12,5"},
		{"contract_id": 1, "hours": 2, "hourly_rate": 10, "rate": 99},
		{"contract_id": 1, "hours": "x", "hourly_rate": 10},
		{"contract_id": 1, "hours": 3}
	]`
	require.NoError(t, json.Unmarshal([]byte(body), &rs))

	entries := record.WorkHours(rs)
	require.Len(t, entries, 5)

	assert.Equal(t, "120", entries[0].Cost().String())
	assert.Equal(t, "50", entries[1].Cost().String())
	assert.Equal(t, "20", entries[2].Cost().String())
	assert.Equal(t, "0", entries[3].Cost().String())
	assert.Equal(t, "0", entries[4].Cost().String())
}

func TestExpense_JSONAmounts(t *testing.T) {
	var rs []record.Expense

	body := `[
		{"contract_id": 1, "gross": 1e3},
		{"contract_id": 1, "gross": "1,500"},
		{"contract_id": 1, "gross": "12abc34"}
	]`
	require.NoError(t, json.Unmarshal([]byte(body), &rs))

	entries := record.Expenses(rs)
	require.Len(t, entries, 3)

	assert.Equal(t, "1000", entries[0].Gross.String())
	assert.Equal(t, "1500", entries[1].Gross.String())
	assert.True(t, entries[2].Gross.IsZero())
}

func TestExpense_YAML(t *testing.T) {
	var rs []record.Expense

	body := `
- contract_id: 5
  contract_number: C1
  gross: 100
- contract_number: "C2"
  gross: "1.234,50"
- contract_id: ~
  gross: n/a
`
	require.NoError(t, yaml.Unmarshal([]byte(body), &rs))

	entries := record.Expenses(rs)
	require.Len(t, entries, 3)

	assert.Equal(t, "5", entries[0].ContractID)
	assert.Equal(t, "C1", entries[0].ContractNumber)
	assert.Equal(t, "100", entries[0].Gross.String())
	assert.Equal(t, "", entries[1].ContractID)
	assert.Equal(t, "1234.5", entries[1].Gross.String())
	assert.Equal(t, "", entries[2].ContractID)
	assert.True(t, entries[2].Gross.IsZero())
}

func TestContract_YAML(t *testing.T) {
	var r record.Contract

	body := `
id: 9
contract_number: 2024-009
contract_value: 800
start_date: 2024-01-01
finish_date: 2024-02-01
status: Mbyllur me vonese
closed_manually: true
closed_date: null
`
	require.NoError(t, yaml.Unmarshal([]byte(body), &r))

	c := r.ToContract()
	assert.Equal(t, "9", c.ID)
	assert.Equal(t, "2024-009", c.ContractNumber)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), c.FinishDate)
	assert.True(t, c.ClosedManually)
	assert.Nil(t, c.ClosedDate)
}
