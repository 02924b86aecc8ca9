package snapshot

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/MrJamesThe3rd/sitebook/internal/contract"
	enc "github.com/MrJamesThe3rd/sitebook/internal/encoding"
	"github.com/MrJamesThe3rd/sitebook/internal/record"
)

// columns maps a canonical column name to the header spellings seen in
// exports, after normalizeHeader.
var columns = map[string][]string{
	"id":              {"id", "contract_id"},
	"contract_id":     {"contract_id", "contractid", "contract", "id_kontrate", "kontrata"},
	"contract_number": {"contract_number", "contractnumber", "nr_kontrates", "numri_kontrates"},
	"contract_value":  {"contract_value", "contractvalue", "value", "vlera", "vlera_kontrates"},
	"start_date":      {"start_date", "startdate", "data_fillimit"},
	"finish_date":     {"finish_date", "finishdate", "end_date", "data_perfundimit"},
	"status":          {"status", "statusi"},
	"closed_manually": {"closed_manually", "closedmanually", "mbyllur_manualisht"},
	"closed_date":     {"closed_date", "closeddate", "data_mbylljes"},
	"hours":           {"hours", "ore", "oret"},
	"hourly_rate":     {"hourly_rate", "hourlyrate", "cmimi_ore", "paga_ore"},
	"rate":            {"rate"},
	"gross":           {"gross", "bruto", "shuma", "total"},
}

var headerReplacer = strings.NewReplacer(" ", "_", "-", "_", ".", "", "ë", "e", "ç", "c", "Ë", "e", "Ç", "c")

func normalizeHeader(s string) string {
	return headerReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// sheet describes one CSV layout: the canonical columns that must appear in
// the header row and the ones read when present.
type sheet struct {
	name     string
	required []string
	optional []string
}

var (
	contractsSheet = sheet{
		name:     "contracts",
		required: []string{"id"},
		optional: []string{"contract_number", "contract_value", "start_date", "finish_date", "status", "closed_manually", "closed_date"},
	}
	workHoursSheet = sheet{
		name:     "work hours",
		required: []string{"contract_id", "hours"},
		optional: []string{"hourly_rate", "rate"},
	}
	expensesSheet = sheet{
		name:     "expenses",
		required: []string{"gross"},
		optional: []string{"contract_id", "contract_number"},
	}
)

// table is a decoded CSV sheet addressed by canonical column name.
type table struct {
	index map[string]int
	rows  [][]string
}

func readTable(r io.Reader, sh sheet) (*table, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	first, _ := br.Peek(1024)

	reader := csv.NewReader(br)
	reader.Comma = sniffDelimiter(first)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return &table{index: map[string]int{}}, nil
	}

	// Spreadsheet exports often carry title lines above the header.
	for rowIdx, row := range rows {
		if t, ok := matchHeader(sh, row); ok {
			t.rows = rows[rowIdx+1:]
			return t, nil
		}
	}

	return nil, fmt.Errorf("no %s header found: expected columns %s", sh.name, strings.Join(sh.required, ", "))
}

// matchHeader maps the sheet's columns onto row when it holds every
// required column.
func matchHeader(sh sheet, row []string) (*table, bool) {
	headers := make(map[string]int, len(row))

	for i, h := range row {
		if name := normalizeHeader(h); name != "" {
			if _, seen := headers[name]; !seen {
				headers[name] = i
			}
		}
	}

	t := &table{index: make(map[string]int)}

	for _, name := range slices.Concat(sh.required, sh.optional) {
		for _, alias := range columns[name] {
			if i, ok := headers[alias]; ok {
				t.index[name] = i
				break
			}
		}
	}

	for _, name := range sh.required {
		if !t.has(name) {
			return nil, false
		}
	}

	return t, true
}

// sniffDelimiter picks ';' when the header line has more semicolons than commas.
func sniffDelimiter(head []byte) rune {
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}

	if bytes.Count(head, []byte{';'}) > bytes.Count(head, []byte{','}) {
		return ';'
	}

	return ','
}

func (t *table) has(name string) bool {
	_, ok := t.index[name]
	return ok
}

func (t *table) cell(row []string, name string) string {
	i, ok := t.index[name]
	if !ok || i >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[i])
}

func (t *table) number(row []string, name string) record.Number {
	return record.NewNumber(contract.ParseAmount(t.cell(row, name)))
}

func (t *table) date(row []string, name string) record.Date {
	return record.NewDate(contract.ParseDate(t.cell(row, name)))
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}

func contractsFromCSV(r io.Reader, out any) error {
	t, err := readTable(r, contractsSheet)
	if err != nil {
		return err
	}

	rs := out.(*[]record.Contract)

	for _, row := range t.rows {
		if blank(row) {
			continue
		}

		c := record.Contract{
			ID:             record.Text(t.cell(row, "id")),
			ContractNumber: record.Text(t.cell(row, "contract_number")),
			ContractValue:  t.number(row, "contract_value"),
			StartDate:      t.date(row, "start_date"),
			FinishDate:     t.date(row, "finish_date"),
			Status:         record.Text(t.cell(row, "status")),
			ClosedManually: record.Flag(parseFlag(t.cell(row, "closed_manually"))),
		}

		if closed := t.date(row, "closed_date"); !closed.Time().IsZero() {
			c.ClosedDate = &closed
		}

		*rs = append(*rs, c)
	}

	return nil
}

func workHoursFromCSV(r io.Reader, out any) error {
	t, err := readTable(r, workHoursSheet)
	if err != nil {
		return err
	}

	rs := out.(*[]record.WorkHour)

	for _, row := range t.rows {
		if blank(row) {
			continue
		}

		wh := record.WorkHour{
			ContractID: record.Text(t.cell(row, "contract_id")),
			Hours:      t.number(row, "hours"),
		}

		if t.has("hourly_rate") && t.cell(row, "hourly_rate") != "" {
			wh.HourlyRate = new(t.number(row, "hourly_rate"))
		} else if t.has("rate") {
			wh.Rate = new(t.number(row, "rate"))
		}

		*rs = append(*rs, wh)
	}

	return nil
}

func expensesFromCSV(r io.Reader, out any) error {
	t, err := readTable(r, expensesSheet)
	if err != nil {
		return err
	}

	rs := out.(*[]record.Expense)

	for _, row := range t.rows {
		if blank(row) {
			continue
		}

		*rs = append(*rs, record.Expense{
			ContractID:     record.Text(t.cell(row, "contract_id")),
			ContractNumber: record.Text(t.cell(row, "contract_number")),
			Gross:          t.number(row, "gross"),
		})
	}

	return nil
}

func parseFlag(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "po", "x":
		return true
	}

	return false
}
