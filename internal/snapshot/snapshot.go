// Package snapshot serves contracts, work hours and expenses from a directory
// of exported files so reports can be produced without the backend.
//
// The directory holds contracts, work_hours and expenses, each as .json,
// .yaml/.yml or .csv. Only contracts is mandatory.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/MrJamesThe3rd/sitebook/internal/contract"
	"github.com/MrJamesThe3rd/sitebook/internal/record"
)

// ErrReadOnly is returned for any write against a snapshot.
var ErrReadOnly = errors.New("snapshot source is read-only")

const (
	fileContracts = "contracts"
	fileWorkHours = "work_hours"
	fileExpenses  = "expenses"
)

var extensions = []string{".json", ".yaml", ".yml", ".csv"}

type Source struct {
	dir string
}

func New(dir string) *Source {
	return &Source{dir: dir}
}

func (s *Source) Name() string { return "snapshot" }

func (s *Source) GetContracts(_ context.Context) ([]contract.Contract, error) {
	var rs []record.Contract
	if err := s.load(fileContracts, &rs, contractsFromCSV, true); err != nil {
		return nil, err
	}

	return record.Contracts(rs), nil
}

func (s *Source) GetWorkHours(_ context.Context) ([]contract.WorkHourEntry, error) {
	var rs []record.WorkHour
	if err := s.load(fileWorkHours, &rs, workHoursFromCSV, false); err != nil {
		return nil, err
	}

	return record.WorkHours(rs), nil
}

func (s *Source) GetExpenses(_ context.Context) ([]contract.ExpenseEntry, error) {
	var rs []record.Expense
	if err := s.load(fileExpenses, &rs, expensesFromCSV, false); err != nil {
		return nil, err
	}

	return record.Expenses(rs), nil
}

func (s *Source) UpdateLifecycle(_ context.Context, _ string, _ contract.Patch) error {
	return ErrReadOnly
}

// load decodes the first existing <base>.<ext> into out. CSV files go
// through fromCSV, which must fill out itself.
func (s *Source) load(base string, out any, fromCSV func(io.Reader, any) error, required bool) error {
	path, ext, ok := s.find(base)
	if !ok {
		if required {
			return fmt.Errorf("%s: %w", filepath.Join(s.dir, base), os.ErrNotExist)
		}

		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	switch ext {
	case ".json":
		err = json.NewDecoder(f).Decode(out)
	case ".yaml", ".yml":
		err = yaml.NewDecoder(f).Decode(out)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case ".csv":
		err = fromCSV(f, out)
	}

	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	return nil
}

func (s *Source) find(base string) (string, string, bool) {
	for _, ext := range extensions {
		path := filepath.Join(s.dir, base+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, ext, true
		}
	}

	return "", "", false
}
