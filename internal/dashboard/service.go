// Package dashboard serves contract summaries and lifecycle actions on top
// of a data source.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/sitebook/internal/contract"
	"github.com/MrJamesThe3rd/sitebook/internal/metrics"
)

var ErrNotFound = errors.New("contract not found")

//go:generate mockgen -source=service.go -destination=source_mock.go -package=dashboard
type Source interface {
	GetContracts(ctx context.Context) ([]contract.Contract, error)
	GetWorkHours(ctx context.Context) ([]contract.WorkHourEntry, error)
	GetExpenses(ctx context.Context) ([]contract.ExpenseEntry, error)
	UpdateLifecycle(ctx context.Context, id string, patch contract.Patch) error
}

type Service struct {
	source     Source
	sourceName string
	cache      *contract.SpendCache
	metrics    *metrics.Metrics
}

// NewService creates a Service reading from source. sourceName labels fetch
// metrics; m may be nil.
func NewService(source Source, sourceName string, m *metrics.Metrics) *Service {
	return &Service{
		source:     source,
		sourceName: sourceName,
		cache:      contract.NewSpendCache(m.ObserveCacheLookup),
		metrics:    m,
	}
}

type Filter struct {
	Status *contract.Status
}

// Dataset is one consistent read of the three collections.
type Dataset struct {
	Contracts []contract.Contract
	WorkHours []contract.WorkHourEntry
	Expenses  []contract.ExpenseEntry
}

// Fetch reads the three collections concurrently.
func (s *Service) Fetch(ctx context.Context) (*Dataset, error) {
	started := time.Now()

	var ds Dataset

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		ds.Contracts, err = s.source.GetContracts(gctx)

		return err
	})

	g.Go(func() error {
		var err error
		ds.WorkHours, err = s.source.GetWorkHours(gctx)

		return err
	})

	g.Go(func() error {
		var err error
		ds.Expenses, err = s.source.GetExpenses(gctx)

		return err
	})

	err := g.Wait()
	s.metrics.ObserveFetch(s.sourceName, started, err)

	if err != nil {
		return nil, fmt.Errorf("fetching from %s: %w", s.sourceName, err)
	}

	slog.Debug("fetched dataset",
		"source", s.sourceName,
		"contracts", len(ds.Contracts),
		"work_hours", len(ds.WorkHours),
		"expenses", len(ds.Expenses),
		"duration", time.Since(started),
	)

	return &ds, nil
}

// Summaries computes the summary of every contract as of now, keeping only
// those matching filter.
func (s *Service) Summaries(ctx context.Context, now time.Time, filter Filter) ([]contract.Summary, error) {
	ds, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	summaries := s.cache.Summaries(ds.Contracts, ds.WorkHours, ds.Expenses, now)
	s.metrics.ObserveSummaries(len(summaries))

	if filter.Status != nil {
		summaries = contract.FilterByStatus(summaries, *filter.Status)
	}

	return summaries, nil
}

// Summary computes the summary of the contract with the given id.
func (s *Service) Summary(ctx context.Context, id string, now time.Time) (contract.Summary, error) {
	ds, err := s.Fetch(ctx)
	if err != nil {
		return contract.Summary{}, err
	}

	c, err := find(ds.Contracts, id)
	if err != nil {
		return contract.Summary{}, err
	}

	s.metrics.ObserveSummaries(1)

	return contract.Summarize(c, contract.AggregateSpend(c, ds.WorkHours, ds.Expenses), now), nil
}

// Allowed returns the events that apply to the contract with the given id.
func (s *Service) Allowed(ctx context.Context, id string, now time.Time) ([]contract.Event, error) {
	contracts, err := s.source.GetContracts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}

	c, err := find(contracts, id)
	if err != nil {
		return nil, err
	}

	return contract.Allowed(c, now), nil
}

// Transition applies event to the contract with the given id, stores the
// resulting fields and returns the updated summary.
func (s *Service) Transition(ctx context.Context, id string, event contract.Event, now time.Time) (contract.Summary, error) {
	ds, err := s.Fetch(ctx)
	if err != nil {
		return contract.Summary{}, err
	}

	c, err := find(ds.Contracts, id)
	if err != nil {
		return contract.Summary{}, err
	}

	patch, err := contract.Transition(c, event, now)
	if err != nil {
		s.metrics.ObserveTransition(string(event), "rejected")
		return contract.Summary{}, err
	}

	if err := s.source.UpdateLifecycle(ctx, id, patch); err != nil {
		s.metrics.ObserveTransition(string(event), "error")
		return contract.Summary{}, fmt.Errorf("storing transition: %w", err)
	}

	s.metrics.ObserveTransition(string(event), "ok")

	slog.Info("contract transitioned",
		"contract_id", id,
		"event", event,
		"from", contract.Resolve(c, now),
		"to", patch.Status,
	)

	c = patch.Apply(c)

	return contract.Summarize(c, contract.AggregateSpend(c, ds.WorkHours, ds.Expenses), now), nil
}

// StatusCount is the number of contracts in one effective status.
type StatusCount struct {
	Status contract.Status
	Count  int
}

// CountByStatus tallies summaries per status, in the order of
// contract.Statuses.
func CountByStatus(summaries []contract.Summary) []StatusCount {
	counts := make(map[contract.Status]int, len(summaries))
	for _, sum := range summaries {
		counts[sum.EffectiveStatus]++
	}

	statuses := contract.Statuses()

	out := make([]StatusCount, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, StatusCount{Status: st, Count: counts[st]})
	}

	return out
}

func find(contracts []contract.Contract, id string) (contract.Contract, error) {
	if id == "" {
		return contract.Contract{}, ErrNotFound
	}

	for _, c := range contracts {
		if c.ID == id {
			return c, nil
		}
	}

	return contract.Contract{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}
