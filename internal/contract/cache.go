package contract

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchellh/hashstructure/v2"
)

// DataVersion fingerprints the work-hour and expense collections. Equal
// collections yield equal versions.
func DataVersion(workHours []WorkHourEntry, expenses []ExpenseEntry) (uint64, error) {
	v, err := hashstructure.Hash(struct {
		WorkHours []WorkHourEntry
		Expenses  []ExpenseEntry
	}{workHours, expenses}, hashstructure.FormatV2, &hashstructure.HashOptions{UseStringer: true})
	if err != nil {
		return 0, fmt.Errorf("hashing spend inputs: %w", err)
	}

	return v, nil
}

type spendKey struct {
	id     string
	number string
}

// SpendCache memoizes per-contract spend for one data version. Any change to
// the work-hour or expense collections drops every entry. It is safe for
// concurrent use.
type SpendCache struct {
	mu      sync.Mutex
	version uint64
	entries map[spendKey]Spend

	onLookup func(hit bool)
}

// NewSpendCache creates an empty cache. onLookup, when not nil, is called
// once per contract lookup.
func NewSpendCache(onLookup func(hit bool)) *SpendCache {
	return &SpendCache{
		entries:  make(map[spendKey]Spend),
		onLookup: onLookup,
	}
}

// Summaries behaves like ComputeSummaries, reusing memoized spend when the
// collections have not changed since the previous call.
func (c *SpendCache) Summaries(contracts []Contract, workHours []WorkHourEntry, expenses []ExpenseEntry, now time.Time) []Summary {
	version, err := DataVersion(workHours, expenses)
	if err != nil {
		return ComputeSummaries(contracts, workHours, expenses, now)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if version != c.version {
		c.version = version
		c.entries = make(map[spendKey]Spend)
	}

	var idx *spendIndex

	summaries := make([]Summary, 0, len(contracts))

	for _, ct := range contracts {
		key := spendKey{id: ct.ID, number: ct.ContractNumber}

		spend, hit := c.entries[key]
		if !hit {
			if idx == nil {
				idx = newSpendIndex(workHours, expenses)
			}

			spend = idx.spend(ct)
			c.entries[key] = spend
		}

		if c.onLookup != nil {
			c.onLookup(hit)
		}

		summaries = append(summaries, Summarize(ct, spend, now))
	}

	return summaries
}

// Len reports the number of memoized contracts.
func (c *SpendCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
