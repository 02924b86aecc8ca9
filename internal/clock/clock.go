// Package clock decides which calendar day the engine evaluates against.
package clock

import (
	"fmt"
	"time"
)

// Clock returns the current instant.
type Clock func() time.Time

// In returns a Clock reading the wall clock in loc.
func In(loc *time.Location) Clock {
	return func() time.Time {
		return time.Now().In(loc)
	}
}

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

// At resolves an optional YYYY-MM-DD override. An empty override means now.
func (c Clock) At(override string) (time.Time, error) {
	if override == "" {
		return c(), nil
	}

	t, err := time.ParseInLocation(time.DateOnly, override, c().Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", override)
	}

	return t, nil
}
