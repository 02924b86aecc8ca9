package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/sitebook/internal/clock"
)

func TestClock_At(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)
	c := clock.Fixed(fixed)

	got, err := c.At("")
	require.NoError(t, err)
	assert.Equal(t, fixed, got)

	got, err = c.At("2023-12-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), got)

	_, err = c.At("31/12/2023")
	require.Error(t, err)
}

func TestIn(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	assert.Equal(t, loc, clock.In(loc)().Location())
}
