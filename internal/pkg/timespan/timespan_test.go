//go:build unit

package timespan_test

import (
	"testing"
	"time"

	"pousada-pms/internal/pkg/timespan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewDateRange(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		r, err := timespan.NewDateRange(day(2026, 3, 10), day(2026, 3, 13))
		require.NoError(t, err)
		assert.Equal(t, 3, r.Nights())
	})

	t.Run("zero-night stay rejected", func(t *testing.T) {
		_, err := timespan.NewDateRange(day(2026, 3, 10), day(2026, 3, 10))
		assert.ErrorIs(t, err, timespan.ErrEmptyRange)
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		_, err := timespan.NewDateRange(day(2026, 3, 13), day(2026, 3, 10))
		assert.ErrorIs(t, err, timespan.ErrEmptyRange)
	})

	t.Run("timestamps normalize to midnight", func(t *testing.T) {
		r, err := timespan.NewDateRange(
			time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC),
			time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		assert.Equal(t, day(2026, 3, 10), r.Start())
		assert.Equal(t, 1, r.Nights())
	})
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name     string
		a, b     timespan.DateRange
		overlaps bool
	}{
		{
			name:     "identical ranges",
			a:        timespan.MustDateRange(day(2026, 3, 10), day(2026, 3, 12)),
			b:        timespan.MustDateRange(day(2026, 3, 10), day(2026, 3, 12)),
			overlaps: true,
		},
		{
			name:     "partial overlap",
			a:        timespan.MustDateRange(day(2026, 3, 10), day(2026, 3, 14)),
			b:        timespan.MustDateRange(day(2026, 3, 12), day(2026, 3, 16)),
			overlaps: true,
		},
		{
			name:     "contained range",
			a:        timespan.MustDateRange(day(2026, 3, 10), day(2026, 3, 20)),
			b:        timespan.MustDateRange(day(2026, 3, 12), day(2026, 3, 14)),
			overlaps: true,
		},
		{
			name:     "back-to-back stays do not overlap",
			a:        timespan.MustDateRange(day(2026, 3, 10), day(2026, 3, 12)),
			b:        timespan.MustDateRange(day(2026, 3, 12), day(2026, 3, 14)),
			overlaps: false,
		},
		{
			name:     "disjoint ranges",
			a:        timespan.MustDateRange(day(2026, 3, 10), day(2026, 3, 12)),
			b:        timespan.MustDateRange(day(2026, 3, 20), day(2026, 3, 22)),
			overlaps: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlaps, tc.a.Overlaps(tc.b))
			// Overlap must be symmetric.
			assert.Equal(t, tc.overlaps, tc.b.Overlaps(tc.a))
		})
	}
}

func TestCovers(t *testing.T) {
	outer := timespan.MustDateRange(day(2026, 3, 1), day(2026, 3, 31))
	assert.True(t, outer.Covers(timespan.MustDateRange(day(2026, 3, 10), day(2026, 3, 12))))
	assert.True(t, outer.Covers(outer))
	assert.False(t, outer.Covers(timespan.MustDateRange(day(2026, 2, 28), day(2026, 3, 2))))
	assert.False(t, outer.Covers(timespan.MustDateRange(day(2026, 3, 30), day(2026, 4, 2))))
}

func TestDays(t *testing.T) {
	r := timespan.MustDateRange(day(2026, 3, 10), day(2026, 3, 13))
	days := r.Days()
	require.Len(t, days, 3)
	assert.Equal(t, day(2026, 3, 10), days[0])
	assert.Equal(t, day(2026, 3, 12), days[2])
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 3, 10, 18, 45, 0, 0, time.UTC)
	assert.Equal(t, 5, timespan.DaysUntil(now, day(2026, 3, 15)))
	assert.Equal(t, 0, timespan.DaysUntil(now, day(2026, 3, 10)))
	assert.Equal(t, -2, timespan.DaysUntil(now, day(2026, 3, 8)))
}

func TestDaysUntilIn(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	t.Run("today follows the local wall clock, not UTC", func(t *testing.T) {
		// 01:00 UTC on Mar 11 is still the evening of Mar 10 in São Paulo.
		now := time.Date(2026, 3, 11, 1, 0, 0, 0, time.UTC)
		assert.Equal(t, 5, timespan.DaysUntilIn(now, day(2026, 3, 15), saoPaulo))
		assert.Equal(t, 4, timespan.DaysUntilIn(now, day(2026, 3, 15), time.UTC))
	})

	t.Run("stay dates are compared as stored", func(t *testing.T) {
		now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
		assert.Equal(t, 5, timespan.DaysUntilIn(now, day(2026, 3, 15), saoPaulo))
	})
}

func TestLocationFor(t *testing.T) {
	assert.Equal(t, "America/Sao_Paulo", timespan.LocationFor("America/Sao_Paulo").String())
	assert.Equal(t, time.UTC, timespan.LocationFor(""))
	assert.Equal(t, time.UTC, timespan.LocationFor("Mars/Olympus_Mons"))
}
