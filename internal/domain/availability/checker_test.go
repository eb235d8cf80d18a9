//go:build unit

package availability_test

import (
	"testing"
	"time"

	"pousada-pms/internal/domain/availability"
	"pousada-pms/internal/domain/block"
	"pousada-pms/internal/domain/pricing"
	"pousada-pms/internal/pkg/timespan"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func room(number string, capacity int) pricing.Room {
	return pricing.Room{
		ID:         uuid.New(),
		PropertyID: uuid.New(),
		Number:     number,
		Capacity:   capacity,
		Active:     true,
	}
}

func baseProperty() pricing.Property {
	return pricing.Property{
		ID:            uuid.New(),
		BaseOneAdult:  ptr(80.0),
		BaseTwoAdults: ptr(120.0),
	}
}

func TestSearch(t *testing.T) {
	checker := availability.NewChecker(pricing.NewResolver())
	prop := baseProperty()
	stay := timespan.MustDateRange(day(2026, 3, 10), day(2026, 3, 12))
	party := pricing.Party{Adults: 2}

	t.Run("room with an overlapping hold is excluded, back-to-back is not", func(t *testing.T) {
		roomA := room("A", 2)
		roomB := room("B", 2)

		candidates := []availability.Candidate{
			// Existing reservation Mar 10-12 overlaps the searched stay.
			{Room: roomA, Holds: []timespan.DateRange{timespan.MustDateRange(day(2026, 3, 10), day(2026, 3, 12))}},
			// Existing reservation Mar 12-14 starts on the searched checkout day.
			{Room: roomB, Holds: []timespan.DateRange{timespan.MustDateRange(day(2026, 3, 12), day(2026, 3, 14))}},
		}

		results, err := checker.Search(prop, candidates, stay, party)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, roomB.ID, results[0].Room.ID)
	})

	t.Run("party size decides between a conflicted double and a free single", func(t *testing.T) {
		double := room("A", 2)
		single := room("B", 1)
		candidates := []availability.Candidate{
			{Room: double, Holds: []timespan.DateRange{timespan.MustDateRange(day(2026, 3, 10), day(2026, 3, 12))}},
			{Room: single},
		}

		results, err := checker.Search(prop, candidates, stay, pricing.Party{Adults: 2})
		require.NoError(t, err)
		assert.Empty(t, results)

		results, err = checker.Search(prop, candidates, stay, pricing.Party{Adults: 1})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, single.ID, results[0].Room.ID)
	})

	t.Run("inactive rooms are excluded", func(t *testing.T) {
		r := room("C", 2)
		r.Active = false
		results, err := checker.Search(prop, []availability.Candidate{{Room: r}}, stay, party)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("capacity filters on adults plus children, infants ride free", func(t *testing.T) {
		r := room("D", 3)
		candidates := []availability.Candidate{{Room: r}}

		results, err := checker.Search(prop, candidates, stay, pricing.Party{Adults: 2, Children: 1, Infants: 2})
		require.NoError(t, err)
		assert.Len(t, results, 1)

		results, err = checker.Search(prop, candidates, stay, pricing.Party{Adults: 2, Children: 2})
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("blocked nights exclude the room", func(t *testing.T) {
		r := room("E", 2)
		b, err := block.New(r.ID, timespan.MustDateRange(day(2026, 3, 11), day(2026, 3, 13)), block.TypeMaintenance, "", block.RecurrenceNone, nil)
		require.NoError(t, err)

		results, err := checker.Search(prop, []availability.Candidate{{Room: r, Blocks: []block.Block{b}}}, stay, party)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("weekly block only excludes stays touching a recurrence day", func(t *testing.T) {
		r := room("F", 2)
		// Anchored on Mar 3; recurrence days are Mar 3, 10, 17...
		b, err := block.New(r.ID, timespan.MustDateRange(day(2026, 3, 3), day(2026, 3, 31)), block.TypeCleaning, "", block.RecurrenceWeekly, nil)
		require.NoError(t, err)
		cand := []availability.Candidate{{Room: r, Blocks: []block.Block{b}}}

		results, err := checker.Search(prop, cand, timespan.MustDateRange(day(2026, 3, 10), day(2026, 3, 12)), party)
		require.NoError(t, err)
		assert.Empty(t, results)

		results, err = checker.Search(prop, cand, timespan.MustDateRange(day(2026, 3, 11), day(2026, 3, 13)), party)
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("unpriceable rooms are dropped silently", func(t *testing.T) {
		r := room("G", 2)
		bare := pricing.Property{ID: prop.ID}

		results, err := checker.Search(bare, []availability.Candidate{{Room: r}}, stay, party)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("results keep input order and carry quotes", func(t *testing.T) {
		first := room("H", 2)
		second := room("I", 2)

		results, err := checker.Search(prop, []availability.Candidate{{Room: first}, {Room: second}}, stay, party)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, first.ID, results[0].Room.ID)
		assert.Equal(t, second.ID, results[1].Room.ID)
		assert.Equal(t, 240.0, results[0].Quote.Total)
		assert.Equal(t, pricing.SourcePropertyBase, results[0].Quote.Source)
	})

	t.Run("zero adults is an error", func(t *testing.T) {
		_, err := checker.Search(prop, nil, stay, pricing.Party{Children: 1})
		assert.ErrorIs(t, err, pricing.ErrNoAdults)
	})
}
