//go:build unit

package queries_test

import (
	"context"
	"testing"

	"pousada-pms/internal/domain/availability"
	"pousada-pms/internal/domain/pricing"
	"pousada-pms/internal/infra"
	"pousada-pms/internal/pkg/timespan"
	"pousada-pms/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAvailabilityStore struct {
	prop       pricing.Property
	candidates []availability.Candidate
}

func (f *fakeAvailabilityStore) PropertyByID(_ context.Context, id uuid.UUID) (*pricing.Property, error) {
	if id != f.prop.ID {
		return nil, infra.WrapRepoErr("property not found", nil, infra.KindNotFound)
	}
	prop := f.prop
	return &prop, nil
}

func (f *fakeAvailabilityStore) CandidatesForStay(_ context.Context, _ uuid.UUID, _ timespan.DateRange) ([]availability.Candidate, error) {
	return f.candidates, nil
}

func TestAvailabilitySearch(t *testing.T) {
	prop := pricing.Property{ID: uuid.New(), BaseOneAdult: ptr(80.0), BaseTwoAdults: ptr(120.0)}
	roomA := pricing.Room{ID: uuid.New(), PropertyID: prop.ID, Number: "A", Capacity: 2, Active: true}
	store := &fakeAvailabilityStore{
		prop:       prop,
		candidates: []availability.Candidate{{Room: roomA}},
	}
	q := queries.NewAvailabilityQueries(store, availability.NewChecker(pricing.NewResolver()))
	stay := timespan.MustDateRange(day(2026, 3, 10), day(2026, 3, 12))

	t.Run("each room carries its total and day breakdown", func(t *testing.T) {
		views, err := q.Search(context.Background(), prop.ID, stay, pricing.Party{Adults: 2})
		require.NoError(t, err)
		require.Len(t, views, 1)

		v := views[0]
		assert.Equal(t, roomA.ID, v.RoomID)
		assert.Equal(t, 240.0, v.Total)
		require.Len(t, v.Days, 2)
		assert.Equal(t, "2026-03-10", v.Days[0].Date)
		assert.Equal(t, v.Total, v.Days[0].Price+v.Days[1].Price)
	})

	t.Run("unknown property", func(t *testing.T) {
		_, err := q.Search(context.Background(), uuid.New(), stay, pricing.Party{Adults: 1})
		assert.ErrorIs(t, err, queries.ErrPropertyNotFound)
	})

	t.Run("a party without adults is an invalid search", func(t *testing.T) {
		_, err := q.Search(context.Background(), prop.ID, stay, pricing.Party{Children: 2})
		assert.ErrorIs(t, err, queries.ErrInvalidSearch)
	})
}
