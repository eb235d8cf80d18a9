//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"pousada-pms/internal/domain/pricing"
	"pousada-pms/internal/infra"
	"pousada-pms/internal/pkg/timespan"
	"pousada-pms/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

type fakePricingStore struct {
	room  pricing.Room
	prop  pricing.Property
	rates pricing.RateSet
}

func (f *fakePricingStore) RoomByID(_ context.Context, id uuid.UUID) (*pricing.Room, error) {
	if id != f.room.ID {
		return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	room := f.room
	return &room, nil
}

func (f *fakePricingStore) PropertyByID(_ context.Context, _ uuid.UUID) (*pricing.Property, error) {
	prop := f.prop
	return &prop, nil
}

func (f *fakePricingStore) RatesForRoom(_ context.Context, _ pricing.Room) (pricing.RateSet, error) {
	return f.rates, nil
}

func TestCalculate(t *testing.T) {
	propertyID := uuid.New()
	roomID := uuid.New()
	store := &fakePricingStore{
		room: pricing.Room{ID: roomID, PropertyID: propertyID, Number: "101", Capacity: 3, Active: true},
		prop: pricing.Property{ID: propertyID, BaseOneAdult: ptr(80.0), BaseTwoAdults: ptr(120.0)},
	}
	q := queries.NewPricingQueries(store, pricing.NewResolver())
	stay := timespan.MustDateRange(day(2026, 3, 10), day(2026, 3, 13))

	t.Run("quote carries total and the ordered per-night breakdown", func(t *testing.T) {
		view, err := q.Calculate(context.Background(), roomID, stay, pricing.Party{Adults: 2})
		require.NoError(t, err)
		assert.Equal(t, 360.0, view.Total)
		assert.Equal(t, 3, view.Nights)

		require.Len(t, view.Days, 3)
		assert.Equal(t, "2026-03-10", view.Days[0].Date)
		assert.Equal(t, "2026-03-12", view.Days[2].Date)
		sum := 0.0
		for _, d := range view.Days {
			sum += d.Price
		}
		assert.Equal(t, view.Total, sum)
	})

	t.Run("detailed quote names the cascade source", func(t *testing.T) {
		view, err := q.CalculateDetailed(context.Background(), roomID, stay, pricing.Party{Adults: 2, Children: 1})
		require.NoError(t, err)
		assert.Equal(t, pricing.SourcePropertyBase.String(), view.Source)
		require.Len(t, view.Days, 3)
	})

	t.Run("party over capacity is rejected", func(t *testing.T) {
		_, err := q.Calculate(context.Background(), roomID, stay, pricing.Party{Adults: 4})
		assert.ErrorIs(t, err, pricing.ErrCapacityExceeded)
	})

	t.Run("unknown room", func(t *testing.T) {
		_, err := q.Calculate(context.Background(), uuid.New(), stay, pricing.Party{Adults: 1})
		assert.ErrorIs(t, err, queries.ErrRoomNotFound)
	})
}
