//go:build unit

package pricing_test

import (
	"testing"
	"time"

	"pousada-pms/internal/domain/pricing"
	"pousada-pms/internal/pkg/timespan"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func f(v float64) *float64 { return &v }

type fixture struct {
	room  pricing.Room
	prop  pricing.Property
	rates pricing.RateSet
}

func newFixture() fixture {
	categoryID := uuid.New()
	room := pricing.Room{
		ID:         uuid.New(),
		PropertyID: uuid.New(),
		CategoryID: &categoryID,
		Name:       "Quarto 101",
		Capacity:   4,
		Active:     true,
	}
	prop := pricing.Property{
		ID:            room.PropertyID,
		BaseOneAdult:  f(80),
		BaseTwoAdults: f(120),

		AdditionalAdult: f(40),
		ChildFactor:     0.5,
		InfantMaxAge:    2,
		ChildMaxAge:     12,
		Timezone:        "UTC",
	}
	return fixture{room: room, prop: prop}
}

func resolve(t *testing.T, fx fixture, stay timespan.DateRange, party pricing.Party) pricing.Quote {
	t.Helper()
	quote, err := pricing.NewResolver().Resolve(fx.room, fx.prop, fx.rates, pricing.Input{Stay: stay, Party: party})
	require.NoError(t, err)
	return quote
}

func TestCascadePrecedence(t *testing.T) {
	stay := timespan.MustDateRange(day(2026, 7, 10), day(2026, 7, 13))
	party := pricing.Party{Adults: 2}

	t.Run("room period wins over everything", func(t *testing.T) {
		fx := newFixture()
		fx.rates = pricing.RateSet{
			RoomRatePeriods: []pricing.RoomRatePeriod{{
				ID: uuid.New(), RoomID: fx.room.ID, PeopleCount: 2,
				StartDate: day(2026, 7, 1), EndDate: day(2026, 7, 31), PricePerDay: 200,
			}},
			RoomRates: []pricing.RoomRate{{
				ID: uuid.New(), RoomID: fx.room.ID, PeopleCount: 2, PricePerDay: 150,
			}},
			CategoryRatePeriods: []pricing.CategoryRatePeriod{{
				ID: uuid.New(), CategoryID: *fx.room.CategoryID,
				StartDate: day(2026, 7, 1), EndDate: day(2026, 7, 31), PricePerDay: f(130),
			}},
			CategoryRates: []pricing.CategoryRate{{
				ID: uuid.New(), CategoryID: *fx.room.CategoryID, PricePerDay: f(110),
			}},
		}

		quote := resolve(t, fx, stay, party)
		assert.Equal(t, pricing.SourceRoomPeriod, quote.Source)
		assert.InDelta(t, 600.0, quote.Total, 0.001)
	})

	t.Run("room base when no covering period", func(t *testing.T) {
		fx := newFixture()
		fx.rates = pricing.RateSet{
			RoomRatePeriods: []pricing.RoomRatePeriod{{
				// Period ends before the stay begins.
				ID: uuid.New(), RoomID: fx.room.ID, PeopleCount: 2,
				StartDate: day(2026, 6, 1), EndDate: day(2026, 6, 30), PricePerDay: 200,
			}},
			RoomRates: []pricing.RoomRate{{
				ID: uuid.New(), RoomID: fx.room.ID, PeopleCount: 2, PricePerDay: 150,
			}},
		}

		quote := resolve(t, fx, stay, party)
		assert.Equal(t, pricing.SourceRoomBase, quote.Source)
		assert.InDelta(t, 450.0, quote.Total, 0.001)
	})

	t.Run("period covering only part of the stay is skipped", func(t *testing.T) {
		fx := newFixture()
		fx.rates = pricing.RateSet{
			RoomRatePeriods: []pricing.RoomRatePeriod{{
				ID: uuid.New(), RoomID: fx.room.ID, PeopleCount: 2,
				StartDate: day(2026, 7, 11), EndDate: day(2026, 7, 31), PricePerDay: 200,
			}},
			RoomRates: []pricing.RoomRate{{
				ID: uuid.New(), RoomID: fx.room.ID, PeopleCount: 2, PricePerDay: 150,
			}},
		}

		quote := resolve(t, fx, stay, party)
		assert.Equal(t, pricing.SourceRoomBase, quote.Source)
	})

	t.Run("people count mismatch falls through room levels", func(t *testing.T) {
		fx := newFixture()
		fx.rates = pricing.RateSet{
			RoomRates: []pricing.RoomRate{{
				ID: uuid.New(), RoomID: fx.room.ID, PeopleCount: 3, PricePerDay: 150,
			}},
			CategoryRates: []pricing.CategoryRate{{
				ID: uuid.New(), CategoryID: *fx.room.CategoryID, PricePerDay: f(110),
			}},
		}

		quote := resolve(t, fx, stay, party)
		assert.Equal(t, pricing.SourceCategoryBase, quote.Source)
		assert.InDelta(t, 330.0, quote.Total, 0.001)
	})

	t.Run("category period before category base", func(t *testing.T) {
		fx := newFixture()
		fx.rates = pricing.RateSet{
			CategoryRatePeriods: []pricing.CategoryRatePeriod{{
				ID: uuid.New(), CategoryID: *fx.room.CategoryID,
				StartDate: day(2026, 7, 1), EndDate: day(2026, 7, 31), PricePerDay: f(130),
			}},
			CategoryRates: []pricing.CategoryRate{{
				ID: uuid.New(), CategoryID: *fx.room.CategoryID, PricePerDay: f(110),
			}},
		}

		quote := resolve(t, fx, stay, party)
		assert.Equal(t, pricing.SourceCategoryPeriod, quote.Source)
	})

	t.Run("property base as last resort", func(t *testing.T) {
		fx := newFixture()
		quote := resolve(t, fx, stay, party)
		assert.Equal(t, pricing.SourcePropertyBase, quote.Source)
		assert.InDelta(t, 360.0, quote.Total, 0.001) // 120 * 3 nights
	})

	t.Run("room without category skips category levels", func(t *testing.T) {
		fx := newFixture()
		fx.room.CategoryID = nil
		fx.rates = pricing.RateSet{
			CategoryRates: []pricing.CategoryRate{{
				ID: uuid.New(), CategoryID: uuid.New(), PricePerDay: f(110),
			}},
		}

		quote := resolve(t, fx, stay, party)
		assert.Equal(t, pricing.SourcePropertyBase, quote.Source)
	})
}

func TestTotalEqualsSumOfDays(t *testing.T) {
	fx := newFixture()
	fx.rates = pricing.RateSet{
		RoomRates: []pricing.RoomRate{{
			ID: uuid.New(), RoomID: fx.room.ID, PeopleCount: 3, PricePerDay: 175.5,
		}},
	}
	stay := timespan.MustDateRange(day(2026, 7, 10), day(2026, 7, 17))

	quote := resolve(t, fx, stay, pricing.Party{Adults: 2, Children: 1})
	require.Len(t, quote.Days, 7)

	sum := 0.0
	for _, d := range quote.Days {
		sum += d.Price
	}
	assert.InDelta(t, quote.Total, sum, 0.001)
	assert.Equal(t, day(2026, 7, 10), quote.Days[0].Date)
	assert.Equal(t, day(2026, 7, 16), quote.Days[6].Date)
}

func TestComputeDayPriceArithmetic(t *testing.T) {
	stay := timespan.MustDateRange(day(2026, 7, 10), day(2026, 7, 11))

	t.Run("single adult uses base_one_adult", func(t *testing.T) {
		fx := newFixture()
		quote := resolve(t, fx, stay, pricing.Party{Adults: 1})
		assert.InDelta(t, 80.0, quote.Total, 0.001)
	})

	t.Run("three adults add additional_adult", func(t *testing.T) {
		fx := newFixture()
		quote := resolve(t, fx, stay, pricing.Party{Adults: 3})
		assert.InDelta(t, 160.0, quote.Total, 0.001) // 120 + 40
	})

	t.Run("explicit child price", func(t *testing.T) {
		fx := newFixture()
		fx.prop.ChildPrice = f(30)
		quote := resolve(t, fx, stay, pricing.Party{Adults: 2, Children: 2})
		assert.InDelta(t, 180.0, quote.Total, 0.001) // 120 + 2*30
	})

	t.Run("child factor fallback off per-adult rate", func(t *testing.T) {
		fx := newFixture()
		quote := resolve(t, fx, stay, pricing.Party{Adults: 2, Children: 1})
		assert.InDelta(t, 160.0, quote.Total, 0.001) // 120 + 80*0.5
	})

	t.Run("infants are free and do not affect occupancy", func(t *testing.T) {
		fx := newFixture()
		fx.rates = pricing.RateSet{
			RoomRates: []pricing.RoomRate{{
				ID: uuid.New(), RoomID: fx.room.ID, PeopleCount: 2, PricePerDay: 150,
			}},
		}
		quote := resolve(t, fx, stay, pricing.Party{Adults: 2, Infants: 2})
		assert.Equal(t, pricing.SourceRoomBase, quote.Source)
		assert.InDelta(t, 150.0, quote.Total, 0.001)
	})
}

func TestResolveGuards(t *testing.T) {
	stay := timespan.MustDateRange(day(2026, 7, 10), day(2026, 7, 12))

	t.Run("capacity exceeded", func(t *testing.T) {
		fx := newFixture()
		_, err := pricing.NewResolver().Resolve(fx.room, fx.prop, fx.rates, pricing.Input{
			Stay:  stay,
			Party: pricing.Party{Adults: 3, Children: 2},
		})
		assert.ErrorIs(t, err, pricing.ErrCapacityExceeded)
	})

	t.Run("capacity ignores infants", func(t *testing.T) {
		fx := newFixture()
		_, err := pricing.NewResolver().Resolve(fx.room, fx.prop, fx.rates, pricing.Input{
			Stay:  stay,
			Party: pricing.Party{Adults: 2, Children: 2, Infants: 3},
		})
		assert.NoError(t, err)
	})

	t.Run("zero adults rejected", func(t *testing.T) {
		fx := newFixture()
		_, err := pricing.NewResolver().Resolve(fx.room, fx.prop, fx.rates, pricing.Input{
			Stay:  stay,
			Party: pricing.Party{Children: 2},
		})
		assert.ErrorIs(t, err, pricing.ErrNoAdults)
	})

	t.Run("no rate anywhere", func(t *testing.T) {
		fx := newFixture()
		fx.prop.BaseOneAdult = nil
		fx.prop.BaseTwoAdults = nil
		_, err := pricing.NewResolver().Resolve(fx.room, fx.prop, fx.rates, pricing.Input{
			Stay:  stay,
			Party: pricing.Party{Adults: 2},
		})
		assert.ErrorIs(t, err, pricing.ErrNoBaseRate)
	})
}
