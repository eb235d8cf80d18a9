//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"pousada-pms/internal/domain/pricing"
	"pousada-pms/internal/domain/reservation"
	"pousada-pms/internal/pkg/timespan"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func fixtureRoom() (pricing.Room, pricing.Property, pricing.RateSet) {
	room := pricing.Room{
		ID:         uuid.New(),
		PropertyID: uuid.New(),
		Number:     "101",
		Capacity:   3,
		Active:     true,
	}
	prop := pricing.Property{
		ID:            room.PropertyID,
		BaseOneAdult:  ptr(80.0),
		BaseTwoAdults: ptr(120.0),
	}
	return room, prop, pricing.RateSet{}
}

func makeReservation(t *testing.T, status reservation.Status) *reservation.Reservation {
	t.Helper()
	room, prop, rates := fixtureRoom()
	factory := reservation.NewFactory(pricing.NewResolver())
	res, err := factory.CreateReservation(room, prop, rates, reservation.NewReservationInput{
		Guest: reservation.Guest{Name: "Maria Souza"},
		Party: pricing.Party{Adults: 2},
		Stay:  timespan.MustDateRange(day(2026, 7, 10), day(2026, 7, 13)),
	})
	require.NoError(t, err)
	walkTo(t, res, status)
	return res
}

// walkTo advances a fresh reservation along the happy path to the wanted
// status.
func walkTo(t *testing.T, res *reservation.Reservation, status reservation.Status) {
	t.Helper()
	steps := map[reservation.Status]func() error{
		reservation.StatusReservado:  res.Reserve,
		reservation.StatusConfirmado: func() error { return res.Confirm(nil) },
		reservation.StatusCheckedIn:  res.CheckIn,
		reservation.StatusCheckedOut: func() error { return res.CheckOut(0) },
	}
	order := []reservation.Status{
		reservation.StatusReservado,
		reservation.StatusConfirmado,
		reservation.StatusCheckedIn,
		reservation.StatusCheckedOut,
	}
	for _, s := range order {
		if res.Status() == status {
			return
		}
		require.NoError(t, steps[s]())
	}
}

func TestCreateReservation(t *testing.T) {
	room, prop, rates := fixtureRoom()
	factory := reservation.NewFactory(pricing.NewResolver())
	stay := timespan.MustDateRange(day(2026, 7, 10), day(2026, 7, 13))

	t.Run("prices through the cascade", func(t *testing.T) {
		res, err := factory.CreateReservation(room, prop, rates, reservation.NewReservationInput{
			Guest: reservation.Guest{Name: "Maria Souza"},
			Party: pricing.Party{Adults: 2},
			Stay:  stay,
		})
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusPreReserva, res.Status())
		assert.Equal(t, 360.0, res.TotalValue())
		assert.Equal(t, pricing.SourcePropertyBase, res.PriceSource())
		assert.Nil(t, res.PriceOverride())
	})

	t.Run("override bypasses the resolver", func(t *testing.T) {
		// No rates at all; the override makes pricing unnecessary.
		res, err := factory.CreateReservation(room, pricing.Property{ID: prop.ID}, rates, reservation.NewReservationInput{
			Guest:         reservation.Guest{Name: "Maria Souza"},
			Party:         pricing.Party{Adults: 2},
			Stay:          stay,
			PriceOverride: ptr(500.0),
		})
		require.NoError(t, err)
		assert.Equal(t, 500.0, res.TotalValue())
		require.NotNil(t, res.PriceOverride())
		assert.Equal(t, 500.0, *res.PriceOverride())
	})

	t.Run("override still enforces capacity", func(t *testing.T) {
		_, err := factory.CreateReservation(room, prop, rates, reservation.NewReservationInput{
			Guest:         reservation.Guest{Name: "Maria Souza"},
			Party:         pricing.Party{Adults: 3, Children: 1},
			Stay:          stay,
			PriceOverride: ptr(500.0),
		})
		assert.ErrorIs(t, err, pricing.ErrCapacityExceeded)
	})

	t.Run("requires a guest name", func(t *testing.T) {
		_, err := factory.CreateReservation(room, prop, rates, reservation.NewReservationInput{
			Guest: reservation.Guest{Name: "   "},
			Party: pricing.Party{Adults: 1},
			Stay:  stay,
		})
		assert.ErrorIs(t, err, reservation.ErrGuestNameRequired)
	})

	t.Run("requires at least one adult", func(t *testing.T) {
		_, err := factory.CreateReservation(room, prop, rates, reservation.NewReservationInput{
			Guest: reservation.Guest{Name: "Maria Souza"},
			Party: pricing.Party{Children: 2},
			Stay:  stay,
		})
		assert.ErrorIs(t, err, pricing.ErrNoAdults)
	})
}

func TestStatusTransitions(t *testing.T) {
	now := day(2026, 7, 1)

	t.Run("happy path reaches checkout", func(t *testing.T) {
		res := makeReservation(t, reservation.StatusPreReserva)
		require.NoError(t, res.Reserve())
		require.NoError(t, res.Confirm(ptr("credit_card")))
		require.NoError(t, res.CheckIn())
		require.NoError(t, res.CheckOut(0))
		assert.Equal(t, reservation.StatusCheckedOut, res.Status())
		require.NotNil(t, res.GuaranteeType())
		assert.Equal(t, "credit_card", *res.GuaranteeType())
	})

	t.Run("pre-reserva can confirm directly", func(t *testing.T) {
		res := makeReservation(t, reservation.StatusPreReserva)
		assert.NoError(t, res.Confirm(nil))
	})

	t.Run("cannot check in before confirming", func(t *testing.T) {
		res := makeReservation(t, reservation.StatusReservado)
		assert.ErrorIs(t, res.CheckIn(), reservation.ErrInvalidTransition)
	})

	t.Run("cannot skip to checkout", func(t *testing.T) {
		res := makeReservation(t, reservation.StatusConfirmado)
		assert.ErrorIs(t, res.CheckOut(0), reservation.ErrInvalidTransition)
	})

	t.Run("cancel works from any pre-checkout state", func(t *testing.T) {
		for _, status := range []reservation.Status{
			reservation.StatusPreReserva,
			reservation.StatusReservado,
			reservation.StatusConfirmado,
			reservation.StatusCheckedIn,
		} {
			res := makeReservation(t, status)
			require.NoError(t, res.Cancel(now, ptr("guest request")), "from %s", status)
			assert.Equal(t, reservation.StatusCancelado, res.Status())
			require.NotNil(t, res.CancelledAt())
			assert.Equal(t, now, *res.CancelledAt())
		}
	})

	t.Run("second cancel fails explicitly", func(t *testing.T) {
		res := makeReservation(t, reservation.StatusConfirmado)
		require.NoError(t, res.Cancel(now, nil))
		assert.ErrorIs(t, res.Cancel(now, nil), reservation.ErrAlreadyCancelled)
	})

	t.Run("cancel after checkout fails explicitly", func(t *testing.T) {
		res := makeReservation(t, reservation.StatusCheckedOut)
		assert.ErrorIs(t, res.Cancel(now, nil), reservation.ErrAlreadyCheckedOut)
	})

	t.Run("no show from committed states only", func(t *testing.T) {
		res := makeReservation(t, reservation.StatusConfirmado)
		require.NoError(t, res.MarkNoShow())

		done := makeReservation(t, reservation.StatusCheckedOut)
		assert.ErrorIs(t, done.MarkNoShow(), reservation.ErrInvalidTransition)
	})
}

func TestCheckOutBalance(t *testing.T) {
	res := makeReservation(t, reservation.StatusCheckedIn)
	assert.ErrorIs(t, res.CheckOut(35.50), reservation.ErrOutstandingBalance)

	// Settling the charges unblocks checkout.
	require.NoError(t, res.CheckOut(0))
	assert.Equal(t, reservation.StatusCheckedOut, res.Status())
}

func TestOverridePrice(t *testing.T) {
	res := makeReservation(t, reservation.StatusReservado)

	require.NoError(t, res.OverridePrice(999.99))
	assert.Equal(t, 999.99, res.TotalValue())
	require.NotNil(t, res.PriceOverride())

	assert.ErrorIs(t, res.OverridePrice(0), reservation.ErrInvalidTotal)
	assert.ErrorIs(t, res.OverridePrice(-10), reservation.ErrInvalidTotal)
}

func TestReprice(t *testing.T) {
	res := makeReservation(t, reservation.StatusReservado)
	require.NoError(t, res.OverridePrice(500))

	// A fresh quote clears the manual override.
	require.NoError(t, res.Reprice(pricing.Quote{Source: pricing.SourceRoomBase, Total: 420}))
	assert.Equal(t, 420.0, res.TotalValue())
	assert.Equal(t, pricing.SourceRoomBase, res.PriceSource())
	assert.Nil(t, res.PriceOverride())
}
