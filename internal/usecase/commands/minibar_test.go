//go:build unit

package commands_test

import (
	"context"
	"testing"

	"pousada-pms/internal/domain/audit"
	"pousada-pms/internal/domain/minibar"
	"pousada-pms/internal/pkg/clock"
	"pousada-pms/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterConsumption(t *testing.T) {
	setup := func(t *testing.T) (*harness, commands.MinibarCommands, uuid.UUID, uuid.UUID) {
		h := newHarness(t)
		resID := h.createReservation(t, day(2026, 8, 20), day(2026, 8, 23))

		productID := uuid.New()
		h.state.products[productID] = minibar.ReconstructProduct(productID, "água", 6.50, 5, true)

		cmd := commands.NewMinibarCommands(&fakeUoW{state: h.state}, clock.NewMockClock(day(2026, 8, 21)))
		return h, cmd, resID, productID
	}

	t.Run("charges the reservation and decrements stock", func(t *testing.T) {
		h, cmd, resID, productID := setup(t)

		id, err := cmd.RegisterConsumption(context.Background(), h.actor, commands.RegisterConsumptionInput{
			ReservationID: resID,
			ProductID:     productID,
			Quantity:      2,
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		assert.Equal(t, 3, h.state.products[productID].Stock())

		require.Len(t, h.state.consumptions, 1)
		assert.Equal(t, 13.00, h.state.consumptions[0].Total())

		actions := h.state.auditActions()
		assert.Equal(t, audit.ActionConsumptionRegistered, actions[len(actions)-1])
	})

	t.Run("oversell is rejected, nothing is charged, the attempt is audited", func(t *testing.T) {
		h, cmd, resID, productID := setup(t)

		_, err := cmd.RegisterConsumption(context.Background(), h.actor, commands.RegisterConsumptionInput{
			ReservationID: resID,
			ProductID:     productID,
			Quantity:      6,
		})
		assert.ErrorIs(t, err, minibar.ErrInsufficientStock)
		assert.Empty(t, h.state.consumptions)
		assert.Equal(t, 5, h.state.products[productID].Stock())

		actions := h.state.auditActions()
		assert.Equal(t, audit.ActionConsumptionRejected, actions[len(actions)-1])

		entry := h.state.auditLog[len(h.state.auditLog)-1]
		assert.Equal(t, 6, entry.Detail["requested"])
		assert.Equal(t, 5, entry.Detail["available"])
	})

	t.Run("closed reservation cannot be charged", func(t *testing.T) {
		h, cmd, resID, productID := setup(t)
		_, err := h.cmd.Cancel(context.Background(), h.actor, resID, nil)
		require.NoError(t, err)

		_, err = cmd.RegisterConsumption(context.Background(), h.actor, commands.RegisterConsumptionInput{
			ReservationID: resID,
			ProductID:     productID,
			Quantity:      1,
		})
		assert.ErrorIs(t, err, commands.ErrConsumptionInvalid)
	})

	t.Run("unknown product", func(t *testing.T) {
		h, cmd, resID, _ := setup(t)
		_, err := cmd.RegisterConsumption(context.Background(), h.actor, commands.RegisterConsumptionInput{
			ReservationID: resID,
			ProductID:     uuid.New(),
			Quantity:      1,
		})
		assert.ErrorIs(t, err, commands.ErrProductNotFound)
	})
}
