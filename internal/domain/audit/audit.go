package audit

import (
	"time"

	"github.com/google/uuid"
)

// Actions recorded against reservations. The log is append-only; entries
// are written in the same transaction as the change they describe, except
// failed-attempt entries, which get their own transaction because the main
// one rolls back.
const (
	ActionReservationCreated    = "reservation.created"
	ActionStatusChanged         = "reservation.status_changed"
	ActionPriceOverridden       = "reservation.price_overridden"
	ActionCancellationProcessed = "cancellation_processed"
	ActionInvoiceFailed         = "reservation.invoice_creation_failed"
	ActionConsumptionRegistered = "minibar.stock_decremented"
	ActionConsumptionRejected   = "minibar.consumption_failed_insufficient_stock"
	ActionBlockCreated          = "room_block.created"
	ActionBlockRemoved          = "room_block.removed"
)

type Entry struct {
	ID            uuid.UUID
	ReservationID *uuid.UUID
	ActorID       *uuid.UUID
	Action        string
	Detail        map[string]any
	RecordedAt    time.Time
}

func NewEntry(reservationID, actorID *uuid.UUID, action string, detail map[string]any, at time.Time) Entry {
	return Entry{
		ID:            uuid.New(),
		ReservationID: reservationID,
		ActorID:       actorID,
		Action:        action,
		Detail:        detail,
		RecordedAt:    at,
	}
}
