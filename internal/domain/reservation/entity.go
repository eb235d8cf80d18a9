package reservation

import (
	"errors"
	"strings"
	"time"

	"pousada-pms/internal/domain/pricing"
	"pousada-pms/internal/pkg/timespan"

	"github.com/google/uuid"
)

var (
	ErrNoAdults           = errors.New("at least one adult is required")
	ErrGuestNameRequired  = errors.New("guest name is required")
	ErrInvalidTotal       = errors.New("reservation total must be positive")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrAlreadyCancelled   = errors.New("reservation is already cancelled")
	ErrAlreadyCheckedOut  = errors.New("reservation is already checked out")
	ErrOutstandingBalance = errors.New("checkout blocked: outstanding charges pending")
)

type Guest struct {
	Name  string
	Email *string
	Phone *string
}

type Reservation struct {
	id            uuid.UUID
	roomID        uuid.UUID
	guest         Guest
	party         pricing.Party
	stay          timespan.DateRange
	status        Status
	totalValue    float64
	priceSource   pricing.Source
	priceOverride *float64
	guaranteeType *string
	notes         *string
	cancelledAt   *time.Time
	cancelReason  *string
	createdAt     time.Time
	updatedAt     time.Time
}

func newReservation(roomID uuid.UUID, guest Guest, party pricing.Party, stay timespan.DateRange, total float64, source pricing.Source, override *float64, notes *string) (*Reservation, error) {
	if party.Adults < 1 {
		return nil, ErrNoAdults
	}
	if strings.TrimSpace(guest.Name) == "" {
		return nil, ErrGuestNameRequired
	}
	if total <= 0 {
		return nil, ErrInvalidTotal
	}

	return &Reservation{
		id:            uuid.New(),
		roomID:        roomID,
		guest:         guest,
		party:         party,
		stay:          stay,
		status:        StatusPreReserva,
		totalValue:    total,
		priceSource:   source,
		priceOverride: override,
		notes:         notes,
	}, nil
}

func Reconstruct(
	id, roomID uuid.UUID,
	guest Guest,
	party pricing.Party,
	stay timespan.DateRange,
	status Status,
	totalValue float64,
	priceSource pricing.Source,
	priceOverride *float64,
	guaranteeType *string,
	notes *string,
	cancelledAt *time.Time,
	cancelReason *string,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:            id,
		roomID:        roomID,
		guest:         guest,
		party:         party,
		stay:          stay,
		status:        status,
		totalValue:    totalValue,
		priceSource:   priceSource,
		priceOverride: priceOverride,
		guaranteeType: guaranteeType,
		notes:         notes,
		cancelledAt:   cancelledAt,
		cancelReason:  cancelReason,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (r *Reservation) ID() uuid.UUID               { return r.id }
func (r *Reservation) RoomID() uuid.UUID           { return r.roomID }
func (r *Reservation) Guest() Guest                { return r.guest }
func (r *Reservation) Party() pricing.Party        { return r.party }
func (r *Reservation) Stay() timespan.DateRange    { return r.stay }
func (r *Reservation) Status() Status              { return r.status }
func (r *Reservation) TotalValue() float64         { return r.totalValue }
func (r *Reservation) PriceSource() pricing.Source { return r.priceSource }
func (r *Reservation) PriceOverride() *float64     { return r.priceOverride }
func (r *Reservation) GuaranteeType() *string      { return r.guaranteeType }
func (r *Reservation) Notes() *string              { return r.notes }
func (r *Reservation) CancelledAt() *time.Time     { return r.cancelledAt }
func (r *Reservation) CancelReason() *string       { return r.cancelReason }
func (r *Reservation) CreatedAt() time.Time        { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time        { return r.updatedAt }

func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelado
}

// Reserve moves a pre-booking into the committed state.
func (r *Reservation) Reserve() error {
	return r.transition(StatusReservado)
}

// Confirm optionally records how the stay is guaranteed (card, deposit...).
func (r *Reservation) Confirm(guaranteeType *string) error {
	if err := r.transition(StatusConfirmado); err != nil {
		return err
	}
	if guaranteeType != nil && strings.TrimSpace(*guaranteeType) != "" {
		r.guaranteeType = guaranteeType
	}
	return nil
}

func (r *Reservation) CheckIn() error {
	return r.transition(StatusCheckedIn)
}

// CheckOut requires every ancillary charge to be settled first.
func (r *Reservation) CheckOut(outstandingBalance float64) error {
	if outstandingBalance > 0 {
		return ErrOutstandingBalance
	}
	return r.transition(StatusCheckedOut)
}

func (r *Reservation) Cancel(now time.Time, reason *string) error {
	if r.status == StatusCancelado {
		return ErrAlreadyCancelled
	}
	if r.status == StatusCheckedOut {
		return ErrAlreadyCheckedOut
	}
	if err := r.transition(StatusCancelado); err != nil {
		return err
	}
	r.cancelledAt = &now
	r.cancelReason = reason
	return nil
}

func (r *Reservation) MarkNoShow() error {
	return r.transition(StatusNoShow)
}

// Reprice replaces the stored total with a fresh cascade quote.
func (r *Reservation) Reprice(quote pricing.Quote) error {
	if quote.Total <= 0 {
		return ErrInvalidTotal
	}
	r.totalValue = quote.Total
	r.priceSource = quote.Source
	r.priceOverride = nil
	return nil
}

// OverridePrice bypasses the cascade entirely. Callers audit this as a
// distinct event from system-computed pricing.
func (r *Reservation) OverridePrice(value float64) error {
	if value <= 0 {
		return ErrInvalidTotal
	}
	r.totalValue = value
	r.priceOverride = &value
	return nil
}

// Rebook moves the reservation to a different room and/or dates. The
// caller re-validates capacity and overlap before persisting.
func (r *Reservation) Rebook(roomID uuid.UUID, stay timespan.DateRange, party pricing.Party) error {
	if party.Adults < 1 {
		return ErrNoAdults
	}
	r.roomID = roomID
	r.stay = stay
	r.party = party
	return nil
}

func (r *Reservation) transition(next Status) error {
	if !r.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	r.status = next
	return nil
}
