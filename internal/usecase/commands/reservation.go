package commands

import (
	"context"
	"log/slog"
	"time"

	"pousada-pms/internal/domain/audit"
	"pousada-pms/internal/domain/availability"
	"pousada-pms/internal/domain/cancellation"
	"pousada-pms/internal/domain/minibar"
	"pousada-pms/internal/domain/pricing"
	"pousada-pms/internal/domain/reservation"
	"pousada-pms/internal/infra"
	"pousada-pms/internal/pkg/clock"
	"pousada-pms/internal/pkg/errs"
	"pousada-pms/internal/pkg/timespan"
	"pousada-pms/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound            = errs.New("room not found")
	ErrPropertyNotFound        = errs.New("property not found")
	ErrReservationNotFound     = errs.New("reservation not found")
	ErrRoomUnavailable         = errs.New("room is not available for the requested dates")
	ErrInvalidStayRange        = errs.New("invalid stay range")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// Actor identifies the authenticated operator issuing a command. Property
// scoping always comes from the token, never from the request body.
type Actor struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
}

type CreateReservationInput struct {
	RoomID        uuid.UUID
	GuestName     string
	GuestEmail    *string
	GuestPhone    *string
	Adults        int
	Children      int
	Infants       int
	CheckIn       time.Time
	CheckOut      time.Time
	Notes         *string
	PriceOverride *float64
}

type RebookReservationInput struct {
	RoomID   uuid.UUID
	Adults   int
	Children int
	Infants  int
	CheckIn  time.Time
	CheckOut time.Time
}

type CancelResult struct {
	RefundPercent  int
	RefundAmount   float64
	RetainedAmount float64
	Reason         string
	PolicyID       *uuid.UUID
	RuleID         *uuid.UUID
}

type CheckOutInput struct {
	// PaidAmount is what the desk collected against minibar charges.
	PaidAmount float64
}

type ReservationCommands interface {
	Create(ctx context.Context, actor Actor, in CreateReservationInput) (uuid.UUID, error)
	Rebook(ctx context.Context, actor Actor, id uuid.UUID, in RebookReservationInput) error
	Confirm(ctx context.Context, actor Actor, id uuid.UUID, guaranteeType *string) error
	CheckIn(ctx context.Context, actor Actor, id uuid.UUID) error
	CheckOut(ctx context.Context, actor Actor, id uuid.UUID, in CheckOutInput) error
	Cancel(ctx context.Context, actor Actor, id uuid.UUID, reason *string) (*CancelResult, error)
	MarkNoShow(ctx context.Context, actor Actor, id uuid.UUID) error
	OverridePrice(ctx context.Context, actor Actor, id uuid.UUID, value float64) error
}

type reservationCommandsImpl struct {
	uow     shared.UnitOfWork
	factory *reservation.Factory
	checker availability.Checker
	engine  cancellation.Engine
	invoice InvoiceService
	clock   clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	factory *reservation.Factory,
	checker availability.Checker,
	engine cancellation.Engine,
	invoice InvoiceService,
	clock clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:     uow,
		factory: factory,
		checker: checker,
		engine:  engine,
		invoice: invoice,
		clock:   clock,
	}
}

func (c *reservationCommandsImpl) Create(ctx context.Context, actor Actor, in CreateReservationInput) (uuid.UUID, error) {
	stay, err := timespan.NewDateRange(in.CheckIn, in.CheckOut)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidStayRange)
	}
	party := pricing.Party{Adults: in.Adults, Children: in.Children, Infants: in.Infants}

	var (
		reservationID uuid.UUID
		invoiceTotal  float64
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		room, err := tx.Rooms().LockByID(ctx, tx.DB(), in.RoomID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrRoomNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		prop, err := tx.Properties().FindByID(ctx, tx.DB(), room.PropertyID)
		if err != nil {
			return errs.Mark(err, ErrPropertyNotFound)
		}

		// Capacity is not an availability problem; the guest fixes it by
		// picking a bigger room, not another date.
		if party.Occupancy() > room.Capacity {
			return errs.Mark(pricing.ErrCapacityExceeded, ErrDomainValidation)
		}
		if err := c.ensureAvailable(ctx, tx, *room, stay, party, nil); err != nil {
			return err
		}

		rates, err := tx.Rates().RatesForRoom(ctx, tx.DB(), *room)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		res, err := c.factory.CreateReservation(*room, *prop, rates, reservation.NewReservationInput{
			Guest:         reservation.Guest{Name: in.GuestName, Email: in.GuestEmail, Phone: in.GuestPhone},
			Party:         party,
			Stay:          stay,
			Notes:         in.Notes,
			PriceOverride: in.PriceOverride,
		})
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		id, err := tx.Reservations().Create(ctx, tx.DB(), res)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrRoomUnavailable
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		reservationID = id
		invoiceTotal = res.TotalValue()

		action := audit.ActionReservationCreated
		detail := map[string]any{
			"total_value":  res.TotalValue(),
			"price_source": res.PriceSource().String(),
		}
		if in.PriceOverride != nil {
			action = audit.ActionPriceOverridden
			detail["override_value"] = *in.PriceOverride
		}
		return c.append(ctx, tx, id, actor, action, detail)
	})
	if err != nil {
		return uuid.Nil, err
	}

	c.issueInvoice(ctx, actor, reservationID, invoiceTotal)
	return reservationID, nil
}

func (c *reservationCommandsImpl) Rebook(ctx context.Context, actor Actor, id uuid.UUID, in RebookReservationInput) error {
	stay, err := timespan.NewDateRange(in.CheckIn, in.CheckOut)
	if err != nil {
		return errs.Mark(err, ErrInvalidStayRange)
	}
	party := pricing.Party{Adults: in.Adults, Children: in.Children, Infants: in.Infants}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := c.findReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		room, err := tx.Rooms().LockByID(ctx, tx.DB(), in.RoomID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrRoomNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if party.Occupancy() > room.Capacity {
			return errs.Mark(pricing.ErrCapacityExceeded, ErrDomainValidation)
		}
		if err := c.ensureAvailable(ctx, tx, *room, stay, party, &id); err != nil {
			return err
		}

		if err := res.Rebook(room.ID, stay, party); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		// Reprice unless the operator pinned the total manually.
		if res.PriceOverride() == nil {
			prop, err := tx.Properties().FindByID(ctx, tx.DB(), room.PropertyID)
			if err != nil {
				return errs.Mark(err, ErrPropertyNotFound)
			}
			rates, err := tx.Rates().RatesForRoom(ctx, tx.DB(), *room)
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			quote, err := c.factory.Resolver.Resolve(*room, *prop, rates, pricing.Input{Stay: stay, Party: party})
			if err != nil {
				return errs.Mark(err, ErrDomainValidation)
			}
			if err := res.Reprice(quote); err != nil {
				return errs.Mark(err, ErrDomainValidation)
			}
		}

		if err := tx.Reservations().Update(ctx, tx.DB(), res); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return c.append(ctx, tx, id, actor, audit.ActionStatusChanged, map[string]any{
			"event":   "rebooked",
			"room_id": room.ID,
		})
	})
}

func (c *reservationCommandsImpl) Confirm(ctx context.Context, actor Actor, id uuid.UUID, guaranteeType *string) error {
	return c.transition(ctx, actor, id, "confirmed", func(res *reservation.Reservation) error {
		return res.Confirm(guaranteeType)
	})
}

func (c *reservationCommandsImpl) CheckIn(ctx context.Context, actor Actor, id uuid.UUID) error {
	return c.transition(ctx, actor, id, "checked_in", func(res *reservation.Reservation) error {
		return res.CheckIn()
	})
}

func (c *reservationCommandsImpl) CheckOut(ctx context.Context, actor Actor, id uuid.UUID, in CheckOutInput) error {
	var (
		reservationID uuid.UUID
		invoiceTotal  float64
	)

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := c.findReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		consumptions, err := tx.Consumptions().ListByReservation(ctx, tx.DB(), id)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		outstanding := minibar.OutstandingTotal(consumptions) - in.PaidAmount
		if err := res.CheckOut(outstanding); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Reservations().Update(ctx, tx.DB(), res); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		reservationID = res.ID()
		invoiceTotal = res.TotalValue() + minibar.OutstandingTotal(consumptions)

		return c.append(ctx, tx, id, actor, audit.ActionStatusChanged, map[string]any{
			"event":  "checked_out",
			"status": res.Status().String(),
		})
	})
	if err != nil {
		return err
	}

	c.issueInvoice(ctx, actor, reservationID, invoiceTotal)
	return nil
}

// issueInvoice bills a freshly priced reservation once its transaction has
// committed. Billing failure never rolls the change back; the failure is
// audited and the back office retries from the trail.
func (c *reservationCommandsImpl) issueInvoice(ctx context.Context, actor Actor, reservationID uuid.UUID, amount float64) {
	invErr := c.invoice.CreateInvoice(ctx, reservationID, amount)
	if invErr == nil {
		return
	}

	slog.Warn("invoice creation failed",
		"reservation_id", reservationID,
		"error", invErr.Error())
	auditErr := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return c.append(ctx, tx, reservationID, actor, audit.ActionInvoiceFailed, map[string]any{
			"amount": amount,
			"error":  invErr.Error(),
		})
	})
	if auditErr != nil {
		slog.Error("failed to audit invoice failure", "error", auditErr.Error())
	}
}

func (c *reservationCommandsImpl) Cancel(ctx context.Context, actor Actor, id uuid.UUID, reason *string) (*CancelResult, error) {
	var result *CancelResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := c.findReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		// The governing policy belongs to the property that owns the room,
		// which the preview endpoint resolves the same way.
		room, err := tx.Rooms().FindByID(ctx, tx.DB(), res.RoomID())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		prop, err := tx.Properties().FindByID(ctx, tx.DB(), room.PropertyID)
		if err != nil {
			return errs.Mark(err, ErrPropertyNotFound)
		}
		policies, err := tx.Policies().ListByProperty(ctx, tx.DB(), room.PropertyID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		now := c.clock.Now()
		breakdown := c.engine.PreviewRefundIn(policies, res.TotalValue(), res.Stay().Start(), now, timespan.LocationFor(prop.Timezone))

		if err := res.Cancel(now, reason); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if err := tx.Reservations().Update(ctx, tx.DB(), res); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		detail := map[string]any{
			"refund_percent":  breakdown.RefundPercent,
			"refund_amount":   breakdown.RefundAmount,
			"retained_amount": breakdown.RetainedAmount,
			"reason":          breakdown.Reason,
		}
		if breakdown.PolicyID != nil {
			detail["policy_id"] = *breakdown.PolicyID
		}
		if breakdown.RuleID != nil {
			detail["rule_id"] = *breakdown.RuleID
		}
		if err := c.append(ctx, tx, id, actor, audit.ActionCancellationProcessed, detail); err != nil {
			return err
		}

		result = &CancelResult{
			RefundPercent:  breakdown.RefundPercent,
			RefundAmount:   breakdown.RefundAmount,
			RetainedAmount: breakdown.RetainedAmount,
			Reason:         breakdown.Reason,
			PolicyID:       breakdown.PolicyID,
			RuleID:         breakdown.RuleID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *reservationCommandsImpl) MarkNoShow(ctx context.Context, actor Actor, id uuid.UUID) error {
	return c.transition(ctx, actor, id, "no_show", func(res *reservation.Reservation) error {
		return res.MarkNoShow()
	})
}

func (c *reservationCommandsImpl) OverridePrice(ctx context.Context, actor Actor, id uuid.UUID, value float64) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := c.findReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := res.OverridePrice(value); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if err := tx.Reservations().Update(ctx, tx.DB(), res); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return c.append(ctx, tx, id, actor, audit.ActionPriceOverridden, map[string]any{
			"override_value": value,
		})
	})
}

func (c *reservationCommandsImpl) transition(ctx context.Context, actor Actor, id uuid.UUID, event string, fn func(res *reservation.Reservation) error) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := c.findReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(res); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if err := tx.Reservations().Update(ctx, tx.DB(), res); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return c.append(ctx, tx, id, actor, audit.ActionStatusChanged, map[string]any{
			"event":  event,
			"status": res.Status().String(),
		})
	})
}

func (c *reservationCommandsImpl) findReservation(ctx context.Context, tx shared.Tx, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := tx.Reservations().FindByID(ctx, tx.DB(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return res, nil
}

func (c *reservationCommandsImpl) ensureAvailable(ctx context.Context, tx shared.Tx, room pricing.Room, stay timespan.DateRange, party pricing.Party, exclude *uuid.UUID) error {
	holds, err := tx.Reservations().HoldsForRoom(ctx, tx.DB(), room.ID, exclude)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	blocks, err := tx.Blocks().ListByRoom(ctx, tx.DB(), room.ID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	cand := availability.Candidate{Room: room, Holds: holds, Blocks: blocks}
	if !c.checker.IsAvailable(cand, stay, party) {
		return ErrRoomUnavailable
	}
	return nil
}

func (c *reservationCommandsImpl) append(ctx context.Context, tx shared.Tx, reservationID uuid.UUID, actor Actor, action string, detail map[string]any) error {
	entry := audit.NewEntry(&reservationID, &actor.ID, action, detail, c.clock.Now())
	if err := tx.Audit().Append(ctx, tx.DB(), entry); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
