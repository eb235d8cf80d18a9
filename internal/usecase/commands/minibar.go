package commands

import (
	"context"
	"errors"
	"log/slog"

	"pousada-pms/internal/domain/audit"
	"pousada-pms/internal/domain/minibar"
	"pousada-pms/internal/infra"
	"pousada-pms/internal/pkg/clock"
	"pousada-pms/internal/pkg/errs"
	"pousada-pms/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound    = errs.New("product not found")
	ErrConsumptionInvalid = errs.New("invalid consumption")
)

type RegisterConsumptionInput struct {
	ReservationID uuid.UUID
	ProductID     uuid.UUID
	Quantity      int
}

type MinibarCommands interface {
	// RegisterConsumption charges a reservation and decrements stock in one
	// transaction; the product row lock makes the pair atomic.
	RegisterConsumption(ctx context.Context, actor Actor, in RegisterConsumptionInput) (uuid.UUID, error)
}

type minibarCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewMinibarCommands(uow shared.UnitOfWork, clock clock.Clock) MinibarCommands {
	return &minibarCommandsImpl{uow: uow, clock: clock}
}

func (c *minibarCommandsImpl) RegisterConsumption(ctx context.Context, actor Actor, in RegisterConsumptionInput) (uuid.UUID, error) {
	var (
		consumptionID  uuid.UUID
		availableStock int
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByID(ctx, tx.DB(), in.ReservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if res.Status().IsTerminal() {
			return errs.Mark(errs.New("reservation is closed"), ErrConsumptionInvalid)
		}

		product, err := tx.Products().LockByID(ctx, tx.DB(), in.ProductID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrProductNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		availableStock = product.Stock()
		consumption, err := minibar.NewConsumption(in.ReservationID, product, in.Quantity, c.clock.Now(), &actor.ID)
		if err != nil {
			return errs.Mark(err, ErrConsumptionInvalid)
		}

		if err := tx.Consumptions().Create(ctx, tx.DB(), consumption); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Products().UpdateStock(ctx, tx.DB(), product.ID(), product.Stock()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		consumptionID = consumption.ID

		entry := audit.NewEntry(&in.ReservationID, &actor.ID, audit.ActionConsumptionRegistered, map[string]any{
			"product_id": product.ID(),
			"quantity":   in.Quantity,
			"total":      consumption.Total(),
		}, c.clock.Now())
		if err := tx.Audit().Append(ctx, tx.DB(), entry); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, minibar.ErrInsufficientStock) {
			c.auditRejectedConsumption(ctx, actor, in, availableStock)
		}
		return uuid.Nil, err
	}
	return consumptionID, nil
}

// auditRejectedConsumption records an oversell attempt in its own
// transaction; the main one has rolled back and the attempt must survive it.
func (c *minibarCommandsImpl) auditRejectedConsumption(ctx context.Context, actor Actor, in RegisterConsumptionInput, available int) {
	entry := audit.NewEntry(&in.ReservationID, &actor.ID, audit.ActionConsumptionRejected, map[string]any{
		"product_id": in.ProductID,
		"requested":  in.Quantity,
		"available":  available,
	}, c.clock.Now())
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Audit().Append(ctx, tx.DB(), entry)
	})
	if err != nil {
		slog.Warn("failed to audit rejected consumption",
			"reservation_id", in.ReservationID,
			"error", err.Error())
	}
}
