package commands

import (
	"context"
	"time"

	"pousada-pms/internal/domain/audit"
	"pousada-pms/internal/domain/block"
	"pousada-pms/internal/infra"
	"pousada-pms/internal/pkg/clock"
	"pousada-pms/internal/pkg/errs"
	"pousada-pms/internal/pkg/timespan"
	"pousada-pms/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBlockNotFound = errs.New("block not found")
	ErrBlockConflict = errs.New("block conflicts with an existing block")
)

type CreateBlockInput struct {
	RoomID     uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	Type       string
	Reason     string
	Recurrence string
}

type BlockCommands interface {
	Create(ctx context.Context, actor Actor, in CreateBlockInput) (uuid.UUID, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type blockCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBlockCommands(uow shared.UnitOfWork, clock clock.Clock) BlockCommands {
	return &blockCommandsImpl{uow: uow, clock: clock}
}

func (c *blockCommandsImpl) Create(ctx context.Context, actor Actor, in CreateBlockInput) (uuid.UUID, error) {
	r, err := timespan.NewDateRange(in.StartDate, in.EndDate)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidStayRange)
	}

	b, err := block.New(in.RoomID, r, block.Type(in.Type), in.Reason, block.Recurrence(in.Recurrence), &actor.ID)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Rooms().LockByID(ctx, tx.DB(), in.RoomID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrRoomNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		existing, err := tx.Blocks().ListByRoom(ctx, tx.DB(), in.RoomID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		for _, other := range existing {
			if b.ConflictsWith(other) {
				return ErrBlockConflict
			}
		}

		if err := tx.Blocks().Create(ctx, tx.DB(), b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		entry := audit.NewEntry(nil, &actor.ID, audit.ActionBlockCreated, map[string]any{
			"block_id": b.ID,
			"room_id":  b.RoomID,
			"type":     string(b.Type),
		}, c.clock.Now())
		if err := tx.Audit().Append(ctx, tx.DB(), entry); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return b.ID, nil
}

func (c *blockCommandsImpl) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Blocks().FindByID(ctx, tx.DB(), id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBlockNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := tx.Blocks().Delete(ctx, tx.DB(), id); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		entry := audit.NewEntry(nil, &actor.ID, audit.ActionBlockRemoved, map[string]any{
			"block_id": b.ID,
			"room_id":  b.RoomID,
		}, c.clock.Now())
		if err := tx.Audit().Append(ctx, tx.DB(), entry); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}
