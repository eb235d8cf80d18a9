package shared

import (
	"context"

	"pousada-pms/internal/domain/audit"
	"pousada-pms/internal/domain/block"
	"pousada-pms/internal/domain/cancellation"
	"pousada-pms/internal/domain/minibar"
	"pousada-pms/internal/domain/pricing"
	"pousada-pms/internal/domain/reservation"
	"pousada-pms/internal/infra/db"
	"pousada-pms/internal/pkg/timespan"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	Reservations() ReservationRepository
	Rooms() RoomRepository
	Properties() PropertyRepository
	Rates() RateRepository
	Blocks() BlockRepository
	Policies() PolicyRepository
	Products() ProductRepository
	Consumptions() ConsumptionRepository
	Audit() AuditRepository
	DB() db.DBTX
}

type ReservationRepository interface {
	Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*reservation.Reservation, error)
	// HoldsForRoom returns the stay ranges of reservations still occupying
	// the room, optionally excluding one reservation (for rebooking).
	HoldsForRoom(ctx context.Context, tx db.DBTX, roomID uuid.UUID, exclude *uuid.UUID) ([]timespan.DateRange, error)
}

type RoomRepository interface {
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*pricing.Room, error)
	// LockByID takes a row lock so conflict checks and the insert that
	// follows see a frozen picture of the room's holds.
	LockByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*pricing.Room, error)
	ListActiveByProperty(ctx context.Context, tx db.DBTX, propertyID uuid.UUID) ([]pricing.Room, error)
}

type PropertyRepository interface {
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*pricing.Property, error)
}

type RateRepository interface {
	RatesForRoom(ctx context.Context, tx db.DBTX, room pricing.Room) (pricing.RateSet, error)
}

type BlockRepository interface {
	Create(ctx context.Context, tx db.DBTX, b block.Block) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*block.Block, error)
	ListByRoom(ctx context.Context, tx db.DBTX, roomID uuid.UUID) ([]block.Block, error)
}

type PolicyRepository interface {
	ListByProperty(ctx context.Context, tx db.DBTX, propertyID uuid.UUID) ([]cancellation.Policy, error)
	Upsert(ctx context.Context, tx db.DBTX, policy cancellation.Policy) error
}

type ProductRepository interface {
	LockByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*minibar.Product, error)
	UpdateStock(ctx context.Context, tx db.DBTX, id uuid.UUID, stock int) error
}

type ConsumptionRepository interface {
	Create(ctx context.Context, tx db.DBTX, c minibar.Consumption) error
	ListByReservation(ctx context.Context, tx db.DBTX, reservationID uuid.UUID) ([]minibar.Consumption, error)
}

type AuditRepository interface {
	Append(ctx context.Context, tx db.DBTX, entry audit.Entry) error
}
