package repository

import (
	"context"

	"pousada-pms/internal/domain/minibar"
	"pousada-pms/internal/infra"
	"pousada-pms/internal/infra/db"
	"pousada-pms/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertConsumptionSQL = `
INSERT INTO minibar_consumptions (id, reservation_id, product_id, quantity, unit_price, consumed_at, registered_by)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const listConsumptionsSQL = `
SELECT id, reservation_id, product_id, quantity, unit_price, consumed_at, registered_by
FROM minibar_consumptions
WHERE reservation_id = $1
ORDER BY consumed_at`

type ConsumptionRepository struct{}

func NewConsumptionRepository() *ConsumptionRepository {
	return &ConsumptionRepository{}
}

func (r *ConsumptionRepository) Create(ctx context.Context, tx db.DBTX, c minibar.Consumption) error {
	_, err := tx.Exec(ctx, insertConsumptionSQL,
		c.ID,
		c.ReservationID,
		c.ProductID,
		c.Quantity,
		pgconv.Float64ToNumeric(c.UnitPrice),
		pgconv.TimeToPgtype(c.ConsumedAt),
		pgconv.UUIDPtrToPgtype(c.RegisteredBy),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create consumption", err)
	}
	return nil
}

func (r *ConsumptionRepository) ListByReservation(ctx context.Context, tx db.DBTX, reservationID uuid.UUID) ([]minibar.Consumption, error) {
	rows, err := tx.Query(ctx, listConsumptionsSQL, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list consumptions", err)
	}
	defer rows.Close()

	var consumptions []minibar.Consumption
	for rows.Next() {
		var (
			c            minibar.Consumption
			unitPrice    pgtype.Numeric
			consumedAt   pgtype.Timestamptz
			registeredBy pgtype.UUID
		)
		if err := rows.Scan(&c.ID, &c.ReservationID, &c.ProductID, &c.Quantity, &unitPrice, &consumedAt, &registeredBy); err != nil {
			return nil, infra.WrapRepoErr("failed to scan consumption", err)
		}
		if c.UnitPrice, err = pgconv.Float64FromNumeric(unitPrice); err != nil {
			return nil, infra.WrapRepoErr("corrupt consumption price", err)
		}
		c.ConsumedAt = pgconv.TimeFromPgtype(consumedAt)
		c.RegisteredBy = pgconv.UUIDPtrFromPgtype(registeredBy)
		consumptions = append(consumptions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate consumptions", err)
	}
	return consumptions, nil
}
