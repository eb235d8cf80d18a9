package repository

import (
	"context"

	"pousada-pms/internal/domain/pricing"
	"pousada-pms/internal/domain/reservation"
	"pousada-pms/internal/infra"
	"pousada-pms/internal/infra/db"
	"pousada-pms/internal/pkg/pgconv"
	"pousada-pms/internal/pkg/timespan"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertReservationSQL = `
INSERT INTO reservations (
	id, room_id, guest_name, guest_email, guest_phone,
	adults, children, infants, check_in, check_out,
	status, total_value, price_source, price_override,
	guarantee_type, notes, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, now(), now())`

const updateReservationSQL = `
UPDATE reservations SET
	room_id = $2, adults = $3, children = $4, infants = $5,
	check_in = $6, check_out = $7, status = $8,
	total_value = $9, price_source = $10, price_override = $11,
	guarantee_type = $12, notes = $13, cancelled_at = $14, cancel_reason = $15,
	updated_at = now()
WHERE id = $1`

const selectReservationSQL = `
SELECT id, room_id, guest_name, guest_email, guest_phone,
	adults, children, infants, check_in, check_out,
	status, total_value, price_source, price_override,
	guarantee_type, notes, cancelled_at, cancel_reason,
	created_at, updated_at
FROM reservations
WHERE id = $1`

const selectHoldsSQL = `
SELECT check_in, check_out
FROM reservations
WHERE room_id = $1
  AND status <> 'cancelado'
  AND ($2::uuid IS NULL OR id <> $2)`

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

func (r *ReservationRepository) Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	_, err := tx.Exec(ctx, insertReservationSQL,
		res.ID(),
		res.RoomID(),
		res.Guest().Name,
		pgconv.StringPtrToPgtype(res.Guest().Email),
		pgconv.StringPtrToPgtype(res.Guest().Phone),
		res.Party().Adults,
		res.Party().Children,
		res.Party().Infants,
		pgconv.DateToPgtype(res.Stay().Start()),
		pgconv.DateToPgtype(res.Stay().End()),
		res.Status().String(),
		pgconv.Float64ToNumeric(res.TotalValue()),
		res.PriceSource().String(),
		pgconv.Float64PtrToNumeric(res.PriceOverride()),
		pgconv.StringPtrToPgtype(res.GuaranteeType()),
		pgconv.StringPtrToPgtype(res.Notes()),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	return res.ID(), nil
}

func (r *ReservationRepository) Update(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error {
	tag, err := tx.Exec(ctx, updateReservationSQL,
		res.ID(),
		res.RoomID(),
		res.Party().Adults,
		res.Party().Children,
		res.Party().Infants,
		pgconv.DateToPgtype(res.Stay().Start()),
		pgconv.DateToPgtype(res.Stay().End()),
		res.Status().String(),
		pgconv.Float64ToNumeric(res.TotalValue()),
		res.PriceSource().String(),
		pgconv.Float64PtrToNumeric(res.PriceOverride()),
		pgconv.StringPtrToPgtype(res.GuaranteeType()),
		pgconv.StringPtrToPgtype(res.Notes()),
		pgconv.TimePtrToPgtype(res.CancelledAt()),
		pgconv.StringPtrToPgtype(res.CancelReason()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	var (
		resID, roomID                     uuid.UUID
		guestName, status, priceSource    string
		guestEmail, guestPhone            pgtype.Text
		guaranteeType, notes, reason      pgtype.Text
		adults, children, infants         int
		checkIn, checkOut                 pgtype.Date
		totalValue, priceOverride         pgtype.Numeric
		cancelledAt, createdAt, updatedAt pgtype.Timestamptz
	)

	err := tx.QueryRow(ctx, selectReservationSQL, id).Scan(
		&resID, &roomID, &guestName, &guestEmail, &guestPhone,
		&adults, &children, &infants, &checkIn, &checkOut,
		&status, &totalValue, &priceSource, &priceOverride,
		&guaranteeType, &notes, &cancelledAt, &reason,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	stay, err := timespan.NewDateRange(pgconv.DateFromPgtype(checkIn), pgconv.DateFromPgtype(checkOut))
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt stay range", err)
	}

	total, err := pgconv.Float64FromNumeric(totalValue)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt total value", err)
	}
	override, err := pgconv.Float64PtrFromNumeric(priceOverride)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt price override", err)
	}

	return reservation.Reconstruct(
		resID, roomID,
		reservation.Guest{
			Name:  guestName,
			Email: pgconv.StringPtrFromPgtype(guestEmail),
			Phone: pgconv.StringPtrFromPgtype(guestPhone),
		},
		pricing.Party{Adults: adults, Children: children, Infants: infants},
		stay,
		reservation.Status(status),
		total,
		pricing.Source(priceSource),
		override,
		pgconv.StringPtrFromPgtype(guaranteeType),
		pgconv.StringPtrFromPgtype(notes),
		pgconv.TimePtrFromPgtype(cancelledAt),
		pgconv.StringPtrFromPgtype(reason),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func (r *ReservationRepository) HoldsForRoom(ctx context.Context, tx db.DBTX, roomID uuid.UUID, exclude *uuid.UUID) ([]timespan.DateRange, error) {
	rows, err := tx.Query(ctx, selectHoldsSQL, roomID, pgconv.UUIDPtrToPgtype(exclude))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list room holds", err)
	}
	defer rows.Close()

	var holds []timespan.DateRange
	for rows.Next() {
		var checkIn, checkOut pgtype.Date
		if err := rows.Scan(&checkIn, &checkOut); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room hold", err)
		}
		hold, err := timespan.NewDateRange(pgconv.DateFromPgtype(checkIn), pgconv.DateFromPgtype(checkOut))
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt stay range", err)
		}
		holds = append(holds, hold)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate room holds", err)
	}
	return holds, nil
}
