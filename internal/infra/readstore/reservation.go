package readstore

import (
	"context"
	"strconv"

	"pousada-pms/internal/infra"
	"pousada-pms/internal/infra/db"
	"pousada-pms/internal/pkg/pgconv"
	"pousada-pms/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const selectReservationViewSQL = `
SELECT r.id, r.room_id, ro.number, r.guest_name, r.guest_email, r.guest_phone,
	r.adults, r.children, r.infants, r.check_in, r.check_out,
	r.status, r.total_value, r.price_source, r.price_override,
	r.guarantee_type, r.notes, r.cancelled_at, r.cancel_reason,
	r.created_at, r.updated_at
FROM reservations r
JOIN rooms ro ON ro.id = r.room_id
WHERE r.id = $1`

const selectConsumptionViewsSQL = `
SELECT c.id, c.reservation_id, c.product_id, p.name, c.quantity, c.unit_price, c.consumed_at
FROM minibar_consumptions c
JOIN products p ON p.id = c.product_id
WHERE c.reservation_id = $1
ORDER BY c.consumed_at`

type ReservationReadStore struct {
	pool db.DBTX
}

func NewReservationReadStore(pool db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{pool: pool}
}

var _ queries.ReservationViewRepo = (*ReservationReadStore)(nil)

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	var (
		view                              queries.ReservationView
		guestEmail, guestPhone            pgtype.Text
		guaranteeType, notes, reason      pgtype.Text
		checkIn, checkOut                 pgtype.Date
		totalValue, priceOverride         pgtype.Numeric
		cancelledAt, createdAt, updatedAt pgtype.Timestamptz
	)

	err := s.pool.QueryRow(ctx, selectReservationViewSQL, id).Scan(
		&view.ID, &view.RoomID, &view.RoomNumber, &view.GuestName, &guestEmail, &guestPhone,
		&view.Adults, &view.Children, &view.Infants, &checkIn, &checkOut,
		&view.Status, &totalValue, &view.PriceSource, &priceOverride,
		&guaranteeType, &notes, &cancelledAt, &reason,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation view", err)
	}

	view.GuestEmail = pgconv.StringPtrFromPgtype(guestEmail)
	view.GuestPhone = pgconv.StringPtrFromPgtype(guestPhone)
	view.CheckIn = pgconv.DateFromPgtype(checkIn)
	view.CheckOut = pgconv.DateFromPgtype(checkOut)
	view.GuaranteeType = pgconv.StringPtrFromPgtype(guaranteeType)
	view.Notes = pgconv.StringPtrFromPgtype(notes)
	view.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)
	view.CancelReason = pgconv.StringPtrFromPgtype(reason)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	if view.TotalValue, err = pgconv.Float64FromNumeric(totalValue); err != nil {
		return nil, infra.WrapRepoErr("corrupt total value", err)
	}
	if view.PriceOverride, err = pgconv.Float64PtrFromNumeric(priceOverride); err != nil {
		return nil, infra.WrapRepoErr("corrupt price override", err)
	}

	return &view, nil
}

func (s *ReservationReadStore) FindByProperty(ctx context.Context, propertyID uuid.UUID, filter queries.ReservationFilter, limit, offset int32) ([]*queries.ReservationListItem, error) {
	sql := `
SELECT r.id, r.room_id, ro.number, r.guest_name, r.check_in, r.check_out,
	r.status, r.total_value, r.created_at
FROM reservations r
JOIN rooms ro ON ro.id = r.room_id
WHERE ro.property_id = $1`
	args := []any{propertyID}

	if filter.RoomID != nil {
		args = append(args, *filter.RoomID)
		sql += " AND r.room_id = $" + strconv.Itoa(len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		sql += " AND r.status = $" + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, pgconv.DateToPgtype(*filter.From))
		sql += " AND r.check_out > $" + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, pgconv.DateToPgtype(*filter.To))
		sql += " AND r.check_in < $" + strconv.Itoa(len(args))
	}

	args = append(args, limit)
	sql += " ORDER BY r.check_in, r.created_at LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	sql += " OFFSET $" + strconv.Itoa(len(args))

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var items []*queries.ReservationListItem
	for rows.Next() {
		var (
			item              queries.ReservationListItem
			checkIn, checkOut pgtype.Date
			totalValue        pgtype.Numeric
			createdAt         pgtype.Timestamptz
		)
		if err := rows.Scan(&item.ID, &item.RoomID, &item.RoomNumber, &item.GuestName,
			&checkIn, &checkOut, &item.Status, &totalValue, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		item.CheckIn = pgconv.DateFromPgtype(checkIn)
		item.CheckOut = pgconv.DateFromPgtype(checkOut)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		if item.TotalValue, err = pgconv.Float64FromNumeric(totalValue); err != nil {
			return nil, infra.WrapRepoErr("corrupt total value", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservations", err)
	}
	return items, nil
}

func (s *ReservationReadStore) ConsumptionsByReservation(ctx context.Context, reservationID uuid.UUID) ([]*queries.ConsumptionView, error) {
	rows, err := s.pool.Query(ctx, selectConsumptionViewsSQL, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list consumptions", err)
	}
	defer rows.Close()

	var views []*queries.ConsumptionView
	for rows.Next() {
		var (
			view       queries.ConsumptionView
			unitPrice  pgtype.Numeric
			consumedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&view.ID, &view.ReservationID, &view.ProductID, &view.ProductName,
			&view.Quantity, &unitPrice, &consumedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan consumption row", err)
		}
		if view.UnitPrice, err = pgconv.Float64FromNumeric(unitPrice); err != nil {
			return nil, infra.WrapRepoErr("corrupt consumption price", err)
		}
		view.Total = view.UnitPrice * float64(view.Quantity)
		view.ConsumedAt = pgconv.TimeFromPgtype(consumedAt)
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate consumptions", err)
	}
	return views, nil
}
