package repository

import (
	"context"

	"pousada-pms/internal/domain/pricing"
	"pousada-pms/internal/infra"
	"pousada-pms/internal/infra/db"
	"pousada-pms/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const selectRoomSQL = `
SELECT id, property_id, category_id, number, name, capacity, active
FROM rooms
WHERE id = $1`

// FOR UPDATE freezes the room's holds for the rest of the transaction.
const lockRoomSQL = selectRoomSQL + ` FOR UPDATE`

const listActiveRoomsSQL = `
SELECT id, property_id, category_id, number, name, capacity, active
FROM rooms
WHERE property_id = $1 AND active
ORDER BY number`

type RoomRepository struct{}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{}
}

func (r *RoomRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*pricing.Room, error) {
	return r.scanRoom(tx.QueryRow(ctx, selectRoomSQL, id))
}

func (r *RoomRepository) LockByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*pricing.Room, error) {
	return r.scanRoom(tx.QueryRow(ctx, lockRoomSQL, id))
}

func (r *RoomRepository) ListActiveByProperty(ctx context.Context, tx db.DBTX, propertyID uuid.UUID) ([]pricing.Room, error) {
	rows, err := tx.Query(ctx, listActiveRoomsSQL, propertyID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	var rooms []pricing.Room
	for rows.Next() {
		room, err := r.scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *room)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rooms", err)
	}
	return rooms, nil
}

func (r *RoomRepository) scanRoom(row pgx.Row) (*pricing.Room, error) {
	var (
		room       pricing.Room
		categoryID pgtype.UUID
	)
	err := row.Scan(&room.ID, &room.PropertyID, &categoryID, &room.Number, &room.Name, &room.Capacity, &room.Active)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan room", err)
	}
	room.CategoryID = pgconv.UUIDPtrFromPgtype(categoryID)
	return &room, nil
}
