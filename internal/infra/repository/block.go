package repository

import (
	"context"

	"pousada-pms/internal/domain/block"
	"pousada-pms/internal/infra"
	"pousada-pms/internal/infra/db"
	"pousada-pms/internal/pkg/pgconv"
	"pousada-pms/internal/pkg/timespan"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertBlockSQL = `
INSERT INTO room_blocks (id, room_id, start_date, end_date, block_type, reason, recurrence, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`

const deleteBlockSQL = `DELETE FROM room_blocks WHERE id = $1`

const selectBlockSQL = `
SELECT id, room_id, start_date, end_date, block_type, reason, recurrence, created_by
FROM room_blocks
WHERE id = $1`

const listBlocksByRoomSQL = `
SELECT id, room_id, start_date, end_date, block_type, reason, recurrence, created_by
FROM room_blocks
WHERE room_id = $1
ORDER BY start_date`

type BlockRepository struct{}

func NewBlockRepository() *BlockRepository {
	return &BlockRepository{}
}

func (r *BlockRepository) Create(ctx context.Context, tx db.DBTX, b block.Block) error {
	_, err := tx.Exec(ctx, insertBlockSQL,
		b.ID,
		b.RoomID,
		pgconv.DateToPgtype(b.Range.Start()),
		pgconv.DateToPgtype(b.Range.End()),
		string(b.Type),
		b.Reason,
		string(b.Recurrence),
		pgconv.UUIDPtrToPgtype(b.CreatedBy),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create block", err)
	}
	return nil
}

func (r *BlockRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, deleteBlockSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete block", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("block not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BlockRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*block.Block, error) {
	b, err := scanBlock(tx.QueryRow(ctx, selectBlockSQL, id))
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BlockRepository) ListByRoom(ctx context.Context, tx db.DBTX, roomID uuid.UUID) ([]block.Block, error) {
	rows, err := tx.Query(ctx, listBlocksByRoomSQL, roomID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list blocks", err)
	}
	defer rows.Close()

	var blocks []block.Block
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate blocks", err)
	}
	return blocks, nil
}

func scanBlock(row pgx.Row) (block.Block, error) {
	var (
		b          block.Block
		start, end pgtype.Date
		blockType  string
		recurrence string
		createdBy  pgtype.UUID
	)
	err := row.Scan(&b.ID, &b.RoomID, &start, &end, &blockType, &b.Reason, &recurrence, &createdBy)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return block.Block{}, infra.WrapRepoErr("block not found", err, infra.KindNotFound)
		}
		return block.Block{}, infra.WrapRepoErr("failed to scan block", err)
	}

	r, err := timespan.NewDateRange(pgconv.DateFromPgtype(start), pgconv.DateFromPgtype(end))
	if err != nil {
		return block.Block{}, infra.WrapRepoErr("corrupt block range", err)
	}

	b.Range = r
	b.Type = block.Type(blockType)
	b.Recurrence = block.Recurrence(recurrence)
	b.CreatedBy = pgconv.UUIDPtrFromPgtype(createdBy)
	return b, nil
}
