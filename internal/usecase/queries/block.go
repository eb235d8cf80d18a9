package queries

import (
	"context"

	"pousada-pms/internal/domain/block"

	"github.com/google/uuid"
)

type BlockReadStore interface {
	BlocksByRoom(ctx context.Context, roomID uuid.UUID) ([]block.Block, error)
}

type BlockQueries interface {
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]BlockView, error)
}

type blockQueriesImpl struct {
	store BlockReadStore
}

func NewBlockQueries(store BlockReadStore) BlockQueries {
	return &blockQueriesImpl{store: store}
}

func (q *blockQueriesImpl) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]BlockView, error) {
	blocks, err := q.store.BlocksByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	views := make([]BlockView, len(blocks))
	for i, b := range blocks {
		views[i] = BlockView{
			ID:         b.ID,
			RoomID:     b.RoomID,
			StartDate:  b.Range.Start(),
			EndDate:    b.Range.End(),
			Type:       string(b.Type),
			Reason:     b.Reason,
			Recurrence: string(b.Recurrence),
		}
	}
	return views, nil
}
