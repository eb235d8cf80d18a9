package readstore

import (
	"context"

	"pousada-pms/internal/domain/block"
	"pousada-pms/internal/infra/db"
	"pousada-pms/internal/infra/repository"
	"pousada-pms/internal/usecase/queries"

	"github.com/google/uuid"
)

type BlockReadStore struct {
	pool   db.DBTX
	blocks *repository.BlockRepository
}

func NewBlockReadStore(pool db.DBTX) *BlockReadStore {
	return &BlockReadStore{
		pool:   pool,
		blocks: repository.NewBlockRepository(),
	}
}

var _ queries.BlockReadStore = (*BlockReadStore)(nil)

func (s *BlockReadStore) BlocksByRoom(ctx context.Context, roomID uuid.UUID) ([]block.Block, error) {
	return s.blocks.ListByRoom(ctx, s.pool, roomID)
}
