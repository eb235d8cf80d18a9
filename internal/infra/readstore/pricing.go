package readstore

import (
	"context"

	"pousada-pms/internal/domain/pricing"
	"pousada-pms/internal/infra/db"
	"pousada-pms/internal/infra/repository"
	"pousada-pms/internal/usecase/queries"

	"github.com/google/uuid"
)

type PricingReadStore struct {
	pool       db.DBTX
	rooms      *repository.RoomRepository
	rates      *repository.RateRepository
	properties *PropertyReadStore
}

func NewPricingReadStore(pool db.DBTX, properties *PropertyReadStore) *PricingReadStore {
	return &PricingReadStore{
		pool:       pool,
		rooms:      repository.NewRoomRepository(),
		rates:      repository.NewRateRepository(),
		properties: properties,
	}
}

var _ queries.PricingReadStore = (*PricingReadStore)(nil)

func (s *PricingReadStore) RoomByID(ctx context.Context, id uuid.UUID) (*pricing.Room, error) {
	return s.rooms.FindByID(ctx, s.pool, id)
}

func (s *PricingReadStore) PropertyByID(ctx context.Context, id uuid.UUID) (*pricing.Property, error) {
	return s.properties.PropertyByID(ctx, id)
}

func (s *PricingReadStore) RatesForRoom(ctx context.Context, room pricing.Room) (pricing.RateSet, error) {
	return s.rates.RatesForRoom(ctx, s.pool, room)
}
