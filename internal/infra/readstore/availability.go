package readstore

import (
	"context"

	"pousada-pms/internal/domain/availability"
	"pousada-pms/internal/domain/pricing"
	"pousada-pms/internal/infra/db"
	"pousada-pms/internal/infra/repository"
	"pousada-pms/internal/pkg/timespan"
	"pousada-pms/internal/usecase/queries"

	"github.com/google/uuid"
)

// AvailabilityReadStore assembles search candidates. Searches run without
// locks; the write path re-checks conflicts under the room row lock before
// committing.
type AvailabilityReadStore struct {
	pool         db.DBTX
	rooms        *repository.RoomRepository
	rates        *repository.RateRepository
	reservations *repository.ReservationRepository
	blocks       *repository.BlockRepository
	properties   *PropertyReadStore
}

func NewAvailabilityReadStore(pool db.DBTX, properties *PropertyReadStore) *AvailabilityReadStore {
	return &AvailabilityReadStore{
		pool:         pool,
		rooms:        repository.NewRoomRepository(),
		rates:        repository.NewRateRepository(),
		reservations: repository.NewReservationRepository(),
		blocks:       repository.NewBlockRepository(),
		properties:   properties,
	}
}

var _ queries.AvailabilityReadStore = (*AvailabilityReadStore)(nil)

func (s *AvailabilityReadStore) PropertyByID(ctx context.Context, id uuid.UUID) (*pricing.Property, error) {
	return s.properties.PropertyByID(ctx, id)
}

func (s *AvailabilityReadStore) CandidatesForStay(ctx context.Context, propertyID uuid.UUID, stay timespan.DateRange) ([]availability.Candidate, error) {
	rooms, err := s.rooms.ListActiveByProperty(ctx, s.pool, propertyID)
	if err != nil {
		return nil, err
	}

	candidates := make([]availability.Candidate, 0, len(rooms))
	for _, room := range rooms {
		holds, err := s.reservations.HoldsForRoom(ctx, s.pool, room.ID, nil)
		if err != nil {
			return nil, err
		}
		blocks, err := s.blocks.ListByRoom(ctx, s.pool, room.ID)
		if err != nil {
			return nil, err
		}
		rates, err := s.rates.RatesForRoom(ctx, s.pool, room)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, availability.Candidate{
			Room:   room,
			Rates:  rates,
			Holds:  holds,
			Blocks: blocks,
		})
	}
	return candidates, nil
}
