package queries

import (
	"context"
	"time"

	"pousada-pms/internal/infra"

	"github.com/google/uuid"
)

// ReservationFilter narrows property-wide listings. Zero values mean "all".
type ReservationFilter struct {
	RoomID *uuid.UUID
	Status *string
	From   *time.Time
	To     *time.Time
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByProperty(ctx context.Context, propertyID uuid.UUID, filter ReservationFilter, limit, offset int32) ([]*ReservationListItem, error)
	ConsumptionsByReservation(ctx context.Context, reservationID uuid.UUID) ([]*ConsumptionView, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID, filter ReservationFilter, limit int) ([]*ReservationListItem, error)
	ListConsumptions(ctx context.Context, reservationID uuid.UUID) ([]*ConsumptionView, error)
}

type reservationQueriesImpl struct {
	repo ReservationViewRepo
}

func NewReservationQueries(repo ReservationViewRepo) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByProperty(ctx context.Context, propertyID uuid.UUID, filter ReservationFilter, limit int) ([]*ReservationListItem, error) {
	if limit <= 0 {
		limit = 50
	}
	return q.repo.FindByProperty(ctx, propertyID, filter, int32(limit), 0)
}

func (q *reservationQueriesImpl) ListConsumptions(ctx context.Context, reservationID uuid.UUID) ([]*ConsumptionView, error) {
	return q.repo.ConsumptionsByReservation(ctx, reservationID)
}
