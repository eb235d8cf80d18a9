package queries

import (
	"context"
	"time"

	"pousada-pms/internal/domain/availability"
	"pousada-pms/internal/domain/pricing"
	"pousada-pms/internal/infra"
	"pousada-pms/internal/pkg/errs"
	"pousada-pms/internal/pkg/timespan"

	"github.com/google/uuid"
)

var ErrInvalidSearch = errs.New("invalid availability search")

// AvailabilityReadStore assembles, per active room of the property, the
// holds and blocks overlapping the searched range plus the room's rates.
type AvailabilityReadStore interface {
	PropertyByID(ctx context.Context, id uuid.UUID) (*pricing.Property, error)
	CandidatesForStay(ctx context.Context, propertyID uuid.UUID, stay timespan.DateRange) ([]availability.Candidate, error)
}

type AvailabilityQueries interface {
	Search(ctx context.Context, propertyID uuid.UUID, stay timespan.DateRange, party pricing.Party) ([]RoomAvailabilityView, error)
}

type availabilityQueriesImpl struct {
	store   AvailabilityReadStore
	checker availability.Checker
}

func NewAvailabilityQueries(store AvailabilityReadStore, checker availability.Checker) AvailabilityQueries {
	return &availabilityQueriesImpl{store: store, checker: checker}
}

func (q *availabilityQueriesImpl) Search(ctx context.Context, propertyID uuid.UUID, stay timespan.DateRange, party pricing.Party) ([]RoomAvailabilityView, error) {
	prop, err := q.store.PropertyByID(ctx, propertyID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	candidates, err := q.store.CandidatesForStay(ctx, propertyID, stay)
	if err != nil {
		return nil, err
	}

	results, err := q.checker.Search(*prop, candidates, stay, party)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidSearch)
	}

	views := make([]RoomAvailabilityView, len(results))
	for i, r := range results {
		days := make([]DayPriceView, len(r.Quote.Days))
		for j, d := range r.Quote.Days {
			days[j] = DayPriceView{Date: d.Date.Format(time.DateOnly), Price: d.Price}
		}
		views[i] = RoomAvailabilityView{
			RoomID:     r.Room.ID,
			RoomNumber: r.Room.Number,
			RoomName:   r.Room.Name,
			Capacity:   r.Room.Capacity,
			Nights:     stay.Nights(),
			Total:      r.Quote.Total,
			Source:     r.Quote.Source.String(),
			Days:       days,
		}
	}
	return views, nil
}
