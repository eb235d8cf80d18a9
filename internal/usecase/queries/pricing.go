package queries

import (
	"context"
	"time"

	"pousada-pms/internal/domain/pricing"
	"pousada-pms/internal/infra"
	"pousada-pms/internal/pkg/errs"
	"pousada-pms/internal/pkg/timespan"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound     = errs.New("room not found")
	ErrPropertyNotFound = errs.New("property not found")
)

// PricingReadStore provides the frozen inputs of one quote computation.
type PricingReadStore interface {
	RoomByID(ctx context.Context, id uuid.UUID) (*pricing.Room, error)
	PropertyByID(ctx context.Context, id uuid.UUID) (*pricing.Property, error)
	RatesForRoom(ctx context.Context, room pricing.Room) (pricing.RateSet, error)
}

type PricingQueries interface {
	// Calculate quotes the stay: total, cascade source and the ordered
	// per-night breakdown.
	Calculate(ctx context.Context, roomID uuid.UUID, stay timespan.DateRange, party pricing.Party) (*QuoteView, error)
	// CalculateDetailed quotes with full adult/child/infant composition.
	CalculateDetailed(ctx context.Context, roomID uuid.UUID, stay timespan.DateRange, party pricing.Party) (*QuoteView, error)
}

type pricingQueriesImpl struct {
	store    PricingReadStore
	resolver pricing.Resolver
}

func NewPricingQueries(store PricingReadStore, resolver pricing.Resolver) PricingQueries {
	return &pricingQueriesImpl{store: store, resolver: resolver}
}

func (q *pricingQueriesImpl) Calculate(ctx context.Context, roomID uuid.UUID, stay timespan.DateRange, party pricing.Party) (*QuoteView, error) {
	return q.quote(ctx, roomID, stay, party)
}

func (q *pricingQueriesImpl) CalculateDetailed(ctx context.Context, roomID uuid.UUID, stay timespan.DateRange, party pricing.Party) (*QuoteView, error) {
	return q.quote(ctx, roomID, stay, party)
}

func (q *pricingQueriesImpl) quote(ctx context.Context, roomID uuid.UUID, stay timespan.DateRange, party pricing.Party) (*QuoteView, error) {
	room, err := q.store.RoomByID(ctx, roomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	prop, err := q.store.PropertyByID(ctx, room.PropertyID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	rates, err := q.store.RatesForRoom(ctx, *room)
	if err != nil {
		return nil, err
	}

	quote, err := q.resolver.Resolve(*room, *prop, rates, pricing.Input{Stay: stay, Party: party})
	if err != nil {
		return nil, err
	}

	days := make([]DayPriceView, len(quote.Days))
	for i, d := range quote.Days {
		days[i] = DayPriceView{Date: d.Date.Format(time.DateOnly), Price: d.Price}
	}

	return &QuoteView{
		RoomID: room.ID,
		Source: quote.Source.String(),
		Nights: stay.Nights(),
		Total:  quote.Total,
		Days:   days,
	}, nil
}
