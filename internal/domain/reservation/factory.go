package reservation

import (
	"pousada-pms/internal/domain/pricing"
	"pousada-pms/internal/pkg/timespan"
)

// Factory builds priced reservations. Pricing goes through the cascade
// resolver unless an explicit override is supplied; the capacity guard
// applies either way.
type Factory struct {
	Resolver pricing.Resolver
}

func NewFactory(resolver pricing.Resolver) *Factory {
	return &Factory{Resolver: resolver}
}

type NewReservationInput struct {
	Guest         Guest
	Party         pricing.Party
	Stay          timespan.DateRange
	Notes         *string
	PriceOverride *float64
}

func (f *Factory) CreateReservation(room pricing.Room, prop pricing.Property, rates pricing.RateSet, in NewReservationInput) (*Reservation, error) {
	if in.PriceOverride != nil {
		if in.Party.Adults < 1 {
			return nil, ErrNoAdults
		}
		if in.Party.Occupancy() > room.Capacity {
			return nil, pricing.ErrCapacityExceeded
		}
		return newReservation(room.ID, in.Guest, in.Party, in.Stay, *in.PriceOverride, "", in.PriceOverride, in.Notes)
	}

	quote, err := f.Resolver.Resolve(room, prop, rates, pricing.Input{Stay: in.Stay, Party: in.Party})
	if err != nil {
		return nil, err
	}

	return newReservation(room.ID, in.Guest, in.Party, in.Stay, quote.Total, quote.Source, nil, in.Notes)
}
