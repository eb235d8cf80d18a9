package pricing

import (
	"errors"

	"pousada-pms/internal/pkg/timespan"
)

var (
	ErrCapacityExceeded = errors.New("party size exceeds room capacity")
	ErrNoAdults         = errors.New("at least one adult is required")
	ErrNoBaseRate       = errors.New("no base rate configured for room")
)

// rateRecord is the shape every cascade level reduces to before the
// per-night price is computed. A flat PricePerDay already encodes the
// total occupancy price; the occupancy fields price additively.
type rateRecord struct {
	PricePerDay     *float64
	BaseOneAdult    *float64
	BaseTwoAdults   *float64
	AdditionalAdult *float64
	ChildPrice      *float64
}

// strategy tries one cascade level. ok is false when the level has no
// matching rate for this stay.
type strategy func(room Room, rates RateSet, in Input) (rateRecord, bool)

// Input is one resolution request. Stay is half-open, so the checkout day
// is never priced.
type Input struct {
	Stay  timespan.DateRange
	Party Party
}

// Resolver picks the nightly price for a stay. The five sources are tried
// strictly in order and the first match prices every night of the stay;
// sources are never blended.
type Resolver struct{}

func NewResolver() Resolver {
	return Resolver{}
}

func (r Resolver) Resolve(room Room, prop Property, rates RateSet, in Input) (Quote, error) {
	if in.Party.Adults < 1 {
		return Quote{}, ErrNoAdults
	}
	if in.Party.Occupancy() > room.Capacity {
		return Quote{}, ErrCapacityExceeded
	}

	rec, source, ok := r.resolveSource(room, prop, rates, in)
	if !ok {
		return Quote{}, ErrNoBaseRate
	}

	days := make([]DayPrice, 0, in.Stay.Nights())
	total := 0.0
	for _, date := range in.Stay.Days() {
		price := computeDayPrice(rec, prop, in.Party)
		days = append(days, DayPrice{Date: date, Price: price})
		total += price
	}

	return Quote{Source: source, Total: total, Days: days}, nil
}

func (r Resolver) resolveSource(room Room, prop Property, rates RateSet, in Input) (rateRecord, Source, bool) {
	cascade := []struct {
		source Source
		fn     strategy
	}{
		{SourceRoomPeriod, matchRoomPeriod},
		{SourceRoomBase, matchRoomBase},
		{SourceCategoryPeriod, matchCategoryPeriod},
		{SourceCategoryBase, matchCategoryBase},
	}

	for _, level := range cascade {
		if rec, ok := level.fn(room, rates, in); ok {
			return rec, level.source, true
		}
	}

	rec, ok := propertyBaseRecord(prop)
	return rec, SourcePropertyBase, ok
}

func matchRoomPeriod(room Room, rates RateSet, in Input) (rateRecord, bool) {
	occupancy := in.Party.Occupancy()
	for _, p := range rates.RoomRatePeriods {
		if p.RoomID == room.ID && p.PeopleCount == occupancy && p.CoversStay(in.Stay) {
			price := p.PricePerDay
			return rateRecord{PricePerDay: &price}, true
		}
	}
	return rateRecord{}, false
}

func matchRoomBase(room Room, rates RateSet, in Input) (rateRecord, bool) {
	occupancy := in.Party.Occupancy()
	for _, b := range rates.RoomRates {
		if b.RoomID == room.ID && b.PeopleCount == occupancy {
			price := b.PricePerDay
			return rateRecord{PricePerDay: &price}, true
		}
	}
	return rateRecord{}, false
}

func matchCategoryPeriod(room Room, rates RateSet, in Input) (rateRecord, bool) {
	if room.CategoryID == nil {
		return rateRecord{}, false
	}
	for _, p := range rates.CategoryRatePeriods {
		if p.CategoryID == *room.CategoryID && p.CoversStay(in.Stay) {
			return rateRecord{
				PricePerDay:     p.PricePerDay,
				BaseOneAdult:    p.BaseOneAdult,
				BaseTwoAdults:   p.BaseTwoAdults,
				AdditionalAdult: p.AdditionalAdult,
				ChildPrice:      p.ChildPrice,
			}, true
		}
	}
	return rateRecord{}, false
}

func matchCategoryBase(room Room, rates RateSet, in Input) (rateRecord, bool) {
	if room.CategoryID == nil {
		return rateRecord{}, false
	}
	for _, b := range rates.CategoryRates {
		if b.CategoryID == *room.CategoryID {
			return rateRecord{
				PricePerDay:     b.PricePerDay,
				BaseOneAdult:    b.BaseOneAdult,
				BaseTwoAdults:   b.BaseTwoAdults,
				AdditionalAdult: b.AdditionalAdult,
				ChildPrice:      b.ChildPrice,
			}, true
		}
	}
	return rateRecord{}, false
}

func propertyBaseRecord(prop Property) (rateRecord, bool) {
	if prop.BaseOneAdult == nil && prop.BaseTwoAdults == nil {
		return rateRecord{}, false
	}
	return rateRecord{
		BaseOneAdult:    prop.BaseOneAdult,
		BaseTwoAdults:   prop.BaseTwoAdults,
		AdditionalAdult: prop.AdditionalAdult,
		ChildPrice:      prop.ChildPrice,
	}, true
}

// computeDayPrice prices a single night. A flat PricePerDay wins outright;
// otherwise adults price as base_one (single) or base_two plus extras, and
// children as child_price with a child_factor fallback off the per-adult
// rate.
func computeDayPrice(rec rateRecord, prop Property, party Party) float64 {
	if rec.PricePerDay != nil {
		return *rec.PricePerDay
	}

	baseOne := deref(rec.BaseOneAdult)
	baseTwo := deref(rec.BaseTwoAdults)
	addAdult := deref(rec.AdditionalAdult)

	var adultCost float64
	if party.Adults <= 1 && baseOne > 0 {
		adultCost = baseOne
	} else {
		extra := party.Adults - 2
		if extra < 0 {
			extra = 0
		}
		adultCost = baseTwo + float64(extra)*addAdult
	}

	childPrice := rec.ChildPrice
	if childPrice == nil {
		perAdult := baseOne
		if perAdult <= 0 && baseTwo > 0 {
			perAdult = baseTwo / 2
		}
		factor := prop.ChildFactor
		if factor == 0 {
			factor = 0.5
		}
		fallback := perAdult * factor
		childPrice = &fallback
	}

	return adultCost + float64(party.Children)*(*childPrice)
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
