package availability

import (
	"pousada-pms/internal/domain/block"
	"pousada-pms/internal/domain/pricing"
	"pousada-pms/internal/pkg/timespan"
)

// Candidate bundles one room with everything needed to judge and price it:
// its rates, the date ranges of reservations still occupying it, and its
// administrative blocks.
type Candidate struct {
	Room   pricing.Room
	Rates  pricing.RateSet
	Holds  []timespan.DateRange
	Blocks []block.Block
}

// Result is one available room with its cascade quote for the stay.
type Result struct {
	Room  pricing.Room
	Quote pricing.Quote
}

// Checker answers "which of these rooms can host this stay, and at what
// price". Filtering is conjunctive: a room survives only when it is active,
// fits the party, has no overlapping hold and no blocking hold on any night.
type Checker struct {
	resolver pricing.Resolver
}

func NewChecker(resolver pricing.Resolver) Checker {
	return Checker{resolver: resolver}
}

// Search returns the available candidates in input order. A room whose
// rates cannot price the stay is dropped rather than reported at zero.
func (c Checker) Search(prop pricing.Property, candidates []Candidate, stay timespan.DateRange, party pricing.Party) ([]Result, error) {
	if party.Adults < 1 {
		return nil, pricing.ErrNoAdults
	}

	results := make([]Result, 0, len(candidates))
	for _, cand := range candidates {
		if !c.fits(cand, stay, party) {
			continue
		}

		quote, err := c.resolver.Resolve(cand.Room, prop, cand.Rates, pricing.Input{Stay: stay, Party: party})
		if err != nil {
			continue
		}

		results = append(results, Result{Room: cand.Room, Quote: quote})
	}
	return results, nil
}

// IsAvailable judges a single room without pricing it. Used on the write
// path, where the conflict check runs again under lock before persisting.
func (c Checker) IsAvailable(cand Candidate, stay timespan.DateRange, party pricing.Party) bool {
	return c.fits(cand, stay, party)
}

func (c Checker) fits(cand Candidate, stay timespan.DateRange, party pricing.Party) bool {
	if !cand.Room.Active {
		return false
	}
	if party.Occupancy() > cand.Room.Capacity {
		return false
	}
	for _, hold := range cand.Holds {
		if hold.Overlaps(stay) {
			return false
		}
	}
	for _, b := range cand.Blocks {
		if b.BlocksRange(stay) {
			return false
		}
	}
	return true
}
