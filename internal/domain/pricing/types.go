package pricing

import (
	"time"

	"pousada-pms/internal/pkg/timespan"

	"github.com/google/uuid"
)

// Property carries the tenant-level pricing defaults used by the lowest
// cascade level and the child-price fallback.
type Property struct {
	ID              uuid.UUID
	Name            string
	BaseOneAdult    *float64
	BaseTwoAdults   *float64
	AdditionalAdult *float64
	ChildPrice      *float64
	ChildFactor     float64
	InfantMaxAge    int
	ChildMaxAge     int
	Timezone        string
}

type Room struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	CategoryID *uuid.UUID
	Number     string
	Name       string
	Capacity   int
	Active     bool
}

// Party is the guest composition of a stay. Infants never count toward
// occupancy or capacity.
type Party struct {
	Adults   int
	Children int
	Infants  int
}

func (p Party) Occupancy() int {
	return p.Adults + p.Children
}

// RoomRate is a flat per-occupancy nightly rate with no date bound.
type RoomRate struct {
	ID          uuid.UUID
	RoomID      uuid.UUID
	PeopleCount int
	PricePerDay float64
}

// RoomRatePeriod is a dated override of RoomRate; both bounds inclusive.
type RoomRatePeriod struct {
	ID          uuid.UUID
	RoomID      uuid.UUID
	PeopleCount int
	StartDate   time.Time
	EndDate     time.Time
	PricePerDay float64
}

func (p RoomRatePeriod) CoversStay(stay timespan.DateRange) bool {
	// Inclusive end date: a period ending on the checkout day still covers
	// the last billable night.
	return !stay.Start().Before(timespan.Midnight(p.StartDate)) &&
		!stay.End().After(timespan.Midnight(p.EndDate).AddDate(0, 0, 1))
}

// CategoryRate prices one level up from the room. Either a flat nightly
// price or occupancy-based fields may be present.
type CategoryRate struct {
	ID              uuid.UUID
	CategoryID      uuid.UUID
	PricePerDay     *float64
	BaseOneAdult    *float64
	BaseTwoAdults   *float64
	AdditionalAdult *float64
	ChildPrice      *float64
}

type CategoryRatePeriod struct {
	ID              uuid.UUID
	CategoryID      uuid.UUID
	StartDate       time.Time
	EndDate         time.Time
	PricePerDay     *float64
	BaseOneAdult    *float64
	BaseTwoAdults   *float64
	AdditionalAdult *float64
	ChildPrice      *float64
}

func (p CategoryRatePeriod) CoversStay(stay timespan.DateRange) bool {
	return !stay.Start().Before(timespan.Midnight(p.StartDate)) &&
		!stay.End().After(timespan.Midnight(p.EndDate).AddDate(0, 0, 1))
}

// RateSet is everything the resolver may consult for one room, fetched
// up front so resolution itself stays pure.
type RateSet struct {
	RoomRates           []RoomRate
	RoomRatePeriods     []RoomRatePeriod
	CategoryRates       []CategoryRate
	CategoryRatePeriods []CategoryRatePeriod
}

// Source identifies which cascade level produced a quote.
type Source string

const (
	SourceRoomPeriod     Source = "room_period"
	SourceRoomBase       Source = "room_base"
	SourceCategoryPeriod Source = "category_period"
	SourceCategoryBase   Source = "category_base"
	SourcePropertyBase   Source = "property_base"
)

func (s Source) String() string {
	return string(s)
}

type DayPrice struct {
	Date  time.Time
	Price float64
}

type Quote struct {
	Source Source
	Total  float64
	Days   []DayPrice
}
