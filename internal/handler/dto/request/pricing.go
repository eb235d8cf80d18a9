package request

import (
	"pousada-pms/internal/domain/pricing"
	"pousada-pms/internal/pkg/timespan"

	"github.com/google/uuid"
)

type AvailabilitySearchRequest struct {
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
	Adults   int    `json:"adults" binding:"required,min=1"`
	Children int    `json:"children" binding:"min=0"`
	Infants  int    `json:"infants" binding:"min=0"`
}

func (r AvailabilitySearchRequest) ToStay() (timespan.DateRange, pricing.Party, error) {
	checkIn, err := parseDate(r.CheckIn)
	if err != nil {
		return timespan.DateRange{}, pricing.Party{}, err
	}
	checkOut, err := parseDate(r.CheckOut)
	if err != nil {
		return timespan.DateRange{}, pricing.Party{}, err
	}
	stay, err := timespan.NewDateRange(checkIn, checkOut)
	if err != nil {
		return timespan.DateRange{}, pricing.Party{}, err
	}
	return stay, pricing.Party{Adults: r.Adults, Children: r.Children, Infants: r.Infants}, nil
}

type CalculateRequest struct {
	RoomID   uuid.UUID `json:"room_id" binding:"required"`
	CheckIn  string    `json:"check_in" binding:"required"`
	CheckOut string    `json:"check_out" binding:"required"`
	Adults   int       `json:"adults" binding:"required,min=1"`
	Children int       `json:"children" binding:"min=0"`
	Infants  int       `json:"infants" binding:"min=0"`
}

func (r CalculateRequest) ToStay() (timespan.DateRange, pricing.Party, error) {
	checkIn, err := parseDate(r.CheckIn)
	if err != nil {
		return timespan.DateRange{}, pricing.Party{}, err
	}
	checkOut, err := parseDate(r.CheckOut)
	if err != nil {
		return timespan.DateRange{}, pricing.Party{}, err
	}
	stay, err := timespan.NewDateRange(checkIn, checkOut)
	if err != nil {
		return timespan.DateRange{}, pricing.Party{}, err
	}
	return stay, pricing.Party{Adults: r.Adults, Children: r.Children, Infants: r.Infants}, nil
}
