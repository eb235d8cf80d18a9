package request

import (
	"strings"

	"pousada-pms/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	RoomID        uuid.UUID `json:"room_id" binding:"required"`
	GuestName     string    `json:"guest_name" binding:"required"`
	GuestEmail    *string   `json:"guest_email,omitempty"`
	GuestPhone    *string   `json:"guest_phone,omitempty"`
	Adults        int       `json:"adults" binding:"required,min=1"`
	Children      int       `json:"children" binding:"min=0"`
	Infants       int       `json:"infants" binding:"min=0"`
	CheckIn       string    `json:"check_in" binding:"required"`
	CheckOut      string    `json:"check_out" binding:"required"`
	Notes         *string   `json:"notes,omitempty"`
	PriceOverride *float64  `json:"price_override,omitempty"`
}

func (r CreateReservationRequest) ToInput() (commands.CreateReservationInput, error) {
	checkIn, err := parseDate(r.CheckIn)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}
	checkOut, err := parseDate(r.CheckOut)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}

	var notes *string
	if r.Notes != nil {
		trimmed := strings.TrimSpace(*r.Notes)
		if trimmed != "" {
			notes = &trimmed
		}
	}

	return commands.CreateReservationInput{
		RoomID:        r.RoomID,
		GuestName:     strings.TrimSpace(r.GuestName),
		GuestEmail:    r.GuestEmail,
		GuestPhone:    r.GuestPhone,
		Adults:        r.Adults,
		Children:      r.Children,
		Infants:       r.Infants,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Notes:         notes,
		PriceOverride: r.PriceOverride,
	}, nil
}

type UpdateReservationRequest struct {
	RoomID   uuid.UUID `json:"room_id" binding:"required"`
	Adults   int       `json:"adults" binding:"required,min=1"`
	Children int       `json:"children" binding:"min=0"`
	Infants  int       `json:"infants" binding:"min=0"`
	CheckIn  string    `json:"check_in" binding:"required"`
	CheckOut string    `json:"check_out" binding:"required"`
}

func (r UpdateReservationRequest) ToInput() (commands.RebookReservationInput, error) {
	checkIn, err := parseDate(r.CheckIn)
	if err != nil {
		return commands.RebookReservationInput{}, err
	}
	checkOut, err := parseDate(r.CheckOut)
	if err != nil {
		return commands.RebookReservationInput{}, err
	}
	return commands.RebookReservationInput{
		RoomID:   r.RoomID,
		Adults:   r.Adults,
		Children: r.Children,
		Infants:  r.Infants,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	}, nil
}

type ConfirmReservationRequest struct {
	GuaranteeType *string `json:"guarantee_type,omitempty"`
}

type CheckOutRequest struct {
	PaidAmount float64 `json:"paid_amount" binding:"min=0"`
}

type CancelReservationRequest struct {
	Reason *string `json:"reason,omitempty"`
}

type OverridePriceRequest struct {
	Value float64 `json:"value" binding:"required,gt=0"`
}
