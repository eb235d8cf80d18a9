package request

import (
	"pousada-pms/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBlockRequest struct {
	RoomID     uuid.UUID `json:"room_id" binding:"required"`
	StartDate  string    `json:"start_date" binding:"required"`
	EndDate    string    `json:"end_date" binding:"required"`
	Type       string    `json:"type" binding:"required"`
	Reason     string    `json:"reason,omitempty"`
	Recurrence string    `json:"recurrence,omitempty"`
}

func (r CreateBlockRequest) ToInput() (commands.CreateBlockInput, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return commands.CreateBlockInput{}, err
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return commands.CreateBlockInput{}, err
	}
	return commands.CreateBlockInput{
		RoomID:     r.RoomID,
		StartDate:  start,
		EndDate:    end,
		Type:       r.Type,
		Reason:     r.Reason,
		Recurrence: r.Recurrence,
	}, nil
}
