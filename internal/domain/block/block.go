package block

import (
	"errors"
	"time"

	"pousada-pms/internal/pkg/timespan"

	"github.com/google/uuid"
)

var (
	ErrInvalidType       = errors.New("invalid block type")
	ErrInvalidRecurrence = errors.New("invalid block recurrence")
	ErrBlockConflict     = errors.New("block conflicts with an existing block")
)

type Type string

const (
	TypeMaintenance Type = "maintenance"
	TypeCleaning    Type = "cleaning"
	TypePrivate     Type = "private"
	TypeCustom      Type = "custom"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeMaintenance, TypeCleaning, TypePrivate, TypeCustom:
		return true
	default:
		return false
	}
}

type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	default:
		return false
	}
}

// Block is an administrative hold on a room. It behaves like a
// reservation for conflict purposes but carries no price.
type Block struct {
	ID         uuid.UUID
	RoomID     uuid.UUID
	Range      timespan.DateRange
	Type       Type
	Reason     string
	Recurrence Recurrence
	CreatedBy  *uuid.UUID
}

func New(roomID uuid.UUID, r timespan.DateRange, t Type, reason string, rec Recurrence, createdBy *uuid.UUID) (Block, error) {
	if !t.IsValid() {
		return Block{}, ErrInvalidType
	}
	if rec == "" {
		rec = RecurrenceNone
	}
	if !rec.IsValid() {
		return Block{}, ErrInvalidRecurrence
	}
	return Block{
		ID:         uuid.New(),
		RoomID:     roomID,
		Range:      r,
		Type:       t,
		Reason:     reason,
		Recurrence: rec,
		CreatedBy:  createdBy,
	}, nil
}

// BlocksDate reports whether a single calendar day is held by this block,
// honoring the recurrence pattern inside the block's range.
func (b Block) BlocksDate(date time.Time) bool {
	if !b.Range.Contains(date) {
		return false
	}

	switch b.Recurrence {
	case RecurrenceNone, RecurrenceDaily:
		return true
	case RecurrenceWeekly:
		diff := timespan.DaysUntil(b.Range.Start(), date)
		return diff%7 == 0
	case RecurrenceMonthly:
		return timespan.Midnight(date).Day() == b.Range.Start().Day()
	default:
		return false
	}
}

// BlocksRange reports whether any night of the stay is held.
func (b Block) BlocksRange(stay timespan.DateRange) bool {
	if !b.Range.Overlaps(stay) {
		return false
	}
	for _, d := range stay.Days() {
		if b.BlocksDate(d) {
			return true
		}
	}
	return false
}

// ConflictsWith reports whether two blocks for the same room overlap in
// plain range terms. Recurrence is ignored here: two holds sharing a range
// are an operator mistake either way.
func (b Block) ConflictsWith(other Block) bool {
	return b.RoomID == other.RoomID && b.Range.Overlaps(other.Range)
}
