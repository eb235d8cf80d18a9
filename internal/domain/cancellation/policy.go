package cancellation

import (
	"time"

	"github.com/google/uuid"
)

// Policy is a property-level cancellation contract. A policy only governs
// cancellations made while its applicability window is open; the window is
// checked against the cancellation time, not the check-in date.
type Policy struct {
	ID          uuid.UUID
	PropertyID  uuid.UUID
	Name        string
	Description *string
	Active      bool
	AppliesFrom time.Time
	AppliesTo   *time.Time
	Rules       []RefundRule
}

// RefundRule maps a band of days-before-check-in to a refund percentage.
// Bounds are inclusive; MaxDays nil means "or more".
type RefundRule struct {
	ID            uuid.UUID
	PolicyID      uuid.UUID
	Label         *string
	MinDays       int
	MaxDays       *int
	RefundPercent int
	PenaltyAmount *float64
	Priority      int
}

// ApplicableAt reports whether the policy governs a cancellation happening
// at the given instant.
func (p Policy) ApplicableAt(now time.Time) bool {
	if !p.Active {
		return false
	}
	if now.Before(p.AppliesFrom) {
		return false
	}
	if p.AppliesTo != nil && now.After(*p.AppliesTo) {
		return false
	}
	return true
}

// Matches reports whether the rule's band contains the given lead time.
func (r RefundRule) Matches(daysUntilCheckIn int) bool {
	if daysUntilCheckIn < r.MinDays {
		return false
	}
	if r.MaxDays != nil && daysUntilCheckIn > *r.MaxDays {
		return false
	}
	return true
}
