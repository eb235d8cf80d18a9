package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type RoomAvailabilityView struct {
	RoomID     uuid.UUID      `json:"room_id"`
	RoomNumber string         `json:"room_number"`
	RoomName   string         `json:"room_name"`
	Capacity   int            `json:"capacity"`
	Nights     int            `json:"nights"`
	Total      float64        `json:"total"`
	Source     string         `json:"source"`
	Days       []DayPriceView `json:"days"`
}

type DayPriceView struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

type QuoteView struct {
	RoomID uuid.UUID      `json:"room_id"`
	Source string         `json:"source"`
	Nights int            `json:"nights"`
	Total  float64        `json:"total"`
	Days   []DayPriceView `json:"days"`
}

type ReservationView struct {
	ID            uuid.UUID  `json:"id"`
	RoomID        uuid.UUID  `json:"room_id"`
	RoomNumber    string     `json:"room_number"`
	GuestName     string     `json:"guest_name"`
	GuestEmail    *string    `json:"guest_email,omitempty"`
	GuestPhone    *string    `json:"guest_phone,omitempty"`
	Adults        int        `json:"adults"`
	Children      int        `json:"children"`
	Infants       int        `json:"infants"`
	CheckIn       time.Time  `json:"check_in"`
	CheckOut      time.Time  `json:"check_out"`
	Status        string     `json:"status"`
	TotalValue    float64    `json:"total_value"`
	PriceSource   string     `json:"price_source"`
	PriceOverride *float64   `json:"price_override,omitempty"`
	GuaranteeType *string    `json:"guarantee_type,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	CancelReason  *string    `json:"cancel_reason,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type ReservationListItem struct {
	ID         uuid.UUID `json:"id"`
	RoomID     uuid.UUID `json:"room_id"`
	RoomNumber string    `json:"room_number"`
	GuestName  string    `json:"guest_name"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Status     string    `json:"status"`
	TotalValue float64   `json:"total_value"`
	CreatedAt  time.Time `json:"created_at"`
}

type RefundPreviewView struct {
	ReservationID    uuid.UUID  `json:"reservation_id"`
	TotalValue       float64    `json:"total_value"`
	RefundPercent    int        `json:"refund_percent"`
	RefundAmount     float64    `json:"refund_amount"`
	RetainedAmount   float64    `json:"retained_amount"`
	DaysUntilCheckIn int        `json:"days_until_check_in"`
	Reason           string     `json:"reason"`
	PolicyID         *uuid.UUID `json:"policy_id,omitempty"`
	RuleID           *uuid.UUID `json:"rule_id,omitempty"`
}

type RefundRuleView struct {
	ID            uuid.UUID `json:"id"`
	Label         *string   `json:"label,omitempty"`
	MinDays       int       `json:"min_days"`
	MaxDays       *int      `json:"max_days,omitempty"`
	RefundPercent int       `json:"refund_percent"`
	Priority      int       `json:"priority"`
}

type PolicyView struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	Active      bool             `json:"active"`
	AppliesFrom time.Time        `json:"applies_from"`
	AppliesTo   *time.Time       `json:"applies_to,omitempty"`
	Rules       []RefundRuleView `json:"rules"`
}

type BlockView struct {
	ID         uuid.UUID `json:"id"`
	RoomID     uuid.UUID `json:"room_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Type       string    `json:"type"`
	Reason     string    `json:"reason,omitempty"`
	Recurrence string    `json:"recurrence"`
}

type ProductView struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Price  float64   `json:"price"`
	Stock  int       `json:"stock"`
	Active bool      `json:"active"`
}

type ConsumptionView struct {
	ID            uuid.UUID `json:"id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	ProductID     uuid.UUID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Quantity      int       `json:"quantity"`
	UnitPrice     float64   `json:"unit_price"`
	Total         float64   `json:"total"`
	ConsumedAt    time.Time `json:"consumed_at"`
}

type AuthorizedUserView struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
}
