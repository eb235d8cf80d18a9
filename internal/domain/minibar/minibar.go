package minibar

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProductInactive   = errors.New("product is not available for sale")
	ErrInsufficientStock = errors.New("insufficient product stock")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)

// Product is a sellable minibar item with a live stock counter.
type Product struct {
	id     uuid.UUID
	name   string
	price  float64
	stock  int
	active bool
}

func ReconstructProduct(id uuid.UUID, name string, price float64, stock int, active bool) *Product {
	return &Product{id: id, name: name, price: price, stock: stock, active: active}
}

func (p *Product) ID() uuid.UUID  { return p.id }
func (p *Product) Name() string   { return p.name }
func (p *Product) Price() float64 { return p.price }
func (p *Product) Stock() int     { return p.stock }
func (p *Product) Active() bool   { return p.active }

// Consume decrements stock for a sale. The caller holds a row lock, so the
// check-and-decrement pair is atomic once persisted.
func (p *Product) Consume(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !p.active {
		return ErrProductInactive
	}
	if p.stock < quantity {
		return ErrInsufficientStock
	}
	p.stock -= quantity
	return nil
}

// Restock returns units to inventory, e.g. when a consumption is voided.
func (p *Product) Restock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	p.stock += quantity
	return nil
}

// Consumption is one minibar charge against a reservation. UnitPrice is
// captured at sale time so later product price changes never rewrite
// history.
type Consumption struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	ProductID     uuid.UUID
	Quantity      int
	UnitPrice     float64
	ConsumedAt    time.Time
	RegisteredBy  *uuid.UUID
}

func NewConsumption(reservationID uuid.UUID, product *Product, quantity int, at time.Time, registeredBy *uuid.UUID) (Consumption, error) {
	if err := product.Consume(quantity); err != nil {
		return Consumption{}, err
	}
	return Consumption{
		ID:            uuid.New(),
		ReservationID: reservationID,
		ProductID:     product.ID(),
		Quantity:      quantity,
		UnitPrice:     product.Price(),
		ConsumedAt:    at,
		RegisteredBy:  registeredBy,
	}, nil
}

func (c Consumption) Total() float64 {
	return c.UnitPrice * float64(c.Quantity)
}

// OutstandingTotal sums the charges of a reservation's consumptions. The
// checkout guard compares this against payments received.
func OutstandingTotal(consumptions []Consumption) float64 {
	total := 0.0
	for _, c := range consumptions {
		total += c.Total()
	}
	return total
}
