package queries

import (
	"context"
	"time"

	"pousada-pms/internal/domain/cancellation"
	"pousada-pms/internal/infra"
	"pousada-pms/internal/pkg/clock"
	"pousada-pms/internal/pkg/errs"
	"pousada-pms/internal/pkg/timespan"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrPolicyNotFound      = errs.New("cancellation policy not found")
)

// CancellationSnapshot is the slice of a reservation the refund preview
// needs.
type CancellationSnapshot struct {
	ReservationID uuid.UUID
	PropertyID    uuid.UUID
	TotalValue    float64
	CheckIn       time.Time
	Status        string
	Timezone      string
}

type CancellationReadStore interface {
	ReservationForCancellation(ctx context.Context, reservationID uuid.UUID) (*CancellationSnapshot, error)
	PoliciesByProperty(ctx context.Context, propertyID uuid.UUID) ([]cancellation.Policy, error)
}

type CancellationQueries interface {
	// PreviewRefund computes the would-be refund without touching the
	// reservation. Safe to call any number of times.
	PreviewRefund(ctx context.Context, reservationID uuid.UUID) (*RefundPreviewView, error)
	GetActivePolicy(ctx context.Context, propertyID uuid.UUID) (*PolicyView, error)
	ListPolicies(ctx context.Context, propertyID uuid.UUID) ([]PolicyView, error)
}

type cancellationQueriesImpl struct {
	store  CancellationReadStore
	engine cancellation.Engine
	clock  clock.Clock
}

func NewCancellationQueries(store CancellationReadStore, engine cancellation.Engine, clock clock.Clock) CancellationQueries {
	return &cancellationQueriesImpl{store: store, engine: engine, clock: clock}
}

func (q *cancellationQueriesImpl) PreviewRefund(ctx context.Context, reservationID uuid.UUID) (*RefundPreviewView, error) {
	snap, err := q.store.ReservationForCancellation(ctx, reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	policies, err := q.store.PoliciesByProperty(ctx, snap.PropertyID)
	if err != nil {
		return nil, err
	}

	breakdown := q.engine.PreviewRefundIn(policies, snap.TotalValue, snap.CheckIn, q.clock.Now(), timespan.LocationFor(snap.Timezone))

	return &RefundPreviewView{
		ReservationID:    snap.ReservationID,
		TotalValue:       snap.TotalValue,
		RefundPercent:    breakdown.RefundPercent,
		RefundAmount:     breakdown.RefundAmount,
		RetainedAmount:   breakdown.RetainedAmount,
		DaysUntilCheckIn: breakdown.DaysUntilCheck,
		Reason:           breakdown.Reason,
		PolicyID:         breakdown.PolicyID,
		RuleID:           breakdown.RuleID,
	}, nil
}

func (q *cancellationQueriesImpl) GetActivePolicy(ctx context.Context, propertyID uuid.UUID) (*PolicyView, error) {
	policies, err := q.store.PoliciesByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	policy, ok := q.engine.SelectPolicy(policies, q.clock.Now())
	if !ok {
		return nil, ErrPolicyNotFound
	}

	view := toPolicyView(policy)
	return &view, nil
}

func (q *cancellationQueriesImpl) ListPolicies(ctx context.Context, propertyID uuid.UUID) ([]PolicyView, error) {
	policies, err := q.store.PoliciesByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	views := make([]PolicyView, len(policies))
	for i, p := range policies {
		views[i] = toPolicyView(p)
	}
	return views, nil
}

func toPolicyView(p cancellation.Policy) PolicyView {
	rules := make([]RefundRuleView, len(p.Rules))
	for i, r := range p.Rules {
		rules[i] = RefundRuleView{
			ID:            r.ID,
			Label:         r.Label,
			MinDays:       r.MinDays,
			MaxDays:       r.MaxDays,
			RefundPercent: r.RefundPercent,
			Priority:      r.Priority,
		}
	}
	return PolicyView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Active:      p.Active,
		AppliesFrom: p.AppliesFrom,
		AppliesTo:   p.AppliesTo,
		Rules:       rules,
	}
}
