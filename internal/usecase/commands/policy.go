package commands

import (
	"context"
	"time"

	"pousada-pms/internal/domain/cancellation"
	"pousada-pms/internal/pkg/errs"
	"pousada-pms/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidPolicy = errs.New("invalid cancellation policy")

type UpsertRuleInput struct {
	Label         *string
	MinDays       int
	MaxDays       *int
	RefundPercent int
	Priority      int
}

type UpsertPolicyInput struct {
	ID          *uuid.UUID
	Name        string
	Description *string
	Active      bool
	AppliesFrom time.Time
	AppliesTo   *time.Time
	Rules       []UpsertRuleInput
}

type PolicyCommands interface {
	Upsert(ctx context.Context, actor Actor, in UpsertPolicyInput) (uuid.UUID, error)
}

type policyCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewPolicyCommands(uow shared.UnitOfWork) PolicyCommands {
	return &policyCommandsImpl{uow: uow}
}

func (c *policyCommandsImpl) Upsert(ctx context.Context, actor Actor, in UpsertPolicyInput) (uuid.UUID, error) {
	if in.Name == "" {
		return uuid.Nil, ErrInvalidPolicy
	}
	for _, r := range in.Rules {
		if r.RefundPercent < 0 || r.RefundPercent > 100 {
			return uuid.Nil, ErrInvalidPolicy
		}
		if r.MinDays < 0 {
			return uuid.Nil, ErrInvalidPolicy
		}
		if r.MaxDays != nil && *r.MaxDays < r.MinDays {
			return uuid.Nil, ErrInvalidPolicy
		}
	}

	policyID := uuid.New()
	if in.ID != nil {
		policyID = *in.ID
	}

	rules := make([]cancellation.RefundRule, len(in.Rules))
	for i, r := range in.Rules {
		rules[i] = cancellation.RefundRule{
			ID:            uuid.New(),
			PolicyID:      policyID,
			Label:         r.Label,
			MinDays:       r.MinDays,
			MaxDays:       r.MaxDays,
			RefundPercent: r.RefundPercent,
			Priority:      r.Priority,
		}
	}

	policy := cancellation.Policy{
		ID:          policyID,
		PropertyID:  actor.PropertyID,
		Name:        in.Name,
		Description: in.Description,
		Active:      in.Active,
		AppliesFrom: in.AppliesFrom,
		AppliesTo:   in.AppliesTo,
		Rules:       rules,
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Policies().Upsert(ctx, tx.DB(), policy); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return policyID, nil
}
