package request

import (
	"time"

	"pousada-pms/internal/usecase/commands"

	"github.com/google/uuid"
)

type RefundRuleRequest struct {
	Label         *string `json:"label,omitempty"`
	MinDays       int     `json:"min_days" binding:"min=0"`
	MaxDays       *int    `json:"max_days,omitempty"`
	RefundPercent int     `json:"refund_percent" binding:"min=0,max=100"`
	Priority      int     `json:"priority"`
}

type UpsertPolicyRequest struct {
	ID          *uuid.UUID          `json:"id,omitempty"`
	Name        string              `json:"name" binding:"required"`
	Description *string             `json:"description,omitempty"`
	Active      bool                `json:"active"`
	AppliesFrom time.Time           `json:"applies_from" binding:"required"`
	AppliesTo   *time.Time          `json:"applies_to,omitempty"`
	Rules       []RefundRuleRequest `json:"rules" binding:"required,min=1,dive"`
}

func (r UpsertPolicyRequest) ToInput() commands.UpsertPolicyInput {
	rules := make([]commands.UpsertRuleInput, len(r.Rules))
	for i, rule := range r.Rules {
		rules[i] = commands.UpsertRuleInput{
			Label:         rule.Label,
			MinDays:       rule.MinDays,
			MaxDays:       rule.MaxDays,
			RefundPercent: rule.RefundPercent,
			Priority:      rule.Priority,
		}
	}
	return commands.UpsertPolicyInput{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Active:      r.Active,
		AppliesFrom: r.AppliesFrom,
		AppliesTo:   r.AppliesTo,
		Rules:       rules,
	}
}
