package response

import (
	"pousada-pms/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type CancelResponse struct {
	Status         string     `json:"status"`
	RefundPercent  int        `json:"refund_percent"`
	RefundAmount   float64    `json:"refund_amount"`
	RetainedAmount float64    `json:"retained_amount"`
	Reason         string     `json:"reason"`
	PolicyID       *uuid.UUID `json:"policy_id,omitempty"`
	RuleID         *uuid.UUID `json:"rule_id,omitempty"`
}

func FromCancelResult(r *commands.CancelResult) CancelResponse {
	return CancelResponse{
		Status:         "cancelled",
		RefundPercent:  r.RefundPercent,
		RefundAmount:   r.RefundAmount,
		RetainedAmount: r.RetainedAmount,
		Reason:         r.Reason,
		PolicyID:       r.PolicyID,
		RuleID:         r.RuleID,
	}
}
