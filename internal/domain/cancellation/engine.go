package cancellation

import (
	"math"
	"time"

	"pousada-pms/internal/pkg/timespan"

	"github.com/google/uuid"
)

const (
	ReasonNoActivePolicy = "no active cancellation policy"
	ReasonNoMatchingRule = "no matching refund rule"
)

// Breakdown is the outcome of a refund computation. It is produced
// identically by previews and by actual cancellations; only the latter
// mutates anything.
type Breakdown struct {
	RefundPercent  int
	RefundAmount   float64
	RetainedAmount float64
	DaysUntilCheck int
	Reason         string
	PolicyID       *uuid.UUID
	RuleID         *uuid.UUID
}

// Engine computes refunds from the property's cancellation policies. It is
// deterministic: the same reservation, policies and clock always yield the
// same breakdown.
type Engine struct{}

func NewEngine() Engine {
	return Engine{}
}

// PreviewRefund computes the refund for cancelling a stay worth totalValue
// at instant now. Without an applicable policy, or without a rule matching
// the lead time, the guest gets nothing back and the reason says why.
func (e Engine) PreviewRefund(policies []Policy, totalValue float64, checkIn, now time.Time) Breakdown {
	return e.PreviewRefundIn(policies, totalValue, checkIn, now, time.UTC)
}

// PreviewRefundIn is PreviewRefund with the lead time counted against the
// property's local calendar instead of UTC.
func (e Engine) PreviewRefundIn(policies []Policy, totalValue float64, checkIn, now time.Time, loc *time.Location) Breakdown {
	days := timespan.DaysUntilIn(now, checkIn, loc)
	if days < 0 {
		days = 0
	}

	policy, ok := e.SelectPolicy(policies, now)
	if !ok {
		return Breakdown{
			RetainedAmount: round2(totalValue),
			DaysUntilCheck: days,
			Reason:         ReasonNoActivePolicy,
		}
	}

	rule, ok := matchRule(policy.Rules, days)
	if !ok {
		return Breakdown{
			RetainedAmount: round2(totalValue),
			DaysUntilCheck: days,
			Reason:         ReasonNoMatchingRule,
			PolicyID:       &policy.ID,
		}
	}

	refund := round2(totalValue * float64(rule.RefundPercent) / 100)
	reason := policy.Name
	if rule.Label != nil {
		reason = *rule.Label
	}

	return Breakdown{
		RefundPercent:  rule.RefundPercent,
		RefundAmount:   refund,
		RetainedAmount: round2(totalValue - refund),
		DaysUntilCheck: days,
		Reason:         reason,
		PolicyID:       &policy.ID,
		RuleID:         &rule.ID,
	}
}

// SelectPolicy picks the governing policy among those applicable at now.
// When several windows overlap the earliest applies_from wins, then the
// lowest ID, keeping the choice stable across calls.
func (e Engine) SelectPolicy(policies []Policy, now time.Time) (Policy, bool) {
	var best Policy
	found := false
	for _, p := range policies {
		if !p.ApplicableAt(now) {
			continue
		}
		if !found || betterPolicy(p, best) {
			best = p
			found = true
		}
	}
	return best, found
}

func betterPolicy(a, b Policy) bool {
	if !a.AppliesFrom.Equal(b.AppliesFrom) {
		return a.AppliesFrom.Before(b.AppliesFrom)
	}
	return a.ID.String() < b.ID.String()
}

// matchRule returns the rule whose band contains the lead time. When bands
// overlap the lowest priority number wins.
func matchRule(rules []RefundRule, days int) (RefundRule, bool) {
	var best RefundRule
	found := false
	for _, r := range rules {
		if !r.Matches(days) {
			continue
		}
		if !found || r.Priority < best.Priority {
			best = r
			found = true
		}
	}
	return best, found
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
