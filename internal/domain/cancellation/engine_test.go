//go:build unit

package cancellation_test

import (
	"testing"
	"time"

	"pousada-pms/internal/domain/cancellation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

// standardPolicy mirrors a common three-band contract: full refund with ten
// or more days of notice, half between five and nine, nothing under five.
func standardPolicy(propertyID uuid.UUID) cancellation.Policy {
	policyID := uuid.New()
	return cancellation.Policy{
		ID:          policyID,
		PropertyID:  propertyID,
		Name:        "política padrão",
		Active:      true,
		AppliesFrom: day(2026, 1, 1),
		Rules: []cancellation.RefundRule{
			{ID: uuid.New(), PolicyID: policyID, MinDays: 10, RefundPercent: 100, Priority: 1},
			{ID: uuid.New(), PolicyID: policyID, MinDays: 5, MaxDays: ptr(9), RefundPercent: 50, Priority: 2},
			{ID: uuid.New(), PolicyID: policyID, MinDays: 0, MaxDays: ptr(4), RefundPercent: 0, Priority: 3},
		},
	}
}

func TestPreviewRefund(t *testing.T) {
	engine := cancellation.NewEngine()
	propertyID := uuid.New()
	policies := []cancellation.Policy{standardPolicy(propertyID)}
	checkIn := day(2026, 8, 20)

	tests := []struct {
		name        string
		now         time.Time
		wantPercent int
		wantRefund  float64
		wantKept    float64
	}{
		{"ten days out refunds everything", day(2026, 8, 10), 100, 200.00, 0},
		{"five days out refunds half", day(2026, 8, 15), 50, 100.00, 100.00},
		{"two days out refunds nothing", day(2026, 8, 18), 0, 0, 200.00},
		{"same day refunds nothing", day(2026, 8, 20), 0, 0, 200.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.PreviewRefund(policies, 200.00, checkIn, tt.now)
			assert.Equal(t, tt.wantPercent, got.RefundPercent)
			assert.Equal(t, tt.wantRefund, got.RefundAmount)
			assert.Equal(t, tt.wantKept, got.RetainedAmount)
			require.NotNil(t, got.PolicyID)
			require.NotNil(t, got.RuleID)
		})
	}

	t.Run("cancellation after check-in floors lead time at zero", func(t *testing.T) {
		got := engine.PreviewRefund(policies, 200.00, checkIn, day(2026, 8, 25))
		assert.Equal(t, 0, got.DaysUntilCheck)
		assert.Equal(t, 0, got.RefundPercent)
	})

	t.Run("no active policy retains everything", func(t *testing.T) {
		got := engine.PreviewRefund(nil, 200.00, checkIn, day(2026, 8, 10))
		assert.Equal(t, 0, got.RefundPercent)
		assert.Equal(t, 0.0, got.RefundAmount)
		assert.Equal(t, 200.00, got.RetainedAmount)
		assert.Equal(t, cancellation.ReasonNoActivePolicy, got.Reason)
		assert.Nil(t, got.PolicyID)
	})

	t.Run("no matching rule retains everything but names the policy", func(t *testing.T) {
		p := standardPolicy(propertyID)
		p.Rules = []cancellation.RefundRule{
			{ID: uuid.New(), PolicyID: p.ID, MinDays: 10, RefundPercent: 100, Priority: 1},
		}
		got := engine.PreviewRefund([]cancellation.Policy{p}, 200.00, checkIn, day(2026, 8, 18))
		assert.Equal(t, 0.0, got.RefundAmount)
		assert.Equal(t, cancellation.ReasonNoMatchingRule, got.Reason)
		require.NotNil(t, got.PolicyID)
		assert.Nil(t, got.RuleID)
	})

	t.Run("overlapping bands resolve by priority", func(t *testing.T) {
		p := standardPolicy(propertyID)
		p.Rules = []cancellation.RefundRule{
			{ID: uuid.New(), PolicyID: p.ID, MinDays: 0, RefundPercent: 50, Priority: 2},
			{ID: uuid.New(), PolicyID: p.ID, MinDays: 0, RefundPercent: 80, Priority: 1},
		}
		got := engine.PreviewRefund([]cancellation.Policy{p}, 200.00, checkIn, day(2026, 8, 10))
		assert.Equal(t, 80, got.RefundPercent)
		assert.Equal(t, 160.00, got.RefundAmount)
	})

	t.Run("rounding stays at two decimals", func(t *testing.T) {
		p := standardPolicy(propertyID)
		p.Rules = []cancellation.RefundRule{
			{ID: uuid.New(), PolicyID: p.ID, MinDays: 0, RefundPercent: 33, Priority: 1},
		}
		got := engine.PreviewRefund([]cancellation.Policy{p}, 100.55, checkIn, day(2026, 8, 10))
		assert.Equal(t, 33.18, got.RefundAmount)
		assert.Equal(t, 67.37, got.RetainedAmount)
	})

	t.Run("preview is idempotent", func(t *testing.T) {
		first := engine.PreviewRefund(policies, 200.00, checkIn, day(2026, 8, 15))
		second := engine.PreviewRefund(policies, 200.00, checkIn, day(2026, 8, 15))
		assert.Equal(t, first, second)
	})
}

func TestSelectPolicy(t *testing.T) {
	engine := cancellation.NewEngine()
	propertyID := uuid.New()
	now := day(2026, 8, 1)

	t.Run("inactive and out-of-window policies are skipped", func(t *testing.T) {
		inactive := standardPolicy(propertyID)
		inactive.Active = false

		future := standardPolicy(propertyID)
		future.AppliesFrom = day(2026, 9, 1)

		expired := standardPolicy(propertyID)
		expired.AppliesTo = ptr(day(2026, 7, 1))

		_, ok := engine.SelectPolicy([]cancellation.Policy{inactive, future, expired}, now)
		assert.False(t, ok)
	})

	t.Run("earliest applies_from wins when windows overlap", func(t *testing.T) {
		older := standardPolicy(propertyID)
		older.AppliesFrom = day(2025, 1, 1)

		newer := standardPolicy(propertyID)
		newer.AppliesFrom = day(2026, 6, 1)

		got, ok := engine.SelectPolicy([]cancellation.Policy{newer, older}, now)
		require.True(t, ok)
		assert.Equal(t, older.ID, got.ID)
	})

	t.Run("applies_to boundary is inclusive", func(t *testing.T) {
		p := standardPolicy(propertyID)
		p.AppliesTo = ptr(now)
		_, ok := engine.SelectPolicy([]cancellation.Policy{p}, now)
		assert.True(t, ok)
	})
}
