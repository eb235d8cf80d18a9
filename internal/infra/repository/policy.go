package repository

import (
	"context"

	"pousada-pms/internal/domain/cancellation"
	"pousada-pms/internal/infra"
	"pousada-pms/internal/infra/db"
	"pousada-pms/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const listPoliciesSQL = `
SELECT id, property_id, name, description, active, applies_from, applies_to
FROM cancellation_policies
WHERE property_id = $1
ORDER BY applies_from, id`

const listRulesSQL = `
SELECT id, policy_id, label, min_days, max_days, refund_percent, penalty_amount, priority
FROM cancellation_refund_rules
WHERE policy_id = ANY($1)
ORDER BY policy_id, priority`

const upsertPolicySQL = `
INSERT INTO cancellation_policies (id, property_id, name, description, active, applies_from, applies_to, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	description = EXCLUDED.description,
	active = EXCLUDED.active,
	applies_from = EXCLUDED.applies_from,
	applies_to = EXCLUDED.applies_to,
	updated_at = now()`

const deleteRulesSQL = `DELETE FROM cancellation_refund_rules WHERE policy_id = $1`

const insertRuleSQL = `
INSERT INTO cancellation_refund_rules (id, policy_id, label, min_days, max_days, refund_percent, penalty_amount, priority)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

type PolicyRepository struct{}

func NewPolicyRepository() *PolicyRepository {
	return &PolicyRepository{}
}

func (r *PolicyRepository) ListByProperty(ctx context.Context, tx db.DBTX, propertyID uuid.UUID) ([]cancellation.Policy, error) {
	rows, err := tx.Query(ctx, listPoliciesSQL, propertyID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cancellation policies", err)
	}
	defer rows.Close()

	var policies []cancellation.Policy
	var ids []uuid.UUID
	for rows.Next() {
		var (
			p           cancellation.Policy
			description pgtype.Text
			appliesTo   pgtype.Timestamptz
		)
		if err := rows.Scan(&p.ID, &p.PropertyID, &p.Name, &description, &p.Active, &p.AppliesFrom, &appliesTo); err != nil {
			return nil, infra.WrapRepoErr("failed to scan cancellation policy", err)
		}
		p.Description = pgconv.StringPtrFromPgtype(description)
		p.AppliesTo = pgconv.TimePtrFromPgtype(appliesTo)
		policies = append(policies, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate cancellation policies", err)
	}
	if len(policies) == 0 {
		return nil, nil
	}

	rules, err := r.rulesByPolicy(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	for i := range policies {
		policies[i].Rules = rules[policies[i].ID]
	}
	return policies, nil
}

func (r *PolicyRepository) rulesByPolicy(ctx context.Context, tx db.DBTX, policyIDs []uuid.UUID) (map[uuid.UUID][]cancellation.RefundRule, error) {
	rows, err := tx.Query(ctx, listRulesSQL, policyIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list refund rules", err)
	}
	defer rows.Close()

	rules := make(map[uuid.UUID][]cancellation.RefundRule)
	for rows.Next() {
		var (
			rule    cancellation.RefundRule
			label   pgtype.Text
			maxDays pgtype.Int4
			penalty pgtype.Numeric
		)
		if err := rows.Scan(&rule.ID, &rule.PolicyID, &label, &rule.MinDays, &maxDays, &rule.RefundPercent, &penalty, &rule.Priority); err != nil {
			return nil, infra.WrapRepoErr("failed to scan refund rule", err)
		}
		rule.Label = pgconv.StringPtrFromPgtype(label)
		if md := pgconv.Int32PtrFromPgtype(maxDays); md != nil {
			v := int(*md)
			rule.MaxDays = &v
		}
		if rule.PenaltyAmount, err = pgconv.Float64PtrFromNumeric(penalty); err != nil {
			return nil, infra.WrapRepoErr("corrupt refund rule", err)
		}
		rules[rule.PolicyID] = append(rules[rule.PolicyID], rule)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate refund rules", err)
	}
	return rules, nil
}

// Upsert replaces the rule set wholesale. Partial rule edits are not a
// thing: a policy's bands are always saved together.
func (r *PolicyRepository) Upsert(ctx context.Context, tx db.DBTX, policy cancellation.Policy) error {
	_, err := tx.Exec(ctx, upsertPolicySQL,
		policy.ID,
		policy.PropertyID,
		policy.Name,
		pgconv.StringPtrToPgtype(policy.Description),
		policy.Active,
		pgconv.TimeToPgtype(policy.AppliesFrom),
		pgconv.TimePtrToPgtype(policy.AppliesTo),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert cancellation policy", err)
	}

	if _, err := tx.Exec(ctx, deleteRulesSQL, policy.ID); err != nil {
		return infra.WrapRepoErr("failed to clear refund rules", err)
	}

	for _, rule := range policy.Rules {
		var maxDays pgtype.Int4
		if rule.MaxDays != nil {
			maxDays = pgtype.Int4{Int32: int32(*rule.MaxDays), Valid: true}
		}
		_, err := tx.Exec(ctx, insertRuleSQL,
			rule.ID,
			policy.ID,
			pgconv.StringPtrToPgtype(rule.Label),
			rule.MinDays,
			maxDays,
			rule.RefundPercent,
			pgconv.Float64PtrToNumeric(rule.PenaltyAmount),
			rule.Priority,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to insert refund rule", err)
		}
	}
	return nil
}
