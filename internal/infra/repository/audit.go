package repository

import (
	"context"
	"encoding/json"

	"pousada-pms/internal/domain/audit"
	"pousada-pms/internal/infra"
	"pousada-pms/internal/infra/db"
	"pousada-pms/internal/pkg/pgconv"
)

const insertAuditSQL = `
INSERT INTO audit_log (id, reservation_id, actor_id, action, detail, recorded_at)
VALUES ($1, $2, $3, $4, $5, $6)`

type AuditRepository struct{}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

func (r *AuditRepository) Append(ctx context.Context, tx db.DBTX, entry audit.Entry) error {
	detail, err := json.Marshal(entry.Detail)
	if err != nil {
		return infra.WrapRepoErr("failed to encode audit detail", err)
	}

	_, err = tx.Exec(ctx, insertAuditSQL,
		entry.ID,
		pgconv.UUIDPtrToPgtype(entry.ReservationID),
		pgconv.UUIDPtrToPgtype(entry.ActorID),
		entry.Action,
		detail,
		pgconv.TimeToPgtype(entry.RecordedAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to append audit entry", err)
	}
	return nil
}
