package readstore

import (
	"context"

	"pousada-pms/internal/domain/cancellation"
	"pousada-pms/internal/infra"
	"pousada-pms/internal/infra/db"
	"pousada-pms/internal/infra/repository"
	"pousada-pms/internal/pkg/pgconv"
	"pousada-pms/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const selectCancellationSnapshotSQL = `
SELECT r.id, ro.property_id, r.total_value, r.check_in, r.status, p.timezone
FROM reservations r
JOIN rooms ro ON ro.id = r.room_id
JOIN properties p ON p.id = ro.property_id
WHERE r.id = $1`

type CancellationReadStore struct {
	pool     db.DBTX
	policies *repository.PolicyRepository
}

func NewCancellationReadStore(pool db.DBTX) *CancellationReadStore {
	return &CancellationReadStore{
		pool:     pool,
		policies: repository.NewPolicyRepository(),
	}
}

var _ queries.CancellationReadStore = (*CancellationReadStore)(nil)

func (s *CancellationReadStore) ReservationForCancellation(ctx context.Context, reservationID uuid.UUID) (*queries.CancellationSnapshot, error) {
	var (
		snap       queries.CancellationSnapshot
		totalValue pgtype.Numeric
		checkIn    pgtype.Date
	)
	err := s.pool.QueryRow(ctx, selectCancellationSnapshotSQL, reservationID).Scan(
		&snap.ReservationID, &snap.PropertyID, &totalValue, &checkIn, &snap.Status, &snap.Timezone,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load cancellation snapshot", err)
	}

	if snap.TotalValue, err = pgconv.Float64FromNumeric(totalValue); err != nil {
		return nil, infra.WrapRepoErr("corrupt total value", err)
	}
	snap.CheckIn = pgconv.DateFromPgtype(checkIn)
	return &snap, nil
}

func (s *CancellationReadStore) PoliciesByProperty(ctx context.Context, propertyID uuid.UUID) ([]cancellation.Policy, error) {
	return s.policies.ListByProperty(ctx, s.pool, propertyID)
}
