package readstore

import (
	"context"

	"pousada-pms/internal/infra"
	"pousada-pms/internal/infra/db"
	"pousada-pms/internal/pkg/pgconv"
	"pousada-pms/internal/usecase"
	"pousada-pms/internal/usecase/queries"

	"github.com/google/uuid"
)

const selectUserByEmailSQL = `
SELECT id, property_id, email, password_hash, role, active
FROM users
WHERE email = $1`

const selectUserByIDSQL = `
SELECT id, property_id, email, role, active
FROM users
WHERE id = $1`

const updateLastLoginSQL = `UPDATE users SET last_login_at = now() WHERE id = $1`

type UserReadStore struct {
	pool db.DBTX
}

func NewUserReadStore(pool db.DBTX) *UserReadStore {
	return &UserReadStore{pool: pool}
}

var _ usecase.UserRepository = (*UserReadStore)(nil)

func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	var (
		view queries.AuthorizedUserView
		hash string
	)
	err := s.pool.QueryRow(ctx, selectUserByEmailSQL, email).Scan(
		&view.ID, &view.PropertyID, &view.Email, &hash, &view.Role, &view.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return &view, hash, nil
}

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var view queries.AuthorizedUserView
	err := s.pool.QueryRow(ctx, selectUserByIDSQL, id).Scan(
		&view.ID, &view.PropertyID, &view.Email, &view.Role, &view.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &view, nil
}

func (s *UserReadStore) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.pool.Exec(ctx, updateLastLoginSQL, userID); err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}
