package repository

import (
	"context"

	"pousada-pms/internal/domain/pricing"
	"pousada-pms/internal/infra"
	"pousada-pms/internal/infra/db"
	"pousada-pms/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const selectPropertySQL = `
SELECT id, name, base_one_adult, base_two_adults, additional_adult,
	child_price, child_factor, infant_max_age, child_max_age, timezone
FROM properties
WHERE id = $1`

type PropertyRepository struct{}

func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{}
}

func (r *PropertyRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*pricing.Property, error) {
	var (
		prop                          pricing.Property
		baseOne, baseTwo, addAdult    pgtype.Numeric
		childPrice, childFactor       pgtype.Numeric
	)

	err := tx.QueryRow(ctx, selectPropertySQL, id).Scan(
		&prop.ID, &prop.Name, &baseOne, &baseTwo, &addAdult,
		&childPrice, &childFactor, &prop.InfantMaxAge, &prop.ChildMaxAge, &prop.Timezone,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find property", err)
	}

	if prop.BaseOneAdult, err = pgconv.Float64PtrFromNumeric(baseOne); err != nil {
		return nil, infra.WrapRepoErr("corrupt pricing default", err)
	}
	if prop.BaseTwoAdults, err = pgconv.Float64PtrFromNumeric(baseTwo); err != nil {
		return nil, infra.WrapRepoErr("corrupt pricing default", err)
	}
	if prop.AdditionalAdult, err = pgconv.Float64PtrFromNumeric(addAdult); err != nil {
		return nil, infra.WrapRepoErr("corrupt pricing default", err)
	}
	if prop.ChildPrice, err = pgconv.Float64PtrFromNumeric(childPrice); err != nil {
		return nil, infra.WrapRepoErr("corrupt pricing default", err)
	}
	if prop.ChildFactor, err = pgconv.Float64FromNumeric(childFactor); err != nil {
		return nil, infra.WrapRepoErr("corrupt pricing default", err)
	}

	return &prop, nil
}
