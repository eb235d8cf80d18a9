package repository

import (
	"context"

	"pousada-pms/internal/domain/pricing"
	"pousada-pms/internal/infra"
	"pousada-pms/internal/infra/db"
	"pousada-pms/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

const selectRoomRatesSQL = `
SELECT id, room_id, people_count, price_per_day
FROM room_rates
WHERE room_id = $1`

const selectRoomRatePeriodsSQL = `
SELECT id, room_id, people_count, start_date, end_date, price_per_day
FROM room_rate_periods
WHERE room_id = $1
ORDER BY start_date`

const selectCategoryRatesSQL = `
SELECT id, category_id, price_per_day, base_one_adult, base_two_adults, additional_adult, child_price
FROM category_rates
WHERE category_id = $1`

const selectCategoryRatePeriodsSQL = `
SELECT id, category_id, start_date, end_date, price_per_day,
	base_one_adult, base_two_adults, additional_adult, child_price
FROM category_rate_periods
WHERE category_id = $1
ORDER BY start_date`

// RateRepository fetches every rate the cascade may consult for one room in
// a single round of queries, so resolution itself runs on frozen data.
type RateRepository struct{}

func NewRateRepository() *RateRepository {
	return &RateRepository{}
}

func (r *RateRepository) RatesForRoom(ctx context.Context, tx db.DBTX, room pricing.Room) (pricing.RateSet, error) {
	var set pricing.RateSet

	if err := r.loadRoomRates(ctx, tx, room, &set); err != nil {
		return pricing.RateSet{}, err
	}
	if err := r.loadRoomRatePeriods(ctx, tx, room, &set); err != nil {
		return pricing.RateSet{}, err
	}
	if room.CategoryID != nil {
		if err := r.loadCategoryRates(ctx, tx, room, &set); err != nil {
			return pricing.RateSet{}, err
		}
		if err := r.loadCategoryRatePeriods(ctx, tx, room, &set); err != nil {
			return pricing.RateSet{}, err
		}
	}
	return set, nil
}

func (r *RateRepository) loadRoomRates(ctx context.Context, tx db.DBTX, room pricing.Room, set *pricing.RateSet) error {
	rows, err := tx.Query(ctx, selectRoomRatesSQL, room.ID)
	if err != nil {
		return infra.WrapRepoErr("failed to list room rates", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rate  pricing.RoomRate
			price pgtype.Numeric
		)
		if err := rows.Scan(&rate.ID, &rate.RoomID, &rate.PeopleCount, &price); err != nil {
			return infra.WrapRepoErr("failed to scan room rate", err)
		}
		if rate.PricePerDay, err = pgconv.Float64FromNumeric(price); err != nil {
			return infra.WrapRepoErr("corrupt room rate", err)
		}
		set.RoomRates = append(set.RoomRates, rate)
	}
	return rows.Err()
}

func (r *RateRepository) loadRoomRatePeriods(ctx context.Context, tx db.DBTX, room pricing.Room, set *pricing.RateSet) error {
	rows, err := tx.Query(ctx, selectRoomRatePeriodsSQL, room.ID)
	if err != nil {
		return infra.WrapRepoErr("failed to list room rate periods", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			period     pricing.RoomRatePeriod
			start, end pgtype.Date
			price      pgtype.Numeric
		)
		if err := rows.Scan(&period.ID, &period.RoomID, &period.PeopleCount, &start, &end, &price); err != nil {
			return infra.WrapRepoErr("failed to scan room rate period", err)
		}
		period.StartDate = pgconv.DateFromPgtype(start)
		period.EndDate = pgconv.DateFromPgtype(end)
		if period.PricePerDay, err = pgconv.Float64FromNumeric(price); err != nil {
			return infra.WrapRepoErr("corrupt room rate period", err)
		}
		set.RoomRatePeriods = append(set.RoomRatePeriods, period)
	}
	return rows.Err()
}

func (r *RateRepository) loadCategoryRates(ctx context.Context, tx db.DBTX, room pricing.Room, set *pricing.RateSet) error {
	rows, err := tx.Query(ctx, selectCategoryRatesSQL, *room.CategoryID)
	if err != nil {
		return infra.WrapRepoErr("failed to list category rates", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rate                                          pricing.CategoryRate
			price, baseOne, baseTwo, addAdult, childPrice pgtype.Numeric
		)
		if err := rows.Scan(&rate.ID, &rate.CategoryID, &price, &baseOne, &baseTwo, &addAdult, &childPrice); err != nil {
			return infra.WrapRepoErr("failed to scan category rate", err)
		}
		if err := assignCategoryPrices(&rate.PricePerDay, &rate.BaseOneAdult, &rate.BaseTwoAdults, &rate.AdditionalAdult, &rate.ChildPrice,
			price, baseOne, baseTwo, addAdult, childPrice); err != nil {
			return err
		}
		set.CategoryRates = append(set.CategoryRates, rate)
	}
	return rows.Err()
}

func (r *RateRepository) loadCategoryRatePeriods(ctx context.Context, tx db.DBTX, room pricing.Room, set *pricing.RateSet) error {
	rows, err := tx.Query(ctx, selectCategoryRatePeriodsSQL, *room.CategoryID)
	if err != nil {
		return infra.WrapRepoErr("failed to list category rate periods", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			period                                        pricing.CategoryRatePeriod
			start, end                                    pgtype.Date
			price, baseOne, baseTwo, addAdult, childPrice pgtype.Numeric
		)
		if err := rows.Scan(&period.ID, &period.CategoryID, &start, &end, &price, &baseOne, &baseTwo, &addAdult, &childPrice); err != nil {
			return infra.WrapRepoErr("failed to scan category rate period", err)
		}
		period.StartDate = pgconv.DateFromPgtype(start)
		period.EndDate = pgconv.DateFromPgtype(end)
		if err := assignCategoryPrices(&period.PricePerDay, &period.BaseOneAdult, &period.BaseTwoAdults, &period.AdditionalAdult, &period.ChildPrice,
			price, baseOne, baseTwo, addAdult, childPrice); err != nil {
			return err
		}
		set.CategoryRatePeriods = append(set.CategoryRatePeriods, period)
	}
	return rows.Err()
}

func assignCategoryPrices(pricePerDay, baseOne, baseTwo, addAdult, childPrice **float64, vals ...pgtype.Numeric) error {
	dests := []**float64{pricePerDay, baseOne, baseTwo, addAdult, childPrice}
	for i, dest := range dests {
		v, err := pgconv.Float64PtrFromNumeric(vals[i])
		if err != nil {
			return infra.WrapRepoErr("corrupt category rate", err)
		}
		*dest = v
	}
	return nil
}
