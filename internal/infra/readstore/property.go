package readstore

import (
	"context"
	"time"

	"pousada-pms/internal/domain/pricing"
	"pousada-pms/internal/infra/db"
	"pousada-pms/internal/infra/repository"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// PropertyReadStore serves the property pricing defaults behind a short
// TTL cache. Rate resolution reads these on every quote; the defaults
// change rarely, so a stale window of a minute is acceptable.
type PropertyReadStore struct {
	pool  db.DBTX
	repo  *repository.PropertyRepository
	cache *gocache.Cache
}

func NewPropertyReadStore(pool db.DBTX, ttl time.Duration) *PropertyReadStore {
	return &PropertyReadStore{
		pool:  pool,
		repo:  repository.NewPropertyRepository(),
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (s *PropertyReadStore) PropertyByID(ctx context.Context, id uuid.UUID) (*pricing.Property, error) {
	key := id.String()
	if cached, ok := s.cache.Get(key); ok {
		prop := cached.(pricing.Property)
		return &prop, nil
	}

	prop, err := s.repo.FindByID(ctx, s.pool, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, *prop, gocache.DefaultExpiration)
	return prop, nil
}
