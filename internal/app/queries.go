package app

import (
	"context"
	"math"
	"time"

	"hotel_match/internal/domain"
)

const directoryCacheKey = "directory:users"

// CachedDirectory is a read-through cache in front of a UserDirectory.
type CachedDirectory struct {
	dir      domain.UserDirectory
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewCachedDirectory(d domain.UserDirectory, c domain.Cache, ttl time.Duration) *CachedDirectory {
	return &CachedDirectory{dir: d, cache: c, cacheTTL: ttl}
}

func (s *CachedDirectory) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if ok, _ := s.cache.Get(ctx, directoryCacheKey, &users); ok {
		return users, nil
	}
	users, err := s.dir.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, directoryCacheKey, users, ttlSeconds(s.cacheTTL))
	return users, nil
}

// ttlSeconds rounds up to whole seconds with a floor of one; Redis reads 0
// as "never expire".
func ttlSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

// Invalidate drops the cached snapshot.
func (s *CachedDirectory) Invalidate(ctx context.Context) error {
	return s.cache.Del(ctx, directoryCacheKey)
}
