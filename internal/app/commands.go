package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotel_match/internal/domain"
)

// IngestionService copies users from the remote directory into the local
// snapshot store.
type IngestionService struct {
	client domain.DirectoryClient
	store  domain.UserStore
	cache  domain.Cache
}

func NewIngestionService(c domain.DirectoryClient, s domain.UserStore, cache domain.Cache) *IngestionService {
	return &IngestionService{client: c, store: s, cache: cache}
}

// UserIDs lists the ids currently served by the directory.
func (s *IngestionService) UserIDs(ctx context.Context) ([]int, error) {
	users, err := s.client.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list directory: %w", err)
	}
	ids := make([]int, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}

// IngestUser fetches one user and upserts it. A user the directory no
// longer knows is recorded as a miss, not an error.
func (s *IngestionService) IngestUser(ctx context.Context, id int) error {
	u, err := s.client.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			if lerr := s.store.LogMiss(ctx, id, 404, "not found"); lerr != nil {
				log.Warn().Int("id", id).Err(lerr).Msg("log miss failed")
			}
			s.invalidate(ctx)
			return nil
		}
		return err
	}

	if err := s.store.UpsertUser(ctx, u); err != nil {
		return fmt.Errorf("upsert user %d: %w", id, err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *IngestionService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, directoryCacheKey)
}
