package app_test

import (
	"context"
	"sync"
	"sync/atomic"

	"hotel_match/internal/domain"
)

// ---- fakes ----

type fakeDirectory struct {
	users []domain.User
	err   error
	calls int32
	gate  chan struct{} // when set, ListUsers blocks until closed or ctx is done
}

func (f *fakeDirectory) ListUsers(ctx context.Context) ([]domain.User, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.User(nil), f.users...), nil
}

func (f *fakeDirectory) GetUser(ctx context.Context, id int) (domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

type fakeStore struct {
	mu     sync.Mutex
	users  map[int]domain.User
	misses map[int]string
}

func (s *fakeStore) UpsertUser(ctx context.Context, u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.users == nil {
		s.users = map[int]domain.User{}
	}
	s.users[u.ID] = u
	return nil
}

func (s *fakeStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *fakeStore) LogMiss(ctx context.Context, id int, status int, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.misses == nil {
		s.misses = map[int]string{}
	}
	s.misses[id] = reason
	return nil
}

type fakeCache struct {
	store map[string]any
	ttls  map[string]int
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok := dst.(*[]domain.User); ok {
		*d = v.([]domain.User)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	if c.ttls == nil {
		c.ttls = map[string]int{}
	}
	c.store[key] = v
	c.ttls[key] = ttlSec
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}

func user(id int, name string, lat, lng float64) domain.User {
	return domain.User{ID: id, Name: name, Address: domain.Address{Geo: domain.Geo{Lat: lat, Lng: lng}}}
}

func hotel(name string, lat, lng float64) domain.Hotel {
	return domain.Hotel{Name: name, Latitude: lat, Longitude: lng}
}
