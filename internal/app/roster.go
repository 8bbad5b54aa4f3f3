package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"hotel_match/internal/domain"
)

// UserRoster is the in-memory user set. It is filled from the directory on
// first use and only changes through Add, Update and Delete afterwards.
type UserRoster struct {
	dir    domain.UserDirectory
	sf     singleflight.Group
	onSize func(int)

	mu     sync.RWMutex
	loaded bool
	users  []domain.User
	nextID int
}

type RosterOption func(*UserRoster)

// WithSizeObserver registers fn to be called with the roster size after
// every load or mutation.
func WithSizeObserver(fn func(int)) RosterOption {
	return func(r *UserRoster) { r.onSize = fn }
}

func NewUserRoster(dir domain.UserDirectory, opts ...RosterOption) *UserRoster {
	r := &UserRoster{dir: dir, nextID: 1}
	for _, o := range opts {
		o(r)
	}
	return r
}

// ensureLoaded fetches the directory once. A failed fetch leaves the roster
// unloaded so the next call tries again. The shared fetch runs detached from
// any single caller's cancellation; each caller stops waiting on its own ctx.
func (r *UserRoster) ensureLoaded(ctx context.Context) error {
	r.mu.RLock()
	loaded := r.loaded
	r.mu.RUnlock()
	if loaded {
		return nil
	}

	ch := r.sf.DoChan("load", func() (any, error) {
		r.mu.RLock()
		done := r.loaded
		r.mu.RUnlock()
		if done {
			return nil, nil
		}

		users, err := r.dir.ListUsers(context.WithoutCancel(ctx))
		if err != nil {
			return nil, fmt.Errorf("load user directory: %w", err)
		}

		r.mu.Lock()
		r.users = append([]domain.User(nil), users...)
		for _, u := range r.users {
			if u.ID >= r.nextID {
				r.nextID = u.ID + 1
			}
		}
		r.loaded = true
		n := len(r.users)
		r.mu.Unlock()

		log.Info().Int("users", n).Msg("user roster loaded")
		r.observe(n)
		return nil, nil
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *UserRoster) observe(n int) {
	if r.onSize != nil {
		r.onSize(n)
	}
}

func (r *UserRoster) List(ctx context.Context) ([]domain.User, error) {
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return r.snapshot(), nil
}

func (r *UserRoster) snapshot() []domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out
}

func (r *UserRoster) Get(ctx context.Context, id int) (domain.User, error) {
	if err := r.ensureLoaded(ctx); err != nil {
		return domain.User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.users[i], nil
	}
	return domain.User{}, domain.ErrNotFound
}

// Add stores u under a fresh id, ignoring any id it carries.
func (r *UserRoster) Add(ctx context.Context, u domain.User) (domain.User, error) {
	if err := r.ensureLoaded(ctx); err != nil {
		return domain.User{}, err
	}
	r.mu.Lock()
	u.ID = r.nextID
	r.nextID++
	r.users = append(r.users, u)
	n := len(r.users)
	r.mu.Unlock()

	r.observe(n)
	return u, nil
}

// Update replaces every profile field of the user with u.ID.
func (r *UserRoster) Update(ctx context.Context, u domain.User) (domain.User, error) {
	if err := r.ensureLoaded(ctx); err != nil {
		return domain.User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(u.ID)
	if i < 0 {
		return domain.User{}, domain.ErrNotFound
	}
	r.users[i] = u
	return u, nil
}

func (r *UserRoster) Delete(ctx context.Context, id int) error {
	if err := r.ensureLoaded(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	i := r.indexOf(id)
	if i < 0 {
		r.mu.Unlock()
		return domain.ErrNotFound
	}
	r.users = append(r.users[:i], r.users[i+1:]...)
	n := len(r.users)
	r.mu.Unlock()

	r.observe(n)
	return nil
}

// Nearest matches hotels against the current roster.
func (r *UserRoster) Nearest(ctx context.Context, hotels []domain.Hotel) ([]domain.MatchResult, error) {
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return FindNearest(hotels, r.snapshot()), nil
}

// indexOf must be called with mu held.
func (r *UserRoster) indexOf(id int) int {
	for i := range r.users {
		if r.users[i].ID == id {
			return i
		}
	}
	return -1
}
