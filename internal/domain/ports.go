package domain

import "context"

// UserDirectory is the source the roster is seeded from.
type UserDirectory interface {
	ListUsers(ctx context.Context) ([]User, error)
}

type DirectoryClient interface {
	UserDirectory
	GetUser(ctx context.Context, id int) (User, error)
}

type UserStore interface {
	UserDirectory
	UpsertUser(ctx context.Context, u User) error
	LogMiss(ctx context.Context, id int, status int, reason string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
