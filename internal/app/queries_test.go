package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel_match/internal/app"
	"hotel_match/internal/domain"
)

func TestCachedDirectory_MissThenHit(t *testing.T) {
	dir := &fakeDirectory{users: []domain.User{user(1, "Leanne", 1, 1)}}
	cache := &fakeCache{}
	d := app.NewCachedDirectory(dir, cache, 10*time.Minute)

	got, err := d.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Leanne" {
		t.Fatalf("unexpected users: %+v", got)
	}

	// change upstream; second read must come from cache
	dir.users[0].Name = "SHOULD NOT SEE THIS"
	got, _ = d.ListUsers(context.Background())
	if got[0].Name != "Leanne" {
		t.Fatalf("expected cached name, got %s", got[0].Name)
	}
	if dir.calls != 1 {
		t.Fatalf("directory calls = %d, want 1", dir.calls)
	}
}

func TestCachedDirectory_ErrorNotCached(t *testing.T) {
	dir := &fakeDirectory{err: errors.New("boom")}
	cache := &fakeCache{}
	d := app.NewCachedDirectory(dir, cache, time.Minute)

	if _, err := d.ListUsers(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(cache.store) != 0 {
		t.Fatalf("error result was cached: %+v", cache.store)
	}
}

func TestCachedDirectory_Invalidate(t *testing.T) {
	dir := &fakeDirectory{users: []domain.User{user(1, "a", 0, 0)}}
	cache := &fakeCache{}
	d := app.NewCachedDirectory(dir, cache, time.Minute)
	_, _ = d.ListUsers(context.Background())

	if err := d.Invalidate(context.Background()); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	_, _ = d.ListUsers(context.Background())
	if dir.calls != 2 {
		t.Fatalf("directory calls = %d, want 2 after invalidate", dir.calls)
	}
}

func TestCachedDirectory_TTLNeverZero(t *testing.T) {
	tests := []struct {
		ttl  time.Duration
		want int
	}{
		{0, 1},
		{300 * time.Millisecond, 1},
		{1500 * time.Millisecond, 2},
		{10 * time.Minute, 600},
	}
	for _, tt := range tests {
		cache := &fakeCache{}
		d := app.NewCachedDirectory(&fakeDirectory{users: []domain.User{user(1, "Leanne", 1, 1)}}, cache, tt.ttl)
		if _, err := d.ListUsers(context.Background()); err != nil {
			t.Fatalf("ttl %v: %v", tt.ttl, err)
		}
		if got := cache.ttls["directory:users"]; got != tt.want {
			t.Errorf("ttl %v: stored ttl = %ds, want %ds", tt.ttl, got, tt.want)
		}
	}
}
