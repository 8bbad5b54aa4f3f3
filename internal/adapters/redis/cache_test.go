package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "hotel_match/internal/adapters/redis"
	"hotel_match/internal/domain"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetGetUsers(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	in := []domain.User{{ID: 1, Name: "Leanne", Address: domain.Address{Geo: domain.Geo{Lat: -37.3159, Lng: 81.1496}}}}
	if err := c.Set(ctx, "directory:users", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out []domain.User
	ok, err := c.Get(ctx, "directory:users", &out)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(out) != 1 || out[0].Name != "Leanne" || out[0].Address.Geo.Lat != -37.3159 {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestCache_MissAndDelete(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	var out []domain.User
	if ok, err := c.Get(ctx, "absent", &out); ok || err != nil {
		t.Fatalf("miss: ok=%v err=%v", ok, err)
	}

	_ = c.Set(ctx, "k", []int{1}, 60)
	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	var ints []int
	if ok, _ := c.Get(ctx, "k", &ints); ok {
		t.Fatal("key should be gone")
	}
}

func TestCache_TTL(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, "short", "v", 5)
	mr.FastForward(6 * time.Second)

	var s string
	if ok, _ := c.Get(ctx, "short", &s); ok {
		t.Fatal("key should have expired")
	}
}

func TestCache_Ping(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	c := redisad.New(mr.Addr(), "", 0)
	defer c.Close()

	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	mr.Close()
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error after server closed")
	}
}
