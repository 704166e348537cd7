package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T, prefix string) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	s := NewRedisStoreFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), prefix)
	t.Cleanup(func() { s.Close() })
	return mr, s
}

func TestRedisStore_GetSet(t *testing.T) {
	mr, s := newTestRedisStore(t, "")
	ctx := context.Background()

	// Miss on empty store
	data, hit, err := s.Get(ctx, "search:weather")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Errorf("Get on empty store = %q, %v; want miss", data, hit)
	}

	if err := s.Set(ctx, "search:weather", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err = s.Get(ctx, "search:weather")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit || string(data) != "payload" {
		t.Errorf("Get = %q, %v; want payload, true", data, hit)
	}

	// Keys live under the prefix with the requested TTL.
	if !mr.Exists(DefaultRedisPrefix + "search:weather") {
		t.Error("key should be stored under the default prefix")
	}
	if ttl := mr.TTL(DefaultRedisPrefix + "search:weather"); ttl != time.Minute {
		t.Errorf("TTL = %v, want 1m", ttl)
	}
}

func TestRedisStore_Expiry(t *testing.T) {
	mr, s := newTestRedisStore(t, "")
	ctx := context.Background()

	if err := s.Set(ctx, "server:abc", []byte("v"), 2*time.Second); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := s.Get(ctx, "server:abc"); !hit {
		t.Fatal("expected hit before expiry")
	}

	mr.FastForward(3 * time.Second)

	data, hit, err := s.Get(ctx, "server:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Errorf("Get after expiry = %q, %v; want miss", data, hit)
	}
}

func TestRedisStore_NonPositiveTTLStoresNothing(t *testing.T) {
	mr, s := newTestRedisStore(t, "")
	ctx := context.Background()

	for _, ttl := range []time.Duration{0, -time.Second} {
		if err := s.Set(ctx, "k", []byte("v"), ttl); err != nil {
			t.Fatalf("Set(ttl=%v) error: %v", ttl, err)
		}
	}
	if keys := mr.Keys(); len(keys) != 0 {
		t.Errorf("keys = %v, want none", keys)
	}
}

func TestRedisStore_Delete(t *testing.T) {
	_, s := newTestRedisStore(t, "")
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := s.Get(ctx, "k"); hit {
		t.Error("deleted key should miss")
	}
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}
}

func TestRedisStore_Clear(t *testing.T) {
	mr, s := newTestRedisStore(t, "test:")
	ctx := context.Background()

	// More than one SCAN batch.
	const n = 250
	for i := range n {
		if err := s.Set(ctx, fmt.Sprintf("server:%d", i), []byte("v"), time.Minute); err != nil {
			t.Fatal(err)
		}
	}
	if err := mr.Set("other:key", "keep"); err != nil {
		t.Fatal(err)
	}

	removed, err := s.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if removed != n {
		t.Errorf("Clear() = %d, want %d", removed, n)
	}
	if keys := mr.Keys(); len(keys) != 1 || keys[0] != "other:key" {
		t.Errorf("keys after Clear = %v, want only other:key", keys)
	}

	removed, err = s.Clear(ctx)
	if err != nil || removed != 0 {
		t.Errorf("second Clear() = %d, %v; want 0, nil", removed, err)
	}
}
