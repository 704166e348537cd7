package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	defer s.Close()

	// Get always returns miss
	data, hit, err := s.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullStore.Get should always return miss")
	}
	if data != nil {
		t.Error("NullStore.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := s.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = s.Get(ctx, "key")
	if hit {
		t.Error("NullStore should not store data")
	}

	if err := s.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if n, err := s.Clear(ctx); n != 0 || err != nil {
		t.Errorf("Clear() = %d, %v; want 0, nil", n, err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// SHA-256 produces 64 hex chars
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestFileStore_GetSet(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() failed: %v", err)
	}

	if err := s.Set(ctx, "search:github", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	data, ok, err := s.Get(ctx, "search:github")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v; want hit", ok, err)
	}
	if string(data) != "payload" {
		t.Errorf("Get() = %q, want %q", data, "payload")
	}

	_, ok, _ = s.Get(ctx, "search:other")
	if ok {
		t.Error("Get() hit for a key that was never set")
	}
}

func TestFileStore_Expiration(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())
	now := time.Unix(1000, 0)
	s.now = func() time.Time { return now }

	if err := s.Set(ctx, "key", []byte("v"), 10*time.Second); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	now = now.Add(11 * time.Second)
	_, ok, err := s.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if ok {
		t.Error("Get() returned expired entry")
	}
	if _, err := os.Stat(s.path("key")); !os.IsNotExist(err) {
		t.Error("expired entry file should be removed on read")
	}
}

func TestFileStore_NonPositiveTTLStoresNothing(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())

	if err := s.Set(ctx, "key", []byte("v"), 0); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "key"); ok {
		t.Error("zero TTL entry should not be persisted")
	}
}

func TestFileStore_CorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())

	path := s.path("key")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte{0xc1}, 0o644); err != nil {
		t.Fatal(err)
	}

	_, ok, err := s.Get(ctx, "key")
	if ok || err != nil {
		t.Errorf("Get() = %v, %v; want miss without error", ok, err)
	}
}

func TestFileStore_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())

	for _, k := range []string{"a", "b", "c"} {
		if err := s.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatalf("Set(%q) failed: %v", k, err)
		}
	}

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete() of a missing key should not fail: %v", err)
	}

	n, err := s.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Clear() = %d, want 2", n)
	}

	entries, _ := os.ReadDir(s.Dir())
	if len(entries) != 0 {
		t.Errorf("cache dir should be empty after Clear, has %d entries", len(entries))
	}
}

func TestFileStore_Prune(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())
	now := time.Unix(0, 0)
	s.now = func() time.Time { return now }

	_ = s.Set(ctx, "short", []byte("1"), time.Second)
	_ = s.Set(ctx, "long", []byte("2"), time.Hour)

	now = now.Add(time.Minute)
	n, err := s.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Prune() = %d, want 1", n)
	}
	if _, ok, _ := s.Get(ctx, "long"); !ok {
		t.Error("live entry removed by Prune")
	}
}

func TestFileStore_ClearMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	s, _ := NewFileStore(dir)
	os.RemoveAll(dir)

	n, err := s.Clear(context.Background())
	if n != 0 || err != nil {
		t.Errorf("Clear() = %d, %v; want 0, nil", n, err)
	}
}

func TestScopedStore(t *testing.T) {
	ctx := context.Background()
	inner, _ := NewFileStore(t.TempDir())

	prod := NewScopedStore(inner, "prod:")
	staging := NewScopedStore(inner, "staging:")

	_ = prod.Set(ctx, "search:x", []byte("prod"), time.Hour)
	_ = staging.Set(ctx, "search:x", []byte("staging"), time.Hour)

	data, ok, _ := prod.Get(ctx, "search:x")
	if !ok || string(data) != "prod" {
		t.Errorf("prod.Get() = %q, %v; want %q", data, ok, "prod")
	}
	data, ok, _ = staging.Get(ctx, "search:x")
	if !ok || string(data) != "staging" {
		t.Errorf("staging.Get() = %q, %v; want %q", data, ok, "staging")
	}

	// Should not be accessible without the prefix
	if _, ok, _ := inner.Get(ctx, "search:x"); ok {
		t.Error("value accessible without scope prefix")
	}

	if err := prod.Delete(ctx, "search:x"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok, _ := staging.Get(ctx, "search:x"); !ok {
		t.Error("deleting from one scope removed the other")
	}
}

func TestScopedStoreNilInner(t *testing.T) {
	s := NewScopedStore(nil, "prefix:")
	if _, ok, err := s.Get(context.Background(), "k"); ok || err != nil {
		t.Errorf("Get() = %v, %v; want miss from null store", ok, err)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	type payload struct {
		Name    string
		Version string
		Tags    []string
	}
	in := payload{Name: "io.github.x/y", Version: "1.0.0", Tags: []string{"a", "b"}}

	data, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	var out payload
	if err := Decode(data, &out); err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if out.Name != in.Name || out.Version != in.Version || len(out.Tags) != 2 {
		t.Errorf("Decode() = %+v, want %+v", out, in)
	}
}

func TestNewRedisStore(t *testing.T) {
	if _, err := NewRedisStore("not a url", ""); err == nil {
		t.Error("NewRedisStore() should reject an invalid URL")
	}

	s, err := NewRedisStore("redis://localhost:6379/0", "")
	if err != nil {
		t.Fatalf("NewRedisStore() failed: %v", err)
	}
	defer s.Close()

	if s.prefix != DefaultRedisPrefix {
		t.Errorf("prefix = %q, want %q", s.prefix, DefaultRedisPrefix)
	}
	if got := s.key("server:abc"); got != "mcp-registry:server:abc" {
		t.Errorf("key() = %q", got)
	}
}
