package cache

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const fileExt = ".msgpack"

// FileStore implements a file-based store for CLI usage.
// Entries are stored as msgpack files in a directory together with their
// expiration time.
type FileStore struct {
	dir string
	now func() time.Time
}

// NewFileStore creates a file-based store in the given directory.
// The directory will be created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

// Dir returns the directory holding the cache files.
func (s *FileStore) Dir() string { return s.dir }

// fileEntry wraps cached data with metadata.
type fileEntry struct {
	Data      []byte    `msgpack:"data"`
	ExpiresAt time.Time `msgpack:"expires_at"`
}

// Get retrieves a value from the store.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := s.path(key)

	e, err := s.read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		// Unreadable entry - treat as miss
		_ = os.Remove(path)
		return nil, false, nil
	}

	if s.now().After(e.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set stores a value in the store.
func (s *FileStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	raw, err := msgpack.Marshal(fileEntry{Data: data, ExpiresAt: s.now().Add(ttl)})
	if err != nil {
		return err
	}

	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	// Write to a temp file and rename so readers never see a partial entry.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes a value from the store.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Clear removes every cache file and any emptied subdirectories.
func (s *FileStore) Clear(ctx context.Context) (int, error) {
	return s.sweep(ctx, func(string) bool { return true })
}

// Prune removes cache files whose entries have expired or cannot be read.
func (s *FileStore) Prune(ctx context.Context) (int, error) {
	now := s.now()
	return s.sweep(ctx, func(path string) bool {
		e, err := s.read(path)
		return err != nil || now.After(e.ExpiresAt)
	})
}

// Close does nothing for the file store.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) sweep(ctx context.Context, remove func(path string) bool) (int, error) {
	if _, err := os.Stat(s.dir); errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}

	count := 0
	var dirs []string
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip errors, continue walking
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path == s.dir {
			return nil
		}
		if d.IsDir() {
			dirs = append(dirs, path)
			return nil
		}
		if !strings.HasSuffix(path, fileExt) || !remove(path) {
			return nil
		}
		if err := os.Remove(path); err == nil {
			count++
		}
		return nil
	})

	// Remove emptied subdirectories, deepest first.
	for i := len(dirs) - 1; i >= 0; i-- {
		_ = os.Remove(dirs[i])
	}
	return count, err
}

func (s *FileStore) read(path string) (fileEntry, error) {
	var e fileEntry
	raw, err := os.ReadFile(path)
	if err != nil {
		return e, err
	}
	err = msgpack.Unmarshal(raw, &e)
	return e, err
}

// path converts a cache key to a file path.
// Uses a simple hash-based directory structure to avoid too many files in one dir.
func (s *FileStore) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(s.dir, hash[:2], hash[2:]+fileExt)
}

// Ensure FileStore implements Store and Pruner.
var (
	_ Store  = (*FileStore)(nil)
	_ Pruner = (*FileStore)(nil)
)
