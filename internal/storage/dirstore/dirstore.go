// Package dirstore implements storage.KV as one JSON file per key in a directory.
package dirstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dohr-michael/todo/internal/storage"
)

const ext = ".json"

// DirStore keeps each key in <baseDir>/<key>.json.
// Writes go through a temp file + rename so a crash never leaves a torn value.
type DirStore struct {
	mu      sync.RWMutex
	baseDir string
}

// New creates a DirStore rooted at baseDir. The directory is created lazily on first write.
func New(baseDir string) *DirStore {
	return &DirStore{baseDir: baseDir}
}

// Dir returns the base directory.
func (ds *DirStore) Dir() string {
	return ds.baseDir
}

// FilePath returns the path backing key.
func (ds *DirStore) FilePath(key string) string {
	return filepath.Join(ds.baseDir, key+ext)
}

func (ds *DirStore) Get(key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}

	ds.mu.RLock()
	defer ds.mu.RUnlock()

	data, err := os.ReadFile(ds.FilePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func (ds *DirStore) Put(key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()

	if err := os.MkdirAll(ds.baseDir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	path := ds.FilePath(key)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("write %s tmp: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

func (ds *DirStore) Delete(key string) error {
	if err := validKey(key); err != nil {
		return err
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()

	if err := os.Remove(ds.FilePath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Keys returns the names of all stored keys.
func (ds *DirStore) Keys() ([]string, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	entries, err := os.ReadDir(ds.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list store dir: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ext) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ext))
	}
	return keys, nil
}

func (ds *DirStore) Close() error { return nil }

// validKey rejects keys that would escape baseDir or hide as dotfiles.
func validKey(key string) error {
	if key == "" || key == "." || key == ".." ||
		strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}
