package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Store is a file-backed JSON key-value store. Each key maps to one file under
// the data directory, written whole on every update (last write wins). Reads
// never fail: a missing, unreadable, or undecodable key yields the caller's
// default. Writes are best-effort; a failed write leaves the prior state on
// disk untouched.
type Store struct {
	dir    string
	logger *zap.Logger
}

const defaultDataDir = ".vidmeta"

// New creates a Store rooted at dir, falling back to ./.vidmeta when dir is
// empty. The directory is created lazily on the first write.
func New(dir string, logger *zap.Logger) *Store {
	if dir == "" {
		dir = defaultDataDir
	}
	return &Store{dir: dir, logger: logger}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Read returns the value stored under key, or def when the key is absent or
// its contents cannot be decoded into T. It never reports an error.
func Read[T any](s *Store, key string, def T) T {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("state read failed, using default",
				zap.String("key", key),
				zap.Error(err))
		}
		return def
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		s.logger.Warn("state undecodable, using default",
			zap.String("key", key),
			zap.Error(err))
		return def
	}
	return value
}

// Write persists value under key. Failures (quota, permissions, unencodable
// value) are logged and swallowed.
func Write[T any](s *Store, key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("state encode failed",
			zap.String("key", key),
			zap.Error(err))
		return
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		s.logger.Warn("state dir unavailable",
			zap.String("dir", s.dir),
			zap.Error(err))
		return
	}

	s.logger.Debug("persisting state", zap.String("key", key))
	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		s.logger.Warn("state write failed",
			zap.String("key", key),
			zap.Error(err))
	}
}

// Delete removes the value stored under key, if any.
func (s *Store) Delete(key string) {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("state delete failed",
			zap.String("key", key),
			zap.Error(err))
	}
}
