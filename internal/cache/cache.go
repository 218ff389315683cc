// Package cache persists converter output keyed by a digest of its input,
// so rebuilding an unchanged chapter skips the external converter.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// FileName is the database file created under the cache directory.
const FileName = "conversions.db"

var bucketConversions = []byte("conversions")

var (
	ErrMissingPath = errors.New("cache: missing path")
	ErrClosed      = errors.New("cache: store is closed")
)

// Store is a bbolt-backed key/value store for converted chapters.
// It is safe for concurrent use by one process; a second process
// blocks for at most one second on Open and then fails.
type Store struct {
	db *bolt.DB
}

// DefaultPath returns <user cache dir>/go-book2md/conversions.db.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cache: locating user cache dir: %w", err)
	}
	return filepath.Join(dir, "go-book2md", FileName), nil
}

// Open opens or creates the database at path, creating parent directories.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, ErrMissingPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("cache: creating directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("cache: opening %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketConversions)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache: creating bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Key digests parts into a hex SHA-256 key. Each part is length-prefixed
// so ("ab","c") and ("a","bc") differ.
func Key(parts ...[]byte) string {
	h := sha256.New()
	for _, p := range parts {
		fmt.Fprintf(h, "%d:", len(p))
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the value stored under key. The returned slice is a copy.
func (s *Store) Get(key string) ([]byte, bool, error) {
	if s == nil || s.db == nil {
		return nil, false, ErrClosed
	}
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketConversions).Get([]byte(key)); v != nil {
			out = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("cache: get: %w", err)
	}
	return out, out != nil, nil
}

// Put stores value under key, replacing any previous value.
func (s *Store) Put(key string, value []byte) error {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketConversions).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("cache: put: %w", err)
	}
	return nil
}

// Len returns the number of cached conversions.
func (s *Store) Len() (int, error) {
	if s == nil || s.db == nil {
		return 0, ErrClosed
	}
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketConversions).Stats().KeyN
		return nil
	})
	return n, err
}

// Close releases the database file lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
