// Package kvstore provides the string-keyed persistent store the task blob
// lives in. A Store maps keys to opaque string values; backends differ only
// in where the values are kept.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// Store is a string-keyed value store.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set overwrites the value stored under key.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	// Only the reset command uses it; the task list itself is always
	// overwritten with Set.
	Delete(ctx context.Context, key string) error
	// Close releases the backend's resources.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Backends lists the supported backend names.
func Backends() []string {
	return []string{BackendFile, BackendSQLite, BackendRedis, BackendMemory}
}

// IsBackend reports whether name is a supported backend.
func IsBackend(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, b := range Backends() {
		if b == name {
			return true
		}
	}
	return false
}

// Options selects and configures a backend.
type Options struct {
	Backend string

	// Dir holds one file per key for the file backend.
	Dir string

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	// Logger receives backend diagnostics. Nil discards them.
	Logger *log.Logger
}

// Open creates the backend named by opts.Backend. An empty name selects
// the file backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	backend := strings.ToLower(strings.TrimSpace(opts.Backend))
	if backend == "" {
		backend = BackendFile
	}

	var (
		store Store
		err   error
	)
	switch backend {
	case BackendFile:
		store, err = NewFileStore(opts.Dir)
	case BackendSQLite:
		store, err = OpenSQLite(opts.SQLitePath, opts.Logger)
	case BackendRedis:
		store, err = OpenRedis(ctx, RedisOptions{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
			Prefix:   opts.RedisPrefix,
		})
	case BackendMemory:
		store = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown store backend %q (expected one of %s)", opts.Backend, strings.Join(Backends(), ", "))
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("empty key")
	}
	return nil
}
