// Package storage reads and writes the task collection as a single JSON
// blob under one key of a kvstore.Store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist-go/internal/kvstore"
	"github.com/nibzard/todolist-go/internal/todo"
)

// DefaultKey is the key the task blob is stored under.
const DefaultKey = "TASKS"

// Adapter loads and saves the full task collection.
type Adapter struct {
	kv     kvstore.Store
	key    string
	logger *log.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithKey overrides the storage key. Blank keys are ignored.
func WithKey(key string) Option {
	return func(a *Adapter) {
		if key != "" {
			a.key = key
		}
	}
}

// WithLogger sets the logger used for load warnings.
func WithLogger(logger *log.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAdapter returns an Adapter over kv.
func NewAdapter(kv kvstore.Store, opts ...Option) *Adapter {
	a := &Adapter{
		kv:     kv,
		key:    DefaultKey,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Key returns the storage key in use.
func (a *Adapter) Key() string {
	return a.key
}

// Raw returns the stored blob as-is. found is false when nothing has
// been saved yet.
func (a *Adapter) Raw(ctx context.Context) (blob string, found bool, err error) {
	blob, err = a.kv.Get(ctx, a.key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load %s: %w", a.key, err)
	}
	return blob, true, nil
}

// Load returns the persisted collection. A missing key yields an empty
// collection. A blob that is not a valid task array yields a
// *todo.ParseError.
func (a *Adapter) Load(ctx context.Context) ([]todo.Task, error) {
	blob, found, err := a.Raw(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		return []todo.Task{}, nil
	}
	return todo.DecodeTasks([]byte(blob))
}

// LoadOrEmpty is Load with every failure logged and replaced by an empty
// collection. The stored blob is left untouched.
func (a *Adapter) LoadOrEmpty(ctx context.Context) []todo.Task {
	tasks, err := a.Load(ctx)
	if err != nil {
		var pe *todo.ParseError
		if errors.As(err, &pe) {
			a.logger.Warn("stored tasks are malformed, starting empty", "key", a.key, "path", pe.Path, "error", pe.Err)
		} else {
			a.logger.Warn("could not read stored tasks, starting empty", "key", a.key, "error", err)
		}
		return []todo.Task{}
	}
	a.logger.Debug("loaded tasks", "key", a.key, "count", len(tasks))
	return tasks
}

// Clear removes the stored blob. A later Load sees an empty collection.
func (a *Adapter) Clear(ctx context.Context) error {
	if err := a.kv.Delete(ctx, a.key); err != nil {
		return fmt.Errorf("clear %s: %w", a.key, err)
	}
	a.logger.Info("cleared stored tasks", "key", a.key)
	return nil
}

// Save overwrites the stored blob with the full collection.
func (a *Adapter) Save(ctx context.Context, tasks []todo.Task) error {
	data, err := todo.EncodeTasks(tasks)
	if err != nil {
		return err
	}
	if err := a.kv.Set(ctx, a.key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", a.key, err)
	}
	a.logger.Debug("saved tasks", "key", a.key, "count", len(tasks))
	return nil
}
