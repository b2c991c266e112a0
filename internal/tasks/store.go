// Package tasks owns the canonical task collection and keeps it in sync
// with persistent storage.
//
// Every mutating method changes the in-memory collection, immediately
// saves the whole collection once, and then notifies subscribers. A failed
// save is returned to the caller; the in-memory change is kept.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist-go/internal/todo"
)

var (
	// ErrNotFound is returned when no task has the given id.
	ErrNotFound = errors.New("task not found")
	// ErrDuplicateID is returned by Add when the id is already in use.
	ErrDuplicateID = errors.New("duplicate task id")
	// ErrAmbiguousID is returned by Resolve when a prefix matches several tasks.
	ErrAmbiguousID = errors.New("ambiguous task id")
)

// Persister saves the full collection.
type Persister interface {
	Save(ctx context.Context, tasks []todo.Task) error
}

// Loader provides the initial collection.
type Loader interface {
	Persister
	LoadOrEmpty(ctx context.Context) []todo.Task
}

// Action names the kind of mutation in a Change.
type Action string

const (
	ActionAdd      Action = "add"
	ActionComplete Action = "complete"
	ActionUpdate   Action = "update"
	ActionRemove   Action = "remove"
)

// Change describes one applied mutation.
type Change struct {
	Action Action
	TaskID string
	// Task is the task after the change; for removals, the removed task.
	Task todo.Task
	// Err is the save error, if persisting failed.
	Err error
}

// Store is the owned, ordered task collection.
type Store struct {
	mu        sync.Mutex
	tasks     []todo.Task
	persister Persister
	observers []func(Change)
	logger    *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns a Store holding a copy of initial.
func New(initial []todo.Task, persister Persister, opts ...Option) *Store {
	s := &Store{
		tasks:     append([]todo.Task(nil), initial...),
		persister: persister,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the persisted collection through loader, falling back to an
// empty collection when the stored data is unusable.
func Open(ctx context.Context, loader Loader, opts ...Option) *Store {
	return New(loader.LoadOrEmpty(ctx), loader, opts...)
}

// Subscribe registers fn to be called after every mutation. Observers run
// after the store lock is released, in registration order.
func (s *Store) Subscribe(fn func(Change)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// List returns a copy of the collection in insertion order.
func (s *Store) List() []todo.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]todo.Task(nil), s.tasks...)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (todo.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return todo.Task{}, false
}

// Resolve maps an exact id or a unique id prefix to a full id.
func (s *Store) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(ref) >= 0 {
		return ref, nil
	}
	var matches []string
	for _, t := range s.tasks {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %q matches %d tasks", ErrAmbiguousID, ref, len(matches))
	}
}

// Add appends task and persists the collection.
func (s *Store) Add(ctx context.Context, task todo.Task) error {
	if task.IsZero() {
		return errors.New("task has no id")
	}

	s.mu.Lock()
	if s.indexOf(task.ID) >= 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDuplicateID, task.ID)
	}
	s.tasks = append(s.tasks, task)
	return s.commit(ctx, Change{Action: ActionAdd, TaskID: task.ID, Task: task})
}

// SetCompleted sets the completed flag of the task with the given id and
// persists the collection.
func (s *Store) SetCompleted(ctx context.Context, id string, completed bool) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.tasks[i].Completed = completed
	return s.commit(ctx, Change{Action: ActionComplete, TaskID: id, Task: s.tasks[i]})
}

// UpdateFields replaces the title and description of the task with the
// given id and persists the collection. The title is not validated.
func (s *Store) UpdateFields(ctx context.Context, id, title, description string) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.tasks[i].Title = title
	s.tasks[i].Description = description
	return s.commit(ctx, Change{Action: ActionUpdate, TaskID: id, Task: s.tasks[i]})
}

// Remove deletes the task with the given id and persists the collection.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	return s.commit(ctx, Change{Action: ActionRemove, TaskID: id, Task: removed})
}

// commit persists the collection and notifies observers. It must be
// called with s.mu held and releases it before observers run.
func (s *Store) commit(ctx context.Context, change Change) error {
	var err error
	if s.persister != nil {
		err = s.persister.Save(ctx, s.tasks)
	}
	count := len(s.tasks)
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	if err != nil {
		err = fmt.Errorf("persist after %s: %w", change.Action, err)
		s.logger.Error("failed to persist tasks", "action", change.Action, "task", change.TaskID, "error", err)
	} else {
		s.logger.Debug("task changed", "action", change.Action, "task", change.TaskID, "count", count)
	}

	change.Err = err
	for _, fn := range observers {
		fn(change)
	}
	return err
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
