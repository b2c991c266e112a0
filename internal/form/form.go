// Package form turns submitted input fields into new tasks.
package form

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nibzard/todolist-go/internal/todo"
)

// Adder accepts new tasks.
type Adder interface {
	Add(ctx context.Context, task todo.Task) error
}

// Fields are the raw values of the input form.
type Fields struct {
	Title       string
	Description string
}

// Result reports the outcome of a submission.
type Result struct {
	// Task is the created task; zero when nothing was created.
	Task todo.Task
	// Created is true when a task was added.
	Created bool
	// ClearFields tells the caller to reset both inputs.
	ClearFields bool
}

// Controller validates submissions and hands new tasks to an Adder.
type Controller struct {
	adder Adder
	now   func() time.Time
	newID func() string
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithIDGenerator overrides the id source.
func WithIDGenerator(newID func() string) Option {
	return func(c *Controller) { c.newID = newID }
}

// New returns a Controller adding tasks to adder.
func New(adder Adder, opts ...Option) *Controller {
	c := &Controller{
		adder: adder,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit trims the fields and, when the title is not blank, creates an
// uncompleted task. A blank title is silently ignored: no task, no error,
// and the fields are left as they are.
func (c *Controller) Submit(ctx context.Context, f Fields) (Result, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return Result{}, nil
	}

	task := todo.Task{
		ID:          c.newID(),
		Title:       title,
		Description: strings.TrimSpace(f.Description),
		CreatedAt:   c.now().UTC(),
	}
	if err := c.adder.Add(ctx, task); err != nil {
		return Result{}, err
	}
	return Result{Task: task, Created: true, ClearFields: true}, nil
}
