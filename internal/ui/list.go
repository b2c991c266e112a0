package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nibzard/todolist-go/internal/tasks"
	"github.com/nibzard/todolist-go/internal/todo"
)

// Mutator is the subset of the task store that row controls call.
type Mutator interface {
	SetCompleted(ctx context.Context, id string, completed bool) error
	UpdateFields(ctx context.Context, id, title, description string) error
	Remove(ctx context.Context, id string) error
}

// RowState is the edit state of a rendered row.
type RowState int

const (
	// ReadOnly rows show their fields without accepting input.
	ReadOnly RowState = iota
	// Editing rows accept input into their title and description fields.
	Editing
)

func (s RowState) String() string {
	if s == Editing {
		return "editing"
	}
	return "read-only"
}

// Row is one rendered task. It refers to its task by id only.
type Row struct {
	TaskID      string
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	State       RowState
}

// ButtonLabel is the label of the row's edit/save control.
func (r Row) ButtonLabel() string {
	if r.State == Editing {
		return "Save"
	}
	return "Edit"
}

// List is the rendered task container.
type List struct {
	store Mutator
	rows  []Row
}

// NewList returns an empty List whose row controls act on store.
func NewList(store Mutator) *List {
	return &List{store: store}
}

// Render removes every row and appends one ReadOnly row per task, in the
// given order. Rows that were being edited keep their state and unsaved
// field values when their task is still shown.
func (l *List) Render(visible []todo.Task) {
	drafts := make(map[string]Row)
	for _, r := range l.rows {
		if r.State == Editing {
			drafts[r.TaskID] = r
		}
	}

	l.rows = l.rows[:0]
	for _, t := range visible {
		row := Row{
			TaskID:      t.ID,
			Title:       t.Title,
			Description: t.Description,
			Completed:   t.Completed,
			CreatedAt:   t.CreatedAt,
			State:       ReadOnly,
		}
		if d, ok := drafts[t.ID]; ok {
			row.Title = d.Title
			row.Description = d.Description
			row.State = Editing
		}
		l.rows = append(l.rows, row)
	}
}

// Len returns the number of rows.
func (l *List) Len() int {
	return len(l.rows)
}

// Rows returns a copy of the rows in display order.
func (l *List) Rows() []Row {
	return append([]Row(nil), l.rows...)
}

// Row returns the row at index i.
func (l *List) Row(i int) (Row, bool) {
	if i < 0 || i >= len(l.rows) {
		return Row{}, false
	}
	return l.rows[i], true
}

// IndexOf returns the index of the row for id, or -1.
func (l *List) IndexOf(id string) int {
	for i := range l.rows {
		if l.rows[i].TaskID == id {
			return i
		}
	}
	return -1
}

func (l *List) find(id string) (*Row, error) {
	i := l.IndexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("no row for task %s", id)
	}
	return &l.rows[i], nil
}

// ToggleEdit flips the row's edit state. Leaving Editing writes the
// field values back to the store. When the store no longer has the task
// the row stays in Editing.
func (l *List) ToggleEdit(ctx context.Context, id string) error {
	row, err := l.find(id)
	if err != nil {
		return err
	}
	if row.State == ReadOnly {
		row.State = Editing
		return nil
	}

	err = l.store.UpdateFields(ctx, id, row.Title, row.Description)
	if errors.Is(err, tasks.ErrNotFound) {
		return err
	}
	// The store may have re-rendered the list while saving.
	if row, ferr := l.find(id); ferr == nil {
		row.State = ReadOnly
	}
	return err
}

// SetTitle changes the title field of a row being edited.
func (l *List) SetTitle(id, title string) error {
	row, err := l.editable(id)
	if err != nil {
		return err
	}
	row.Title = title
	return nil
}

// SetDescription changes the description field of a row being edited.
func (l *List) SetDescription(id, description string) error {
	row, err := l.editable(id)
	if err != nil {
		return err
	}
	row.Description = description
	return nil
}

func (l *List) editable(id string) (*Row, error) {
	row, err := l.find(id)
	if err != nil {
		return nil, err
	}
	if row.State != Editing {
		return nil, fmt.Errorf("row %s is read-only", id)
	}
	return row, nil
}

// SetCompleted sets the row's checkbox and updates the store, whatever
// the row's edit state.
func (l *List) SetCompleted(ctx context.Context, id string, completed bool) error {
	row, err := l.find(id)
	if err != nil {
		return err
	}
	row.Completed = completed
	return l.store.SetCompleted(ctx, id, completed)
}

// Delete removes the row and deletes its task from the store, whatever
// the row's edit state.
func (l *List) Delete(ctx context.Context, id string) error {
	i := l.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("no row for task %s", id)
	}
	l.rows = append(l.rows[:i], l.rows[i+1:]...)
	return l.store.Remove(ctx, id)
}
