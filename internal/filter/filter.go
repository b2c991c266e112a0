// Package filter selects and orders the tasks shown in the list view.
package filter

import (
	"slices"
	"strings"

	"github.com/nibzard/todolist-go/internal/todo"
)

// Mode is a filter selection.
type Mode string

const (
	All       Mode = "all"
	Active    Mode = "active"
	Completed Mode = "completed"
)

// Modes returns the supported modes in display order.
func Modes() []Mode {
	return []Mode{All, Active, Completed}
}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, bool) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m.Valid() {
		return m, true
	}
	return "", false
}

// Valid reports whether m is a supported mode.
func (m Mode) Valid() bool {
	switch m {
	case All, Active, Completed:
		return true
	}
	return false
}

// Next returns the mode after m, wrapping around.
func (m Mode) Next() Mode {
	modes := Modes()
	i := slices.Index(modes, m)
	return modes[(i+1)%len(modes)]
}

func (m Mode) String() string { return string(m) }

// Apply returns the tasks matching mode, sorted ascending by CreatedAt.
// Tasks with equal timestamps keep their input order. For an unknown mode
// it returns nil and false, and the caller keeps its current view.
func Apply(tasks []todo.Task, mode Mode) ([]todo.Task, bool) {
	var keep func(todo.Task) bool
	switch mode {
	case All:
		keep = func(todo.Task) bool { return true }
	case Active:
		keep = func(t todo.Task) bool { return !t.Completed }
	case Completed:
		keep = func(t todo.Task) bool { return t.Completed }
	default:
		return nil, false
	}

	out := make([]todo.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	SortByCreated(out)
	return out, true
}

// SortByCreated sorts tasks in place, ascending by CreatedAt.
func SortByCreated(tasks []todo.Task) {
	slices.SortStableFunc(tasks, func(a, b todo.Task) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}
