package filter

import (
	"testing"
	"time"

	"github.com/nibzard/todolist-go/internal/todo"
)

var t0 = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

func sample() []todo.Task {
	return []todo.Task{
		{ID: "c", Title: "third", CreatedAt: t0.Add(3 * time.Hour)},
		{ID: "a", Title: "first", Completed: true, CreatedAt: t0.Add(time.Hour)},
		{ID: "b", Title: "second", CreatedAt: t0.Add(2 * time.Hour)},
		{ID: "a2", Title: "first tie", Completed: true, CreatedAt: t0.Add(time.Hour)},
	}
}

func ids(tasks []todo.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApply(t *testing.T) {
	tests := []struct {
		mode Mode
		want []string
	}{
		{mode: All, want: []string{"a", "a2", "b", "c"}},
		{mode: Active, want: []string{"b", "c"}},
		{mode: Completed, want: []string{"a", "a2"}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			got, ok := Apply(sample(), tt.mode)
			if !ok {
				t.Fatal("Apply returned !ok")
			}
			if !equal(ids(got), tt.want) {
				t.Errorf("Apply(%s) = %v, want %v", tt.mode, ids(got), tt.want)
			}
		})
	}
}

func TestApplyUnknownMode(t *testing.T) {
	got, ok := Apply(sample(), Mode("starred"))
	if ok || got != nil {
		t.Errorf("Apply(unknown) = %v, %v", got, ok)
	}
}

func TestApplyPartitions(t *testing.T) {
	input := sample()
	active, _ := Apply(input, Active)
	completed, _ := Apply(input, Completed)
	if len(active)+len(completed) != len(input) {
		t.Fatalf("active %d + completed %d != %d", len(active), len(completed), len(input))
	}
	seen := map[string]bool{}
	for _, task := range append(active, completed...) {
		if seen[task.ID] {
			t.Errorf("task %s in both partitions", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestApplyIsSortedAndLeavesInputAlone(t *testing.T) {
	input := sample()
	before := ids(input)
	for _, mode := range Modes() {
		got, _ := Apply(input, mode)
		for i := 1; i < len(got); i++ {
			if got[i].CreatedAt.Before(got[i-1].CreatedAt) {
				t.Errorf("%s: not sorted at %d", mode, i)
			}
		}
	}
	if !equal(ids(input), before) {
		t.Errorf("input reordered: %v", ids(input))
	}
}

func TestApplyEmpty(t *testing.T) {
	got, ok := Apply(nil, All)
	if !ok || len(got) != 0 {
		t.Errorf("Apply(nil) = %v, %v", got, ok)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"all", All, true},
		{" Active ", Active, true},
		{"COMPLETED", Completed, true},
		{"done", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMode(%q) = %q, %v", tt.in, got, ok)
		}
	}
}

func TestNext(t *testing.T) {
	if All.Next() != Active || Active.Next() != Completed || Completed.Next() != All {
		t.Error("Next does not cycle all → active → completed → all")
	}
	if Mode("bogus").Next() != All {
		t.Error("unknown mode should cycle to All")
	}
}
