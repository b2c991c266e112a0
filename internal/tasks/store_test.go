package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nibzard/todolist-go/internal/kvstore"
	"github.com/nibzard/todolist-go/internal/storage"
	"github.com/nibzard/todolist-go/internal/todo"
)

var base = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func task(id, title string, offset time.Duration) todo.Task {
	return todo.Task{ID: id, Title: title, CreatedAt: base.Add(offset)}
}

func newStore(t *testing.T) (*Store, *kvstore.MemoryStore, *storage.Adapter) {
	t.Helper()
	kv := kvstore.NewMemoryStore()
	adapter := storage.NewAdapter(kv)
	return Open(context.Background(), adapter), kv, adapter
}

func persisted(t *testing.T, adapter *storage.Adapter) []todo.Task {
	t.Helper()
	tasks, err := adapter.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return tasks
}

func assertInSync(t *testing.T, s *Store, adapter *storage.Adapter) {
	t.Helper()
	mem := s.List()
	disk := persisted(t, adapter)
	if len(mem) != len(disk) {
		t.Fatalf("in-memory has %d tasks, persisted has %d", len(mem), len(disk))
	}
	for i := range mem {
		m, d := mem[i], disk[i]
		if m.ID != d.ID || m.Title != d.Title || m.Description != d.Description || m.Completed != d.Completed || !m.CreatedAt.Equal(d.CreatedAt) {
			t.Errorf("task %d differs: memory %+v, persisted %+v", i, m, d)
		}
	}
}

func TestOpenLoadsPersisted(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	adapter := storage.NewAdapter(kv)
	if err := adapter.Save(ctx, []todo.Task{task("a", "one", 0)}); err != nil {
		t.Fatal(err)
	}

	s := Open(ctx, adapter)
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if got, ok := s.Get("a"); !ok || got.Title != "one" {
		t.Errorf("Get(a) = %+v, %v", got, ok)
	}
}

func TestOpenMalformedStartsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	_ = kv.Set(ctx, storage.DefaultKey, "not json")

	s := Open(ctx, storage.NewAdapter(kv))
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestMutationsPersistEachTime(t *testing.T) {
	ctx := context.Background()
	s, kv, adapter := newStore(t)

	steps := []struct {
		name string
		run  func() error
	}{
		{"add a", func() error { return s.Add(ctx, task("a", "one", 0)) }},
		{"add b", func() error { return s.Add(ctx, task("b", "two", time.Minute)) }},
		{"complete a", func() error { return s.SetCompleted(ctx, "a", true) }},
		{"update b", func() error { return s.UpdateFields(ctx, "b", "TWO", "details") }},
		{"remove a", func() error { return s.Remove(ctx, "a") }},
	}

	for i, step := range steps {
		if err := step.run(); err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		if kv.Writes() != i+1 {
			t.Errorf("%s: writes = %d, want %d", step.name, kv.Writes(), i+1)
		}
		assertInSync(t, s, adapter)
	}

	got, _ := s.Get("b")
	if got.Title != "TWO" || got.Description != "details" {
		t.Errorf("b = %+v", got)
	}
}

func TestCountFollowsAddsAndRemoves(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newStore(t)

	ids := []string{"a", "b", "c", "d"}
	for i, id := range ids {
		if err := s.Add(ctx, task(id, id, time.Duration(i)*time.Second)); err != nil {
			t.Fatal(err)
		}
	}
	for _, id := range []string{"b", "d"} {
		if err := s.Remove(ctx, id); err != nil {
			t.Fatal(err)
		}
	}
	if s.Len() != len(ids)-2 {
		t.Errorf("Len() = %d, want %d", s.Len(), len(ids)-2)
	}
	list := s.List()
	if list[0].ID != "a" || list[1].ID != "c" {
		t.Errorf("remaining = %v", list)
	}
}

func TestUnknownIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	s, kv, _ := newStore(t)
	if err := s.Add(ctx, task("a", "one", 0)); err != nil {
		t.Fatal(err)
	}
	writes := kv.Writes()

	tests := []struct {
		name string
		run  func() error
	}{
		{"SetCompleted", func() error { return s.SetCompleted(ctx, "zzz", true) }},
		{"UpdateFields", func() error { return s.UpdateFields(ctx, "zzz", "x", "y") }},
		{"Remove", func() error { return s.Remove(ctx, "zzz") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, ErrNotFound) {
				t.Errorf("error = %v, want ErrNotFound", err)
			}
			if kv.Writes() != writes {
				t.Errorf("writes = %d, want %d", kv.Writes(), writes)
			}
			if s.Len() != 1 {
				t.Errorf("Len() = %d", s.Len())
			}
		})
	}
}

func TestAddDuplicateID(t *testing.T) {
	ctx := context.Background()
	s, kv, _ := newStore(t)
	if err := s.Add(ctx, task("a", "one", 0)); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(ctx, task("a", "again", time.Second)); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("error = %v, want ErrDuplicateID", err)
	}
	if err := s.Add(ctx, todo.Task{Title: "no id"}); err == nil {
		t.Error("expected error for task without id")
	}
	if kv.Writes() != 1 || s.Len() != 1 {
		t.Errorf("writes = %d, len = %d", kv.Writes(), s.Len())
	}
}

func TestSetCompletedIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _, adapter := newStore(t)
	_ = s.Add(ctx, task("a", "one", 0))

	_ = s.SetCompleted(ctx, "a", true)
	once := persisted(t, adapter)
	_ = s.SetCompleted(ctx, "a", true)
	twice := persisted(t, adapter)

	if len(once) != 1 || len(twice) != 1 || once[0].Completed != twice[0].Completed || !twice[0].Completed {
		t.Errorf("once %+v, twice %+v", once, twice)
	}
}

func TestUpdateFieldsAllowsEmptyTitle(t *testing.T) {
	ctx := context.Background()
	s, _, adapter := newStore(t)
	_ = s.Add(ctx, task("a", "one", 0))

	if err := s.UpdateFields(ctx, "a", "", ""); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	got := persisted(t, adapter)
	if got[0].Title != "" {
		t.Errorf("Title = %q, want empty", got[0].Title)
	}
}

func TestRemoveLastWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	s, kv, _ := newStore(t)
	_ = s.Add(ctx, task("a", "one", 0))
	_ = s.Remove(ctx, "a")

	blob, err := kv.Get(ctx, storage.DefaultKey)
	if err != nil {
		t.Fatal(err)
	}
	if blob != "[]" {
		t.Errorf("blob = %q, want []", blob)
	}
}

func TestListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newStore(t)
	_ = s.Add(ctx, task("a", "one", 0))

	list := s.List()
	list[0].Title = "mutated"
	if got, _ := s.Get("a"); got.Title != "one" {
		t.Errorf("store was mutated through List: %q", got.Title)
	}
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newStore(t)

	var changes []Change
	s.Subscribe(func(c Change) {
		// Observers may read the store.
		_ = s.Len()
		changes = append(changes, c)
	})
	s.Subscribe(nil)

	_ = s.Add(ctx, task("a", "one", 0))
	_ = s.SetCompleted(ctx, "a", true)
	_ = s.UpdateFields(ctx, "a", "uno", "")
	_ = s.Remove(ctx, "a")
	_ = s.Remove(ctx, "a")

	want := []Action{ActionAdd, ActionComplete, ActionUpdate, ActionRemove}
	if len(changes) != len(want) {
		t.Fatalf("got %d changes, want %d", len(changes), len(want))
	}
	for i, c := range changes {
		if c.Action != want[i] || c.TaskID != "a" || c.Err != nil {
			t.Errorf("change %d = %+v", i, c)
		}
	}
	if changes[3].Task.Title != "uno" {
		t.Errorf("removed task = %+v", changes[3].Task)
	}
}

func TestSubscribeDuringNotify(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newStore(t)

	var late []Change
	subscribed := false
	s.Subscribe(func(Change) {
		if !subscribed {
			subscribed = true
			s.Subscribe(func(c Change) { late = append(late, c) })
		}
	})

	_ = s.Add(ctx, task("a", "one", 0))
	if len(late) != 0 {
		t.Fatalf("observer added during a notification saw that change: %+v", late)
	}
	_ = s.Remove(ctx, "a")
	if len(late) != 1 || late[0].Action != ActionRemove {
		t.Errorf("late observer changes = %+v", late)
	}
}

type failingPersister struct{ calls int }

func (f *failingPersister) Save(context.Context, []todo.Task) error {
	f.calls++
	return errors.New("quota exceeded")
}

func TestSaveFailureKeepsMemoryAndNotifies(t *testing.T) {
	ctx := context.Background()
	p := &failingPersister{}
	s := New(nil, p)

	var got Change
	s.Subscribe(func(c Change) { got = c })

	err := s.Add(ctx, task("a", "one", 0))
	if err == nil {
		t.Fatal("expected error")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if got.Err == nil || got.Action != ActionAdd {
		t.Errorf("observer change = %+v", got)
	}
	if p.calls != 1 {
		t.Errorf("save calls = %d", p.calls)
	}
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newStore(t)
	_ = s.Add(ctx, task("abc123", "one", 0))
	_ = s.Add(ctx, task("abd456", "two", time.Second))

	tests := []struct {
		ref     string
		want    string
		wantErr error
	}{
		{ref: "abc123", want: "abc123"},
		{ref: "abc", want: "abc123"},
		{ref: " abd ", want: "abd456"},
		{ref: "ab", wantErr: ErrAmbiguousID},
		{ref: "zz", wantErr: ErrNotFound},
		{ref: "", wantErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := s.Resolve(tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("Resolve(%q) = %q, %v", tt.ref, got, err)
			}
		})
	}
}
