package form

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nibzard/todolist-go/internal/todo"
)

type recorder struct {
	added []todo.Task
	err   error
}

func (r *recorder) Add(_ context.Context, task todo.Task) error {
	if r.err != nil {
		return r.err
	}
	r.added = append(r.added, task)
	return nil
}

func TestSubmit(t *testing.T) {
	now := time.Date(2024, 7, 4, 10, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	tests := []struct {
		name      string
		fields    Fields
		wantTitle string
		wantDesc  string
		created   bool
	}{
		{name: "title only", fields: Fields{Title: "Buy milk"}, wantTitle: "Buy milk", created: true},
		{name: "trims both", fields: Fields{Title: "  Buy milk \n", Description: "\t2 litres "}, wantTitle: "Buy milk", wantDesc: "2 litres", created: true},
		{name: "empty title", fields: Fields{Title: "", Description: "orphan"}},
		{name: "blank title", fields: Fields{Title: "   \t", Description: "orphan"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			c := New(r, WithClock(func() time.Time { return now }), WithIDGenerator(func() string { return "fixed" }))

			res, err := c.Submit(context.Background(), tt.fields)
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if res.Created != tt.created {
				t.Fatalf("Created = %v, want %v", res.Created, tt.created)
			}
			if !tt.created {
				if len(r.added) != 0 || res.ClearFields || !res.Task.IsZero() {
					t.Errorf("blank submit had effects: %+v, added %v", res, r.added)
				}
				return
			}
			if len(r.added) != 1 {
				t.Fatalf("added %d tasks", len(r.added))
			}
			got := r.added[0]
			if got.ID != "fixed" || got.Title != tt.wantTitle || got.Description != tt.wantDesc || got.Completed {
				t.Errorf("task = %+v", got)
			}
			if !got.CreatedAt.Equal(now) || got.CreatedAt.Location() != time.UTC {
				t.Errorf("CreatedAt = %v, want %v in UTC", got.CreatedAt, now)
			}
			if !res.ClearFields {
				t.Error("ClearFields = false after a successful submit")
			}
		})
	}
}

func TestSubmitDefaultIDsAreUUIDs(t *testing.T) {
	r := &recorder{}
	c := New(r)
	for i := 0; i < 2; i++ {
		if _, err := c.Submit(context.Background(), Fields{Title: "x"}); err != nil {
			t.Fatal(err)
		}
	}
	for _, task := range r.added {
		if _, err := uuid.Parse(task.ID); err != nil {
			t.Errorf("id %q is not a uuid: %v", task.ID, err)
		}
	}
	if r.added[0].ID == r.added[1].ID {
		t.Error("ids are not unique")
	}
}

func TestSubmitAddError(t *testing.T) {
	r := &recorder{err: errors.New("store closed")}
	c := New(r)
	res, err := c.Submit(context.Background(), Fields{Title: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	if res.Created || res.ClearFields {
		t.Errorf("result = %+v", res)
	}
}
