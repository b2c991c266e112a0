package hooks

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/todolist-go/internal/tasks"
	"github.com/nibzard/todolist-go/internal/todo"
)

// writeScript writes an executable shell script and returns its path.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on Windows")
	}
	path := filepath.Join(t.TempDir(), "hook.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInvoke(t *testing.T) {
	t.Run("empty command does not run", func(t *testing.T) {
		result, err := Invoke(context.Background(), Options{Command: "  ", Action: "add"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Ran {
			t.Error("expected Ran to be false")
		}
	})

	t.Run("empty action is an error", func(t *testing.T) {
		if _, err := Invoke(context.Background(), Options{Command: "true"}); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("passes arguments, env and payload", func(t *testing.T) {
		script := writeScript(t, `echo "args:$*"
echo "env:$TODOLIST_ACTION/$TODOLIST_TASK_ID/$TODOLIST_STORAGE_KEY"
cat
`)
		var stdout bytes.Buffer
		result, err := Invoke(context.Background(), Options{
			Command: script + " --flag",
			Action:  "complete",
			TaskID:  "abc",
			Key:     "TASKS",
			Task:    todo.Task{ID: "abc", Title: "Buy milk", Completed: true, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
			Stdout:  &stdout,
		})
		if err != nil {
			t.Fatalf("Invoke: %v", err)
		}
		if !result.Ran || result.ExitCode != 0 {
			t.Errorf("result = %+v", result)
		}
		out := stdout.String()
		for _, want := range []string{
			"args:--flag complete abc TASKS",
			"env:complete/abc/TASKS",
			`"title":"Buy milk"`,
			`"completed":true`,
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("command is split on whitespace without quoting", func(t *testing.T) {
		script := writeScript(t, `for a in "$@"; do echo "[$a]"; done
`)
		var stdout bytes.Buffer
		result, err := Invoke(context.Background(), Options{
			Command: script + ` "two words"`,
			Action:  "add",
			TaskID:  "abc",
			Key:     "TASKS",
			Stdout:  &stdout,
		})
		if err != nil {
			t.Fatalf("Invoke: %v", err)
		}
		want := []string{script, `"two`, `words"`, "add", "abc", "TASKS"}
		if !slices.Equal(result.Command, want) {
			t.Errorf("Command = %q, want %q", result.Command, want)
		}
		if got := stdout.String(); !strings.HasPrefix(got, "[\"two]\n[words\"]\n") {
			t.Errorf("stdout = %q", got)
		}
	})

	t.Run("non-zero exit is reported", func(t *testing.T) {
		script := writeScript(t, "echo boom >&2\nexit 3\n")
		var stderr bytes.Buffer
		result, err := Invoke(context.Background(), Options{Command: script, Action: "add", Stderr: &stderr, Stdout: &bytes.Buffer{}})
		if err == nil {
			t.Fatal("expected error")
		}
		if result.ExitCode != 3 {
			t.Errorf("ExitCode = %d, want 3", result.ExitCode)
		}
		if !strings.Contains(stderr.String(), "boom") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})

	t.Run("missing binary", func(t *testing.T) {
		result, err := Invoke(context.Background(), Options{Command: "/nonexistent/todolist-hook", Action: "add"})
		if err == nil {
			t.Fatal("expected error")
		}
		if result.ExitCode != -1 {
			t.Errorf("ExitCode = %d, want -1", result.ExitCode)
		}
	})

	t.Run("work dir", func(t *testing.T) {
		script := writeScript(t, "pwd\n")
		dir := t.TempDir()
		var stdout bytes.Buffer
		if _, err := Invoke(context.Background(), Options{Command: script, Action: "add", WorkDir: dir, Stdout: &stdout}); err != nil {
			t.Fatal(err)
		}
		got, _ := filepath.EvalSymlinks(strings.TrimSpace(stdout.String()))
		want, _ := filepath.EvalSymlinks(dir)
		if got != want {
			t.Errorf("pwd = %q, want %q", got, want)
		}
	})
}

func TestObserver(t *testing.T) {
	script := writeScript(t, `echo "$1 $2" >> "$(dirname "$0")/calls.log"`+"\n")
	logPath := filepath.Join(filepath.Dir(script), "calls.log")

	notify := Observer(context.Background(), Options{Command: script, Key: "TASKS"}, nil)
	notify(tasks.Change{Action: tasks.ActionAdd, TaskID: "a"})
	notify(tasks.Change{Action: tasks.ActionRemove, TaskID: "b", Err: errors.New("save failed")})
	notify(tasks.Change{Action: tasks.ActionRemove, TaskID: "a"})

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read calls: %v", err)
	}
	want := "add a\nremove a\n"
	if string(data) != want {
		t.Errorf("calls = %q, want %q", data, want)
	}
}

func TestExitCodeFromError(t *testing.T) {
	if exitCodeFromError(nil) != 0 {
		t.Error("nil error should be exit code 0")
	}
	if exitCodeFromError(errors.New("x")) != -1 {
		t.Error("non-exit error should be -1")
	}
}
