// Package hooks invokes an external command after each persisted task change.
package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist-go/internal/tasks"
	"github.com/nibzard/todolist-go/internal/todo"
)

// Options configures a hook invocation.
type Options struct {
	// Command is the hook command line, split on whitespace. Quotes are
	// not interpreted: `hook "a b"` passes `"a` and `b"`.
	Command string
	Action  string
	TaskID  string
	// Key is the storage key the collection was saved under.
	Key     string
	Task    todo.Task
	WorkDir string
	Stdout  io.Writer
	Stderr  io.Writer
}

// Result captures the outcome of a hook invocation.
type Result struct {
	Ran      bool
	Command  []string
	ExitCode int
}

// Invoke runs the hook command with the action, task id, and storage key
// as arguments and the task as JSON on stdin.
func Invoke(ctx context.Context, opts Options) (Result, error) {
	argv := strings.Fields(opts.Command)
	if len(argv) == 0 {
		return Result{}, nil
	}
	if opts.Action == "" {
		return Result{}, errors.New("hook action is empty")
	}

	payload, err := json.Marshal(opts.Task)
	if err != nil {
		return Result{}, fmt.Errorf("encode hook payload: %w", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}

	args := append(argv[1:], opts.Action, opts.TaskID, opts.Key)
	cmd := exec.CommandContext(ctx, argv[0], args...)
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = writerOr(opts.Stdout, os.Stdout)
	cmd.Stderr = writerOr(opts.Stderr, os.Stderr)
	cmd.Env = append(os.Environ(),
		"TODOLIST_ACTION="+opts.Action,
		"TODOLIST_TASK_ID="+opts.TaskID,
		"TODOLIST_STORAGE_KEY="+opts.Key,
	)

	err = cmd.Run()
	result := Result{
		Ran:      true,
		Command:  cmd.Args,
		ExitCode: exitCodeFromError(err),
	}
	if err != nil {
		return result, fmt.Errorf("hook command failed: %w", err)
	}
	return result, nil
}

// Observer returns a tasks.Store subscriber that invokes the hook for
// every change that was persisted. Failures are logged, never returned.
func Observer(ctx context.Context, base Options, logger *log.Logger) func(tasks.Change) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return func(c tasks.Change) {
		if c.Err != nil {
			logger.Debug("skipping hook, change was not persisted", "action", c.Action, "task", c.TaskID)
			return
		}
		opts := base
		opts.Action = string(c.Action)
		opts.TaskID = c.TaskID
		opts.Task = c.Task
		result, err := Invoke(ctx, opts)
		if err != nil {
			logger.Warn("hook failed", "command", base.Command, "action", c.Action, "exit_code", result.ExitCode, "error", err)
			return
		}
		if result.Ran {
			logger.Debug("hook ran", "command", result.Command, "action", c.Action)
		}
	}
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}

func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
