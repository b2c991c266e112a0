package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/todolist-go/internal/filter"
	"github.com/nibzard/todolist-go/internal/form"
	"github.com/nibzard/todolist-go/internal/kvstore"
	"github.com/nibzard/todolist-go/internal/logging"
	"github.com/nibzard/todolist-go/internal/storage"
	"github.com/nibzard/todolist-go/internal/todo"
	"github.com/nibzard/todolist-go/internal/utils"
)

// shortIDLen is how many id characters the listing prints.
const shortIDLen = 8

// openCLIApp opens the store for a one-shot command. Logs and hook output
// go to the command's output streams.
func openCLIApp(ctx context.Context, env *cmdEnv) (*app, error) {
	return openApp(ctx, env.cfg, appOptions{
		logger:  logging.New(env.stderr, env.cfg.LogOptions()),
		hookOut: env.stdout,
		hookErr: env.stderr,
	})
}

// addCommand adds a task from the remaining arguments.
func addCommand(ctx context.Context, env *cmdEnv, args []string) error {
	fs := flag.NewFlagSet("todolist add", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	desc := fs.String("d", "", "Task description")
	fs.StringVar(desc, "description", "", "Task description")

	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := openCLIApp(ctx, env)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := form.New(a.store).Submit(ctx, form.Fields{
		Title:       strings.Join(fs.Args(), " "),
		Description: *desc,
	})
	if err != nil {
		return fmt.Errorf("adding task: %w", err)
	}
	if !res.Created {
		// A blank title adds nothing.
		return nil
	}
	fmt.Fprintf(env.stdout, "Added %s %s\n", utils.ShortID(res.Task.ID, shortIDLen), res.Task.Title)
	return nil
}

// lsCommand lists tasks matching a filter, oldest first.
func lsCommand(ctx context.Context, env *cmdEnv, args []string) error {
	fs := flag.NewFlagSet("todolist ls", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	filterArg := fs.String("filter", "", "Filter (all, active, completed)")
	asJSON := fs.Bool("json", false, "Print the matching tasks as JSON")
	verbose := fs.Bool("v", false, "Show descriptions and timestamps")

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 && *filterArg == "" {
		*filterArg = remaining[0]
	}

	mode := env.cfg.FilterMode()
	if *filterArg != "" {
		m, ok := filter.ParseMode(*filterArg)
		if !ok {
			return fmt.Errorf("unknown filter %q (expected all, active or completed)", *filterArg)
		}
		mode = m
	}

	a, err := openCLIApp(ctx, env)
	if err != nil {
		return err
	}
	defer a.Close()

	visible, _ := filter.Apply(a.store.List(), mode)
	if *asJSON {
		data, err := todo.EncodeTasks(visible)
		if err != nil {
			return err
		}
		fmt.Fprintln(env.stdout, string(data))
		return nil
	}

	printTaskList(env.stdout, visible, mode, *verbose)
	return nil
}

// setCompletedCommand marks one task completed or active.
func setCompletedCommand(ctx context.Context, env *cmdEnv, name string, completed bool, args []string) error {
	fs := flag.NewFlagSet("todolist "+name, flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	ref, err := singleID(fs.Args())
	if err != nil {
		return err
	}

	a, err := openCLIApp(ctx, env)
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := a.resolve(ref)
	if err != nil {
		return err
	}
	if err := a.store.SetCompleted(ctx, id, completed); err != nil {
		return err
	}
	t, _ := a.store.Get(id)
	fmt.Fprintf(env.stdout, "%s %s %s\n", checkbox(completed), utils.ShortID(id, shortIDLen), t.Title)
	return nil
}

// editCommand replaces a task's title and description. Fields without a
// flag keep their current value.
func editCommand(ctx context.Context, env *cmdEnv, args []string) error {
	fs := flag.NewFlagSet("todolist edit", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	title := fs.String("title", "", "New title")
	desc := fs.String("d", "", "New description")
	fs.StringVar(desc, "description", "", "New description")

	if err := fs.Parse(args); err != nil {
		return err
	}
	ref, err := singleID(fs.Args())
	if err != nil {
		return err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["title"] && !set["d"] && !set["description"] {
		return fmt.Errorf("nothing to change: pass -title or -d")
	}

	a, err := openCLIApp(ctx, env)
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := a.resolve(ref)
	if err != nil {
		return err
	}
	current, _ := a.store.Get(id)
	newTitle, newDesc := current.Title, current.Description
	if set["title"] {
		newTitle = *title
	}
	if set["d"] || set["description"] {
		newDesc = *desc
	}
	if err := a.store.UpdateFields(ctx, id, newTitle, newDesc); err != nil {
		return err
	}
	fmt.Fprintf(env.stdout, "Updated %s %s\n", utils.ShortID(id, shortIDLen), newTitle)
	return nil
}

// rmCommand deletes one task.
func rmCommand(ctx context.Context, env *cmdEnv, args []string) error {
	fs := flag.NewFlagSet("todolist rm", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	ref, err := singleID(fs.Args())
	if err != nil {
		return err
	}

	a, err := openCLIApp(ctx, env)
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := a.resolve(ref)
	if err != nil {
		return err
	}
	t, _ := a.store.Get(id)
	if err := a.store.Remove(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(env.stdout, "Deleted %s %s\n", utils.ShortID(id, shortIDLen), t.Title)
	return nil
}

// resetCommand deletes the stored blob, malformed or not.
func resetCommand(ctx context.Context, env *cmdEnv, args []string) error {
	fs := flag.NewFlagSet("todolist reset", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	yes := fs.Bool("yes", false, "Confirm deleting every stored task")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if !*yes {
		return fmt.Errorf("reset deletes every task under %q; pass -yes to confirm", env.cfg.StorageKey)
	}

	kv, err := kvstore.Open(ctx, env.cfg.KVOptions(logging.New(env.stderr, env.cfg.LogOptions())))
	if err != nil {
		return fmt.Errorf("opening %s store: %w", env.cfg.StoreBackend, err)
	}
	defer kv.Close()

	adapter := storage.NewAdapter(kv, storage.WithKey(env.cfg.StorageKey))
	if err := adapter.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintf(env.stdout, "Cleared %s\n", adapter.Key())
	return nil
}

func singleID(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", fmt.Errorf("missing task id")
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("unexpected arguments: %v", args[1:])
	}
}

// printTaskList prints tasks in the given order.
func printTaskList(w io.Writer, tasks []todo.Task, mode filter.Mode, verbose bool) {
	if len(tasks) == 0 {
		if mode == filter.All {
			fmt.Fprintln(w, "No tasks found.")
		} else {
			fmt.Fprintf(w, "No %s tasks found.\n", mode)
		}
		return
	}
	for _, t := range tasks {
		printTask(w, t, verbose)
	}
}

// printTask prints a single task.
func printTask(w io.Writer, t todo.Task, verbose bool) {
	fmt.Fprintf(w, "%s %s  %s\n", checkbox(t.Completed), utils.ShortID(t.ID, shortIDLen), t.Title)
	if verbose {
		if t.Description != "" {
			fmt.Fprintf(w, "      Description: %s\n", t.Description)
		}
		fmt.Fprintf(w, "      Created: %s\n", t.CreatedAt.Format("2006-01-02 15:04:05 MST"))
		fmt.Fprintf(w, "      ID: %s\n", t.ID)
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
