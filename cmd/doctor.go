package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/nibzard/todolist-go/internal/kvstore"
	"github.com/nibzard/todolist-go/internal/logging"
	"github.com/nibzard/todolist-go/internal/storage"
	"github.com/nibzard/todolist-go/internal/todo"
	"github.com/nibzard/todolist-go/internal/utils"
)

// doctorCommand checks the config, the store backend, the stored task
// blob, and the hook command.
func doctorCommand(ctx context.Context, env *cmdEnv, args []string) error {
	fs := flag.NewFlagSet("todolist doctor", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg := env.cfg
	w := env.stdout

	fmt.Fprintln(w, "Todolist Doctor")
	fmt.Fprintln(w, "===============")
	fmt.Fprintln(w)

	allOK := true

	// Config
	fmt.Fprintln(w, "Config:")
	if path := env.sources.GetConfigFile(); path != "" {
		fmt.Fprintf(w, "  ✅ File: %s\n", path)
	} else {
		fmt.Fprintln(w, "  ⚠️  No config file (using defaults)")
	}
	for _, warning := range env.sources.Warnings {
		fmt.Fprintf(w, "  ⚠️  %s\n", warning)
	}
	fmt.Fprintf(w, "  ✅ Backend: %s\n", cfg.StoreBackend)
	fmt.Fprintf(w, "  ✅ Storage key: %s\n", cfg.StorageKey)
	fmt.Fprintf(w, "  ✅ Default filter: %s\n", cfg.DefaultFilter)
	fmt.Fprintln(w)

	// Store backend
	fmt.Fprintf(w, "Store (%s):\n", describeBackend(env))
	if cfg.StoreBackend == kvstore.BackendMemory {
		fmt.Fprintln(w, "  ⚠️  Memory backend: tasks are lost on exit")
	}
	kv, err := kvstore.Open(ctx, cfg.KVOptions(logging.Discard()))
	if err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		defer kv.Close()
		fmt.Fprintln(w, "  ✅ Reachable")

		adapter := storage.NewAdapter(kv, storage.WithKey(cfg.StorageKey))
		blob, found, err := adapter.Raw(ctx)
		switch {
		case err != nil:
			fmt.Fprintf(w, "  ❌ Read error: %v\n", err)
			allOK = false
		case !found:
			fmt.Fprintf(w, "  ⚠️  No tasks saved under %q yet\n", adapter.Key())
		default:
			if !checkBlob(env, []byte(blob), *verbose) {
				allOK = false
			}
		}
	}
	fmt.Fprintln(w)

	// Hook
	fmt.Fprintln(w, "Hook:")
	if cfg.HookCommand == "" {
		fmt.Fprintln(w, "  ⚠️  Not configured")
	} else {
		binary := strings.Fields(cfg.HookCommand)[0]
		if resolved, err := utils.LookupExecutable(binary); err != nil {
			fmt.Fprintf(w, "  ❌ %s: %v\n", binary, err)
			allOK = false
		} else {
			fmt.Fprintf(w, "  ✅ %s\n", resolved)
		}
	}
	fmt.Fprintln(w)

	// Log directory
	logDir, err := logging.FindLogDir(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		fmt.Fprintf(w, "Log directory: %s\n", cfg.LogDir)
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Fprintf(w, "Log directory: %s\n", logDir)
		if _, err := os.Stat(logDir); err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintln(w, "  ⚠️  Not found (will be created by the tui)")
			} else {
				fmt.Fprintf(w, "  ❌ Error: %v\n", err)
				allOK = false
			}
		} else {
			fmt.Fprintln(w, "  ✅ OK")
		}
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed. Todolist may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// checkBlob validates a stored blob and prints the outcome.
func checkBlob(env *cmdEnv, blob []byte, verbose bool) bool {
	w := env.stdout
	result := todo.Validate(blob)
	if !result.UsedSchema {
		fmt.Fprintln(w, "  ⚠️  Schema unavailable, used minimal checks")
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  ⚠️  %s\n", warning)
	}
	if !result.Valid {
		fmt.Fprintln(w, "  ❌ Stored tasks are malformed (the app starts empty and overwrites them on the next change):")
		for _, e := range result.Errors {
			fmt.Fprintf(w, "     - %v\n", e)
		}
		return false
	}
	fmt.Fprintf(w, "  ✅ Stored tasks valid (%d)\n", result.TaskCount)

	if verbose {
		tasks, err := todo.DecodeTasks(blob)
		if err == nil {
			for _, t := range tasks {
				printTask(w, t, false)
			}
		}
	}
	return true
}

func describeBackend(env *cmdEnv) string {
	cfg := env.cfg
	switch cfg.StoreBackend {
	case kvstore.BackendFile:
		return "file " + cfg.DataDir
	case kvstore.BackendSQLite:
		return "sqlite " + cfg.SQLitePath
	case kvstore.BackendRedis:
		return "redis " + cfg.RedisAddr
	default:
		return cfg.StoreBackend
	}
}
