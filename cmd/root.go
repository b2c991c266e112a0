// Package cmd implements the CLI command structure for todolist.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nibzard/todolist-go/internal/config"
	"github.com/nibzard/todolist-go/internal/logging"
	"github.com/nibzard/todolist-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the todolist CLI.
func Run(ctx context.Context, args []string) error {
	return runWithIO(ctx, args, os.Stdout, os.Stderr)
}

func runWithIO(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todolist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}
	for _, w := range cws.Warnings {
		fmt.Fprintf(stderr, "warning: %s\n", w)
	}

	// No subcommand opens the terminal UI.
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	env := &cmdEnv{cfg: cws.Config, sources: cws, stdout: stdout, stderr: stderr}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, env, remainingArgs)
	case "add":
		return addCommand(ctx, env, remainingArgs)
	case "ls", "list":
		return lsCommand(ctx, env, remainingArgs)
	case "done":
		return setCompletedCommand(ctx, env, "done", true, remainingArgs)
	case "undo":
		return setCompletedCommand(ctx, env, "undo", false, remainingArgs)
	case "edit":
		return editCommand(ctx, env, remainingArgs)
	case "rm", "remove":
		return rmCommand(ctx, env, remainingArgs)
	case "doctor":
		return doctorCommand(ctx, env, remainingArgs)
	case "reset":
		return resetCommand(ctx, env, remainingArgs)
	case "tail":
		return tailCommand(ctx, env, remainingArgs)
	case "logs":
		return logsCommand(env, remainingArgs)
	case "config":
		return configCommand(env, remainingArgs)
	case "version":
		return versionCommand(stdout)
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// cmdEnv carries the loaded configuration and output streams to commands.
type cmdEnv struct {
	cfg     *config.Config
	sources *config.ConfigWithSources
	stdout  io.Writer
	stderr  io.Writer
}

// tuiCommand launches the terminal UI. Logs and hook output go to a
// per-run log file so they do not corrupt the screen.
func tuiCommand(ctx context.Context, env *cmdEnv, args []string) error {
	fs := flag.NewFlagSet("todolist tui", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	noAlt := fs.Bool("no-alt-screen", false, "Render inline instead of on the alternate screen")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if !ui.IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY; use a subcommand such as ls or add")
	}

	runLog, err := logging.NewRunLogger(env.cfg.LogDir, env.cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer runLog.Close()

	logger := runLog.Logger(env.cfg.LogOptions())
	a, err := openApp(ctx, env.cfg, appOptions{
		logger:  logger,
		hookOut: runLog.Writer(),
		hookErr: runLog.Writer(),
	})
	if err != nil {
		return err
	}
	defer a.Close()

	logger.Info("tui started", "backend", env.cfg.StoreBackend, "key", a.adapter.Key(), "tasks", a.store.Len())
	model := ui.NewModel(ctx, a.store,
		ui.WithFilter(env.cfg.FilterMode()),
		ui.WithLogger(logger),
	)
	return ui.RunTUI(ctx, model, ui.WithAltScreen(!*noAlt))
}

// tailCommand tails the latest log file.
func tailCommand(ctx context.Context, env *cmdEnv, args []string) error {
	fs := flag.NewFlagSet("todolist tail", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(env.cfg.LogDir, env.cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(env.stdout, "No log files found.")
		return nil
	}

	fmt.Fprintf(env.stdout, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(env.stdout, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(env.stdout)

	err = logging.TailLog(ctx, env.stdout, logPath, *n, *follow)
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// logsCommand lists the run logs of the current project.
func logsCommand(env *cmdEnv, args []string) error {
	fs := flag.NewFlagSet("todolist logs", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	limit := fs.Int("n", 10, "Number of runs to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(env.cfg.LogDir, env.cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	runs, err := logging.FindLogRuns(logDir)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(env.stdout, "No log files found.")
		return nil
	}
	if *limit > 0 && len(runs) > *limit {
		runs = runs[:*limit]
	}
	for _, r := range runs {
		fmt.Fprintf(env.stdout, "%s  %s  %6d bytes  %s\n", r.RunID, r.ModTime.Format("2006-01-02 15:04:05"), r.Size, r.Path)
	}
	return nil
}

// configCommand prints the effective configuration and where each value came from.
func configCommand(env *cmdEnv, args []string) error {
	fs := flag.NewFlagSet("todolist config", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	example := fs.Bool("example", false, "Print an example config file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Fprint(env.stdout, config.ExampleConfig())
		return nil
	}

	cfg := env.cfg
	w := env.stdout
	if path := env.sources.GetConfigFile(); path != "" {
		fmt.Fprintf(w, "# config file: %s\n", path)
	} else {
		fmt.Fprintln(w, "# no config file found")
	}
	values := []struct {
		key   string
		value any
	}{
		{"store_backend", cfg.StoreBackend},
		{"data_dir", cfg.DataDir},
		{"storage_key", cfg.StorageKey},
		{"sqlite_path", cfg.SQLitePath},
		{"redis_addr", cfg.RedisAddr},
		{"redis_password", maskSecret(cfg.RedisPassword)},
		{"redis_db", cfg.RedisDB},
		{"redis_prefix", cfg.RedisPrefix},
		{"default_filter", cfg.DefaultFilter},
		{"hook_command", cfg.HookCommand},
		{"log_dir", cfg.LogDir},
		{"log_level", cfg.LogLevel},
		{"log_format", cfg.LogFormat},
		{"log_timestamps", cfg.LogTimestamps},
		{"log_caller", cfg.LogCaller},
	}
	for _, v := range values {
		fmt.Fprintf(w, "%-15s = %-30v # %s\n", v.key, v.value, env.sources.Sources[v.key])
	}
	return nil
}

func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "todolist version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Todolist - A small persistent to-do list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todolist [options] [command] [command options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                 Launch the terminal UI (default command)")
	fmt.Fprintln(w, "  add <title>         Add a task")
	fmt.Fprintln(w, "  ls [filter]         List tasks (all, active, completed)")
	fmt.Fprintln(w, "  done <id>           Mark a task completed")
	fmt.Fprintln(w, "  undo <id>           Mark a task active again")
	fmt.Fprintln(w, "  edit <id>           Change a task's title or description")
	fmt.Fprintln(w, "  rm <id>             Delete a task")
	fmt.Fprintln(w, "  doctor              Check config, storage, and stored tasks")
	fmt.Fprintln(w, "  reset -yes          Delete the stored task list")
	fmt.Fprintln(w, "  tail                Tail the latest log file")
	fmt.Fprintln(w, "  logs                List run log files")
	fmt.Fprintln(w, "  config              Show the effective configuration")
	fmt.Fprintln(w, "  version             Show version information")
	fmt.Fprintln(w, "  help                Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Task ids may be shortened to any unique prefix.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options:")
	fmt.Fprintln(w, "  -d string")
	fmt.Fprintln(w, "        Task description")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options:")
	fmt.Fprintln(w, "  -json")
	fmt.Fprintln(w, "        Print the matching tasks as JSON")
	fmt.Fprintln(w, "  -v    Show descriptions and timestamps")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Edit Options:")
	fmt.Fprintln(w, "  -title string")
	fmt.Fprintln(w, "        New title")
	fmt.Fprintln(w, "  -d string")
	fmt.Fprintln(w, "        New description")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options:")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}
