package config

import (
	"flag"

	"github.com/nibzard/todolist-go/internal/kvstore"
)

// parseFlags defines the global flags on fs, parses args, and applies
// only the flags that were explicitly set.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("todolist", flag.ContinueOnError)
	}

	// Values are bound to copies so unset flags never clobber file or env values.
	v := *cfg
	var ephemeral bool

	fs.StringVar(&v.StoreBackend, "store", cfg.StoreBackend, "Store backend (file, sqlite, redis, memory)")
	fs.BoolVar(&ephemeral, "ephemeral", false, "Keep tasks in memory only (same as -store memory)")
	fs.StringVar(&v.DataDir, "data-dir", cfg.DataDir, "Directory for the file backend")
	fs.StringVar(&v.StorageKey, "key", cfg.StorageKey, "Storage key the task list is saved under")
	fs.StringVar(&v.SQLitePath, "sqlite-path", cfg.SQLitePath, "Database file for the sqlite backend")
	fs.StringVar(&v.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis address for the redis backend")
	fs.StringVar(&v.RedisPassword, "redis-password", cfg.RedisPassword, "Redis password")
	fs.IntVar(&v.RedisDB, "redis-db", cfg.RedisDB, "Redis database number")
	fs.StringVar(&v.RedisPrefix, "redis-prefix", cfg.RedisPrefix, "Prefix for redis keys")
	fs.StringVar(&v.DefaultFilter, "filter", cfg.DefaultFilter, "Initial filter (all, active, completed)")
	fs.StringVar(&v.HookCommand, "hook", cfg.HookCommand, "Command to run after each saved change (split on whitespace, no quoting)")
	fs.StringVar(&v.LogDir, "log-dir", cfg.LogDir, "Log directory")
	fs.StringVar(&v.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&v.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&v.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&v.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	type binding struct {
		field string
		apply func()
	}
	bindings := map[string]binding{
		"store":          {"store_backend", func() { cfg.StoreBackend = v.StoreBackend }},
		"data-dir":       {"data_dir", func() { cfg.DataDir = v.DataDir }},
		"key":            {"storage_key", func() { cfg.StorageKey = v.StorageKey }},
		"sqlite-path":    {"sqlite_path", func() { cfg.SQLitePath = v.SQLitePath }},
		"redis-addr":     {"redis_addr", func() { cfg.RedisAddr = v.RedisAddr }},
		"redis-password": {"redis_password", func() { cfg.RedisPassword = v.RedisPassword }},
		"redis-db":       {"redis_db", func() { cfg.RedisDB = v.RedisDB }},
		"redis-prefix":   {"redis_prefix", func() { cfg.RedisPrefix = v.RedisPrefix }},
		"filter":         {"default_filter", func() { cfg.DefaultFilter = v.DefaultFilter }},
		"hook":           {"hook_command", func() { cfg.HookCommand = v.HookCommand }},
		"log-dir":        {"log_dir", func() { cfg.LogDir = v.LogDir }},
		"log-level":      {"log_level", func() { cfg.LogLevel = v.LogLevel }},
		"log-format":     {"log_format", func() { cfg.LogFormat = v.LogFormat }},
		"log-timestamps": {"log_timestamps", func() { cfg.LogTimestamps = v.LogTimestamps }},
		"log-caller":     {"log_caller", func() { cfg.LogCaller = v.LogCaller }},
	}

	fs.Visit(func(f *flag.Flag) {
		b, ok := bindings[f.Name]
		if !ok {
			return
		}
		b.apply()
		sources[b.field] = SourceFlag
	})

	if ephemeral {
		cfg.StoreBackend = kvstore.BackendMemory
		sources["store_backend"] = SourceFlag
	}
	return nil
}
