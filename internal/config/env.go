package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from TODOLIST_* environment variables and
// records their source.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	setString := func(env, field string, target *string) {
		if v := os.Getenv(env); v != "" {
			*target = v
			sources[field] = SourceEnv
		}
	}
	setBool := func(env, field string, target *bool) {
		if v := os.Getenv(env); v != "" {
			*target = boolFromString(v)
			sources[field] = SourceEnv
		}
	}

	setString("TODOLIST_STORE_BACKEND", "store_backend", &cfg.StoreBackend)
	setString("TODOLIST_DATA_DIR", "data_dir", &cfg.DataDir)
	setString("TODOLIST_STORAGE_KEY", "storage_key", &cfg.StorageKey)
	setString("TODOLIST_SQLITE_PATH", "sqlite_path", &cfg.SQLitePath)
	setString("TODOLIST_REDIS_ADDR", "redis_addr", &cfg.RedisAddr)
	setString("TODOLIST_REDIS_PASSWORD", "redis_password", &cfg.RedisPassword)
	setString("TODOLIST_REDIS_PREFIX", "redis_prefix", &cfg.RedisPrefix)
	if v := os.Getenv("TODOLIST_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("TODOLIST_REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
		sources["redis_db"] = SourceEnv
	}
	setString("TODOLIST_DEFAULT_FILTER", "default_filter", &cfg.DefaultFilter)
	setString("TODOLIST_HOOK", "hook_command", &cfg.HookCommand)

	// Logging configuration
	setString("TODOLIST_LOG_DIR", "log_dir", &cfg.LogDir)
	setString("TODOLIST_LOG_LEVEL", "log_level", &cfg.LogLevel)
	setString("TODOLIST_LOG_FORMAT", "log_format", &cfg.LogFormat)
	setBool("TODOLIST_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps)
	setBool("TODOLIST_LOG_CALLER", "log_caller", &cfg.LogCaller)
	return nil
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
