package config

import (
	"github.com/nibzard/todolist-go/internal/appdir"
	"github.com/nibzard/todolist-go/internal/storage"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
	// Warnings holds non-fatal problems such as unknown keys.
	Warnings []string
}

// Default values.
const (
	DefaultStoreBackend = "file"
	DefaultDataDir      = appdir.Dir
	DefaultStorageKey   = storage.DefaultKey
	DefaultRedisAddr    = "localhost:6379"
	DefaultRedisPrefix  = "todolist:"
	DefaultFilter       = "all"
	DefaultLogDir       = appdir.LogDir
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// Config holds the full configuration for todolist.
type Config struct {
	// Storage
	StoreBackend string `toml:"store_backend"`
	DataDir      string `toml:"data_dir"`
	StorageKey   string `toml:"storage_key"`
	SQLitePath   string `toml:"sqlite_path"`

	// Redis backend
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`

	// View
	DefaultFilter string `toml:"default_filter"`

	// Hooks
	HookCommand string `toml:"hook_command"`

	// Logging configuration
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// configFields returns the configurable field names for source tracking.
func configFields() []string {
	return []string{
		"store_backend",
		"data_dir",
		"storage_key",
		"sqlite_path",
		"redis_addr",
		"redis_password",
		"redis_db",
		"redis_prefix",
		"default_filter",
		"hook_command",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}
