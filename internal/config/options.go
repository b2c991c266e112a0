package config

import (
	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist-go/internal/filter"
	"github.com/nibzard/todolist-go/internal/kvstore"
	"github.com/nibzard/todolist-go/internal/logging"
)

// KVOptions returns the store options for the configured backend.
func (c *Config) KVOptions(logger *log.Logger) kvstore.Options {
	return kvstore.Options{
		Backend:       c.StoreBackend,
		Dir:           c.DataDir,
		SQLitePath:    c.SQLitePath,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
		RedisPrefix:   c.RedisPrefix,
		Logger:        logger,
	}
}

// LogOptions returns the logger options.
func (c *Config) LogOptions() logging.Options {
	opts := logging.DefaultOptions()
	opts.Level = c.LogLevel
	opts.Format = c.LogFormat
	opts.ReportTimestamp = c.LogTimestamps
	opts.ReportCaller = c.LogCaller
	return opts
}

// FilterMode returns the initial filter mode, falling back to all.
func (c *Config) FilterMode() filter.Mode {
	if m, ok := filter.ParseMode(c.DefaultFilter); ok {
		return m
	}
	return filter.All
}
