package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nibzard/todolist-go/internal/filter"
	"github.com/nibzard/todolist-go/internal/kvstore"
	"github.com/nibzard/todolist-go/internal/logging"
)

// Validate reports every invalid setting in cfg.
func Validate(cfg *Config) error {
	var errs []error
	if !kvstore.IsBackend(cfg.StoreBackend) {
		errs = append(errs, fmt.Errorf("store_backend %q: expected one of %s", cfg.StoreBackend, strings.Join(kvstore.Backends(), ", ")))
	}
	if strings.TrimSpace(cfg.StorageKey) == "" {
		errs = append(errs, errors.New("storage_key must not be empty"))
	}
	if _, ok := filter.ParseMode(cfg.DefaultFilter); !ok {
		errs = append(errs, fmt.Errorf("default_filter %q: expected all, active or completed", cfg.DefaultFilter))
	}
	if cfg.RedisDB < 0 {
		errs = append(errs, fmt.Errorf("redis_db %d: must not be negative", cfg.RedisDB))
	}
	if cfg.StoreBackend == kvstore.BackendRedis && cfg.RedisAddr == "" {
		errs = append(errs, errors.New("redis_addr is required for the redis backend"))
	}
	if !logging.ValidLevel(cfg.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level %q: expected debug, info, warn or error", cfg.LogLevel))
	}
	if !logging.ValidFormat(cfg.LogFormat) {
		errs = append(errs, fmt.Errorf("log_format %q: expected text, json or logfmt", cfg.LogFormat))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
