package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist-go/internal/config"
	"github.com/nibzard/todolist-go/internal/hooks"
	"github.com/nibzard/todolist-go/internal/kvstore"
	"github.com/nibzard/todolist-go/internal/storage"
	"github.com/nibzard/todolist-go/internal/tasks"
)

type appOptions struct {
	logger  *log.Logger
	hookOut io.Writer
	hookErr io.Writer
}

// app wires the configured backend, storage adapter, and task store.
type app struct {
	kv      kvstore.Store
	adapter *storage.Adapter
	store   *tasks.Store
	logger  *log.Logger
}

func openApp(ctx context.Context, cfg *config.Config, opts appOptions) (*app, error) {
	logger := opts.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	kv, err := kvstore.Open(ctx, cfg.KVOptions(logger))
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.StoreBackend, err)
	}

	adapter := storage.NewAdapter(kv,
		storage.WithKey(cfg.StorageKey),
		storage.WithLogger(logger),
	)
	store := tasks.Open(ctx, adapter, tasks.WithLogger(logger))

	if cfg.HookCommand != "" {
		store.Subscribe(hooks.Observer(ctx, hooks.Options{
			Command: cfg.HookCommand,
			Key:     adapter.Key(),
			WorkDir: cfg.ProjectRoot,
			Stdout:  opts.hookOut,
			Stderr:  opts.hookErr,
		}, logger))
	}

	return &app{kv: kv, adapter: adapter, store: store, logger: logger}, nil
}

// resolve maps a full id or unique id prefix to a task id.
func (a *app) resolve(ref string) (string, error) {
	id, err := a.store.Resolve(ref)
	switch {
	case errors.Is(err, tasks.ErrNotFound):
		return "", fmt.Errorf("no task matches %q", ref)
	case errors.Is(err, tasks.ErrAmbiguousID):
		return "", fmt.Errorf("%q matches more than one task; use a longer id", ref)
	case err != nil:
		return "", err
	}
	return id, nil
}

func (a *app) Close() error {
	return a.kv.Close()
}
