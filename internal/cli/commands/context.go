// Package commands implements the dmaic subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/greenbelt-labs/dmaic/internal/cli/output"
	"github.com/greenbelt-labs/dmaic/internal/config"
	"github.com/greenbelt-labs/dmaic/internal/store"
)

type configKey struct{}

// WithConfig stores the loaded config in the context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// getConfig retrieves the config placed in the context by the root command.
func getConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		StorePath:    config.DefaultStoreFile,
		OutputFormat: config.DefaultOutput,
	}
}

// CommandContext bundles the dependencies every store-backed command needs.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Store    *store.SQLiteStore
}

// NewCommandContext loads config, opens the store, and builds the renderer.
// The returned cleanup closes the store.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig(cmd.Context())
	logger := newLogger(cfg.Verbose)

	if dir := filepath.Dir(cfg.StorePath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}

	ctx := &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: newRenderer(cmd, cfg),
		Store:    st,
	}
	cleanup := func() { _ = st.Close() }
	return ctx, cleanup, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newRenderer(cmd *cobra.Command, cfg *config.Config) *output.Renderer {
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
}
