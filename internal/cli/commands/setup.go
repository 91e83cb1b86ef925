// Package commands implements the examsched subcommands.
package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/examsched/internal/cli/config"
	"github.com/leapstack-labs/examsched/internal/cli/output"
	"github.com/leapstack-labs/examsched/internal/query"
	"github.com/leapstack-labs/examsched/internal/state"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Store    *state.SQLiteStore
	Engine   *query.Engine
	Renderer *output.Renderer
}

// NewCommandContext opens the state database and builds a query engine
// over the last seeded relations. Returns the context and a cleanup
// function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cc, cleanup, err := NewCommandContextWithStore(cmd)
	if err != nil {
		return nil, nil, err
	}

	ctx := cmd.Context()
	if _, err := cc.Store.LatestLoad(ctx); err != nil {
		cleanup()
		if errors.Is(err, state.ErrNoLoad) {
			return nil, nil, fmt.Errorf("no exam data loaded\nHint: run 'examsched seed' first")
		}
		return nil, nil, err
	}

	rs, err := state.LoadStore(ctx, cc.Store)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	cc.Engine = query.New(rs, query.Config{
		InstructorDelimiter: string(cc.Cfg.InstructorDelimiter),
		Logger:              cc.Logger,
	})
	return cc, cleanup, nil
}

// NewCommandContextWithStore opens and migrates the state database
// without loading the relations.
func NewCommandContextWithStore(cmd *cobra.Command) (*CommandContext, func(), error) {
	cc := NewCommandContextWithoutStore(cmd)

	store := state.NewSQLiteStore(cc.Logger)
	if err := store.Open(cc.Cfg.StatePath); err != nil {
		return nil, nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	cc.Store = store

	cleanup := func() {
		_ = store.Close()
	}
	return cc, cleanup, nil
}

// NewCommandContextWithoutStore creates a CommandContext without database
// access.
func NewCommandContextWithoutStore(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration, loading defaults when the
// command runs outside the root command.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	cfg, err := config.LoadConfig("", nil)
	if err != nil {
		return &config.Config{
			StatePath:           config.DefaultStateFile,
			OutputFormat:        config.DefaultOutput,
			InstructorDelimiter: ",",
		}
	}
	return cfg
}
