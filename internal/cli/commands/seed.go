package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/examsched/internal/cli/output"
	"github.com/leapstack-labs/examsched/internal/ingest"
	"github.com/leapstack-labs/examsched/internal/relation"
	"github.com/leapstack-labs/examsched/internal/state"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the exam schedule from CSV files",
		Long: `Load locations.csv, courses.csv and time.csv from the data directory
into the state database, replacing any relations loaded before.

Rows with the wrong number of fields fail the load and report their file
and line. Set skip_malformed: true in examsched.yaml to skip them with a
warning instead.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json, yaml`,
		Example: `  # Load the schedule from the current directory
  examsched seed

  # Load from another directory
  examsched seed --data-dir ./winter2024

  # Load and report as JSON
  examsched seed --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd)
		},
	}

	return cmd
}

func runSeed(cmd *cobra.Command) error {
	cc, cleanup, err := NewCommandContextWithStore(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := cc.Cfg.ValidateSources(); err != nil {
		return err
	}

	ctx := cmd.Context()
	rel, err := ingest.Load(ctx, cc.Cfg.Sources(), ingest.Options{
		SkipMalformed: cc.Cfg.SkipMalformed,
		Logger:        cc.Logger,
	})
	if err != nil {
		return err
	}

	// reject duplicate and empty ids before touching the previous load
	if _, err := relation.FromRelations(rel); err != nil {
		return err
	}

	load, err := cc.Store.ReplaceRelations(ctx, rel, cc.Cfg.DataDir)
	if err != nil {
		return err
	}

	return renderLoad(cc.Renderer, load, "Seeded")
}

// renderLoad writes a load summary in the renderer's mode.
func renderLoad(r *output.Renderer, load *state.Load, title string) error {
	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		return r.Data(load)
	case output.ModeCSV:
		t := output.Table{Columns: []string{"relation", "rows"}}
		t.AddRow("Locations", fmt.Sprintf("%d", load.Locations))
		t.AddRow("Courses", fmt.Sprintf("%d", load.Courses))
		t.AddRow("Time", fmt.Sprintf("%d", load.Times))
		return r.Table(t)
	case output.ModeText:
		r.Success(fmt.Sprintf("%s exam schedule from %s", title, load.Source))
		r.StatusLine("Locations", "success", fmt.Sprintf("%d rows", load.Locations))
		r.StatusLine("Courses", "success", fmt.Sprintf("%d rows", load.Courses))
		r.StatusLine("Time", "success", fmt.Sprintf("%d rows", load.Times))
		r.Println("")
		r.Muted("Load " + load.ID)
		return nil
	default:
		r.Header(1, title)
		r.KeyValue("Source", load.Source)
		r.KeyValue("Locations", fmt.Sprintf("%d", load.Locations))
		r.KeyValue("Courses", fmt.Sprintf("%d", load.Courses))
		r.KeyValue("Time", fmt.Sprintf("%d", load.Times))
		r.KeyValue("Load", load.ID)
		r.KeyValue("Loaded At", load.LoadedAt.Format("2006-01-02 15:04:05 MST"))
		return nil
	}
}
