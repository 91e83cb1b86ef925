package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/examsched/internal/cli/config"
	"github.com/leapstack-labs/examsched/internal/cli/output"
	"github.com/leapstack-labs/examsched/internal/state"
)

// statusOutput is the machine-readable status report.
type statusOutput struct {
	ConfigFile    string      `json:"config_file,omitempty" yaml:"config_file,omitempty"`
	DataDir       string      `json:"data_dir" yaml:"data_dir"`
	StatePath     string      `json:"state_path" yaml:"state_path"`
	SchemaVersion int64       `json:"schema_version" yaml:"schema_version"`
	LastLoad      *state.Load `json:"last_load,omitempty" yaml:"last_load,omitempty"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show configuration and the last load",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup, err := NewCommandContextWithStore(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			return runStatus(cmd, cc)
		},
	}
	return cmd
}

func runStatus(cmd *cobra.Command, cc *CommandContext) error {
	version, err := cc.Store.SchemaVersion()
	if err != nil {
		return err
	}

	st := statusOutput{
		ConfigFile:    config.GetConfigFileUsed(),
		DataDir:       cc.Cfg.DataDir,
		StatePath:     cc.Cfg.StatePath,
		SchemaVersion: version,
	}
	load, err := cc.Store.LatestLoad(cmd.Context())
	switch {
	case err == nil:
		st.LastLoad = load
	case !errors.Is(err, state.ErrNoLoad):
		return err
	}

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		return r.Data(st)
	}

	r.Header(1, "Status")
	if st.ConfigFile != "" {
		r.KeyValue("Config", st.ConfigFile)
	}
	r.KeyValue("Data Dir", st.DataDir)
	r.KeyValue("State", st.StatePath)
	r.KeyValue("Schema Version", fmt.Sprintf("%d", st.SchemaVersion))
	r.Println("")

	if load == nil {
		r.Warning("no exam data loaded, run 'examsched seed'")
		return nil
	}
	return renderLoad(r, load, "Last load")
}
