package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/examsched/internal/cli/output"
)

// relations accepted by the show command.
var showRelations = []string{"courses", "time", "locations"}

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <courses|time|locations>",
		Short: "Print a whole relation",
		Long: `Print every row of one relation in load order.

  courses    ID, course, section and instructors
  time       ID, date, start, end and duration
  locations  ID and room`,
		Example: `  examsched show courses
  examsched show time --output csv`,
		ValidArgs: showRelations,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			return runShow(cc, args[0])
		},
	}
	return cmd
}

func runShow(cc *CommandContext, name string) error {
	t := output.Table{Title: output.Title(name)}

	switch name {
	case "courses":
		t.Columns = []string{"id", "course", "section", "instructors"}
		for _, c := range cc.Engine.Courses() {
			t.AddRow(string(c.ID), c.Course, c.Section, c.Instructors)
		}
	case "time":
		t.Columns = []string{"id", "date", "start", "end", "duration"}
		for _, tr := range cc.Engine.Times() {
			t.AddRow(string(tr.ID), tr.Date, tr.Start, tr.End, tr.Duration)
		}
	case "locations":
		t.Columns = []string{"id", "room"}
		for _, l := range cc.Engine.Locations() {
			t.AddRow(string(l.ID), l.Room)
		}
	default:
		return fmt.Errorf("unknown relation %q (valid: %v)", name, showRelations)
	}

	return cc.Renderer.Table(t)
}
