package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/examsched/internal/cli/output"
)

// NewRoomsCommand creates the rooms command.
func NewRoomsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rooms <course>",
		Short:   "List the exam room of each section of a course",
		Example: `  examsched rooms CS101`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			return runRooms(cc, args[0])
		},
	}
	return cmd
}

func runRooms(cc *CommandContext, course string) error {
	t := output.Table{
		Title:   "Rooms for " + course,
		Columns: []string{"course", "section", "room"},
	}
	for _, loc := range cc.Engine.LocationsForCourse(course) {
		t.AddRow(loc.Course, loc.Section, loc.Room)
	}
	return cc.Renderer.Table(t)
}
