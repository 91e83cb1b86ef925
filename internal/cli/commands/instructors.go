package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/examsched/internal/cli/output"
)

// NewInstructorsCommand creates the instructors command.
func NewInstructorsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instructors <course>",
		Short: "List the instructors of each section of a course",
		Example: `  examsched instructors CS101
  examsched instructors CS101 --output csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			return runInstructors(cc, args[0])
		},
	}
	return cmd
}

func runInstructors(cc *CommandContext, course string) error {
	t := output.Table{
		Title:   "Instructors of " + course,
		Columns: []string{"course", "section", "instructors", "count"},
	}
	for _, ci := range cc.Engine.CourseInstructors(course) {
		n := len(cc.Engine.Instructors(ci.Instructors))
		t.AddRow(ci.Course, ci.Section, ci.Instructors, strconv.Itoa(n))
	}
	return cc.Renderer.Table(t)
}
