package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/examsched/internal/cli/output"
)

// NewMultiCommand creates the multi command.
func NewMultiCommand() *cobra.Command {
	var count bool

	cmd := &cobra.Command{
		Use:   "multi",
		Short: "List courses taught by more than one instructor",
		Example: `  examsched multi
  examsched multi --count`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			return runMulti(cc, count)
		},
	}

	cmd.Flags().BoolVarP(&count, "count", "c", false, "Show the number of instructors instead of their names")

	return cmd
}

func runMulti(cc *CommandContext, count bool) error {
	if count {
		t := output.Table{Title: "Instructor counts", Columns: []string{"course", "count"}}
		for _, ic := range cc.Engine.InstructorCounts() {
			t.AddRow(ic.Course, strconv.Itoa(ic.Count))
		}
		return cc.Renderer.Table(t)
	}

	t := output.Table{Title: "Multi-instructor courses", Columns: []string{"course", "instructors"}}
	for _, m := range cc.Engine.MultiInstructorCourses() {
		t.AddRow(m.Course, m.Instructors)
	}
	return cc.Renderer.Table(t)
}
