package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/examsched/internal/cli/output"
	"github.com/leapstack-labs/examsched/pkg/core"
)

// NewConflictsCommand creates the conflicts command.
func NewConflictsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conflicts <course>",
		Short: "List courses with an exam in the same slot as a course",
		Long: `List the other courses that have an exam on the same date and start
time as any sitting of course. The course itself is never listed.`,
		Example: `  examsched conflicts CS101`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			return runConflicts(cc, args[0])
		},
	}
	return cmd
}

func runConflicts(cc *CommandContext, course string) error {
	return cc.Renderer.List("Conflicts with "+course, "course", cc.Engine.DetectConflicts(course))
}

// NewCollisionsCommand creates the collisions command.
func NewCollisionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collisions",
		Short: "List every slot shared by more than one exam",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			return runCollisions(cc)
		},
	}
	return cmd
}

func runCollisions(cc *CommandContext) error {
	groups := cc.Engine.CollisionGroups()

	switch cc.Renderer.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		if groups == nil {
			groups = []core.CollisionGroup{}
		}
		return cc.Renderer.Data(groups)
	}

	t := output.Table{
		Title:   "Exam collisions",
		Columns: []string{"date", "start", "exam_id", "course", "section"},
	}
	for _, g := range groups {
		for _, e := range g.Exams {
			t.AddRow(g.Date, g.Start, string(e.ExamID), e.Course, e.Section)
		}
	}
	return cc.Renderer.Table(t)
}
