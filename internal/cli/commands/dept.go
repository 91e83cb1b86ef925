package commands

import (
	"github.com/spf13/cobra"
)

// NewDeptCommand creates the dept command.
func NewDeptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dept <prefix>",
		Short: "List courses whose code starts with a department prefix",
		Long: `List the course of every course record whose code starts with prefix.
A course with several sections is listed once per section.`,
		Example: `  examsched dept CS
  examsched dept MATH --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			return runDept(cc, args[0])
		},
	}
	return cmd
}

func runDept(cc *CommandContext, prefix string) error {
	return cc.Renderer.List("Courses in "+prefix, "course", cc.Engine.DepartmentCourses(prefix))
}
