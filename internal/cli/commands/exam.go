package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/examsched/internal/cli/output"
	"github.com/leapstack-labs/examsched/internal/resolver"
)

// examResult is a resolution with its room, when known.
type examResult struct {
	resolver.Resolution `json:",inline" yaml:",inline"`
	Room                string `json:"room,omitempty" yaml:"room,omitempty"`
}

// NewExamCommand creates the exam command.
func NewExamCommand() *cobra.Command {
	var section string

	cmd := &cobra.Command{
		Use:   "exam [course]",
		Short: "Find when and where a course has its exam",
		Long: `Find the exam sitting of a course.

A course with several sections asks for a section; an unknown course or
section asks again. Press return on an empty line to give up.

Without a course argument, examsched keeps asking for courses until an
empty line is entered.`,
		Example: `  # Look up one course
  examsched exam CS101

  # Skip the section prompt
  examsched exam CS101 --section B

  # Interactive session
  examsched exam`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var course string
			if len(args) == 1 {
				course = args[0]
			}
			return runExam(cmd, course, section)
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "", "Section to use when the course has several sittings")

	return cmd
}

func runExam(cmd *cobra.Command, course, section string) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	in, closeInput, err := newExamInput(cmd, cc)
	if err != nil {
		return err
	}
	defer closeInput()

	ctx := cmd.Context()
	res := resolver.New(cc.Engine,
		resolver.WithMaxAttempts(cc.Cfg.MaxAttempts),
		resolver.WithLogger(cc.Logger))

	if course != "" {
		return examOnce(ctx, cc, res, course, section, in)
	}

	for {
		answer, err := in.Next(ctx, resolver.Prompt{
			State:   resolver.AwaitCourse,
			Message: "Enter a course code, or press return to quit.",
		})
		if errors.Is(err, resolver.ErrAbort) || (err == nil && answer == "") {
			return nil
		}
		if err != nil {
			return err
		}

		err = examOnce(ctx, cc, res, answer, "", in)
		if errors.Is(err, resolver.ErrTooManyAttempts) {
			cc.Renderer.Warning(err.Error())
			continue
		}
		if err != nil {
			return err
		}
	}
}

// examOnce resolves one course and renders the result.
func examOnce(ctx context.Context, cc *CommandContext, res *resolver.Resolver, course, section string, in resolver.Input) error {
	resolution, err := res.ResolveSection(ctx, course, section, in)
	if err != nil {
		return err
	}

	result := examResult{Resolution: resolution}
	if resolution.State == resolver.Resolved {
		if room, ok := cc.Engine.Room(resolution.ExamID); ok {
			result.Room = room
		}
	}
	return renderExam(cc.Renderer, result)
}

func renderExam(r *output.Renderer, res examResult) error {
	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		return r.Data(res)
	case output.ModeCSV:
		t := output.Table{Columns: []string{"state", "course", "section", "exam_id", "date", "time", "room"}}
		t.AddRow(res.State.String(), res.Course, res.Section, string(res.ExamID), res.Date, res.Time, res.Room)
		return r.Table(t)
	}

	if res.State != resolver.Resolved {
		r.Muted("No exam selected.")
		return nil
	}
	r.Println(res.Resolution.String())
	if res.Room != "" {
		r.KeyValue("Room", res.Room)
	}
	return nil
}
