package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/examsched/internal/cli/output"
	"github.com/leapstack-labs/examsched/internal/resolver"
)

// newExamInput returns the resolver input for the command's stdin: a
// readline session with history and course completion on a terminal, a
// plain line reader otherwise. The returned close function must be called.
func newExamInput(cmd *cobra.Command, cc *CommandContext) (resolver.Input, func(), error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && output.IsTerminal(f) {
		in, err := newReadlineInput(f, cmd.OutOrStdout(), cc)
		if err != nil {
			return nil, nil, err
		}
		return in, func() { _ = in.rl.Close() }, nil
	}
	return newLineInput(cmd.InOrStdin(), cmd.ErrOrStderr()), func() {}, nil
}

// lineInput reads one answer per line. Prompts go to the error writer so
// piped output stays machine readable.
type lineInput struct {
	r      *bufio.Reader
	prompt io.Writer
}

func newLineInput(r io.Reader, prompt io.Writer) *lineInput {
	return &lineInput{r: bufio.NewReader(r), prompt: prompt}
}

func (l *lineInput) Next(ctx context.Context, p resolver.Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	_, _ = fmt.Fprintln(l.prompt, p.Message)

	line, err := l.r.ReadString('\n')
	if errors.Is(err, io.EOF) {
		if line == "" {
			return "", resolver.ErrAbort
		}
	} else if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readlineInput prompts on a terminal. ^C and ^D abort.
type readlineInput struct {
	rl *readline.Instance
}

func newReadlineInput(stdin *os.File, stdout io.Writer, cc *CommandContext) (*readlineInput, error) {
	cfg := &readline.Config{
		Prompt:          "> ",
		AutoComplete:    newCourseCompleter(cc),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           stdin,
		Stdout:          stdout,
	}
	if cc.Cfg.StatePath != ":memory:" {
		cfg.HistoryFile = filepath.Join(filepath.Dir(cc.Cfg.StatePath), "exam_history")
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prompt: %w", err)
	}
	return &readlineInput{rl: rl}, nil
}

func (i *readlineInput) Next(ctx context.Context, p resolver.Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	_, _ = fmt.Fprintln(i.rl.Stdout(), p.Message)

	line, err := i.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", resolver.ErrAbort
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// newCourseCompleter completes course codes.
func newCourseCompleter(cc *CommandContext) *readline.PrefixCompleter {
	var names []string
	if cc.Engine != nil {
		for _, c := range cc.Engine.Courses() {
			if !slices.Contains(names, c.Course) {
				names = append(names, c.Course)
			}
		}
	}
	slices.Sort(names)

	items := make([]readline.PrefixCompleterInterface, 0, len(names))
	for _, name := range names {
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}
