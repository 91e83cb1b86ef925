// Package resolver narrows a course reference to exactly one exam sitting.
//
// Resolution is a finite-state machine driven by an injected Input. A
// course with one sitting resolves immediately; a course with several
// sections asks for a section; unknown courses or sections ask for a
// replacement. Empty input (or ErrAbort) ends the session cleanly in the
// Aborted state.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/examsched/pkg/core"
)

// State is a resolver state.
type State int

// Resolver states.
const (
	AwaitCourse State = iota
	AwaitSection
	AwaitCourseRetry
	AwaitSectionRetry
	Resolved
	Aborted
)

func (s State) String() string {
	switch s {
	case AwaitCourse:
		return "await_course"
	case AwaitSection:
		return "await_section"
	case AwaitCourseRetry:
		return "await_course_retry"
	case AwaitSectionRetry:
		return "await_section_retry"
	case Resolved:
		return "resolved"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// DefaultMaxAttempts bounds the number of prompts in one resolution.
const DefaultMaxAttempts = 5

var (
	// ErrAbort may be returned by an Input to end the session. It is
	// equivalent to empty input.
	ErrAbort = errors.New("input aborted")

	// ErrTooManyAttempts is returned with an Aborted resolution when the
	// prompt budget is exhausted.
	ErrTooManyAttempts = errors.New("too many attempts")
)

// Prompt describes what the resolver is asking for.
type Prompt struct {
	State   State
	Course  string
	Message string
}

// Input supplies answers to prompts.
type Input interface {
	Next(ctx context.Context, p Prompt) (string, error)
}

// InputFunc adapts a function to Input.
type InputFunc func(ctx context.Context, p Prompt) (string, error)

// Next calls f.
func (f InputFunc) Next(ctx context.Context, p Prompt) (string, error) { return f(ctx, p) }

// Answers returns an Input replaying answers in order, then aborting.
func Answers(answers ...string) Input {
	i := 0
	return InputFunc(func(context.Context, Prompt) (string, error) {
		if i >= len(answers) {
			return "", ErrAbort
		}
		a := answers[i]
		i++
		return a, nil
	})
}

// Querier is the part of the query engine the resolver depends on.
type Querier interface {
	CourseTime(course string) []core.CourseTime
	CourseTimeSection(course, section string) ([]core.SectionTime, error)
}

// Resolution is the terminal result of a resolution. Section is empty
// when the course has a single sitting.
type Resolution struct {
	State   State       `json:"state" yaml:"state"`
	Course  string      `json:"course" yaml:"course"`
	Section string      `json:"section,omitempty" yaml:"section,omitempty"`
	ExamID  core.ExamID `json:"exam_id,omitempty" yaml:"exam_id,omitempty"`
	Date    string      `json:"date,omitempty" yaml:"date,omitempty"`
	Time    string      `json:"time,omitempty" yaml:"time,omitempty"`
}

// String formats a resolved exam as a sentence.
func (r Resolution) String() string {
	if r.State != Resolved {
		return r.State.String()
	}
	if r.Section == "" {
		return fmt.Sprintf("Course %s has exam on %s at %s.", r.Course, r.Date, r.Time)
	}
	return fmt.Sprintf("Course %s section %s has exam on %s at %s.", r.Course, r.Section, r.Date, r.Time)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxAttempts bounds the number of prompts; n <= 0 means unbounded.
func WithMaxAttempts(n int) Option {
	return func(r *Resolver) { r.maxAttempts = n }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// Resolver runs the disambiguation state machine.
type Resolver struct {
	q           Querier
	maxAttempts int
	logger      *slog.Logger
}

// New creates a resolver over q.
func New(q Querier, opts ...Option) *Resolver {
	r := &Resolver{
		q:           q,
		maxAttempts: DefaultMaxAttempts,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve resolves course, prompting in for a section or a replacement
// course as needed.
func (r *Resolver) Resolve(ctx context.Context, course string, in Input) (Resolution, error) {
	return r.run(ctx, course, "", in)
}

// ResolveSection is Resolve with a section already chosen. The section is
// only consulted when the course has more than one sitting.
func (r *Resolver) ResolveSection(ctx context.Context, course, section string, in Input) (Resolution, error) {
	return r.run(ctx, course, section, in)
}

func (r *Resolver) run(ctx context.Context, course, section string, in Input) (Resolution, error) {
	if course == "" {
		return Resolution{State: Aborted}, nil
	}
	m := machine{r: r, in: in, course: course, section: section, state: AwaitCourse}
	return m.loop(ctx)
}

// machine holds the state of a single resolution.
type machine struct {
	r        *Resolver
	in       Input
	state    State
	course   string
	section  string
	attempts int
}

func (m *machine) loop(ctx context.Context) (Resolution, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Resolution{}, err
		}
		m.r.logger.Debug("resolver step", "state", m.state, "course", m.course, "section", m.section)

		switch m.state {
		case AwaitCourse:
			rows := m.r.q.CourseTime(m.course)
			switch len(rows) {
			case 0:
				m.state = AwaitCourseRetry
			case 1:
				return Resolution{
					State:  Resolved,
					Course: rows[0].Course,
					ExamID: rows[0].ExamID,
					Date:   rows[0].Date,
					Time:   rows[0].Start,
				}, nil
			default:
				m.state = AwaitSection
			}

		case AwaitSection:
			if m.section == "" {
				answer, done, err := m.ask(ctx, AwaitSection,
					fmt.Sprintf("There are multiple sections of course %s. What is your section?", m.course))
				if done {
					return m.abort(err)
				}
				m.section = answer
				continue
			}

			rows, err := m.r.q.CourseTimeSection(m.course, m.section)
			if err != nil {
				return Resolution{}, fmt.Errorf("failed to resolve %s section %s: %w", m.course, m.section, err)
			}
			if len(rows) == 0 {
				m.state = AwaitSectionRetry
				continue
			}
			return Resolution{
				State:   Resolved,
				Course:  rows[0].Course,
				Section: m.section,
				ExamID:  rows[0].ExamID,
				Date:    rows[0].Date,
				Time:    rows[0].Start,
			}, nil

		case AwaitCourseRetry:
			answer, done, err := m.ask(ctx, AwaitCourseRetry,
				fmt.Sprintf("%q is not a valid course code, please re-enter or return to quit.", m.course))
			if done {
				return m.abort(err)
			}
			m.course, m.section = answer, ""
			m.state = AwaitCourse

		case AwaitSectionRetry:
			answer, done, err := m.ask(ctx, AwaitSectionRetry,
				fmt.Sprintf("%q is not a valid section of %s, please re-enter or return to quit.", m.section, m.course))
			if done {
				return m.abort(err)
			}
			m.section = answer
			m.state = AwaitSection

		default:
			return Resolution{}, fmt.Errorf("resolver reached unexpected state %s", m.state)
		}
	}
}

// abort ends the session. A nil err or an exhausted budget is a clean
// Aborted result; any other error is returned as is.
func (m *machine) abort(err error) (Resolution, error) {
	if err != nil && !errors.Is(err, ErrTooManyAttempts) {
		return Resolution{}, err
	}
	m.state = Aborted
	return Resolution{State: Aborted, Course: m.course}, err
}

// ask prompts for input. done is true when the answer is the abort
// sentinel, the attempt budget is spent or the input failed.
func (m *machine) ask(ctx context.Context, state State, msg string) (string, bool, error) {
	if m.r.maxAttempts > 0 && m.attempts >= m.r.maxAttempts {
		m.r.logger.Warn("resolver gave up", "course", m.course, "attempts", m.attempts)
		return "", true, ErrTooManyAttempts
	}
	m.attempts++

	answer, err := m.in.Next(ctx, Prompt{State: state, Course: m.course, Message: msg})
	if errors.Is(err, ErrAbort) {
		return "", true, nil
	}
	if err != nil {
		return "", true, fmt.Errorf("failed to read input: %w", err)
	}
	if answer == "" {
		return "", true, nil
	}
	return answer, false, nil
}
