package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/examsched/internal/query"
	"github.com/leapstack-labs/examsched/internal/relation"
	"github.com/leapstack-labs/examsched/internal/testutil"
	"github.com/leapstack-labs/examsched/pkg/core"
)

// countingQuerier records every relation access made by the resolver.
type countingQuerier struct {
	Querier
	courseTime  []string
	sectionTime [][2]string
}

func (c *countingQuerier) CourseTime(course string) []core.CourseTime {
	c.courseTime = append(c.courseTime, course)
	return c.Querier.CourseTime(course)
}

func (c *countingQuerier) CourseTimeSection(course, section string) ([]core.SectionTime, error) {
	c.sectionTime = append(c.sectionTime, [2]string{course, section})
	return c.Querier.CourseTimeSection(course, section)
}

// recordingInput replays answers and records the prompts it was shown.
type recordingInput struct {
	answers []string
	prompts []Prompt
}

func (r *recordingInput) Next(_ context.Context, p Prompt) (string, error) {
	r.prompts = append(r.prompts, p)
	if len(r.answers) == 0 {
		return "", ErrAbort
	}
	a := r.answers[0]
	r.answers = r.answers[1:]
	return a, nil
}

func newTestQuerier(t *testing.T, rel core.Relations) *countingQuerier {
	t.Helper()
	store, err := relation.FromRelations(rel)
	require.NoError(t, err)
	return &countingQuerier{Querier: query.New(store, query.Config{Logger: testutil.NewTestLogger(t)})}
}

func twoSections() core.Relations {
	return core.Relations{
		Courses: []core.CourseRecord{
			{ID: "1", Course: "CS101", Section: "A", Instructors: "Smith"},
			{ID: "2", Course: "CS101", Section: "B", Instructors: "Jones"},
			{ID: "3", Course: "ENG100", Section: "A", Instructors: "Brown"},
		},
		Times: []core.TimeRecord{
			{ID: "1", Date: "2024-04-10", Start: "09:00"},
			{ID: "2", Date: "2024-04-10", Start: "13:00"},
			{ID: "3", Date: "2024-04-12", Start: "09:00"},
		},
	}
}

func TestResolve_MultipleSections(t *testing.T) {
	q := newTestQuerier(t, twoSections())
	r := New(q, WithLogger(testutil.NewTestLogger(t)))
	in := &recordingInput{answers: []string{"A"}}

	res, err := r.Resolve(context.Background(), "CS101", in)
	require.NoError(t, err)

	require.Len(t, in.prompts, 1)
	assert.Equal(t, AwaitSection, in.prompts[0].State)
	assert.Equal(t, "CS101", in.prompts[0].Course)

	assert.Equal(t, Resolution{
		State:   Resolved,
		Course:  "CS101",
		Section: "A",
		ExamID:  "1",
		Date:    "2024-04-10",
		Time:    "09:00",
	}, res)
	assert.Equal(t, "Course CS101 section A has exam on 2024-04-10 at 09:00.", res.String())
}

func TestResolve_SingleSitting(t *testing.T) {
	q := newTestQuerier(t, twoSections())
	r := New(q)
	in := &recordingInput{}

	res, err := r.Resolve(context.Background(), "ENG100", in)
	require.NoError(t, err)
	assert.Empty(t, in.prompts, "a single sitting never prompts")
	assert.Equal(t, Resolved, res.State)
	assert.Empty(t, res.Section)
	assert.Equal(t, "Course ENG100 has exam on 2024-04-12 at 09:00.", res.String())
}

func TestResolve_UnknownCourseAbort(t *testing.T) {
	q := newTestQuerier(t, twoSections())
	r := New(q)

	res, err := r.Resolve(context.Background(), "MATH200", Answers(""))
	require.NoError(t, err, "abort is a normal terminal state")
	assert.Equal(t, Aborted, res.State)
	assert.Equal(t, []string{"MATH200"}, q.courseTime, "no relation access after the abort")
	assert.Empty(t, q.sectionTime)
}

func TestResolve_AbortSentinelError(t *testing.T) {
	q := newTestQuerier(t, twoSections())
	r := New(q)
	in := InputFunc(func(context.Context, Prompt) (string, error) { return "", ErrAbort })

	res, err := r.Resolve(context.Background(), "CS101", in)
	require.NoError(t, err)
	assert.Equal(t, Aborted, res.State)
	assert.Empty(t, q.sectionTime)
}

func TestResolve_Retries(t *testing.T) {
	tests := []struct {
		name        string
		course      string
		answers     []string
		want        Resolution
		wantPrompts []State
	}{
		{
			name:        "course retry then resolve",
			course:      "CS10",
			answers:     []string{"ENG100"},
			want:        Resolution{State: Resolved, Course: "ENG100", ExamID: "3", Date: "2024-04-12", Time: "09:00"},
			wantPrompts: []State{AwaitCourseRetry},
		},
		{
			name:        "section retry then resolve",
			course:      "CS101",
			answers:     []string{"C", "B"},
			want:        Resolution{State: Resolved, Course: "CS101", Section: "B", ExamID: "2", Date: "2024-04-10", Time: "13:00"},
			wantPrompts: []State{AwaitSection, AwaitSectionRetry},
		},
		{
			name:        "course retry into sections",
			course:      "cs101",
			answers:     []string{"CS101", "B"},
			want:        Resolution{State: Resolved, Course: "CS101", Section: "B", ExamID: "2", Date: "2024-04-10", Time: "13:00"},
			wantPrompts: []State{AwaitCourseRetry, AwaitSection},
		},
		{
			name:        "abort at section retry",
			course:      "CS101",
			answers:     []string{"Z", ""},
			want:        Resolution{State: Aborted, Course: "CS101"},
			wantPrompts: []State{AwaitSection, AwaitSectionRetry},
		},
		{
			name:        "empty course",
			course:      "",
			want:        Resolution{State: Aborted},
			wantPrompts: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(newTestQuerier(t, twoSections()))
			in := &recordingInput{answers: tt.answers}

			res, err := r.Resolve(context.Background(), tt.course, in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res)

			var states []State
			for _, p := range in.prompts {
				states = append(states, p.State)
			}
			assert.Equal(t, tt.wantPrompts, states)
		})
	}
}

func TestResolveSection(t *testing.T) {
	q := newTestQuerier(t, twoSections())
	r := New(q)
	in := &recordingInput{}

	res, err := r.ResolveSection(context.Background(), "CS101", "B", in)
	require.NoError(t, err)
	assert.Empty(t, in.prompts)
	assert.Equal(t, "B", res.Section)
	assert.Equal(t, "13:00", res.Time)

	// the section is ignored when the course has one sitting
	res, err = r.ResolveSection(context.Background(), "ENG100", "Q", in)
	require.NoError(t, err)
	assert.Equal(t, Resolved, res.State)
	assert.Empty(t, res.Section)
}

func TestResolve_IntegrityViolation(t *testing.T) {
	q := newTestQuerier(t, core.Relations{
		Courses: []core.CourseRecord{
			{ID: "1", Course: "CS101", Section: "A"},
			{ID: "2", Course: "CS101", Section: "A"},
		},
		Times: []core.TimeRecord{
			{ID: "1", Date: "2024-04-10", Start: "09:00"},
			{ID: "2", Date: "2024-04-11", Start: "09:00"},
		},
	})

	_, err := New(q).Resolve(context.Background(), "CS101", Answers("A"))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrIntegrityViolation)
}

func TestResolve_MaxAttempts(t *testing.T) {
	q := newTestQuerier(t, twoSections())
	r := New(q, WithMaxAttempts(2))

	res, err := r.Resolve(context.Background(), "X", Answers("Y", "Z", "ENG100"))
	require.ErrorIs(t, err, ErrTooManyAttempts)
	assert.Equal(t, Aborted, res.State)
	assert.Equal(t, []string{"X", "Y", "Z"}, q.courseTime)
}

func TestResolve_InputFailure(t *testing.T) {
	q := newTestQuerier(t, twoSections())
	boom := errors.New("tty closed")
	in := InputFunc(func(context.Context, Prompt) (string, error) { return "", boom })

	res, err := New(q).Resolve(context.Background(), "CS101", in)
	require.ErrorIs(t, err, boom)
	assert.NotEqual(t, Aborted, res.State)
}

func TestResolve_ContextCanceled(t *testing.T) {
	q := newTestQuerier(t, twoSections())
	ctx, cancel := context.WithCancel(context.Background())
	in := InputFunc(func(context.Context, Prompt) (string, error) {
		cancel()
		return "Z", nil
	})

	_, err := New(q).Resolve(ctx, "CS101", in)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, q.sectionTime, "no lookups after cancellation")
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "await_section", AwaitSection.String())
	assert.Equal(t, "aborted", Aborted.String())
	assert.Equal(t, "aborted", Resolution{State: Aborted}.String())

	b, err := json.Marshal(Resolution{State: Resolved, Course: "ENG100"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"resolved","course":"ENG100"}`, string(b))
}
