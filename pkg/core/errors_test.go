package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntegrityError(t *testing.T) {
	err := fmt.Errorf("lookup: %w", &IntegrityError{
		Op: "course time section", Course: "CS101", Section: "A", Rows: 2,
	})

	assert.True(t, errors.Is(err, ErrIntegrityViolation))
	assert.False(t, errors.Is(err, ErrMalformedRecord))

	var ie *IntegrityError
	assert.True(t, errors.As(err, &ie))
	assert.Equal(t, 2, ie.Rows)
	assert.Contains(t, err.Error(), `section "A" of "CS101" matched 2 exams`)
}

func TestRecordError(t *testing.T) {
	tests := []struct {
		name string
		err  *RecordError
		want string
	}{
		{
			name: "with source and line",
			err:  &RecordError{Relation: RelationCourses, Source: "courses.csv", Line: 4, Reason: "expected 4 fields, got 3"},
			want: "courses.csv:4: malformed record: expected 4 fields, got 3",
		},
		{
			name: "relation only with id",
			err:  &RecordError{Relation: RelationTime, ID: "17", Reason: "duplicate exam id"},
			want: `Time: malformed record (id "17"): duplicate exam id`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrMalformedRecord)
		})
	}
}

func TestCollisionGroup_Courses(t *testing.T) {
	g := CollisionGroup{
		Date: "2024-04-10", Start: "09:00",
		Exams: []ExamRef{
			{ExamID: "3", Course: "MATH200"},
			{ExamID: "1", Course: "CS101", Section: "A"},
			{ExamID: "2", Course: "CS101", Section: "B"},
		},
	}
	assert.Equal(t, []string{"CS101", "MATH200"}, g.Courses())
}
