package ingest

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/examsched/internal/testutil"
	"github.com/leapstack-labs/examsched/pkg/core"
)

func TestLoad(t *testing.T) {
	files := testutil.WriteSources(t)

	rel, err := Load(context.Background(), Sources{
		Locations: files.Locations,
		Courses:   files.Courses,
		Time:      files.Time,
	}, Options{Logger: testutil.NewTestLogger(t)})
	require.NoError(t, err)

	require.Len(t, rel.Locations, 5)
	require.Len(t, rel.Courses, 5)
	require.Len(t, rel.Times, 5)

	assert.Equal(t, core.LocationRecord{ID: "3", Room: "EX100, Hall B"}, rel.Locations[2])
	assert.Equal(t, core.CourseRecord{ID: "2", Course: "CS101", Section: "B", Instructors: "Jones, Lee"}, rel.Courses[1])
	assert.Equal(t, core.TimeRecord{ID: "5", Date: "2024-04-13", Start: "14:00", End: "16:30", Duration: "2.5"}, rel.Times[4])
}

func TestLoad_MissingFile(t *testing.T) {
	files := testutil.WriteSources(t)

	_, err := Load(context.Background(), Sources{
		Locations: files.Locations,
		Courses:   filepath.Join(files.Dir, "missing.csv"),
		Time:      files.Time,
	}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.csv")
}

func TestParseLocations(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []core.LocationRecord
	}{
		{
			name:  "header skipped",
			input: "ID,Room\n1,BA1130\n",
			want:  []core.LocationRecord{{ID: "1", Room: "BA1130"}},
		},
		{
			name:  "no header",
			input: "1,BA1130\r\n2,BA1160\r\n",
			want:  []core.LocationRecord{{ID: "1", Room: "BA1130"}, {ID: "2", Room: "BA1160"}},
		},
		{
			name:  "room keeps commas and quotes",
			input: "1,\"Hall, North\", Wing 2\n",
			want:  []core.LocationRecord{{ID: "1", Room: "\"Hall, North\", Wing 2"}},
		},
		{
			name:  "blank lines ignored",
			input: "\n1,BA1130\n\n",
			want:  []core.LocationRecord{{ID: "1", Room: "BA1130"}},
		},
		{
			name:  "header only on first row",
			input: "1,BA1130\nID,Room\n",
			want:  []core.LocationRecord{{ID: "1", Room: "BA1130"}, {ID: "ID", Room: "Room"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocations(strings.NewReader(tt.input), "locations.csv", Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCourses_Malformed(t *testing.T) {
	input := "ID,Course,Section,Name\n1,CS101,A,Smith\n2,CS101,B,Jones,Lee\n3,CS202,A,Gries\n"

	_, err := ParseCourses(strings.NewReader(input), "courses.csv", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMalformedRecord)

	var rerr *core.RecordError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, core.RelationCourses, rerr.Relation)
	assert.Equal(t, 3, rerr.Line)
	assert.Equal(t, core.ExamID("2"), rerr.ID)
	assert.Contains(t, err.Error(), "courses.csv:3")

	rows, err := ParseCourses(strings.NewReader(input), "courses.csv", Options{
		SkipMalformed: true,
		Logger:        testutil.NewTestLogger(t),
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, core.ExamID("1"), rows[0].ID)
	assert.Equal(t, core.ExamID("3"), rows[1].ID)
}

func TestParseCourses_BadQuote(t *testing.T) {
	input := "1,CS101,A,Smith\n2,CS1\"01,B,Jones\n"

	_, err := ParseCourses(strings.NewReader(input), "courses.csv", Options{})
	require.ErrorIs(t, err, core.ErrMalformedRecord)
}

func TestParseTimes_LineEndings(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "bare CR", input: "ID,Date,Start,End,Duration\r1,2024-04-10,09:00,12:00,3\r2,2024-04-10,13:00,16:00,3"},
		{name: "CRLF", input: "ID,Date,Start,End,Duration\r\n1,2024-04-10,09:00,12:00,3\r\n2,2024-04-10,13:00,16:00,3\r\n"},
		{name: "LF", input: "ID,Date,Start,End,Duration\n1,2024-04-10,09:00,12:00,3\n2,2024-04-10,13:00,16:00,3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ParseTimes(strings.NewReader(tt.input), "time.csv", Options{})
			require.NoError(t, err)
			require.Len(t, rows, 2)
			assert.Equal(t, core.TimeRecord{ID: "2", Date: "2024-04-10", Start: "13:00", End: "16:00", Duration: "3"}, rows[1])
		})
	}
}

func TestParseTimes_ShortRow(t *testing.T) {
	_, err := ParseTimes(strings.NewReader("1,2024-04-10,09:00\r"), "time.csv", Options{})
	require.ErrorIs(t, err, core.ErrMalformedRecord)
	assert.Contains(t, err.Error(), "expected 5 fields, got 3")
}
