// Package query answers exam schedule questions over the relation store.
// Every operation is a pure function of the loaded relations: unknown
// courses yield empty results, never errors.
package query

import (
	"log/slog"

	"github.com/leapstack-labs/examsched/internal/instructor"
	"github.com/leapstack-labs/examsched/internal/relation"
	"github.com/leapstack-labs/examsched/pkg/core"
)

// Engine composes the Locations, Courses and Time relations.
type Engine struct {
	store       *relation.Store
	instructors instructor.Parser
	logger      *slog.Logger
}

// Config holds engine configuration.
type Config struct {
	// InstructorDelimiter separates co-instructors (default ",").
	InstructorDelimiter string
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine over store.
func New(store *relation.Store, cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		store:       store,
		instructors: instructor.New(cfg.InstructorDelimiter),
		logger:      logger,
	}
}

// CourseInstructors returns the section and instructor field of every
// exam of course.
func (e *Engine) CourseInstructors(course string) []core.CourseInstructors {
	var out []core.CourseInstructors
	for _, c := range e.store.Courses.Lookup(relation.Equals(relation.CourseName, course)) {
		out = append(out, core.CourseInstructors{
			Course:      c.Course,
			Section:     c.Section,
			Instructors: c.Instructors,
		})
	}
	return out
}

// CourseTime returns the date and start time of every section of course.
// More than one row means the course has several sittings.
func (e *Engine) CourseTime(course string) []core.CourseTime {
	pairs := relation.JoinWhere(e.store.Time, e.store.Courses, func(_ core.TimeRecord, c core.CourseRecord) bool {
		return c.Course == course
	})

	var out []core.CourseTime
	for _, p := range pairs {
		out = append(out, core.CourseTime{
			Course:  p.Right.Course,
			Date:    p.Left.Date,
			Start:   p.Left.Start,
			ExamID:  p.Left.ID,
			Section: p.Right.Section,
		})
	}
	e.logger.Debug("course time", "course", course, "rows", len(out))
	return out
}

// CourseTimeSection returns the sitting of one section of course. A
// (course, section) pair naming more than one exam is reported as an
// integrity violation along with the offending rows.
func (e *Engine) CourseTimeSection(course, section string) ([]core.SectionTime, error) {
	pairs := relation.JoinWhere(e.store.Time, e.store.Courses, func(_ core.TimeRecord, c core.CourseRecord) bool {
		return c.Course == course && c.Section == section
	})

	var out []core.SectionTime
	for _, p := range pairs {
		out = append(out, core.SectionTime{
			Course: p.Right.Course,
			ExamID: p.Left.ID,
			Date:   p.Left.Date,
			Start:  p.Left.Start,
		})
	}

	if len(out) > 1 {
		e.logger.Warn("section matches several exams", "course", course, "section", section, "rows", len(out))
		return out, &core.IntegrityError{
			Op:      "course time section",
			Course:  course,
			Section: section,
			Rows:    len(out),
		}
	}
	return out, nil
}

// DepartmentCourses returns the course name of every course record whose
// name starts with dept, in relation order.
func (e *Engine) DepartmentCourses(dept string) []string {
	var out []string
	for _, c := range e.store.Courses.Lookup(relation.HasPrefix(relation.CourseName, dept)) {
		out = append(out, c.Course)
	}
	return out
}

// LocationsForCourse returns the room of every section of course.
func (e *Engine) LocationsForCourse(course string) []core.CourseLocation {
	pairs := relation.JoinWhere(e.store.Locations, e.store.Courses, func(_ core.LocationRecord, c core.CourseRecord) bool {
		return c.Course == course
	})

	var out []core.CourseLocation
	for _, p := range pairs {
		out = append(out, core.CourseLocation{
			Course:  p.Right.Course,
			Section: p.Right.Section,
			Room:    p.Left.Room,
		})
	}
	return out
}

// MultiInstructorCourses returns the courses whose instructor field names
// more than one instructor.
func (e *Engine) MultiInstructorCourses() []core.MultiInstructorCourse {
	var out []core.MultiInstructorCourse
	for _, c := range e.store.Courses.Lookup(func(c core.CourseRecord) bool {
		return e.instructors.IsMulti(c.Instructors)
	}) {
		out = append(out, core.MultiInstructorCourse{Course: c.Course, Instructors: c.Instructors})
	}
	return out
}

// InstructorCounts returns the instructor count of each multi-instructor course.
func (e *Engine) InstructorCounts() []core.InstructorCount {
	multi := e.MultiInstructorCourses()
	out := make([]core.InstructorCount, 0, len(multi))
	for _, m := range multi {
		out = append(out, core.InstructorCount{Course: m.Course, Count: e.instructors.Count(m.Instructors)})
	}
	return out
}

// Instructors returns the parsed instructor names of one course record.
func (e *Engine) Instructors(field string) []string {
	return e.instructors.Parse(field)
}

// Room returns the exam room of id.
func (e *Engine) Room(id core.ExamID) (string, bool) {
	loc, ok := e.store.Locations.Get(id)
	if !ok {
		return "", false
	}
	return loc.Room, true
}

// Courses returns the whole Courses relation.
func (e *Engine) Courses() []core.CourseRecord { return e.store.Courses.Rows() }

// Times returns the whole Time relation.
func (e *Engine) Times() []core.TimeRecord { return e.store.Time.Rows() }

// Locations returns the whole Locations relation.
func (e *Engine) Locations() []core.LocationRecord { return e.store.Locations.Rows() }
