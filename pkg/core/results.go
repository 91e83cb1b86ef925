package core

import "slices"

// CourseInstructors is a row of the course instructors query.
type CourseInstructors struct {
	Course      string `json:"course" yaml:"course"`
	Section     string `json:"section" yaml:"section"`
	Instructors string `json:"instructors" yaml:"instructors"`
}

// CourseTime is a row of the course time query, one per section.
type CourseTime struct {
	Course  string `json:"course" yaml:"course"`
	Date    string `json:"date" yaml:"date"`
	Start   string `json:"start" yaml:"start"`
	ExamID  ExamID `json:"exam_id" yaml:"exam_id"`
	Section string `json:"section" yaml:"section"`
}

// SectionTime is a row of the course time query narrowed to one section.
type SectionTime struct {
	Course string `json:"course" yaml:"course"`
	ExamID ExamID `json:"exam_id" yaml:"exam_id"`
	Date   string `json:"date" yaml:"date"`
	Start  string `json:"start" yaml:"start"`
}

// CourseLocation is a row of the exam locations query.
type CourseLocation struct {
	Course  string `json:"course" yaml:"course"`
	Section string `json:"section" yaml:"section"`
	Room    string `json:"room" yaml:"room"`
}

// MultiInstructorCourse is a course taught by more than one instructor.
type MultiInstructorCourse struct {
	Course      string `json:"course" yaml:"course"`
	Instructors string `json:"instructors" yaml:"instructors"`
}

// InstructorCount pairs a multi-instructor course with its instructor count.
type InstructorCount struct {
	Course string `json:"course" yaml:"course"`
	Count  int    `json:"count" yaml:"count"`
}

// ExamRef names one sitting inside a collision group.
type ExamRef struct {
	ExamID  ExamID `json:"exam_id" yaml:"exam_id"`
	Course  string `json:"course" yaml:"course"`
	Section string `json:"section" yaml:"section"`
}

// CollisionGroup is the set of sittings sharing one (date, start) slot.
// Only slots holding two or more distinct ExamIDs form a group.
type CollisionGroup struct {
	Date  string    `json:"date" yaml:"date"`
	Start string    `json:"start" yaml:"start"`
	Exams []ExamRef `json:"exams" yaml:"exams"`
}

// Courses returns the distinct course names of the group in ascending order.
func (g CollisionGroup) Courses() []string {
	seen := make(map[string]bool, len(g.Exams))
	var names []string
	for _, e := range g.Exams {
		if seen[e.Course] {
			continue
		}
		seen[e.Course] = true
		names = append(names, e.Course)
	}
	slices.Sort(names)
	return names
}

// Has reports whether course sits an exam in the group.
func (g CollisionGroup) Has(course string) bool {
	for _, e := range g.Exams {
		if e.Course == course {
			return true
		}
	}
	return false
}
