package relation

import (
	"fmt"

	"github.com/leapstack-labs/examsched/pkg/core"
)

// Store is the read-only snapshot of the three exam relations.
// It is built once per process and shared by reference.
type Store struct {
	Locations *Relation[core.LocationRecord]
	Courses   *Relation[core.CourseRecord]
	Time      *Relation[core.TimeRecord]
}

// NewStore validates and indexes the three relations.
func NewStore(locations []core.LocationRecord, courses []core.CourseRecord, times []core.TimeRecord) (*Store, error) {
	locs, err := New(core.RelationLocations, locations)
	if err != nil {
		return nil, fmt.Errorf("failed to build locations relation: %w", err)
	}
	crs, err := New(core.RelationCourses, courses)
	if err != nil {
		return nil, fmt.Errorf("failed to build courses relation: %w", err)
	}
	tms, err := New(core.RelationTime, times)
	if err != nil {
		return nil, fmt.Errorf("failed to build time relation: %w", err)
	}
	return &Store{Locations: locs, Courses: crs, Time: tms}, nil
}

// FromRelations builds a Store from an ingestion bundle.
func FromRelations(rel core.Relations) (*Store, error) {
	return NewStore(rel.Locations, rel.Courses, rel.Times)
}

// CourseName is the course field accessor for Equals and HasPrefix.
func CourseName(r core.CourseRecord) string { return r.Course }

// CourseSection is the section field accessor for Equals and HasPrefix.
func CourseSection(r core.CourseRecord) string { return r.Section }
