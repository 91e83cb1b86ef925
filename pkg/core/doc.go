// Package core defines the shared language of the exam schedule system.
//
// This package contains:
//   - Relation records (LocationRecord, CourseRecord, TimeRecord) keyed by ExamID
//   - Query result shapes returned by the query engine
//   - The error taxonomy (integrity violations, malformed records)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
