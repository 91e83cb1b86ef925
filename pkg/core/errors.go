package core

import (
	"errors"
	"fmt"
)

// Sentinel errors. Match with errors.Is; the typed errors below wrap them.
var (
	// ErrIntegrityViolation reports a lookup that must be 1:1 returning more
	// than one row, e.g. two ExamIDs sharing the same course and section.
	ErrIntegrityViolation = errors.New("integrity violation")

	// ErrMalformedRecord reports a row that breaks the declared relation
	// shape: wrong column count, empty ExamID or a duplicate ExamID.
	ErrMalformedRecord = errors.New("malformed record")
)

// IntegrityError carries the context of an integrity violation.
type IntegrityError struct {
	Op      string
	Course  string
	Section string
	Rows    int
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: %s section %q of %q matched %d exams, expected at most 1",
		e.Op, ErrIntegrityViolation, e.Section, e.Course, e.Rows)
}

// Unwrap returns ErrIntegrityViolation.
func (e *IntegrityError) Unwrap() error { return ErrIntegrityViolation }

// RecordError describes a malformed record. Line is 1-based and zero when
// the record did not come from a file.
type RecordError struct {
	Relation string
	Source   string
	Line     int
	ID       ExamID
	Reason   string
}

func (e *RecordError) Error() string {
	loc := e.Relation
	if e.Source != "" {
		loc = e.Source
	}
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Line)
	}
	if e.ID != "" {
		return fmt.Sprintf("%s: %s (id %q): %s", loc, ErrMalformedRecord, e.ID, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", loc, ErrMalformedRecord, e.Reason)
}

// Unwrap returns ErrMalformedRecord.
func (e *RecordError) Unwrap() error { return ErrMalformedRecord }
