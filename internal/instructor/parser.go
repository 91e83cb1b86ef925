// Package instructor splits the free-text instructor field of a course
// record into individual names.
package instructor

import "strings"

// DefaultDelimiter separates co-instructors in the source data.
const DefaultDelimiter = ","

// Parser splits instructor fields on a delimiter. The zero value uses
// DefaultDelimiter.
type Parser struct {
	Delimiter string
}

// New returns a parser for the given delimiter, falling back to
// DefaultDelimiter when it is empty.
func New(delimiter string) Parser {
	return Parser{Delimiter: delimiter}
}

func (p Parser) delimiter() string {
	if p.Delimiter == "" {
		return DefaultDelimiter
	}
	return p.Delimiter
}

// Parse returns the instructor names in field order. Surrounding
// whitespace is trimmed and empty segments are dropped, so a field with no
// delimiter yields a single name.
func (p Parser) Parse(field string) []string {
	parts := strings.Split(field, p.delimiter())
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Count returns the number of instructors named in field.
func (p Parser) Count(field string) int {
	return len(p.Parse(field))
}

// IsMulti reports whether field names more than one instructor.
func (p Parser) IsMulti(field string) bool {
	return p.Count(field) > 1
}
