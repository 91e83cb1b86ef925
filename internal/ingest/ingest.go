// Package ingest parses the exam schedule source files into relation rows.
//
// The three files are independent and are parsed concurrently. A row with
// the wrong number of fields is a MalformedRecord error unless
// Options.SkipMalformed is set, in which case it is logged and dropped.
package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/examsched/pkg/core"
)

// headerField is the first field of a header row.
const headerField = "ID"

// Sources names the three source files.
type Sources struct {
	Locations string
	Courses   string
	Time      string
}

// Options configures parsing.
type Options struct {
	SkipMalformed bool
	Logger        *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Load reads and parses all three source files.
func Load(ctx context.Context, src Sources, opts Options) (core.Relations, error) {
	var rel core.Relations

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := parseFile(ctx, src.Locations, opts, ParseLocations)
		rel.Locations = rows
		return err
	})
	g.Go(func() error {
		rows, err := parseFile(ctx, src.Courses, opts, ParseCourses)
		rel.Courses = rows
		return err
	})
	g.Go(func() error {
		rows, err := parseFile(ctx, src.Time, opts, ParseTimes)
		rel.Times = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return core.Relations{}, err
	}

	opts.logger().Debug("parsed sources",
		"locations", len(rel.Locations),
		"courses", len(rel.Courses),
		"time", len(rel.Times))
	return rel, nil
}

func parseFile[R any](ctx context.Context, path string, opts Options, parse func(io.Reader, string, Options) ([]R, error)) ([]R, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer f.Close()

	return parse(f, path, opts)
}

// ParseLocations parses "ID,Room" rows. Only the first comma separates
// fields, so a room may itself contain commas.
func ParseLocations(r io.Reader, source string, opts Options) ([]core.LocationRecord, error) {
	data, err := readNormalized(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}

	var rows []core.LocationRecord
	first := true
	for i, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		id, room, ok := strings.Cut(line, ",")
		if first {
			first = false
			if id == headerField {
				continue
			}
		}
		if !ok {
			if err := malformed(opts, &core.RecordError{
				Relation: core.RelationLocations,
				Source:   source,
				Line:     i + 1,
				ID:       core.ExamID(id),
				Reason:   "expected 2 fields, got 1",
			}); err != nil {
				return nil, err
			}
			continue
		}
		rows = append(rows, core.LocationRecord{ID: core.ExamID(id), Room: room})
	}
	return rows, nil
}

// ParseCourses parses "ID,Course,Section,Name" rows. Quoted fields may
// contain the instructor delimiter.
func ParseCourses(r io.Reader, source string, opts Options) ([]core.CourseRecord, error) {
	var rows []core.CourseRecord
	err := readRecords(r, core.RelationCourses, source, 4, opts, func(f []string) {
		rows = append(rows, core.CourseRecord{
			ID:          core.ExamID(f[0]),
			Course:      f[1],
			Section:     f[2],
			Instructors: f[3],
		})
	})
	return rows, err
}

// ParseTimes parses "ID,Date,Start,End,Duration" rows.
func ParseTimes(r io.Reader, source string, opts Options) ([]core.TimeRecord, error) {
	var rows []core.TimeRecord
	err := readRecords(r, core.RelationTime, source, 5, opts, func(f []string) {
		rows = append(rows, core.TimeRecord{
			ID:       core.ExamID(f[0]),
			Date:     f[1],
			Start:    f[2],
			End:      f[3],
			Duration: f[4],
		})
	})
	return rows, err
}

// readRecords reads CSV records with exactly want fields, skipping a
// leading header row.
func readRecords(r io.Reader, relation, source string, want int, opts Options, emit func([]string)) error {
	data, err := readNormalized(r)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", source, err)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1

	first := true
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				if err := malformed(opts, &core.RecordError{
					Relation: relation,
					Source:   source,
					Line:     perr.Line,
					Reason:   perr.Err.Error(),
				}); err != nil {
					return err
				}
				continue
			}
			return fmt.Errorf("failed to read %s: %w", source, err)
		}

		if first {
			first = false
			if fields[0] == headerField {
				continue
			}
		}

		if len(fields) != want {
			line, _ := cr.FieldPos(0)
			if err := malformed(opts, &core.RecordError{
				Relation: relation,
				Source:   source,
				Line:     line,
				ID:       core.ExamID(fields[0]),
				Reason:   fmt.Sprintf("expected %d fields, got %d", want, len(fields)),
			}); err != nil {
				return err
			}
			continue
		}
		emit(fields)
	}
}

// malformed returns rerr, or logs it and returns nil when malformed rows
// are skipped.
func malformed(opts Options, rerr *core.RecordError) error {
	if !opts.SkipMalformed {
		return rerr
	}
	opts.logger().Warn("skipping malformed row", "error", rerr.Error())
	return nil
}

// readNormalized reads r and rewrites CRLF and bare CR line endings to LF.
func readNormalized(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
	return data, nil
}
