package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/leapstack-labs/examsched/pkg/core"
)

var errNotOpen = errors.New("database not opened")

// SQLiteStore stores the relations in a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewSQLiteStore creates a store. A nil logger discards output.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{logger: logger}
}

// NewSQLiteStoreWithDB wraps an existing connection. The schema is not
// migrated.
func NewSQLiteStoreWithDB(db *sql.DB, logger *slog.Logger) *SQLiteStore {
	s := NewSQLiteStore(logger)
	s.db = db
	return s
}

// Open opens the database at path, creating its directory if needed.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := ":memory:"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create state directory: %w", err)
			}
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// one connection keeps ":memory:" a single database
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	s.logger.Debug("opened state database", "path", path)
	return nil
}

// Path returns the path passed to Open.
func (s *SQLiteStore) Path() string { return s.path }

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ReplaceRelations atomically replaces all three relations and records
// the load. A duplicate ExamID fails with core.ErrMalformedRecord and
// leaves the previous relations in place.
func (s *SQLiteStore) ReplaceRelations(ctx context.Context, rel core.Relations, source string) (*Load, error) {
	if s.db == nil {
		return nil, errNotOpen
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"locations", "courses", "times"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return nil, fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, r := range rel.Locations {
		_, err := tx.ExecContext(ctx, `INSERT INTO locations (id, room) VALUES (?, ?)`, r.ID, r.Room)
		if err != nil {
			return nil, insertError(core.RelationLocations, r.ID, err)
		}
	}
	for _, r := range rel.Courses {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO courses (id, course, section, instructors) VALUES (?, ?, ?, ?)`,
			r.ID, r.Course, r.Section, r.Instructors)
		if err != nil {
			return nil, insertError(core.RelationCourses, r.ID, err)
		}
	}
	for _, r := range rel.Times {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO times (id, exam_date, start_time, end_time, duration) VALUES (?, ?, ?, ?, ?)`,
			r.ID, r.Date, r.Start, r.End, r.Duration)
		if err != nil {
			return nil, insertError(core.RelationTime, r.ID, err)
		}
	}

	load := &Load{
		ID:        uuid.New().String(),
		Source:    source,
		Locations: len(rel.Locations),
		Courses:   len(rel.Courses),
		Times:     len(rel.Times),
		LoadedAt:  time.Now().UTC(),
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO loads (id, source, locations, courses, times, loaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		load.ID, load.Source, load.Locations, load.Courses, load.Times, load.LoadedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record load: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit relations: %w", err)
	}

	s.logger.Info("replaced relations",
		"load_id", load.ID,
		"locations", load.Locations,
		"courses", load.Courses,
		"time", load.Times)
	return load, nil
}

func insertError(relation string, id core.ExamID, err error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return &core.RecordError{Relation: relation, ID: id, Reason: "duplicate exam id"}
	}
	return fmt.Errorf("failed to insert %s row %q: %w", relation, id, err)
}

// Locations returns the Locations relation in load order.
func (s *SQLiteStore) Locations(ctx context.Context) ([]core.LocationRecord, error) {
	if s.db == nil {
		return nil, errNotOpen
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, room FROM locations ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var out []core.LocationRecord
	for rows.Next() {
		var r core.LocationRecord
		if err := rows.Scan(&r.ID, &r.Room); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Courses returns the Courses relation in load order.
func (s *SQLiteStore) Courses(ctx context.Context) ([]core.CourseRecord, error) {
	if s.db == nil {
		return nil, errNotOpen
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, course, section, instructors FROM courses ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var out []core.CourseRecord
	for rows.Next() {
		var r core.CourseRecord
		if err := rows.Scan(&r.ID, &r.Course, &r.Section, &r.Instructors); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Times returns the Time relation in load order.
func (s *SQLiteStore) Times(ctx context.Context) ([]core.TimeRecord, error) {
	if s.db == nil {
		return nil, errNotOpen
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, exam_date, start_time, end_time, duration FROM times ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query times: %w", err)
	}
	defer rows.Close()

	var out []core.TimeRecord
	for rows.Next() {
		var r core.TimeRecord
		if err := rows.Scan(&r.ID, &r.Date, &r.Start, &r.End, &r.Duration); err != nil {
			return nil, fmt.Errorf("failed to scan time: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LatestLoad returns the most recent load, or ErrNoLoad.
func (s *SQLiteStore) LatestLoad(ctx context.Context) (*Load, error) {
	if s.db == nil {
		return nil, errNotOpen
	}

	load := &Load{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, locations, courses, times, loaded_at FROM loads ORDER BY loaded_at DESC LIMIT 1`,
	).Scan(&load.ID, &load.Source, &load.Locations, &load.Courses, &load.Times, &load.LoadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoLoad
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest load: %w", err)
	}
	return load, nil
}
