// Package state persists the exam schedule relations in a local SQLite
// database and records every load of the source files.
package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/leapstack-labs/examsched/internal/relation"
	"github.com/leapstack-labs/examsched/pkg/core"
)

// ErrNoLoad is returned by LatestLoad before the relations were seeded.
var ErrNoLoad = errors.New("no relations loaded")

// Load records one replacement of the relations.
type Load struct {
	ID        string    `json:"id" yaml:"id"`
	Source    string    `json:"source" yaml:"source"`
	Locations int       `json:"locations" yaml:"locations"`
	Courses   int       `json:"courses" yaml:"courses"`
	Times     int       `json:"times" yaml:"times"`
	LoadedAt  time.Time `json:"loaded_at" yaml:"loaded_at"`
}

// RelationSource yields the three relations in load order.
type RelationSource interface {
	Locations(ctx context.Context) ([]core.LocationRecord, error)
	Courses(ctx context.Context) ([]core.CourseRecord, error)
	Times(ctx context.Context) ([]core.TimeRecord, error)
}

// LoadStore reads all relations from src into a validated in-memory store.
func LoadStore(ctx context.Context, src RelationSource) (*relation.Store, error) {
	locations, err := src.Locations(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := src.Courses(ctx)
	if err != nil {
		return nil, err
	}
	times, err := src.Times(ctx)
	if err != nil {
		return nil, err
	}

	store, err := relation.NewStore(locations, courses, times)
	if err != nil {
		return nil, fmt.Errorf("failed to load relations: %w", err)
	}
	return store, nil
}
