// Package store holds the entity collections behind the planner: projects,
// staff, tasks and assignments. Every collection offers the same five calls
// and the same id rules whatever the backend.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/arnavshah/crewplan-api/pkg/models"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound is returned when an id has no matching row
var ErrNotFound = errors.New("not found")

// StoreError wraps a backend failure on a create, update or delete
type StoreError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func notFound(collection string, id int) error {
	return fmt.Errorf("%s %d: %w", collection, id, ErrNotFound)
}

// Record is the pointer side of an entity the collections can manage
type Record[E any] interface {
	*E
	GetID() int
	SetID(id int)
	Clone() E
}

// Defaulter is implemented by entities that fill in fields on create
type Defaulter interface {
	ApplyCreateDefaults(today string)
}

// Collection is the CRUD contract shared by every entity collection.
//
// GetAll returns rows in insertion order as a copy the caller owns.
// Create assigns id = max(existing ids, 0) + 1.
// Update and Delete fail with ErrNotFound for unknown ids; Update never
// changes the id.
type Collection[E any] interface {
	Name() string
	GetAll(ctx context.Context) ([]E, error)
	GetByID(ctx context.Context, id int) (E, error)
	Create(ctx context.Context, e E) (E, error)
	Update(ctx context.Context, id int, apply func(*E)) (E, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// Store groups the four collections
type Store struct {
	Projects    Collection[models.Project]
	Staff       Collection[models.Staff]
	Tasks       Collection[models.Task]
	Assignments Collection[models.Assignment]
}

// Snapshot is a point-in-time copy of every collection
type Snapshot struct {
	Projects    []models.Project    `json:"projects"`
	Staff       []models.Staff      `json:"staff"`
	Tasks       []models.Task       `json:"tasks"`
	Assignments []models.Assignment `json:"assignments"`
}

// Snapshot loads all four collections concurrently
func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Projects, err = s.Projects.GetAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Staff, err = s.Staff.GetAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Tasks, err = s.Tasks.GetAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Assignments, err = s.Assignments.GetAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Instrumented wraps every collection of s with metrics
func Instrumented(s *Store) *Store {
	return &Store{
		Projects:    Instrument(s.Projects),
		Staff:       Instrument(s.Staff),
		Tasks:       Instrument(s.Tasks),
		Assignments: Instrument(s.Assignments),
	}
}
