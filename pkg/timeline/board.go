package timeline

import (
	"errors"
	"sync"
	"time"

	"github.com/arnavshah/crewplan-api/pkg/models"
	"github.com/arnavshah/crewplan-api/pkg/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrGestureNotFound = errors.New("gesture not found")

// Gesture is a controller addressed by id so that separate API calls can
// drive the same drag
type Gesture struct {
	ID         string
	Controller *Controller
	StartedAt  time.Time
}

// Board keeps the open gestures. Different gestures are independent and
// may be driven concurrently.
type Board struct {
	mu          sync.Mutex
	gestures    map[string]*Gesture
	projects    store.Collection[models.Project]
	staff       store.Collection[models.Staff]
	assignments store.Collection[models.Assignment]
	logger      *zap.Logger
	now         func() time.Time
}

// NewBoard creates an empty board backed by the given collections
func NewBoard(projects store.Collection[models.Project], staff store.Collection[models.Staff], assignments store.Collection[models.Assignment], logger *zap.Logger) *Board {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Board{
		gestures:    make(map[string]*Gesture),
		projects:    projects,
		staff:       staff,
		assignments: assignments,
		logger:      logger,
		now:         time.Now,
	}
}

// Begin opens a gesture that has already picked up p
func (b *Board) Begin(p Payload) (*Gesture, error) {
	id := uuid.NewString()
	ctrl := NewController(b.projects, b.staff, b.assignments, b.logger.With(zap.String("gesture_id", id)))
	if err := ctrl.BeginDrag(p); err != nil {
		return nil, err
	}

	g := &Gesture{ID: id, Controller: ctrl, StartedAt: b.now()}
	b.mu.Lock()
	b.gestures[id] = g
	b.mu.Unlock()
	return g, nil
}

// Get looks up an open gesture
func (b *Board) Get(id string) (*Gesture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	g, ok := b.gestures[id]
	if !ok {
		return nil, ErrGestureNotFound
	}
	return g, nil
}

// End forgets a gesture
func (b *Board) End(id string) {
	b.mu.Lock()
	delete(b.gestures, id)
	b.mu.Unlock()
}

// Len is the number of open gestures
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.gestures)
}

// Sweep cancels and forgets gestures older than maxAge. Gestures with a
// drop in flight are left alone. It returns how many were removed.
func (b *Board) Sweep(maxAge time.Duration) int {
	cutoff := b.now().Add(-maxAge)

	b.mu.Lock()
	var stale []*Gesture
	for _, g := range b.gestures {
		if g.StartedAt.Before(cutoff) {
			stale = append(stale, g)
		}
	}
	b.mu.Unlock()

	removed := 0
	for _, g := range stale {
		if _, err := g.Controller.Cancel(); errors.Is(err, ErrCommitInFlight) {
			continue
		}
		b.End(g.ID)
		removed++
	}
	if removed > 0 {
		b.logger.Info("Swept abandoned gestures", zap.Int("count", removed))
	}
	return removed
}
