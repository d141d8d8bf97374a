// Package timeline drives one assignment gesture at a time: pick up a staff
// card or an existing assignment, hover a (project, day) cell, then drop to
// create or move an assignment through the store.
package timeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/arnavshah/crewplan-api/pkg/calendar"
	"github.com/arnavshah/crewplan-api/pkg/metrics"
	"github.com/arnavshah/crewplan-api/pkg/models"
	"github.com/arnavshah/crewplan-api/pkg/store"
	"go.uber.org/zap"
)

var (
	ErrNotDragging    = errors.New("no drag in progress")
	ErrGestureActive  = errors.New("a drag is already in progress")
	ErrCommitInFlight = errors.New("drop already in flight for this gesture")
	ErrInvalidCell    = errors.New("invalid drop target")
	ErrInvalidPayload = errors.New("invalid drag payload")
)

// DefaultHoursPerDay is the shift length given to assignments created by a drop
const DefaultHoursPerDay = 8

// State of a gesture
type State int

const (
	Idle State = iota
	Dragging
	Hovering
	Committing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Hovering:
		return "hovering"
	case Committing:
		return "committing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// PayloadKind tags what is being dragged
type PayloadKind string

const (
	NewFromStaff PayloadKind = "new_from_staff"
	MoveExisting PayloadKind = "move_existing"
)

// Payload is the thing picked up at the start of a gesture
type Payload struct {
	Kind         PayloadKind `json:"kind" binding:"required"`
	StaffID      int         `json:"staff_id,omitempty"`
	AssignmentID int         `json:"assignment_id,omitempty"`
}

// FromStaff is the payload of a staff card dragged from the pool
func FromStaff(staffID int) Payload {
	return Payload{Kind: NewFromStaff, StaffID: staffID}
}

// MoveAssignment is the payload of an assignment chip dragged off the grid
func MoveAssignment(assignmentID int) Payload {
	return Payload{Kind: MoveExisting, AssignmentID: assignmentID}
}

func (p Payload) validate() error {
	switch p.Kind {
	case NewFromStaff:
		if p.StaffID <= 0 {
			return fmt.Errorf("%w: staff id required", ErrInvalidPayload)
		}
	case MoveExisting:
		if p.AssignmentID <= 0 {
			return fmt.Errorf("%w: assignment id required", ErrInvalidPayload)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidPayload, p.Kind)
	}
	return nil
}

// Cell is a drop target
type Cell struct {
	ProjectID int    `json:"project_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
}

func (c Cell) validate() error {
	if c.ProjectID <= 0 || !calendar.Valid(c.Date) {
		return fmt.Errorf("%w: project %d on %q", ErrInvalidCell, c.ProjectID, c.Date)
	}
	return nil
}

// IntentKind is the store call a drop asks for
type IntentKind string

const (
	IntentCreate IntentKind = "create"
	IntentUpdate IntentKind = "update"
)

// Intent is the mutation a drop sends to the store.
// For updates Assignment.ID names the row being moved.
type Intent struct {
	Kind       IntentKind        `json:"kind"`
	Assignment models.Assignment `json:"assignment"`
}

// PlanCreate builds the create intent for dropping staff onto cell
func PlanCreate(staff models.Staff, cell Cell) Intent {
	a := models.Assignment{
		StaffID:     staff.ID,
		ProjectID:   cell.ProjectID,
		StartDate:   cell.Date,
		EndDate:     cell.Date,
		HoursPerDay: DefaultHoursPerDay,
		TotalCost:   staff.DailyRate,
	}
	return Intent{Kind: IntentCreate, Assignment: a}
}

// PlanMove builds the update intent for dropping existing onto cell.
// The assignment collapses to the single target day.
func PlanMove(existing models.Assignment, cell Cell) Intent {
	moved := existing
	moved.ProjectID = cell.ProjectID
	moved.StartDate = cell.Date
	moved.EndDate = cell.Date
	return Intent{Kind: IntentUpdate, Assignment: moved}
}

// Outcome of a finished gesture
type Outcome string

const (
	Committed Outcome = "committed"
	Cancelled Outcome = "cancelled"
	Failed    Outcome = "failed"
)

// Result reports how a gesture ended. Assignment is the row the store
// confirmed and is only set when the outcome is Committed.
type Result struct {
	Outcome    Outcome            `json:"outcome"`
	Intent     *Intent            `json:"intent,omitempty"`
	Assignment *models.Assignment `json:"assignment,omitempty"`
}

// Status is a read-only view of a controller
type Status struct {
	State   State    `json:"state"`
	Payload *Payload `json:"payload,omitempty"`
	Target  *Cell    `json:"target,omitempty"`
}

// Controller is the state machine for one gesture. It never changes
// assignments itself; the store's answer is the only source of truth.
type Controller struct {
	mu          sync.Mutex
	state       State
	payload     Payload
	target      Cell
	projects    store.Collection[models.Project]
	staff       store.Collection[models.Staff]
	assignments store.Collection[models.Assignment]
	logger      *zap.Logger
}

// NewController creates an idle controller
func NewController(projects store.Collection[models.Project], staff store.Collection[models.Staff], assignments store.Collection[models.Assignment], logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		projects:    projects,
		staff:       staff,
		assignments: assignments,
		logger:      logger,
	}
}

// Status returns the current state, payload and target
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{State: c.state}
	if c.state != Idle {
		p := c.payload
		st.Payload = &p
	}
	if c.state == Hovering || c.state == Committing {
		t := c.target
		st.Target = &t
	}
	return st
}

// BeginDrag picks up p
func (c *Controller) BeginDrag(p Payload) error {
	if err := p.validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Idle {
		return ErrGestureActive
	}
	c.state = Dragging
	c.payload = p
	c.target = Cell{}
	return nil
}

// Enter highlights cell as the drop target, replacing any previous target
func (c *Controller) Enter(cell Cell) error {
	if err := cell.validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Idle:
		return ErrNotDragging
	case Committing:
		return ErrCommitInFlight
	}
	c.state = Hovering
	c.target = cell
	return nil
}

// Leave clears the drop target while keeping the payload
func (c *Controller) Leave() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Idle:
		return ErrNotDragging
	case Committing:
		return ErrCommitInFlight
	}
	c.state = Dragging
	c.target = Cell{}
	return nil
}

// Cancel ends the gesture without touching the store
func (c *Controller) Cancel() (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Idle:
		return Result{}, ErrNotDragging
	case Committing:
		return Result{}, ErrCommitInFlight
	}
	c.reset()
	metrics.IncrementGestureOutcome(string(Cancelled))
	return Result{Outcome: Cancelled}, nil
}

// Drop commits the gesture. A drop with no target cancels. While the
// store call is pending every other call on c fails with ErrCommitInFlight.
// The store call runs to completion even if ctx is cancelled meanwhile.
func (c *Controller) Drop(ctx context.Context) (Result, error) {
	c.mu.Lock()
	switch c.state {
	case Idle:
		c.mu.Unlock()
		return Result{}, ErrNotDragging
	case Committing:
		c.mu.Unlock()
		return Result{}, ErrCommitInFlight
	case Dragging:
		c.reset()
		c.mu.Unlock()
		metrics.IncrementGestureOutcome(string(Cancelled))
		return Result{Outcome: Cancelled}, nil
	}
	payload, target := c.payload, c.target
	c.state = Committing
	c.mu.Unlock()

	res, err := c.commit(ctx, payload, target)

	c.mu.Lock()
	c.reset()
	c.mu.Unlock()

	metrics.IncrementGestureOutcome(string(res.Outcome))
	if err != nil {
		c.logger.Warn("Drop did not commit",
			zap.String("kind", string(payload.Kind)),
			zap.Int("project_id", target.ProjectID),
			zap.String("date", target.Date),
			zap.String("outcome", string(res.Outcome)),
			zap.Error(err))
	} else {
		c.logger.Info("Drop committed",
			zap.String("intent", string(res.Intent.Kind)),
			zap.Int("assignment_id", res.Assignment.ID),
			zap.Int("project_id", target.ProjectID),
			zap.String("date", target.Date))
	}
	return res, err
}

func (c *Controller) commit(ctx context.Context, p Payload, target Cell) (Result, error) {
	switch p.Kind {
	case NewFromStaff:
		staff, err := c.staff.GetByID(ctx, p.StaffID)
		if err != nil {
			return sourceGone(err)
		}
		if err := c.checkTarget(ctx, target); err != nil {
			return Result{Outcome: Failed}, err
		}
		intent := PlanCreate(staff, target)
		created, err := c.assignments.Create(ctx, intent.Assignment)
		if err != nil {
			return Result{Outcome: Failed, Intent: &intent}, err
		}
		return Result{Outcome: Committed, Intent: &intent, Assignment: &created}, nil

	case MoveExisting:
		existing, err := c.assignments.GetByID(ctx, p.AssignmentID)
		if err != nil {
			return sourceGone(err)
		}
		if err := c.checkTarget(ctx, target); err != nil {
			return Result{Outcome: Failed}, err
		}
		intent := PlanMove(existing, target)
		updated, err := c.assignments.Update(ctx, existing.ID, func(a *models.Assignment) {
			a.ProjectID = intent.Assignment.ProjectID
			a.StartDate = intent.Assignment.StartDate
			a.EndDate = intent.Assignment.EndDate
		})
		if err != nil {
			return Result{Outcome: Failed, Intent: &intent}, err
		}
		return Result{Outcome: Committed, Intent: &intent, Assignment: &updated}, nil
	}
	return Result{Outcome: Failed}, ErrInvalidPayload
}

// checkTarget fails the drop when the hovered project no longer exists
func (c *Controller) checkTarget(ctx context.Context, target Cell) error {
	if _, err := c.projects.GetByID(ctx, target.ProjectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("drop target: %w", err)
		}
		return err
	}
	return nil
}

// sourceGone cancels a gesture whose dragged row disappeared mid-gesture
func sourceGone(err error) (Result, error) {
	if errors.Is(err, store.ErrNotFound) {
		return Result{Outcome: Cancelled}, fmt.Errorf("drag source removed: %w", err)
	}
	return Result{Outcome: Failed}, err
}

func (c *Controller) reset() {
	c.state = Idle
	c.payload = Payload{}
	c.target = Cell{}
}
