package timeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arnavshah/crewplan-api/pkg/models"
	"github.com/arnavshah/crewplan-api/pkg/store"
)

func testStore() *store.Store {
	return store.NewMemory(
		[]models.Project{{ID: 7, Name: "Riverside"}, {ID: 9, Name: "Maple Roof"}},
		[]models.Staff{{ID: 3, Name: "Tom", DailyRate: 200}},
		nil,
		[]models.Assignment{
			{ID: 12, StaffID: 3, ProjectID: 7, StartDate: "2024-06-10", EndDate: "2024-06-14", HoursPerDay: 6, TotalCost: 200},
		},
		store.Latency{},
	)
}

// gatedAssignments blocks Create until release is closed
type gatedAssignments struct {
	store.Collection[models.Assignment]
	entered chan struct{}
	release chan struct{}
	calls   int
	err     error
}

func (g *gatedAssignments) Create(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	g.calls++
	if g.entered != nil {
		close(g.entered)
	}
	if g.release != nil {
		<-g.release
	}
	if g.err != nil {
		return models.Assignment{}, g.err
	}
	return g.Collection.Create(ctx, a)
}

func TestDrop_NewFromStaff(t *testing.T) {
	s := testStore()
	c := NewController(s.Projects, s.Staff, s.Assignments, nil)

	if err := c.BeginDrag(FromStaff(3)); err != nil {
		t.Fatalf("BeginDrag failed: %v", err)
	}
	if err := c.Enter(Cell{ProjectID: 7, Date: "2024-06-10"}); err != nil {
		t.Fatalf("Enter failed: %v", err)
	}

	res, err := c.Drop(context.Background())
	if err != nil {
		t.Fatalf("Drop failed: %v", err)
	}
	if res.Outcome != Committed || res.Intent == nil || res.Intent.Kind != IntentCreate {
		t.Fatalf("Expected committed create, got %+v", res)
	}

	want := models.Assignment{StaffID: 3, ProjectID: 7, StartDate: "2024-06-10", EndDate: "2024-06-10", HoursPerDay: 8, TotalCost: 200}
	if res.Intent.Assignment != want {
		t.Errorf("Expected intent %+v, got %+v", want, res.Intent.Assignment)
	}
	if res.Assignment.ID != 13 {
		t.Errorf("Expected new assignment id 13, got %d", res.Assignment.ID)
	}

	all, _ := s.Assignments.GetAll(context.Background())
	if len(all) != 2 {
		t.Errorf("Expected 2 assignments after drop, got %d", len(all))
	}
	if c.Status().State != Idle {
		t.Errorf("Expected controller back to idle, got %s", c.Status().State)
	}
}

func TestDrop_MoveExisting(t *testing.T) {
	s := testStore()
	c := NewController(s.Projects, s.Staff, s.Assignments, nil)

	_ = c.BeginDrag(MoveAssignment(12))
	_ = c.Enter(Cell{ProjectID: 7, Date: "2024-06-11"})
	// re-entering a different cell retargets
	_ = c.Enter(Cell{ProjectID: 9, Date: "2024-06-12"})

	res, err := c.Drop(context.Background())
	if err != nil {
		t.Fatalf("Drop failed: %v", err)
	}
	if res.Intent.Kind != IntentUpdate {
		t.Fatalf("Expected update intent, got %s", res.Intent.Kind)
	}

	got := *res.Assignment
	if got.ID != 12 || got.StaffID != 3 {
		t.Errorf("Expected id and staff unchanged, got %+v", got)
	}
	if got.ProjectID != 9 || got.StartDate != "2024-06-12" || got.EndDate != "2024-06-12" {
		t.Errorf("Expected move to project 9 on 2024-06-12, got %+v", got)
	}
	if got.HoursPerDay != 6 {
		t.Errorf("Expected hours per day to be kept, got %f", got.HoursPerDay)
	}
}

func TestCancel(t *testing.T) {
	s := testStore()
	c := NewController(s.Projects, s.Staff, s.Assignments, nil)

	_ = c.BeginDrag(FromStaff(3))
	_ = c.Enter(Cell{ProjectID: 7, Date: "2024-06-10"})
	res, err := c.Cancel()
	if err != nil || res.Outcome != Cancelled {
		t.Fatalf("Expected cancelled, got %+v %v", res, err)
	}

	all, _ := s.Assignments.GetAll(context.Background())
	if len(all) != 1 {
		t.Errorf("Expected no store change on cancel, got %d assignments", len(all))
	}
	if _, err := c.Drop(context.Background()); !errors.Is(err, ErrNotDragging) {
		t.Errorf("Expected ErrNotDragging after cancel, got %v", err)
	}
}

func TestDrop_WithoutTargetCancels(t *testing.T) {
	s := testStore()
	c := NewController(s.Projects, s.Staff, s.Assignments, nil)

	_ = c.BeginDrag(FromStaff(3))
	_ = c.Enter(Cell{ProjectID: 7, Date: "2024-06-10"})
	_ = c.Leave()

	res, err := c.Drop(context.Background())
	if err != nil || res.Outcome != Cancelled {
		t.Errorf("Expected cancelled drop, got %+v %v", res, err)
	}
}

func TestDrop_SourceRemoved(t *testing.T) {
	s := testStore()
	c := NewController(s.Projects, s.Staff, s.Assignments, nil)

	_ = c.BeginDrag(MoveAssignment(12))
	_ = c.Enter(Cell{ProjectID: 9, Date: "2024-06-12"})
	if _, err := s.Assignments.Delete(context.Background(), 12); err != nil {
		t.Fatal(err)
	}

	res, err := c.Drop(context.Background())
	if res.Outcome != Cancelled {
		t.Errorf("Expected cancelled outcome, got %s", res.Outcome)
	}
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestDrop_TargetProjectMissing(t *testing.T) {
	for _, p := range []Payload{FromStaff(3), MoveAssignment(12)} {
		s := testStore()
		c := NewController(s.Projects, s.Staff, s.Assignments, nil)

		if err := c.BeginDrag(p); err != nil {
			t.Fatalf("BeginDrag(%s) failed: %v", p.Kind, err)
		}
		if err := c.Enter(Cell{ProjectID: 999, Date: "2024-06-12"}); err != nil {
			t.Fatalf("Enter(%s) failed: %v", p.Kind, err)
		}

		res, err := c.Drop(context.Background())
		if res.Outcome != Failed || !errors.Is(err, store.ErrNotFound) {
			t.Errorf("%s: expected failed drop with not found, got %+v %v", p.Kind, res, err)
		}
		if res.Assignment != nil {
			t.Errorf("%s: expected no confirmed assignment", p.Kind)
		}

		all, _ := s.Assignments.GetAll(context.Background())
		if len(all) != 1 || all[0].ProjectID != 7 || all[0].StartDate != "2024-06-10" {
			t.Errorf("%s: expected assignments untouched, got %+v", p.Kind, all)
		}
		if c.Status().State != Idle {
			t.Errorf("%s: expected idle after failed drop, got %s", p.Kind, c.Status().State)
		}
	}
}

func TestDrop_TargetProjectDeletedWhileHovering(t *testing.T) {
	s := testStore()
	c := NewController(s.Projects, s.Staff, s.Assignments, nil)

	_ = c.BeginDrag(FromStaff(3))
	_ = c.Enter(Cell{ProjectID: 9, Date: "2024-06-12"})
	if _, err := s.Projects.Delete(context.Background(), 9); err != nil {
		t.Fatal(err)
	}

	if _, err := c.Drop(context.Background()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected not found for removed target, got %v", err)
	}
	all, _ := s.Assignments.GetAll(context.Background())
	if len(all) != 1 {
		t.Errorf("Expected no assignment created, got %d", len(all))
	}
}

func TestDrop_StoreRejection(t *testing.T) {
	s := testStore()
	boom := &store.StoreError{Op: "create", Collection: "assignments", Err: errors.New("disk full")}
	gated := &gatedAssignments{Collection: s.Assignments, err: boom}
	c := NewController(s.Projects, s.Staff, gated, nil)

	_ = c.BeginDrag(FromStaff(3))
	_ = c.Enter(Cell{ProjectID: 7, Date: "2024-06-10"})

	res, err := c.Drop(context.Background())
	if res.Outcome != Failed || !errors.Is(err, boom) {
		t.Fatalf("Expected failed drop with store error, got %+v %v", res, err)
	}
	if res.Assignment != nil {
		t.Error("Expected no confirmed assignment on rejection")
	}

	all, _ := s.Assignments.GetAll(context.Background())
	if len(all) != 1 {
		t.Errorf("Expected store unchanged, got %d assignments", len(all))
	}
}

func TestDrop_InFlightGuard(t *testing.T) {
	s := testStore()
	gated := &gatedAssignments{
		Collection: s.Assignments,
		entered:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	c := NewController(s.Projects, s.Staff, gated, nil)

	_ = c.BeginDrag(FromStaff(3))
	_ = c.Enter(Cell{ProjectID: 7, Date: "2024-06-10"})

	done := make(chan error, 1)
	go func() {
		_, err := c.Drop(context.Background())
		done <- err
	}()

	select {
	case <-gated.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("Drop never reached the store")
	}

	if c.Status().State != Committing {
		t.Errorf("Expected committing state, got %s", c.Status().State)
	}
	if _, err := c.Drop(context.Background()); !errors.Is(err, ErrCommitInFlight) {
		t.Errorf("Expected ErrCommitInFlight for second drop, got %v", err)
	}
	if err := c.Enter(Cell{ProjectID: 9, Date: "2024-06-11"}); !errors.Is(err, ErrCommitInFlight) {
		t.Errorf("Expected ErrCommitInFlight for enter, got %v", err)
	}
	if _, err := c.Cancel(); !errors.Is(err, ErrCommitInFlight) {
		t.Errorf("Expected ErrCommitInFlight for cancel, got %v", err)
	}

	close(gated.release)
	if err := <-done; err != nil {
		t.Fatalf("First drop failed: %v", err)
	}
	if gated.calls != 1 {
		t.Errorf("Expected exactly one store create, got %d", gated.calls)
	}
}

func TestStateGuards(t *testing.T) {
	s := testStore()
	c := NewController(s.Projects, s.Staff, s.Assignments, nil)

	if err := c.Enter(Cell{ProjectID: 7, Date: "2024-06-10"}); !errors.Is(err, ErrNotDragging) {
		t.Errorf("Expected ErrNotDragging, got %v", err)
	}
	if err := c.BeginDrag(Payload{Kind: NewFromStaff}); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("Expected ErrInvalidPayload, got %v", err)
	}

	_ = c.BeginDrag(FromStaff(3))
	if err := c.BeginDrag(FromStaff(3)); !errors.Is(err, ErrGestureActive) {
		t.Errorf("Expected ErrGestureActive, got %v", err)
	}
	if err := c.Enter(Cell{ProjectID: 7, Date: "June 10"}); !errors.Is(err, ErrInvalidCell) {
		t.Errorf("Expected ErrInvalidCell, got %v", err)
	}
	if c.Status().State != Dragging {
		t.Errorf("Expected rejected enter to keep dragging state, got %s", c.Status().State)
	}
}

func TestPlanCreate(t *testing.T) {
	intent := PlanCreate(models.Staff{ID: 3, DailyRate: 200}, Cell{ProjectID: 7, Date: "2024-06-10"})
	want := models.Assignment{StaffID: 3, ProjectID: 7, StartDate: "2024-06-10", EndDate: "2024-06-10", HoursPerDay: 8, TotalCost: 200}
	if intent.Kind != IntentCreate || intent.Assignment != want {
		t.Errorf("Unexpected intent %+v", intent)
	}
}
