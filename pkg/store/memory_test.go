package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/arnavshah/crewplan-api/pkg/models"
)

func newTestMemory() *Store {
	return NewMemory(
		[]models.Project{{ID: 1, Name: "Riverside", EstimatedBudget: 1000}, {ID: 4, Name: "Depot"}},
		[]models.Staff{{ID: 3, Name: "Tom", DailyRate: 200, Skills: []string{"framing"}}},
		[]models.Task{},
		[]models.Assignment{{ID: 12, StaffID: 3, ProjectID: 1, StartDate: "2024-06-10", EndDate: "2024-06-10"}},
		Latency{},
	)
}

func TestMemory_CreateAssignsSequentialIDs(t *testing.T) {
	s := newTestMemory()
	ctx := context.Background()

	prev := 4
	for i := 0; i < 5; i++ {
		p, err := s.Projects.Create(ctx, models.Project{Name: "New"})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if p.ID != prev+1 {
			t.Errorf("Expected id %d, got %d", prev+1, p.ID)
		}
		prev = p.ID
	}
}

func TestMemory_NoIDReuse(t *testing.T) {
	s := newTestMemory()
	ctx := context.Background()

	// freeing id 1 leaves 4 as the max
	if ok, err := s.Projects.Delete(ctx, 1); !ok || err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	p, _ := s.Projects.Create(ctx, models.Project{Name: "After delete"})
	if p.ID != 5 {
		t.Errorf("Expected id 5, got %d", p.ID)
	}

	// an emptied collection starts again at 1
	a := s.Assignments
	if _, err := a.Delete(ctx, 12); err != nil {
		t.Fatal(err)
	}
	created, _ := a.Create(ctx, models.Assignment{StaffID: 3, ProjectID: 4})
	if created.ID != 1 {
		t.Errorf("Expected id 1 in empty collection, got %d", created.ID)
	}
}

func TestMemory_DeleteUnknownLeavesCollection(t *testing.T) {
	s := newTestMemory()
	ctx := context.Background()

	before, _ := s.Projects.GetAll(ctx)
	ok, err := s.Projects.Delete(ctx, 99)
	if ok || !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected not found, got %v %v", ok, err)
	}
	after, _ := s.Projects.GetAll(ctx)
	if len(after) != len(before) {
		t.Errorf("Expected %d rows, got %d", len(before), len(after))
	}

	if _, err := s.Staff.GetByID(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected not found on get, got %v", err)
	}
	if _, err := s.Tasks.Update(ctx, 99, func(*models.Task) {}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected not found on update, got %v", err)
	}
}

func TestMemory_UpdateMergesAndKeepsID(t *testing.T) {
	s := newTestMemory()
	ctx := context.Background()

	p, err := s.Projects.Update(ctx, 1, func(p *models.Project) {
		p.Name = "Riverside Phase 2"
		p.ID = 77
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if p.ID != 1 || p.Name != "Riverside Phase 2" || p.EstimatedBudget != 1000 {
		t.Errorf("Unexpected update result %+v", p)
	}
	if _, err := s.Projects.GetByID(ctx, 77); !errors.Is(err, ErrNotFound) {
		t.Error("Update must not change the id")
	}
}

func TestMemory_SnapshotIsolation(t *testing.T) {
	s := newTestMemory()
	ctx := context.Background()

	staff, _ := s.Staff.GetAll(ctx)
	staff[0].Name = "Changed"
	staff[0].Skills[0] = "changed"

	again, _ := s.Staff.GetByID(ctx, 3)
	if again.Name != "Tom" || again.Skills[0] != "framing" {
		t.Errorf("Caller mutation leaked into the store: %+v", again)
	}
}

func TestMemory_CreateDefaults(t *testing.T) {
	s := newTestMemory()
	ctx := context.Background()

	p, _ := s.Projects.Create(ctx, models.Project{Name: "New", ActualCost: 500, Tasks: []int{1}})
	if p.ActualCost != 0 || len(p.Tasks) != 0 || p.AssignedStaff == nil {
		t.Errorf("Unexpected project defaults %+v", p)
	}

	mc := s.Tasks.(*MemoryCollection[models.Task, *models.Task])
	mc.today = func() string { return "2024-06-10" }
	task, _ := s.Tasks.Create(ctx, models.Task{Name: "Pour"})
	if task.CreatedDate != "2024-06-10" {
		t.Errorf("Expected created date stamp, got %q", task.CreatedDate)
	}
}

func TestMemory_ConcurrentCreatesGetUniqueIDs(t *testing.T) {
	s := newTestMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make(chan int, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := s.Assignments.Create(ctx, models.Assignment{StaffID: 3, ProjectID: 1})
			if err == nil {
				ids <- a.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int]bool{}
	for id := range ids {
		if seen[id] {
			t.Errorf("Duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != 20 {
		t.Errorf("Expected 20 ids, got %d", len(seen))
	}
}

func TestMemory_Latency(t *testing.T) {
	c := NewMemoryCollection[models.Project]("projects", nil, Latency{GetAll: 20 * time.Millisecond})

	start := time.Now()
	if _, err := c.GetAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Expected at least 20ms delay, got %v", elapsed)
	}

	d := DefaultLatency(0.5)
	if d.Create != 250*time.Millisecond || d.GetByID != 100*time.Millisecond {
		t.Errorf("Unexpected scaled latency %+v", d)
	}
}

func TestSnapshot(t *testing.T) {
	s := Instrumented(newTestMemory())
	snap, err := s.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(snap.Projects) != 2 || len(snap.Staff) != 1 || len(snap.Tasks) != 0 || len(snap.Assignments) != 1 {
		t.Errorf("Unexpected snapshot sizes %+v", snap)
	}
}
