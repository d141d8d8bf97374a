package scheduler

import (
	"testing"
	"time"

	"github.com/arnavshah/crewplan-api/pkg/calendar"
	"github.com/arnavshah/crewplan-api/pkg/models"
)

func testGrid() *Grid {
	projects := []models.Project{
		{ID: 7, Name: "Riverside"},
		{ID: 9, Name: "Maple Roof"},
	}
	staff := []models.Staff{
		{ID: 3, Name: "Tom", DailyRate: 200},
		{ID: 4, Name: "Ana", DailyRate: 288},
	}
	assignments := []models.Assignment{
		{ID: 12, StaffID: 3, ProjectID: 7, StartDate: "2024-06-10", EndDate: "2024-06-10"},
		{ID: 13, StaffID: 4, ProjectID: 7, StartDate: "2024-06-07", EndDate: "2024-06-18"},
		{ID: 14, StaffID: 99, ProjectID: 7, StartDate: "2024-06-10", EndDate: "2024-06-11"},
		{ID: 15, StaffID: 3, ProjectID: 9, StartDate: "2024-06-10", EndDate: "2024-06-12"},
	}
	return NewGrid(projects, staff, assignments)
}

func TestAssignmentsInCell(t *testing.T) {
	g := testGrid()

	got := g.AssignmentsInCell(7, "2024-06-10")
	if len(got) != 3 {
		t.Fatalf("Expected 3 assignments in cell, got %d", len(got))
	}
	// collection order, not sorted
	wantIDs := []int{12, 13, 14}
	for i, a := range got {
		if a.ID != wantIDs[i] {
			t.Errorf("Position %d: expected assignment %d, got %d", i, wantIDs[i], a.ID)
		}
	}

	if got := g.AssignmentsInCell(7, "2024-06-19"); len(got) != 0 {
		t.Errorf("Expected empty cell after range end, got %d", len(got))
	}
	if got := g.AssignmentsInCell(8, "2024-06-10"); len(got) != 0 {
		t.Errorf("Expected empty cell for unknown project, got %d", len(got))
	}
}

func TestAssignmentsInCell_RangeProperty(t *testing.T) {
	g := testGrid()
	start, _ := calendar.Parse("2024-06-01")

	for _, a := range g.Assignments {
		for i := 0; i < 30; i++ {
			day := calendar.Format(start.AddDate(0, 0, i))
			inRange := a.StartDate <= day && day <= a.EndDate

			found := false
			for _, c := range g.AssignmentsInCell(a.ProjectID, day) {
				if c.ID == a.ID {
					found = true
				}
			}
			if found != inRange {
				t.Errorf("Assignment %d on %s: in cell = %v, in range = %v", a.ID, day, found, inRange)
			}
		}
	}
}

func TestCellCost_UnknownStaff(t *testing.T) {
	g := testGrid()

	// staff 3 (200) + staff 4 (288) + unknown staff 99 (0)
	if cost := g.CellCost(7, "2024-06-10"); cost != 488 {
		t.Errorf("Expected cell cost 488, got %f", cost)
	}
	if cost := g.CellCost(7, "2024-06-12"); cost != 288 {
		t.Errorf("Expected cell cost 288, got %f", cost)
	}
	if cost := g.CellCost(42, "2024-06-12"); cost != 0 {
		t.Errorf("Expected zero cost for unknown project, got %f", cost)
	}
}

func TestWeekOf(t *testing.T) {
	tests := []struct {
		anchor string
		start  string
		end    string
	}{
		{"2024-06-10", "2024-06-10", "2024-06-16"}, // Monday
		{"2024-06-12", "2024-06-10", "2024-06-16"},
		{"2024-06-16", "2024-06-10", "2024-06-16"}, // Sunday belongs to the prior Monday
		{"2024-01-01", "2024-01-01", "2024-01-07"},
		{"2023-12-31", "2023-12-25", "2023-12-31"},
	}

	for _, tt := range tests {
		anchor, _ := calendar.Parse(tt.anchor)
		w := WeekOf(anchor)
		if got := calendar.Format(w.Start); got != tt.start {
			t.Errorf("WeekOf(%s) start = %s, want %s", tt.anchor, got, tt.start)
		}
		if got := calendar.Format(w.End); got != tt.end {
			t.Errorf("WeekOf(%s) end = %s, want %s", tt.anchor, got, tt.end)
		}
	}
}

func TestWeekNavigation(t *testing.T) {
	anchor := time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)
	w := WeekOf(anchor)

	if got := calendar.Format(w.Next().Start); got != "2024-06-17" {
		t.Errorf("Expected next week to start 2024-06-17, got %s", got)
	}
	if got := calendar.Format(w.Prev().Start); got != "2024-06-03" {
		t.Errorf("Expected previous week to start 2024-06-03, got %s", got)
	}
	if got := calendar.Format(w.Prev().Prev().Next().Next().Start); got != "2024-06-10" {
		t.Errorf("Expected round trip back to 2024-06-10, got %s", got)
	}

	days := w.Days()
	if len(days) != 7 || days[0] != "2024-06-10" || days[6] != "2024-06-16" {
		t.Errorf("Unexpected days %v", days)
	}
	if !w.Contains("2024-06-16") || w.Contains("2024-06-17") {
		t.Error("Contains disagrees with the week range")
	}
}

func TestMultiWeekAssignmentAppearsInEveryWeek(t *testing.T) {
	g := testGrid()
	anchor, _ := calendar.Parse("2024-06-07")

	// assignment 13 spans 2024-06-07 .. 2024-06-18: three weeks
	for i, w := 0, WeekOf(anchor); i < 3; i, w = i+1, w.Next() {
		found := false
		for _, day := range w.Days() {
			for _, a := range g.AssignmentsInCell(7, day) {
				if a.ID == 13 {
					found = true
				}
			}
		}
		if !found {
			t.Errorf("Assignment 13 missing from week starting %s", calendar.Format(w.Start))
		}
	}
}

func TestConflicts(t *testing.T) {
	g := testGrid()

	cs := g.Conflicts("2024-06-10")
	if len(cs) != 1 {
		t.Fatalf("Expected 1 conflict, got %d", len(cs))
	}
	if cs[0].StaffID != 3 || len(cs[0].ProjectIDs) != 2 {
		t.Errorf("Unexpected conflict %+v", cs[0])
	}
	if cs := g.Conflicts("2024-06-13"); len(cs) != 0 {
		t.Errorf("Expected no conflicts, got %d", len(cs))
	}

	if !g.WouldOverlap(4, 9, "2024-06-12", 0) {
		t.Error("Expected staff 4 to overlap on project 9")
	}
	if g.WouldOverlap(3, 7, "2024-06-10", 15) {
		t.Error("Expected the moved assignment to be ignored")
	}
}

func TestWeekView(t *testing.T) {
	g := testGrid()
	anchor, _ := calendar.Parse("2024-06-10")
	projects := []models.Project{g.Projects[7], g.Projects[9]}
	staff := []models.Staff{g.Staff[3], g.Staff[4]}

	v := g.WeekView(projects, staff, WeekOf(anchor))

	if v.WeekStart != "2024-06-10" || v.PrevWeek != "2024-06-03" || v.NextWeek != "2024-06-17" {
		t.Errorf("Unexpected week bounds %s %s %s", v.WeekStart, v.PrevWeek, v.NextWeek)
	}
	if len(v.Rows) != 2 || len(v.Rows[0].Cells) != 7 {
		t.Fatalf("Expected 2 rows of 7 cells")
	}

	monday := v.Rows[0].Cells[0]
	if len(monday.Chips) != 3 || monday.Cost != 488 {
		t.Errorf("Unexpected Monday cell %+v", monday)
	}
	if monday.Chips[2].StaffName != "Unknown" {
		t.Errorf("Expected unknown staff chip, got %q", monday.Chips[2].StaffName)
	}
	if !monday.Chips[0].Conflict {
		t.Error("Expected staff 3 chip to be flagged as a conflict")
	}

	if v.Staff[0].DaysThisWeek != 3 {
		t.Errorf("Expected staff 3 to work 3 days this week, got %d", v.Staff[0].DaysThisWeek)
	}
}

func TestDetail_DanglingReferences(t *testing.T) {
	g := testGrid()
	d := g.Detail(models.Assignment{ID: 1, StaffID: 99, ProjectID: 100, StartDate: "2024-06-10", EndDate: "2024-06-12"})
	if d.StaffName != "Unknown" || d.ProjectName != "Unknown" {
		t.Errorf("Expected unknown names, got %q / %q", d.StaffName, d.ProjectName)
	}
	if d.Days != 3 {
		t.Errorf("Expected 3 days, got %d", d.Days)
	}
}
