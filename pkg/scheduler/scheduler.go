package scheduler

import (
	"time"

	"github.com/arnavshah/crewplan-api/pkg/calendar"
	"github.com/arnavshah/crewplan-api/pkg/models"
)

// Grid answers occupancy and cost questions about (project, day) cells.
// It is built from a snapshot and never changes it.
type Grid struct {
	Projects    map[int]models.Project
	Staff       map[int]models.Staff
	Assignments []models.Assignment
}

// NewGrid indexes a snapshot of the collections
func NewGrid(projects []models.Project, staff []models.Staff, assignments []models.Assignment) *Grid {
	g := &Grid{
		Projects:    make(map[int]models.Project, len(projects)),
		Staff:       make(map[int]models.Staff, len(staff)),
		Assignments: assignments,
	}
	for _, p := range projects {
		g.Projects[p.ID] = p
	}
	for _, s := range staff {
		g.Staff[s.ID] = s
	}
	return g
}

// Covers checks if an assignment's inclusive day range contains day
func Covers(a models.Assignment, day string) bool {
	return a.StartDate <= day && day <= a.EndDate
}

// Overlap checks if two inclusive day ranges share at least one day
func Overlap(aStart, aEnd, bStart, bEnd string) bool {
	return aStart <= bEnd && bStart <= aEnd
}

// AssignmentsInCell returns the assignments of a project that cover day,
// in collection order
func (g *Grid) AssignmentsInCell(projectID int, day string) []models.Assignment {
	var out []models.Assignment
	for _, a := range g.Assignments {
		if a.ProjectID == projectID && Covers(a, day) {
			out = append(out, a)
		}
	}
	return out
}

// CellCost sums the daily rate of everyone working the cell.
// Staff that cannot be resolved add nothing.
func (g *Grid) CellCost(projectID int, day string) float64 {
	var total float64
	for _, a := range g.AssignmentsInCell(projectID, day) {
		if s, ok := g.Staff[a.StaffID]; ok {
			total += s.DailyRate
		}
	}
	return total
}

// StaffName resolves a staff member's name, "Unknown" when missing
func (g *Grid) StaffName(id int) string {
	if s, ok := g.Staff[id]; ok {
		return s.Name
	}
	return "Unknown"
}

// ProjectName resolves a project's name, "Unknown" when missing
func (g *Grid) ProjectName(id int) string {
	if p, ok := g.Projects[id]; ok {
		return p.Name
	}
	return "Unknown"
}

// WouldOverlap checks if staffID already works on day on any other project.
// The assignment being moved, if any, is ignored.
func (g *Grid) WouldOverlap(staffID, projectID int, day string, ignoreAssignmentID int) bool {
	for _, a := range g.Assignments {
		if a.ID == ignoreAssignmentID || a.StaffID != staffID || a.ProjectID == projectID {
			continue
		}
		if Covers(a, day) {
			return true
		}
	}
	return false
}

// Conflict is a staff member booked on more than one project on a day
type Conflict struct {
	Date       string `json:"date"`
	StaffID    int    `json:"staff_id"`
	StaffName  string `json:"staff_name"`
	ProjectIDs []int  `json:"project_ids"`
}

// Conflicts lists double bookings on day, ordered by first appearance
func (g *Grid) Conflicts(day string) []Conflict {
	projectsByStaff := make(map[int][]int)
	var order []int
	for _, a := range g.Assignments {
		if !Covers(a, day) {
			continue
		}
		ids, seen := projectsByStaff[a.StaffID]
		if !seen {
			order = append(order, a.StaffID)
		}
		if !containsInt(ids, a.ProjectID) {
			projectsByStaff[a.StaffID] = append(ids, a.ProjectID)
		}
	}

	var out []Conflict
	for _, staffID := range order {
		ids := projectsByStaff[staffID]
		if len(ids) < 2 {
			continue
		}
		out = append(out, Conflict{
			Date:       day,
			StaffID:    staffID,
			StaffName:  g.StaffName(staffID),
			ProjectIDs: ids,
		})
	}
	return out
}

// Week is a Monday to Sunday range of days
type Week struct {
	Start time.Time
	End   time.Time
}

// WeekOf returns the week containing anchor
func WeekOf(anchor time.Time) Week {
	day := calendar.Midnight(anchor)
	// Monday is 0, Sunday is 6
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return Week{Start: start, End: start.AddDate(0, 0, 6)}
}

// Next returns the following week
func (w Week) Next() Week { return WeekOf(w.Start.AddDate(0, 0, 7)) }

// Prev returns the preceding week
func (w Week) Prev() Week { return WeekOf(w.Start.AddDate(0, 0, -7)) }

// Days lists the seven day strings of the week
func (w Week) Days() []string {
	days := make([]string, 7)
	for i := range days {
		days[i] = calendar.Format(w.Start.AddDate(0, 0, i))
	}
	return days
}

// Contains checks if day falls inside the week
func (w Week) Contains(day string) bool {
	return calendar.Format(w.Start) <= day && day <= calendar.Format(w.End)
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
