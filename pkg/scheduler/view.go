package scheduler

import (
	"github.com/arnavshah/crewplan-api/pkg/calendar"
	"github.com/arnavshah/crewplan-api/pkg/models"
)

// Chip is one assignment drawn inside a cell
type Chip struct {
	AssignmentID int     `json:"assignment_id"`
	StaffID      int     `json:"staff_id"`
	StaffName    string  `json:"staff_name"`
	Role         string  `json:"role,omitempty"`
	HoursPerDay  float64 `json:"hours_per_day"`
	Conflict     bool    `json:"conflict"`
}

// Cell is one project on one day
type Cell struct {
	Date  string  `json:"date"`
	Chips []Chip  `json:"assignments"`
	Cost  float64 `json:"cost"`
}

// Row is one project across the week
type Row struct {
	ProjectID   int     `json:"project_id"`
	ProjectName string  `json:"project_name"`
	Location    string  `json:"location"`
	Status      string  `json:"status"`
	Cells       []Cell  `json:"cells"`
	WeekCost    float64 `json:"week_cost"`
}

// PoolMember is a staff card in the drag source list
type PoolMember struct {
	StaffID      int     `json:"staff_id"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	DailyRate    float64 `json:"daily_rate"`
	DaysThisWeek int     `json:"days_this_week"`
}

// WeekView is everything the timeline draws for one week
type WeekView struct {
	WeekStart string       `json:"week_start"`
	WeekEnd   string       `json:"week_end"`
	PrevWeek  string       `json:"prev_week"`
	NextWeek  string       `json:"next_week"`
	Days      []string     `json:"days"`
	Rows      []Row        `json:"rows"`
	Staff     []PoolMember `json:"staff"`
	Conflicts []Conflict   `json:"conflicts"`
	TotalCost float64      `json:"total_cost"`
}

// WeekView lays out projects in order against the days of w
func (g *Grid) WeekView(projects []models.Project, staff []models.Staff, w Week) WeekView {
	days := w.Days()
	v := WeekView{
		WeekStart: calendar.Format(w.Start),
		WeekEnd:   calendar.Format(w.End),
		PrevWeek:  calendar.Format(w.Prev().Start),
		NextWeek:  calendar.Format(w.Next().Start),
		Days:      days,
		Rows:      make([]Row, 0, len(projects)),
		Staff:     make([]PoolMember, 0, len(staff)),
		Conflicts: []Conflict{},
	}

	conflicted := make(map[string]map[int]bool, len(days))
	for _, day := range days {
		cs := g.Conflicts(day)
		v.Conflicts = append(v.Conflicts, cs...)
		set := make(map[int]bool, len(cs))
		for _, c := range cs {
			set[c.StaffID] = true
		}
		conflicted[day] = set
	}

	for _, p := range projects {
		row := Row{
			ProjectID:   p.ID,
			ProjectName: p.Name,
			Location:    p.Location,
			Status:      string(p.Status),
			Cells:       make([]Cell, 0, len(days)),
		}
		for _, day := range days {
			cell := Cell{Date: day, Chips: []Chip{}, Cost: g.CellCost(p.ID, day)}
			for _, a := range g.AssignmentsInCell(p.ID, day) {
				chip := Chip{
					AssignmentID: a.ID,
					StaffID:      a.StaffID,
					StaffName:    g.StaffName(a.StaffID),
					HoursPerDay:  a.HoursPerDay,
					Conflict:     conflicted[day][a.StaffID],
				}
				if s, ok := g.Staff[a.StaffID]; ok {
					chip.Role = string(s.Role)
				}
				cell.Chips = append(cell.Chips, chip)
			}
			row.WeekCost += cell.Cost
			row.Cells = append(row.Cells, cell)
		}
		v.TotalCost += row.WeekCost
		v.Rows = append(v.Rows, row)
	}

	for _, s := range staff {
		member := PoolMember{StaffID: s.ID, Name: s.Name, Role: string(s.Role), DailyRate: s.DailyRate}
		for _, day := range days {
			for _, a := range g.Assignments {
				if a.StaffID == s.ID && Covers(a, day) {
					member.DaysThisWeek++
					break
				}
			}
		}
		v.Staff = append(v.Staff, member)
	}

	return v
}

// Detail is the assignment detail view with references resolved
type Detail struct {
	Assignment  models.Assignment `json:"assignment"`
	StaffName   string            `json:"staff_name"`
	ProjectName string            `json:"project_name"`
	DailyRate   float64           `json:"daily_rate"`
	Days        int               `json:"days"`
}

// Detail resolves the staff and project of a
func (g *Grid) Detail(a models.Assignment) Detail {
	d := Detail{
		Assignment:  a,
		StaffName:   g.StaffName(a.StaffID),
		ProjectName: g.ProjectName(a.ProjectID),
		Days:        calendar.SpanDays(a.StartDate, a.EndDate),
	}
	if s, ok := g.Staff[a.StaffID]; ok {
		d.DailyRate = s.DailyRate
	}
	return d
}
