// Package filters implements the list searches of the dashboard pages
package filters

import (
	"strings"

	"github.com/arnavshah/crewplan-api/pkg/models"
)

// ProjectQuery filters the project list. Zero values match everything.
type ProjectQuery struct {
	Search string               `form:"search"`
	Status models.ProjectStatus `form:"status"`
}

// StaffQuery filters the staff list
type StaffQuery struct {
	Search string      `form:"search"`
	Role   models.Role `form:"role"`
}

// TaskQuery filters the task board
type TaskQuery struct {
	Search    string            `form:"search"`
	Status    models.TaskStatus `form:"status"`
	ProjectID int               `form:"project_id"`
}

func matches(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func normalize(search string) string {
	return strings.ToLower(strings.TrimSpace(search))
}

// Projects keeps projects whose name, location or client contains the search
// term, ignoring case
func Projects(projects []models.Project, q ProjectQuery) []models.Project {
	term := normalize(q.Search)
	out := []models.Project{}
	for _, p := range projects {
		if q.Status != "" && p.Status != q.Status {
			continue
		}
		if matches(term, p.Name, p.Location, p.ClientName) {
			out = append(out, p)
		}
	}
	return out
}

// Staff keeps staff whose name, role or any skill contains the search term
func Staff(staff []models.Staff, q StaffQuery) []models.Staff {
	term := normalize(q.Search)
	out := []models.Staff{}
	for _, s := range staff {
		if q.Role != "" && s.Role != q.Role {
			continue
		}
		if matches(term, append([]string{s.Name, string(s.Role)}, s.Skills...)...) {
			out = append(out, s)
		}
	}
	return out
}

// Tasks keeps tasks whose name or description contains the search term
func Tasks(tasks []models.Task, q TaskQuery) []models.Task {
	term := normalize(q.Search)
	out := []models.Task{}
	for _, t := range tasks {
		if q.Status != "" && t.Status != q.Status {
			continue
		}
		if q.ProjectID != 0 && t.ProjectID != q.ProjectID {
			continue
		}
		if matches(term, t.Name, t.Description) {
			out = append(out, t)
		}
	}
	return out
}

// Column is one status column of the task board
type Column struct {
	Status models.TaskStatus `json:"status"`
	Tasks  []models.Task     `json:"tasks"`
}

// Board groups tasks into one column per status, in board order. Tasks with
// an unknown status are left out.
func Board(tasks []models.Task) []Column {
	cols := make([]Column, len(models.TaskStatuses))
	index := make(map[models.TaskStatus]int, len(cols))
	for i, st := range models.TaskStatuses {
		cols[i] = Column{Status: st, Tasks: []models.Task{}}
		index[st] = i
	}
	for _, t := range tasks {
		if i, ok := index[t.Status]; ok {
			cols[i].Tasks = append(cols[i].Tasks, t)
		}
	}
	return cols
}

// ProjectStaff resolves the assigned staff ids of a project, skipping ids
// that no longer exist
func ProjectStaff(p models.Project, staff []models.Staff) []models.Staff {
	out := []models.Staff{}
	for _, s := range staff {
		for _, id := range p.AssignedStaff {
			if s.ID == id {
				out = append(out, s)
				break
			}
		}
	}
	return out
}
