// Package reports derives cost, utilisation and status figures from a store
// snapshot. Nothing here is cached and nothing here fails: references that
// cannot be resolved count as zero.
package reports

import (
	"math"
	"sort"

	"github.com/arnavshah/crewplan-api/pkg/models"
	"github.com/arnavshah/crewplan-api/pkg/scheduler"
	"github.com/arnavshah/crewplan-api/pkg/store"
)

// UtilizationWindowDays is the number of days treated as full utilisation
const UtilizationWindowDays = 30

// TopN is the length of the ranking lists
const TopN = 5

// ProjectCost is the labor rollup of one project
type ProjectCost struct {
	ProjectID       int     `json:"project_id"`
	Name            string  `json:"name"`
	EstimatedBudget float64 `json:"estimated_budget"`
	LaborCost       float64 `json:"labor_cost"`
	BudgetVariance  float64 `json:"budget_variance"`
	Assignments     int     `json:"assignments"`
}

// ProjectCosts computes labor cost and budget variance per project, in
// collection order
func ProjectCosts(projects []models.Project, staff []models.Staff, assignments []models.Assignment) []ProjectCost {
	byID := staffIndex(staff)
	out := make([]ProjectCost, 0, len(projects))
	for _, p := range projects {
		pc := ProjectCost{ProjectID: p.ID, Name: p.Name, EstimatedBudget: p.EstimatedBudget}
		for _, a := range assignments {
			if a.ProjectID != p.ID {
				continue
			}
			pc.Assignments++
			if s, ok := byID[a.StaffID]; ok {
				pc.LaborCost += scheduler.RowLaborCost(a, s)
			}
		}
		pc.BudgetVariance = p.EstimatedBudget - pc.LaborCost
		out = append(out, pc)
	}
	return out
}

// StaffUtilization is the workload of one staff member
type StaffUtilization struct {
	StaffID         int     `json:"staff_id"`
	Name            string  `json:"name"`
	Role            string  `json:"role"`
	AssignedDays    int     `json:"assigned_days"`
	TotalRevenue    float64 `json:"total_revenue"`
	UtilizationRate float64 `json:"utilization_rate"`
}

// StaffUtilizations counts assignment rows per staff member. Each row is one
// assigned day whatever its span.
func StaffUtilizations(staff []models.Staff, assignments []models.Assignment) []StaffUtilization {
	rows := make(map[int]int, len(staff))
	for _, a := range assignments {
		rows[a.StaffID]++
	}

	out := make([]StaffUtilization, 0, len(staff))
	for _, s := range staff {
		days := rows[s.ID]
		out = append(out, StaffUtilization{
			StaffID:         s.ID,
			Name:            s.Name,
			Role:            string(s.Role),
			AssignedDays:    days,
			TotalRevenue:    float64(days) * s.DailyRate,
			UtilizationRate: float64(days) / UtilizationWindowDays * 100,
		})
	}
	return out
}

// TopProjects returns the n projects with the highest labor cost. Ties keep
// collection order. The input is not modified.
func TopProjects(costs []ProjectCost, n int) []ProjectCost {
	ranked := append([]ProjectCost(nil), costs...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].LaborCost > ranked[j].LaborCost
	})
	return head(ranked, n)
}

// TopStaff returns the n staff members with the highest revenue. Ties keep
// collection order. The input is not modified.
func TopStaff(utils []StaffUtilization, n int) []StaffUtilization {
	ranked := append([]StaffUtilization(nil), utils...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalRevenue > ranked[j].TotalRevenue
	})
	return head(ranked, n)
}

func head[T any](xs []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(xs) > n {
		return xs[:n]
	}
	return xs
}

// Portfolio budget classes, thresholds 100 and 80
const (
	PortfolioOver      = "over"
	PortfolioNearLimit = "near-limit"
	PortfolioOnTrack   = "on-track"
)

// Project budget classes, thresholds 110 and 90
const (
	BudgetOver    = "over"
	BudgetWarning = "warning"
	BudgetOnTrack = "on-track"
)

// BudgetUtilization is total actual cost over total estimated budget as a
// percentage, 0 when there is no budget
func BudgetUtilization(projects []models.Project) float64 {
	var budget, actual float64
	for _, p := range projects {
		budget += p.EstimatedBudget
		actual += p.ActualCost
	}
	if budget <= 0 {
		return 0
	}
	return actual / budget * 100
}

// ClassifyPortfolio labels the aggregate budget utilisation
func ClassifyPortfolio(pct float64) string {
	switch {
	case pct > 100:
		return PortfolioOver
	case pct > 80:
		return PortfolioNearLimit
	default:
		return PortfolioOnTrack
	}
}

// ClassifyProject labels a single project's budget utilisation
func ClassifyProject(pct float64) string {
	switch {
	case pct > 110:
		return BudgetOver
	case pct > 90:
		return BudgetWarning
	default:
		return BudgetOnTrack
	}
}

// ProjectBudgetStatus badges one project. A project without a budget or
// without any recorded cost is on track.
func ProjectBudgetStatus(p models.Project) string {
	if p.EstimatedBudget == 0 || p.ActualCost == 0 {
		return BudgetOnTrack
	}
	return ClassifyProject(p.ActualCost / p.EstimatedBudget * 100)
}

// ProjectProgress is the rounded percentage of done tasks belonging to
// projectID, 0 when it has no tasks
func ProjectProgress(projectID int, tasks []models.Task) int {
	var total, done int
	for _, t := range tasks {
		if t.ProjectID != projectID {
			continue
		}
		total++
		if t.Status == models.TaskDone {
			done++
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// Metrics are the portfolio headline figures
type Metrics struct {
	TotalProjects     int     `json:"total_projects"`
	ActiveProjects    int     `json:"active_projects"`
	CompletedProjects int     `json:"completed_projects"`
	ActiveAssignments int     `json:"active_assignments"`
	TotalBudget       float64 `json:"total_budget"`
	TotalCost         float64 `json:"total_cost"`
	// BudgetVariance is (cost - budget) / budget as a percentage
	BudgetVariance    float64 `json:"budget_variance"`
	BudgetUtilization float64 `json:"budget_utilization"`
	BudgetStatus      string  `json:"budget_status"`
}

// PortfolioMetrics computes the headline figures
func PortfolioMetrics(projects []models.Project, assignments []models.Assignment) Metrics {
	m := Metrics{TotalProjects: len(projects), ActiveAssignments: len(assignments)}
	for _, p := range projects {
		switch p.Status {
		case models.ProjectInProgress:
			m.ActiveProjects++
		case models.ProjectCompleted:
			m.CompletedProjects++
		}
		m.TotalBudget += p.EstimatedBudget
		m.TotalCost += p.ActualCost
	}
	if m.TotalBudget > 0 {
		m.BudgetVariance = (m.TotalCost - m.TotalBudget) / m.TotalBudget * 100
	}
	m.BudgetUtilization = BudgetUtilization(projects)
	m.BudgetStatus = ClassifyPortfolio(m.BudgetUtilization)
	return m
}

// StatusShare is the count and share of projects in one status
type StatusShare struct {
	Status     models.ProjectStatus `json:"status"`
	Count      int                  `json:"count"`
	Percentage float64              `json:"percentage"`
}

// StatusDistribution covers every project status, in display order
func StatusDistribution(projects []models.Project) []StatusShare {
	out := make([]StatusShare, 0, len(models.ProjectStatuses))
	for _, st := range models.ProjectStatuses {
		share := StatusShare{Status: st}
		for _, p := range projects {
			if p.Status == st {
				share.Count++
			}
		}
		if len(projects) > 0 {
			share.Percentage = float64(share.Count) / float64(len(projects)) * 100
		}
		out = append(out, share)
	}
	return out
}

// Report is the full reports page
type Report struct {
	Metrics      Metrics            `json:"metrics"`
	ProjectCosts []ProjectCost      `json:"project_costs"`
	Utilization  []StaffUtilization `json:"staff_utilization"`
	TopProjects  []ProjectCost      `json:"top_projects"`
	TopStaff     []StaffUtilization `json:"top_staff"`
	Statuses     []StatusShare      `json:"status_distribution"`
}

// Build computes every report from one snapshot
func Build(snap store.Snapshot) Report {
	costs := ProjectCosts(snap.Projects, snap.Staff, snap.Assignments)
	utils := StaffUtilizations(snap.Staff, snap.Assignments)
	return Report{
		Metrics:      PortfolioMetrics(snap.Projects, snap.Assignments),
		ProjectCosts: costs,
		Utilization:  utils,
		TopProjects:  TopProjects(costs, TopN),
		TopStaff:     TopStaff(utils, TopN),
		Statuses:     StatusDistribution(snap.Projects),
	}
}

func staffIndex(staff []models.Staff) map[int]models.Staff {
	m := make(map[int]models.Staff, len(staff))
	for _, s := range staff {
		m[s.ID] = s
	}
	return m
}
