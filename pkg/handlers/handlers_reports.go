package handlers

import (
	"net/http"

	"github.com/arnavshah/crewplan-api/pkg/reports"
	"github.com/arnavshah/crewplan-api/pkg/store"
	"github.com/gin-gonic/gin"
)

// snapshot loads every collection or answers the error
func (h *Handler) snapshot(c *gin.Context) (store.Snapshot, bool) {
	snap, err := h.Store.Snapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return store.Snapshot{}, false
	}
	return snap, true
}

// GetReport returns the whole reports page
func (h *Handler) GetReport(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, reports.Build(snap))
}

// GetReportSummary returns the headline metrics
func (h *Handler) GetReportSummary(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, reports.PortfolioMetrics(snap.Projects, snap.Assignments))
}

// GetProjectCosts returns labor cost and budget variance per project
func (h *Handler) GetProjectCosts(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	costs := reports.ProjectCosts(snap.Projects, snap.Staff, snap.Assignments)

	// Calculate totals
	var totalLabor, totalVariance float64
	for _, pc := range costs {
		totalLabor += pc.LaborCost
		totalVariance += pc.BudgetVariance
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": costs,
		"totals": gin.H{
			"labor_cost":      totalLabor,
			"budget_variance": totalVariance,
		},
	})
}

// GetStaffUtilization returns assigned days, revenue and utilisation per staff member
func (h *Handler) GetStaffUtilization(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"staff":       reports.StaffUtilizations(snap.Staff, snap.Assignments),
		"window_days": reports.UtilizationWindowDays,
	})
}

// GetTopRankings returns the top projects by cost and top staff by revenue
func (h *Handler) GetTopRankings(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"projects": reports.TopProjects(reports.ProjectCosts(snap.Projects, snap.Staff, snap.Assignments), reports.TopN),
		"staff":    reports.TopStaff(reports.StaffUtilizations(snap.Staff, snap.Assignments), reports.TopN),
	})
}

// GetStatusDistribution counts projects per status
func (h *Handler) GetStatusDistribution(c *gin.Context) {
	projects, err := h.Store.Projects.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":    len(projects),
		"statuses": reports.StatusDistribution(projects),
	})
}
