package handlers

import (
	"net/http"

	"github.com/arnavshah/crewplan-api/pkg/filters"
	"github.com/arnavshah/crewplan-api/pkg/models"
	"github.com/arnavshah/crewplan-api/pkg/reports"
	"github.com/arnavshah/crewplan-api/pkg/validation"
	"github.com/gin-gonic/gin"
)

// projectCard is a project with its dashboard badges
type projectCard struct {
	models.Project
	Progress     int    `json:"progress"`
	BudgetStatus string `json:"budget_status"`
}

// ListProjects returns projects matching ?search= and ?status=
func (h *Handler) ListProjects(c *gin.Context) {
	var q filters.ProjectQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	projects, err := h.Store.Projects.GetAll(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	tasks, err := h.Store.Tasks.GetAll(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}

	matched := filters.Projects(projects, q)
	cards := make([]projectCard, 0, len(matched))
	for _, p := range matched {
		cards = append(cards, projectCard{
			Project:      p,
			Progress:     reports.ProjectProgress(p.ID, tasks),
			BudgetStatus: reports.ProjectBudgetStatus(p),
		})
	}
	c.JSON(http.StatusOK, gin.H{"projects": cards, "count": len(cards)})
}

func (h *Handler) GetProject(c *gin.Context) {
	getOne(h, c, h.Store.Projects)
}

// CreateProject validates and stores a new project
func (h *Handler) CreateProject(c *gin.Context) {
	var p models.Project
	if !bindJSON(c, &p) {
		return
	}
	if err := validation.Project(p); err != nil {
		h.respondError(c, err)
		return
	}
	created, err := h.Store.Projects.Create(c.Request.Context(), p)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateProject merges a partial project over the stored one
func (h *Handler) UpdateProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch models.ProjectPatch
	if !bindJSON(c, &patch) {
		return
	}
	updated, ok := patchOne(h, c, h.Store.Projects, id, patch.Apply, validation.Project)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteProject(c *gin.Context) {
	deleteOne(h, c, h.Store.Projects)
}

// GetProjectProgress is the project detail view: progress, budget badge,
// its tasks and its assigned staff
func (h *Handler) GetProjectProgress(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	p, err := h.Store.Projects.GetByID(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	snap, err := h.Store.Snapshot(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}

	costs := reports.ProjectCosts([]models.Project{p}, snap.Staff, snap.Assignments)
	c.JSON(http.StatusOK, gin.H{
		"project":       p,
		"progress":      reports.ProjectProgress(p.ID, snap.Tasks),
		"budget_status": reports.ProjectBudgetStatus(p),
		"labor_cost":    costs[0].LaborCost,
		"tasks":         filters.Tasks(snap.Tasks, filters.TaskQuery{ProjectID: p.ID}),
		"staff":         filters.ProjectStaff(p, snap.Staff),
	})
}
