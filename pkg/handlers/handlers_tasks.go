package handlers

import (
	"net/http"

	"github.com/arnavshah/crewplan-api/pkg/calendar"
	"github.com/arnavshah/crewplan-api/pkg/filters"
	"github.com/arnavshah/crewplan-api/pkg/models"
	"github.com/arnavshah/crewplan-api/pkg/validation"
	"github.com/gin-gonic/gin"
)

// ListTasks returns tasks matching ?search=, ?status= and ?project_id=
func (h *Handler) ListTasks(c *gin.Context) {
	var q filters.TaskQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tasks, err := h.Store.Tasks.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	matched := filters.Tasks(tasks, q)
	c.JSON(http.StatusOK, gin.H{"tasks": matched, "count": len(matched)})
}

// GetTaskBoard groups the filtered tasks into status columns
func (h *Handler) GetTaskBoard(c *gin.Context) {
	var q filters.TaskQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// the board always shows every column
	q.Status = ""
	tasks, err := h.Store.Tasks.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": filters.Board(filters.Tasks(tasks, q))})
}

func (h *Handler) GetTask(c *gin.Context) {
	getOne(h, c, h.Store.Tasks)
}

// CreateTask validates and stores a new task
func (h *Handler) CreateTask(c *gin.Context) {
	var t models.Task
	if !bindJSON(c, &t) {
		return
	}
	if t.Status == "" {
		t.Status = models.TaskToDo
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	if err := validation.Task(t); err != nil {
		h.respondError(c, err)
		return
	}
	if t.Status == models.TaskDone {
		t.CompletedDate = calendar.Today()
	}
	created, err := h.Store.Tasks.Create(c.Request.Context(), t)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateTask merges a partial task over the stored one
func (h *Handler) UpdateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch models.TaskPatch
	if !bindJSON(c, &patch) {
		return
	}
	h.patchTask(c, id, patch)
}

// UpdateTaskStatus moves a task to another board column
func (h *Handler) UpdateTaskStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req struct {
		Status models.TaskStatus `json:"status" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	h.patchTask(c, id, models.TaskPatch{Status: &req.Status})
}

// patchTask stamps the completion day whenever the patch marks the task done
func (h *Handler) patchTask(c *gin.Context, id int, patch models.TaskPatch) {
	if patch.Status != nil && *patch.Status == models.TaskDone && patch.CompletedDate == nil {
		today := calendar.Today()
		patch.CompletedDate = &today
	}
	updated, ok := patchOne(h, c, h.Store.Tasks, id, patch.Apply, validation.Task)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	deleteOne(h, c, h.Store.Tasks)
}
