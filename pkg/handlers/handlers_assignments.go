package handlers

import (
	"context"
	"net/http"

	"github.com/arnavshah/crewplan-api/pkg/events"
	"github.com/arnavshah/crewplan-api/pkg/models"
	"github.com/arnavshah/crewplan-api/pkg/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListAssignments returns assignments, optionally for one ?staff_id= or ?project_id=
func (h *Handler) ListAssignments(c *gin.Context) {
	var q struct {
		StaffID   int `form:"staff_id"`
		ProjectID int `form:"project_id"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	all, err := h.Store.Assignments.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	out := make([]models.Assignment, 0, len(all))
	for _, a := range all {
		if q.StaffID != 0 && a.StaffID != q.StaffID {
			continue
		}
		if q.ProjectID != 0 && a.ProjectID != q.ProjectID {
			continue
		}
		out = append(out, a)
	}
	c.JSON(http.StatusOK, gin.H{"assignments": out, "count": len(out)})
}

func (h *Handler) GetAssignment(c *gin.Context) {
	getOne(h, c, h.Store.Assignments)
}

// CreateAssignment stores an assignment whose staff member and project exist
func (h *Handler) CreateAssignment(c *gin.Context) {
	var a models.Assignment
	if !bindJSON(c, &a) {
		return
	}
	if err := h.checkAssignment(c.Request.Context(), a); err != nil {
		h.respondError(c, err)
		return
	}
	created, err := h.Store.Assignments.Create(c.Request.Context(), a)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.publishAssignment(c.Request.Context(), events.AssignmentCreated, created)
	c.JSON(http.StatusCreated, created)
}

// UpdateAssignment merges a partial assignment over the stored one
func (h *Handler) UpdateAssignment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch models.AssignmentPatch
	if !bindJSON(c, &patch) {
		return
	}
	ctx := c.Request.Context()
	updated, ok := patchOne(h, c, h.Store.Assignments, id, patch.Apply, func(a models.Assignment) error {
		return h.checkAssignment(ctx, a)
	})
	if !ok {
		return
	}
	h.publishAssignment(ctx, events.AssignmentUpdated, updated)
	c.JSON(http.StatusOK, updated)
}

// DeleteAssignment removes an assignment, as the timeline detail view does
func (h *Handler) DeleteAssignment(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		return
	}
	existing, err := h.Store.Assignments.GetByID(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if _, ok := deleteOne(h, c, h.Store.Assignments); ok {
		h.publishAssignment(ctx, events.AssignmentDeleted, existing)
	}
}

func (h *Handler) checkAssignment(ctx context.Context, a models.Assignment) error {
	if err := validation.Assignment(a); err != nil {
		return err
	}
	return validation.AssignmentReferences(ctx, a, h.Store.Staff, h.Store.Projects)
}

// publishAssignment sends an assignment event. Broker failures are only logged.
func (h *Handler) publishAssignment(ctx context.Context, routingKey string, a models.Assignment) {
	if err := h.Events.Publish(ctx, routingKey, events.NewAssignmentEvent(routingKey, a)); err != nil {
		h.Logger.Warn("Failed to publish event",
			zap.String("routing_key", routingKey),
			zap.Int("assignment_id", a.ID),
			zap.Error(err))
	}
}
