package handlers

import (
	"errors"
	"net/http"

	"github.com/arnavshah/crewplan-api/pkg/calendar"
	"github.com/arnavshah/crewplan-api/pkg/models"
	"github.com/arnavshah/crewplan-api/pkg/scheduler"
	"github.com/arnavshah/crewplan-api/pkg/validation"
	"github.com/gin-gonic/gin"
)

// respondValidation answers a dry-run check. Invalid input is still a 200;
// only store failures are errors.
func (h *Handler) respondValidation(c *gin.Context, normalized any, err error) {
	var verr *validation.ValidationError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"valid": true, "normalized": normalized})
	case errors.As(err, &verr):
		c.JSON(http.StatusOK, gin.H{"valid": false, "fields": verr.Fields})
	default:
		h.respondError(c, err)
	}
}

// ValidateProject checks a project form without storing it
func (h *Handler) ValidateProject(c *gin.Context) {
	var p models.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": err.Error()})
		return
	}
	h.respondValidation(c, p, validation.Project(p))
}

// ValidateStaff checks a staff form, returning it with synced rates and split skills
func (h *Handler) ValidateStaff(c *gin.Context) {
	var req staffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": err.Error()})
		return
	}
	s := req.normalized()
	h.respondValidation(c, s, validation.Staff(s))
}

// ValidateTask checks a task form without storing it
func (h *Handler) ValidateTask(c *gin.Context) {
	var t models.Task
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": err.Error()})
		return
	}
	h.respondValidation(c, t, validation.Task(t))
}

// ValidateAssignment checks an assignment, including that its staff member
// and project exist
func (h *Handler) ValidateAssignment(c *gin.Context) {
	var a models.Assignment
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	if err := h.checkAssignment(ctx, a); err != nil {
		h.respondValidation(c, a, err)
		return
	}

	assignments, err := h.Store.Assignments.GetAll(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid":         true,
		"normalized":    a,
		"double_booked": doubleBookedDays(scheduler.NewGrid(nil, nil, assignments), a),
	})
}

// doubleBookedDays lists the days of a on which its staff member already
// works another project
func doubleBookedDays(g *scheduler.Grid, a models.Assignment) []string {
	days := []string{}
	n := calendar.SpanDays(a.StartDate, a.EndDate)
	for i := 0; i < n; i++ {
		day, err := calendar.AddDays(a.StartDate, i)
		if err != nil {
			break
		}
		if g.WouldOverlap(a.StaffID, a.ProjectID, day, a.ID) {
			days = append(days, day)
		}
	}
	return days
}
