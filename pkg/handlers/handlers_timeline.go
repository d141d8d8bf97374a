package handlers

import (
	"errors"
	"net/http"

	"github.com/arnavshah/crewplan-api/pkg/calendar"
	"github.com/arnavshah/crewplan-api/pkg/events"
	"github.com/arnavshah/crewplan-api/pkg/scheduler"
	"github.com/arnavshah/crewplan-api/pkg/timeline"
	"github.com/gin-gonic/gin"
)

// GetTimeline returns the week containing ?week= (default today)
func (h *Handler) GetTimeline(c *gin.Context) {
	day := c.DefaultQuery("week", calendar.Today())
	anchor, err := calendar.Parse(day)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := h.Store.Snapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	g := scheduler.NewGrid(snap.Projects, snap.Staff, snap.Assignments)
	c.JSON(http.StatusOK, g.WeekView(snap.Projects, snap.Staff, scheduler.WeekOf(anchor)))
}

// GetAssignmentDetail is the assignment modal: the row plus resolved names
func (h *Handler) GetAssignmentDetail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	a, err := h.Store.Assignments.GetByID(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	snap, err := h.Store.Snapshot(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	g := scheduler.NewGrid(snap.Projects, snap.Staff, snap.Assignments)
	c.JSON(http.StatusOK, g.Detail(a))
}

type gestureResponse struct {
	GestureID string          `json:"gesture_id"`
	Status    timeline.Status `json:"status"`
}

// BeginGesture picks up a staff card or an assignment chip
func (h *Handler) BeginGesture(c *gin.Context) {
	var p timeline.Payload
	if !bindJSON(c, &p) {
		return
	}
	g, err := h.Board.Begin(p)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gestureResponse{GestureID: g.ID, Status: g.Controller.Status()})
}

func (h *Handler) GetGesture(c *gin.Context) {
	g, err := h.Board.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gestureResponse{GestureID: g.ID, Status: g.Controller.Status()})
}

// HoverGesture moves the drop target to a cell
func (h *Handler) HoverGesture(c *gin.Context) {
	g, err := h.Board.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	var cell timeline.Cell
	if !bindJSON(c, &cell) {
		return
	}
	if err := g.Controller.Enter(cell); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gestureResponse{GestureID: g.ID, Status: g.Controller.Status()})
}

// LeaveGesture clears the drop target
func (h *Handler) LeaveGesture(c *gin.Context) {
	g, err := h.Board.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := g.Controller.Leave(); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gestureResponse{GestureID: g.ID, Status: g.Controller.Status()})
}

// DropGesture commits the gesture and closes it
func (h *Handler) DropGesture(c *gin.Context) {
	g, err := h.Board.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	res, err := g.Controller.Drop(c.Request.Context())
	if errors.Is(err, timeline.ErrCommitInFlight) {
		h.respondError(c, err)
		return
	}
	h.Board.End(g.ID)
	h.respondDrop(c, res, err)
}

// CancelGesture abandons the gesture without a store call
func (h *Handler) CancelGesture(c *gin.Context) {
	g, err := h.Board.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	res, err := g.Controller.Cancel()
	if errors.Is(err, timeline.ErrCommitInFlight) {
		h.respondError(c, err)
		return
	}
	h.Board.End(g.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DropOnce runs a whole gesture from one request
func (h *Handler) DropOnce(c *gin.Context) {
	var req struct {
		Payload timeline.Payload `json:"payload" binding:"required"`
		Cell    *timeline.Cell   `json:"cell"`
	}
	if !bindJSON(c, &req) {
		return
	}

	g, err := h.Board.Begin(req.Payload)
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer h.Board.End(g.ID)

	if req.Cell != nil {
		if err := g.Controller.Enter(*req.Cell); err != nil {
			h.respondError(c, err)
			return
		}
	}
	res, err := g.Controller.Drop(c.Request.Context())
	h.respondDrop(c, res, err)
}

func (h *Handler) respondDrop(c *gin.Context, res timeline.Result, err error) {
	if err != nil {
		h.respondError(c, err)
		return
	}
	if res.Outcome == timeline.Committed && res.Intent.Kind == timeline.IntentCreate {
		h.publishAssignment(c.Request.Context(), events.AssignmentCreated, *res.Assignment)
		c.JSON(http.StatusCreated, res)
		return
	}
	if res.Outcome == timeline.Committed {
		h.publishAssignment(c.Request.Context(), events.AssignmentUpdated, *res.Assignment)
	}
	c.JSON(http.StatusOK, res)
}
