package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/arnavshah/crewplan-api/pkg/events"
	"github.com/arnavshah/crewplan-api/pkg/metrics"
	"github.com/arnavshah/crewplan-api/pkg/store"
	"github.com/arnavshah/crewplan-api/pkg/timeline"
	"github.com/arnavshah/crewplan-api/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Version is reported by the index route
const Version = "1.0.0"

// Handler contains dependencies for the route handlers
type Handler struct {
	Store  *store.Store
	Board  *timeline.Board
	Events events.Publisher
	Logger *zap.Logger
}

// New wires a handler around s. A nil publisher only logs events.
func New(s *store.Store, pub events.Publisher, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pub == nil {
		pub = events.NewLogPublisher(logger)
	}
	return &Handler{
		Store:  s,
		Board:  timeline.NewBoard(s.Projects, s.Staff, s.Assignments, logger),
		Events: pub,
		Logger: logger,
	}
}

// Router builds the gin engine with every route registered
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), h.RequestLogger(), Metrics())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "CrewPlan API",
			"version": Version,
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/projects", h.ListProjects)
		api.POST("/projects", h.CreateProject)
		api.GET("/projects/:id", h.GetProject)
		api.PUT("/projects/:id", h.UpdateProject)
		api.DELETE("/projects/:id", h.DeleteProject)
		api.GET("/projects/:id/progress", h.GetProjectProgress)

		api.GET("/staff", h.ListStaff)
		api.POST("/staff", h.CreateStaff)
		api.GET("/staff/:id", h.GetStaff)
		api.PUT("/staff/:id", h.UpdateStaff)
		api.DELETE("/staff/:id", h.DeleteStaff)

		api.GET("/tasks", h.ListTasks)
		api.GET("/tasks/board", h.GetTaskBoard)
		api.POST("/tasks", h.CreateTask)
		api.GET("/tasks/:id", h.GetTask)
		api.PUT("/tasks/:id", h.UpdateTask)
		api.PUT("/tasks/:id/status", h.UpdateTaskStatus)
		api.DELETE("/tasks/:id", h.DeleteTask)

		api.GET("/assignments", h.ListAssignments)
		api.POST("/assignments", h.CreateAssignment)
		api.GET("/assignments/:id", h.GetAssignment)
		api.PUT("/assignments/:id", h.UpdateAssignment)
		api.DELETE("/assignments/:id", h.DeleteAssignment)

		api.GET("/timeline", h.GetTimeline)
		api.GET("/timeline/assignments/:id", h.GetAssignmentDetail)
		api.POST("/timeline/drop", h.DropOnce)
		api.POST("/timeline/gestures", h.BeginGesture)
		api.GET("/timeline/gestures/:id", h.GetGesture)
		api.PUT("/timeline/gestures/:id/hover", h.HoverGesture)
		api.DELETE("/timeline/gestures/:id/hover", h.LeaveGesture)
		api.POST("/timeline/gestures/:id/drop", h.DropGesture)
		api.DELETE("/timeline/gestures/:id", h.CancelGesture)

		api.GET("/reports", h.GetReport)
		api.GET("/reports/summary", h.GetReportSummary)
		api.GET("/reports/projects", h.GetProjectCosts)
		api.GET("/reports/staff", h.GetStaffUtilization)
		api.GET("/reports/top", h.GetTopRankings)
		api.GET("/reports/status-distribution", h.GetStatusDistribution)

		api.POST("/validate/project", h.ValidateProject)
		api.POST("/validate/staff", h.ValidateStaff)
		api.POST("/validate/task", h.ValidateTask)
		api.POST("/validate/assignment", h.ValidateAssignment)
	}

	return r
}

// SweepGestures cancels abandoned gestures every interval until ctx is done
func (h *Handler) SweepGestures(ctx context.Context, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Board.Sweep(maxAge)
		}
	}
}

// RequestID tags every request with an X-Request-ID, keeping one sent by the client
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// RequestLogger logs one line per request
func (h *Handler) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", c.GetString("requestID")),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			h.Logger.Error("Request failed", fields...)
			return
		}
		h.Logger.Info("Request handled", fields...)
	}
}

// Metrics records request latency by route template
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// respondError maps domain errors onto status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	var verr *validation.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "fields": verr.Fields})
	case errors.Is(err, store.ErrNotFound), errors.Is(err, timeline.ErrGestureNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, timeline.ErrCommitInFlight),
		errors.Is(err, timeline.ErrGestureActive),
		errors.Is(err, timeline.ErrNotDragging):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, timeline.ErrInvalidCell), errors.Is(err, timeline.ErrInvalidPayload):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Store operation failed"})
	}
}

// parseID reads the :id path parameter, answering 400 when it is not a number
func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
