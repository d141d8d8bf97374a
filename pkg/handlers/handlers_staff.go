package handlers

import (
	"net/http"

	"github.com/arnavshah/crewplan-api/pkg/filters"
	"github.com/arnavshah/crewplan-api/pkg/models"
	"github.com/arnavshah/crewplan-api/pkg/validation"
	"github.com/gin-gonic/gin"
)

// staffRequest is the staff form. RateSource names the rate typed last
// ("hourly_rate" or "daily_rate"); without it the hourly rate is kept when
// given. SkillsText is the comma separated skills box.
type staffRequest struct {
	models.Staff
	RateSource string `json:"rate_source"`
	SkillsText string `json:"skills_text"`
}

func (r staffRequest) normalized() models.Staff {
	s := r.Staff
	src := r.RateSource
	if src == "" {
		src = validation.InferRateSource(s.HourlyRate > 0, s.DailyRate > 0)
	}
	validation.SyncRates(&s, src)
	if r.SkillsText != "" {
		s.Skills = validation.SplitSkills(r.SkillsText)
	}
	if s.Skills == nil {
		s.Skills = []string{}
	}
	return s
}

type staffPatchRequest struct {
	models.StaffPatch
	RateSource string  `json:"rate_source"`
	SkillsText *string `json:"skills_text"`
}

// apply merges the patch and then re-syncs the rates from RateSource, or
// from whichever rate the patch carries
func (r staffPatchRequest) apply(s *models.Staff) {
	r.StaffPatch.Apply(s)
	src := r.RateSource
	if src == "" {
		src = validation.InferRateSource(r.HourlyRate != nil, r.DailyRate != nil)
	}
	validation.SyncRates(s, src)
	if r.SkillsText != nil {
		s.Skills = validation.SplitSkills(*r.SkillsText)
	}
}

// ListStaff returns staff matching ?search= and ?role=
func (h *Handler) ListStaff(c *gin.Context) {
	var q filters.StaffQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	staff, err := h.Store.Staff.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	matched := filters.Staff(staff, q)
	c.JSON(http.StatusOK, gin.H{"staff": matched, "count": len(matched)})
}

func (h *Handler) GetStaff(c *gin.Context) {
	getOne(h, c, h.Store.Staff)
}

// CreateStaff validates and stores a new staff member
func (h *Handler) CreateStaff(c *gin.Context) {
	var req staffRequest
	if !bindJSON(c, &req) {
		return
	}
	s := req.normalized()
	if err := validation.Staff(s); err != nil {
		h.respondError(c, err)
		return
	}
	created, err := h.Store.Staff.Create(c.Request.Context(), s)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateStaff merges a partial staff member over the stored one
func (h *Handler) UpdateStaff(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req staffPatchRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, ok := patchOne(h, c, h.Store.Staff, id, req.apply, validation.Staff)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteStaff(c *gin.Context) {
	deleteOne(h, c, h.Store.Staff)
}
