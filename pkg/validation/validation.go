// Package validation checks entity forms before they reach the store.
package validation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/arnavshah/crewplan-api/pkg/calendar"
	"github.com/arnavshah/crewplan-api/pkg/models"
	"github.com/arnavshah/crewplan-api/pkg/store"
	"github.com/go-playground/validator/v10"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-+()]+$`)
)

// ValidationError maps field names to messages
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	mustRegister(v, "ymd", func(fl validator.FieldLevel) bool {
		return calendar.Valid(fl.Field().String())
	})
	mustRegister(v, "loose_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "project_type", oneOf(models.ProjectTypes))
	mustRegister(v, "project_status", oneOf(models.ProjectStatuses))
	mustRegister(v, "staff_role", oneOf(models.Roles))
	mustRegister(v, "task_status", oneOf(models.TaskStatuses))
	mustRegister(v, "task_priority", oneOf(models.Priorities))
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func oneOf[T ~string](allowed []T) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := T(fl.Field().String())
		for _, a := range allowed {
			if a == s {
				return true
			}
		}
		return false
	}
}

// messages holds the form wording per field; missing entries fall back to
// a generic message built from the tag
type messages map[string]string

func check(entity any, msgs messages) map[string]string {
	fields := map[string]string{}
	err := validate.Struct(entity)
	if err == nil {
		return fields
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["_"] = err.Error()
		return fields
	}
	for _, fe := range verrs {
		name := fieldPath(fe)
		if _, dup := fields[name]; dup {
			continue
		}
		fields[name] = messageFor(fe, name, msgs)
	}
	return fields
}

// fieldPath drops the struct name from the namespace, e.g. Staff.availability[0].end_date
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func messageFor(fe validator.FieldError, name string, msgs messages) string {
	if m, ok := msgs[name+"."+fe.Tag()]; ok {
		return m
	}
	if m, ok := msgs[name]; ok {
		return m
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "ymd":
		return "must be a date in YYYY-MM-DD form"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}

func result(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

var projectMessages = messages{
	"name.required":               "Project name is required",
	"location.required":           "Location is required",
	"type.required":               "Project type is required",
	"type.project_type":           "Unknown project type",
	"client_name.required":        "Client name is required",
	"status.project_status":       "Unknown project status",
	"start_date.required":         "Start date is required",
	"estimated_end_date.required": "Estimated end date is required",
	"estimated_budget":            "Budget must be a positive number",
	"actual_cost":                 "Actual cost must be a positive number",
}

// Project checks a project form
func Project(p models.Project) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Location = strings.TrimSpace(p.Location)
	p.ClientName = strings.TrimSpace(p.ClientName)

	fields := check(p, projectMessages)
	if _, bad := fields["estimated_end_date"]; !bad && calendar.Valid(p.StartDate) && calendar.Valid(p.EstimatedEndDate) {
		if p.StartDate > p.EstimatedEndDate {
			fields["estimated_end_date"] = "End date must be after start date"
		}
	}
	return result(fields)
}

var staffMessages = messages{
	"name.required":   "Staff name is required",
	"role.required":   "Role is required",
	"role.staff_role": "Unknown role",
	"hourly_rate":     "Valid hourly rate is required",
	"daily_rate":      "Valid daily rate is required",
	"email":           "Invalid email format",
	"phone":           "Invalid phone number format",
}

// Staff checks a staff form
func Staff(s models.Staff) error {
	s.Name = strings.TrimSpace(s.Name)
	fields := check(s, staffMessages)
	for i, a := range s.Availability {
		key := fmt.Sprintf("availability[%d].end_date", i)
		if _, bad := fields[key]; !bad && calendar.Valid(a.StartDate) && calendar.Valid(a.EndDate) && a.StartDate > a.EndDate {
			fields[key] = "End date must be after start date"
		}
	}
	return result(fields)
}

var taskMessages = messages{
	"name.required":          "Task name is required",
	"status.task_status":     "Unknown task status",
	"priority.task_priority": "Unknown priority",
	"project_id":             "Project is required",
}

// Task checks a task form
func Task(t models.Task) error {
	t.Name = strings.TrimSpace(t.Name)
	return result(check(t, taskMessages))
}

var assignmentMessages = messages{
	"staff_id":      "Staff member is required",
	"project_id":    "Project is required",
	"hours_per_day": "Hours per day must be between 0 and 24",
	"total_cost":    "Total cost must be a positive number",
}

// Assignment checks the shape of an assignment
func Assignment(a models.Assignment) error {
	fields := check(a, assignmentMessages)
	if _, bad := fields["end_date"]; !bad && calendar.Valid(a.StartDate) && calendar.Valid(a.EndDate) && a.StartDate > a.EndDate {
		fields["end_date"] = "End date must be on or after start date"
	}
	return result(fields)
}

// AssignmentReferences checks that the staff member and project of a exist.
// Store failures other than not found are returned unchanged.
func AssignmentReferences(ctx context.Context, a models.Assignment, staff store.Collection[models.Staff], projects store.Collection[models.Project]) error {
	fields := map[string]string{}
	if _, err := staff.GetByID(ctx, a.StaffID); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		fields["staff_id"] = "Staff member not found"
	}
	if _, err := projects.GetByID(ctx, a.ProjectID); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		fields["project_id"] = "Project not found"
	}
	return result(fields)
}

// Rate fields of a staff form
const (
	EditedHourly = "hourly_rate"
	EditedDaily  = "daily_rate"
)

// SyncRates keeps daily = hourly * 8 by recomputing whichever rate was not
// edited last. Results are rounded to cents.
func SyncRates(s *models.Staff, edited string) {
	switch edited {
	case EditedHourly:
		if s.HourlyRate > 0 {
			s.DailyRate = roundCents(s.HourlyRate * 8)
		}
	case EditedDaily:
		if s.DailyRate > 0 {
			s.HourlyRate = roundCents(s.DailyRate / 8)
		}
	}
}

// InferRateSource picks the rate to sync from when the form did not say
// which one was edited last. Hourly wins when both were sent; "" means
// neither rate changed.
func InferRateSource(hourlySent, dailySent bool) string {
	switch {
	case hourlySent:
		return EditedHourly
	case dailySent:
		return EditedDaily
	default:
		return ""
	}
}

// SplitSkills turns "a, b,,c" into [a b c]
func SplitSkills(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
