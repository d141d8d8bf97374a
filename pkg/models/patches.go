package models

// Patches carry a partial update. Nil fields are left untouched when applied.

// ProjectPatch is a partial Project
type ProjectPatch struct {
	Name             *string        `json:"name"`
	Location         *string        `json:"location"`
	Type             *ProjectType   `json:"type"`
	ClientName       *string        `json:"client_name"`
	ClientContact    *string        `json:"client_contact"`
	Status           *ProjectStatus `json:"status"`
	StartDate        *string        `json:"start_date"`
	EstimatedEndDate *string        `json:"estimated_end_date"`
	EstimatedBudget  *float64       `json:"estimated_budget"`
	ActualCost       *float64       `json:"actual_cost"`
	Tasks            []int          `json:"tasks"`
	AssignedStaff    []int          `json:"assigned_staff"`
}

// Apply merges the patch over p
func (pp ProjectPatch) Apply(p *Project) {
	setIf(&p.Name, pp.Name)
	setIf(&p.Location, pp.Location)
	setIf(&p.Type, pp.Type)
	setIf(&p.ClientName, pp.ClientName)
	setIf(&p.ClientContact, pp.ClientContact)
	setIf(&p.Status, pp.Status)
	setIf(&p.StartDate, pp.StartDate)
	setIf(&p.EstimatedEndDate, pp.EstimatedEndDate)
	setIf(&p.EstimatedBudget, pp.EstimatedBudget)
	setIf(&p.ActualCost, pp.ActualCost)
	if pp.Tasks != nil {
		p.Tasks = append([]int{}, pp.Tasks...)
	}
	if pp.AssignedStaff != nil {
		p.AssignedStaff = append([]int{}, pp.AssignedStaff...)
	}
}

// StaffPatch is a partial Staff
type StaffPatch struct {
	Name         *string        `json:"name"`
	Role         *Role          `json:"role"`
	HourlyRate   *float64       `json:"hourly_rate"`
	DailyRate    *float64       `json:"daily_rate"`
	Phone        *string        `json:"phone"`
	Email        *string        `json:"email"`
	Skills       []string       `json:"skills"`
	Availability []Availability `json:"availability"`
	Assignments  []int          `json:"assignments"`
}

// Apply merges the patch over s
func (sp StaffPatch) Apply(s *Staff) {
	setIf(&s.Name, sp.Name)
	setIf(&s.Role, sp.Role)
	setIf(&s.HourlyRate, sp.HourlyRate)
	setIf(&s.DailyRate, sp.DailyRate)
	setIf(&s.Phone, sp.Phone)
	setIf(&s.Email, sp.Email)
	if sp.Skills != nil {
		s.Skills = append([]string{}, sp.Skills...)
	}
	if sp.Availability != nil {
		s.Availability = append([]Availability{}, sp.Availability...)
	}
	if sp.Assignments != nil {
		s.Assignments = append([]int{}, sp.Assignments...)
	}
}

// TaskPatch is a partial Task
type TaskPatch struct {
	Name          *string     `json:"name"`
	Description   *string     `json:"description"`
	Status        *TaskStatus `json:"status"`
	Priority      *Priority   `json:"priority"`
	ProjectID     *int        `json:"project_id"`
	AssignedStaff []int       `json:"assigned_staff"`
	DueDate       *string     `json:"due_date"`
	CompletedDate *string     `json:"completed_date"`
}

// Apply merges the patch over t
func (tp TaskPatch) Apply(t *Task) {
	setIf(&t.Name, tp.Name)
	setIf(&t.Description, tp.Description)
	setIf(&t.Status, tp.Status)
	setIf(&t.Priority, tp.Priority)
	setIf(&t.ProjectID, tp.ProjectID)
	setIf(&t.DueDate, tp.DueDate)
	setIf(&t.CompletedDate, tp.CompletedDate)
	if tp.AssignedStaff != nil {
		t.AssignedStaff = append([]int{}, tp.AssignedStaff...)
	}
}

// AssignmentPatch is a partial Assignment
type AssignmentPatch struct {
	StaffID     *int     `json:"staff_id"`
	ProjectID   *int     `json:"project_id"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	HoursPerDay *float64 `json:"hours_per_day"`
	TotalCost   *float64 `json:"total_cost"`
}

// Apply merges the patch over a
func (ap AssignmentPatch) Apply(a *Assignment) {
	setIf(&a.StaffID, ap.StaffID)
	setIf(&a.ProjectID, ap.ProjectID)
	setIf(&a.StartDate, ap.StartDate)
	setIf(&a.EndDate, ap.EndDate)
	setIf(&a.HoursPerDay, ap.HoursPerDay)
	setIf(&a.TotalCost, ap.TotalCost)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
