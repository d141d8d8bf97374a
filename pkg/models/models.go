package models

// ProjectType is the kind of work a project covers
type ProjectType string

const (
	TypeConstruction ProjectType = "construction"
	TypeRepair       ProjectType = "repair"
	TypeInspection   ProjectType = "inspection"
	TypeMaintenance  ProjectType = "maintenance"
	TypeRenovation   ProjectType = "renovation"
	TypeDemolition   ProjectType = "demolition"
)

// ProjectTypes lists every project type in display order
var ProjectTypes = []ProjectType{
	TypeConstruction, TypeRepair, TypeInspection, TypeMaintenance, TypeRenovation, TypeDemolition,
}

// ProjectStatus is the lifecycle state of a project
type ProjectStatus string

const (
	ProjectPlanned    ProjectStatus = "planned"
	ProjectInProgress ProjectStatus = "in progress"
	ProjectOnHold     ProjectStatus = "on hold"
	ProjectCompleted  ProjectStatus = "completed"
)

// ProjectStatuses lists every project status in display order
var ProjectStatuses = []ProjectStatus{ProjectPlanned, ProjectInProgress, ProjectOnHold, ProjectCompleted}

// Role is the trade category of a staff member
type Role string

const (
	RoleForeman     Role = "foreman"
	RoleElectrician Role = "electrician"
	RolePlumber     Role = "plumber"
	RoleCarpenter   Role = "carpenter"
	RoleMason       Role = "mason"
	RolePainter     Role = "painter"
	RoleRoofer      Role = "roofer"
	RoleLaborer     Role = "laborer"
	RoleOperator    Role = "operator"
	RoleSupervisor  Role = "supervisor"
)

// Roles lists every trade category
var Roles = []Role{
	RoleForeman, RoleElectrician, RolePlumber, RoleCarpenter, RoleMason,
	RolePainter, RoleRoofer, RoleLaborer, RoleOperator, RoleSupervisor,
}

// TaskStatus is the board column a task sits in
type TaskStatus string

const (
	TaskToDo       TaskStatus = "to do"
	TaskInProgress TaskStatus = "in progress"
	TaskBlocked    TaskStatus = "blocked"
	TaskDone       TaskStatus = "done"
)

// TaskStatuses lists the board columns in order
var TaskStatuses = []TaskStatus{TaskToDo, TaskInProgress, TaskBlocked, TaskDone}

// Priority of a task
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every task priority
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Project represents a job site being planned or worked
type Project struct {
	ID               int           `gorm:"primaryKey;autoIncrement:false" json:"id" yaml:"id"`
	Name             string        `gorm:"not null" json:"name" yaml:"name" validate:"required"`
	Location         string        `json:"location" yaml:"location" validate:"required"`
	Type             ProjectType   `json:"type" yaml:"type" validate:"required,project_type"`
	ClientName       string        `json:"client_name" yaml:"client_name" validate:"required"`
	ClientContact    string        `json:"client_contact" yaml:"client_contact"`
	Status           ProjectStatus `json:"status" yaml:"status" validate:"required,project_status"`
	StartDate        string        `json:"start_date" yaml:"start_date" validate:"required,ymd"`
	EstimatedEndDate string        `json:"estimated_end_date" yaml:"estimated_end_date" validate:"required,ymd"`
	EstimatedBudget  float64       `json:"estimated_budget" yaml:"estimated_budget" validate:"gte=0"`
	ActualCost       float64       `json:"actual_cost" yaml:"actual_cost" validate:"gte=0"`
	Tasks            []int         `gorm:"serializer:json" json:"tasks" yaml:"tasks"`
	AssignedStaff    []int         `gorm:"serializer:json" json:"assigned_staff" yaml:"assigned_staff"`
}

// Availability is a window of days a staff member can be scheduled
type Availability struct {
	StartDate string `json:"start_date" yaml:"start_date" validate:"required,ymd"`
	EndDate   string `json:"end_date" yaml:"end_date" validate:"required,ymd"`
}

// Staff represents a crew member that can be assigned to projects
type Staff struct {
	ID           int            `gorm:"primaryKey;autoIncrement:false" json:"id" yaml:"id"`
	Name         string         `gorm:"not null" json:"name" yaml:"name" validate:"required"`
	Role         Role           `json:"role" yaml:"role" validate:"required,staff_role"`
	HourlyRate   float64        `json:"hourly_rate" yaml:"hourly_rate" validate:"gt=0"`
	DailyRate    float64        `json:"daily_rate" yaml:"daily_rate" validate:"gt=0"`
	Phone        string         `json:"phone,omitempty" yaml:"phone" validate:"omitempty,phone"`
	Email        string         `json:"email,omitempty" yaml:"email" validate:"omitempty,loose_email"`
	Skills       []string       `gorm:"serializer:json" json:"skills" yaml:"skills"`
	Availability []Availability `gorm:"serializer:json" json:"availability" yaml:"availability" validate:"dive"`
	Assignments  []int          `gorm:"serializer:json" json:"assignments" yaml:"assignments"`
}

// Task is a unit of work inside a project
type Task struct {
	ID            int        `gorm:"primaryKey;autoIncrement:false" json:"id" yaml:"id"`
	Name          string     `gorm:"not null" json:"name" yaml:"name" validate:"required"`
	Description   string     `json:"description" yaml:"description"`
	Status        TaskStatus `json:"status" yaml:"status" validate:"required,task_status"`
	Priority      Priority   `json:"priority" yaml:"priority" validate:"required,task_priority"`
	ProjectID     int        `gorm:"index" json:"project_id" yaml:"project_id" validate:"gt=0"`
	AssignedStaff []int      `gorm:"serializer:json" json:"assigned_staff" yaml:"assigned_staff"`
	DueDate       string     `json:"due_date,omitempty" yaml:"due_date" validate:"omitempty,ymd"`
	CreatedDate   string     `json:"created_date,omitempty" yaml:"created_date"`
	CompletedDate string     `json:"completed_date,omitempty" yaml:"completed_date"`
}

// Assignment binds one staff member to one project for an inclusive range of days
type Assignment struct {
	ID          int     `gorm:"primaryKey;autoIncrement:false" json:"id" yaml:"id"`
	StaffID     int     `gorm:"index" json:"staff_id" yaml:"staff_id" validate:"gt=0"`
	ProjectID   int     `gorm:"index" json:"project_id" yaml:"project_id" validate:"gt=0"`
	StartDate   string  `json:"start_date" yaml:"start_date" validate:"required,ymd"`
	EndDate     string  `json:"end_date" yaml:"end_date" validate:"required,ymd"`
	HoursPerDay float64 `json:"hours_per_day" yaml:"hours_per_day" validate:"gt=0,lte=24"`
	TotalCost   float64 `json:"total_cost" yaml:"total_cost" validate:"gte=0"`
}
