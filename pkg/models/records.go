package models

import "slices"

func (p *Project) GetID() int   { return p.ID }
func (p *Project) SetID(id int) { p.ID = id }

// Clone returns a copy that shares no slices with p
func (p *Project) Clone() Project {
	c := *p
	c.Tasks = slices.Clone(p.Tasks)
	c.AssignedStaff = slices.Clone(p.AssignedStaff)
	return c
}

// ApplyCreateDefaults resets the fields a new project always starts with
func (p *Project) ApplyCreateDefaults(today string) {
	p.ActualCost = 0
	p.Tasks = []int{}
	p.AssignedStaff = []int{}
}

func (s *Staff) GetID() int   { return s.ID }
func (s *Staff) SetID(id int) { s.ID = id }

// Clone returns a copy that shares no slices with s
func (s *Staff) Clone() Staff {
	c := *s
	c.Skills = slices.Clone(s.Skills)
	c.Availability = slices.Clone(s.Availability)
	c.Assignments = slices.Clone(s.Assignments)
	return c
}

// ApplyCreateDefaults gives a new staff member empty availability and assignments
func (s *Staff) ApplyCreateDefaults(today string) {
	s.Availability = []Availability{}
	s.Assignments = []int{}
}

func (t *Task) GetID() int   { return t.ID }
func (t *Task) SetID(id int) { t.ID = id }

// Clone returns a copy that shares no slices with t
func (t *Task) Clone() Task {
	c := *t
	c.AssignedStaff = slices.Clone(t.AssignedStaff)
	return c
}

// ApplyCreateDefaults stamps the creation date
func (t *Task) ApplyCreateDefaults(today string) {
	t.CreatedDate = today
}

func (a *Assignment) GetID() int   { return a.ID }
func (a *Assignment) SetID(id int) { a.ID = id }

// Clone returns a copy of a
func (a *Assignment) Clone() Assignment {
	return *a
}
