package store

import (
	"context"
	"sync"
	"time"

	"github.com/arnavshah/crewplan-api/pkg/calendar"
	"github.com/arnavshah/crewplan-api/pkg/models"
)

// Latency is the artificial delay applied to each memory store call
type Latency struct {
	GetAll  time.Duration
	GetByID time.Duration
	Create  time.Duration
	Update  time.Duration
	Delete  time.Duration
}

// DefaultLatency returns the mock backend delays multiplied by scale.
// A scale of 0 disables the delay.
func DefaultLatency(scale float64) Latency {
	d := func(ms float64) time.Duration {
		return time.Duration(ms * scale * float64(time.Millisecond))
	}
	return Latency{
		GetAll:  d(300),
		GetByID: d(200),
		Create:  d(500),
		Update:  d(400),
		Delete:  d(300),
	}
}

// MemoryCollection is an ordered in-memory collection guarded by a mutex.
// Calls sleep for the configured latency before touching the rows and are
// not cut short by ctx once issued.
type MemoryCollection[E any, P Record[E]] struct {
	mu      sync.Mutex
	name    string
	rows    []E
	latency Latency
	today   func() string
}

// NewMemoryCollection creates a collection holding copies of seed
func NewMemoryCollection[E any, P Record[E]](name string, seed []E, latency Latency) *MemoryCollection[E, P] {
	rows := make([]E, 0, len(seed))
	for i := range seed {
		rows = append(rows, P(&seed[i]).Clone())
	}
	return &MemoryCollection[E, P]{
		name:    name,
		rows:    rows,
		latency: latency,
		today:   calendar.Today,
	}
}

func (m *MemoryCollection[E, P]) Name() string { return m.name }

func (m *MemoryCollection[E, P]) GetAll(ctx context.Context) ([]E, error) {
	sleep(m.latency.GetAll)
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]E, len(m.rows))
	for i := range m.rows {
		out[i] = P(&m.rows[i]).Clone()
	}
	return out, nil
}

func (m *MemoryCollection[E, P]) GetByID(ctx context.Context, id int) (E, error) {
	sleep(m.latency.GetByID)
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		var zero E
		return zero, notFound(m.name, id)
	}
	return P(&m.rows[i]).Clone(), nil
}

func (m *MemoryCollection[E, P]) Create(ctx context.Context, e E) (E, error) {
	sleep(m.latency.Create)
	m.mu.Lock()
	defer m.mu.Unlock()

	row := P(&e).Clone()
	P(&row).SetID(m.maxID() + 1)
	if d, ok := any(P(&row)).(Defaulter); ok {
		d.ApplyCreateDefaults(m.today())
	}
	m.rows = append(m.rows, row)
	return P(&row).Clone(), nil
}

func (m *MemoryCollection[E, P]) Update(ctx context.Context, id int, apply func(*E)) (E, error) {
	sleep(m.latency.Update)
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		var zero E
		return zero, notFound(m.name, id)
	}
	row := P(&m.rows[i]).Clone()
	apply(&row)
	P(&row).SetID(id)
	m.rows[i] = row
	return P(&row).Clone(), nil
}

func (m *MemoryCollection[E, P]) Delete(ctx context.Context, id int) (bool, error) {
	sleep(m.latency.Delete)
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return false, notFound(m.name, id)
	}
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
	return true, nil
}

func (m *MemoryCollection[E, P]) indexOf(id int) int {
	for i := range m.rows {
		if P(&m.rows[i]).GetID() == id {
			return i
		}
	}
	return -1
}

func (m *MemoryCollection[E, P]) maxID() int {
	max := 0
	for i := range m.rows {
		if id := P(&m.rows[i]).GetID(); id > max {
			max = id
		}
	}
	return max
}

func sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// NewMemory builds a store whose collections start with the given rows
func NewMemory(projects []models.Project, staff []models.Staff, tasks []models.Task, assignments []models.Assignment, latency Latency) *Store {
	return &Store{
		Projects:    NewMemoryCollection[models.Project]("projects", projects, latency),
		Staff:       NewMemoryCollection[models.Staff]("staff", staff, latency),
		Tasks:       NewMemoryCollection[models.Task]("tasks", tasks, latency),
		Assignments: NewMemoryCollection[models.Assignment]("assignments", assignments, latency),
	}
}
