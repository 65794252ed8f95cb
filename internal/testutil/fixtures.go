package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/google/uuid"
)

var testEmployeeCounter atomic.Int64

// FixtureStart is the first day of every fixture roster.
var FixtureStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Document options
type DocumentOption func(*domain.Document)

func WithTitle(title string) DocumentOption {
	return func(d *domain.Document) {
		d.Metadata.Title = title
	}
}

// WithWindow sets the roster window to start plus days.
func WithWindow(start time.Time, days int) DocumentOption {
	return func(d *domain.Document) {
		d.Metadata.StartDate = start
		d.Metadata.EndDate = start.AddDate(0, 0, days)
	}
}

func WithCatalog(c *domain.ShiftCatalog) DocumentOption {
	return func(d *domain.Document) {
		d.Metadata.ShiftCodes = c
	}
}

// WithEmployee appends an employee. shifts alternate date, code.
func WithEmployee(id int, name string, shifts ...string) DocumentOption {
	return func(d *domain.Document) {
		d.Employees = append(d.Employees, NewTestEmployee(id, name, shifts...))
	}
}

// NewTestDocument returns a one-week roster over the default catalog.
func NewTestDocument(opts ...DocumentOption) *domain.Document {
	d := domain.NewEmptyDocument("Test Roster", FixtureStart, 6, nil)
	for _, o := range opts {
		o(d)
	}
	return d
}

// NewTestEmployee builds an employee. A zero id gets a generated one.
func NewTestEmployee(id int, name string, shifts ...string) *domain.Employee {
	if id == 0 {
		id = int(testEmployeeCounter.Add(1)) + 1000
	}
	if name == "" {
		name = fmt.Sprintf("Employee %d", id)
	}
	m := domain.NewShiftMap()
	for i := 0; i+1 < len(shifts); i += 2 {
		m.Set(shifts[i], shifts[i+1])
	}
	return &domain.Employee{ID: id, Name: name, Shifts: m}
}

// Snapshot options
type SnapshotOption func(*domain.Snapshot)

func WithLabel(label string) SnapshotOption {
	return func(s *domain.Snapshot) {
		s.Label = label
	}
}

func WithCreatedAt(t time.Time) SnapshotOption {
	return func(s *domain.Snapshot) {
		s.CreatedAt = t
	}
}

func WithContent(content []byte, employees int) SnapshotOption {
	return func(s *domain.Snapshot) {
		s.Content = content
		s.Employees = employees
	}
}

func NewTestSnapshot(title string, opts ...SnapshotOption) *domain.Snapshot {
	s := &domain.Snapshot{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   []byte(`{"metadata":{}}`),
		Employees: 1,
		CreatedAt: time.Now().UTC(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}
