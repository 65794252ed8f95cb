package domain

import (
	"fmt"
	"strings"
	"time"
)

// Metadata describes the roster window and its shift catalog.
type Metadata struct {
	Title      string
	StartDate  time.Time
	EndDate    time.Time
	ShiftCodes *ShiftCatalog
}

// Clone returns a deep copy.
func (m Metadata) Clone() Metadata {
	m.ShiftCodes = m.ShiftCodes.Clone()
	return m
}

// Employee is one roster row.
type Employee struct {
	ID     int
	Name   string
	Shifts *ShiftMap
}

// ValidateName checks that the employee has a non-blank name.
func (e *Employee) ValidateName() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("employee name is required: %w", ErrInvalidInput)
	}
	return nil
}

// Clone returns a deep copy.
func (e *Employee) Clone() *Employee {
	return &Employee{ID: e.ID, Name: e.Name, Shifts: e.Shifts.Clone()}
}

// Document is the full roster: metadata plus employees in display order.
type Document struct {
	Metadata  Metadata
	Employees []*Employee
}

// NewEmptyDocument returns a roster with no employees covering start and the
// following days days.
func NewEmptyDocument(title string, start time.Time, days int, catalog *ShiftCatalog) *Document {
	y, m, d := start.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Document{
		Metadata: Metadata{
			Title:      title,
			StartDate:  start,
			EndDate:    start.AddDate(0, 0, days),
			ShiftCodes: catalog,
		},
		Employees: []*Employee{},
	}
}

// FindEmployee returns the first employee with id and its index, or nil, -1.
func (d *Document) FindEmployee(id int) (*Employee, int) {
	for i, e := range d.Employees {
		if e.ID == id {
			return e, i
		}
	}
	return nil, -1
}

// MaxEmployeeID returns the highest employee id, or 0 when there are none.
func (d *Document) MaxEmployeeID() int {
	maxID := 0
	for _, e := range d.Employees {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	return maxID
}

// NextEmployeeID returns max(ids ∪ {0}) + 1.
func (d *Document) NextEmployeeID() int {
	return d.MaxEmployeeID() + 1
}

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	c := &Document{
		Metadata:  d.Metadata.Clone(),
		Employees: make([]*Employee, len(d.Employees)),
	}
	for i, e := range d.Employees {
		c.Employees[i] = e.Clone()
	}
	return c
}
