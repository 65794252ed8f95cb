package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/rota/internal/calendar"
	"github.com/alexanderramin/rota/internal/domain"
)

type rosterService struct {
	doc    *domain.Document
	policy Policy
	// highWater is the largest employee id ever held, so removed ids are not
	// handed out again.
	highWater int
}

// NewRosterService takes ownership of doc. A nil doc starts an empty roster
// over the default catalog beginning today.
func NewRosterService(doc *domain.Document, policy Policy) RosterService {
	if policy.DefaultCode == "" {
		policy.DefaultCode = domain.DefaultShiftCode
	}
	if doc == nil {
		doc = domain.NewEmptyDocument("", time.Now(), 0, nil)
	}
	if doc.Metadata.ShiftCodes == nil {
		doc.Metadata.ShiftCodes = domain.NewShiftCatalog()
	}
	for _, e := range doc.Employees {
		if e.Shifts == nil {
			e.Shifts = domain.NewShiftMap()
		}
	}
	return &rosterService{doc: doc, policy: policy, highWater: doc.MaxEmployeeID()}
}

func (s *rosterService) find(employeeID int) (*domain.Employee, error) {
	e, _ := s.doc.FindEmployee(employeeID)
	if e == nil {
		return nil, fmt.Errorf("employee %d: %w", employeeID, domain.ErrNotFound)
	}
	return e, nil
}

func (s *rosterService) ShiftOn(employeeID int, date time.Time) (string, error) {
	e, err := s.find(employeeID)
	if err != nil {
		return "", err
	}
	return domain.ResolveShift(e.Shifts, calendar.FormatDate(date), s.policy.DefaultCode), nil
}

func (s *rosterService) SetShift(employeeID int, date time.Time, code string) error {
	e, err := s.find(employeeID)
	if err != nil {
		return err
	}
	if s.policy.StrictCodes && !s.doc.Metadata.ShiftCodes.Has(code) {
		return fmt.Errorf("shift code %q is not in the catalog: %w", code, domain.ErrInvalidInput)
	}
	e.Shifts.Set(calendar.FormatDate(date), code)
	return nil
}

// AddEmployee appends a new employee with every date of the window filled
// with defaultCode, or the policy default when defaultCode is empty.
func (s *rosterService) AddEmployee(name, defaultCode string) (*domain.Employee, error) {
	e := &domain.Employee{Name: strings.TrimSpace(name)}
	if err := e.ValidateName(); err != nil {
		return nil, err
	}
	code := domain.CoalesceStr(defaultCode, s.policy.DefaultCode)

	s.highWater = max(s.highWater, s.doc.MaxEmployeeID())
	e.ID = s.highWater + 1

	e.Shifts = domain.NewShiftMap()
	for _, d := range calendar.DateRange(s.doc.Metadata.StartDate, s.doc.Metadata.EndDate) {
		e.Shifts.Set(calendar.FormatDate(d), code)
	}

	s.highWater = e.ID
	s.doc.Employees = append(s.doc.Employees, e)
	return e.Clone(), nil
}

// RemoveEmployee reports whether an employee was removed. Only the first
// match is dropped.
func (s *rosterService) RemoveEmployee(employeeID int) bool {
	_, idx := s.doc.FindEmployee(employeeID)
	if idx < 0 {
		return false
	}
	s.doc.Employees = append(s.doc.Employees[:idx], s.doc.Employees[idx+1:]...)
	return true
}

func (s *rosterService) RegisterShiftCode(code, name, color string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("shift code is required: %w", domain.ErrInvalidInput)
	}
	s.doc.Metadata.ShiftCodes.Set(domain.ShiftCode{ID: code, Name: name, Color: color})
	return nil
}

// ShiftsForDate maps employee names to their resolved code. When names
// collide the later employee wins.
func (s *rosterService) ShiftsForDate(date time.Time) map[string]string {
	key := calendar.FormatDate(date)
	out := make(map[string]string, len(s.doc.Employees))
	for _, e := range s.doc.Employees {
		out[e.Name] = domain.ResolveShift(e.Shifts, key, s.policy.DefaultCode)
	}
	return out
}

func (s *rosterService) ScheduleOf(employeeID int) *domain.ShiftMap {
	e, _ := s.doc.FindEmployee(employeeID)
	if e == nil {
		return nil
	}
	return e.Shifts.Clone()
}

func (s *rosterService) Metadata() domain.Metadata {
	return s.doc.Metadata.Clone()
}

func (s *rosterService) Employees() []*domain.Employee {
	out := make([]*domain.Employee, 0, len(s.doc.Employees))
	for _, e := range s.doc.Employees {
		out = append(out, e.Clone())
	}
	return out
}

func (s *rosterService) Employee(employeeID int) (*domain.Employee, error) {
	e, err := s.find(employeeID)
	if err != nil {
		return nil, err
	}
	return e.Clone(), nil
}

func (s *rosterService) RenameEmployee(employeeID int, name string) error {
	e, err := s.find(employeeID)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if err := (&domain.Employee{Name: name}).ValidateName(); err != nil {
		return err
	}
	e.Name = name
	return nil
}

func (s *rosterService) SetTitle(title string) {
	s.doc.Metadata.Title = title
}

// SetDateRange moves the window. Existing shift entries are kept, including
// those that now fall outside it.
func (s *rosterService) SetDateRange(start, end time.Time) error {
	start, end = calendar.Day(start), calendar.Day(end)
	if end.Before(start) {
		return fmt.Errorf("end date %s is before start date %s: %w",
			calendar.FormatDate(end), calendar.FormatDate(start), calendar.ErrInvalidRange)
	}
	s.doc.Metadata.StartDate = start
	s.doc.Metadata.EndDate = end
	return nil
}

func (s *rosterService) Grid() (*Grid, error) {
	return s.GridBetween(s.doc.Metadata.StartDate, s.doc.Metadata.EndDate)
}

// GridBetween projects the roster over [from, to]. An inverted range yields
// an empty grid unless the policy is strict.
func (s *rosterService) GridBetween(from, to time.Time) (*Grid, error) {
	var dates []time.Time
	if s.policy.StrictRange {
		var err error
		dates, err = calendar.DateRangeStrict(from, to)
		if err != nil {
			return nil, err
		}
	} else {
		dates = calendar.DateRange(from, to)
	}
	return buildGrid(s.doc, dates, s.policy.DefaultCode), nil
}

func (s *rosterService) Document() *domain.Document {
	return s.doc.Clone()
}

func (s *rosterService) DefaultCode() string {
	return s.policy.DefaultCode
}
