package interchange

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/rota/internal/calendar"
)

// ValidateRawDocument checks the structure of a raw document before
// conversion. Returns every problem found, in document order.
func ValidateRawDocument(raw *RawDocument, defaultCode string) []error {
	var errs []error

	if raw.Metadata == nil {
		errs = append(errs, fmt.Errorf("metadata is required"))
	} else {
		errs = append(errs, validateMetadata(raw.Metadata, defaultCode)...)
	}

	errs = append(errs, validateEmployees(raw.Employees)...)

	return errs
}

func validateMetadata(m *RawMetadata, defaultCode string) []error {
	var errs []error

	start, startErr := requiredDate("metadata.startDate", m.StartDate)
	if startErr != nil {
		errs = append(errs, startErr)
	}
	end, endErr := requiredDate("metadata.endDate", m.EndDate)
	if endErr != nil {
		errs = append(errs, endErr)
	}
	if startErr == nil && endErr == nil && start.After(end) {
		errs = append(errs, fmt.Errorf("metadata.endDate %q must not be before startDate %q", m.EndDate, m.StartDate))
	}

	errs = append(errs, validateShiftCodes(&m.ShiftCodes, defaultCode)...)

	return errs
}

func validateShiftCodes(c *RawShiftCodes, defaultCode string) []error {
	switch {
	case c.shape.missing():
		return []error{fmt.Errorf("metadata.shiftCodes is required")}
	case c.shape == shapeOther:
		return []error{fmt.Errorf("metadata.shiftCodes must be a mapping")}
	case len(c.Entries) == 0:
		return []error{fmt.Errorf("metadata.shiftCodes must not be empty")}
	}

	var errs []error
	hasDefault := false
	for _, e := range c.Entries {
		if strings.TrimSpace(e.Code) == "" {
			errs = append(errs, fmt.Errorf("metadata.shiftCodes: code must not be blank"))
		}
		if e.Code == defaultCode {
			hasDefault = true
		}
	}
	if !hasDefault {
		errs = append(errs, fmt.Errorf("metadata.shiftCodes must contain the default code %q", defaultCode))
	}
	return errs
}

func validateEmployees(employees []RawEmployee) []error {
	var errs []error
	seen := make(map[int]bool, len(employees))

	for i, e := range employees {
		prefix := fmt.Sprintf("employees[%d]", i)

		if e.ID == nil {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if seen[*e.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %d", prefix, *e.ID))
		} else {
			seen[*e.ID] = true
		}

		if strings.TrimSpace(e.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}

		if e.Shifts.shape == shapeOther {
			errs = append(errs, fmt.Errorf("%s.shifts must be a mapping", prefix))
			continue
		}
		for _, s := range e.Shifts.Entries {
			if _, err := calendar.ParseDate(s.Date); err != nil {
				errs = append(errs, fmt.Errorf("%s.shifts: %w", prefix, err))
			}
		}
	}

	return errs
}

func requiredDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := calendar.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, err)
	}
	return t, nil
}
