package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when an operation names an employee that does
	// not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for rejected arguments such as a blank
	// employee name.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError reports every structural problem found in a roster
// document.
type ValidationError struct {
	Problems []string
}

// NewValidationError collects errs into a ValidationError. Returns nil for
// an empty slice.
func NewValidationError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	v := &ValidationError{Problems: make([]string, 0, len(errs))}
	for _, e := range errs {
		v.Problems = append(v.Problems, e.Error())
	}
	return v
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid roster document: " + e.Problems[0]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "invalid roster document (%d errors):", len(e.Problems))
	for _, p := range e.Problems {
		b.WriteString("\n  - ")
		b.WriteString(p)
	}
	return b.String()
}
