package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftCatalog_SetPreservesOrder(t *testing.T) {
	c := NewShiftCatalog(
		ShiftCode{ID: "R", Name: "Rest", Color: "#FFFFFF"},
		ShiftCode{ID: "D", Name: "Day", Color: "#FFFF00"},
	)
	c.Set(ShiftCode{ID: "N", Name: "Night", Color: "#000000"})
	c.Set(ShiftCode{ID: "R", Name: "Rest Day", Color: "#EEEEEE"})

	codes := c.Codes()
	require.Len(t, codes, 3)
	assert.Equal(t, []string{"R", "D", "N"}, []string{codes[0].ID, codes[1].ID, codes[2].ID})
	assert.Equal(t, "Rest Day", codes[0].Name)
	assert.Equal(t, "#EEEEEE", c.ColorOf("R"))
	assert.Equal(t, "", c.ColorOf("missing"))
}

func TestShiftCatalog_Equal(t *testing.T) {
	a := NewShiftCatalog(ShiftCode{ID: "R"}, ShiftCode{ID: "D"})
	b := NewShiftCatalog(ShiftCode{ID: "D"}, ShiftCode{ID: "R"})
	assert.False(t, a.Equal(b), "order matters")
	assert.True(t, a.Equal(a.Clone()))

	clone := a.Clone()
	clone.Set(ShiftCode{ID: "X"})
	assert.Equal(t, 2, a.Len(), "clone must not share storage")
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	assert.Equal(t, 11, c.Len())
	assert.True(t, c.Has(DefaultShiftCode))
	assert.Equal(t, "R", c.Codes()[0].ID)
	assert.Equal(t, "Sick", c.Codes()[10].ID)
	sc, ok := c.Get("A/L")
	require.True(t, ok)
	assert.Equal(t, "Annual Leave", sc.Name)
}

func TestShiftMap_ResolveShift(t *testing.T) {
	m := NewShiftMap()
	m.Set("2024-01-02", "D")

	assert.Equal(t, "D", ResolveShift(m, "2024-01-02", DefaultShiftCode))
	assert.Equal(t, "R", ResolveShift(m, "2024-01-01", DefaultShiftCode))
	assert.Equal(t, "X", ResolveShift(m, "2024-01-01", "X"))
	assert.Equal(t, "R", ResolveShift(nil, "2024-01-01", "R"))

	m.Set("2024-01-04", "")
	assert.Equal(t, "R", ResolveShift(m, "2024-01-04", "R"), "blank entries resolve to the default")

	m.Set("2024-01-03", "UNKNOWN")
	assert.Equal(t, "UNKNOWN", ResolveShift(m, "2024-01-03", "R"), "unknown codes pass through")
}

func TestShiftMap_OrderAndDelete(t *testing.T) {
	m := NewShiftMap()
	m.Set("2024-01-03", "D")
	m.Set("2024-01-01", "N")
	m.Set("2024-01-03", "E")
	assert.Equal(t, []string{"2024-01-03", "2024-01-01"}, m.Dates())

	assert.True(t, m.Delete("2024-01-03"))
	assert.False(t, m.Delete("2024-01-03"))
	assert.Equal(t, []string{"2024-01-01"}, m.Dates())
	assert.Equal(t, map[string]string{"2024-01-01": "N"}, m.Map())
}

func TestDocument_NextEmployeeID(t *testing.T) {
	d := NewEmptyDocument("Roster", time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC), 2, nil)
	assert.Equal(t, 1, d.NextEmployeeID())

	d.Employees = append(d.Employees,
		&Employee{ID: 7, Name: "A", Shifts: NewShiftMap()},
		&Employee{ID: 3, Name: "B", Shifts: NewShiftMap()},
	)
	assert.Equal(t, 8, d.NextEmployeeID())

	e, idx := d.FindEmployee(3)
	require.NotNil(t, e)
	assert.Equal(t, 1, idx)
	e, idx = d.FindEmployee(99)
	assert.Nil(t, e)
	assert.Equal(t, -1, idx)
}

func TestNewEmptyDocument(t *testing.T) {
	d := NewEmptyDocument("Staff Roster", time.Date(2024, 3, 1, 18, 45, 0, 0, time.UTC), 45, nil)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), d.Metadata.StartDate)
	assert.Equal(t, time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC), d.Metadata.EndDate)
	assert.Empty(t, d.Employees)
	assert.True(t, d.Metadata.ShiftCodes.Has("R"))
}

func TestDocument_CloneIsDeep(t *testing.T) {
	d := NewEmptyDocument("R", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 1, nil)
	d.Employees = append(d.Employees, &Employee{ID: 1, Name: "A", Shifts: NewShiftMap()})

	c := d.Clone()
	c.Employees[0].Shifts.Set("2024-01-01", "D")
	c.Employees[0].Name = "Changed"
	c.Metadata.ShiftCodes.Set(ShiftCode{ID: "Z"})

	assert.Equal(t, 0, d.Employees[0].Shifts.Len())
	assert.Equal(t, "A", d.Employees[0].Name)
	assert.False(t, d.Metadata.ShiftCodes.Has("Z"))
}

func TestEmployee_ValidateName(t *testing.T) {
	assert.NoError(t, (&Employee{Name: "Alice"}).ValidateName())
	for _, name := range []string{"", "   ", "\t"} {
		err := (&Employee{Name: name}).ValidateName()
		assert.True(t, errors.Is(err, ErrInvalidInput), "%q", name)
	}
}

func TestValidationError(t *testing.T) {
	assert.Nil(t, NewValidationError(nil))

	err := NewValidationError([]error{errors.New("metadata is required")})
	assert.Equal(t, "invalid roster document: metadata is required", err.Error())

	err = NewValidationError([]error{errors.New("a"), errors.New("b")})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"a", "b"}, verr.Problems)
	assert.Contains(t, err.Error(), "(2 errors)")
}

func TestCoalesceStr(t *testing.T) {
	assert.Equal(t, "b", CoalesceStr("", "  ", "b", "c"))
	assert.Equal(t, "", CoalesceStr())
}

func TestSnapshot_DisplayID(t *testing.T) {
	assert.Equal(t, "12345678", (&Snapshot{ID: "1234567890"}).DisplayID())
	assert.Equal(t, "abc", (&Snapshot{ID: "abc"}).DisplayID())
}
