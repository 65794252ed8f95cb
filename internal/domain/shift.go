package domain

// DefaultShiftCode is the code a date resolves to when an employee has no
// explicit entry for it.
const DefaultShiftCode = "R"

// ShiftCode is one entry of the shift catalog. Color is carried for display
// and never interpreted by the roster logic.
type ShiftCode struct {
	ID    string
	Name  string
	Color string
}

// ShiftCatalog is the ordered set of shift codes of a roster, keyed by ID.
type ShiftCatalog struct {
	entries orderedMap[ShiftCode]
}

// NewShiftCatalog builds a catalog from codes in order. Later duplicates
// overwrite earlier ones in place.
func NewShiftCatalog(codes ...ShiftCode) *ShiftCatalog {
	c := &ShiftCatalog{}
	for _, sc := range codes {
		c.Set(sc)
	}
	return c
}

// Set inserts or overwrites sc. New codes are appended; overwritten codes
// keep their position.
func (c *ShiftCatalog) Set(sc ShiftCode) {
	c.entries.set(sc.ID, sc)
}

// Get looks up a code by ID.
func (c *ShiftCatalog) Get(id string) (ShiftCode, bool) {
	if c == nil {
		return ShiftCode{}, false
	}
	return c.entries.get(id)
}

// Has reports whether id is in the catalog.
func (c *ShiftCatalog) Has(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// Len returns the number of codes.
func (c *ShiftCatalog) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.len()
}

// Codes returns the codes in display order.
func (c *ShiftCatalog) Codes() []ShiftCode {
	if c == nil {
		return nil
	}
	out := make([]ShiftCode, 0, c.entries.len())
	for _, k := range c.entries.keys {
		out = append(out, c.entries.values[k])
	}
	return out
}

// Clone returns a deep copy.
func (c *ShiftCatalog) Clone() *ShiftCatalog {
	if c == nil {
		return NewShiftCatalog()
	}
	return &ShiftCatalog{entries: c.entries.clone()}
}

// Equal compares content and order.
func (c *ShiftCatalog) Equal(o *ShiftCatalog) bool {
	if c == nil || o == nil {
		return c.Len() == o.Len()
	}
	return equalOrdered(&c.entries, &o.entries)
}

// ColorOf returns the display color of id, or "" when id is not cataloged.
func (c *ShiftCatalog) ColorOf(id string) string {
	sc, _ := c.Get(id)
	return sc.Color
}

// DefaultCatalog returns the starter catalog used for new rosters.
func DefaultCatalog() *ShiftCatalog {
	return NewShiftCatalog(
		ShiftCode{ID: "R", Name: "Rest", Color: "#FFFFFF"},
		ShiftCode{ID: "N12", Name: "Night 12hr", Color: "#FFFFFF"},
		ShiftCode{ID: "N", Name: "Night", Color: "#FFFF00"},
		ShiftCode{ID: "D", Name: "Day", Color: "#FFFF00"},
		ShiftCode{ID: "E", Name: "Evening", Color: "#FFFF00"},
		ShiftCode{ID: "C", Name: "Cover", Color: "#FFFFFF"},
		ShiftCode{ID: "L", Name: "Late", Color: "#FFFFFF"},
		ShiftCode{ID: "A/L", Name: "Annual Leave", Color: "#FFFF00"},
		ShiftCode{ID: "AD", Name: "Admin Day", Color: "#FFFFFF"},
		ShiftCode{ID: "Tr", Name: "Training", Color: "#00FF00"},
		ShiftCode{ID: "Sick", Name: "Sick Leave", Color: "#FF0000"},
	)
}
