package domain

// ShiftMap is an employee's sparse date -> shift code mapping. Keys are ISO
// calendar dates; iteration follows the order entries were first written.
type ShiftMap struct {
	entries orderedMap[string]
}

// NewShiftMap returns an empty map.
func NewShiftMap() *ShiftMap {
	return &ShiftMap{}
}

// Get returns the explicit entry for date, if any.
func (m *ShiftMap) Get(date string) (string, bool) {
	if m == nil {
		return "", false
	}
	return m.entries.get(date)
}

// Set writes or overwrites the entry for date.
func (m *ShiftMap) Set(date, code string) {
	m.entries.set(date, code)
}

// Delete removes the entry for date, reporting whether one existed.
func (m *ShiftMap) Delete(date string) bool {
	return m.entries.delete(date)
}

// Len returns the number of explicit entries.
func (m *ShiftMap) Len() int {
	if m == nil {
		return 0
	}
	return m.entries.len()
}

// Dates returns the keys in stored order.
func (m *ShiftMap) Dates() []string {
	if m == nil {
		return nil
	}
	return m.entries.orderedKeys()
}

// Map returns the entries as a plain map.
func (m *ShiftMap) Map() map[string]string {
	out := make(map[string]string, m.Len())
	if m == nil {
		return out
	}
	for k, v := range m.entries.values {
		out[k] = v
	}
	return out
}

// Clone returns a deep copy.
func (m *ShiftMap) Clone() *ShiftMap {
	if m == nil {
		return NewShiftMap()
	}
	return &ShiftMap{entries: m.entries.clone()}
}

// Equal compares content and order.
func (m *ShiftMap) Equal(o *ShiftMap) bool {
	if m == nil || o == nil {
		return m.Len() == o.Len()
	}
	return equalOrdered(&m.entries, &o.entries)
}

// ResolveShift is the default-lookup rule of the roster: the explicit entry
// for date when present and non-empty, otherwise defaultCode. Unknown codes
// pass through verbatim.
func ResolveShift(m *ShiftMap, date, defaultCode string) string {
	if code, ok := m.Get(date); ok && code != "" {
		return code
	}
	return defaultCode
}
