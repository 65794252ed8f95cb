package domain

import "time"

// Snapshot is an archived export of a roster document. Content holds the
// serialized document exactly as it would be written to a file.
type Snapshot struct {
	ID        string
	Title     string
	Label     string
	Content   []byte
	Employees int
	CreatedAt time.Time
}

// DisplayID returns the first 8 characters of the snapshot id.
func (s *Snapshot) DisplayID() string {
	if len(s.ID) >= 8 {
		return s.ID[:8]
	}
	return s.ID
}
