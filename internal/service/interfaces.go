package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/interchange"
)

// RosterService owns one in-memory roster document and performs every edit
// against it. It is not safe for concurrent use.
type RosterService interface {
	ShiftOn(employeeID int, date time.Time) (string, error)
	SetShift(employeeID int, date time.Time, code string) error
	AddEmployee(name, defaultCode string) (*domain.Employee, error)
	RemoveEmployee(employeeID int) bool
	RegisterShiftCode(code, name, color string) error
	ShiftsForDate(date time.Time) map[string]string
	ScheduleOf(employeeID int) *domain.ShiftMap

	Metadata() domain.Metadata
	Employees() []*domain.Employee
	Employee(employeeID int) (*domain.Employee, error)
	RenameEmployee(employeeID int, name string) error
	SetTitle(title string)
	SetDateRange(start, end time.Time) error
	Grid() (*Grid, error)
	GridBetween(from, to time.Time) (*Grid, error)
	Document() *domain.Document
	DefaultCode() string
}

// WorkspaceService moves documents between the roster service, files on
// disk and the snapshot archive.
type WorkspaceService interface {
	Load(ctx context.Context, path string) (*LoadResult, error)
	Open(ctx context.Context, path string) (*domain.Document, error)
	Save(ctx context.Context, path string, doc *domain.Document) error
	Export(ctx context.Context, w io.Writer, doc *domain.Document, format ExportFormat) error

	SaveSnapshot(ctx context.Context, doc *domain.Document, label string) (*domain.Snapshot, error)
	ListSnapshots(ctx context.Context) ([]*domain.Snapshot, error)
	RestoreSnapshot(ctx context.Context, id string) (*domain.Document, error)
	DeleteSnapshot(ctx context.Context, id string) error
}

// Policy holds the roster rules that are configurable per workspace.
type Policy struct {
	// DefaultCode is implied for every date without an explicit entry.
	DefaultCode string
	// StrictCodes rejects SetShift codes missing from the catalog.
	StrictCodes bool
	// StrictRange makes an inverted metadata window an error instead of an
	// empty grid.
	StrictRange bool
}

// DefaultPolicy returns the permissive policy with code "R".
func DefaultPolicy() Policy {
	return Policy{DefaultCode: domain.DefaultShiftCode}
}

// LoadResult is what Load produced. When Fallback is set, Document is the
// default roster and Err explains why the file could not be used.
type LoadResult struct {
	Document *domain.Document
	Format   interchange.Format
	Fallback bool
	Err      error
}

// ExportFormat is an output encoding accepted by Export.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportYAML ExportFormat = "yaml"
	ExportXLSX ExportFormat = "xlsx"
)

// ExportFormats lists every supported export encoding.
func ExportFormats() []ExportFormat {
	return []ExportFormat{ExportJSON, ExportYAML, ExportXLSX}
}
