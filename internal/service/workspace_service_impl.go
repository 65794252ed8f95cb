package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/export"
	"github.com/alexanderramin/rota/internal/interchange"
	"github.com/alexanderramin/rota/internal/repository"
	"github.com/google/uuid"
)

// ErrNoArchive is returned by snapshot operations on a workspace built
// without a snapshot repository.
var ErrNoArchive = errors.New("snapshot archive is not configured")

// WorkspaceOptions configures document defaults and archive retention.
type WorkspaceOptions struct {
	Policy Policy
	// Title and WindowDays shape the fallback document.
	Title      string
	WindowDays int
	// ArchiveKeep is how many snapshots survive a save. Zero keeps all.
	ArchiveKeep int
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

type workspaceService struct {
	opts      WorkspaceOptions
	snapshots repository.SnapshotRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

// NewWorkspaceService builds a workspace. snapshots and uow may both be nil
// when no archive is needed.
func NewWorkspaceService(
	opts WorkspaceOptions,
	snapshots repository.SnapshotRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) WorkspaceService {
	if opts.Policy.DefaultCode == "" {
		opts.Policy.DefaultCode = domain.DefaultShiftCode
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.WindowDays < 0 {
		opts.WindowDays = 0
	}
	return &workspaceService{
		opts:      opts,
		snapshots: snapshots,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *workspaceService) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

// fallback is the document used when no file can be read. Its window starts
// on the current UTC date.
func (s *workspaceService) fallback() *domain.Document {
	return domain.NewEmptyDocument(s.opts.Title, s.opts.Now().UTC(), s.opts.WindowDays, nil)
}

// Load reads path and falls back to the default roster when the file is
// missing or unreadable. It only fails when ctx is done.
func (s *workspaceService) Load(ctx context.Context, path string) (*LoadResult, error) {
	startedAt := time.Now()
	fields := map[string]any{"path": path}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := interchange.FormatFromPath(path)
	doc, err := s.read(path, format)
	if err != nil {
		fields["fallback"] = true
		s.observe(ctx, "load-roster", startedAt, err, fields)
		return &LoadResult{Document: s.fallback(), Format: format, Fallback: true, Err: err}, nil
	}

	fields["employees"] = len(doc.Employees)
	s.observe(ctx, "load-roster", startedAt, nil, fields)
	return &LoadResult{Document: doc, Format: format}, nil
}

func (s *workspaceService) Open(ctx context.Context, path string) (doc *domain.Document, err error) {
	startedAt := time.Now()
	fields := map[string]any{"path": path}
	defer func() { s.observe(ctx, "open-roster", startedAt, err, fields) }()

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	doc, err = s.read(path, interchange.FormatFromPath(path))
	if err != nil {
		return nil, err
	}
	fields["employees"] = len(doc.Employees)
	return doc, nil
}

func (s *workspaceService) read(path string, format interchange.Format) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}
	return interchange.Parse(data, format, interchange.WithDefaultCode(s.opts.Policy.DefaultCode))
}

// Save writes doc to path in the format implied by its extension. The file
// is replaced atomically.
func (s *workspaceService) Save(ctx context.Context, path string, doc *domain.Document) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"path": path, "employees": len(doc.Employees)}
	defer func() { s.observe(ctx, "save-roster", startedAt, err, fields) }()

	if err = ctx.Err(); err != nil {
		return err
	}
	var data []byte
	data, err = interchange.Serialize(doc, interchange.FormatFromPath(path))
	if err != nil {
		return err
	}
	fields["bytes"] = len(data)
	return writeFileAtomic(path, data)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".rota-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("writing roster: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("syncing roster: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing roster: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("setting roster permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("replacing roster: %w", err)
	}
	return nil
}

func (s *workspaceService) Export(ctx context.Context, w io.Writer, doc *domain.Document, format ExportFormat) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"format": string(format)}
	defer func() { s.observe(ctx, "export-roster", startedAt, err, fields) }()

	switch format {
	case ExportJSON, ExportYAML:
		var data []byte
		data, err = interchange.Serialize(doc, interchange.Format(format))
		if err != nil {
			return err
		}
		if _, err = w.Write(data); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		return nil
	case ExportXLSX:
		var grid *Grid
		grid, err = NewRosterService(doc.Clone(), s.opts.Policy).Grid()
		if err != nil {
			return err
		}
		return export.WriteWorkbook(w, SheetFromGrid(grid))
	default:
		err = fmt.Errorf("unsupported export format %q: %w", format, domain.ErrInvalidInput)
		return err
	}
}

// SheetFromGrid adapts a grid to the workbook exporter.
func SheetFromGrid(g *Grid) export.Sheet {
	sheet := export.Sheet{
		Title:  g.Title,
		Dates:  g.Dates,
		Months: g.Months,
		Rows:   make([]export.Row, 0, len(g.Rows)),
	}
	for _, r := range g.Rows {
		row := export.Row{Name: r.Name, Cells: make([]export.Cell, 0, len(r.Cells))}
		for _, c := range r.Cells {
			row.Cells = append(row.Cells, export.Cell{Code: c.Code, Color: c.Color, Weekend: c.Weekend})
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

// SaveSnapshot archives doc as JSON and prunes the archive down to the
// configured size in the same transaction.
func (s *workspaceService) SaveSnapshot(ctx context.Context, doc *domain.Document, label string) (snap *domain.Snapshot, err error) {
	startedAt := time.Now()
	fields := map[string]any{"label": label}
	defer func() { s.observe(ctx, "save-snapshot", startedAt, err, fields) }()

	if s.uow == nil {
		return nil, ErrNoArchive
	}
	var content []byte
	content, err = interchange.Serialize(doc, interchange.FormatJSON)
	if err != nil {
		return nil, err
	}
	snap = &domain.Snapshot{
		ID:        uuid.New().String(),
		Title:     doc.Metadata.Title,
		Label:     label,
		Content:   content,
		Employees: len(doc.Employees),
		CreatedAt: s.opts.Now().UTC(),
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteSnapshotRepo(tx)
		if err := repo.Create(ctx, snap); err != nil {
			return err
		}
		if s.opts.ArchiveKeep <= 0 {
			return nil
		}
		pruned, err := repo.Prune(ctx, s.opts.ArchiveKeep)
		if err != nil {
			return err
		}
		fields["pruned"] = pruned
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["snapshot_id"] = snap.ID
	return snap, nil
}

func (s *workspaceService) ListSnapshots(ctx context.Context) ([]*domain.Snapshot, error) {
	if s.snapshots == nil {
		return nil, ErrNoArchive
	}
	return s.snapshots.List(ctx)
}

// RestoreSnapshot parses an archived document. Writing it back to disk is
// left to the caller.
func (s *workspaceService) RestoreSnapshot(ctx context.Context, id string) (doc *domain.Document, err error) {
	startedAt := time.Now()
	fields := map[string]any{"snapshot_id": id}
	defer func() { s.observe(ctx, "restore-snapshot", startedAt, err, fields) }()

	if s.snapshots == nil {
		return nil, ErrNoArchive
	}
	var snap *domain.Snapshot
	snap, err = s.resolveSnapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	doc, err = interchange.Parse(snap.Content, interchange.FormatJSON, interchange.WithDefaultCode(s.opts.Policy.DefaultCode))
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", snap.DisplayID(), err)
	}
	return doc, nil
}

func (s *workspaceService) DeleteSnapshot(ctx context.Context, id string) error {
	if s.snapshots == nil {
		return ErrNoArchive
	}
	snap, err := s.resolveSnapshot(ctx, id)
	if err != nil {
		return err
	}
	return s.snapshots.Delete(ctx, snap.ID)
}

// resolveSnapshot accepts a full id or a unique prefix of one.
func (s *workspaceService) resolveSnapshot(ctx context.Context, id string) (*domain.Snapshot, error) {
	snap, err := s.snapshots.GetByID(ctx, id)
	if err == nil || !errors.Is(err, repository.ErrNotFound) || id == "" {
		return snap, err
	}

	all, listErr := s.snapshots.List(ctx)
	if listErr != nil {
		return nil, listErr
	}
	var match *domain.Snapshot
	for _, c := range all {
		if !strings.HasPrefix(c.ID, id) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("snapshot prefix %q is ambiguous: %w", id, domain.ErrInvalidInput)
		}
		match = c
	}
	if match == nil {
		return nil, err
	}
	return match, nil
}
