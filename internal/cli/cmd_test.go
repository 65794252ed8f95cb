package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/rota/internal/config"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/repository"
	"github.com/alexanderramin/rota/internal/service"
	"github.com/alexanderramin/rota/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testNow = time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

func plain(s string) string { return ansiRE.ReplaceAllString(s, "") }

// testApp wires a full App backed by an in-memory archive and a roster file
// in a temp dir.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	cfg := config.DefaultConfig()
	cfg.File = filepath.Join(t.TempDir(), "roster.json")
	cfg.ArchiveKeep = 5

	ws := service.NewWorkspaceService(service.WorkspaceOptions{
		Policy:      service.DefaultPolicy(),
		Title:       cfg.Title,
		WindowDays:  cfg.WindowDays,
		ArchiveKeep: cfg.ArchiveKeep,
		Now:         func() time.Time { return testNow },
	}, repository.NewSQLiteSnapshotRepo(database), testutil.NewTestUoW(database))

	return &App{
		Config:    cfg,
		Workspace: ws,
		Now:       func() time.Time { return testNow },
		RunForm: func(*huh.Form) error {
			t.Fatal("unexpected form")
			return nil
		},
		RunProgram: func(tea.Model) (tea.Model, error) {
			t.Fatal("unexpected program")
			return nil, nil
		},
	}
}

// seedRoster writes a one-week roster with two employees.
func seedRoster(t *testing.T, app *App) *domain.Document {
	t.Helper()
	doc := testutil.NewTestDocument(
		testutil.WithTitle("Ward 7"),
		testutil.WithEmployee(1, "Alice", "2024-01-01", "D", "2024-01-02", "N"),
		testutil.WithEmployee(2, "Bob", "2024-01-03", "Sick"),
	)
	require.NoError(t, app.Workspace.Save(context.Background(), app.Config.File, doc))
	return doc
}

func readRoster(t *testing.T, app *App) *domain.Document {
	t.Helper()
	doc, err := app.Workspace.Open(context.Background(), app.Config.File)
	require.NoError(t, err)
	return doc
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return plain(buf.String()), err
}

func TestInitCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "init", "--title", "Night Team", "--start", "2024-02-01", "--days", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-02-01 to 2024-02-04")

	doc := readRoster(t, app)
	assert.Equal(t, "Night Team", doc.Metadata.Title)
	assert.Empty(t, doc.Employees)
	assert.True(t, doc.Metadata.ShiftCodes.Equal(domain.DefaultCatalog()))

	_, err = executeCmd(t, app, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = executeCmd(t, app, "init", "--force")
	require.NoError(t, err)
	doc = readRoster(t, app)
	assert.Equal(t, "Staff Roster", doc.Metadata.Title)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), doc.Metadata.StartDate)
}

func TestShowCmd(t *testing.T) {
	app := testApp(t)
	seedRoster(t, app)

	out, err := executeCmd(t, app, "show", "--from", "2024-01-01", "--to", "2024-01-03")
	require.NoError(t, err)
	assert.Contains(t, out, "WARD 7")
	assert.Contains(t, out, "JANUARY")
	assert.Contains(t, out, "MON")
	assert.Regexp(t, `Alice\s+D\s+N\s+R`, out)
	assert.Regexp(t, `Bob\s+R\s+R\s+Sick`, out)
	assert.Contains(t, out, "Annual Leave", "legend")

	out, err = executeCmd(t, app, "show", "--no-legend")
	require.NoError(t, err)
	assert.NotContains(t, out, "Annual Leave")
}

func TestShowCmd_MissingFileShowsEmptyRoster(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No employees")
	assert.NotContains(t, out, "warning")
}

func TestShowCmd_InvalidFileWarns(t *testing.T) {
	app := testApp(t)
	require.NoError(t, os.WriteFile(app.Config.File, []byte("{not json"), 0o644))

	out, err := executeCmd(t, app, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "warning:")
	assert.Contains(t, out, "showing an empty roster instead")
}

func TestDayCmd(t *testing.T) {
	app := testApp(t)
	seedRoster(t, app)

	out, err := executeCmd(t, app, "day", "2024-01-02")
	require.NoError(t, err)
	assert.Regexp(t, `Alice\s+N\s+Night`, out)
	assert.Regexp(t, `Bob\s+R\s+Rest`, out)

	out, err = executeCmd(t, app, "day", "today")
	require.NoError(t, err)
	assert.Regexp(t, `Bob\s+Sick`, out)

	_, err = executeCmd(t, app, "day", "01/02/2024")
	assert.Error(t, err)
}

func TestScheduleCmd(t *testing.T) {
	app := testApp(t)
	seedRoster(t, app)

	out, err := executeCmd(t, app, "schedule", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-01")
	assert.Contains(t, out, "2024-01-02")
	assert.NotContains(t, out, "2024-01-05")

	out, err = executeCmd(t, app, "schedule", "#1", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-07")
	assert.Contains(t, out, "default")

	_, err = executeCmd(t, app, "schedule", "42")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetCmd(t *testing.T) {
	app := testApp(t)
	seedRoster(t, app)

	out, err := executeCmd(t, app, "set", "2", "2024-01-05", "A/L")
	require.NoError(t, err)
	assert.Contains(t, out, "Bob  2024-01-05  A/L")

	code, ok := readRoster(t, app).Employees[1].Shifts.Get("2024-01-05")
	require.True(t, ok)
	assert.Equal(t, "A/L", code)
}

func TestSetCmd_WarnsOnUnknownCodeAndOutsideWindow(t *testing.T) {
	app := testApp(t)
	seedRoster(t, app)

	out, err := executeCmd(t, app, "set", "1", "2024-03-01", "ZZ")
	require.NoError(t, err)
	assert.Contains(t, out, `"ZZ" is not in the shift code catalog`)
	assert.Contains(t, out, "outside the roster window")

	code, _ := readRoster(t, app).Employees[0].Shifts.Get("2024-03-01")
	assert.Equal(t, "ZZ", code)
}

func TestSetCmd_StrictCodesRejects(t *testing.T) {
	app := testApp(t)
	app.Config.StrictCodes = true
	seedRoster(t, app)

	_, err := executeCmd(t, app, "set", "1", "2024-01-04", "ZZ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetCmd_PromptsForCode(t *testing.T) {
	app := testApp(t)
	seedRoster(t, app)

	_, err := executeCmd(t, app, "set", "1", "2024-01-04")
	require.Error(t, err, "non-interactive sessions need a code")

	app.IsInteractive = func() bool { return true }
	app.RunForm = func(*huh.Form) error { return nil }
	_, err = executeCmd(t, app, "set", "1", "2024-01-04")
	require.NoError(t, err)

	code, ok := readRoster(t, app).Employees[0].Shifts.Get("2024-01-04")
	require.True(t, ok)
	assert.Equal(t, "R", code, "the picker starts on the current code")
}

func TestSetCmd_UnknownEmployee(t *testing.T) {
	app := testApp(t)
	seedRoster(t, app)

	_, err := executeCmd(t, app, "set", "9", "2024-01-04", "D")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = executeCmd(t, app, "set", "abc", "2024-01-04", "D")
	assert.Error(t, err)
}

func TestMutatingCmd_RefusesUnreadableFile(t *testing.T) {
	app := testApp(t)
	require.NoError(t, os.WriteFile(app.Config.File, []byte("{broken"), 0o644))

	_, err := executeCmd(t, app, "employee", "add", "Alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to modify")

	data, err := os.ReadFile(app.Config.File)
	require.NoError(t, err)
	assert.Equal(t, "{broken", string(data))
}

func TestEmployeeAddCmd(t *testing.T) {
	app := testApp(t)
	seedRoster(t, app)

	out, err := executeCmd(t, app, "employee", "add", "  Carol  ", "--default", "D")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Carol as #3 (7 days of D)")

	doc := readRoster(t, app)
	require.Len(t, doc.Employees, 3)
	carol := doc.Employees[2]
	assert.Equal(t, "Carol", carol.Name)
	assert.Equal(t, 7, carol.Shifts.Len())
	code, _ := carol.Shifts.Get("2024-01-07")
	assert.Equal(t, "D", code)

	_, err = executeCmd(t, app, "employee", "add")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEmployeeAddCmd_StartsMissingRoster(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "employee", "add", "--name", "Dana")
	require.NoError(t, err)

	doc := readRoster(t, app)
	require.Len(t, doc.Employees, 1)
	assert.Equal(t, 1, doc.Employees[0].ID)
	assert.Equal(t, 46, doc.Employees[0].Shifts.Len())
}

func TestEmployeeRemoveCmd(t *testing.T) {
	app := testApp(t)
	seedRoster(t, app)

	out, err := executeCmd(t, app, "employee", "rm", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed Alice (#1)")

	doc := readRoster(t, app)
	require.Len(t, doc.Employees, 1)
	assert.Equal(t, "Bob", doc.Employees[0].Name)

	_, err = executeCmd(t, app, "employee", "rm", "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmployeeRemoveCmd_DeclinedConfirmation(t *testing.T) {
	app := testApp(t)
	seedRoster(t, app)
	app.IsInteractive = func() bool { return true }
	forms := 0
	app.RunForm = func(*huh.Form) error {
		forms++
		return nil
	}

	out, err := executeCmd(t, app, "employee", "rm", "2")
	require.NoError(t, err)
	assert.Equal(t, 1, forms)
	assert.Contains(t, out, "Cancelled")
	assert.Len(t, readRoster(t, app).Employees, 2)

	_, err = executeCmd(t, app, "employee", "rm", "2", "--yes")
	require.NoError(t, err)
	assert.Equal(t, 1, forms, "--yes skips the prompt")
	assert.Len(t, readRoster(t, app).Employees, 1)
}

func TestEmployeeListAndRename(t *testing.T) {
	app := testApp(t)
	seedRoster(t, app)

	_, err := executeCmd(t, app, "employee", "rename", "2", "Robert")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "employee", "list")
	require.NoError(t, err)
	assert.Regexp(t, `1\s+Alice\s+2`, out)
	assert.Regexp(t, `2\s+Robert\s+1`, out)

	_, err = executeCmd(t, app, "employee", "rename", "2", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCodeCmd(t *testing.T) {
	app := testApp(t)
	seedRoster(t, app)

	out, err := executeCmd(t, app, "code", "add", "T", "--name", "Training", "--color", "#00aa00")
	require.NoError(t, err)
	assert.Contains(t, out, "Added shift code T")

	out, err = executeCmd(t, app, "code", "add", "D", "--name", "Day Shift", "--color", "#FF0")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated shift code D")

	catalog := readRoster(t, app).Metadata.ShiftCodes
	sc, ok := catalog.Get("T")
	require.True(t, ok)
	assert.Equal(t, domain.ShiftCode{ID: "T", Name: "Training", Color: "#00AA00"}, sc)
	assert.Equal(t, "T", catalog.Codes()[catalog.Len()-1].ID)
	sc, _ = catalog.Get("D")
	assert.Equal(t, "Day Shift", sc.Name)

	_, err = executeCmd(t, app, "code", "add", "X", "--color", "green")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err = executeCmd(t, app, "code", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Training")
}

func TestRangeAndTitleCmd(t *testing.T) {
	app := testApp(t)
	seedRoster(t, app)

	out, err := executeCmd(t, app, "range", "2024-01-02", "2024-01-31")
	require.NoError(t, err)
	assert.Contains(t, out, "(30 days)")

	_, err = executeCmd(t, app, "title", "Ward 8")
	require.NoError(t, err)

	doc := readRoster(t, app)
	assert.Equal(t, "Ward 8", doc.Metadata.Title)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), doc.Metadata.EndDate)
	_, kept := doc.Employees[0].Shifts.Get("2024-01-01")
	assert.True(t, kept, "entries outside the new window are kept")

	_, err = executeCmd(t, app, "range", "2024-02-01", "2024-01-01")
	assert.Error(t, err)
	_, err = executeCmd(t, app, "range", "soon", "2024-01-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err = executeCmd(t, app, "range", "today", "2024-01-09")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-03 to 2024-01-09 (7 days)")
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), readRoster(t, app).Metadata.StartDate)
}

func TestExportCmd(t *testing.T) {
	app := testApp(t)
	seedRoster(t, app)

	out, err := executeCmd(t, app, "export", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "title: Ward 7")

	out, err = executeCmd(t, app, "export")
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "Ward 7"`)

	xlsx := filepath.Join(t.TempDir(), "ward.xlsx")
	_, err = executeCmd(t, app, "export", "--out", xlsx)
	require.NoError(t, err)

	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Ward 7")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 5)
	assert.Equal(t, "Alice", rows[3][0])

	_, err = executeCmd(t, app, "export", "--format", "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json|yaml|xlsx")
}

func TestImportCmd(t *testing.T) {
	app := testApp(t)
	seedRoster(t, app)

	src := filepath.Join(t.TempDir(), "incoming.yaml")
	incoming := testutil.NewTestDocument(testutil.WithTitle("Incoming"), testutil.WithEmployee(5, "Eve"))
	ws := app.Workspace
	require.NoError(t, ws.Save(context.Background(), src, incoming))

	out, err := executeCmd(t, app, "import", src)
	require.NoError(t, err)
	assert.Contains(t, out, `Imported "Incoming" (1 employees)`)

	doc := readRoster(t, app)
	assert.Equal(t, "Incoming", doc.Metadata.Title)

	snaps, err := ws.ListSnapshots(context.Background())
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, "before import", snaps[0].Label)
	assert.Equal(t, "Ward 7", snaps[0].Title)
}

func TestImportCmd_InvalidSourceLeavesRosterAlone(t *testing.T) {
	app := testApp(t)
	seedRoster(t, app)

	src := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"metadata": {"startDate": "2024-01-01"}}`), 0o644))

	_, err := executeCmd(t, app, "import", src)
	require.Error(t, err)
	assert.Equal(t, "Ward 7", readRoster(t, app).Metadata.Title)
}

func TestValidateCmd(t *testing.T) {
	app := testApp(t)
	seedRoster(t, app)

	out, err := executeCmd(t, app, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "is a valid roster")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"metadata": {"startDate": "2024-01-09", "endDate": "2024-01-01", "shiftCodes": {}}}`), 0o644))
	out, err = executeCmd(t, app, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, out, "PROBLEM(S)")
	assert.Contains(t, out, "must not be before startDate")

	_, err = executeCmd(t, app, "validate", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSnapshotCmds(t *testing.T) {
	app := testApp(t)
	seedRoster(t, app)

	out, err := executeCmd(t, app, "snapshot", "save", "--label", "week 1")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved snapshot ")

	snaps, err := app.Workspace.ListSnapshots(context.Background())
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	id := snaps[0].ID

	out, err = executeCmd(t, app, "snapshot", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id[:8])
	assert.Contains(t, out, "week 1")
	assert.Contains(t, out, "Ward 7")

	_, err = executeCmd(t, app, "title", "Changed")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "snapshot", "restore", id[:8])
	require.NoError(t, err)
	assert.Contains(t, out, `Restored "Ward 7"`)
	assert.Equal(t, "Ward 7", readRoster(t, app).Metadata.Title)

	snaps, err = app.Workspace.ListSnapshots(context.Background())
	require.NoError(t, err)
	require.Len(t, snaps, 2, "restore archives the replaced roster")

	_, err = executeCmd(t, app, "snapshot", "rm", id)
	require.NoError(t, err)
	_, err = executeCmd(t, app, "snapshot", "restore", id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSnapshotCmds_NoArchive(t *testing.T) {
	app := testApp(t)
	seedRoster(t, app)
	app.Workspace = service.NewWorkspaceService(service.WorkspaceOptions{Policy: service.DefaultPolicy()}, nil, nil)

	_, err := executeCmd(t, app, "snapshot", "list")
	assert.True(t, errors.Is(err, service.ErrNoArchive))

	// Import still works without an archive.
	src := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, app.Workspace.Save(context.Background(), src, testutil.NewTestDocument()))
	_, err = executeCmd(t, app, "import", src)
	require.NoError(t, err)
}

func TestEditCmd_RequiresTerminal(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "edit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestEditCmd_RunsEditor(t *testing.T) {
	app := testApp(t)
	seedRoster(t, app)
	app.IsInteractive = func() bool { return true }
	app.RunProgram = func(m tea.Model) (tea.Model, error) {
		em := m.(editorModel)
		cmd := em.saveCmd()
		next, _ := em.Update(cmd())
		return next, nil
	}

	out, err := executeCmd(t, app, "edit")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved "+app.Config.File)
}

func TestParseDateArg(t *testing.T) {
	d, err := parseDateArg("tomorrow", testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), d)
	d, err = parseDateArg("Yesterday", testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), d)
	_, err = parseDateArg("2024-02-30", testNow)
	assert.Error(t, err)
}

func TestParseEmployeeID(t *testing.T) {
	id, err := parseEmployeeID("#12")
	require.NoError(t, err)
	assert.Equal(t, 12, id)
	id, err = parseEmployeeID("-3")
	require.NoError(t, err)
	assert.Equal(t, -3, id, "any integer id is addressable")
	for _, s := range []string{"x", "", "1.5"} {
		_, err := parseEmployeeID(s)
		assert.Error(t, err, s)
	}
}
