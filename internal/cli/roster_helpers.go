package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/rota/internal/calendar"
	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/alexanderramin/rota/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func (a *App) policy() service.Policy {
	return service.Policy{
		DefaultCode: a.Config.DefaultCode,
		StrictCodes: a.Config.StrictCodes,
		StrictRange: a.Config.StrictRange,
	}
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) runForm(f *huh.Form) error {
	if a.RunForm != nil {
		return a.RunForm(f)
	}
	return f.Run()
}

func (a *App) runProgram(m tea.Model) (tea.Model, error) {
	if a.RunProgram != nil {
		return a.RunProgram(m)
	}
	return tea.NewProgram(m, tea.WithAltScreen()).Run()
}

// viewRoster loads the document for read-only commands. An unreadable file
// is reported on stderr and the default roster is shown instead.
func (a *App) viewRoster(cmd *cobra.Command) (service.RosterService, error) {
	res, err := a.Workspace.Load(cmd.Context(), a.Config.File)
	if err != nil {
		return nil, err
	}
	if res.Fallback && !errors.Is(res.Err, fs.ErrNotExist) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", formatter.StyleYellow.Render("warning:"), res.Err)
		fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim("showing an empty roster instead"))
	}
	return service.NewRosterService(res.Document, a.policy()), nil
}

// editRoster loads the document for a command that will save it. A missing
// file starts a fresh roster, but an unreadable one is never overwritten.
func (a *App) editRoster(cmd *cobra.Command) (service.RosterService, error) {
	res, err := a.Workspace.Load(cmd.Context(), a.Config.File)
	if err != nil {
		return nil, err
	}
	if res.Fallback && !errors.Is(res.Err, fs.ErrNotExist) {
		return nil, fmt.Errorf("refusing to modify %s: %w", a.Config.File, res.Err)
	}
	return service.NewRosterService(res.Document, a.policy()), nil
}

func (a *App) commit(cmd *cobra.Command, roster service.RosterService) error {
	return a.Workspace.Save(cmd.Context(), a.Config.File, roster.Document())
}

func parseEmployeeID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil {
		return 0, fmt.Errorf("invalid employee id %q", s)
	}
	return id, nil
}

// parseDateArg accepts an ISO date or one of today, tomorrow and yesterday.
func parseDateArg(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return calendar.Day(now), nil
	case "tomorrow":
		return calendar.Day(now).AddDate(0, 0, 1), nil
	case "yesterday":
		return calendar.Day(now).AddDate(0, 0, -1), nil
	}
	d, err := calendar.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return d, nil
}
