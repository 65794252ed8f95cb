package cli

import (
	"time"

	"github.com/alexanderramin/rota/internal/config"
	"github.com/alexanderramin/rota/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// App holds the configuration and services used by CLI commands.
type App struct {
	Config    config.Config
	Workspace service.WorkspaceService

	// IsInteractive reports whether prompts and the editor may take over
	// the terminal. Nil means never.
	IsInteractive func() bool
	// Now is the clock. Nil means time.Now.
	Now func() time.Time
	// RunForm and RunProgram run huh forms and bubbletea programs. Tests
	// replace them.
	RunForm    func(*huh.Form) error
	RunProgram func(tea.Model) (tea.Model, error)
}

// NewRootCmd creates the top-level "rota" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "rota",
		Short:         "Staff shift roster editor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&app.Config.File, "file", "f", app.Config.File, "Roster document (.json, .yaml or .yml)")

	root.AddCommand(
		newInitCmd(app),
		newShowCmd(app),
		newDayCmd(app),
		newScheduleCmd(app),
		newSetCmd(app),
		newEmployeeCmd(app),
		newCodeCmd(app),
		newRangeCmd(app),
		newTitleCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newValidateCmd(app),
		newSnapshotCmd(app),
		newEditCmd(app),
	)

	return root
}
