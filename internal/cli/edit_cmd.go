package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/spf13/cobra"
)

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the roster in a full-screen grid",
		Long: `Edit the roster in a full-screen grid.

Move with the arrow keys or hjkl, press enter to pick a shift code for the
highlighted cell, d to remove the employee on the current row, s to save and
q to quit. Unsaved changes are confirmed before quitting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errors.New("edit needs an interactive terminal (use set, employee and code instead)")
			}
			roster, err := app.editRoster(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			m := newEditorModel(roster, func(doc *domain.Document) error {
				return app.Workspace.Save(ctx, app.Config.File, doc)
			})

			final, err := app.runProgram(m)
			if err != nil {
				return err
			}
			if em, ok := final.(editorModel); ok && em.saves > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", app.Config.File)
			}
			return nil
		},
	}
}
