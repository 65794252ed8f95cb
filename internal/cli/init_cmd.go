package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/rota/internal/calendar"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	var title, start string
	var days int
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new empty roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(app.Config.File); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", app.Config.File)
			}

			startDate := calendar.Day(app.now())
			if start != "" {
				var err error
				startDate, err = parseDateArg(start, app.now())
				if err != nil {
					return err
				}
			}
			if days < 0 {
				return fmt.Errorf("--days must not be negative")
			}

			doc := domain.NewEmptyDocument(title, startDate, days, nil)
			if err := app.Workspace.Save(cmd.Context(), app.Config.File, doc); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created roster %q in %s (%s to %s)\n",
				title, app.Config.File,
				calendar.FormatDate(doc.Metadata.StartDate), calendar.FormatDate(doc.Metadata.EndDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", app.Config.Title, "Roster title")
	cmd.Flags().StringVar(&start, "start", "", "First day (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&days, "days", app.Config.WindowDays, "Days after the first day covered by the roster")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}
