package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/rota/internal/calendar"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/spf13/cobra"
)

func newRangeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "range START END",
		Short: "Change the roster window",
		Long: `Change the roster window.

Existing shift entries are kept when they fall outside the new window; they
are simply not displayed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dates [2]time.Time
			for i, a := range args {
				d, err := parseDateArg(a, app.now())
				if err != nil {
					return fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
				}
				dates[i] = d
			}
			start, end := dates[0], dates[1]

			roster, err := app.editRoster(cmd)
			if err != nil {
				return err
			}
			if err := roster.SetDateRange(start, end); err != nil {
				return err
			}
			if err := app.commit(cmd, roster); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Roster now covers %s to %s (%d days)\n",
				calendar.FormatDate(start), calendar.FormatDate(end), calendar.Days(start, end)+1)
			return nil
		},
	}
}

func newTitleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "title TITLE",
		Short: "Change the roster title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := app.editRoster(cmd)
			if err != nil {
				return err
			}
			roster.SetTitle(args[0])
			if err := app.commit(cmd, roster); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Title set to %q\n", roster.Metadata().Title)
			return nil
		},
	}
}
