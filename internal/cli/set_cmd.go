package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/rota/internal/calendar"
	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set ID DATE [CODE]",
		Short: "Set one employee's shift on a date",
		Long: `Set one employee's shift on a date.

DATE is YYYY-MM-DD, today, tomorrow or yesterday. When CODE is omitted the
code is picked from the catalog interactively.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEmployeeID(args[0])
			if err != nil {
				return err
			}
			date, err := parseDateArg(args[1], app.now())
			if err != nil {
				return err
			}

			roster, err := app.editRoster(cmd)
			if err != nil {
				return err
			}
			if _, err := roster.Employee(id); err != nil {
				return err
			}

			var code string
			if len(args) == 3 {
				code = args[2]
			} else {
				if !app.interactive() {
					return errors.New("shift code is required when not running interactively")
				}
				code, _ = roster.ShiftOn(id, date)
				title := fmt.Sprintf("Shift on %s", calendar.FormatDate(date))
				if err := app.runForm(shiftCodeForm(title, &code, roster.Metadata().ShiftCodes.Codes())); err != nil {
					return err
				}
			}

			if err := roster.SetShift(id, date, code); err != nil {
				return err
			}
			if err := app.commit(cmd, roster); err != nil {
				return err
			}

			md := roster.Metadata()
			if !md.ShiftCodes.Has(code) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %q is not in the shift code catalog\n",
					formatter.StyleYellow.Render("warning:"), code)
			}
			if date.Before(md.StartDate) || date.After(md.EndDate) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %s is outside the roster window\n",
					formatter.StyleYellow.Render("warning:"), calendar.FormatDate(date))
			}

			e, _ := roster.Employee(id)
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", e.Name, calendar.FormatDate(date), code)
			return nil
		},
	}
}
