package cli

import (
	"fmt"

	"github.com/alexanderramin/rota/internal/calendar"
	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/spf13/cobra"
)

func newDayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "day DATE",
		Short: "Show everyone's shift on one date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateArg(args[0], app.now())
			if err != nil {
				return err
			}
			roster, err := app.viewRoster(cmd)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDay(date, roster.ShiftsForDate(date), roster.Metadata().ShiftCodes))
			return nil
		},
	}
}

func newScheduleCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "schedule ID",
		Short: "Show one employee's shifts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEmployeeID(args[0])
			if err != nil {
				return err
			}
			roster, err := app.viewRoster(cmd)
			if err != nil {
				return err
			}
			e, err := roster.Employee(id)
			if err != nil {
				return err
			}

			var entries []formatter.ScheduleEntry
			if all {
				md := roster.Metadata()
				for _, d := range calendar.DateRange(md.StartDate, md.EndDate) {
					key := calendar.FormatDate(d)
					raw, ok := e.Shifts.Get(key)
					entries = append(entries, formatter.ScheduleEntry{
						Date:     key,
						Code:     domain.ResolveShift(e.Shifts, key, roster.DefaultCode()),
						Explicit: ok && raw != "",
					})
				}
			} else {
				schedule := roster.ScheduleOf(id)
				for _, key := range schedule.Dates() {
					code, _ := schedule.Get(key)
					entries = append(entries, formatter.ScheduleEntry{Date: key, Code: code, Explicit: true})
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSchedule(e, entries, roster.Metadata().ShiftCodes))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every date of the roster window, including defaults")

	return cmd
}
