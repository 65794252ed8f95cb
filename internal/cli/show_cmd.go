package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/alexanderramin/rota/internal/service"
	"github.com/alexanderramin/rota/internal/watch"
	"github.com/spf13/cobra"
)

const clearScreen = "\x1b[H\x1b[2J"

func newShowCmd(app *App) *cobra.Command {
	var from, to string
	var watchFile, noLegend bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the roster grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			render := func(w io.Writer) error {
				roster, err := app.viewRoster(cmd)
				if err != nil {
					return err
				}
				out, err := renderShow(app, roster, from, to, !noLegend)
				if err != nil {
					return err
				}
				fmt.Fprint(w, out)
				return nil
			}

			if !watchFile {
				return render(cmd.OutOrStdout())
			}

			fmt.Fprint(cmd.OutOrStdout(), clearScreen)
			if err := render(cmd.OutOrStdout()); err != nil {
				return err
			}
			var opts []watch.Option
			if app.Config.LogUseCases {
				opts = append(opts, watch.WithLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))))
			}
			w := watch.New(app.Config.File, func(context.Context) {
				fmt.Fprint(cmd.OutOrStdout(), clearScreen)
				if err := render(cmd.OutOrStdout()); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", formatter.StyleRed.Render("error:"), err)
				}
			}, opts...)
			return w.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First date to show (default roster start)")
	cmd.Flags().StringVar(&to, "to", "", "Last date to show (default roster end)")
	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "Redraw whenever the file changes")
	cmd.Flags().BoolVar(&noLegend, "no-legend", false, "Hide the shift code legend")

	return cmd
}

func renderShow(app *App, roster service.RosterService, from, to string, legend bool) (string, error) {
	md := roster.Metadata()
	start, end := md.StartDate, md.EndDate
	var err error
	if from != "" {
		if start, err = parseDateArg(from, app.now()); err != nil {
			return "", err
		}
	}
	if to != "" {
		if end, err = parseDateArg(to, app.now()); err != nil {
			return "", err
		}
	}

	grid, err := roster.GridBetween(start, end)
	if err != nil {
		return "", err
	}

	out := formatter.Header(md.Title) + "\n" + formatter.FormatGrid(grid)
	if legend {
		out += "\n" + formatter.FormatLegend(md.ShiftCodes.Codes())
	}
	return out, nil
}
