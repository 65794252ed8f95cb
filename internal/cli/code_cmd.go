package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/spf13/cobra"
)

func newCodeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "code",
		Short: "Manage the shift code catalog",
	}

	cmd.AddCommand(newCodeAddCmd(app), newCodeListCmd(app))

	return cmd
}

func newCodeAddCmd(app *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "add CODE",
		Short: "Add a shift code or update an existing one in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateColor(color); err != nil {
				return fmt.Errorf("--color: %v: %w", err, domain.ErrInvalidInput)
			}
			roster, err := app.editRoster(cmd)
			if err != nil {
				return err
			}

			code := strings.TrimSpace(args[0])
			_, existed := roster.Metadata().ShiftCodes.Get(code)
			if err := roster.RegisterShiftCode(code, name, strings.ToUpper(strings.TrimSpace(color))); err != nil {
				return err
			}
			if err := app.commit(cmd, roster); err != nil {
				return err
			}

			verb := "Added"
			if existed {
				verb = "Updated"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s shift code %s\n", verb, code)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&color, "color", "", "Fill color as #RRGGBB")

	return cmd
}

func newCodeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List shift codes in catalog order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := app.viewRoster(cmd)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCodes(roster.Metadata().ShiftCodes.Codes()))
			return nil
		},
	}
}
