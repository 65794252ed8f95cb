package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/spf13/cobra"
)

func newEmployeeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employee",
		Aliases: []string{"emp"},
		Short:   "Manage the people on the roster",
	}

	cmd.AddCommand(
		newEmployeeAddCmd(app),
		newEmployeeRemoveCmd(app),
		newEmployeeListCmd(app),
		newEmployeeRenameCmd(app),
	)

	return cmd
}

func newEmployeeAddCmd(app *App) *cobra.Command {
	var name, code string

	cmd := &cobra.Command{
		Use:   "add [NAME]",
		Short: "Add an employee and fill the roster window with a code",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if name != "" {
					return errors.New("give the name either as an argument or with --name, not both")
				}
				name = args[0]
			}

			roster, err := app.editRoster(cmd)
			if err != nil {
				return err
			}
			if code == "" {
				code = roster.DefaultCode()
			}

			if strings.TrimSpace(name) == "" {
				if !app.interactive() {
					return fmt.Errorf("employee name is required: %w", domain.ErrInvalidInput)
				}
				if err := app.runForm(employeeForm(&name, &code, roster.Metadata().ShiftCodes.Codes())); err != nil {
					return err
				}
			}

			e, err := roster.AddEmployee(name, code)
			if err != nil {
				return err
			}
			if err := app.commit(cmd, roster); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s as #%d (%d days of %s)\n", e.Name, e.ID, e.Shifts.Len(), code)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Employee name")
	cmd.Flags().StringVar(&code, "default", "", "Code written for every date of the window (default: the roster default)")

	return cmd
}

func newEmployeeRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Remove an employee and all their shifts",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEmployeeID(args[0])
			if err != nil {
				return err
			}
			roster, err := app.editRoster(cmd)
			if err != nil {
				return err
			}
			e, err := roster.Employee(id)
			if err != nil {
				return err
			}

			if !yes && app.interactive() {
				ok := false
				if err := app.runForm(confirmForm(fmt.Sprintf("Remove %s (#%d)?", e.Name, e.ID), &ok)); err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
			}

			roster.RemoveEmployee(id)
			if err := app.commit(cmd, roster); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (#%d)\n", e.Name, e.ID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func newEmployeeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List employees",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := app.viewRoster(cmd)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEmployees(roster.Employees()))
			return nil
		},
	}
}

func newEmployeeRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Change an employee's display name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEmployeeID(args[0])
			if err != nil {
				return err
			}
			roster, err := app.editRoster(cmd)
			if err != nil {
				return err
			}
			if err := roster.RenameEmployee(id, args[1]); err != nil {
				return err
			}
			if err := app.commit(cmd, roster); err != nil {
				return err
			}
			e, _ := roster.Employee(id)
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed #%d to %s\n", id, e.Name)
			return nil
		},
	}
}
