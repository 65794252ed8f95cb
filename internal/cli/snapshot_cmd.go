package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/alexanderramin/rota/internal/service"
	"github.com/spf13/cobra"
)

func newSnapshotCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "snapshot",
		Aliases: []string{"snap"},
		Short:   "Archive and restore copies of the roster",
	}

	cmd.AddCommand(
		newSnapshotSaveCmd(app),
		newSnapshotListCmd(app),
		newSnapshotRestoreCmd(app),
		newSnapshotRemoveCmd(app),
	)

	return cmd
}

func newSnapshotSaveCmd(app *App) *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Archive the current roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := app.Workspace.Open(cmd.Context(), app.Config.File)
			if err != nil {
				return err
			}
			snap, err := app.Workspace.SaveSnapshot(cmd.Context(), doc, label)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved snapshot %s\n", snap.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "Short note stored with the snapshot")

	return cmd
}

func newSnapshotListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List archived snapshots, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snaps, err := app.Workspace.ListSnapshots(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSnapshots(snaps, app.now()))
			return nil
		},
	}
}

func newSnapshotRestoreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore ID",
		Short: "Replace the roster with an archived snapshot",
		Long: `Replace the roster with an archived snapshot.

ID may be any unique prefix of the snapshot id. The roster being replaced is
archived first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := app.Workspace.RestoreSnapshot(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if current, err := app.Workspace.Open(cmd.Context(), app.Config.File); err == nil {
				if _, err := app.Workspace.SaveSnapshot(cmd.Context(), current, "before restore"); err != nil && !errors.Is(err, service.ErrNoArchive) {
					return err
				}
			}

			if err := app.Workspace.Save(cmd.Context(), app.Config.File, doc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %q into %s\n", doc.Metadata.Title, app.Config.File)
			return nil
		},
	}
}

func newSnapshotRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Delete an archived snapshot",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Workspace.DeleteSnapshot(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted snapshot %s\n", args[0])
			return nil
		},
	}
}
