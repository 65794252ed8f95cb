package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/alexanderramin/rota/internal/interchange"
	"github.com/alexanderramin/rota/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// exportFormatValue is a pflag.Value restricted to service.ExportFormats.
type exportFormatValue struct {
	format service.ExportFormat
}

var _ pflag.Value = (*exportFormatValue)(nil)

func (v *exportFormatValue) String() string { return string(v.format) }

func (v *exportFormatValue) Set(s string) error {
	f := service.ExportFormat(strings.ToLower(strings.TrimSpace(s)))
	if f == "yml" {
		f = service.ExportYAML
	}
	if !slices.Contains(service.ExportFormats(), f) {
		return fmt.Errorf("must be one of %s", formatNames())
	}
	v.format = f
	return nil
}

func (v *exportFormatValue) Type() string { return "format" }

func formatNames() string {
	names := make([]string, 0, len(service.ExportFormats()))
	for _, f := range service.ExportFormats() {
		names = append(names, string(f))
	}
	return strings.Join(names, "|")
}

// exportFormatFromPath infers the encoding from an output file extension.
func exportFormatFromPath(path string) service.ExportFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return service.ExportXLSX
	case ".yaml", ".yml":
		return service.ExportYAML
	default:
		return service.ExportJSON
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newExportCmd(app *App) *cobra.Command {
	var out string
	format := &exportFormatValue{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the roster as JSON, YAML or an Excel workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := format.format
			if f == "" {
				f = service.ExportJSON
				if out != "" {
					f = exportFormatFromPath(out)
				}
			}

			roster, err := app.viewRoster(cmd)
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				w := cmd.OutOrStdout()
				if f == service.ExportXLSX && isTerminal(w) {
					return errors.New("refusing to write a workbook to a terminal (use --out)")
				}
				return app.Workspace.Export(cmd.Context(), w, roster.Document(), f)
			}

			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			if err := app.Workspace.Export(cmd.Context(), file, roster.Document(), f); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s to %s\n", f, out)
			return nil
		},
	}

	cmd.Flags().VarP(format, "format", "F", "Output format ("+formatNames()+"), inferred from --out when omitted")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")

	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import PATH",
		Short: "Replace the roster with a validated JSON or YAML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := app.Workspace.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			// Keep the document being replaced when there is one to keep.
			if current, err := app.Workspace.Open(cmd.Context(), app.Config.File); err == nil {
				if _, err := app.Workspace.SaveSnapshot(cmd.Context(), current, "before import"); err != nil && !errors.Is(err, service.ErrNoArchive) {
					return err
				}
			}

			if err := app.Workspace.Save(cmd.Context(), app.Config.File, doc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %q (%d employees) into %s\n",
				doc.Metadata.Title, len(doc.Employees), app.Config.File)
			return nil
		},
	}
}

func newValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [PATH]",
		Short: "Check a roster document without loading it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.Config.File
			if len(args) == 1 {
				path = args[0]
			}

			_, err := app.Workspace.Open(cmd.Context(), path)
			var perr *interchange.ParseError
			if err != nil && !errors.As(err, &perr) {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatValidation(path, err))
			if err != nil {
				return fmt.Errorf("%s is not a valid roster", path)
			}
			return nil
		},
	}
}
