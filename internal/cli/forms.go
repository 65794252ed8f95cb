package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// rotaHuhTheme returns a huh theme matching the Gruvbox palette.
func rotaHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorBg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// codeOptions turns the catalog into select options labelled "D  Day".
func codeOptions(codes []domain.ShiftCode) []huh.Option[string] {
	w := 0
	for _, c := range codes {
		w = max(w, len(c.ID))
	}
	opts := make([]huh.Option[string], 0, len(codes))
	for _, c := range codes {
		label := fmt.Sprintf("%-*s  %s", w, c.ID, c.Name)
		opts = append(opts, huh.NewOption(label, c.ID))
	}
	return opts
}

// employeeForm collects a name and the code to backfill the window with.
func employeeForm(name, code *string, codes []domain.ShiftCode) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Employee Name").
				Placeholder("Alice Smith").
				Value(name).
				Validate(validateName),
			huh.NewSelect[string]().
				Title("Fill Every Date With").
				Options(codeOptions(codes)...).
				Value(code),
		),
	).WithTheme(rotaHuhTheme()).WithShowHelp(false)
}

// shiftCodeForm asks for one code from the catalog.
func shiftCodeForm(title string, code *string, codes []domain.ShiftCode) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(codeOptions(codes)...).
				Value(code),
		),
	).WithTheme(rotaHuhTheme()).WithShowHelp(false)
}

// confirmForm asks a yes/no question.
func confirmForm(title string, ok *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(ok),
		),
	).WithTheme(rotaHuhTheme()).WithShowHelp(false)
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("name is required")
	}
	return nil
}

// validateColor accepts blank or a #RGB / #RRGGBB hex color.
func validateColor(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return errors.New("use a hex color such as #FFAA00")
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return errors.New("use a hex color such as #FFAA00")
		}
	}
	return nil
}
