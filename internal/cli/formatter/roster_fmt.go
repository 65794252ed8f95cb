package formatter

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/rota/internal/calendar"
	"github.com/alexanderramin/rota/internal/domain"
)

// FormatLegend lists every catalog code as a colored swatch with its name.
func FormatLegend(codes []domain.ShiftCode) string {
	if len(codes) == 0 {
		return Dim("No shift codes defined.")
	}
	w := 0
	for _, c := range codes {
		w = max(w, len(c.ID))
	}
	parts := make([]string, 0, len(codes))
	for _, c := range codes {
		swatch := CodeStyle(c.Color).Padding(0, 1).Render(fit(c.ID, w))
		parts = append(parts, swatch+" "+StyleFg.Render(domain.CoalesceStr(c.Name, c.ID)))
	}

	const perLine = 4
	var b strings.Builder
	for i := 0; i < len(parts); i += perLine {
		end := min(i+perLine, len(parts))
		b.WriteString(strings.Join(parts[i:end], "   "))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatDay renders who works what on date, sorted by name.
func FormatDay(date time.Time, shifts map[string]string, catalog *domain.ShiftCatalog) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%s %s %s", calendar.DayLabel(date), calendar.FormatDate(date), calendar.MonthLabel(date))))
	b.WriteString("\n")
	if len(shifts) == 0 {
		b.WriteString(Dim("No employees on the roster."))
		b.WriteString("\n")
		return b.String()
	}

	names := make([]string, 0, len(shifts))
	for n := range shifts {
		names = append(names, n)
	}
	slices.Sort(names)

	rows := make([][]string, 0, len(names))
	for _, n := range names {
		code := shifts[n]
		rows = append(rows, []string{n, codeCell(code, catalog), codeName(code, catalog)})
	}
	b.WriteString(RenderTable([]string{"NAME", "CODE", "SHIFT"}, rows))
	return b.String()
}

// ScheduleEntry is one line of an employee schedule.
type ScheduleEntry struct {
	Date     string
	Code     string
	Explicit bool
}

// FormatSchedule renders an employee's entries. Entries filled from the
// default code are marked.
func FormatSchedule(e *domain.Employee, entries []ScheduleEntry, catalog *domain.ShiftCatalog) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("#%d %s", e.ID, e.Name)))
	b.WriteString("\n")
	if len(entries) == 0 {
		b.WriteString(Dim("No explicit shifts. Every date uses the default code."))
		b.WriteString("\n")
		return b.String()
	}

	rows := make([][]string, 0, len(entries))
	for _, en := range entries {
		day := ""
		if d, err := calendar.ParseDate(en.Date); err == nil {
			day = calendar.DayLabel(d)
		}
		note := ""
		if !en.Explicit {
			note = Dim("default")
		}
		rows = append(rows, []string{en.Date, day, codeCell(en.Code, catalog), codeName(en.Code, catalog), note})
	}
	b.WriteString(RenderTable([]string{"DATE", "DAY", "CODE", "SHIFT", ""}, rows))
	return b.String()
}

// FormatEmployees lists employees with the number of explicit entries.
func FormatEmployees(emps []*domain.Employee) string {
	if len(emps) == 0 {
		return Dim("No employees.") + "\n"
	}
	rows := make([][]string, 0, len(emps))
	for _, e := range emps {
		rows = append(rows, []string{strconv.Itoa(e.ID), e.Name, strconv.Itoa(e.Shifts.Len())})
	}
	return RenderTable([]string{"ID", "NAME", "ENTRIES"}, rows, AlignRight(0, 2))
}

// FormatCodes lists the shift catalog.
func FormatCodes(codes []domain.ShiftCode) string {
	if len(codes) == 0 {
		return Dim("No shift codes defined.") + "\n"
	}
	rows := make([][]string, 0, len(codes))
	for _, c := range codes {
		rows = append(rows, []string{CodeStyle(c.Color).Padding(0, 1).Render(c.ID), c.Name, c.Color})
	}
	return RenderTable([]string{"CODE", "NAME", "COLOR"}, rows)
}

// FormatSnapshots lists archived snapshots, newest first.
func FormatSnapshots(snaps []*domain.Snapshot, now time.Time) string {
	if len(snaps) == 0 {
		return Dim("No snapshots.") + "\n"
	}
	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		rows = append(rows, []string{
			TruncID(s.ID),
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			Dim(RelativeAge(s.CreatedAt, now)),
			strconv.Itoa(s.Employees),
			s.Title,
			s.Label,
		})
	}
	return RenderTable([]string{"ID", "CREATED", "AGE", "STAFF", "TITLE", "LABEL"}, rows, AlignRight(3))
}

// FormatValidation reports the outcome of checking a document. A nil err
// means the document is valid.
func FormatValidation(path string, err error) string {
	if err == nil {
		return StyleGreen.Render("✔ ") + path + " is a valid roster\n"
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		lines := make([]string, 0, len(verr.Problems))
		for _, p := range verr.Problems {
			lines = append(lines, StyleRed.Render("✖ ")+p)
		}
		return RenderBox(fmt.Sprintf("%s: %d problem(s)", path, len(verr.Problems)), strings.Join(lines, "\n")) + "\n"
	}
	return StyleRed.Render("✖ ") + err.Error() + "\n"
}

func codeCell(code string, catalog *domain.ShiftCatalog) string {
	return CodeStyle(catalog.ColorOf(code)).Padding(0, 1).Render(code)
}

func codeName(code string, catalog *domain.ShiftCatalog) string {
	if sc, ok := catalog.Get(code); ok {
		return sc.Name
	}
	return Dim("(not in catalog)")
}
