package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/rota/internal/calendar"
	"github.com/alexanderramin/rota/internal/service"
	"github.com/charmbracelet/lipgloss"
)

const cellGap = 1

// GridLayout holds the column widths used to draw a grid. The editor reuses
// it to place its cursor.
type GridLayout struct {
	NameWidth int
	CellWidth int
}

// LayoutFor sizes the name column to the longest name and every day column
// to the longest code, with a floor of three so day labels fit.
func LayoutFor(g *service.Grid) GridLayout {
	l := GridLayout{NameWidth: len("NAME"), CellWidth: 3}
	for _, r := range g.Rows {
		l.NameWidth = max(l.NameWidth, lipgloss.Width(r.Name))
		for _, c := range r.Cells {
			l.CellWidth = max(l.CellWidth, lipgloss.Width(c.Code))
		}
	}
	return l
}

// CursorPos marks a cell to highlight. Row or Col below zero disables it.
type CursorPos struct {
	Row, Col int
}

// NoCursor disables highlighting.
var NoCursor = CursorPos{Row: -1, Col: -1}

// FormatGrid renders the roster as a month / day / date header over one row
// per employee, each cell painted in its shift color.
func FormatGrid(g *service.Grid) string {
	return RenderGrid(g, LayoutFor(g), NoCursor)
}

// RenderGrid is FormatGrid with an explicit layout and a highlighted cell.
func RenderGrid(g *service.Grid, l GridLayout, cursor CursorPos) string {
	var b strings.Builder
	gap := strings.Repeat(" ", cellGap)
	lead := strings.Repeat(" ", l.NameWidth) + gap

	if len(g.Dates) == 0 {
		b.WriteString(Dim("(no dates in range)"))
		b.WriteString("\n")
	} else {
		// Month row.
		b.WriteString(lead)
		for i, m := range g.Months {
			w := m.Count*l.CellWidth + (m.Count-1)*cellGap
			b.WriteString(StyleHeader.Render(fit(m.Label, w)))
			if i < len(g.Months)-1 {
				b.WriteString(gap)
			}
		}
		b.WriteString("\n")

		b.WriteString(lead)
		b.WriteString(dateRow(g, l, calendar.DayLabel))
		b.WriteString("\n")
		b.WriteString(StyleBold.Render(fit("NAME", l.NameWidth)))
		b.WriteString(gap)
		b.WriteString(dateRow(g, l, calendar.DayNumber))
		b.WriteString("\n")
	}

	if len(g.Rows) == 0 {
		b.WriteString(Dim("No employees. Add one with `rota employee add`."))
		b.WriteString("\n")
		return b.String()
	}

	for ri, r := range g.Rows {
		b.WriteString(StyleBold.Render(fit(r.Name, l.NameWidth)))
		for ci, c := range r.Cells {
			b.WriteString(gap)
			st := CodeStyle(c.Color).Width(l.CellWidth).Align(lipgloss.Center)
			if !c.Explicit {
				st = st.Faint(true)
			}
			if ri == cursor.Row && ci == cursor.Col {
				st = st.Reverse(true).Bold(true)
			}
			b.WriteString(st.Render(c.Code))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func dateRow(g *service.Grid, l GridLayout, label func(time.Time) string) string {
	parts := make([]string, 0, len(g.Dates))
	for _, d := range g.Dates {
		text := fit(label(d), l.CellWidth)
		if calendar.IsWeekend(d) {
			parts = append(parts, StyleWeekend.Render(text))
		} else {
			parts = append(parts, StyleDim.Render(text))
		}
	}
	return strings.Join(parts, strings.Repeat(" ", cellGap))
}
