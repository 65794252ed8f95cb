package service

import (
	"time"

	"github.com/alexanderramin/rota/internal/calendar"
	"github.com/alexanderramin/rota/internal/domain"
)

// Grid is the display projection of a roster: one column per date, one row
// per employee, every cell resolved against the default code.
type Grid struct {
	Title  string
	Dates  []time.Time
	Months []calendar.MonthSpan
	Codes  []domain.ShiftCode
	Rows   []GridRow
}

type GridRow struct {
	EmployeeID int
	Name       string
	Cells      []GridCell
}

type GridCell struct {
	Date    time.Time
	Code    string
	Color   string
	Weekend bool
	// Explicit is false when Code came from the default.
	Explicit bool
}

func buildGrid(doc *domain.Document, dates []time.Time, defaultCode string) *Grid {
	g := &Grid{
		Title:  doc.Metadata.Title,
		Dates:  dates,
		Months: calendar.MonthSpans(dates),
		Codes:  doc.Metadata.ShiftCodes.Codes(),
		Rows:   make([]GridRow, 0, len(doc.Employees)),
	}

	for _, e := range doc.Employees {
		row := GridRow{EmployeeID: e.ID, Name: e.Name, Cells: make([]GridCell, 0, len(dates))}
		for _, d := range dates {
			key := calendar.FormatDate(d)
			raw, ok := e.Shifts.Get(key)
			code := domain.ResolveShift(e.Shifts, key, defaultCode)
			row.Cells = append(row.Cells, GridCell{
				Date:     d,
				Code:     code,
				Color:    doc.Metadata.ShiftCodes.ColorOf(code),
				Weekend:  calendar.IsWeekend(d),
				Explicit: ok && raw != "",
			})
		}
		g.Rows = append(g.Rows, row)
	}
	return g
}
