// Package export renders a roster grid as an Excel workbook.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/rota/internal/calendar"
	"github.com/xuri/excelize/v2"
)

// Sheet is the grid shape the workbook is built from.
type Sheet struct {
	Title  string
	Dates  []time.Time
	Months []calendar.MonthSpan
	Rows   []Row
}

type Row struct {
	Name  string
	Cells []Cell
}

type Cell struct {
	Code    string
	Color   string
	Weekend bool
}

const (
	monthRow   = 1
	dayRow     = 2
	numberRow  = 3
	firstRow   = 4
	nameColumn = 1
	weekendHex = "#D9D9D9"
	headerHex  = "#1D2021"
)

// WriteWorkbook writes s as a single-sheet XLSX workbook to w. Row 1 holds
// merged month headers, rows 2 and 3 the day labels and numbers, and every
// following row one employee with cells filled in the shift color.
func WriteWorkbook(w io.Writer, s Sheet) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	name := SheetName(s.Title)
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	b := &builder{f: f, sheet: name, styles: make(map[styleKey]int)}
	if err := b.headers(s); err != nil {
		return err
	}
	for i, r := range s.Rows {
		if err := b.row(firstRow+i, r); err != nil {
			return err
		}
	}
	if err := b.layout(len(s.Dates)); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// SheetName turns a roster title into a valid worksheet name.
func SheetName(title string) string {
	title = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, strings.TrimSpace(title))
	title = strings.Trim(title, "'")
	if title == "" {
		return "Roster"
	}
	if r := []rune(title); len(r) > 31 {
		title = strings.TrimSpace(string(r[:31]))
	}
	return title
}

type styleKey struct {
	fill   string
	bold   bool
	header bool
}

type builder struct {
	f      *excelize.File
	sheet  string
	styles map[styleKey]int
}

func (b *builder) cell(col, row int) string {
	// Coordinates are always positive here.
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func (b *builder) set(col, row int, v any, key styleKey) error {
	ref := b.cell(col, row)
	if err := b.f.SetCellValue(b.sheet, ref, v); err != nil {
		return fmt.Errorf("setting %s: %w", ref, err)
	}
	id, err := b.style(key)
	if err != nil {
		return err
	}
	return b.f.SetCellStyle(b.sheet, ref, ref, id)
}

func (b *builder) style(key styleKey) (int, error) {
	if id, ok := b.styles[key]; ok {
		return id, nil
	}
	st := &excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Font:      &excelize.Font{Bold: key.bold},
		Border: []excelize.Border{
			{Type: "left", Color: "#BFBFBF", Style: 1},
			{Type: "right", Color: "#BFBFBF", Style: 1},
			{Type: "top", Color: "#BFBFBF", Style: 1},
			{Type: "bottom", Color: "#BFBFBF", Style: 1},
		},
	}
	if key.fill != "" {
		st.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{key.fill}}
		if isDark(key.fill) {
			st.Font.Color = "#FFFFFF"
		}
	}
	id, err := b.f.NewStyle(st)
	if err != nil {
		return 0, fmt.Errorf("creating style: %w", err)
	}
	b.styles[key] = id
	return id, nil
}

func (b *builder) headers(s Sheet) error {
	title := styleKey{fill: headerHex, bold: true, header: true}
	if err := b.set(nameColumn, monthRow, "", title); err != nil {
		return err
	}
	if err := b.set(nameColumn, dayRow, "", title); err != nil {
		return err
	}
	if err := b.set(nameColumn, numberRow, "NAME", title); err != nil {
		return err
	}

	col := nameColumn + 1
	for _, m := range s.Months {
		if err := b.set(col, monthRow, m.Label, title); err != nil {
			return err
		}
		if m.Count > 1 {
			if err := b.f.MergeCell(b.sheet, b.cell(col, monthRow), b.cell(col+m.Count-1, monthRow)); err != nil {
				return fmt.Errorf("merging month header: %w", err)
			}
		}
		col += m.Count
	}

	for i, d := range s.Dates {
		key := styleKey{bold: true}
		if calendar.IsWeekend(d) {
			key.fill = weekendHex
		}
		if err := b.set(nameColumn+1+i, dayRow, calendar.DayLabel(d), key); err != nil {
			return err
		}
		if err := b.set(nameColumn+1+i, numberRow, calendar.DayNumber(d), key); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) row(r int, row Row) error {
	if err := b.set(nameColumn, r, row.Name, styleKey{bold: true}); err != nil {
		return err
	}
	for i, c := range row.Cells {
		key := styleKey{fill: normalizeHex(c.Color)}
		if key.fill == "" && c.Weekend {
			key.fill = weekendHex
		}
		if err := b.set(nameColumn+1+i, r, c.Code, key); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) layout(days int) error {
	if err := b.f.SetColWidth(b.sheet, "A", "A", 24); err != nil {
		return fmt.Errorf("sizing name column: %w", err)
	}
	if days > 0 {
		first, _ := excelize.ColumnNumberToName(nameColumn + 1)
		last, _ := excelize.ColumnNumberToName(nameColumn + days)
		if err := b.f.SetColWidth(b.sheet, first, last, 6); err != nil {
			return fmt.Errorf("sizing day columns: %w", err)
		}
	}
	return b.f.SetPanes(b.sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      nameColumn,
		YSplit:      numberRow,
		TopLeftCell: b.cell(nameColumn+1, firstRow),
		ActivePane:  "bottomRight",
	})
}

// normalizeHex returns color as "#RRGGBB", or "" when it is not a hex color.
// Three digit shorthand is expanded.
func normalizeHex(color string) string {
	h := strings.TrimPrefix(strings.TrimSpace(color), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return ""
	}
	if _, err := strconv.ParseUint(h, 16, 32); err != nil {
		return ""
	}
	return "#" + strings.ToUpper(h)
}

func isDark(hex string) bool {
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil {
		return false
	}
	r, g, b := float64(v>>16&0xFF), float64(v>>8&0xFF), float64(v&0xFF)
	return 0.299*r+0.587*g+0.114*b < 128
}
