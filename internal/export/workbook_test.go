package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/alexanderramin/rota/internal/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testSheet() Sheet {
	start := time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC)
	dates := calendar.DateRange(start, start.AddDate(0, 0, 3))
	cells := func(codes ...string) []Cell {
		out := make([]Cell, len(codes))
		for i, c := range codes {
			out[i] = Cell{Code: c, Color: map[string]string{"D": "#FFFF00", "N": "#000080"}[c], Weekend: calendar.IsWeekend(dates[i])}
		}
		return out
	}
	return Sheet{
		Title:  "Ward 7",
		Dates:  dates,
		Months: calendar.MonthSpans(dates),
		Rows: []Row{
			{Name: "Alice", Cells: cells("D", "R", "N", "R")},
			{Name: "Bob", Cells: cells("R", "R", "R", "D")},
		},
	}
}

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, testSheet()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, "Ward 7", f.GetSheetName(0))

	rows, err := f.GetRows("Ward 7")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"", "JANUARY", "", "FEBRUARY"}, rows[0])
	assert.Equal(t, []string{"", "TUE", "WED", "THU", "FRI"}, rows[1])
	assert.Equal(t, []string{"NAME", "30", "31", "01", "02"}, rows[2])
	assert.Equal(t, []string{"Alice", "D", "R", "N", "R"}, rows[3])
	assert.Equal(t, []string{"Bob", "R", "R", "R", "D"}, rows[4])

	merged, err := f.GetMergeCells("Ward 7")
	require.NoError(t, err)
	var refs []string
	for _, m := range merged {
		refs = append(refs, m.GetStartAxis()+":"+m.GetEndAxis())
	}
	assert.Contains(t, refs, "B1:C1")
	assert.Contains(t, refs, "D1:E1")
}

func TestWriteWorkbook_NoEmployees(t *testing.T) {
	s := testSheet()
	s.Rows = nil
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, s))
	assert.NotZero(t, buf.Len())
}

func TestSheetName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Ward 7", "Ward 7"},
		{"", "Roster"},
		{"  ", "Roster"},
		{"A/B: nights?", "A-B- nights-"},
		{"'quoted'", "quoted"},
		{"A roster title that is far too long for Excel", "A roster title that is far too"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, SheetName(tc.in))
		})
	}
}

func TestNormalizeHex(t *testing.T) {
	assert.Equal(t, "#FFFF00", normalizeHex("#ffff00"))
	assert.Equal(t, "#FFFFFF", normalizeHex("fff"))
	assert.Equal(t, "", normalizeHex("yellow"))
	assert.Equal(t, "", normalizeHex(""))
	assert.True(t, isDark("#000080"))
	assert.False(t, isDark("#FFFF00"))
}
