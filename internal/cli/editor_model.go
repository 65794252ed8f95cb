package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rota/internal/calendar"
	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type editorMode int

const (
	modeGrid editorMode = iota
	modePick
	modeConfirmRemove
	modeConfirmQuit
)

type editorKeyMap struct {
	Up, Down, Left, Right key.Binding
	Home, End             key.Binding
	Edit, Remove, Save    key.Binding
	Help, Quit, ForceQuit key.Binding
}

func newEditorKeyMap() editorKeyMap {
	return editorKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous day")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Home:      key.NewBinding(key.WithKeys("home", "0"), key.WithHelp("0", "first day")),
		End:       key.NewBinding(key.WithKeys("end", "$"), key.WithHelp("$", "last day")),
		Edit:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "set shift")),
		Remove:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove employee")),
		Save:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k editorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Save, k.Remove, k.Help, k.Quit}
}

func (k editorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Home, k.End},
		{k.Edit, k.Remove, k.Save},
		{k.Help, k.Quit},
	}
}

var (
	confirmYes = key.NewBinding(key.WithKeys("y", "Y"))
	confirmNo  = key.NewBinding(key.WithKeys("n", "N"))
	pickCancel = key.NewBinding(key.WithKeys("esc", "q"))
)

type savedMsg struct{ err error }

// editorModel is the full-screen roster editor. Every edit goes through the
// roster service; the document reaches disk only through save.
type editorModel struct {
	roster service.RosterService
	save   func(*domain.Document) error

	keys editorKeyMap
	help help.Model

	grid   *service.Grid
	layout formatter.GridLayout
	err    error

	row, col int
	offset   int
	width    int
	height   int

	mode      editorMode
	codes     []domain.ShiftCode
	pick      int
	dirty     bool
	saves     int
	quitAfter bool
	quitting  bool
	status    string
}

func newEditorModel(roster service.RosterService, save func(*domain.Document) error) editorModel {
	m := editorModel{
		roster: roster,
		save:   save,
		keys:   newEditorKeyMap(),
		help:   help.New(),
	}
	m.refresh()
	return m
}

// refresh rebuilds the grid after an edit and clamps the cursor.
func (m *editorModel) refresh() {
	g, err := m.roster.Grid()
	if err != nil {
		m.err = err
		m.grid = &service.Grid{Title: m.roster.Metadata().Title}
	} else {
		m.err = nil
		m.grid = g
	}
	m.layout = formatter.LayoutFor(m.grid)
	m.row = clamp(m.row, 0, len(m.grid.Rows)-1)
	m.col = clamp(m.col, 0, len(m.grid.Dates)-1)
	m.scroll()
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

// visibleColumns is how many day columns fit beside the name column. Zero
// width means unknown and shows everything.
func (m editorModel) visibleColumns() int {
	n := len(m.grid.Dates)
	if m.width <= 0 {
		return n
	}
	avail := m.width - m.layout.NameWidth - 1
	fit := max(avail/(m.layout.CellWidth+1), 1)
	return min(fit, n)
}

func (m *editorModel) scroll() {
	vis := m.visibleColumns()
	if m.col < m.offset {
		m.offset = m.col
	}
	if vis > 0 && m.col >= m.offset+vis {
		m.offset = m.col - vis + 1
	}
	m.offset = clamp(m.offset, 0, len(m.grid.Dates)-vis)
}

func (m editorModel) hasCell() bool {
	return len(m.grid.Rows) > 0 && len(m.grid.Dates) > 0
}

func (m editorModel) Init() tea.Cmd { return nil }

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.scroll()
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.status = formatter.StyleRed.Render("save failed: ") + msg.err.Error()
			m.quitAfter = false
			return m, nil
		}
		m.dirty = false
		m.saves++
		m.status = formatter.StyleGreen.Render("saved")
		if m.quitAfter {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modePick:
			return m.updatePick(msg)
		case modeConfirmRemove:
			return m.updateConfirmRemove(msg)
		case modeConfirmQuit:
			return m.updateConfirmQuit(msg)
		default:
			return m.updateGrid(msg)
		}
	}
	return m, nil
}

func (m editorModel) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.dirty {
			m.mode = modeConfirmQuit
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.row = clamp(m.row-1, 0, len(m.grid.Rows)-1)
	case key.Matches(msg, m.keys.Down):
		m.row = clamp(m.row+1, 0, len(m.grid.Rows)-1)
	case key.Matches(msg, m.keys.Left):
		m.col = clamp(m.col-1, 0, len(m.grid.Dates)-1)
	case key.Matches(msg, m.keys.Right):
		m.col = clamp(m.col+1, 0, len(m.grid.Dates)-1)
	case key.Matches(msg, m.keys.Home):
		m.col = 0
	case key.Matches(msg, m.keys.End):
		m.col = max(len(m.grid.Dates)-1, 0)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Save):
		return m, m.saveCmd()
	case key.Matches(msg, m.keys.Edit):
		if m.hasCell() {
			m.openPicker()
		}
	case key.Matches(msg, m.keys.Remove):
		if len(m.grid.Rows) > 0 {
			m.mode = modeConfirmRemove
		}
	}
	m.scroll()
	return m, nil
}

func (m *editorModel) openPicker() {
	m.codes = m.roster.Metadata().ShiftCodes.Codes()
	current := m.grid.Rows[m.row].Cells[m.col].Code
	m.pick = 0
	for i, c := range m.codes {
		if c.ID == current {
			m.pick = i
			break
		}
	}
	m.mode = modePick
}

func (m editorModel) updatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, pickCancel):
		m.mode = modeGrid
	case key.Matches(msg, m.keys.Up):
		m.pick = clamp(m.pick-1, 0, len(m.codes)-1)
	case key.Matches(msg, m.keys.Down):
		m.pick = clamp(m.pick+1, 0, len(m.codes)-1)
	case key.Matches(msg, m.keys.Edit):
		m.mode = modeGrid
		if len(m.codes) == 0 {
			return m, nil
		}
		r := m.grid.Rows[m.row]
		date := m.grid.Dates[m.col]
		if err := m.roster.SetShift(r.EmployeeID, date, m.codes[m.pick].ID); err != nil {
			m.status = formatter.StyleRed.Render(err.Error())
			return m, nil
		}
		m.dirty = true
		m.status = fmt.Sprintf("%s %s → %s", r.Name, calendar.FormatDate(date), m.codes[m.pick].ID)
		m.refresh()
	}
	return m, nil
}

func (m editorModel) updateConfirmRemove(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, confirmYes):
		r := m.grid.Rows[m.row]
		if m.roster.RemoveEmployee(r.EmployeeID) {
			m.dirty = true
			m.status = fmt.Sprintf("removed %s", r.Name)
		}
		m.mode = modeGrid
		m.refresh()
	case key.Matches(msg, confirmNo), key.Matches(msg, pickCancel):
		m.mode = modeGrid
	}
	return m, nil
}

func (m editorModel) updateConfirmQuit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, confirmYes):
		m.mode = modeGrid
		m.quitAfter = true
		return m, m.saveCmd()
	case key.Matches(msg, confirmNo):
		m.quitting = true
		return m, tea.Quit
	case msg.Type == tea.KeyEsc:
		m.mode = modeGrid
	}
	return m, nil
}

func (m editorModel) saveCmd() tea.Cmd {
	doc := m.roster.Document()
	save := m.save
	return func() tea.Msg {
		return savedMsg{err: save(doc)}
	}
}

// window slices the grid down to the columns that fit the terminal.
func (m editorModel) window() *service.Grid {
	vis := m.visibleColumns()
	if vis >= len(m.grid.Dates) {
		return m.grid
	}
	lo, hi := m.offset, m.offset+vis
	sub := &service.Grid{
		Title:  m.grid.Title,
		Dates:  m.grid.Dates[lo:hi],
		Months: calendar.MonthSpans(m.grid.Dates[lo:hi]),
		Codes:  m.grid.Codes,
		Rows:   make([]service.GridRow, len(m.grid.Rows)),
	}
	for i, r := range m.grid.Rows {
		sub.Rows[i] = service.GridRow{EmployeeID: r.EmployeeID, Name: r.Name, Cells: r.Cells[lo:hi]}
	}
	return sub
}

func (m editorModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	title := formatter.Header(m.grid.Title)
	if m.dirty {
		title += formatter.StyleYellow.Render(" [modified]")
	}
	b.WriteString(title)
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render(m.err.Error()))
		b.WriteString("\n")
	}

	cursor := formatter.NoCursor
	if m.hasCell() {
		cursor = formatter.CursorPos{Row: m.row, Col: m.col - m.offset}
	}
	b.WriteString(formatter.RenderGrid(m.window(), m.layout, cursor))
	b.WriteString("\n")

	if m.hasCell() {
		r := m.grid.Rows[m.row]
		c := r.Cells[m.col]
		b.WriteString(formatter.Dim(fmt.Sprintf("%s · %s %s · %s",
			r.Name, calendar.DayLabel(c.Date), calendar.FormatDate(c.Date), c.Code)))
		b.WriteString("\n")
	}

	switch m.mode {
	case modePick:
		b.WriteString(m.pickerView())
	case modeConfirmRemove:
		r := m.grid.Rows[m.row]
		b.WriteString(formatter.StyleYellow.Render(fmt.Sprintf("Remove %s (#%d)? (y/n)", r.Name, r.EmployeeID)))
		b.WriteString("\n")
	case modeConfirmQuit:
		b.WriteString(formatter.StyleYellow.Render("Unsaved changes. Save before quitting? (y)es (n)o (esc) cancel"))
		b.WriteString("\n")
	default:
		if m.status != "" {
			b.WriteString(m.status)
			b.WriteString("\n")
		}
		b.WriteString(m.help.View(m.keys))
		b.WriteString("\n")
	}

	return b.String()
}

func (m editorModel) pickerView() string {
	lines := make([]string, 0, len(m.codes))
	w := 0
	for _, c := range m.codes {
		w = max(w, lipgloss.Width(c.ID))
	}
	for i, c := range m.codes {
		marker := "  "
		if i == m.pick {
			marker = formatter.StyleHeader.Render("> ")
		}
		id := formatter.CodeStyle(c.Color).Width(w + 2).Align(lipgloss.Center).Render(c.ID)
		lines = append(lines, marker+id+" "+c.Name)
	}
	return formatter.RenderBox("Set shift", strings.Join(lines, "\n")) + "\n"
}
