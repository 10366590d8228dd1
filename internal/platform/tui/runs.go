package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/aabb-lab/internal/storage"
)

const maxRuns = 200

// RunsModel browses recorded simulation runs and drills into their frames.
type RunsModel struct {
	store      *storage.Store
	runs       []storage.Run
	frames     []storage.Frame
	open       *storage.Run // Run whose frames are shown, nil in list view
	table      table.Model
	help       help.Model
	keys       BrowserKeyMap
	width      int
	height     int
	status     string
	standalone bool
	quitting   bool
	goingBack  bool
}

// NewRunsModel creates a run browser.
func NewRunsModel(store *storage.Store, width, height int) RunsModel {
	keys := DefaultBrowserKeyMap()
	keys.Next.SetEnabled(false)
	keys.Prev.SetEnabled(false)

	m := RunsModel{
		store:  store,
		keys:   keys,
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.loadRuns()
	return m
}

func (m *RunsModel) loadRuns() {
	m.open = nil
	m.frames = nil
	m.runs = nil
	if m.store != nil {
		runs, err := m.store.Runs(maxRuns)
		if err != nil {
			m.status = err.Error()
		}
		m.runs = runs
	}
	m.keys.Open.SetEnabled(true)
	m.keys.Delete.SetEnabled(true)

	m.table = newTable([]table.Column{
		{Title: "ID", Width: 5},
		{Title: "Demo", Width: 12},
		{Title: "Ticks", Width: 7},
		{Title: "Score", Width: 7},
		{Title: "Coins", Width: 6},
		{Title: "Won", Width: 4},
		{Title: "Script", Width: max(m.width-60, 10)},
	}, m.height)

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		won := ""
		if r.Won {
			won = "yes"
		}
		rows[i] = table.Row{
			strconv.FormatInt(r.ID, 10),
			r.GameID,
			strconv.Itoa(r.Ticks),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Coins),
			won,
			r.Script,
		}
	}
	m.table.SetRows(rows)
}

func (m *RunsModel) openRun(run storage.Run) {
	frames, err := m.store.RunFrames(run.ID)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.open = &run
	m.frames = frames
	m.keys.Open.SetEnabled(false)
	m.keys.Delete.SetEnabled(false)

	m.table = newTable([]table.Column{
		{Title: "Tick", Width: 6},
		{Title: "Input", Width: 12},
		{Title: "X", Width: 9},
		{Title: "Y", Width: 9},
		{Title: "VX", Width: 8},
		{Title: "VY", Width: 8},
		{Title: "Ground", Width: 6},
		{Title: "Hits", Width: 4},
	}, m.height)

	rows := make([]table.Row, len(frames))
	for i, f := range frames {
		ground := ""
		if f.Grounded {
			ground = "yes"
		}
		rows[i] = table.Row{
			strconv.FormatUint(f.Tick, 10),
			f.Input,
			fmt.Sprintf("%.3f", f.X),
			fmt.Sprintf("%.3f", f.Y),
			fmt.Sprintf("%.3f", f.VX),
			fmt.Sprintf("%.3f", f.VY),
			ground,
			strconv.Itoa(f.Contacts),
		}
	}
	m.table.SetRows(rows)
}

// selectedRun returns the run under the cursor in list view.
func (m RunsModel) selectedRun() (storage.Run, bool) {
	i := m.table.Cursor()
	if m.open != nil || i < 0 || i >= len(m.runs) {
		return storage.Run{}, false
	}
	return m.runs[i], true
}

// Init initializes the run browser.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run browser.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.open != nil {
				m.loadRuns()
				return m, nil
			}
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Open):
			if run, ok := m.selectedRun(); ok {
				m.status = ""
				m.openRun(run)
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if run, ok := m.selectedRun(); ok {
				if err := m.store.DeleteRun(run.ID); err != nil {
					m.status = err.Error()
				} else {
					m.status = fmt.Sprintf("deleted run %d", run.ID)
				}
				m.loadRuns()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.open != nil {
			m.openRun(*m.open)
		} else {
			m.loadRuns()
		}
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run browser.
func (m RunsModel) View() string {
	if m.quitting {
		return ""
	}

	title := "RECORDED RUNS"
	if m.open != nil {
		title = fmt.Sprintf("RUN %d - %s, %d ticks", m.open.ID, m.open.GameID, m.open.Ticks)
	}

	var b strings.Builder
	b.WriteString(centerText(menuTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	content := m.table.View()
	switch {
	case m.store == nil:
		content = emptyStyle.Render("No database available.")
	case m.open == nil && len(m.runs) == 0:
		content = emptyStyle.Render("No runs recorded yet.\nUse 'aabblab simulate --record' to add one.")
	}
	b.WriteString(panelStyle.Render(content))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(menuDimStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunsModel) IsQuitting() bool {
	return m.quitting
}

// RunRuns runs the run browser.
// Returns true if user wants to go back to menu, false if quitting.
func RunRuns(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewRunsModel(store, width, height)
	model.standalone = true

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RunsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
