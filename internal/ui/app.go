package ui

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maxthraxx/kinos/internal/engine"
	"github.com/maxthraxx/kinos/internal/prefs"
	"github.com/maxthraxx/kinos/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewPanels View = iota
	ViewMissions
	ViewJournal
	ViewFiles
	ViewAgents
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Engine    *engine.Engine
	Store     *state.Store
	UITick    time.Duration
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	eng       *engine.Engine
	store     *state.Store
	uiTick    time.Duration
	prefsPath string

	keys  keyMap
	theme Theme

	currentView View
	width       int
	height      int
	ready       bool

	snapshot    state.Snapshot
	lastUpdated time.Time

	// Panels state
	activePanel int
	diffMode    bool

	// Demande editing
	editing bool
	editor  textarea.Model

	panelViewport   viewport.Model
	journalViewport viewport.Model

	// List selections
	selectedMission int
	selectedAgent   int

	showHelp bool

	statusMsg string
	statusAt  time.Time
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	uiTick := opts.UITick
	if uiTick == 0 {
		uiTick = 250 * time.Millisecond
	}

	editor := textarea.New()
	editor.Placeholder = "Describe the mission objective..."
	editor.CharLimit = 0

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		ctx:         ctx,
		eng:         opts.Engine,
		store:       opts.Store,
		uiTick:      uiTick,
		prefsPath:   prefsPath,
		keys:        defaultKeyMap(),
		theme:       GetTheme(opts.ThemeName),
		currentView: ViewPanels,
		editor:      editor,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.uiTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutViewports()
		m.ready = true
		m.syncPanelViewport()
		m.syncJournalViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.clampSelections()
		m.syncPanelViewport()
		m.syncJournalViewport()
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("%s failed: %v", msg.label, msg.err))
		} else if msg.label != "" {
			m.setStatus(msg.label)
		}
		if m.store != nil {
			return m, fetchSnapshotCmd(m.store)
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleTick refreshes the snapshot and reschedules the UI tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.statusMsg != "" && time.Since(m.statusAt) > 5*time.Second {
		m.statusMsg = ""
	}
	cmds = append(cmds, tickCmd(m.uiTick))
	return m, tea.Batch(cmds...)
}

// setStatus records a transient message for the command bar.
func (m *Model) setStatus(text string) {
	m.statusMsg = text
	m.statusAt = time.Now()
}

// clampSelections keeps list cursors inside the snapshot's bounds.
func (m *Model) clampSelections() {
	if n := len(m.snapshot.Missions); m.selectedMission >= n {
		m.selectedMission = max(0, n-1)
	}
	if n := len(m.snapshot.Agents); m.selectedAgent >= n {
		m.selectedAgent = max(0, n-1)
	}
}

// agentNames returns the agent ids in a stable display order.
func (m Model) agentNames() []string {
	names := make([]string, 0, len(m.snapshot.Agents))
	for name := range m.snapshot.Agents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m Model) activePanelView() (state.PanelView, bool) {
	panels := state.KnownPanels()
	if m.activePanel < 0 || m.activePanel >= len(panels) {
		return state.PanelView{}, false
	}
	return m.snapshot.Panel(panels[m.activePanel])
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type actionDoneMsg struct {
	label string
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// actionCmd runs an engine operation off the render loop.
func actionCmd(label string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{label: label, err: fn()}
	}
}

// exportLogsCmd fetches the server log archive and writes it next to the
// working directory.
func exportLogsCmd(ctx context.Context, eng *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		data, err := eng.ExportLogs(ctx)
		if err != nil {
			return actionDoneMsg{label: "Export logs", err: err}
		}
		name := fmt.Sprintf("parallagon-logs-%s.json", time.Now().Format("20060102-150405"))
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return actionDoneMsg{label: "Export logs", err: err}
		}
		return actionDoneMsg{label: "Logs exported to " + name}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
