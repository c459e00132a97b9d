package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maxthraxx/kinos/internal/prefs"
	"github.com/maxthraxx/kinos/internal/state"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.editing {
		return m.handleEditKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewPanels
		m.diffMode = false
		return m, nil

	case key.Matches(msg, m.keys.ViewPanels):
		m.currentView = ViewPanels
		return m, nil

	case key.Matches(msg, m.keys.ViewMissions):
		m.currentView = ViewMissions
		return m, nil

	case key.Matches(msg, m.keys.ViewJournal):
		m.currentView = ViewJournal
		return m, nil

	case key.Matches(msg, m.keys.ViewFiles):
		m.currentView = ViewFiles
		return m, nil

	case key.Matches(msg, m.keys.ViewAgents):
		m.currentView = ViewAgents
		return m, nil

	case key.Matches(msg, m.keys.ToggleSession):
		return m.toggleSession()

	case key.Matches(msg, m.keys.ClearLogs):
		return m, actionCmd("Logs cleared", func() error {
			return m.eng.ClearLogs(m.ctx)
		})

	case key.Matches(msg, m.keys.ExportLogs):
		return m, exportLogsCmd(m.ctx, m.eng)
	}

	switch m.currentView {
	case ViewPanels:
		return m.handlePanelsKey(msg)
	case ViewMissions:
		return m.handleMissionsKey(msg)
	case ViewAgents:
		return m.handleAgentsKey(msg)
	case ViewJournal, ViewFiles:
		return m.handleScrollKey(msg)
	}

	return m, nil
}

// toggleSession starts the session when stopped and stops it when running.
func (m Model) toggleSession() (tea.Model, tea.Cmd) {
	if m.snapshot.Running {
		return m, actionCmd("Session stopped", func() error {
			return m.eng.StopSession(m.ctx)
		})
	}
	return m, actionCmd("Session started", func() error {
		return m.eng.StartSession(m.ctx)
	})
}

// handlePanelsKey processes keyboard input for the panels view.
func (m Model) handlePanelsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	panels := state.KnownPanels()

	switch {
	case key.Matches(msg, m.keys.NextPanel), key.Matches(msg, m.keys.Tab):
		m.activePanel = (m.activePanel + 1) % len(panels)
		m.diffMode = false
		m.syncPanelViewport()
		return m, nil

	case key.Matches(msg, m.keys.PrevPanel), key.Matches(msg, m.keys.ShiftTab):
		m.activePanel = (m.activePanel + len(panels) - 1) % len(panels)
		m.diffMode = false
		m.syncPanelViewport()
		return m, nil

	case key.Matches(msg, m.keys.ToggleDiff):
		m.diffMode = !m.diffMode
		m.syncPanelViewport()
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		return m.startEditing()
	}

	var cmd tea.Cmd
	m.panelViewport, cmd = m.panelViewport.Update(msg)
	return m, cmd
}

// startEditing opens the demande editor. Editing any other panel is not
// supported: the server owns their contents.
func (m Model) startEditing() (tea.Model, tea.Cmd) {
	if state.KnownPanels()[m.activePanel] != state.PanelDemande {
		m.setStatus("Only the demande panel is editable")
		return m, nil
	}

	content := ""
	if p, ok := m.snapshot.Panel(state.PanelDemande); ok {
		content = p.Content
	}
	m.editing = true
	m.editor.SetValue(content)
	m.editor.SetWidth(max(20, m.width-4))
	m.editor.SetHeight(max(5, m.contentHeight()-2))
	m.editor.Focus()
	return m, textarea.Blink
}

// handleEditKey processes keyboard input while the demande editor is open.
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		content := m.editor.Value()
		m.editing = false
		m.editor.Blur()
		return m, actionCmd("Demande saved", func() error {
			return m.eng.SaveDemande(m.ctx, content)
		})

	case key.Matches(msg, m.keys.Escape):
		m.editing = false
		m.editor.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	// Mirror keystrokes into the store so the poll loop treats the panel
	// as dirty and leaves the draft alone.
	m.store.EditPanel(state.PanelDemande, m.editor.Value())
	return m, cmd
}

// handleMissionsKey processes keyboard input for the missions view.
func (m Model) handleMissionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.snapshot.Missions)

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedMission < count-1 {
			m.selectedMission++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedMission > 0 {
			m.selectedMission--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedMission = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedMission = max(0, count-1)
	case key.Matches(msg, m.keys.Confirm):
		if m.selectedMission < count {
			mission := m.snapshot.Missions[m.selectedMission]
			m.currentView = ViewPanels
			m.savePrefsMission(mission.ID)
			return m, actionCmd("", func() error {
				return m.eng.SelectMission(m.ctx, mission)
			})
		}
	}

	return m, nil
}

// handleAgentsKey processes keyboard input for the agents view.
func (m Model) handleAgentsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	names := m.agentNames()
	count := len(names)

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedAgent < count-1 {
			m.selectedAgent++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedAgent > 0 {
			m.selectedAgent--
		}
	case key.Matches(msg, m.keys.ToggleAgent):
		if m.selectedAgent < count {
			name := names[m.selectedAgent]
			return m, actionCmd("", func() error {
				return m.eng.ToggleAgent(m.ctx, name)
			})
		}
	}

	return m, nil
}

// savePrefs persists the current theme, keeping the stored mission.
func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Load(m.prefsPath)
	p.Theme = m.theme.Name
	_ = prefs.Save(m.prefsPath, p)
}

// savePrefsMission persists the selected mission, keeping the theme.
func (m Model) savePrefsMission(id int64) {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Load(m.prefsPath)
	p.LastMission = id
	_ = prefs.Save(m.prefsPath, p)
}

// handleScrollKey forwards navigation to the journal viewport.
func (m Model) handleScrollKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.journalViewport, cmd = m.journalViewport.Update(msg)
	return m, cmd
}
