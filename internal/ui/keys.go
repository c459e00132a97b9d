package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the console.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding

	// View switching
	ViewPanels   key.Binding
	ViewMissions key.Binding
	ViewJournal  key.Binding
	ViewFiles    key.Binding
	ViewAgents   key.Binding

	// Session
	ToggleSession key.Binding
	ToggleAgent   key.Binding

	// Panels
	NextPanel  key.Binding
	PrevPanel  key.Binding
	ToggleDiff key.Binding
	Edit       key.Binding
	Save       key.Binding

	// Journal
	ClearLogs  key.Binding
	ExportLogs key.Binding

	// Navigation
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Confirm key.Binding
}

// defaultKeyMap returns the default key bindings.
func defaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next panel"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous panel"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to panels"),
		),

		// View switching
		ViewPanels: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Panels view"),
		),
		ViewMissions: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Missions view"),
		),
		ViewJournal: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Journal view"),
		),
		ViewFiles: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Files view"),
		),
		ViewAgents: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Agents view"),
		),

		// Session
		ToggleSession: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Start/stop session"),
		),
		ToggleAgent: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Toggle agent"),
		),

		// Panels
		NextPanel: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Next panel"),
		),
		PrevPanel: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Previous panel"),
		),
		ToggleDiff: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Toggle diff"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Edit demande"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Save demande"),
		),

		// Journal
		ClearLogs: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Clear logs"),
		),
		ExportLogs: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Export logs"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Select"),
		),
	}
}
