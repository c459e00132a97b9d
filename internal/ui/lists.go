package ui

import (
	"fmt"
	"strings"

	"github.com/maxthraxx/kinos/internal/journal"
)

// renderMissions renders the mission picker.
func (m Model) renderMissions() string {
	styles := m.theme.Styles()

	if len(m.snapshot.Missions) == 0 {
		return styles.MutedText.Render("No missions on the server.")
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Missions"))
	b.WriteString("\n\n")

	for i, mission := range m.snapshot.Missions {
		cursor := "  "
		style := styles.Text
		if i == m.selectedMission {
			cursor = "> "
			style = styles.AccentText.Bold(true)
		}

		label := mission.Name
		if m.snapshot.Mission != nil && m.snapshot.Mission.ID == mission.ID {
			label += "  (active)"
		}
		b.WriteString(cursor + style.Render(label))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("enter to load"))
	return b.String()
}

// renderAgents renders the agent roster with running indicators.
func (m Model) renderAgents() string {
	styles := m.theme.Styles()
	names := m.agentNames()

	if len(names) == 0 {
		return styles.MutedText.Render("No agent status yet.")
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Agents"))
	b.WriteString("\n\n")

	for i, name := range names {
		cursor := "  "
		if i == m.selectedAgent {
			cursor = "> "
		}

		indicator := styles.MutedText.Render("○ stopped")
		if m.snapshot.Agents[name] {
			indicator = styles.SuccessText.Render("● running")
		}
		b.WriteString(fmt.Sprintf("%s%-16s %s\n", cursor, name, indicator))
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("enter to start/stop"))
	return b.String()
}

// renderFiles renders the mission file listing with change highlights.
func (m Model) renderFiles() string {
	styles := m.theme.Styles()

	if len(m.snapshot.Files) == 0 {
		return styles.MutedText.Render("No mission files yet.")
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Mission files"))
	b.WriteString("\n\n")

	for _, f := range m.snapshot.Files {
		line := fmt.Sprintf("%-48s %10s", truncate(f.Path, 48), formatSize(f.Size))
		if f.Highlighted {
			b.WriteString(styles.WarningText.Bold(true).Render(line))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderJournal renders the client journal followed by the mission log
// entries the server reported.
func (m Model) renderJournal() string {
	var b strings.Builder
	styles := m.theme.Styles()

	b.WriteString(styles.Text.Bold(true).Render("Journal"))
	b.WriteString("\n")
	if len(m.snapshot.Journal) == 0 {
		b.WriteString(styles.FaintText.Render("(empty)"))
		b.WriteString("\n")
	}
	for _, e := range m.snapshot.Journal {
		b.WriteString(m.renderEntry(e))
		b.WriteString("\n")
	}

	if len(m.snapshot.Suivi) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.Text.Bold(true).Render("Mission log"))
		b.WriteString("\n")
		for _, e := range m.snapshot.Suivi {
			b.WriteString(m.renderEntry(e))
			b.WriteString("\n")
		}
	}

	if len(m.snapshot.ServerLogs) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.Text.Bold(true).Render("Server log"))
		b.WriteString("\n")
		for _, e := range m.snapshot.ServerLogs {
			b.WriteString(m.renderEntry(e))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderEntry colors one journal entry by its classified type.
func (m Model) renderEntry(e journal.Entry) string {
	styles := m.theme.Styles()

	style := styles.Text
	switch e.Type {
	case journal.Success:
		style = styles.SuccessText
	case journal.Warning:
		style = styles.WarningText
	case journal.Error:
		style = styles.DangerText
	}
	return style.Render(e.FormattedMessage())
}
