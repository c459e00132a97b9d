package ui

import (
	"fmt"
	"strings"
)

type helpItem struct {
	keys string
	desc string
}

type helpSection struct {
	title string
	items []helpItem
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Views",
			items: []helpItem{
				{"p", "Panels"},
				{"m", "Missions"},
				{"a", "Agents"},
				{"f", "Mission files"},
				{"L", "Journal"},
				{"esc", "Back to panels"},
			},
		},
		{
			title: "Panels",
			items: []helpItem{
				{"tab/shift+tab", "Next/previous panel"},
				{"h/l", "Previous/next panel"},
				{"d", "Toggle diff of last update"},
				{"e", "Edit demande"},
				{"ctrl+s", "Save demande (while editing)"},
			},
		},
		{
			title: "Session",
			items: []helpItem{
				{"s", "Start/stop all agents"},
				{"enter", "Toggle selected agent (agents view)"},
				{"enter", "Load selected mission (missions view)"},
			},
		},
		{
			title: "Journal",
			items: []helpItem{
				{"C", "Clear server logs"},
				{"X", "Export server logs"},
				{"j/k", "Scroll"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"T", "Cycle theme"},
				{"?", "Toggle help"},
				{"q/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for _, sec := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(sec.title))
		b.WriteString("\n")
		for _, item := range sec.items {
			line := fmt.Sprintf("  %-16s %s", item.keys, item.desc)
			b.WriteString(styles.Text.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.FaintText.Render("Press any key to close"))
	return b.String()
}
