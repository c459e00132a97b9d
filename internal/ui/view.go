package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/maxthraxx/kinos/internal/journal"
	"github.com/maxthraxx/kinos/internal/state"
)

const chromeLines = 4 // header + tab bar + notifications + command bar

// layoutViewports resizes the scrolling regions after a window change.
func (m *Model) layoutViewports() {
	h := m.contentHeight()
	w := max(20, m.width)

	if !m.ready {
		m.panelViewport = viewport.New(w, h)
		m.journalViewport = viewport.New(w, h)
		return
	}
	m.panelViewport.Width = w
	m.panelViewport.Height = h
	m.journalViewport.Width = w
	m.journalViewport.Height = h
}

func (m Model) contentHeight() int {
	return max(3, m.height-chromeLines)
}

// renderMain renders the full console layout.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderNotifications())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())

	return b.String()
}

// renderHeader renders the status bar: mission, session state, connectivity.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	parts := []string{styles.AccentText.Bold(true).Render("kinos")}

	if m.snapshot.Mission != nil {
		parts = append(parts, styles.Text.Render(m.snapshot.Mission.Name))
	} else {
		parts = append(parts, styles.MutedText.Render("no mission"))
	}

	if m.snapshot.Running {
		parts = append(parts, styles.SuccessText.Render("RUNNING"))
	} else {
		parts = append(parts, styles.MutedText.Render("STOPPED"))
	}

	if m.snapshot.IsOffline() {
		parts = append(parts, styles.DangerText.Render("OFFLINE"))
		parts = append(parts, styles.WarningText.Render("Retrying..."))
	} else if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, styles.FaintText.Render(m.snapshot.LastUpdated.Format("15:04:05")))
	}

	line := strings.Join(parts, "  ")
	return styles.Header.Width(m.width).Render(line)
}

// renderTabs renders one tab per panel with flash, dirty, and updating
// markers. The flash style wins over the other states while it lasts.
func (m Model) renderTabs() string {
	styles := m.theme.Styles()
	panels := state.KnownPanels()

	tabs := make([]string, 0, len(panels))
	for i, id := range panels {
		label := panelLabel(id)
		view, ok := m.snapshot.Panel(id)
		if ok {
			if view.Dirty {
				label += "*"
			} else if view.Updating {
				label += "•"
			}
		}

		style := styles.Tab
		switch {
		case ok && view.Flashing:
			style = styles.TabFlash
		case i == m.activePanel && m.currentView == ViewPanels:
			style = styles.TabActive
		case ok && view.Dirty:
			style = styles.TabDirty
		case ok && view.Updating:
			style = styles.TabUpdating
		}
		tabs = append(tabs, style.Render(label))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderContent renders the active view's body.
func (m Model) renderContent() string {
	if m.editing {
		return m.editor.View()
	}

	switch m.currentView {
	case ViewPanels:
		return m.panelViewport.View()
	case ViewMissions:
		return m.renderMissions()
	case ViewJournal:
		return m.journalViewport.View()
	case ViewFiles:
		return m.renderFiles()
	case ViewAgents:
		return m.renderAgents()
	default:
		return ""
	}
}

// renderNotifications shows the newest live notifications.
func (m Model) renderNotifications() string {
	styles := m.theme.Styles()
	notifs := m.snapshot.Notifications
	if len(notifs) == 0 {
		return ""
	}

	// Newest last; show at most the trailing two.
	start := max(0, len(notifs)-2)
	lines := make([]string, 0, 2)
	for _, n := range notifs[start:] {
		style := styles.InfoText
		switch n.Type {
		case journal.Success:
			style = styles.SuccessText
		case journal.Warning:
			style = styles.WarningText
		case journal.Error:
			style = styles.DangerText
		}
		lines = append(lines, style.Render(truncate(n.Message, max(20, m.width-2))))
	}
	return strings.Join(lines, " | ")
}

// renderCommandBar renders the footer hints plus any transient status.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	hints := "tab panels  m missions  a agents  f files  L journal  s session  d diff  e edit  ? help  q quit"
	if m.editing {
		hints = "ctrl+s save  esc cancel"
	}

	if m.statusMsg != "" {
		return styles.AccentText.Render(m.statusMsg) + "  " + styles.CommandBar.Render(hints)
	}
	return styles.CommandBar.Render(hints)
}

// syncPanelViewport refreshes the panel viewport from the snapshot.
func (m *Model) syncPanelViewport() {
	if !m.ready {
		return
	}

	view, ok := m.activePanelView()
	if !ok {
		m.panelViewport.SetContent("")
		return
	}

	if m.diffMode {
		m.panelViewport.SetContent(m.renderDiff(view))
		return
	}

	content := view.Content
	if content == "" {
		content = m.theme.Styles().FaintText.Render("(empty)")
	}
	m.panelViewport.SetContent(wordwrap.String(content, max(20, m.width-2)))
}

// syncJournalViewport refreshes the journal viewport and follows the tail.
func (m *Model) syncJournalViewport() {
	if !m.ready {
		return
	}
	m.journalViewport.SetContent(m.renderJournal())
	m.journalViewport.GotoBottom()
}

func panelLabel(id state.PanelID) string {
	s := string(id)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truncate(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
