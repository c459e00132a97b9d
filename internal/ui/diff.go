package ui

import (
	"strings"

	"github.com/maxthraxx/kinos/internal/state"
	"github.com/maxthraxx/kinos/internal/textdiff"
)

// renderDiff shows the change between the panel's previous and current
// contents, one marked line per operation.
func (m Model) renderDiff(view state.PanelView) string {
	styles := m.theme.Styles()

	ops := textdiff.Lines(splitLines(view.Previous), splitLines(view.Content))
	if len(ops) == 0 {
		return styles.FaintText.Render("(no content)")
	}

	changed := false
	lines := make([]string, 0, len(ops))
	for _, op := range ops {
		switch op.Kind {
		case textdiff.Insert:
			changed = true
			lines = append(lines, styles.DiffAdd.Render("+ "+op.Line))
		case textdiff.Delete:
			changed = true
			lines = append(lines, styles.DiffRemove.Render("- "+op.Line))
		default:
			lines = append(lines, styles.DiffKeep.Render("  "+op.Line))
		}
	}

	if !changed {
		return styles.FaintText.Render("(no changes since last update)")
	}
	return strings.Join(lines, "\n")
}

// splitLines breaks a buffer into diffable lines. An empty buffer has no
// lines rather than one empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
