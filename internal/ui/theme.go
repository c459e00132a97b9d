package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the console color palette.
type Theme struct {
	Name string

	Background string
	Surface    string

	Text   string
	Muted  string
	Faint  string
	Accent string

	Success string
	Warning string
	Danger  string
	Info    string

	// Panel tab states
	TabActive   string
	TabFlash    string
	TabUpdating string
	TabDirty    string

	// Diff colors
	DiffAdd    string
	DiffRemove string
}

// Styles holds the Lipgloss styles derived from a theme.
type Styles struct {
	Header     lipgloss.Style
	CommandBar lipgloss.Style

	Text       lipgloss.Style
	MutedText  lipgloss.Style
	FaintText  lipgloss.Style
	AccentText lipgloss.Style

	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	TabFlash    lipgloss.Style
	TabUpdating lipgloss.Style
	TabDirty    lipgloss.Style

	DiffAdd    lipgloss.Style
	DiffRemove lipgloss.Style
	DiffKeep   lipgloss.Style

	Notification lipgloss.Style
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		CommandBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.TabActive)).
			Bold(true).
			Padding(0, 1),

		TabFlash: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Background)).
			Background(lipgloss.Color(t.TabFlash)).
			Bold(true).
			Padding(0, 1),

		TabUpdating: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.TabUpdating)).
			Padding(0, 1),

		TabDirty: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.TabDirty)).
			Bold(true).
			Padding(0, 1),

		DiffAdd: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.DiffAdd)),

		DiffRemove: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.DiffRemove)),

		DiffKeep: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		Notification: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Background(lipgloss.Color(t.Surface)).
			Padding(0, 1),
	}
}

// GetTheme returns a theme by name, defaulting to Dracula.
func GetTheme(name string) Theme {
	switch name {
	case "Slate":
		return slateTheme()
	default:
		return draculaTheme()
	}
}

// NextTheme returns the name that follows current in the cycle order.
func NextTheme(current string) string {
	names := ThemeNames()
	for i, name := range names {
		if name == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

// ThemeNames lists the available themes in cycle order.
func ThemeNames() []string {
	return []string{"Dracula", "Slate"}
}

func draculaTheme() Theme {
	return Theme{
		Name:       "Dracula",
		Background: "#282a36",
		Surface:    "#44475a",
		Text:       "#f8f8f2",
		Muted:      "#bfbfbf",
		Faint:      "#6272a4",
		Accent:     "#bd93f9",
		Success:    "#50fa7b",
		Warning:    "#f1fa8c",
		Danger:     "#ff5555",
		Info:       "#8be9fd",

		TabActive:   "#bd93f9",
		TabFlash:    "#f1fa8c",
		TabUpdating: "#8be9fd",
		TabDirty:    "#ffb86c",

		DiffAdd:    "#50fa7b",
		DiffRemove: "#ff5555",
	}
}

func slateTheme() Theme {
	return Theme{
		Name:       "Slate",
		Background: "#1e293b",
		Surface:    "#334155",
		Text:       "#e2e8f0",
		Muted:      "#94a3b8",
		Faint:      "#64748b",
		Accent:     "#7dd3fc",
		Success:    "#4ade80",
		Warning:    "#facc15",
		Danger:     "#f87171",
		Info:       "#60a5fa",

		TabActive:   "#7dd3fc",
		TabFlash:    "#facc15",
		TabUpdating: "#60a5fa",
		TabDirty:    "#fb923c",

		DiffAdd:    "#4ade80",
		DiffRemove: "#f87171",
	}
}
