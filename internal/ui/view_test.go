package ui

import (
	"strings"
	"testing"

	"github.com/maxthraxx/kinos/internal/state"
)

func TestPanelLabel(t *testing.T) {
	tests := []struct {
		id   state.PanelID
		want string
	}{
		{state.PanelDemande, "Demande"},
		{state.PanelSpecifications, "Specifications"},
		{state.PanelSuivi, "Suivi"},
	}
	for _, tt := range tests {
		if got := panelLabel(tt.id); got != tt.want {
			t.Errorf("panelLabel(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"a longer string", 10, "a longe..."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 << 20, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.size); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestRenderTabsMarkers(t *testing.T) {
	m := New(Options{})
	m.ready = true
	m.width = 120
	m.snapshot = state.Snapshot{
		Panels: []state.PanelView{
			{ID: state.PanelDemande, Dirty: true},
			{ID: state.PanelSpecifications, Updating: true},
			{ID: state.PanelManagement},
			{ID: state.PanelProduction},
			{ID: state.PanelEvaluation},
			{ID: state.PanelSuivi},
		},
	}

	tabs := m.renderTabs()
	if !strings.Contains(tabs, "Demande*") {
		t.Errorf("tabs missing dirty marker: %q", tabs)
	}
	if !strings.Contains(tabs, "Specifications•") {
		t.Errorf("tabs missing updating marker: %q", tabs)
	}
	if strings.Contains(tabs, "Management*") || strings.Contains(tabs, "Management•") {
		t.Errorf("idle panel should carry no marker: %q", tabs)
	}
}

func TestRenderHeaderStates(t *testing.T) {
	m := New(Options{})
	m.ready = true
	m.width = 80

	out := m.renderHeader()
	if !strings.Contains(out, "no mission") || !strings.Contains(out, "STOPPED") {
		t.Errorf("empty header = %q", out)
	}

	m.snapshot = state.Snapshot{
		Running:             true,
		ConsecutiveFailures: 3,
	}
	out = m.renderHeader()
	if !strings.Contains(out, "RUNNING") {
		t.Errorf("running header = %q", out)
	}
	if !strings.Contains(out, "OFFLINE") {
		t.Errorf("offline header = %q", out)
	}
}
