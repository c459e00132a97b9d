package ui

import "testing"

func TestGetTheme(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Errorf("GetTheme(Slate).Name = %q", got)
	}
	if got := GetTheme("").Name; got != "Dracula" {
		t.Errorf("GetTheme default = %q, want Dracula", got)
	}
	if got := GetTheme("unknown").Name; got != "Dracula" {
		t.Errorf("GetTheme(unknown) = %q, want Dracula", got)
	}
}

func TestThemesAreComplete(t *testing.T) {
	for _, name := range []string{"Dracula", "Slate"} {
		theme := GetTheme(name)
		if theme.Text == "" || theme.Success == "" || theme.Danger == "" {
			t.Errorf("theme %s missing base colors: %+v", name, theme)
		}
		if theme.TabFlash == "" || theme.TabDirty == "" || theme.TabUpdating == "" {
			t.Errorf("theme %s missing tab colors", name)
		}
		if theme.DiffAdd == "" || theme.DiffRemove == "" {
			t.Errorf("theme %s missing diff colors", name)
		}
	}
}
