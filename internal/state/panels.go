package state

import (
	"fmt"
	"time"

	"github.com/maxthraxx/kinos/internal/journal"
)

// ApplyContent merges a freshly fetched panel snapshot. For each known
// panel present in the payload the current text moves to previous and the
// fetched text becomes current; updating is set when the two differ and a
// journal entry records the change. A dirty panel is skipped entirely so
// an in-flight local edit is never clobbered. Returns the changed panel
// ids in display order.
func (s *Store) ApplyContent(content map[string]string) []PanelID {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changed []PanelID
	for _, id := range KnownPanels() {
		fetched, ok := content[string(id)]
		if !ok {
			continue
		}
		p := s.panels[id]
		if p.dirty {
			continue
		}
		p.previous = p.content
		p.content = fetched
		p.updating = p.previous != p.content
		if p.updating {
			changed = append(changed, id)
		}
	}

	for _, id := range changed {
		s.journal.Append(journal.Info, fmt.Sprintf("Content updated in %s", id))
	}
	return changed
}

// EditPanel applies a local user edit: the panel becomes dirty and polled
// updates for it are suppressed until the edit is saved.
func (s *Store) EditPanel(id PanelID, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.panels[id]
	if !ok {
		return
	}
	p.content = content
	p.dirty = true
}

// ClearDirty re-enables polled updates for a panel after a successful save.
func (s *Store) ClearDirty(id PanelID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.panels[id]; ok {
		p.dirty = false
	}
}

// Flash pulses a panel tab until the window elapses. Flashing is an
// independent trigger from content diffing; a later flash extends the
// deadline.
func (s *Store) Flash(id PanelID, window time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.panels[id]; !ok {
		return
	}
	s.flashes[id] = s.now().Add(window)
}

// FlashActive reports whether a panel tab is currently pulsing.
func (s *Store) FlashActive(id PanelID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flashes[id].After(s.now())
}
