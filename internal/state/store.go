package state

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/maxthraxx/kinos/internal/journal"
	"github.com/maxthraxx/kinos/internal/parallagon"
)

// PanelID names one of the fixed content panels.
type PanelID string

const (
	PanelDemande        PanelID = "demande"
	PanelSpecifications PanelID = "specifications"
	PanelManagement     PanelID = "management"
	PanelProduction     PanelID = "production"
	PanelEvaluation     PanelID = "evaluation"
	PanelSuivi          PanelID = "suivi"
)

// KnownPanels returns the fixed panel set in display order.
func KnownPanels() []PanelID {
	return []PanelID{
		PanelDemande,
		PanelSpecifications,
		PanelManagement,
		PanelProduction,
		PanelEvaluation,
		PanelSuivi,
	}
}

type panel struct {
	content  string
	previous string
	updating bool
	dirty    bool
}

// Store is the synchronization engine's single owned state: panels, file
// records, highlights, notifications, session flags. Poll ticks write to
// it; the UI only reads cloned snapshots.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	journal *journal.Log

	missions []parallagon.Mission
	mission  *parallagon.Mission
	running  bool

	panels  map[PanelID]*panel
	flashes map[PanelID]time.Time

	files      []parallagon.FileRecord
	fileTokens map[string]float64
	highlights map[string]time.Time

	suivi      []journal.Entry
	serverLogs []journal.Entry
	agents     map[string]bool

	notifs      []Notification
	nextNotifID int

	lastUpdated         time.Time
	lastError           error
	consecutiveFailures int
}

// New returns an empty store. A nil clock uses time.Now; tests inject a
// fake clock to drive decay deterministically.
func New(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	s := &Store{
		now:        now,
		journal:    journal.NewLog(now),
		panels:     make(map[PanelID]*panel),
		flashes:    make(map[PanelID]time.Time),
		fileTokens: make(map[string]float64),
		highlights: make(map[string]time.Time),
		agents:     make(map[string]bool),
	}
	for _, id := range KnownPanels() {
		s.panels[id] = &panel{}
	}
	return s
}

// Journal exposes the client event log.
func (s *Store) Journal() *journal.Log {
	return s.journal
}

// SetMissions replaces the known mission list.
func (s *Store) SetMissions(missions []parallagon.Mission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.missions = append([]parallagon.Mission(nil), missions...)
}

// Missions returns the known mission list.
func (s *Store) Missions() []parallagon.Mission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]parallagon.Mission(nil), s.missions...)
}

// SetMission switches the current mission and resets all mission-scoped
// state: panel contents, file tokens, highlights, and the suivi entries.
func (s *Store) SetMission(m *parallagon.Mission) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m == nil {
		s.mission = nil
	} else {
		copied := *m
		s.mission = &copied
	}
	for _, p := range s.panels {
		*p = panel{}
	}
	s.flashes = make(map[PanelID]time.Time)
	s.files = nil
	s.fileTokens = make(map[string]float64)
	s.highlights = make(map[string]time.Time)
	s.suivi = nil
}

// Mission returns the current mission, if any.
func (s *Store) Mission() (parallagon.Mission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.mission == nil {
		return parallagon.Mission{}, false
	}
	return *s.mission, true
}

// SetRunning records the session state for display.
func (s *Store) SetRunning(running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = running
}

// SetSuivi replaces the parsed mission log entries.
func (s *Store) SetSuivi(entries []journal.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suivi = append([]journal.Entry(nil), entries...)
}

// SetServerLogs replaces the server-side operation log entries. Unlike
// the suivi pane these are not mission-scoped.
func (s *Store) SetServerLogs(entries []journal.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serverLogs = append([]journal.Entry(nil), entries...)
}

// SetAgents replaces the agent running map.
func (s *Store) SetAgents(agents map[string]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agents = make(map[string]bool, len(agents))
	for name, running := range agents {
		s.agents[name] = running
	}
}

// RecordSuccess marks a completed poll tick.
func (s *Store) RecordSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = nil
	s.lastUpdated = s.now()
	s.consecutiveFailures = 0
}

// RecordFailure keeps previous data but notes the tick error.
func (s *Store) RecordFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err
	s.lastUpdated = s.now()
	s.consecutiveFailures++
}

// Snapshot returns a copy of the current state for rendering.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()

	snap := Snapshot{
		Missions:            append([]parallagon.Mission(nil), s.missions...),
		Running:             s.running,
		Suivi:               append([]journal.Entry(nil), s.suivi...),
		ServerLogs:          append([]journal.Entry(nil), s.serverLogs...),
		Journal:             s.journal.Entries(),
		Agents:              make(map[string]bool, len(s.agents)),
		LastUpdated:         s.lastUpdated,
		ConsecutiveFailures: s.consecutiveFailures,
	}
	if s.mission != nil {
		copied := *s.mission
		snap.Mission = &copied
	}
	if s.lastError != nil {
		snap.LastError = fmt.Errorf("%w", s.lastError)
	}
	for name, running := range s.agents {
		snap.Agents[name] = running
	}

	for _, id := range KnownPanels() {
		p := s.panels[id]
		snap.Panels = append(snap.Panels, PanelView{
			ID:       id,
			Content:  p.content,
			Previous: p.previous,
			Updating: p.updating,
			Dirty:    p.dirty,
			Flashing: s.flashes[id].After(now),
		})
	}

	for _, rec := range s.files {
		snap.Files = append(snap.Files, FileView{
			Path:        fileKey(rec),
			Size:        rec.Size,
			Modified:    rec.Modified,
			Highlighted: s.highlights[fileKey(rec)].After(now),
		})
	}
	sort.Slice(snap.Files, func(i, j int) bool { return snap.Files[i].Path < snap.Files[j].Path })

	snap.Notifications = s.liveNotifications(now)
	return snap
}

// PanelView is a read-only copy of one panel's state.
type PanelView struct {
	ID       PanelID
	Content  string
	Previous string
	Updating bool
	Dirty    bool
	Flashing bool
}

// FileView is a read-only copy of one tracked file.
type FileView struct {
	Path        string
	Size        int64
	Modified    float64
	Highlighted bool
}

// Snapshot is the immutable view handed to the UI.
type Snapshot struct {
	Missions            []parallagon.Mission
	Mission             *parallagon.Mission
	Running             bool
	Panels              []PanelView
	Files               []FileView
	Suivi               []journal.Entry
	ServerLogs          []journal.Entry
	Journal             []journal.Entry
	Notifications       []Notification
	Agents              map[string]bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline reports whether the server has been unreachable for multiple
// consecutive ticks.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Panel returns the view for one panel id.
func (s Snapshot) Panel(id PanelID) (PanelView, bool) {
	for _, p := range s.Panels {
		if p.ID == id {
			return p, true
		}
	}
	return PanelView{}, false
}
