package engine

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/maxthraxx/kinos/internal/parallagon"
	"github.com/maxthraxx/kinos/internal/state"
)

// stubService implements parallagon.Service with overridable hooks.
type stubService struct {
	missions      []parallagon.Mission
	content       map[string]string
	files         []parallagon.FileRecord
	suivi         string
	logs          []parallagon.LogRecord
	notifications []parallagon.Notification
	status        map[string]parallagon.AgentState

	contentHook func(missionID int64) (map[string]string, error)

	startCalls  atomic.Int32
	stopCalls   atomic.Int32
	agentCalls  []string
	saveErr     error
	saveContent string
}

var _ parallagon.Service = (*stubService)(nil)

func (s *stubService) FetchMissions(context.Context) ([]parallagon.Mission, error) {
	return s.missions, nil
}

func (s *stubService) FetchContent(_ context.Context, missionID int64) (map[string]string, error) {
	if s.contentHook != nil {
		return s.contentHook(missionID)
	}
	return s.content, nil
}

func (s *stubService) FetchFiles(context.Context, int64, bool) ([]parallagon.FileRecord, error) {
	return s.files, nil
}

func (s *stubService) FetchSuivi(context.Context) (string, error) {
	return s.suivi, nil
}

func (s *stubService) FetchNotifications(context.Context) ([]parallagon.Notification, error) {
	return s.notifications, nil
}

func (s *stubService) FetchAgentStatus(context.Context) (map[string]parallagon.AgentState, error) {
	return s.status, nil
}

func (s *stubService) FetchLogs(context.Context) ([]parallagon.LogRecord, error) {
	return s.logs, nil
}
func (s *stubService) ClearLogs(context.Context) error                           { return nil }
func (s *stubService) ExportLogs(context.Context) ([]byte, error)                { return []byte("log"), nil }

func (s *stubService) StartAgents(context.Context) error {
	s.startCalls.Add(1)
	return nil
}

func (s *stubService) StopAgents(context.Context) error {
	s.stopCalls.Add(1)
	return nil
}

func (s *stubService) ToggleAgent(_ context.Context, agentID, action string) error {
	s.agentCalls = append(s.agentCalls, agentID+"/"+action)
	return nil
}

func (s *stubService) SaveDemande(_ context.Context, content string, _ int64, _ string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saveContent = content
	return nil
}

func newTestEngine(svc parallagon.Service) (*Engine, *state.Store) {
	store := state.New(nil)
	intervals := Intervals{
		Content:       time.Hour,
		Notifications: time.Hour,
		Suivi:         time.Hour,
		Status:        time.Hour,
	}
	return New(svc, store, intervals, Windows{}), store
}

func TestStartAll_Idempotent(t *testing.T) {
	e, _ := newTestEngine(&stubService{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e.StartAll(ctx)
	e.StartAll(ctx)
	if got := e.liveHandles(); got != len(e.tasks) {
		t.Fatalf("liveHandles = %d after double start, want %d", got, len(e.tasks))
	}

	e.StopAll()
	e.StopAll()
	if got := e.liveHandles(); got != 0 {
		t.Fatalf("liveHandles = %d after double stop, want 0", got)
	}

	// Stop-then-start produces fresh handles.
	e.StartAll(ctx)
	if got := e.liveHandles(); got != len(e.tasks) {
		t.Fatalf("liveHandles = %d after restart, want %d", got, len(e.tasks))
	}
	e.StopAll()
}

func TestSession_Transitions(t *testing.T) {
	svc := &stubService{}
	e, store := newTestEngine(svc)
	ctx := context.Background()

	if err := e.StartSession(ctx); err != nil {
		t.Fatalf("StartSession returned error: %v", err)
	}
	if err := e.StartSession(ctx); err != nil {
		t.Fatalf("StartSession (repeat) returned error: %v", err)
	}
	if got := svc.startCalls.Load(); got != 1 {
		t.Fatalf("StartAgents calls = %d, want 1 (repeat start is a no-op)", got)
	}
	if !e.Running() || !store.Snapshot().Running {
		t.Fatal("session not marked running")
	}
	if got := e.liveHandles(); got != len(e.tasks) {
		t.Fatalf("liveHandles = %d while running, want %d", got, len(e.tasks))
	}

	if err := e.StopSession(ctx); err != nil {
		t.Fatalf("StopSession returned error: %v", err)
	}
	if err := e.StopSession(ctx); err != nil {
		t.Fatalf("StopSession (repeat) returned error: %v", err)
	}
	if got := svc.stopCalls.Load(); got != 1 {
		t.Fatalf("StopAgents calls = %d, want 1", got)
	}
	if e.Running() || e.liveHandles() != 0 {
		t.Fatal("session still running after stop")
	}
}

func TestPollContent_AppliesSnapshot(t *testing.T) {
	svc := &stubService{
		content: map[string]string{"production": "# Draft v2"},
		files:   []parallagon.FileRecord{{RelativePath: "production.md", Modified: 42}},
	}
	e, store := newTestEngine(svc)
	store.SetMission(&parallagon.Mission{ID: 7, Name: "revue"})

	e.pollContent(context.Background())

	snap := store.Snapshot()
	if p, _ := snap.Panel(state.PanelProduction); p.Content != "# Draft v2" {
		t.Fatalf("panel content = %q", p.Content)
	}
	if len(snap.Files) != 1 || snap.Files[0].Path != "production.md" {
		t.Fatalf("files = %#v", snap.Files)
	}
	if snap.LastError != nil || snap.ConsecutiveFailures != 0 {
		t.Fatalf("tick not recorded as success: %v / %d", snap.LastError, snap.ConsecutiveFailures)
	}
}

func TestPollContent_NoMissionIsNoop(t *testing.T) {
	svc := &stubService{content: map[string]string{"production": "x"}}
	e, store := newTestEngine(svc)

	e.pollContent(context.Background())

	if p, _ := store.Snapshot().Panel(state.PanelProduction); p.Content != "" {
		t.Fatalf("content applied without a mission: %q", p.Content)
	}
}

func TestPollContent_StaleMissionDiscarded(t *testing.T) {
	svc := &stubService{
		files: nil,
	}
	e, store := newTestEngine(svc)
	store.SetMission(&parallagon.Mission{ID: 1, Name: "old"})

	// The mission switches away while the fetch is in flight; the
	// response that finally arrives must not be applied.
	svc.contentHook = func(missionID int64) (map[string]string, error) {
		store.SetMission(&parallagon.Mission{ID: 2, Name: "new"})
		return map[string]string{"production": "stale payload"}, nil
	}

	e.pollContent(context.Background())

	if p, _ := store.Snapshot().Panel(state.PanelProduction); p.Content != "" {
		t.Fatalf("stale response applied: %q", p.Content)
	}
}

func TestPollContent_FailureIsRecoverable(t *testing.T) {
	svc := &stubService{
		contentHook: func(int64) (map[string]string, error) {
			return nil, errors.New("connection refused")
		},
	}
	e, store := newTestEngine(svc)
	store.SetMission(&parallagon.Mission{ID: 1, Name: "revue"})

	e.pollContent(context.Background())

	snap := store.Snapshot()
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", snap.ConsecutiveFailures)
	}
	if len(snap.Notifications) != 1 || !strings.Contains(snap.Notifications[0].Message, "connection refused") {
		t.Fatalf("Notifications = %#v, want one error notification", snap.Notifications)
	}
}

func TestPollNotifications_FlashAndInlineContent(t *testing.T) {
	svc := &stubService{
		notifications: []parallagon.Notification{
			{Type: "info", Message: "Content updated in Production", Panel: "Production", Flash: true},
			{Type: "info", Panel: "demande", Content: "server version"},
		},
	}
	e, store := newTestEngine(svc)
	store.EditPanel(state.PanelDemande, "local edit")

	e.pollNotifications(context.Background())

	if !store.FlashActive(state.PanelProduction) {
		t.Fatal("flash request did not pulse the named panel")
	}
	if p, _ := store.Snapshot().Panel(state.PanelDemande); p.Content != "local edit" {
		t.Fatalf("inline content clobbered a dirty panel: %q", p.Content)
	}
	notifs := store.Notifications()
	if len(notifs) != 1 || notifs[0].Message != "Content updated in Production" {
		t.Fatalf("Notifications = %#v", notifs)
	}
}

func TestPollSuivi_ParsesLogAndServerRecords(t *testing.T) {
	svc := &stubService{
		suivi: "[10:00:01] ✓ Mission loaded\n[10:00:05] ❌ Agent crashed",
		logs: []parallagon.LogRecord{
			{Type: "success", Message: "✓ Agents started", Timestamp: "10:00:02"},
		},
	}
	e, store := newTestEngine(svc)

	e.pollSuivi(context.Background())

	snap := store.Snapshot()
	if len(snap.Suivi) != 2 {
		t.Fatalf("Suivi entries = %d, want 2", len(snap.Suivi))
	}
	if snap.Suivi[0].Type != "success" || snap.Suivi[1].Type != "error" {
		t.Fatalf("Suivi types = %s/%s", snap.Suivi[0].Type, snap.Suivi[1].Type)
	}
	if len(snap.ServerLogs) != 1 || snap.ServerLogs[0].Type != "success" {
		t.Fatalf("ServerLogs = %#v", snap.ServerLogs)
	}
}

func TestSelectMission_RestartsAgentsWhenRunning(t *testing.T) {
	svc := &stubService{content: map[string]string{"production": "fresh"}}
	e, store := newTestEngine(svc)
	ctx := context.Background()

	if err := e.StartSession(ctx); err != nil {
		t.Fatalf("StartSession returned error: %v", err)
	}
	if err := e.SelectMission(ctx, parallagon.Mission{ID: 3, Name: "next"}); err != nil {
		t.Fatalf("SelectMission returned error: %v", err)
	}

	if got := svc.stopCalls.Load(); got != 1 {
		t.Fatalf("StopAgents calls = %d, want 1 during switch", got)
	}
	if got := svc.startCalls.Load(); got != 2 {
		t.Fatalf("StartAgents calls = %d, want 2 (session + restart)", got)
	}
	snap := store.Snapshot()
	if snap.Mission == nil || snap.Mission.ID != 3 {
		t.Fatalf("Mission = %#v, want id 3", snap.Mission)
	}
	if p, _ := snap.Panel(state.PanelProduction); p.Content != "fresh" {
		t.Fatalf("content not reloaded after switch: %q", p.Content)
	}
	if got := e.liveHandles(); got != len(e.tasks) {
		t.Fatalf("liveHandles = %d after switch while running, want %d", got, len(e.tasks))
	}
	e.StopSession(ctx)
}

func TestSelectMission_StaysStoppedWhenStopped(t *testing.T) {
	svc := &stubService{}
	e, _ := newTestEngine(svc)

	if err := e.SelectMission(context.Background(), parallagon.Mission{ID: 1, Name: "solo"}); err != nil {
		t.Fatalf("SelectMission returned error: %v", err)
	}
	if svc.startCalls.Load() != 0 || svc.stopCalls.Load() != 0 {
		t.Fatal("agents toggled during a stopped-session switch")
	}
	if e.liveHandles() != 0 {
		t.Fatal("tasks scheduled during a stopped-session switch")
	}
}

func TestSaveDemande_RequiresMission(t *testing.T) {
	svc := &stubService{}
	e, store := newTestEngine(svc)

	if err := e.SaveDemande(context.Background(), "text"); err == nil {
		t.Fatal("SaveDemande succeeded with no mission selected")
	}
	if svc.saveContent != "" {
		t.Fatal("network call made despite missing mission")
	}
	notifs := store.Notifications()
	if len(notifs) != 1 {
		t.Fatalf("Notifications = %#v, want one validation error", notifs)
	}
}

func TestSaveDemande_ClearsDirtyOnSuccessOnly(t *testing.T) {
	svc := &stubService{saveErr: errors.New("disk full")}
	e, store := newTestEngine(svc)
	store.SetMission(&parallagon.Mission{ID: 1, Name: "revue"})
	store.EditPanel(state.PanelDemande, "draft")

	if err := e.SaveDemande(context.Background(), "draft"); err == nil {
		t.Fatal("SaveDemande succeeded, want error")
	}
	if p, _ := store.Snapshot().Panel(state.PanelDemande); !p.Dirty {
		t.Fatal("Dirty cleared on failed save")
	}

	svc.saveErr = nil
	if err := e.SaveDemande(context.Background(), "draft"); err != nil {
		t.Fatalf("SaveDemande returned error: %v", err)
	}
	if p, _ := store.Snapshot().Panel(state.PanelDemande); p.Dirty {
		t.Fatal("Dirty still set after successful save")
	}
	if svc.saveContent != "draft" {
		t.Fatalf("saved content = %q", svc.saveContent)
	}
}
