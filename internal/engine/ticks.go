package engine

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/maxthraxx/kinos/internal/journal"
	"github.com/maxthraxx/kinos/internal/state"
)

// pollContent is the combined content/files tick. A failed fetch is
// recorded and surfaced, never fatal: the next tick proceeds on schedule.
// Results fetched for a mission that was switched away mid-flight are
// discarded.
func (e *Engine) pollContent(ctx context.Context) {
	mission, ok := e.store.Mission()
	if !ok {
		return
	}

	content, err := e.client.FetchContent(ctx, mission.ID)
	if err != nil {
		e.store.RecordFailure(err)
		e.notifyError(fmt.Sprintf("❌ Content poll failed: %v", err))
		return
	}
	files, err := e.client.FetchFiles(ctx, mission.ID, false)
	if err != nil {
		e.store.RecordFailure(err)
		e.notifyError(fmt.Sprintf("❌ File poll failed: %v", err))
		return
	}

	if current, ok := e.store.Mission(); !ok || current.ID != mission.ID {
		return
	}

	e.store.ApplyContent(content)
	e.store.UpdateFiles(files, e.windows.HighlightDecay)
	e.store.RecordSuccess()
}

// pollNotifications drains server notifications into the local queue and
// applies their side channels: tab flashes and inline panel content.
func (e *Engine) pollNotifications(ctx context.Context) {
	items, err := e.client.FetchNotifications(ctx)
	if err != nil {
		e.notifyError(fmt.Sprintf("❌ Notification poll failed: %v", err))
		return
	}

	for _, n := range items {
		typ := entryType(n.Type)
		if n.Message != "" {
			e.store.PushNotification(typ, n.Message, e.windows.NotificationTTL)
		}
		panel := state.PanelID(strings.ToLower(strings.TrimSpace(n.Panel)))
		if panel == "" {
			continue
		}
		if n.Flash {
			e.store.Flash(panel, e.windows.Flash)
		}
		if n.Content != "" {
			// Inline content goes through the same guarded merge as a
			// content poll, so a dirty panel still wins.
			e.store.ApplyContent(map[string]string{string(panel): n.Content})
		}
	}
}

// pollSuivi refreshes the parsed mission log pane and the server-side
// operation log, which share a cadence.
func (e *Engine) pollSuivi(ctx context.Context) {
	raw, err := e.client.FetchSuivi(ctx)
	if err != nil {
		log.Printf("suivi poll failed: %v", err)
		return
	}
	e.store.SetSuivi(journal.Parse(raw, e.classifier))

	records, err := e.client.FetchLogs(ctx)
	if err != nil {
		log.Printf("log poll failed: %v", err)
		return
	}
	entries := make([]journal.Entry, 0, len(records))
	for i, rec := range records {
		entries = append(entries, journal.Entry{
			ID:        fmt.Sprintf("server-%d", i),
			Timestamp: rec.Timestamp,
			Message:   rec.Message,
			Type:      entryType(rec.Type),
			Level:     strings.ToLower(rec.Type),
		})
	}
	e.store.SetServerLogs(entries)
}

// pollStatus refreshes the agent running map under a bounded wait. A
// timeout is a recoverable warning for this tick only.
func (e *Engine) pollStatus(ctx context.Context) {
	sctx, cancel := context.WithTimeout(ctx, e.windows.StatusTimeout)
	defer cancel()

	status, err := e.client.FetchAgentStatus(sctx)
	if err != nil {
		log.Printf("warning: agent status poll failed: %v", err)
		return
	}
	agents := make(map[string]bool, len(status))
	for name, st := range status {
		agents[name] = st.Running
	}
	e.store.SetAgents(agents)
}

func entryType(raw string) journal.EntryType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "success":
		return journal.Success
	case "error":
		return journal.Error
	case "warning":
		return journal.Warning
	default:
		return journal.Info
	}
}
