package engine

import (
	"context"
	"fmt"

	"github.com/maxthraxx/kinos/internal/journal"
	"github.com/maxthraxx/kinos/internal/parallagon"
	"github.com/maxthraxx/kinos/internal/state"
)

// StartSession moves STOPPED to RUNNING: the server-side agents start
// first, then every poll task. Already running is a no-op.
func (e *Engine) StartSession(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return nil
	}
	if err := e.client.StartAgents(ctx); err != nil {
		return fmt.Errorf("start agents: %w", err)
	}
	e.running = true
	e.store.SetRunning(true)
	e.store.Journal().Append(journal.Success, "✓ Agents started")
	e.startAllLocked(ctx)
	return nil
}

// StopSession moves RUNNING to STOPPED: polling halts fully before the
// server-side agents are told to stop. Already stopped is a no-op.
func (e *Engine) StopSession(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return nil
	}
	e.stopAllLocked()
	e.running = false
	e.store.SetRunning(false)
	if err := e.client.StopAgents(ctx); err != nil {
		return fmt.Errorf("stop agents: %w", err)
	}
	e.store.Journal().Append(journal.Info, "Agents stopped")
	return nil
}

// SelectMission switches the current mission. Polling for the old mission
// is fully drained before the swap, the new mission's content is loaded
// once, and polling resumes only if the session was running. A tick that
// was in flight when the swap began discards its result because it no
// longer matches the current mission id.
func (e *Engine) SelectMission(ctx context.Context, m parallagon.Mission) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	wasRunning := e.running
	if wasRunning {
		e.stopAllLocked()
		if err := e.client.StopAgents(ctx); err != nil {
			e.notifyError(fmt.Sprintf("❌ Failed to stop agents: %v", err))
		}
	}

	e.store.SetMission(&m)
	e.store.Journal().Append(journal.Success, fmt.Sprintf("✓ Mission %s loaded", m.Name))
	e.pollContent(ctx)
	e.pollSuivi(ctx)

	if wasRunning {
		if err := e.client.StartAgents(ctx); err != nil {
			e.running = false
			e.store.SetRunning(false)
			return fmt.Errorf("restart agents: %w", err)
		}
		e.startAllLocked(ctx)
	}
	return nil
}

// RefreshMissions reloads the mission list.
func (e *Engine) RefreshMissions(ctx context.Context) error {
	missions, err := e.client.FetchMissions(ctx)
	if err != nil {
		e.notifyError(fmt.Sprintf("❌ Failed to load missions: %v", err))
		return err
	}
	e.store.SetMissions(missions)
	return nil
}

// SaveDemande pushes the locally edited request draft to the server. The
// panel's dirty flag clears only on success; no network call happens when
// no mission is selected.
func (e *Engine) SaveDemande(ctx context.Context, content string) error {
	mission, ok := e.store.Mission()
	if !ok {
		e.notifyError("❌ No mission selected")
		return fmt.Errorf("no mission selected")
	}
	if err := e.client.SaveDemande(ctx, content, mission.ID, mission.Name); err != nil {
		e.notifyError(fmt.Sprintf("❌ Failed to save demande: %v", err))
		return err
	}
	e.store.ClearDirty(state.PanelDemande)
	e.store.PushNotification(journal.Success, "✓ Demande saved", e.windows.NotificationTTL)
	e.store.Journal().Append(journal.Success, "✓ Demande saved")
	return nil
}

// ToggleAgent flips one agent between running and stopped based on the
// last observed status.
func (e *Engine) ToggleAgent(ctx context.Context, agentID string) error {
	action := "start"
	if e.store.Snapshot().Agents[agentID] {
		action = "stop"
	}
	if err := e.client.ToggleAgent(ctx, agentID, action); err != nil {
		e.notifyError(fmt.Sprintf("❌ Failed to %s agent %s: %v", action, agentID, err))
		return err
	}
	e.store.Journal().Append(journal.Success, fmt.Sprintf("✓ Agent %s %sed", agentID, action))
	e.pollStatus(ctx)
	return nil
}

// RefreshStatus fetches the agent roster once, outside the poll loop.
// Used at boot and after one-off agent actions so the display does not
// wait for the next status tick.
func (e *Engine) RefreshStatus(ctx context.Context) {
	e.pollStatus(ctx)
}

// ClearLogs drops the server's operation log and the local journal.
func (e *Engine) ClearLogs(ctx context.Context) error {
	if err := e.client.ClearLogs(ctx); err != nil {
		e.notifyError(fmt.Sprintf("❌ Failed to clear logs: %v", err))
		return err
	}
	e.store.Journal().Clear()
	e.store.SetServerLogs(nil)
	return nil
}

// ExportLogs downloads the server's log blob.
func (e *Engine) ExportLogs(ctx context.Context) ([]byte, error) {
	blob, err := e.client.ExportLogs(ctx)
	if err != nil {
		e.notifyError(fmt.Sprintf("❌ Failed to export logs: %v", err))
		return nil, err
	}
	return blob, nil
}

func (e *Engine) notifyError(message string) {
	e.store.PushNotification(journal.Error, message, e.windows.NotificationTTL)
}
