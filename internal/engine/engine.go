// Package engine owns the polling schedule and session state of the
// mission console: it pulls server state at fixed cadences, feeds the
// store, and sequences start/stop and mission switches so no poll of a
// superseded mission ever lands.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/maxthraxx/kinos/internal/journal"
	"github.com/maxthraxx/kinos/internal/parallagon"
	"github.com/maxthraxx/kinos/internal/state"
)

// Intervals holds the cadence of each named poll task.
type Intervals struct {
	Content       time.Duration // panel content, file records, change log
	Notifications time.Duration
	Suivi         time.Duration
	Status        time.Duration
}

// DefaultIntervals matches the cadences the server was designed around.
func DefaultIntervals() Intervals {
	return Intervals{
		Content:       1000 * time.Millisecond,
		Notifications: 500 * time.Millisecond,
		Suivi:         5000 * time.Millisecond,
		Status:        5000 * time.Millisecond,
	}
}

// Windows holds the transient-signal durations.
type Windows struct {
	HighlightDecay  time.Duration
	NotificationTTL time.Duration
	Flash           time.Duration
	StatusTimeout   time.Duration
}

// DefaultWindows returns the standard decay configuration.
func DefaultWindows() Windows {
	return Windows{
		HighlightDecay:  1000 * time.Millisecond,
		NotificationTTL: 5000 * time.Millisecond,
		Flash:           1000 * time.Millisecond,
		StatusTimeout:   5000 * time.Millisecond,
	}
}

type task struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context)

	// cancel is non-nil exactly while the task is scheduled.
	cancel context.CancelFunc
	done   chan struct{}
}

// Engine drives the poll tasks and the RUNNING/STOPPED session machine.
type Engine struct {
	client     parallagon.Service
	store      *state.Store
	intervals  Intervals
	windows    Windows
	classifier journal.Classifier

	mu      sync.Mutex
	tasks   []*task
	running bool
}

// New wires an engine over the given client and store. Zero interval or
// window fields fall back to defaults.
func New(client parallagon.Service, store *state.Store, intervals Intervals, windows Windows) *Engine {
	defs := DefaultIntervals()
	if intervals.Content <= 0 {
		intervals.Content = defs.Content
	}
	if intervals.Notifications <= 0 {
		intervals.Notifications = defs.Notifications
	}
	if intervals.Suivi <= 0 {
		intervals.Suivi = defs.Suivi
	}
	if intervals.Status <= 0 {
		intervals.Status = defs.Status
	}
	defw := DefaultWindows()
	if windows.HighlightDecay <= 0 {
		windows.HighlightDecay = defw.HighlightDecay
	}
	if windows.NotificationTTL <= 0 {
		windows.NotificationTTL = defw.NotificationTTL
	}
	if windows.Flash <= 0 {
		windows.Flash = defw.Flash
	}
	if windows.StatusTimeout <= 0 {
		windows.StatusTimeout = defw.StatusTimeout
	}

	e := &Engine{
		client:     client,
		store:      store,
		intervals:  intervals,
		windows:    windows,
		classifier: journal.DefaultClassifier(),
	}
	e.tasks = []*task{
		{name: "content", interval: intervals.Content, run: e.pollContent},
		{name: "notifications", interval: intervals.Notifications, run: e.pollNotifications},
		{name: "suivi", interval: intervals.Suivi, run: e.pollSuivi},
		{name: "status", interval: intervals.Status, run: e.pollStatus},
	}
	return e
}

// Store returns the engine's state store.
func (e *Engine) Store() *state.Store {
	return e.store
}

// StartAll schedules every poll task. Starting a task that already has a
// live handle is a no-op.
func (e *Engine) StartAll(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.startAllLocked(ctx)
}

// StopAll cancels every live handle and waits for the tick goroutines to
// drain, so callers can rely on no further tick running once it returns.
// Stopping a stopped task is a no-op.
func (e *Engine) StopAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopAllLocked()
}

func (e *Engine) startAllLocked(ctx context.Context) {
	for _, t := range e.tasks {
		e.startTask(ctx, t)
	}
}

func (e *Engine) stopAllLocked() {
	for _, t := range e.tasks {
		e.stopTask(t)
	}
}

func (e *Engine) startTask(ctx context.Context, t *task) {
	if t.cancel != nil {
		return
	}
	tctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	done := make(chan struct{})
	t.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			t.run(tctx)
			select {
			case <-tctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

func (e *Engine) stopTask(t *task) {
	if t.cancel == nil {
		return
	}
	t.cancel()
	<-t.done
	t.cancel = nil
	t.done = nil
}

// liveHandles counts the currently scheduled tasks.
func (e *Engine) liveHandles() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, t := range e.tasks {
		if t.cancel != nil {
			n++
		}
	}
	return n
}

// Running reports the session state.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}
