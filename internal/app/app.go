// Package app boots the console: config, API client, state store,
// polling engine, and the TUI.
package app

import (
	"context"
	"fmt"

	"github.com/maxthraxx/kinos/internal/config"
	"github.com/maxthraxx/kinos/internal/engine"
	"github.com/maxthraxx/kinos/internal/parallagon"
	"github.com/maxthraxx/kinos/internal/prefs"
	"github.com/maxthraxx/kinos/internal/state"
	"github.com/maxthraxx/kinos/internal/ui"
)

// Options configure the application.
type Options struct {
	ConfigPath string
	ServerURL  string // overrides the config file when set
	ThemeName  string
	PrefsPath  string // empty uses default ~/.config/kinos/prefs.toml
}

// Run boots the console until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.ServerURL != "" {
		cfg.ServerURL = opts.ServerURL
	}

	userPrefs := prefs.Load(opts.PrefsPath)
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = userPrefs.Theme
	}

	client, err := parallagon.NewClient(cfg.ServerURL)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	store := state.New(nil)

	eng := engine.New(client, store, engine.Intervals{
		Content:       cfg.ContentPoll,
		Notifications: cfg.NotificationPoll,
		Suivi:         cfg.SuiviPoll,
		Status:        cfg.StatusPoll,
	}, engine.Windows{
		HighlightDecay:  cfg.HighlightDecay,
		NotificationTTL: cfg.NotificationTTL,
		Flash:           cfg.Flash,
	})
	defer eng.StopAll()

	// Populate the mission list and agent roster before the UI draws its
	// first frame. Failures here are not fatal; the user can retry from
	// the missions view.
	if err := eng.RefreshMissions(ctx); err == nil {
		if m, ok := pickMission(store.Missions(), userPrefs.LastMission); ok {
			_ = eng.SelectMission(ctx, m)
		}
	}
	eng.RefreshStatus(ctx)

	uiOpts := ui.Options{
		Context:   ctx,
		Engine:    eng,
		Store:     store,
		ThemeName: themeName,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}

// pickMission prefers the mission the user last watched, falling back to
// the first one the server lists.
func pickMission(missions []parallagon.Mission, lastID int64) (parallagon.Mission, bool) {
	if len(missions) == 0 {
		return parallagon.Mission{}, false
	}
	for _, m := range missions {
		if lastID != 0 && m.ID == lastID {
			return m, true
		}
	}
	return missions[0], true
}
