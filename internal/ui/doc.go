// Package ui provides the terminal user interface for the mission console.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. One root Model owns all view state; a
// UI tick copies the latest snapshot out of state.Store, and every render
// derives purely from that snapshot. The poll engine runs independently
// of the render loop, so a slow frame never delays a poll and a slow poll
// never blocks a keystroke.
//
// # Package Structure
//
// The package is organized into focused modules:
//
//   - app.go: Root model, messages, commands, and the main Run function
//   - input.go: Keyboard handling per view, demande editing, preferences
//   - view.go: Layout composition, header, tab bar, notifications, footer
//   - diff.go: Change rendering between a panel's previous and current text
//   - lists.go: Mission picker, agent roster, file listing, journal
//   - keys.go: Key bindings
//   - theme.go: Color palettes and Lipgloss styles
//   - help.go: Help overlay
//
// # View Types
//
// Five views share the content area:
//
//   - Panels: One tab per mission panel with the active panel's text or,
//     in diff mode, the change since the last update
//   - Missions: Mission picker; enter switches the whole console over
//   - Agents: Per-agent running state with start/stop toggling
//   - Files: Tracked mission files with recent-change highlights
//   - Journal: Client journal followed by the parsed mission log
//
// # Panel Markers
//
// The tab bar encodes panel state: a flashing tab means the server asked
// for attention, an asterisk marks unsaved local edits, and a bullet
// marks content that changed in the last poll. The flash style wins
// while it lasts.
//
// # Key Bindings
//
//   - tab / shift+tab, h / l: Cycle panels
//   - p / m / a / f / L: Switch views
//   - d: Toggle diff mode for the active panel
//   - e: Edit the demande; ctrl+s saves, esc cancels
//   - s: Start or stop the session
//   - enter: Load mission or toggle agent, depending on view
//   - C / X: Clear or export the server logs
//   - T: Cycle theme (persisted to prefs)
//   - ?: Help, q or ctrl+c: Quit
//
// # Design Principles
//
//   - Snapshot-driven: Renders never touch the store except to copy it
//   - Single operator: No multi-user or authentication support
//   - The only mutable document is the demande; everything else is owned
//     by the server and displayed read-only
package ui
