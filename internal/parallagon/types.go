package parallagon

// Mission identifies a workspace tracked by the server.
type Mission struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FileRecord describes one file inside a mission directory. Modified is
// the server's mtime token; values only ever grow for a given path.
type FileRecord struct {
	Name         string  `json:"name"`
	Path         string  `json:"path"`
	RelativePath string  `json:"relativePath"`
	Size         int64   `json:"size"`
	Modified     float64 `json:"modified"`
	Content      string  `json:"content,omitempty"`
}

// Notification is a server-pushed message. Panel and Flash request a tab
// pulse on the named panel; Content carries an inline panel update.
type Notification struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Panel     string `json:"panel,omitempty"`
	Content   string `json:"content,omitempty"`
	Flash     bool   `json:"flash,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// AgentState reports whether a single server-side agent is running.
type AgentState struct {
	Running bool `json:"running"`
}

// LogRecord mirrors one item of /api/logs.
type LogRecord struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type suiviResponse struct {
	Content string `json:"content"`
}

type saveResult struct {
	Success bool `json:"success"`
}
