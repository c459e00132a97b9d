// Package journal turns raw mission log text into typed entries and keeps
// a bounded in-memory record of client-side events.
package journal

import (
	"fmt"
	"regexp"
	"strings"
)

// EntryType classifies an entry for display.
type EntryType string

const (
	Info    EntryType = "info"
	Success EntryType = "success"
	Warning EntryType = "warning"
	Error   EntryType = "error"
)

// Entry is one typed log record.
type Entry struct {
	ID        string
	Timestamp string // HH:MM:SS as written in the source text
	Message   string
	Type      EntryType
	Level     string
	Operation string
	Status    string
}

// FormattedMessage renders the entry the way the server formats its own
// log lines.
func (e Entry) FormattedMessage() string {
	return fmt.Sprintf("[%s] %s", e.Timestamp, e.Message)
}

// Classifier holds the marker substrings used to type an entry. Markers
// are scanned in precedence order: Reset, Success, Error, Warning; the
// first match wins and Reset maps to Warning. The scan is content-based
// and deliberately not exclusive.
type Classifier struct {
	Reset   string
	Success string
	Error   string
	Warning string
}

// DefaultClassifier matches the markers the server embeds in its messages.
func DefaultClassifier() Classifier {
	return Classifier{
		Reset:   "✨",
		Success: "✓",
		Error:   "❌",
		Warning: "⚠️",
	}
}

// Classify returns the entry type for a message, defaulting to Info.
func (c Classifier) Classify(message string) EntryType {
	switch {
	case c.Reset != "" && strings.Contains(message, c.Reset):
		return Warning
	case c.Success != "" && strings.Contains(message, c.Success):
		return Success
	case c.Error != "" && strings.Contains(message, c.Error):
		return Error
	case c.Warning != "" && strings.Contains(message, c.Warning):
		return Warning
	}
	return Info
}

var recordStart = regexp.MustCompile(`^\[(\d{2}:\d{2}:\d{2})\]\s?(.*)$`)

// Parse splits raw log text into entries. A record opens at each line of
// the form "[HH:MM:SS]rest"; lines that do not match are appended to the
// most recently opened record, newline-separated. Blank lines are dropped,
// as are lines before the first timestamp. A record still open at end of
// input is emitted.
func Parse(raw string, classifier Classifier) []Entry {
	entries := []Entry{}
	var open *Entry

	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := recordStart.FindStringSubmatch(line)
		if m == nil {
			if open != nil {
				open.Message += "\n" + line
			}
			continue
		}
		if open != nil {
			entries = append(entries, *open)
		}
		open = &Entry{
			Timestamp: m[1],
			Message:   m[2],
			Level:     "info",
		}
	}
	if open != nil {
		entries = append(entries, *open)
	}

	for i := range entries {
		entries[i].ID = fmt.Sprintf("entry-%d", i)
		entries[i].Type = classifier.Classify(entries[i].Message)
		entries[i].Level = string(entries[i].Type)
	}
	return entries
}
