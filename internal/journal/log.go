package journal

import (
	"fmt"
	"sync"
	"time"
)

// MaxEntries bounds the in-memory log to the most recent entries.
const MaxEntries = 100

// Log is an append-only, size-bounded record of client events. Appending
// past the bound drops the oldest entries. Entries carry session-monotonic
// ids; there is no time-based eviction.
type Log struct {
	mu      sync.Mutex
	now     func() time.Time
	entries []Entry
	nextID  int
}

// NewLog returns an empty log stamping entries with the given clock. A nil
// clock uses time.Now.
func NewLog(now func() time.Time) *Log {
	if now == nil {
		now = time.Now
	}
	return &Log{now: now}
}

// Append records a message with the current wall-clock timestamp and
// returns the stored entry.
func (l *Log) Append(typ EntryType, message string) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := Entry{
		ID:        fmt.Sprintf("entry-%d", l.nextID),
		Timestamp: l.now().Format("15:04:05"),
		Message:   message,
		Type:      typ,
		Level:     string(typ),
	}
	l.nextID++

	l.entries = append(l.entries, entry)
	if len(l.entries) > MaxEntries {
		l.entries = append(l.entries[:0], l.entries[len(l.entries)-MaxEntries:]...)
	}
	return entry
}

// Entries returns a copy of the current entries in insertion order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clear drops all entries. The id counter keeps running so ids stay unique
// for the session.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
