package journal

import (
	"fmt"
	"testing"
	"time"
)

func fixedClock(t *testing.T) func() time.Time {
	t.Helper()
	at := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestLog_AppendAssignsMonotonicIDs(t *testing.T) {
	l := NewLog(fixedClock(t))

	first := l.Append(Info, "one")
	second := l.Append(Error, "two")

	if first.ID != "entry-0" || second.ID != "entry-1" {
		t.Fatalf("ids = %q, %q, want entry-0, entry-1", first.ID, second.ID)
	}
	if first.Timestamp != "10:30:00" {
		t.Errorf("timestamp = %q, want 10:30:00", first.Timestamp)
	}

	entries := l.Entries()
	if len(entries) != 2 || entries[0].Message != "one" || entries[1].Message != "two" {
		t.Fatalf("Entries() = %#v, want insertion order", entries)
	}
}

func TestLog_SizeBound(t *testing.T) {
	l := NewLog(fixedClock(t))

	for i := 0; i < MaxEntries+25; i++ {
		l.Append(Info, fmt.Sprintf("msg-%d", i))
	}

	entries := l.Entries()
	if len(entries) != MaxEntries {
		t.Fatalf("len(Entries()) = %d, want %d", len(entries), MaxEntries)
	}
	if entries[0].Message != "msg-25" {
		t.Errorf("oldest retained = %q, want msg-25", entries[0].Message)
	}
	if entries[len(entries)-1].Message != fmt.Sprintf("msg-%d", MaxEntries+24) {
		t.Errorf("newest retained = %q", entries[len(entries)-1].Message)
	}
}

func TestLog_ClearKeepsIDCounter(t *testing.T) {
	l := NewLog(fixedClock(t))

	l.Append(Info, "before")
	l.Clear()

	if got := l.Entries(); len(got) != 0 {
		t.Fatalf("Entries() after Clear = %#v, want empty", got)
	}

	after := l.Append(Info, "after")
	if after.ID != "entry-1" {
		t.Errorf("id after clear = %q, want entry-1", after.ID)
	}
}
