package state

import (
	"time"

	"github.com/maxthraxx/kinos/internal/parallagon"
)

// UpdateFiles replaces the tracked file records. A record whose modified
// token compares strictly greater than the stored token joins the
// highlighted set until the decay window elapses; a further update before
// then pushes the deadline out again (last write wins), so a deadline set
// by an older update can never evict a fresher highlight. Tokens are
// always overwritten whether or not highlighting fired. Returns the newly
// highlighted paths.
func (s *Store) UpdateFiles(records []parallagon.FileRecord, decay time.Duration) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var highlighted []string

	for _, rec := range records {
		key := fileKey(rec)
		prev, seen := s.fileTokens[key]
		if seen && rec.Modified > prev {
			s.highlights[key] = now.Add(decay)
			highlighted = append(highlighted, key)
		}
		s.fileTokens[key] = rec.Modified
	}
	s.files = append([]parallagon.FileRecord(nil), records...)

	// Drop deadlines that already lapsed so the set stays bounded by the
	// mission's file count.
	for key, deadline := range s.highlights {
		if !deadline.After(now) {
			delete(s.highlights, key)
		}
	}
	return highlighted
}

// Highlighted reports whether a path is inside its decay window.
func (s *Store) Highlighted(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.highlights[path].After(s.now())
}

// fileKey is the unique key for a record within a mission.
func fileKey(rec parallagon.FileRecord) string {
	if rec.RelativePath != "" {
		return rec.RelativePath
	}
	return rec.Path
}
