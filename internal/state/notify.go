package state

import (
	"time"

	"github.com/maxthraxx/kinos/internal/journal"
)

// DefaultNotificationTTL is how long a notification stays visible.
const DefaultNotificationTTL = 5 * time.Second

// Notification is one user-visible transient message.
type Notification struct {
	ID      int
	Type    journal.EntryType
	Message string

	expiresAt time.Time
}

// PushNotification appends a message with a freshly minted id and its own
// expiry deadline. There is no deduplication and no size cap; identical
// messages each get an independent lifetime.
func (s *Store) PushNotification(typ journal.EntryType, message string, ttl time.Duration) Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	n := Notification{
		ID:        s.nextNotifID,
		Type:      typ,
		Message:   message,
		expiresAt: s.now().Add(ttl),
	}
	s.nextNotifID++
	s.notifs = append(s.notifs, n)
	return n
}

// Notifications returns the live queue in insertion order, dropping
// entries whose lifetime has elapsed.
func (s *Store) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	live := s.liveNotifications(s.now())
	s.notifs = append(s.notifs[:0], live...)
	return append([]Notification(nil), live...)
}

func (s *Store) liveNotifications(now time.Time) []Notification {
	live := make([]Notification, 0, len(s.notifs))
	for _, n := range s.notifs {
		if n.expiresAt.After(now) {
			live = append(live, n)
		}
	}
	return live
}
