package calendar

import (
	"context"
	"time"

	gcal "google.golang.org/api/calendar/v3"
)

// Backend abstracts the destination calendar. The commit engine and the
// read path run against either variant; callers pick one explicitly, the
// choice is never inferred from credential presence.
type Backend interface {
	// Insert writes one event and returns the stored representation.
	Insert(ctx context.Context, calendarID string, event *gcal.Event) (*gcal.Event, error)
	// ListUpcoming returns events starting inside [now, now+window).
	ListUpcoming(ctx context.Context, calendarID string, window time.Duration) ([]*gcal.Event, error)
}
