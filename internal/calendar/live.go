package calendar

import (
	"context"
	"time"

	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	appErrors "github.com/stnakamura/gyocal-api/pkg/errors"
)

// LiveBackend talks to the real Google Calendar API using a caller-supplied
// OAuth access token. It holds no state beyond the API client; one instance
// is built per request.
type LiveBackend struct {
	svc *gcal.Service
}

// NewLiveBackend builds a backend around an OAuth access token. The token
// is used as-is; acquiring and refreshing it is the caller's concern.
func NewLiveBackend(ctx context.Context, accessToken string) (*LiveBackend, error) {
	if accessToken == "" {
		return nil, appErrors.Clone(appErrors.ErrMissingCredential, "live mode requires an access token")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	svc, err := gcal.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCalendarBackend.Code, appErrors.ErrCalendarBackend.Status, "build calendar client")
	}

	return &LiveBackend{svc: svc}, nil
}

// Insert writes one event to the target calendar.
func (b *LiveBackend) Insert(ctx context.Context, calendarID string, event *gcal.Event) (*gcal.Event, error) {
	return b.svc.Events.Insert(calendarID, event).Context(ctx).Do()
}

// ListUpcoming returns the expanded, start-ordered events inside the window.
func (b *LiveBackend) ListUpcoming(ctx context.Context, calendarID string, window time.Duration) ([]*gcal.Event, error) {
	now := time.Now()
	res, err := b.svc.Events.List(calendarID).
		TimeMin(now.Format(time.RFC3339)).
		TimeMax(now.Add(window).Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCalendarBackend.Code, appErrors.ErrCalendarBackend.Status, "list calendar events")
	}
	return res.Items, nil
}
