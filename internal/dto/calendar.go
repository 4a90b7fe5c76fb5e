package dto

import "github.com/stnakamura/gyocal-api/internal/models"

// Calendar backend modes. Mode is always chosen explicitly by the caller;
// live mode without a usable credential fails instead of degrading to mock.
const (
	ModeLive = "live"
	ModeMock = "mock"
)

// ImportEventsRequest submits a reviewed event batch for insertion.
// An absent CalendarID targets the configured default calendar. Records are
// not pre-validated as a batch; a record the engine cannot turn into a
// calendar write becomes a per-item failure.
type ImportEventsRequest struct {
	CalendarID string               `json:"calendarId"`
	Mode       string               `json:"mode"`
	Events     []models.EventRecord `json:"events"`
}

// ImportEventsResponse reports the batch outcome. Count duplicates
// Outcome.Inserted for callers that only ever read the legacy field.
type ImportEventsResponse struct {
	Count     int                       `json:"count"`
	Attempted int                       `json:"attempted"`
	Items     []models.CommitItemResult `json:"items"`
}

// UpcomingEventsResponse lists calendar entries inside the read window.
type UpcomingEventsResponse struct {
	Events []models.UpcomingEvent `json:"events"`
}
