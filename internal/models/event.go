package models

// EventRecord is one schedule entry extracted from a document. Date is an
// ISO calendar date; the times are optional local times of day. A record
// with an end time but no start time is rejected at parse time.
type EventRecord struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Summary   string `json:"summary" validate:"required"`
	StartTime string `json:"startTime,omitempty" validate:"required_with=EndTime,omitempty,datetime=15:04"`
	EndTime   string `json:"endTime,omitempty" validate:"omitempty,datetime=15:04"`
}

// AllDay reports whether the record carries no start time.
func (r EventRecord) AllDay() bool {
	return r.StartTime == ""
}

// Commit item statuses.
const (
	CommitStatusInserted = "inserted"
	CommitStatusFailed   = "failed"
)

// CommitItemResult records the fate of one event within a commit batch.
type CommitItemResult struct {
	Index     int    `json:"index"`
	Date      string `json:"date"`
	Summary   string `json:"summary"`
	Status    string `json:"status"`
	EventID   string `json:"event_id,omitempty"`
	EventLink string `json:"event_link,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
	Error     string `json:"error,omitempty"`
}

// CommitOutcome aggregates a commit batch. Inserted can be lower than
// Attempted; Items carries the per-event detail either way.
type CommitOutcome struct {
	Attempted int                `json:"attempted"`
	Inserted  int                `json:"inserted"`
	Items     []CommitItemResult `json:"items"`
}

// UpcomingEvent is a read-side projection of a calendar entry.
type UpcomingEvent struct {
	ID       string `json:"id"`
	Summary  string `json:"summary"`
	Start    string `json:"start"`
	End      string `json:"end"`
	AllDay   bool   `json:"all_day"`
	HTMLLink string `json:"html_link,omitempty"`
}
