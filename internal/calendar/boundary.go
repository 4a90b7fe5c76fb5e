package calendar

import (
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"

	"github.com/stnakamura/gyocal-api/internal/models"
)

// DefaultEventDuration applies when a record has a start time but no end
// time.
const DefaultEventDuration = 60 * time.Minute

// EventFromRecord builds the calendar write for one event record.
//
// A record without times becomes an all-day event with date-only start and
// end boundaries on the same day. A record with a start time becomes a
// timed event in loc; the end is the given end time, or start plus
// DefaultEventDuration when absent.
func EventFromRecord(rec models.EventRecord, loc *time.Location) (*gcal.Event, error) {
	day, err := time.ParseInLocation("2006-01-02", rec.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", rec.Date, err)
	}

	event := &gcal.Event{Summary: rec.Summary}

	if rec.StartTime == "" {
		if rec.EndTime != "" {
			return nil, fmt.Errorf("event %q has an end time but no start time", rec.Summary)
		}
		event.Start = &gcal.EventDateTime{Date: rec.Date}
		event.End = &gcal.EventDateTime{Date: rec.Date}
		return event, nil
	}

	start, err := atTimeOfDay(day, rec.StartTime, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", rec.StartTime, err)
	}

	var end time.Time
	if rec.EndTime != "" {
		end, err = atTimeOfDay(day, rec.EndTime, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid end time %q: %w", rec.EndTime, err)
		}
	} else {
		end = start.Add(DefaultEventDuration)
	}

	event.Start = &gcal.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: loc.String()}
	event.End = &gcal.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: loc.String()}
	return event, nil
}

func atTimeOfDay(day time.Time, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}
