package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stnakamura/gyocal-api/internal/models"
)

func tokyo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	return loc
}

func TestEventFromRecordTimed(t *testing.T) {
	event, err := EventFromRecord(models.EventRecord{
		Date:      "2026-04-10",
		Summary:   "入学式",
		StartTime: "09:00",
		EndTime:   "12:00",
	}, tokyo(t))
	require.NoError(t, err)

	assert.Equal(t, "入学式", event.Summary)
	assert.Equal(t, "2026-04-10T09:00:00+09:00", event.Start.DateTime)
	assert.Equal(t, "2026-04-10T12:00:00+09:00", event.End.DateTime)
	assert.Equal(t, "Asia/Tokyo", event.Start.TimeZone)
	assert.Empty(t, event.Start.Date)
}

func TestEventFromRecordDefaultDuration(t *testing.T) {
	event, err := EventFromRecord(models.EventRecord{
		Date:      "2026-04-10",
		Summary:   "始業式",
		StartTime: "09:00",
	}, tokyo(t))
	require.NoError(t, err)

	assert.Equal(t, "2026-04-10T09:00:00+09:00", event.Start.DateTime)
	assert.Equal(t, "2026-04-10T10:00:00+09:00", event.End.DateTime)
}

func TestEventFromRecordAllDay(t *testing.T) {
	event, err := EventFromRecord(models.EventRecord{
		Date:    "2026-09-20",
		Summary: "運動会",
	}, tokyo(t))
	require.NoError(t, err)

	assert.Equal(t, "2026-09-20", event.Start.Date)
	assert.Equal(t, "2026-09-20", event.End.Date)
	assert.Empty(t, event.Start.DateTime)
	assert.Empty(t, event.End.DateTime)
}

func TestEventFromRecordRejectsEndWithoutStart(t *testing.T) {
	_, err := EventFromRecord(models.EventRecord{
		Date:    "2026-04-10",
		Summary: "入学式",
		EndTime: "12:00",
	}, tokyo(t))
	require.Error(t, err)
}

func TestEventFromRecordRejectsBadDate(t *testing.T) {
	_, err := EventFromRecord(models.EventRecord{
		Date:    "2026-13-40",
		Summary: "入学式",
	}, tokyo(t))
	require.Error(t, err)
}
