package calendar

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
)

// SimulatedBackend logs every intended write and answers reads with a fixed
// canned list. It never touches the network; demo sessions run against it.
type SimulatedBackend struct {
	logger *zap.Logger

	inserted int
}

// NewSimulatedBackend constructs the simulation.
func NewSimulatedBackend(logger *zap.Logger) *SimulatedBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimulatedBackend{logger: logger}
}

// Insert logs the intended write and reports unconditional success.
func (b *SimulatedBackend) Insert(_ context.Context, calendarID string, event *gcal.Event) (*gcal.Event, error) {
	b.inserted++

	b.logger.Info("simulated_calendar.insert",
		zap.String("calendar_id", calendarID),
		zap.String("summary", event.Summary),
		zap.Any("start", event.Start),
		zap.Any("end", event.End),
	)

	stored := *event
	stored.Id = fmt.Sprintf("simulated-%d", b.inserted)
	stored.HtmlLink = ""
	return &stored, nil
}

// ListUpcoming returns the canned demo schedule regardless of parameters.
func (b *SimulatedBackend) ListUpcoming(_ context.Context, calendarID string, _ time.Duration) ([]*gcal.Event, error) {
	b.logger.Info("simulated_calendar.list", zap.String("calendar_id", calendarID))

	base := time.Now().AddDate(0, 0, 3)
	day := func(offset int) string { return base.AddDate(0, 0, offset).Format("2006-01-02") }

	return []*gcal.Event{
		{
			Id:      "demo-1",
			Summary: "職員会議",
			Start:   &gcal.EventDateTime{DateTime: day(0) + "T16:00:00+09:00"},
			End:     &gcal.EventDateTime{DateTime: day(0) + "T17:00:00+09:00"},
		},
		{
			Id:      "demo-2",
			Summary: "避難訓練",
			Start:   &gcal.EventDateTime{Date: day(4)},
			End:     &gcal.EventDateTime{Date: day(4)},
		},
		{
			Id:      "demo-3",
			Summary: "授業参観",
			Start:   &gcal.EventDateTime{DateTime: day(8) + "T10:30:00+09:00"},
			End:     &gcal.EventDateTime{DateTime: day(8) + "T12:00:00+09:00"},
		},
	}, nil
}
