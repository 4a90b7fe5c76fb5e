package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/stnakamura/gyocal-api/internal/calendar"
	"github.com/stnakamura/gyocal-api/internal/dto"
	"github.com/stnakamura/gyocal-api/internal/models"
	"github.com/stnakamura/gyocal-api/pkg/config"
	appErrors "github.com/stnakamura/gyocal-api/pkg/errors"
)

// CalendarTarget identifies the destination of a commit batch or read.
type CalendarTarget struct {
	CalendarID string
	Mode       string
}

// BackendResolver builds a backend for one request. Live mode fails without
// an access token; mock mode ignores it.
type BackendResolver func(ctx context.Context, mode string, accessToken string) (calendar.Backend, error)

// NewBackendResolver returns the production resolver over the two backend
// variants.
func NewBackendResolver(logger *zap.Logger) BackendResolver {
	return func(ctx context.Context, mode string, accessToken string) (calendar.Backend, error) {
		switch mode {
		case dto.ModeLive:
			return calendar.NewLiveBackend(ctx, accessToken)
		case dto.ModeMock:
			return calendar.NewSimulatedBackend(logger), nil
		default:
			return nil, appErrors.Clone(appErrors.ErrValidation, "mode must be live or mock")
		}
	}
}

// CommitService is the calendar commit engine. Writes within one batch are
// issued sequentially with a fixed pause between consecutive attempts to
// stay under the backend's request-rate ceiling.
type CommitService struct {
	loc     *time.Location
	cfg     config.CalendarConfig
	sleep   func(time.Duration)
	logger  *zap.Logger
	metrics *MetricsService
}

// NewCommitService constructs the engine. The configured timezone must
// resolve to a valid location.
func NewCommitService(cfg config.CalendarConfig, metrics *MetricsService, logger *zap.Logger) (*CommitService, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "invalid calendar timezone")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommitService{
		loc:     loc,
		cfg:     cfg,
		sleep:   time.Sleep,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Commit inserts the records in input order. A failing record is logged,
// recorded in the outcome, and never aborts the batch. An empty input
// returns an empty outcome without touching the backend.
func (s *CommitService) Commit(ctx context.Context, backend calendar.Backend, target CalendarTarget, events []models.EventRecord) models.CommitOutcome {
	outcome := models.CommitOutcome{
		Attempted: len(events),
		Items:     make([]models.CommitItemResult, 0, len(events)),
	}
	if len(events) == 0 {
		return outcome
	}

	calendarID := target.CalendarID
	if calendarID == "" {
		calendarID = s.cfg.DefaultCalendarID
	}

	for i, rec := range events {
		if i > 0 && s.cfg.PaceInterval > 0 {
			s.sleep(s.cfg.PaceInterval)
		}

		item := models.CommitItemResult{Index: i, Date: rec.Date, Summary: rec.Summary}

		write, err := calendar.EventFromRecord(rec, s.loc)
		if err != nil {
			item.Status = models.CommitStatusFailed
			item.ErrorCode = appErrors.ErrValidation.Code
			item.Error = err.Error()
			s.logger.Warn("commit.item_invalid",
				zap.Int("index", i),
				zap.String("summary", rec.Summary),
				zap.Error(err),
			)
			s.metrics.ObserveInsert(target.Mode, false)
			outcome.Items = append(outcome.Items, item)
			continue
		}

		stored, err := backend.Insert(ctx, calendarID, write)
		if err != nil {
			item.Status = models.CommitStatusFailed
			item.ErrorCode = appErrors.FromError(err).Code
			item.Error = err.Error()
			s.logger.Warn("commit.item_failed",
				zap.Int("index", i),
				zap.String("summary", rec.Summary),
				zap.String("calendar_id", calendarID),
				zap.Error(err),
			)
			s.metrics.ObserveInsert(target.Mode, false)
			outcome.Items = append(outcome.Items, item)
			continue
		}

		item.Status = models.CommitStatusInserted
		if stored != nil {
			item.EventID = stored.Id
			item.EventLink = stored.HtmlLink
		}
		outcome.Inserted++
		s.metrics.ObserveInsert(target.Mode, true)
		outcome.Items = append(outcome.Items, item)
	}

	s.logger.Info("commit.done",
		zap.String("calendar_id", calendarID),
		zap.String("mode", target.Mode),
		zap.Int("attempted", outcome.Attempted),
		zap.Int("inserted", outcome.Inserted),
	)

	return outcome
}

// Upcoming reads the events inside the configured window and projects them
// onto the wire model.
func (s *CommitService) Upcoming(ctx context.Context, backend calendar.Backend, target CalendarTarget, window time.Duration) ([]models.UpcomingEvent, error) {
	calendarID := target.CalendarID
	if calendarID == "" {
		calendarID = s.cfg.DefaultCalendarID
	}
	if window <= 0 {
		window = s.cfg.UpcomingWindow
	}

	items, err := backend.ListUpcoming(ctx, calendarID, window)
	if err != nil {
		return nil, err
	}

	events := make([]models.UpcomingEvent, 0, len(items))
	for _, item := range items {
		ev := models.UpcomingEvent{
			ID:       item.Id,
			Summary:  item.Summary,
			HTMLLink: item.HtmlLink,
		}
		if item.Start != nil {
			if item.Start.DateTime != "" {
				ev.Start = item.Start.DateTime
			} else {
				ev.Start = item.Start.Date
				ev.AllDay = true
			}
		}
		if item.End != nil {
			if item.End.DateTime != "" {
				ev.End = item.End.DateTime
			} else {
				ev.End = item.End.Date
			}
		}
		events = append(events, ev)
	}
	return events, nil
}

// WithSleeper overrides the pacing sleeper. Tests use it to observe delays
// without waiting them out.
func (s *CommitService) WithSleeper(sleep func(time.Duration)) *CommitService {
	if sleep != nil {
		s.sleep = sleep
	}
	return s
}
