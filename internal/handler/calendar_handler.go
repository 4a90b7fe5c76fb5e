package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stnakamura/gyocal-api/internal/calendar"
	"github.com/stnakamura/gyocal-api/internal/dto"
	"github.com/stnakamura/gyocal-api/internal/models"
	"github.com/stnakamura/gyocal-api/internal/service"
	appErrors "github.com/stnakamura/gyocal-api/pkg/errors"
	"github.com/stnakamura/gyocal-api/pkg/response"
)

type commitService interface {
	Commit(ctx context.Context, backend calendar.Backend, target service.CalendarTarget, events []models.EventRecord) models.CommitOutcome
	Upcoming(ctx context.Context, backend calendar.Backend, target service.CalendarTarget, window time.Duration) ([]models.UpcomingEvent, error)
}

// CalendarHandler exposes the commit and read endpoints. The backend mode is
// always taken from the request; live mode additionally needs a bearer
// access token, and there is no silent fallback to mock.
type CalendarHandler struct {
	service  commitService
	resolver service.BackendResolver
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(svc commitService, resolver service.BackendResolver) *CalendarHandler {
	return &CalendarHandler{service: svc, resolver: resolver}
}

// Import godoc
// @Summary Commit a reviewed event batch to a calendar
// @Tags Calendar
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer Google OAuth access token (required for mode=live)"
// @Param payload body dto.ImportEventsRequest true "Events, target calendar and mode"
// @Success 200 {object} response.Envelope
// @Router /calendar/events/import [post]
func (h *CalendarHandler) Import(c *gin.Context) {
	var req dto.ImportEventsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid JSON payload"))
		return
	}
	if req.Mode == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "mode is required"))
		return
	}

	backend, err := h.resolver(c.Request.Context(), req.Mode, bearerToken(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	target := service.CalendarTarget{CalendarID: req.CalendarID, Mode: req.Mode}
	outcome := h.service.Commit(c.Request.Context(), backend, target, req.Events)

	response.JSON(c, http.StatusOK, dto.ImportEventsResponse{
		Count:     outcome.Inserted,
		Attempted: outcome.Attempted,
		Items:     outcome.Items,
	})
}

// Upcoming godoc
// @Summary List calendar events inside the upcoming window
// @Tags Calendar
// @Produce json
// @Param Authorization header string false "Bearer Google OAuth access token (required for mode=live)"
// @Param mode query string false "live or mock (default live)"
// @Param calendarId query string false "Calendar ID (default configured)"
// @Param days query int false "Window size in days"
// @Success 200 {object} response.Envelope
// @Router /calendar/events/upcoming [get]
func (h *CalendarHandler) Upcoming(c *gin.Context) {
	mode := c.Query("mode")
	if mode == "" {
		mode = dto.ModeLive
	}

	var window time.Duration
	if raw := c.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "days must be a positive integer"))
			return
		}
		window = time.Duration(days) * 24 * time.Hour
	}

	backend, err := h.resolver(c.Request.Context(), mode, bearerToken(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	target := service.CalendarTarget{CalendarID: c.Query("calendarId"), Mode: mode}
	events, err := h.service.Upcoming(c.Request.Context(), backend, target, window)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.UpcomingEventsResponse{Events: events})
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
