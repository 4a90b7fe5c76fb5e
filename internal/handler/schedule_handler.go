package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stnakamura/gyocal-api/internal/dto"
	"github.com/stnakamura/gyocal-api/internal/models"
	"github.com/stnakamura/gyocal-api/internal/service"
	appErrors "github.com/stnakamura/gyocal-api/pkg/errors"
	"github.com/stnakamura/gyocal-api/pkg/response"
)

type extractService interface {
	ParseSchedule(ctx context.Context, req dto.ParseScheduleRequest) ([]models.EventRecord, error)
}

type exportService interface {
	Render(req dto.ExportScheduleRequest) (*service.ExportDocument, error)
}

// ScheduleHandler exposes the document extraction and export endpoints.
type ScheduleHandler struct {
	extract extractService
	export  exportService
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(extract extractService, export exportService) *ScheduleHandler {
	return &ScheduleHandler{extract: extract, export: export}
}

// Parse godoc
// @Summary Extract event records from a schedule document
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.ParseScheduleRequest true "Base64 document, mime type and extraction API key"
// @Success 200 {object} response.Envelope
// @Router /schedule/parse [post]
func (h *ScheduleHandler) Parse(c *gin.Context) {
	var req dto.ParseScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid JSON payload"))
		return
	}

	events, err := h.extract.ParseSchedule(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.ParseScheduleResponse{Events: events})
}

// Export godoc
// @Summary Render a reviewed event list as a printable document
// @Tags Schedule
// @Accept json
// @Produce application/pdf
// @Param payload body dto.ExportScheduleRequest true "Events plus format (pdf or csv)"
// @Success 200 {file} binary
// @Router /schedule/export [post]
func (h *ScheduleHandler) Export(c *gin.Context) {
	var req dto.ExportScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid JSON payload"))
		return
	}

	doc, err := h.export.Render(req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}
