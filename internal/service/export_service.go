package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/stnakamura/gyocal-api/internal/dto"
	"github.com/stnakamura/gyocal-api/internal/models"
	appErrors "github.com/stnakamura/gyocal-api/pkg/errors"
	"github.com/stnakamura/gyocal-api/pkg/export"
)

// ExportDocument is a rendered schedule review document.
type ExportDocument struct {
	Body        []byte
	ContentType string
	Filename    string
}

// ExportService renders a reviewed event list into a printable document so
// staff can check the schedule before committing it.
type ExportService struct {
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExportService constructs the service. pdfFont is the TrueType font the
// PDF renderer embeds; without one non-Latin summaries degrade to
// substitution characters.
func NewExportService(pdfFont []byte, validate *validator.Validate, logger *zap.Logger) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(pdfFont),
		validator: validate,
		logger:    logger,
	}
}

var exportHeaders = []string{"Date", "Summary", "Start", "End"}

// Render produces the requested document. Format defaults to PDF.
func (s *ExportService) Render(req dto.ExportScheduleRequest) (*ExportDocument, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	title := req.Title
	if title == "" {
		title = "Annual Event Schedule"
	}

	data := export.Dataset{Headers: exportHeaders, Rows: datasetRows(req.Events)}

	format := req.Format
	if format == "" {
		format = dto.ExportFormatPDF
	}

	switch format {
	case dto.ExportFormatCSV:
		body, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv")
		}
		return &ExportDocument{Body: body, ContentType: "text/csv", Filename: "schedule.csv"}, nil
	default:
		body, err := s.pdf.Render(data, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf")
		}
		return &ExportDocument{Body: body, ContentType: "application/pdf", Filename: "schedule.pdf"}, nil
	}
}

func datasetRows(events []models.EventRecord) []map[string]string {
	rows := make([]map[string]string, 0, len(events))
	for _, ev := range events {
		start := ev.StartTime
		end := ev.EndTime
		if ev.AllDay() {
			start = "-"
			end = "-"
		} else if end == "" {
			end = "-"
		}
		rows = append(rows, map[string]string{
			"Date":    ev.Date,
			"Summary": ev.Summary,
			"Start":   start,
			"End":     end,
		})
	}
	return rows
}
