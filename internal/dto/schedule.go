package dto

import "github.com/stnakamura/gyocal-api/internal/models"

// ParseScheduleRequest carries one schedule document for extraction.
// FileData is the base64 encoded document body.
type ParseScheduleRequest struct {
	FileData string `json:"fileData" validate:"required"`
	MimeType string `json:"mimeType" validate:"required"`
	APIKey   string `json:"apiKey"`
}

// ParseScheduleResponse returns the extracted event records for review.
type ParseScheduleResponse struct {
	Events []models.EventRecord `json:"events"`
}

// Export formats.
const (
	ExportFormatPDF = "pdf"
	ExportFormatCSV = "csv"
)

// ExportScheduleRequest renders a reviewed event list into a document.
type ExportScheduleRequest struct {
	Title  string               `json:"title"`
	Format string               `json:"format" validate:"omitempty,oneof=pdf csv"`
	Events []models.EventRecord `json:"events" validate:"required,min=1,dive"`
}
