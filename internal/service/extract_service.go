package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/stnakamura/gyocal-api/internal/dto"
	"github.com/stnakamura/gyocal-api/internal/models"
	"github.com/stnakamura/gyocal-api/internal/schedule"
	"github.com/stnakamura/gyocal-api/pkg/config"
	appErrors "github.com/stnakamura/gyocal-api/pkg/errors"
)

type documentExtractor interface {
	Extract(ctx context.Context, blob []byte, mimeType string, apiKey string) (string, error)
}

// ExtractService turns an uploaded schedule document into validated event
// records. Extraction and the later commit are two independent phases; the
// caller holds the record sequence in between.
type ExtractService struct {
	extractor documentExtractor
	cfg       config.ImportConfig
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewExtractService constructs the service.
func NewExtractService(extractor documentExtractor, cfg config.ImportConfig, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *ExtractService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExtractService{extractor: extractor, cfg: cfg, validator: validate, logger: logger, metrics: metrics}
}

// ParseSchedule decodes the document, runs extraction, and parses the raw
// output into event records. Parse failures are all-or-nothing.
func (s *ExtractService) ParseSchedule(ctx context.Context, req dto.ParseScheduleRequest) ([]models.EventRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if req.APIKey == "" {
		return nil, appErrors.Clone(appErrors.ErrMissingCredential, "missing extraction API key")
	}
	if err := s.ensureAllowedMime(req.MimeType); err != nil {
		return nil, err
	}

	blob, err := base64.StdEncoding.DecodeString(req.FileData)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "fileData is not valid base64")
	}
	if int64(len(blob)) > s.cfg.MaxFileSizeBytes {
		return nil, appErrors.Clone(appErrors.ErrPayloadTooLarge,
			fmt.Sprintf("document exceeds %d bytes", s.cfg.MaxFileSizeBytes))
	}

	start := time.Now()
	raw, err := s.extractor.Extract(ctx, blob, req.MimeType, req.APIKey)
	if err != nil {
		return nil, err
	}

	events, err := schedule.ParseEvents(raw)
	if err != nil {
		s.logger.Warn("extract.malformed_output",
			zap.Int("raw_len", len(raw)),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.ObserveExtraction(time.Since(start), len(events))
	s.logger.Info("extract.done",
		zap.String("mime_type", req.MimeType),
		zap.Int("events", len(events)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return events, nil
}

func (s *ExtractService) ensureAllowedMime(mimeType string) error {
	if len(s.cfg.AllowedMIMEs) == 0 {
		return nil
	}
	for _, allowed := range s.cfg.AllowedMIMEs {
		if mimeType == allowed {
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrUnsupportedMedia, fmt.Sprintf("mime type %q is not allowed", mimeType))
}
