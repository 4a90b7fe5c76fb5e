package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stnakamura/gyocal-api/internal/dto"
	"github.com/stnakamura/gyocal-api/pkg/config"
	appErrors "github.com/stnakamura/gyocal-api/pkg/errors"
)

type extractorStub struct {
	raw      string
	err      error
	lastBlob []byte
	lastMime string
	lastKey  string
	calls    int
}

func (s *extractorStub) Extract(_ context.Context, blob []byte, mimeType string, apiKey string) (string, error) {
	s.calls++
	s.lastBlob = blob
	s.lastMime = mimeType
	s.lastKey = apiKey
	if s.err != nil {
		return "", s.err
	}
	return s.raw, nil
}

func testImportConfig() config.ImportConfig {
	return config.ImportConfig{
		MaxFileSizeBytes: 1024,
		AllowedMIMEs:     []string{"image/png", "image/jpeg", "application/pdf"},
	}
}

func validParseRequest() dto.ParseScheduleRequest {
	return dto.ParseScheduleRequest{
		FileData: base64.StdEncoding.EncodeToString([]byte("fake-scan")),
		MimeType: "image/png",
		APIKey:   "gemini-key",
	}
}

func TestParseScheduleSuccess(t *testing.T) {
	stub := &extractorStub{raw: "```json\n[{\"date\":\"2026-04-10\",\"summary\":\"入学式\",\"startTime\":\"09:00\",\"endTime\":\"12:00\"}]\n```"}
	svc := NewExtractService(stub, testImportConfig(), nil, nil, nil)

	events, err := svc.ParseSchedule(context.Background(), validParseRequest())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "入学式", events[0].Summary)

	assert.Equal(t, []byte("fake-scan"), stub.lastBlob)
	assert.Equal(t, "image/png", stub.lastMime)
	assert.Equal(t, "gemini-key", stub.lastKey)
}

func TestParseScheduleMissingAPIKey(t *testing.T) {
	stub := &extractorStub{raw: "[]"}
	svc := NewExtractService(stub, testImportConfig(), nil, nil, nil)

	req := validParseRequest()
	req.APIKey = ""
	_, err := svc.ParseSchedule(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMissingCredential.Code, appErrors.FromError(err).Code)
	assert.Zero(t, stub.calls)
}

func TestParseScheduleInvalidPayload(t *testing.T) {
	svc := NewExtractService(&extractorStub{}, testImportConfig(), nil, nil, nil)

	_, err := svc.ParseSchedule(context.Background(), dto.ParseScheduleRequest{MimeType: "image/png", APIKey: "k"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestParseScheduleRejectsBadBase64(t *testing.T) {
	svc := NewExtractService(&extractorStub{}, testImportConfig(), nil, nil, nil)

	req := validParseRequest()
	req.FileData = "%%% not base64 %%%"
	_, err := svc.ParseSchedule(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestParseScheduleRejectsDisallowedMime(t *testing.T) {
	stub := &extractorStub{}
	svc := NewExtractService(stub, testImportConfig(), nil, nil, nil)

	req := validParseRequest()
	req.MimeType = "text/html"
	_, err := svc.ParseSchedule(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedMedia.Code, appErrors.FromError(err).Code)
	assert.Zero(t, stub.calls)
}

func TestParseScheduleRejectsOversizedDocument(t *testing.T) {
	stub := &extractorStub{}
	cfg := testImportConfig()
	cfg.MaxFileSizeBytes = 4
	svc := NewExtractService(stub, cfg, nil, nil, nil)

	_, err := svc.ParseSchedule(context.Background(), validParseRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPayloadTooLarge.Code, appErrors.FromError(err).Code)
	assert.Zero(t, stub.calls)
}

func TestParseSchedulePropagatesExtractorError(t *testing.T) {
	stub := &extractorStub{err: appErrors.Clone(appErrors.ErrExtractionFailed, "backend down")}
	svc := NewExtractService(stub, testImportConfig(), nil, nil, nil)

	_, err := svc.ParseSchedule(context.Background(), validParseRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrExtractionFailed.Code, appErrors.FromError(err).Code)
}

func TestParseScheduleMalformedOutputFailsWholeBatch(t *testing.T) {
	stub := &extractorStub{raw: `[{"date":"2026-04-10","summary":"入学式"},{"summary":"missing date"}]`}
	svc := NewExtractService(stub, testImportConfig(), nil, nil, nil)

	_, err := svc.ParseSchedule(context.Background(), validParseRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMalformedOutput.Code, appErrors.FromError(err).Code)
}

func TestParseScheduleUnexpectedExtractorErrorBecomesInternal(t *testing.T) {
	stub := &extractorStub{err: errors.New("boom")}
	svc := NewExtractService(stub, testImportConfig(), nil, nil, nil)

	_, err := svc.ParseSchedule(context.Background(), validParseRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}
