package extraction

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/stnakamura/gyocal-api/pkg/config"
	appErrors "github.com/stnakamura/gyocal-api/pkg/errors"
)

// Client calls the Gemini generateContent endpoint with a document blob and
// returns the raw textual response. One request per call, no retries;
// retry policy, if any, belongs to the caller.
type Client struct {
	cfg        config.GeminiConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient constructs the extraction client.
func NewClient(cfg config.GeminiConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Extract sends the document to the generative backend and returns the raw
// text of the first candidate. The blob is held only for the duration of
// the call.
func (c *Client) Extract(ctx context.Context, blob []byte, mimeType string, apiKey string) (string, error) {
	if apiKey == "" {
		return "", appErrors.Clone(appErrors.ErrMissingCredential, "missing extraction API key")
	}
	if len(blob) == 0 {
		return "", appErrors.Clone(appErrors.ErrValidation, "empty document")
	}
	if !SupportedMime(mimeType) {
		return "", appErrors.Clone(appErrors.ErrUnsupportedMedia, fmt.Sprintf("unsupported mime type %q", mimeType))
	}

	body := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: schedulePrompt},
				{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(blob)}},
			},
		}},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode extraction request")
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model, apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build extraction request")
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	c.logger.Info("extraction.request",
		zap.String("model", c.cfg.Model),
		zap.String("mime_type", mimeType),
		zap.Int("blob_bytes", len(blob)),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("extraction.transport_error", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return "", appErrors.Wrap(err, appErrors.ErrExtractionFailed.Code, appErrors.ErrExtractionFailed.Status, "extraction backend unreachable")
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("extraction.transport_error", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return "", appErrors.Wrap(err, appErrors.ErrExtractionFailed.Code, appErrors.ErrExtractionFailed.Status, "read extraction response")
	}

	c.logger.Info("extraction.response",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(raw)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode/100 != 2 {
		var decoded generateResponse
		msg := fmt.Sprintf("extraction backend returned status %d", resp.StatusCode)
		if err := json.Unmarshal(raw, &decoded); err == nil && decoded.Error != nil && decoded.Error.Message != "" {
			msg = decoded.Error.Message
		}
		return "", appErrors.Clone(appErrors.ErrExtractionFailed, msg)
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrExtractionFailed.Code, appErrors.ErrExtractionFailed.Status, "decode extraction response")
	}
	if len(decoded.Candidates) == 0 {
		return "", appErrors.Clone(appErrors.ErrExtractionFailed, "extraction backend returned no candidates")
	}

	var sb strings.Builder
	for _, p := range decoded.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

// SupportedMime reports whether a document media type is accepted for
// extraction: any image subtype or a PDF.
func SupportedMime(mimeType string) bool {
	if strings.HasPrefix(mimeType, "image/") && len(mimeType) > len("image/") {
		return true
	}
	return mimeType == "application/pdf"
}
