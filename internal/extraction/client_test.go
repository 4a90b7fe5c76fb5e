package extraction

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stnakamura/gyocal-api/pkg/config"
	appErrors "github.com/stnakamura/gyocal-api/pkg/errors"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.GeminiConfig{
		BaseURL: baseURL,
		Model:   "gemini-1.5-flash",
		Timeout: 5 * time.Second,
	}, nil)
}

func TestExtractReturnsCandidateText(t *testing.T) {
	var captured struct {
		Contents []struct {
			Parts []struct {
				Text       string `json:"text"`
				InlineData *struct {
					MimeType string `json:"mime_type"`
					Data     string `json:"data"`
				} `json:"inline_data"`
			} `json:"parts"`
		} `json:"contents"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Contains(t, r.URL.Path, "gemini-1.5-flash:generateContent")
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"[{\"date\":\"2026-04-10\",\"summary\":\"入学式\"}]"}]}}]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	raw, err := client.Extract(context.Background(), []byte("fake-image-bytes"), "image/png", "test-key")
	require.NoError(t, err)
	assert.Contains(t, raw, "入学式")

	require.Len(t, captured.Contents, 1)
	require.Len(t, captured.Contents[0].Parts, 2)
	assert.NotEmpty(t, captured.Contents[0].Parts[0].Text)
	require.NotNil(t, captured.Contents[0].Parts[1].InlineData)
	assert.Equal(t, "image/png", captured.Contents[0].Parts[1].InlineData.MimeType)
}

func TestExtractRequiresCredential(t *testing.T) {
	client := newTestClient("http://localhost:0")
	_, err := client.Extract(context.Background(), []byte("x"), "image/png", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMissingCredential.Code, appErrors.FromError(err).Code)
}

func TestExtractRejectsEmptyBlob(t *testing.T) {
	client := newTestClient("http://localhost:0")
	_, err := client.Extract(context.Background(), nil, "image/png", "key")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExtractRejectsUnsupportedMime(t *testing.T) {
	client := newTestClient("http://localhost:0")
	_, err := client.Extract(context.Background(), []byte("x"), "text/html", "key")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedMedia.Code, appErrors.FromError(err).Code)
}

func TestExtractSurfacesBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Extract(context.Background(), []byte("x"), "application/pdf", "key")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrExtractionFailed.Code, appErr.Code)
	assert.Equal(t, "quota exceeded", appErr.Message)
}

func TestExtractFailsWhenBodyReadAborts(t *testing.T) {
	// Declare a longer body than is written so the client sees the
	// connection drop mid-read, not a decode failure.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "4096")
		_, _ = w.Write([]byte(`{"candidates":`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Extract(context.Background(), []byte("x"), "image/png", "key")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrExtractionFailed.Code, appErr.Code)
	assert.Equal(t, "read extraction response", appErr.Message)
}

func TestExtractFailsOnEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Extract(context.Background(), []byte("x"), "image/jpeg", "key")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrExtractionFailed.Code, appErrors.FromError(err).Code)
}

func TestSupportedMime(t *testing.T) {
	assert.True(t, SupportedMime("image/png"))
	assert.True(t, SupportedMime("image/jpeg"))
	assert.True(t, SupportedMime("application/pdf"))
	assert.False(t, SupportedMime("image/"))
	assert.False(t, SupportedMime("text/plain"))
	assert.False(t, SupportedMime(""))
}
