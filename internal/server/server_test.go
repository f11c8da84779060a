package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"yt2doc/internal/converter"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubConverter struct {
	doc *converter.Document
	err error
}

func (s stubConverter) Convert(ctx context.Context, rawURL string) (*converter.Document, error) {
	return s.doc, s.err
}

func postForm(r http.Handler, videoURL string) *httptest.ResponseRecorder {
	form := url.Values{"video_url": {videoURL}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := NewRouter(stubConverter{}, Options{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestHomeRendersForm(t *testing.T) {
	r := NewRouter(stubConverter{}, Options{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="video_url"`)
}

func TestProcessSuccess(t *testing.T) {
	doc := &converter.Document{
		VideoID:         "dQw4w9WgXcQ",
		Metadata:        converter.Metadata{Title: "Test Video"},
		TranscriptText:  "Hello world",
		EstimatedTokens: 3,
		Markdown:        "# Test Video\n\nHello world\n",
	}
	r := NewRouter(stubConverter{doc: doc}, Options{})

	w := postForm(r, "https://youtu.be/dQw4w9WgXcQ")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Test Video")
	assert.Contains(t, w.Body.String(), "Hello world")
}

func TestProcessErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "invalid URL",
			err:  fmt.Errorf("%w: nope", converter.ErrInvalidURL),
			want: "Invalid YouTube URL",
		},
		{
			name: "metadata unavailable",
			err:  fmt.Errorf("%w: video not found", converter.ErrMetadataUnavailable),
			want: "Video not available",
		},
		{
			name: "transcript unavailable",
			err:  fmt.Errorf("%w: captions are disabled", converter.ErrTranscriptUnavailable),
			want: "Transcript not available",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(stubConverter{err: tt.err}, Options{})
			w := postForm(r, "https://youtu.be/x")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}

func TestRateLimit(t *testing.T) {
	doc := &converter.Document{Metadata: converter.Metadata{Title: "T"}, Markdown: "# T"}
	r := NewRouter(stubConverter{doc: doc}, Options{
		RateLimit: RateLimitConfig{PerMinute: 2, Burst: 2},
	})

	for i := 0; i < 2; i++ {
		w := postForm(r, "https://youtu.be/x")
		assert.Equal(t, http.StatusOK, w.Code, "request %d should pass", i)
	}

	w := postForm(r, "https://youtu.be/x")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
}
