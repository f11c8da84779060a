// Package server is the thin HTTP surface around the converter: a form
// page, the conversion POST, health, and metrics. Conversion semantics
// live entirely in internal/converter.
package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"yt2doc/internal/converter"
)

//go:embed templates/*.html
var templateFS embed.FS

// VideoConverter is what the handlers need from the core; the concrete
// *converter.Converter satisfies it, tests substitute stubs.
type VideoConverter interface {
	Convert(ctx context.Context, rawURL string) (*converter.Document, error)
}

// Options configures the HTTP layer.
type Options struct {
	CORSOrigins []string // empty = allow all
	RateLimit   RateLimitConfig
}

type handlers struct {
	conv VideoConverter
}

// NewRouter constructs a Gin engine with all routes registered.
func NewRouter(conv VideoConverter, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: opts.CORSOrigins,
			AllowMethods: []string{"GET", "POST"},
		}))
	} else {
		r.Use(cors.Default())
	}

	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	h := &handlers{conv: conv}
	r.GET("/health", h.health)
	r.GET("/metrics", h.metrics)
	r.GET("/", h.home)
	r.POST("/", rateLimitByIP(opts.RateLimit), h.process)
	return r
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *handlers) metrics(c *gin.Context) {
	c.String(http.StatusOK, converter.FormatMetrics())
}

func (h *handlers) home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

// process runs one conversion for the posted video_url and re-renders the
// page with either the document or a user-facing error message.
func (h *handlers) process(c *gin.Context) {
	videoURL := c.PostForm("video_url")

	doc, err := h.conv.Convert(c.Request.Context(), videoURL)
	if err != nil {
		slog.Warn("conversion failed", slog.String("url", videoURL), slog.Any("err", err))
		c.HTML(http.StatusOK, "index.html", gin.H{
			"VideoURL":     videoURL,
			"ErrorMessage": userMessage(err),
		})
		return
	}

	slog.Info("conversion done",
		slog.String("id", doc.VideoID),
		slog.Int("tokens", doc.EstimatedTokens),
	)
	c.HTML(http.StatusOK, "index.html", gin.H{
		"VideoURL": videoURL,
		"Result":   true,
		"Title":    doc.Metadata.Title,
		"Markdown": doc.Markdown,
		"Tokens":   doc.EstimatedTokens,
	})
}

// userMessage maps the error taxonomy onto displayable text.
func userMessage(err error) string {
	switch {
	case errors.Is(err, converter.ErrInvalidURL):
		return "Invalid YouTube URL. Please paste a youtube.com/watch, youtu.be or youtube.com/embed link."
	case errors.Is(err, converter.ErrMetadataUnavailable):
		return "Video not available. Please check that the video is public and the URL is correct."
	case errors.Is(err, converter.ErrTranscriptUnavailable):
		return "Transcript not available for this video. Try a different video or check if captions are enabled."
	default:
		return "Error processing video: " + err.Error()
	}
}
