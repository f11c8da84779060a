// Package converter turns a YouTube video URL into a markdown document.
//
// The conversion is a single linear pass: parse the URL into a video ID,
// fetch metadata and transcript from YouTube (in parallel), estimate the
// token count of the transcript, and render everything into markdown.
// Nothing is cached or persisted between calls.
package converter

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Sentinel errors for the three terminal failure classes. Provider detail
// is wrapped around them; match with errors.Is.
var (
	ErrInvalidURL            = errors.New("invalid YouTube URL")
	ErrMetadataUnavailable   = errors.New("video metadata unavailable")
	ErrTranscriptUnavailable = errors.New("transcript unavailable")
)

// Metadata is the strict shape provider responses are mapped into at the
// fetcher boundary. Populated once per conversion, never mutated after.
type Metadata struct {
	Title           string `json:"title"`
	Channel         string `json:"channel"`
	DurationSeconds int64  `json:"duration_seconds"`
	ViewCount       int64  `json:"view_count"`
	Description     string `json:"description"`
}

// Segment is one timed caption cue. A transcript is a slice of segments
// ordered by Start ascending.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Document is the result of one conversion.
type Document struct {
	VideoID         string   `json:"video_id"`
	Metadata        Metadata `json:"metadata"`
	TranscriptText  string   `json:"transcript_text"`
	EstimatedTokens int      `json:"estimated_tokens"`
	Markdown        string   `json:"markdown"`
}

// MetadataClient fetches video metadata for a video ID.
type MetadataClient interface {
	Fetch(ctx context.Context, videoID string) (Metadata, error)
}

// TranscriptClient fetches the timed transcript for a video ID.
type TranscriptClient interface {
	Fetch(ctx context.Context, videoID string) ([]Segment, error)
}

// Converter runs conversions with injected clients, so tests can substitute
// fakes for the network-facing implementations.
type Converter struct {
	meta MetadataClient
	tr   TranscriptClient
}

// New creates a Converter using the given clients.
func New(meta MetadataClient, tr TranscriptClient) *Converter {
	return &Converter{meta: meta, tr: tr}
}

// JoinSegments concatenates segment texts with single spaces, discarding
// timestamps. Empty segments are skipped.
func JoinSegments(segs []Segment) string {
	var sb strings.Builder
	for _, s := range segs {
		if s.Text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Convert parses rawURL and produces the rendered document.
//
// Metadata and transcript are fetched concurrently; both must succeed
// before anything is rendered — there is no partial document. When both
// fail, the metadata error is reported.
func (c *Converter) Convert(ctx context.Context, rawURL string) (*Document, error) {
	IncrConversions()

	videoID, err := ParseVideoURL(rawURL)
	if err != nil {
		IncrInvalidURLs()
		return nil, err
	}

	var (
		wg    sync.WaitGroup
		md    Metadata
		segs  []Segment
		mdErr error
		trErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		md, mdErr = c.meta.Fetch(ctx, videoID)
	}()
	go func() {
		defer wg.Done()
		segs, trErr = c.tr.Fetch(ctx, videoID)
	}()
	wg.Wait()

	if mdErr != nil {
		return nil, mdErr
	}
	if trErr != nil {
		return nil, trErr
	}

	text := JoinSegments(segs)
	tokens := EstimateTokens(text)

	return &Document{
		VideoID:         videoID,
		Metadata:        md,
		TranscriptText:  text,
		EstimatedTokens: tokens,
		Markdown:        RenderDocument(md, segs, tokens),
	}, nil
}
