package converter

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// YouTube transcript fetching.
// Primary:  scrape watch page ytInitialPlayerResponse → caption track XML
// Fallback: ANDROID Innertube /player → captionTracks
// Both paths end in a timedtext XML download, which carries per-cue timing.

// InnertubeTranscriptClient fetches transcripts straight from YouTube.
// Each provider in the chain gets exactly one attempt.
type InnertubeTranscriptClient struct {
	httpClient *http.Client
	langs      []string
	timeout    time.Duration
}

// NewInnertubeTranscriptClient creates a transcript client. langs is the
// preferred caption language order; empty means English.
func NewInnertubeTranscriptClient(httpClient *http.Client, langs []string, timeout time.Duration) *InnertubeTranscriptClient {
	if len(langs) == 0 {
		langs = []string{"en"}
	}
	return &InnertubeTranscriptClient{httpClient: httpClient, langs: langs, timeout: timeout}
}

// Fetch returns the ordered transcript segments for videoID. All failures
// wrap ErrTranscriptUnavailable; the message distinguishes disabled
// captions, missing tracks, and unavailable videos for user display.
func (c *InnertubeTranscriptClient) Fetch(ctx context.Context, videoID string) ([]Segment, error) {
	IncrTranscriptRequests()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	segs, scrapeErr := c.fetchViaPageScrape(ctx, videoID)
	if scrapeErr == nil {
		return segs, nil
	}
	slog.Warn("transcript: page scrape failed, trying android player",
		slog.String("id", videoID), slog.Any("err", scrapeErr))

	segs, playerErr := c.fetchViaPlayer(ctx, videoID)
	if playerErr == nil {
		return segs, nil
	}
	IncrTranscriptErrors()
	return nil, fmt.Errorf("%w: %s", ErrTranscriptUnavailable, playerErr)
}

// needsPoToken reports whether a caption track URL requires a PoToken
// (browser-only). Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack selects the best usable caption track for the given
// language preferences. Skips tracks that require PoToken.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}
	// 1. Manual track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	// 2. Auto-generated track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	// 3. Any English track
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	// 4. First available
	return usable[0], true
}

// segmentsFromTracks picks a track from a player response and downloads it.
func (c *InnertubeTranscriptClient) segmentsFromTracks(ctx context.Context, resp innertubePlayerResp) ([]Segment, error) {
	if resp.PlayabilityStatus != nil && resp.PlayabilityStatus.Status == "ERROR" {
		reason := resp.PlayabilityStatus.Reason
		if reason == "" {
			reason = "video does not exist"
		}
		return nil, fmt.Errorf("video unavailable: %s", reason)
	}
	if resp.Captions == nil {
		return nil, errors.New("captions are disabled for this video")
	}
	tracks := resp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, errors.New("no transcript in any available language")
	}
	track, ok := pickBestTrack(tracks, c.langs)
	if !ok {
		return nil, errors.New("all caption tracks require a browser session")
	}
	return c.fetchTimedText(ctx, track.BaseURL)
}

// fetchTimedText fetches and parses a YouTube timedtext XML caption URL
// into ordered segments.
func (c *InnertubeTranscriptClient) fetchTimedText(ctx context.Context, baseURL string) ([]Segment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgentBot)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timedtext HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil, err
	}

	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	segs := make([]Segment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := CleanCaptionText(line.Text)
		if text == "" {
			continue
		}
		segs = append(segs, Segment{Text: text, Start: line.Start, Duration: line.Dur})
	}
	if len(segs) == 0 {
		return nil, errors.New("empty transcript")
	}
	return segs, nil
}

// fetchViaPageScrape scrapes the YouTube watch page HTML and extracts the
// caption track XML URL from ytInitialPlayerResponse. Works from any IP.
func (c *InnertubeTranscriptClient) fetchViaPageScrape(ctx context.Context, videoID string) ([]Segment, error) {
	playerResp, err := scrapePlayerResponse(ctx, c.httpClient, videoID)
	if err != nil {
		return nil, err
	}
	return c.segmentsFromTracks(ctx, *playerResp)
}

// fetchViaPlayer uses the ANDROID Innertube /player endpoint. Works from
// non-blocked (residential/cloud) IP addresses.
func (c *InnertubeTranscriptClient) fetchViaPlayer(ctx context.Context, videoID string) ([]Segment, error) {
	reqBody, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ytInnertubeURL+"?prettyPrint=false", bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", ytAndroidUA)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", ytAndroidVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("android innertube: %w", err)
	}
	defer resp.Body.Close()

	var playerResp innertubePlayerResp
	if err := json.NewDecoder(resp.Body).Decode(&playerResp); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	return c.segmentsFromTracks(ctx, playerResp)
}

// scrapePlayerResponse fetches a watch page and extracts the
// ytInitialPlayerResponse JSON. Shared with the metadata client.
func scrapePlayerResponse(ctx context.Context, httpClient *http.Client, videoID string) (*innertubePlayerResp, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ytWatchURLBase+videoID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgentChrome)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("X-Goog-Visitor-Id", generateVisitorData())

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}

	idx := bytes.Index(body, []byte(ytInitialPlayerResponseMarker))
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var playerResp innertubePlayerResp
	if err := json.Unmarshal(jsonData, &playerResp); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return &playerResp, nil
}
