package converter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"
)

// YouTube metadata fetching.
// Primary:  Data API v3 videos endpoint (when an API key is configured)
// Fallback: scrape watch page ytInitialPlayerResponse → videoDetails

// YouTubeMetadataClient fetches video metadata. Each provider in the chain
// gets exactly one attempt.
type YouTubeMetadataClient struct {
	httpClient *http.Client
	apiKey     string
	timeout    time.Duration
}

// NewYouTubeMetadataClient creates a metadata client. apiKey may be empty,
// in which case only the watch-page scrape is used.
func NewYouTubeMetadataClient(httpClient *http.Client, apiKey string, timeout time.Duration) *YouTubeMetadataClient {
	return &YouTubeMetadataClient{httpClient: httpClient, apiKey: apiKey, timeout: timeout}
}

// Fetch returns metadata for videoID. All failures wrap ErrMetadataUnavailable.
func (c *YouTubeMetadataClient) Fetch(ctx context.Context, videoID string) (Metadata, error) {
	IncrMetadataRequests()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.apiKey != "" {
		md, err := c.fetchDataAPI(ctx, videoID)
		if err == nil {
			return md, nil
		}
		slog.Warn("metadata: data API failed, trying watch page",
			slog.String("id", videoID), slog.Any("err", err))
	}

	md, err := c.fetchWatchPage(ctx, videoID)
	if err != nil {
		IncrMetadataErrors()
		return Metadata{}, fmt.Errorf("%w: %s", ErrMetadataUnavailable, err)
	}
	return md, nil
}

// --- Data API v3 ---

type ytDataVideosResp struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"` // ISO 8601, e.g. PT2M5S
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

func (c *YouTubeMetadataClient) fetchDataAPI(ctx context.Context, videoID string) (Metadata, error) {
	params := url.Values{}
	params.Set("part", "snippet,contentDetails,statistics")
	params.Set("id", videoID)
	params.Set("key", c.apiKey)

	apiURL := ytDataAPIBase + "/videos?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return Metadata{}, err
	}
	req.Header.Set("User-Agent", userAgentBot)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Metadata{}, fmt.Errorf("youtube data API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Metadata{}, fmt.Errorf("youtube data API %d: %s", resp.StatusCode, body)
	}

	var result ytDataVideosResp
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Metadata{}, fmt.Errorf("decode youtube data API: %w", err)
	}
	if len(result.Items) == 0 {
		return Metadata{}, errors.New("video not found")
	}

	item := result.Items[0]
	if item.Snippet.Title == "" {
		return Metadata{}, errors.New("response missing title")
	}
	views, _ := strconv.ParseInt(item.Statistics.ViewCount, 10, 64)
	return Metadata{
		Title:           item.Snippet.Title,
		Channel:         item.Snippet.ChannelTitle,
		DurationSeconds: parseISODuration(item.ContentDetails.Duration),
		ViewCount:       views,
		Description:     item.Snippet.Description,
	}, nil
}

// --- Watch page scrape ---

func (c *YouTubeMetadataClient) fetchWatchPage(ctx context.Context, videoID string) (Metadata, error) {
	playerResp, err := scrapePlayerResponse(ctx, c.httpClient, videoID)
	if err != nil {
		return Metadata{}, err
	}
	if playerResp.PlayabilityStatus != nil && playerResp.PlayabilityStatus.Status == "ERROR" {
		reason := playerResp.PlayabilityStatus.Reason
		if reason == "" {
			reason = "video does not exist"
		}
		return Metadata{}, fmt.Errorf("video unavailable: %s", reason)
	}
	vd := playerResp.VideoDetails
	if vd == nil || vd.Title == "" {
		return Metadata{}, errors.New("no videoDetails in watch page")
	}
	length, _ := strconv.ParseInt(vd.LengthSeconds, 10, 64)
	views, _ := strconv.ParseInt(vd.ViewCount, 10, 64)
	return Metadata{
		Title:           vd.Title,
		Channel:         vd.Author,
		DurationSeconds: length,
		ViewCount:       views,
		Description:     vd.ShortDescription,
	}, nil
}

// isoDurationRE matches YouTube's ISO 8601 video durations (PT#H#M#S,
// long streams carry a day component).
var isoDurationRE = regexp.MustCompile(`^P(?:(\d+)D)?T?(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// parseISODuration converts a Data API duration string to seconds.
// Unparseable input yields 0.
func parseISODuration(s string) int64 {
	m := isoDurationRE.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	part := func(v string) int64 {
		if v == "" {
			return 0
		}
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	}
	return part(m[1])*86400 + part(m[2])*3600 + part(m[3])*60 + part(m[4])
}
