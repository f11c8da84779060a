package converter

import (
	"encoding/json"
	"testing"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"PT2M5S", 125},
		{"PT1H2M5S", 3725},
		{"PT45S", 45},
		{"PT1H", 3600},
		{"P1DT2H", 93600},
		{"PT0S", 0},
		{"", 0},
		{"garbage", 0},
	}

	for _, tt := range tests {
		if got := parseISODuration(tt.in); got != tt.want {
			t.Errorf("parseISODuration(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple object", `{"a":1};rest`, `{"a":1}`},
		{"nested braces", `{"a":{"b":2}}tail`, `{"a":{"b":2}}`},
		{"braces inside strings", `{"a":"}{"}x`, `{"a":"}{"}`},
		{"escaped quote", `{"a":"\""}x`, `{"a":"\""}`},
		{"not an object", `[1,2]`, ""},
		{"unterminated", `{"a":1`, ""},
		{"empty", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON([]byte(tt.in))
			if string(got) != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestVideoDetailsMapping(t *testing.T) {
	raw := `{
		"videoDetails": {
			"videoId": "dQw4w9WgXcQ",
			"title": "Test Video",
			"lengthSeconds": "125",
			"viewCount": "1000",
			"author": "Test Channel",
			"shortDescription": "A test."
		}
	}`
	var resp innertubePlayerResp
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.VideoDetails == nil {
		t.Fatal("videoDetails not parsed")
	}
	if resp.VideoDetails.Title != "Test Video" ||
		resp.VideoDetails.LengthSeconds != "125" ||
		resp.VideoDetails.ViewCount != "1000" ||
		resp.VideoDetails.Author != "Test Channel" {
		t.Errorf("unexpected videoDetails: %+v", resp.VideoDetails)
	}
}

func TestDataAPIResponseMapping(t *testing.T) {
	raw := `{
		"items": [{
			"id": "dQw4w9WgXcQ",
			"snippet": {"title": "Test Video", "description": "A test.", "channelTitle": "Test Channel"},
			"contentDetails": {"duration": "PT2M5S"},
			"statistics": {"viewCount": "1000"}
		}]
	}`
	var resp ytDataVideosResp
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(resp.Items))
	}
	item := resp.Items[0]
	if item.Snippet.Title != "Test Video" || item.Snippet.ChannelTitle != "Test Channel" {
		t.Errorf("unexpected snippet: %+v", item.Snippet)
	}
	if got := parseISODuration(item.ContentDetails.Duration); got != 125 {
		t.Errorf("duration = %d, want 125", got)
	}
}
