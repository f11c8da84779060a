package converter

import (
	"errors"
	"testing"
)

func TestParseVideoURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch URL without www", "https://youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch URL with extra params", "https://www.youtube.com/watch?t=42&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short URL", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"embed URL", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"leading whitespace", "  https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"non-standard length ID", "https://youtu.be/abc", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVideoURL(tt.url)
			if err != nil {
				t.Fatalf("ParseVideoURL(%q) error: %v", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("ParseVideoURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestParseVideoURLSameIDAcrossShapes(t *testing.T) {
	urls := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
	}
	for _, u := range urls {
		got, err := ParseVideoURL(u)
		if err != nil {
			t.Fatalf("ParseVideoURL(%q) error: %v", u, err)
		}
		if got != "dQw4w9WgXcQ" {
			t.Errorf("ParseVideoURL(%q) = %q, want dQw4w9WgXcQ", u, got)
		}
	}
}

func TestParseVideoURLInvalid(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty string", ""},
		{"not a URL", "not a url"},
		{"other domain", "https://example.com/video"},
		{"youtube without video path", "https://www.youtube.com/feed/subscriptions"},
		{"watch without v param", "https://www.youtube.com/watch?list=PL123"},
		{"short URL empty path", "https://youtu.be/"},
		{"embed empty ID", "https://www.youtube.com/embed/"},
		{"ID with bad characters", "https://youtu.be/abc$def"},
		{"ftp scheme", "ftp://www.youtube.com/watch?v=dQw4w9WgXcQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseVideoURL(tt.url)
			if !errors.Is(err, ErrInvalidURL) {
				t.Errorf("ParseVideoURL(%q) error = %v, want ErrInvalidURL", tt.url, err)
			}
		})
	}
}
