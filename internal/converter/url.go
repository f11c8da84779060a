package converter

import (
	"fmt"
	"net/url"
	"strings"
)

// The accepted URL shapes form a small closed set. Each rule knows its own
// extraction; ParseVideoURL tries them in order.
//
//	watch: https://www.youtube.com/watch?v=<ID>
//	short: https://youtu.be/<ID>
//	embed: https://www.youtube.com/embed/<ID>
type urlRule struct {
	name    string
	extract func(u *url.URL) (string, bool)
}

var urlRules = []urlRule{
	{"watch", func(u *url.URL) (string, bool) {
		if !isYouTubeHost(u.Host) || u.Path != "/watch" {
			return "", false
		}
		return u.Query().Get("v"), true
	}},
	{"short", func(u *url.URL) (string, bool) {
		if u.Host != "youtu.be" {
			return "", false
		}
		return strings.TrimPrefix(u.Path, "/"), true
	}},
	{"embed", func(u *url.URL) (string, bool) {
		if !isYouTubeHost(u.Host) || !strings.HasPrefix(u.Path, "/embed/") {
			return "", false
		}
		return strings.TrimPrefix(u.Path, "/embed/"), true
	}},
}

func isYouTubeHost(host string) bool {
	return host == "www.youtube.com" || host == "youtube.com"
}

// validVideoID reports whether id is a non-empty token of the characters
// YouTube uses in video IDs. Length is deliberately not checked.
func validVideoID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// ParseVideoURL extracts the video ID from one of the recognized URL
// shapes. Any other shape, a malformed URL, or an empty or malformed ID
// fails with ErrInvalidURL.
func ParseVideoURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	for _, rule := range urlRules {
		id, ok := rule.extract(u)
		if !ok {
			continue
		}
		if !validVideoID(id) {
			return "", fmt.Errorf("%w: %s URL with bad video ID", ErrInvalidURL, rule.name)
		}
		return id, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
}
