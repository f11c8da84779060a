package converter

import (
	"strings"

	"golang.org/x/net/html"
)

// CleanCaptionText extracts plain text from a caption cue, which may carry
// markup like <font> or <b> and escaped entities, and collapses runs of
// whitespace to single spaces.
func CleanCaptionText(s string) string {
	if s == "" {
		return ""
	}
	var sb strings.Builder
	tok := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := tok.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			sb.Write(tok.Text())
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
