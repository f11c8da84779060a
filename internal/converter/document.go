package converter

import (
	"fmt"
	"strings"
)

// RenderDocument composes the markdown document. Section order is fixed:
// title heading, metadata block, description, transcript (timestamps
// discarded), trailing token-estimate note. Pure and byte-deterministic.
func RenderDocument(md Metadata, segs []Segment, estimatedTokens int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", md.Title)
	fmt.Fprintf(&sb, "**Channel:** %s\n", md.Channel)
	fmt.Fprintf(&sb, "**Duration:** %s\n", FormatDuration(md.DurationSeconds))
	fmt.Fprintf(&sb, "**Views:** %s\n\n", groupDigits(md.ViewCount))

	sb.WriteString("## Description\n\n")
	if md.Description != "" {
		sb.WriteString(md.Description)
		sb.WriteString("\n\n")
	} else {
		sb.WriteString("*No description.*\n\n")
	}

	sb.WriteString("## Transcript\n\n")
	sb.WriteString(JoinSegments(segs))
	sb.WriteString("\n\n---\n\n")

	fmt.Fprintf(&sb, "*Estimated tokens: %s*\n", groupDigits(int64(estimatedTokens)))

	return sb.String()
}

// FormatDuration renders seconds as M:SS below one hour and H:MM:SS above.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// groupDigits formats n with comma thousands separators.
func groupDigits(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var sb strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	if neg {
		return "-" + sb.String()
	}
	return sb.String()
}
