package converter

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the converter.
var metrics struct {
	Conversions        atomic.Int64
	InvalidURLs        atomic.Int64
	MetadataRequests   atomic.Int64
	MetadataErrors     atomic.Int64
	TranscriptRequests atomic.Int64
	TranscriptErrors   atomic.Int64
}

func IncrConversions()        { metrics.Conversions.Add(1) }
func IncrInvalidURLs()        { metrics.InvalidURLs.Add(1) }
func IncrMetadataRequests()   { metrics.MetadataRequests.Add(1) }
func IncrMetadataErrors()     { metrics.MetadataErrors.Add(1) }
func IncrTranscriptRequests() { metrics.TranscriptRequests.Add(1) }
func IncrTranscriptErrors()   { metrics.TranscriptErrors.Add(1) }

// GetMetrics returns a snapshot of all counters.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"conversions":         metrics.Conversions.Load(),
		"invalid_urls":        metrics.InvalidURLs.Load(),
		"metadata_requests":   metrics.MetadataRequests.Load(),
		"metadata_errors":     metrics.MetadataErrors.Load(),
		"transcript_requests": metrics.TranscriptRequests.Load(),
		"transcript_errors":   metrics.TranscriptErrors.Load(),
	}
}

// FormatMetrics returns counters as a simple text format for the HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	keys := []string{
		"conversions", "invalid_urls",
		"metadata_requests", "metadata_errors",
		"transcript_requests", "transcript_errors",
	}
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}
