package main

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// config holds everything the service reads from the environment. Values
// are injected from main; no package reads the environment on its own.
type config struct {
	Port          string
	YouTubeAPIKey string
	CaptionLangs  []string
	FetchTimeout  time.Duration
	RatePerMinute int
	CORSOrigins   []string
}

func loadConfig() config {
	return config{
		Port:          envStr("PORT", "8080"),
		YouTubeAPIKey: envStr("YOUTUBE_API_KEY", ""),
		CaptionLangs:  envList("CAPTION_LANGS", "en"),
		FetchTimeout:  envDuration("FETCH_TIMEOUT", 15*time.Second),
		RatePerMinute: envInt("RATE_LIMIT_PER_MINUTE", 10),
		CORSOrigins:   envList("CORS_ORIGINS", ""),
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envList(key, def string) []string {
	v := envStr(key, def)
	if v == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
