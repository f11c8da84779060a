// yt2doc — YouTube video to markdown document converter.
//
// Serves a small web form: paste a video URL, get back the video's
// metadata and transcript rendered as a single markdown document with a
// token estimate.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"yt2doc/internal/converter"
	"yt2doc/internal/server"
)

func main() {
	godotenv.Load()
	cfg := loadConfig()

	slog.Info("starting yt2doc",
		slog.String("port", cfg.Port),
		slog.Bool("data_api", cfg.YouTubeAPIKey != ""),
	)

	httpClient := &http.Client{
		Timeout: cfg.FetchTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     60 * time.Second,
		},
	}

	conv := converter.New(
		converter.NewYouTubeMetadataClient(httpClient, cfg.YouTubeAPIKey, cfg.FetchTimeout),
		converter.NewInnertubeTranscriptClient(httpClient, cfg.CaptionLangs, cfg.FetchTimeout),
	)

	router := server.NewRouter(conv, server.Options{
		CORSOrigins: cfg.CORSOrigins,
		RateLimit:   server.RateLimitConfig{PerMinute: cfg.RatePerMinute},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", slog.Any("error", err))
	}
}
