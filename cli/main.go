package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"linksend/config"
	"linksend/session"
	"linksend/telegram"
	"linksend/youtube"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	// SIGINT/SIGTERM cancel the context; the session notices at prompts
	// and between sends and exits cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher, err := buildFetcher(cfg, logger)
	if err != nil {
		return err
	}

	tgCfg := telegram.DefaultConfig()
	tgCfg.Token = cfg.TelegramToken
	tgCfg.ChatID = cfg.TelegramChatID
	tgCfg.SendInterval = cfg.SendInterval
	client := telegram.New(tgCfg)
	defer client.Close()

	sess := session.New(fetcher, client, os.Stdin, os.Stdout, logger)
	return sess.Run(ctx)
}

// buildFetcher picks the metadata source: the YouTube Data API when a
// key is configured, yt-dlp otherwise.
func buildFetcher(cfg *config.Config, logger *slog.Logger) (youtube.Fetcher, error) {
	if cfg.APIKey != "" {
		fetcher, err := youtube.NewAPIFetcher(cfg.APIKey)
		if err != nil {
			return nil, err
		}
		fetcher.Progress = os.Stdout
		fetcher.Logger = logger
		return fetcher, nil
	}

	fetcher := youtube.NewYtdlpFetcher()
	fetcher.Path = cfg.YtdlpPath
	fetcher.Timeout = cfg.FetchTimeout
	fetcher.Progress = os.Stdout
	fetcher.Logger = logger
	return fetcher, nil
}
