// Package linksend sends YouTube video summaries to a Telegram chat.
//
// It validates pasted YouTube links, extracts video metadata through
// yt-dlp (or the YouTube Data API), and delivers a formatted summary
// of every video found to one configured chat.
//
// Overview
//
// The flow is a short pipeline, exposed piecewise by the sub-packages:
//
//   - youtube.ValidateLink: gate a pasted link against its kind
//   - youtube.YtdlpFetcher: resolve a link into video records
//   - telegram.Caption: format one record into a summary
//   - telegram.Client: deliver summaries to the configured chat
//   - session.Session: the interactive menu driving all of the above
//
// Quick Start
//
// Send the summaries for one playlist:
//
//	cfg := telegram.DefaultConfig()
//	cfg.Token = os.Getenv("LINKSEND_TELEGRAM_TOKEN")
//	cfg.ChatID = os.Getenv("LINKSEND_TELEGRAM_CHAT_ID")
//	client := telegram.New(cfg)
//	defer client.Close()
//
//	fetcher := youtube.NewYtdlpFetcher()
//	videos, err := fetcher.Fetch(ctx, playlistURL, youtube.LinkPlaylist)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, v := range videos {
//		if err := client.Notify(ctx, v); err != nil {
//			log.Printf("send %s: %v", v.ID, err)
//		}
//	}
//
// Run the interactive menu:
//
//	sess := session.New(fetcher, client, os.Stdin, os.Stdout, logger)
//	if err := sess.Run(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// Configuration
//
// linksend loads settings from multiple sources:
//
//   1. Environment variables (highest priority)
//   2. Config file (linksend.json or ~/.config/linksend/linksend.json)
//   3. Default values (lowest priority)
//
// A .env file in the working directory feeds the environment before
// loading begins.
//
// Environment variables:
//
//   - LINKSEND_TELEGRAM_TOKEN: Telegram bot token (required)
//   - LINKSEND_TELEGRAM_CHAT_ID: Chat receiving every summary (required)
//   - LINKSEND_YTDLP_PATH: Path to yt-dlp executable
//   - LINKSEND_FETCH_TIMEOUT: Timeout for metadata extraction
//   - LINKSEND_SEND_INTERVAL: Pause between consecutive sends
//   - LINKSEND_API_KEY: YouTube Data API key (replaces yt-dlp when set)
//   - LINKSEND_LOG_LEVEL: debug, info, warn or error
//
// Error Handling
//
// All operations return errors that implement standard Go error handling:
//
// Checking for sentinel errors:
//
//	if errors.Is(err, linksend.ErrNoVideos) {
//		fmt.Println("Nothing to send")
//	}
//
// Extracting wrapped error details:
//
//	var fetchErr *linksend.FetchError
//	if errors.As(err, &fetchErr) {
//		fmt.Printf("Fetching %s failed: %v\n", fetchErr.Link, fetchErr.Err)
//	}
//
//	var apiErr *linksend.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Printf("Telegram rejected the send: %d\n", apiErr.Code)
//	}
//
// Advanced Usage
//
// For more control, use the sub-packages directly:
//
//   - youtube: Link validation and video metadata fetching
//   - telegram: Caption formatting and Bot API delivery
//   - session: Interactive menu loop
//   - config: Configuration management
//
// Dependencies
//
// linksend requires yt-dlp to be installed and available in PATH or
// specified via LINKSEND_YTDLP_PATH, unless LINKSEND_API_KEY selects
// the Data API fetcher.
//
// Install yt-dlp: https://github.com/yt-dlp/yt-dlp
//
package linksend
