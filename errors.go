package linksend

import (
	"linksend/telegram"
	"linksend/youtube"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, youtube.ErrNoVideos) {
//		fmt.Println("Nothing to send")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var fetchErr *youtube.FetchError
//	if errors.As(err, &fetchErr) {
//		fmt.Printf("Fetching %s failed: %v\n", fetchErr.Link, fetchErr.Err)
//	}

// Exported error types from sub-packages:
//
// From youtube package:
//   - youtube.ErrInvalidLink: Link could not be resolved to videos
//   - youtube.ErrNoVideos: Link resolved but contained no videos
//   - youtube.ErrYtdlpNotInstalled: yt-dlp binary not found
//   - youtube.Fetcher: Interface for metadata fetching
//   - youtube.FetchError: Error during metadata fetching
//
// From telegram package:
//   - telegram.APIError: Failure response from the Bot API

// Type aliases for convenient error handling.
type (
	// FetchError wraps errors during video metadata fetching.
	FetchError = youtube.FetchError
	// APIError carries a Telegram Bot API failure response.
	APIError = telegram.APIError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrInvalidLink indicates the link could not be resolved to videos.
	ErrInvalidLink = youtube.ErrInvalidLink
	// ErrNoVideos indicates the link resolved but contained no videos.
	ErrNoVideos = youtube.ErrNoVideos
	// ErrYtdlpNotInstalled indicates yt-dlp binary was not found.
	ErrYtdlpNotInstalled = youtube.ErrYtdlpNotInstalled
)
