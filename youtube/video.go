// Package youtube provides YouTube link validation and video metadata fetching.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Sentinel errors for metadata fetching.
var (
	ErrInvalidLink       = errors.New("youtube: invalid link")
	ErrNoVideos          = errors.New("youtube: no videos found")
	ErrYtdlpNotInstalled = errors.New("youtube: yt-dlp not installed")
)

// Fetcher defines the interface for resolving a validated link into
// video metadata records. Different implementations may use different
// strategies (yt-dlp subprocess, Data API).
type Fetcher interface {
	// Fetch resolves the link into one or more video records. For
	// collection kinds the result preserves the listing order. Fetch
	// returns either a non-empty slice or an error, never both.
	Fetch(ctx context.Context, link string, kind LinkKind) ([]*Video, error)
}

// Video contains the metadata consumed by the sender. A Video is
// immutable once fetched: created on fetch, consumed once, discarded.
type Video struct {
	// ID is the YouTube video ID (e.g., "dQw4w9WgXcQ").
	ID string

	// Title is the video title. May be empty; the display layer
	// substitutes "Unknown Title".
	Title string

	// URL is the extractor's url field, when present.
	URL string

	// WebpageURL is the extractor's webpage_url field, when present.
	WebpageURL string

	// Thumbnail is the URL to the video thumbnail image, when present.
	Thumbnail string

	// Duration is the video length in seconds. Nil means the extractor
	// reported none; nil and zero are distinct.
	Duration *int64

	// UploadDate is the raw upload date, YYYYMMDD or YYYY-MM-DD.
	UploadDate string
}

// CanonicalURL returns the single authoritative link for this video:
// WebpageURL when set, else URL, else a synthesized youtu.be link.
func (v *Video) CanonicalURL() string {
	if v.WebpageURL != "" {
		return v.WebpageURL
	}
	if v.URL != "" {
		return v.URL
	}
	return "https://youtu.be/" + v.ID
}

// FetchError wraps errors with context about the fetch operation.
type FetchError struct {
	Source string // Source of error: "ytdlp", "api"
	Link   string // Link being fetched
	Err    error  // Underlying error
}

func (e *FetchError) Error() string {
	return "youtube: " + e.Source + " fetching " + e.Link + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

// progressf writes a user-facing progress line when a writer is set.
// Fetchers stay silent when no writer is wired in.
func progressf(w io.Writer, format string, args ...interface{}) {
	if w != nil {
		fmt.Fprintf(w, format, args...)
	}
}

// loggerOrDefault guards optional loggers.
func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}
