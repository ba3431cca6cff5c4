package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

const (
	defaultYtdlpPath    = "yt-dlp"
	defaultFetchTimeout = 5 * time.Minute
)

// YtdlpFetcher implements Fetcher using yt-dlp as a subprocess.
// Collection links resolve in two phases: a flat listing for the entry
// ids, then a full metadata fetch per entry. Entries whose second
// phase fails are skipped, never retried.
type YtdlpFetcher struct {
	// Path is the path to the yt-dlp executable. Defaults to "yt-dlp".
	Path string

	// Timeout is the maximum time for a single yt-dlp invocation.
	// Defaults to 5 minutes.
	Timeout time.Duration

	// Progress receives user-facing progress lines when non-nil.
	Progress io.Writer

	// Logger receives diagnostic records when non-nil.
	Logger *slog.Logger
}

// NewYtdlpFetcher creates a yt-dlp based metadata fetcher with defaults.
func NewYtdlpFetcher() *YtdlpFetcher {
	return &YtdlpFetcher{
		Path:    defaultYtdlpPath,
		Timeout: defaultFetchTimeout,
	}
}

// Fetch resolves the link into video records per the kind's strategy.
func (y *YtdlpFetcher) Fetch(ctx context.Context, link string, kind LinkKind) ([]*Video, error) {
	if err := y.checkInstalled(ctx); err != nil {
		return nil, err
	}

	progressf(y.Progress, "🔎 Fetching videos from given link...\n")

	if kind == LinkVideo {
		return y.fetchSingle(ctx, link)
	}
	return y.fetchCollection(ctx, link, kind)
}

// fetchSingle runs one full extraction for a video link.
func (y *YtdlpFetcher) fetchSingle(ctx context.Context, link string) ([]*Video, error) {
	out, err := y.run(ctx, append(baseArgs(), link))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		loggerOrDefault(y.Logger).Debug("yt-dlp single fetch failed",
			slog.String("link", link), slog.Any("err", err))
		return nil, &FetchError{Source: "ytdlp", Link: link, Err: ErrInvalidLink}
	}

	raw, err := decodeRecord(out)
	if err != nil {
		return nil, &FetchError{Source: "ytdlp", Link: link, Err: ErrInvalidLink}
	}
	// yt-dlp prints "null" when ignored errors swallowed the whole
	// extraction; that decodes to a nil map.
	if raw == nil {
		return nil, &FetchError{Source: "ytdlp", Link: link, Err: ErrNoVideos}
	}
	if _, ok := raw["title"]; !ok {
		return nil, &FetchError{Source: "ytdlp", Link: link, Err: ErrNoVideos}
	}

	return []*Video{videoFromRecord(raw)}, nil
}

// fetchCollection lists the playlist or channel flat, then refetches
// each entry for full metadata, preserving listing order.
func (y *YtdlpFetcher) fetchCollection(ctx context.Context, link string, kind LinkKind) ([]*Video, error) {
	out, err := y.run(ctx, append(baseArgs(), "--flat-playlist", link))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		loggerOrDefault(y.Logger).Debug("yt-dlp listing failed",
			slog.String("link", link), slog.Any("err", err))
		return nil, &FetchError{Source: "ytdlp", Link: link, Err: ErrNoVideos}
	}

	var listing ytdlpListing
	if err := json.Unmarshal(out, &listing); err != nil {
		return nil, &FetchError{Source: "ytdlp", Link: link, Err: ErrNoVideos}
	}
	if len(listing.Entries) == 0 {
		return nil, &FetchError{Source: "ytdlp", Link: link, Err: ErrNoVideos}
	}

	progressf(y.Progress, "📂 Found %d videos in %s\n", len(listing.Entries), kind)

	videos := make([]*Video, 0, len(listing.Entries))
	for _, entry := range listing.Entries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		entryURL := entry.videoURL()
		if entryURL == "" {
			continue
		}

		out, err := y.run(ctx, append(baseArgs(), entryURL))
		if err != nil {
			loggerOrDefault(y.Logger).Debug("yt-dlp entry fetch failed, skipping",
				slog.String("url", entryURL), slog.Any("err", err))
			continue
		}
		raw, err := decodeRecord(out)
		if err != nil || raw == nil {
			loggerOrDefault(y.Logger).Debug("yt-dlp entry unparseable, skipping",
				slog.String("url", entryURL))
			continue
		}
		videos = append(videos, videoFromRecord(raw))
	}

	if len(videos) == 0 {
		return nil, &FetchError{Source: "ytdlp", Link: link, Err: ErrNoVideos}
	}
	return videos, nil
}

// checkInstalled verifies that yt-dlp is available.
func (y *YtdlpFetcher) checkInstalled(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, y.path(), "--version")
	if err := cmd.Run(); err != nil {
		return ErrYtdlpNotInstalled
	}
	return nil
}

// run executes yt-dlp with the given arguments and returns its stdout.
func (y *YtdlpFetcher) run(ctx context.Context, args []string) ([]byte, error) {
	timeout := y.Timeout
	if timeout == 0 {
		timeout = defaultFetchTimeout
	}
	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, y.path(), args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if cmdCtx.Err() != nil {
			return nil, cmdCtx.Err()
		}
		return nil, fmt.Errorf("yt-dlp failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return stdout.Bytes(), nil
}

func (y *YtdlpFetcher) path() string {
	if y.Path != "" {
		return y.Path
	}
	return defaultYtdlpPath
}

// baseArgs returns the flags shared by both phases, mirroring the
// extractor options the sender has always used: JSON dump, quiet,
// metadata only, individual errors ignored, certificate checks off.
func baseArgs() []string {
	return []string{
		"-J",
		"--quiet",
		"--no-warnings",
		"--skip-download",
		"--ignore-errors",
		"--no-check-certificates",
	}
}

// ytdlpListing is yt-dlp's JSON shape for a flat playlist or channel
// listing. Flat entries carry ids and urls, not full metadata.
type ytdlpListing struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Entries []ytdlpEntry `json:"entries"`
}

type ytdlpEntry struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// videoURL derives the per-entry URL refetched in phase two, composing
// the url field when present, else the id. Entries with neither are
// skipped by returning "".
func (e ytdlpEntry) videoURL() string {
	if e.URL != "" {
		return "https://youtu.be/" + e.URL
	}
	if e.ID != "" {
		return "https://youtu.be/" + e.ID
	}
	return ""
}

// decodeRecord parses one full metadata record. yt-dlp's "null" output
// decodes to a nil map without error.
func decodeRecord(data []byte) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse yt-dlp output: %w", err)
	}
	return raw, nil
}

// videoFromRecord extracts the fields the sender consumes from a raw
// yt-dlp record. Missing or mistyped fields stay at their zero values;
// duration is kept as a pointer so absent and zero stay distinct.
func videoFromRecord(raw map[string]interface{}) *Video {
	v := &Video{}

	if id, ok := raw["id"].(string); ok {
		v.ID = id
	}
	if title, ok := raw["title"].(string); ok {
		v.Title = title
	}
	if u, ok := raw["url"].(string); ok {
		v.URL = u
	}
	if wu, ok := raw["webpage_url"].(string); ok {
		v.WebpageURL = wu
	}
	if thumb, ok := raw["thumbnail"].(string); ok {
		v.Thumbnail = thumb
	}
	if dur, ok := raw["duration"].(float64); ok {
		secs := int64(dur)
		v.Duration = &secs
	}
	if date, ok := raw["upload_date"].(string); ok {
		v.UploadDate = date
	}

	return v
}
