package youtube

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

// APIFetcher implements Fetcher using the YouTube Data API v3. It is
// selected when an API key is configured and mirrors the yt-dlp
// fetcher's two-phase design: a shallow id listing, then full metadata
// in batches, skipping ids the API omits.
type APIFetcher struct {
	service *ytapi.Service

	// Progress receives user-facing progress lines when non-nil.
	Progress io.Writer

	// Logger receives diagnostic records when non-nil.
	Logger *slog.Logger
}

// NewAPIFetcher creates a Data API backed metadata fetcher.
func NewAPIFetcher(apiKey string) (*APIFetcher, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}

	service, err := ytapi.NewService(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &APIFetcher{service: service}, nil
}

var (
	watchIDRegex    = regexp.MustCompile(`(?:v=|/shorts/|youtu\.be/)([0-9A-Za-z_-]{11})`)
	playlistIDRegex = regexp.MustCompile(`[?&]list=([\w-]+)`)
	channelIDRegex  = regexp.MustCompile(`UC[0-9A-Za-z_-]{22}`)
)

// Fetch resolves the link into video records per the kind's strategy.
func (a *APIFetcher) Fetch(ctx context.Context, link string, kind LinkKind) ([]*Video, error) {
	progressf(a.Progress, "🔎 Fetching videos from given link...\n")

	switch kind {
	case LinkVideo:
		return a.fetchVideo(ctx, link)
	case LinkPlaylist:
		id := extractPlaylistID(link)
		if id == "" {
			return nil, &FetchError{Source: "api", Link: link, Err: ErrNoVideos}
		}
		return a.fetchPlaylist(ctx, link, id, kind)
	case LinkChannel:
		return a.fetchChannel(ctx, link)
	}
	return nil, &FetchError{Source: "api", Link: link, Err: ErrInvalidLink}
}

func (a *APIFetcher) fetchVideo(ctx context.Context, link string) ([]*Video, error) {
	id := extractVideoID(link)
	if id == "" {
		return nil, &FetchError{Source: "api", Link: link, Err: ErrInvalidLink}
	}

	videos, err := a.listVideos(ctx, []string{id})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		loggerOrDefault(a.Logger).Debug("videos.list failed",
			slog.String("link", link), slog.Any("err", err))
		return nil, &FetchError{Source: "api", Link: link, Err: ErrInvalidLink}
	}
	if len(videos) == 0 {
		return nil, &FetchError{Source: "api", Link: link, Err: ErrNoVideos}
	}
	return videos, nil
}

func (a *APIFetcher) fetchPlaylist(ctx context.Context, link, playlistID string, kind LinkKind) ([]*Video, error) {
	ids, err := a.listPlaylistItemIDs(ctx, playlistID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		loggerOrDefault(a.Logger).Debug("playlistItems.list failed",
			slog.String("link", link), slog.Any("err", err))
		return nil, &FetchError{Source: "api", Link: link, Err: ErrNoVideos}
	}
	if len(ids) == 0 {
		return nil, &FetchError{Source: "api", Link: link, Err: ErrNoVideos}
	}

	progressf(a.Progress, "📂 Found %d videos in %s\n", len(ids), kind)

	videos, err := a.listVideos(ctx, ids)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &FetchError{Source: "api", Link: link, Err: ErrNoVideos}
	}
	if len(videos) == 0 {
		return nil, &FetchError{Source: "api", Link: link, Err: ErrNoVideos}
	}
	return videos, nil
}

func (a *APIFetcher) fetchChannel(ctx context.Context, link string) ([]*Video, error) {
	channelID, err := a.resolveChannelID(ctx, link)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		loggerOrDefault(a.Logger).Debug("channel resolution failed",
			slog.String("link", link), slog.Any("err", err))
		return nil, &FetchError{Source: "api", Link: link, Err: ErrNoVideos}
	}

	uploads, err := a.uploadsPlaylistID(ctx, channelID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &FetchError{Source: "api", Link: link, Err: ErrNoVideos}
	}

	return a.fetchPlaylist(ctx, link, uploads, LinkChannel)
}

// listPlaylistItemIDs pages through the playlist for the ordered video
// ids. This is the shallow phase: one unit of listing per 50 entries,
// full metadata deferred to listVideos.
func (a *APIFetcher) listPlaylistItemIDs(ctx context.Context, playlistID string) ([]string, error) {
	var ids []string
	pageToken := ""

	for {
		call := a.service.PlaylistItems.
			List([]string{"contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(50).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("playlistItems.list: %w", err)
		}

		for _, item := range resp.Items {
			if item.ContentDetails != nil && item.ContentDetails.VideoId != "" {
				ids = append(ids, item.ContentDetails.VideoId)
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			return ids, nil
		}
	}
}

// listVideos resolves full metadata for the ids, 50 per call,
// preserving input order and skipping ids the API omits.
func (a *APIFetcher) listVideos(ctx context.Context, ids []string) ([]*Video, error) {
	byID := make(map[string]*Video, len(ids))

	for start := 0; start < len(ids); start += 50 {
		end := start + 50
		if end > len(ids) {
			end = len(ids)
		}

		resp, err := a.service.Videos.
			List([]string{"snippet", "contentDetails"}).
			Id(strings.Join(ids[start:end], ",")).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("videos.list: %w", err)
		}

		for _, item := range resp.Items {
			byID[item.Id] = videoFromAPIItem(item)
		}
	}

	videos := make([]*Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			videos = append(videos, v)
		}
	}
	return videos, nil
}

// resolveChannelID turns a /channel/, /user/ or /c/ link into a
// channel id.
func (a *APIFetcher) resolveChannelID(ctx context.Context, link string) (string, error) {
	if id := channelIDRegex.FindString(link); id != "" {
		return id, nil
	}

	if name := pathSegmentAfter(link, "/user/"); name != "" {
		resp, err := a.service.Channels.List([]string{"id"}).ForUsername(name).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("channels.list: %w", err)
		}
		if len(resp.Items) == 0 {
			return "", fmt.Errorf("no channel for username %q", name)
		}
		return resp.Items[0].Id, nil
	}

	// Custom /c/ URLs have no direct lookup; resolve via search.
	if name := pathSegmentAfter(link, "/c/"); name != "" {
		resp, err := a.service.Search.List([]string{"snippet"}).
			Q(name).Type("channel").MaxResults(1).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("search.list: %w", err)
		}
		if len(resp.Items) == 0 || resp.Items[0].Id == nil || resp.Items[0].Id.ChannelId == "" {
			return "", fmt.Errorf("no channel found for %q", name)
		}
		return resp.Items[0].Id.ChannelId, nil
	}

	return "", fmt.Errorf("unrecognized channel link")
}

// uploadsPlaylistID returns the channel's uploads playlist, which
// lists every public video.
func (a *APIFetcher) uploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	resp, err := a.service.Channels.List([]string{"contentDetails"}).Id(channelID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("channels.list: %w", err)
	}
	if len(resp.Items) == 0 || resp.Items[0].ContentDetails == nil ||
		resp.Items[0].ContentDetails.RelatedPlaylists == nil {
		return "", fmt.Errorf("channel %s has no uploads playlist", channelID)
	}
	return resp.Items[0].ContentDetails.RelatedPlaylists.Uploads, nil
}

// videoFromAPIItem maps an API video resource onto the sender's record.
func videoFromAPIItem(item *ytapi.Video) *Video {
	v := &Video{
		ID:         item.Id,
		WebpageURL: "https://www.youtube.com/watch?v=" + item.Id,
	}

	if item.Snippet != nil {
		v.Title = item.Snippet.Title
		v.Thumbnail = bestAPIThumbnail(item.Snippet.Thumbnails)
		// publishedAt is RFC3339; the caption layer only needs the date.
		if len(item.Snippet.PublishedAt) >= 10 {
			v.UploadDate = item.Snippet.PublishedAt[:10]
		}
	}
	if item.ContentDetails != nil {
		if secs, ok := parseISODuration(item.ContentDetails.Duration); ok {
			v.Duration = &secs
		}
	}

	return v
}

// bestAPIThumbnail returns the highest-resolution thumbnail offered.
func bestAPIThumbnail(t *ytapi.ThumbnailDetails) string {
	if t == nil {
		return ""
	}

	var best *ytapi.Thumbnail
	for _, cand := range []*ytapi.Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if cand == nil {
			continue
		}
		if best == nil || cand.Width*cand.Height > best.Width*best.Height {
			best = cand
		}
	}
	if best == nil {
		return ""
	}
	return best.Url
}

// extractVideoID pulls the 11-character video id out of a video link.
func extractVideoID(link string) string {
	m := watchIDRegex.FindStringSubmatch(link)
	if m == nil {
		return ""
	}
	return m[1]
}

// extractPlaylistID pulls the list parameter out of a playlist link.
func extractPlaylistID(link string) string {
	m := playlistIDRegex.FindStringSubmatch(link)
	if m == nil {
		return ""
	}
	return m[1]
}

// pathSegmentAfter extracts the path segment following marker, cut at
// the next separator.
func pathSegmentAfter(link, marker string) string {
	idx := strings.Index(link, marker)
	if idx < 0 {
		return ""
	}
	rest := link[idx+len(marker):]
	if cut := strings.IndexAny(rest, "/?&#"); cut >= 0 {
		rest = rest[:cut]
	}
	return rest
}

var isoDurationRegex = regexp.MustCompile(`^P(?:(\d+)D)?T?(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// parseISODuration converts the API's ISO-8601 duration form
// (PT1H2M5S, P1DT2H, P0D) into seconds.
func parseISODuration(raw string) (int64, bool) {
	if raw == "" || raw == "P" || raw == "PT" {
		return 0, false
	}
	m := isoDurationRegex.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}

	var total int64
	factors := []int64{86400, 3600, 60, 1}
	for i, f := range factors {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			return 0, false
		}
		total += n * f
	}
	return total, true
}
