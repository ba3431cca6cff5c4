package youtube

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	ytapi "google.golang.org/api/youtube/v3"
)

func TestNewAPIFetcher(t *testing.T) {
	if _, err := NewAPIFetcher(""); err == nil {
		t.Error("NewAPIFetcher(\"\") error = nil, want error")
	}

	fetcher, err := NewAPIFetcher("test-api-key")
	if err != nil {
		t.Fatalf("NewAPIFetcher() error = %v", err)
	}
	if fetcher.service == nil {
		t.Error("NewAPIFetcher() service is nil")
	}
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url with params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"short form", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"shorts form", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"id too short", "https://youtu.be/abc", ""},
		{"no id", "https://www.youtube.com/watch", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractVideoID(tt.link); got != tt.want {
				t.Errorf("extractVideoID(%q) = %q, want %q", tt.link, got, tt.want)
			}
		})
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{"playlist url", "https://www.youtube.com/playlist?list=PLabc-123_XY", "PLabc-123_XY"},
		{"list as later param", "https://www.youtube.com/watch?v=abc&list=PL456", "PL456"},
		{"no list param", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractPlaylistID(tt.link); got != tt.want {
				t.Errorf("extractPlaylistID(%q) = %q, want %q", tt.link, got, tt.want)
			}
		})
	}
}

func TestPathSegmentAfter(t *testing.T) {
	tests := []struct {
		name   string
		link   string
		marker string
		want   string
	}{
		{"segment at end", "https://www.youtube.com/user/SomeUser", "/user/", "SomeUser"},
		{"segment before path", "https://www.youtube.com/user/SomeUser/videos", "/user/", "SomeUser"},
		{"segment before query", "https://www.youtube.com/c/SomeName?tab=videos", "/c/", "SomeName"},
		{"marker absent", "https://www.youtube.com/channel/UCabc", "/user/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pathSegmentAfter(tt.link, tt.marker); got != tt.want {
				t.Errorf("pathSegmentAfter(%q, %q) = %q, want %q", tt.link, tt.marker, got, tt.want)
			}
		})
	}
}

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		raw    string
		want   int64
		wantOK bool
	}{
		{"PT45S", 45, true},
		{"PT2M5S", 125, true},
		{"PT10M", 600, true},
		{"PT1H2M5S", 3725, true},
		{"P1DT2H", 93600, true},
		{"P0D", 0, true},
		{"", 0, false},
		{"P", 0, false},
		{"PT", 0, false},
		{"garbage", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := parseISODuration(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("parseISODuration(%q) = (%d, %v), want (%d, %v)",
					tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestBestAPIThumbnail(t *testing.T) {
	tests := []struct {
		name   string
		thumbs *ytapi.ThumbnailDetails
		want   string
	}{
		{"nil details", nil, ""},
		{"no candidates", &ytapi.ThumbnailDetails{}, ""},
		{
			name: "default only",
			thumbs: &ytapi.ThumbnailDetails{
				Default: &ytapi.Thumbnail{Url: "default.jpg", Width: 120, Height: 90},
			},
			want: "default.jpg",
		},
		{
			name: "largest area wins",
			thumbs: &ytapi.ThumbnailDetails{
				Default: &ytapi.Thumbnail{Url: "default.jpg", Width: 120, Height: 90},
				Medium:  &ytapi.Thumbnail{Url: "medium.jpg", Width: 320, Height: 180},
				High:    &ytapi.Thumbnail{Url: "high.jpg", Width: 480, Height: 360},
			},
			want: "high.jpg",
		},
		{
			name: "maxres preferred",
			thumbs: &ytapi.ThumbnailDetails{
				High:   &ytapi.Thumbnail{Url: "high.jpg", Width: 480, Height: 360},
				Maxres: &ytapi.Thumbnail{Url: "maxres.jpg", Width: 1280, Height: 720},
			},
			want: "maxres.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bestAPIThumbnail(tt.thumbs); got != tt.want {
				t.Errorf("bestAPIThumbnail() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVideoFromAPIItem(t *testing.T) {
	item := &ytapi.Video{
		Id: "dQw4w9WgXcQ",
		Snippet: &ytapi.VideoSnippet{
			Title:       "Test Video",
			PublishedAt: "2023-08-01T12:00:00Z",
			Thumbnails: &ytapi.ThumbnailDetails{
				High: &ytapi.Thumbnail{Url: "high.jpg", Width: 480, Height: 360},
			},
		},
		ContentDetails: &ytapi.VideoContentDetails{
			Duration: "PT2M5S",
		},
	}

	want := &Video{
		ID:         "dQw4w9WgXcQ",
		Title:      "Test Video",
		WebpageURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Thumbnail:  "high.jpg",
		Duration:   int64p(125),
		UploadDate: "2023-08-01",
	}

	if diff := cmp.Diff(want, videoFromAPIItem(item)); diff != "" {
		t.Errorf("videoFromAPIItem() mismatch (-want +got):\n%s", diff)
	}
}

func TestVideoFromAPIItemSparse(t *testing.T) {
	item := &ytapi.Video{Id: "abc123xyz00"}

	want := &Video{
		ID:         "abc123xyz00",
		WebpageURL: "https://www.youtube.com/watch?v=abc123xyz00",
	}

	if diff := cmp.Diff(want, videoFromAPIItem(item)); diff != "" {
		t.Errorf("videoFromAPIItem() mismatch (-want +got):\n%s", diff)
	}
}
