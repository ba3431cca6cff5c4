package telegram

import (
	"fmt"
	"strings"
	"time"

	"linksend/youtube"
)

// FormatDuration renders a duration in whole seconds as H:MM:SS, or
// M:SS when there is no hour part (minutes unpadded, seconds padded).
// A nil duration renders as "Unknown".
func FormatDuration(seconds *int64) string {
	if seconds == nil {
		return "Unknown"
	}

	h := *seconds / 3600
	m := (*seconds % 3600) / 60
	s := *seconds % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatDate normalizes a raw upload date to YYYY-MM-DD. Extractors
// report dates as either 20230801 or 2023-08-01; anything else,
// including an empty string, renders as "Unknown".
func FormatDate(raw string) string {
	layout := "20060102"
	if strings.Contains(raw, "-") {
		layout = "2006-01-02"
	}

	t, err := time.Parse(layout, raw)
	if err != nil {
		return "Unknown"
	}
	return t.Format("2006-01-02")
}

// Caption builds the four-line summary sent for one video: title,
// canonical link, duration, upload date.
func Caption(v *youtube.Video) string {
	title := v.Title
	if title == "" {
		title = "Unknown Title"
	}

	return fmt.Sprintf("🎬 Title: %s\n🔗 Link: %s\n⏱ Duration: %s\n📅 Date: %s",
		title, v.CanonicalURL(), FormatDuration(v.Duration), FormatDate(v.UploadDate))
}
