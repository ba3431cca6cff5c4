package youtube

import "regexp"

// LinkKind selects which link shape to validate and which fetch
// strategy to apply.
type LinkKind int

const (
	// LinkVideo is a single video link (watch?v= or the youtu.be short form).
	LinkVideo LinkKind = iota + 1
	// LinkPlaylist is a playlist link (playlist?list=).
	LinkPlaylist
	// LinkChannel is a channel link (channel/, c/, or user/).
	LinkChannel
)

// String returns the lowercase name used in prompts and logs.
func (k LinkKind) String() string {
	switch k {
	case LinkVideo:
		return "video"
	case LinkPlaylist:
		return "playlist"
	case LinkChannel:
		return "channel"
	}
	return "unknown"
}

// Link validation patterns. All three anchor at the start of the string
// but not at the end: trailing content after a valid prefix is accepted.
var (
	videoLinkRegex    = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com/watch\?v=|youtu\.be/)[\w-]+`)
	playlistLinkRegex = regexp.MustCompile(`^(https?://)?(www\.)?youtube\.com/playlist\?list=[\w-]+`)
	channelLinkRegex  = regexp.MustCompile(`^(https?://)?(www\.)?youtube\.com/(channel/|c/|user/)[\w-]+`)
)

// ValidateLink reports whether link matches the expected shape for the
// given kind. Unknown kinds never match. No side effects.
func ValidateLink(link string, kind LinkKind) bool {
	switch kind {
	case LinkVideo:
		return videoLinkRegex.MatchString(link)
	case LinkPlaylist:
		return playlistLinkRegex.MatchString(link)
	case LinkChannel:
		return channelLinkRegex.MatchString(link)
	}
	return false
}
