package youtube

// SampleVideoJSON is a sample yt-dlp JSON dump for a single video
const SampleVideoJSON = `{
  "id": "dQw4w9WgXcQ",
  "title": "Test Video",
  "webpage_url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
  "thumbnail": "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
  "duration": 212,
  "upload_date": "20200101",
  "uploader": "Test Uploader",
  "view_count": 1000000
}`

// SampleListingJSON is a sample yt-dlp flat listing for a small playlist.
// Flat entries carry ids and urls only; full metadata comes from the
// per-entry refetch.
const SampleListingJSON = `{
  "id": "PLtestplaylist",
  "title": "Test Playlist",
  "entries": [
    {"id": "vid1", "url": "vid1", "title": "First"},
    {"id": "vid2", "url": "vid2", "title": "Second"},
    {"id": "vid3", "url": "vid3", "title": "Third"},
    {"id": "vid4", "url": "vid4", "title": "Fourth"},
    {"id": "vid5", "url": "vid5", "title": "Fifth"}
  ]
}`
