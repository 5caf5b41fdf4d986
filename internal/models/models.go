package models

// Source identifies which platform a track or playlist came from.
const (
	SourceYouTube = "youtube"
	SourceSpotify = "spotify"
)

// Track represents a music track from either platform.
//
// YouTube tracks typically carry only ID and Title; Spotify tracks populate
// all fields when matched.
type Track struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist,omitempty"`
	Album       string `json:"album,omitempty"`
	DurationMS  int64  `json:"duration_ms,omitempty"`
	ExternalURL string `json:"external_url,omitempty"`
	Source      string `json:"source"`
}

// Playlist represents a playlist from either platform.
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	OwnerID     string `json:"owner_id,omitempty"`
	OwnerName   string `json:"owner_name,omitempty"`
	TrackCount  int    `json:"track_count"`
	ExternalURL string `json:"external_url,omitempty"`
	Public      bool   `json:"public"`
	Source      string `json:"source"`
}
