package auth

import (
	"golang.org/x/oauth2"

	"crossfade/internal/shared"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
)

// NewSpotifyOAuthConfig builds the [oauth2.Config] for the Spotify
// authorization-code flow with the scopes playlist writes require.
func NewSpotifyOAuthConfig(cfg shared.SpotifyConfig) *oauth2.Config {
	redirectURI := cfg.RedirectURI
	if redirectURI == "" {
		redirectURI = "http://localhost:8080/callback"
	}

	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			"user-read-private",
			"user-read-email",
			"playlist-modify-public",
			"playlist-modify-private",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}
}

// GenerateState returns a random state token for CSRF protection during the
// authorization flow.
func GenerateState() string {
	return shared.GenerateID()
}
