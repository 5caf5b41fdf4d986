package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed    = fmt.Errorf("authentication failed")
	ErrNoAccessToken = fmt.Errorf("no valid access token")
	ErrTokenExpired  = fmt.Errorf("access token expired")
	ErrInvalidState  = fmt.Errorf("invalid oauth state parameter")

	// API and catalog errors
	ErrAPIRequest       = fmt.Errorf("API request failed")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")
	ErrPlaylistCreate   = fmt.Errorf("playlist creation failed")
	ErrTrackAppend      = fmt.Errorf("failed to add tracks to playlist")

	// Conversion errors
	ErrJobNotFound        = fmt.Errorf("conversion not found")
	ErrInvalidPlaylistURL = fmt.Errorf("invalid YouTube playlist URL")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
