// Spotify Web API client (destination catalog)
//
// Response shapes follow https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"crossfade/internal/models"
	"crossfade/internal/shared"
)

const defaultSpotifyBaseURL = "https://api.spotify.com/v1"

// maxTracksPerRequest is the largest batch the playlist tracks endpoint
// accepts in a single call.
const maxTracksPerRequest = 100

// SpotifyService searches tracks and writes playlists on the Spotify Web API.
//
// Access tokens are threaded explicitly into every call that needs one; the
// client holds no ambient credential state.
type SpotifyService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewSpotifyService creates a new Spotify catalog client.
func NewSpotifyService(baseURL string, client *http.Client, logger *log.Logger) *SpotifyService {
	if baseURL == "" {
		baseURL = defaultSpotifyBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &SpotifyService{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(5), 1),
		logger:     logger,
	}
}

type spotifyTrack struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name string `json:"name"`
	} `json:"album"`
	DurationMS   int64 `json:"duration_ms"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

type spotifySearchResponse struct {
	Tracks struct {
		Items []spotifyTrack `json:"items"`
	} `json:"tracks"`
}

type spotifyPlaylistResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Owner       struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
	} `json:"owner"`
	Public       bool `json:"public"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

// SpotifyUser represents the authenticated user's profile.
type SpotifyUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

// SearchTrack issues a top-1 track lookup for the given query.
//
// Returns (nil, nil) when the catalog has no match AND when the request
// itself fails. A missed match degrades gracefully to a skip and never
// aborts a conversion. Context cancellation is the only error surfaced.
func (s *SpotifyService) SearchTrack(ctx context.Context, query, token string) (*models.Track, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", "1")

	var response spotifySearchResponse
	if err := s.doRequest(ctx, http.MethodGet, "/search?"+params.Encode(), token, nil, &response); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Warn("spotify search failed", "query", query, "err", err)
		return nil, nil
	}

	if len(response.Tracks.Items) == 0 {
		return nil, nil
	}

	item := response.Tracks.Items[0]
	track := &models.Track{
		ID:          item.ID,
		Title:       item.Name,
		Album:       item.Album.Name,
		DurationMS:  item.DurationMS,
		ExternalURL: item.ExternalURLs.Spotify,
		Source:      models.SourceSpotify,
	}
	if len(item.Artists) > 0 {
		track.Artist = item.Artists[0].Name
	}

	return track, nil
}

// CreatePlaylist creates a playlist for the given account.
//
// Fails with [shared.ErrPlaylistCreate] when the API rejects creation; this
// is fatal to a conversion since nothing downstream can proceed without a
// target container.
func (s *SpotifyService) CreatePlaylist(ctx context.Context, accountID, name, description string, public bool, token string) (*models.Playlist, error) {
	body := map[string]any{
		"name":        name,
		"description": description,
		"public":      public,
	}

	endpoint := fmt.Sprintf("/users/%s/playlists", url.PathEscape(accountID))

	var response spotifyPlaylistResponse
	if err := s.doRequest(ctx, http.MethodPost, endpoint, token, body, &response); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrPlaylistCreate, err)
	}

	return &models.Playlist{
		ID:          response.ID,
		Name:        response.Name,
		Description: response.Description,
		OwnerID:     response.Owner.ID,
		OwnerName:   response.Owner.DisplayName,
		ExternalURL: response.ExternalURLs.Spotify,
		Public:      response.Public,
		Source:      models.SourceSpotify,
	}, nil
}

// AddTracksToPlaylist appends track URIs to a playlist in batches.
//
// The input is partitioned into consecutive chunks of at most
// maxTracksPerRequest, submitted sequentially in original order, so the
// playlist's final order is the concatenation of chunks. The first failed
// chunk aborts the operation; chunks already appended are not rolled back.
func (s *SpotifyService) AddTracksToPlaylist(ctx context.Context, playlistID string, uris []string, token string) error {
	endpoint := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))

	for start := 0; start < len(uris); start += maxTracksPerRequest {
		end := min(start+maxTracksPerRequest, len(uris))
		batch := uris[start:end]

		body := map[string]any{"uris": batch}
		if err := s.doRequest(ctx, http.MethodPost, endpoint, token, body, nil); err != nil {
			return fmt.Errorf("%w: batch starting at %d: %v", shared.ErrTrackAppend, start, err)
		}

		s.logger.Debug("appended batch to playlist", "playlist", playlistID, "count", len(batch))
	}

	return nil
}

// UserProfile retrieves the authenticated user's profile.
func (s *SpotifyService) UserProfile(ctx context.Context, token string) (*SpotifyUser, error) {
	var user SpotifyUser
	if err := s.doRequest(ctx, http.MethodGet, "/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// TrackURI converts a track ID to the URI form the playlist endpoints expect.
func (s *SpotifyService) TrackURI(trackID string) string {
	return "spotify:track:" + trackID
}

// doRequest performs a rate-limited, bearer-authenticated request against the
// Spotify Web API.
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint, token string, body, result any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Service: models.SourceSpotify, Status: resp.StatusCode}
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			apiErr.Detail = errResp.Error.Message
		}
		return apiErr
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
