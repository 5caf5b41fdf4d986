// YouTube Data API v3 client (source catalog)
//
// Response shapes follow https://developers.google.com/youtube/v3/docs
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"crossfade/internal/models"
	"crossfade/internal/shared"
)

const defaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"

// youtubePageSize is the maximum page size the playlistItems endpoint accepts.
const youtubePageSize = 50

// Titles YouTube substitutes for entries that can no longer be resolved.
// Such items cannot be matched or displayed and are excluded from results.
const (
	deletedVideoTitle = "Deleted video"
	privateVideoTitle = "Private video"
)

// YouTubeService fetches playlist metadata and tracks from the YouTube Data API.
//
// All requests carry the configured API key; outbound calls pass through a
// shared rate limiter.
type YouTubeService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewYouTubeService creates a new YouTube catalog client.
func NewYouTubeService(baseURL, apiKey string, client *http.Client) *YouTubeService {
	if baseURL == "" {
		baseURL = defaultYouTubeBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &YouTubeService{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(5), 1),
	}
}

type youtubePlaylistResponse struct {
	Items []struct {
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
		ContentDetails struct {
			ItemCount int `json:"itemCount"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type youtubePlaylistItemsResponse struct {
	Items []struct {
		Snippet struct {
			Title      string `json:"title"`
			ResourceID struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		} `json:"snippet"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

// GetPlaylistInfo retrieves playlist metadata by ID.
//
// Fails with [shared.ErrPlaylistNotFound] when the playlist is absent or private.
func (y *YouTubeService) GetPlaylistInfo(ctx context.Context, playlistID string) (*models.Playlist, error) {
	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("id", playlistID)

	var response youtubePlaylistResponse
	if err := y.doRequest(ctx, "/playlists", params, &response); err != nil {
		return nil, err
	}

	if len(response.Items) == 0 {
		return nil, fmt.Errorf("%w: %s (missing or private)", shared.ErrPlaylistNotFound, playlistID)
	}

	item := response.Items[0]
	return &models.Playlist{
		ID:         playlistID,
		Name:       item.Snippet.Title,
		OwnerName:  item.Snippet.ChannelTitle,
		TrackCount: item.ContentDetails.ItemCount,
		Source:     models.SourceYouTube,
	}, nil
}

// GetPlaylistTracks retrieves all videos in a playlist in listing order.
//
// Pages through the playlistItems endpoint, following nextPageToken until a
// response omits one. Deleted and private entries are excluded.
func (y *YouTubeService) GetPlaylistTracks(ctx context.Context, playlistID string) ([]models.Track, error) {
	var tracks []models.Track
	pageToken := ""

	for {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("playlistId", playlistID)
		params.Set("maxResults", fmt.Sprintf("%d", youtubePageSize))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var response youtubePlaylistItemsResponse
		if err := y.doRequest(ctx, "/playlistItems", params, &response); err != nil {
			return nil, fmt.Errorf("failed to fetch playlist items: %w", err)
		}

		for _, item := range response.Items {
			title := item.Snippet.Title
			if title == deletedVideoTitle || title == privateVideoTitle {
				continue
			}

			tracks = append(tracks, models.Track{
				ID:     item.Snippet.ResourceID.VideoID,
				Title:  title,
				Source: models.SourceYouTube,
			})
		}

		if response.NextPageToken == "" {
			break
		}
		pageToken = response.NextPageToken
	}

	return tracks, nil
}

// doRequest performs a rate-limited GET against the YouTube Data API.
func (y *YouTubeService) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	if err := y.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	params.Set("key", y.apiKey)
	apiURL := y.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Service: models.SourceYouTube, Status: resp.StatusCode}
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

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
