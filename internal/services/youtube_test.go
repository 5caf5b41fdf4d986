package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"crossfade/internal/shared"
)

func TestYouTubeServiceGetPlaylistInfo(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/playlists" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if r.URL.Query().Get("key") != "test-key" {
				t.Error("expected API key on request")
			}
			if r.URL.Query().Get("id") != "PLabc" {
				t.Errorf("unexpected playlist id: %s", r.URL.Query().Get("id"))
			}

			json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{
						"snippet":        map[string]any{"title": "Road Trip", "channelTitle": "DJ Example"},
						"contentDetails": map[string]any{"itemCount": 42},
					},
				},
			})
		}))
		defer server.Close()

		service := NewYouTubeService(server.URL, "test-key", server.Client())

		playlist, err := service.GetPlaylistInfo(context.Background(), "PLabc")
		if err != nil {
			t.Fatalf("failed to get playlist info: %v", err)
		}

		if playlist.Name != "Road Trip" {
			t.Errorf("expected name Road Trip, got %s", playlist.Name)
		}

		if playlist.OwnerName != "DJ Example" {
			t.Errorf("expected owner DJ Example, got %s", playlist.OwnerName)
		}

		if playlist.TrackCount != 42 {
			t.Errorf("expected 42 tracks, got %d", playlist.TrackCount)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
		}))
		defer server.Close()

		service := NewYouTubeService(server.URL, "test-key", server.Client())

		_, err := service.GetPlaylistInfo(context.Background(), "PLmissing")
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "quotaExceeded"},
			})
		}))
		defer server.Close()

		service := NewYouTubeService(server.URL, "test-key", server.Client())

		_, err := service.GetPlaylistInfo(context.Background(), "PLabc")
		if err == nil {
			t.Fatal("expected an error")
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %T", err)
		}

		if apiErr.Status != http.StatusForbidden {
			t.Errorf("expected status 403, got %d", apiErr.Status)
		}

		if apiErr.Detail != "quotaExceeded" {
			t.Errorf("expected detail quotaExceeded, got %s", apiErr.Detail)
		}

		if !apiErr.ClientFault() {
			t.Error("403 should be a client fault")
		}
	})
}

func TestYouTubeServiceGetPlaylistTracks(t *testing.T) {
	t.Run("PaginatesUntilLastPage", func(t *testing.T) {
		pageSizes := []int{50, 50, 12}
		var requestedTokens []string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/playlistItems" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}

			token := r.URL.Query().Get("pageToken")
			requestedTokens = append(requestedTokens, token)

			page := len(requestedTokens) - 1
			items := make([]map[string]any, 0, pageSizes[page])
			for i := 0; i < pageSizes[page]; i++ {
				items = append(items, map[string]any{
					"snippet": map[string]any{
						"title":      fmt.Sprintf("Track %d-%d", page, i),
						"resourceId": map[string]any{"videoId": fmt.Sprintf("vid-%d-%d", page, i)},
					},
				})
			}

			response := map[string]any{"items": items}
			if page < len(pageSizes)-1 {
				response["nextPageToken"] = fmt.Sprintf("page-%d", page+1)
			}
			json.NewEncoder(w).Encode(response)
		}))
		defer server.Close()

		service := NewYouTubeService(server.URL, "test-key", server.Client())

		tracks, err := service.GetPlaylistTracks(context.Background(), "PLabc")
		if err != nil {
			t.Fatalf("failed to get playlist tracks: %v", err)
		}

		if len(tracks) != 112 {
			t.Errorf("expected 112 tracks, got %d", len(tracks))
		}

		if len(requestedTokens) != 3 {
			t.Fatalf("expected 3 page requests, got %d", len(requestedTokens))
		}

		if requestedTokens[0] != "" || requestedTokens[1] != "page-1" || requestedTokens[2] != "page-2" {
			t.Errorf("unexpected page token sequence: %v", requestedTokens)
		}

		// Listing order is preserved across page boundaries.
		if tracks[0].Title != "Track 0-0" || tracks[50].Title != "Track 1-0" || tracks[111].Title != "Track 2-11" {
			t.Errorf("tracks out of listing order: %s, %s, %s",
				tracks[0].Title, tracks[50].Title, tracks[111].Title)
		}
	})

	t.Run("ExcludesDeletedAndPrivateVideos", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{"snippet": map[string]any{"title": "Keep Me", "resourceId": map[string]any{"videoId": "v1"}}},
					{"snippet": map[string]any{"title": "Deleted video", "resourceId": map[string]any{"videoId": "v2"}}},
					{"snippet": map[string]any{"title": "Private video", "resourceId": map[string]any{"videoId": "v3"}}},
					{"snippet": map[string]any{"title": "Keep Me Too", "resourceId": map[string]any{"videoId": "v4"}}},
				},
			})
		}))
		defer server.Close()

		service := NewYouTubeService(server.URL, "test-key", server.Client())

		tracks, err := service.GetPlaylistTracks(context.Background(), "PLabc")
		if err != nil {
			t.Fatalf("failed to get playlist tracks: %v", err)
		}

		if len(tracks) != 2 {
			t.Fatalf("expected 2 tracks after exclusions, got %d", len(tracks))
		}

		if tracks[0].Title != "Keep Me" || tracks[1].Title != "Keep Me Too" {
			t.Errorf("unexpected tracks: %s, %s", tracks[0].Title, tracks[1].Title)
		}
	})

	t.Run("EmptyPlaylist", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
		}))
		defer server.Close()

		service := NewYouTubeService(server.URL, "test-key", server.Client())

		tracks, err := service.GetPlaylistTracks(context.Background(), "PLempty")
		if err != nil {
			t.Fatalf("failed to get playlist tracks: %v", err)
		}

		if len(tracks) != 0 {
			t.Errorf("expected no tracks, got %d", len(tracks))
		}
	})
}
