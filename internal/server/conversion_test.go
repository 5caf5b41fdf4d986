package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crossfade/internal/models"
	"crossfade/internal/shared"
)

// fakeConverter is a canned ConversionStarter for handler tests.
type fakeConverter struct {
	initiateID  string
	initiateErr error
	job         *models.ConversionJob
	statusErr   error
	jobs        []*models.ConversionJob
	listErr     error

	lastRequest models.ConversionRequest
}

func (f *fakeConverter) Initiate(ctx context.Context, req models.ConversionRequest) (string, error) {
	f.lastRequest = req
	return f.initiateID, f.initiateErr
}

func (f *fakeConverter) Status(ctx context.Context, id string) (*models.ConversionJob, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return f.job, nil
}

func (f *fakeConverter) ListJobs(ctx context.Context, accountID string) ([]*models.ConversionJob, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.jobs, nil
}

func newTestRouter(converter *fakeConverter) *BasicRouter {
	router := NewBasicRouter()
	router.Handler(NewConversionHandler(converter, shared.NewLogger(nil)))
	router.Handler(&HealthHandler{})
	return router
}

func TestConversionHandlerInitiate(t *testing.T) {
	t.Run("Accepted", func(t *testing.T) {
		converter := &fakeConverter{initiateID: "conv-1"}
		router := newTestRouter(converter)

		body := `{"youtube_playlist_url": "https://www.youtube.com/playlist?list=PLabc", "spotify_user_id": "user-1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader(body))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d (%s)", rec.Code, rec.Body.String())
		}

		var response map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if response["conversion_id"] != "conv-1" {
			t.Errorf("expected conversion_id conv-1, got %s", response["conversion_id"])
		}

		if response["status"] != string(models.StatusPending) {
			t.Errorf("expected status %s, got %s", models.StatusPending, response["status"])
		}

		if converter.lastRequest.AccountID != "user-1" {
			t.Errorf("request not forwarded: %+v", converter.lastRequest)
		}
	})

	t.Run("MissingFields", func(t *testing.T) {
		router := newTestRouter(&fakeConverter{})

		req := httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		router := newTestRouter(&fakeConverter{})

		req := httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader(`{not json`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("StoreFailure", func(t *testing.T) {
		converter := &fakeConverter{initiateErr: errors.New("disk full")}
		router := newTestRouter(converter)

		body := `{"youtube_playlist_url": "https://www.youtube.com/playlist?list=PLabc", "spotify_user_id": "user-1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader(body))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
	})
}

func TestConversionHandlerStatus(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		job := models.NewConversionJob("conv-1", models.ConversionRequest{
			SourceURL: "https://www.youtube.com/playlist?list=PLabc",
			AccountID: "user-1",
		})
		job.Status = models.StatusCompleted
		job.TotalTracks = 3
		job.MatchedTracks = 2
		job.SkippedTracks = 1

		router := newTestRouter(&fakeConverter{job: job})

		req := httptest.NewRequest(http.MethodGet, "/api/convert/conv-1", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}

		var response models.ConversionJob
		if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if response.ID != "conv-1" || response.Status != models.StatusCompleted {
			t.Errorf("unexpected job: %+v", response)
		}

		if response.MatchedTracks+response.SkippedTracks != response.TotalTracks {
			t.Error("counts should partition the track list")
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		converter := &fakeConverter{
			statusErr: fmt.Errorf("conversion missing: %w", shared.ErrJobNotFound),
		}
		router := newTestRouter(converter)

		req := httptest.NewRequest(http.MethodGet, "/api/convert/missing", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}

func TestConversionHandlerList(t *testing.T) {
	t.Run("ReturnsAccountJobs", func(t *testing.T) {
		jobs := []*models.ConversionJob{
			models.NewConversionJob("conv-2", models.ConversionRequest{AccountID: "user-1"}),
			models.NewConversionJob("conv-1", models.ConversionRequest{AccountID: "user-1"}),
		}
		router := newTestRouter(&fakeConverter{jobs: jobs})

		req := httptest.NewRequest(http.MethodGet, "/api/conversions?account=user-1", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var response []models.ConversionJob
		if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if len(response) != 2 {
			t.Errorf("expected 2 jobs, got %d", len(response))
		}
	})

	t.Run("MissingAccountParam", func(t *testing.T) {
		router := newTestRouter(&fakeConverter{})

		req := httptest.NewRequest(http.MethodGet, "/api/conversions", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestHealthHandler(t *testing.T) {
	router := newTestRouter(&fakeConverter{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
