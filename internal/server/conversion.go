package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"crossfade/internal/models"
	"crossfade/internal/shared"
)

// ConversionStarter is the subset of the conversion orchestrator the HTTP
// handlers need. Satisfied by [tasks.Converter].
type ConversionStarter interface {
	Initiate(ctx context.Context, req models.ConversionRequest) (string, error)
	Status(ctx context.Context, id string) (*models.ConversionJob, error)
	ListJobs(ctx context.Context, accountID string) ([]*models.ConversionJob, error)
}

// ConversionHandler exposes conversion jobs over HTTP.
//
// POST /api/convert starts a job and returns 202 with the job ID before the
// pipeline runs. GET /api/convert/{id} reports the current persisted state.
// GET /api/conversions lists an account's jobs, newest first.
type ConversionHandler struct {
	converter ConversionStarter
	logger    *log.Logger
}

// NewConversionHandler creates a handler backed by the given orchestrator.
func NewConversionHandler(converter ConversionStarter, logger *log.Logger) *ConversionHandler {
	return &ConversionHandler{converter: converter, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *ConversionHandler) Routes() []string {
	return []string{"/api/convert", "/api/convert/{id}", "/api/conversions"}
}

// ServeHTTP dispatches conversion API requests by path and method.
func (h *ConversionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/convert" && r.Method == http.MethodPost:
		h.initiate(w, r)
	case r.PathValue("id") != "" && r.Method == http.MethodGet:
		h.status(w, r)
	case r.URL.Path == "/api/conversions" && r.Method == http.MethodGet:
		h.list(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *ConversionHandler) initiate(w http.ResponseWriter, r *http.Request) {
	var req models.ConversionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.SourceURL == "" || req.AccountID == "" {
		writeError(w, http.StatusBadRequest, "youtube_playlist_url and spotify_user_id are required")
		return
	}

	id, err := h.converter.Initiate(r.Context(), req)
	if err != nil {
		h.logger.Error("failed to initiate conversion", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to start conversion")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"conversion_id": id,
		"status":        string(models.StatusPending),
		"message":       "Conversion started. Poll the status endpoint for progress.",
	})
}

func (h *ConversionHandler) status(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	job, err := h.converter.Status(r.Context(), id)
	if err != nil {
		if errors.Is(err, shared.ErrJobNotFound) {
			writeError(w, http.StatusNotFound, "Conversion not found")
			return
		}
		h.logger.Error("failed to load conversion", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load conversion")
		return
	}

	writeJSON(w, http.StatusOK, job)
}

func (h *ConversionHandler) list(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("account")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "account query parameter is required")
		return
	}

	jobs, err := h.converter.ListJobs(r.Context(), accountID)
	if err != nil {
		h.logger.Error("failed to list conversions", "account", accountID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list conversions")
		return
	}

	writeJSON(w, http.StatusOK, jobs)
}

// HealthHandler reports service liveness.
type HealthHandler struct{}

// Routes returns the HTTP routes this handler serves.
func (h *HealthHandler) Routes() []string {
	return []string{"/health"}
}

// ServeHTTP responds with a static OK payload.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
