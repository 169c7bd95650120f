// Segue - Listening Transition Analytics and Next-Track Recommendation
// Copyright 2026 Segue Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/segue-fm/segue

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/segue-fm/segue/internal/catalog"
	"github.com/segue-fm/segue/internal/recommend"
	"github.com/segue-fm/segue/internal/service"
)

// Orchestrator is the service surface the HTTP handlers depend on.
// *service.Service satisfies it; tests substitute a mock.
type Orchestrator interface {
	Recommend(ctx context.Context, songID int) (service.Recommendation, error)
	TopCandidates(songID, k int) ([]recommend.Candidate, error)
	Advance(ctx context.Context, n int) (service.SimulationResult, error)
	ResetStatistics(ctx context.Context)
	Stats() service.Stats
}

// Handler holds dependencies for all HTTP handlers.
type Handler struct {
	svc       Orchestrator
	startTime time.Time
}

// NewHandler creates a handler bound to the given orchestrator.
func NewHandler(svc Orchestrator) *Handler {
	return &Handler{
		svc:       svc,
		startTime: time.Now(),
	}
}

// SimulateRequest is the body of POST /api/v1/simulate. An omitted steps
// field advances the simulation by one step.
type SimulateRequest struct {
	Steps int `json:"steps" validate:"min=1,max=100000"`
}

// HealthStatus is the payload of GET /api/v1/health.
type HealthStatus struct {
	Status  string  `json:"status"`
	Version string  `json:"version"`
	Uptime  float64 `json:"uptime_seconds"`
}

// Recommend handles GET /api/v1/recommend/{songID}.
// Responds 400 with code INVALID_IDENTIFIER when the song is outside the catalog.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	songID, ok := h.songIDParam(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.Recommend(r.Context(), songID)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, rec, nil)
}

// Candidates handles GET /api/v1/recommend/{songID}/candidates.
// The optional k query parameter bounds the number of entries (default 10).
func (h *Handler) Candidates(w http.ResponseWriter, r *http.Request) {
	songID, ok := h.songIDParam(w, r)
	if !ok {
		return
	}

	k := 10
	if kStr := r.URL.Query().Get("k"); kStr != "" {
		if parsed, err := strconv.Atoi(kStr); err == nil && parsed > 0 {
			k = parsed
		}
	}

	candidates, err := h.svc.TopCandidates(songID, k)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"song":       songID,
		"candidates": candidates,
	}, nil)
}

// Simulate handles POST /api/v1/simulate.
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	// Steps defaults to 1 and survives a body that omits the field. An empty
	// body is treated the same as {}.
	req := SimulateRequest{Steps: 1}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, r, http.StatusBadRequest, "INVALID_REQUEST", "Request body must be valid JSON", err)
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSON(w, r, http.StatusBadRequest, nil, apiErr)
		return
	}

	result, err := h.svc.Advance(r.Context(), req.Steps)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "SIMULATION_ERROR", "Simulation failed", err)
		return
	}

	respondJSON(w, r, http.StatusOK, result, nil)
}

// Reset handles POST /api/v1/reset. It clears transition counts and rewinds
// the simulator; repeated calls are harmless.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.svc.ResetStatistics(r.Context())

	respondJSON(w, r, http.StatusOK, map[string]string{"state": "reset"}, nil)
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.svc.Stats(), nil)
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, HealthStatus{
		Status:  "healthy",
		Version: Version,
		Uptime:  time.Since(h.startTime).Seconds(),
	}, nil)
}

// HealthLive handles GET /api/v1/health/live (liveness probe).
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "alive"}, nil)
}

// HealthReady handles GET /api/v1/health/ready (readiness probe).
// The recommender has no external dependencies, so ready equals alive.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ready"}, nil)
}

// songIDParam parses the songID URL parameter, writing a 400 response and
// returning ok=false when it is not an integer.
func (h *Handler) songIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "songID")
	songID, err := strconv.Atoi(raw)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_IDENTIFIER", "songID must be an integer", err)
		return 0, false
	}
	return songID, true
}

// respondDomainError maps domain errors to HTTP responses.
func (h *Handler) respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, catalog.ErrInvalidIdentifier) {
		respondError(w, r, http.StatusBadRequest, "INVALID_IDENTIFIER", err.Error(), nil)
		return
	}
	respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", err)
}
