package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mindly-app/duel-engine/internal/models"
	"github.com/mindly-app/duel-engine/internal/opponent"
)

// Response helpers

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.duelManager.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "not_ready", "service not ready")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

// Catalog handlers

func (s *Server) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects := models.Subjects()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"subjects":     subjects,
		"difficulties": models.Difficulties(),
	})
}

func (s *Server) handleListOpponents(w http.ResponseWriter, r *http.Request) {
	personalities := opponent.Personalities()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"opponents": personalities,
		"total":     len(personalities),
	})
}

// Result handlers

func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	filters := models.ResultFilters{
		UserID:  r.URL.Query().Get("user_id"),
		Subject: models.Subject(r.URL.Query().Get("subject")),
		Limit:   50, // default
		Offset:  0,
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filters.Limit = limit
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filters.Offset = offset
		}
	}

	results, err := s.repo.ListResults(r.Context(), filters)
	if err != nil {
		slog.Error("failed to list duel results", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list results")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
		"total":   len(results),
	})
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "result id is required")
		return
	}

	result, err := s.repo.GetResult(r.Context(), id)
	if err != nil {
		slog.Error("failed to get duel result", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get result")
		return
	}
	if result == nil {
		respondError(w, http.StatusNotFound, "not_found", "result not found")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 10 // default
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	entries, err := s.repo.Leaderboard(r.Context(), limit)
	if err != nil {
		slog.Error("failed to query leaderboard", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to query leaderboard")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"leaderboard": entries,
		"total":       len(entries),
	})
}
