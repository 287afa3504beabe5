package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mindly-app/duel-engine/internal/duel"
	"github.com/mindly-app/duel-engine/internal/models"
)

// Duel handlers

func (s *Server) handleCreateDuel(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDuelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	d, err := s.duelManager.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, duel.ErrInvalidRequest):
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		case errors.Is(err, duel.ErrNotEnoughQuestions):
			respondError(w, http.StatusUnprocessableEntity, "not_enough_questions", "not enough questions available for this selection")
		default:
			slog.Error("failed to create duel", "error", err)
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to create duel")
		}
		return
	}

	respondJSON(w, http.StatusCreated, d.View())
}

func (s *Server) handleGetDuel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "duel id is required")
		return
	}

	d, err := s.duelManager.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, duel.ErrDuelNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "duel not found")
			return
		}
		slog.Error("failed to get duel", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get duel")
		return
	}

	respondJSON(w, http.StatusOK, d.View())
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "duel id is required")
		return
	}

	var req models.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Answer == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "answer is required")
		return
	}

	resp, err := s.duelManager.Answer(r.Context(), id, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, duel.ErrDuelNotFound):
			respondError(w, http.StatusNotFound, "not_found", "duel not found")
		case errors.Is(err, duel.ErrDuelFinished):
			respondError(w, http.StatusConflict, "duel_finished", "duel is already finished")
		case errors.Is(err, duel.ErrInvalidAnswer):
			respondError(w, http.StatusBadRequest, "invalid_answer", "answer is not one of the options")
		default:
			slog.Error("failed to record answer", "error", err, "id", id)
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to record answer")
		}
		return
	}

	s.broadcastRound(id, resp)

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAbandonDuel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "duel id is required")
		return
	}

	if err := s.duelManager.Abandon(r.Context(), id); err != nil {
		if errors.Is(err, duel.ErrDuelNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "duel not found")
			return
		}
		slog.Error("failed to abandon duel", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to abandon duel")
		return
	}

	s.hub.Broadcast(id, Event{Type: "abandoned"})

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "duel abandoned",
	})
}

func (s *Server) handleListDuels(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	duels, err := s.duelManager.List(r.Context(), userID)
	if err != nil {
		slog.Error("failed to list duels", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list duels")
		return
	}

	views := make([]*models.DuelView, 0, len(duels))
	for _, d := range duels {
		views = append(views, d.View())
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"duels": views,
		"total": len(views),
	})
}

// broadcastRound pushes round and completion events to duel stream watchers
func (s *Server) broadcastRound(id string, resp *models.AnswerResponse) {
	s.hub.Broadcast(id, Event{Type: "round", Data: resp})
	if resp.Duel != nil && resp.Duel.Status == models.DuelComplete {
		s.hub.Broadcast(id, Event{Type: "complete", Data: resp.Duel})
	}
}
