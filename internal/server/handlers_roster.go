package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meltforce/gkmanager/internal/models"
)

func (s *Server) handleListGoalkeepers(w http.ResponseWriter, r *http.Request) {
	roster, err := s.db.ListGoalkeepers(r.Context(), accountFromContext(r))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roster)
}

func (s *Server) handleCreateGoalkeeper(w http.ResponseWriter, r *http.Request) {
	var gk models.Goalkeeper
	if err := json.NewDecoder(r.Body).Decode(&gk); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if gk.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	id, err := s.db.CreateGoalkeeper(r.Context(), accountFromContext(r), gk)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleUpdateGoalkeeper(w http.ResponseWriter, r *http.Request) {
	var gk models.Goalkeeper
	if err := json.NewDecoder(r.Body).Decode(&gk); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if err := s.db.UpdateGoalkeeper(r.Context(), accountFromContext(r), chi.URLParam(r, "id"), gk); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeleteGoalkeeper(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteGoalkeeper(r.Context(), accountFromContext(r), chi.URLParam(r, "id")); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleRatingHistory(w http.ResponseWriter, r *http.Request) {
	account := accountFromContext(r)
	athleteID := chi.URLParam(r, "id")

	history, err := s.db.RatingHistory(r.Context(), account, athleteID)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	mean, count, err := s.db.RatingMean(r.Context(), account, athleteID)
	if err != nil {
		writeStorageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"history": history,
		"mean":    mean,
		"count":   count,
	})
}
