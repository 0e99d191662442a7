package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/meltforce/gkmanager/internal/auth"
	"github.com/meltforce/gkmanager/internal/schedule"
	"github.com/meltforce/gkmanager/internal/storage"
)

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	err := s.dir.Create(r.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrExists) {
		writeJSON(w, http.StatusConflict, map[string]string{"warning": "account already exists"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"username": req.Username})
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	events, err := s.db.CalendarEvents(r.Context(), accountFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleMatchDays(w http.ResponseWriter, r *http.Request) {
	days, err := s.db.MatchDays(r.Context(), accountFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, days)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeStorageError maps ErrNotFound to 404 and everything else to 500.
func writeStorageError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

// parseDate validates a {date} path segment as an ISO calendar date.
func parseDate(raw string) (string, error) {
	t, err := time.Parse(schedule.DateLayout, raw)
	if err != nil {
		return "", err
	}
	return t.Format(schedule.DateLayout), nil
}
