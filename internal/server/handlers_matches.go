package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meltforce/gkmanager/internal/models"
)

// handleListMatches serves the narrow summary projection by default; ?full=1
// returns complete records with every counter.
func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	account := accountFromContext(r)

	if r.URL.Query().Get("full") != "" {
		history, err := s.db.MatchHistory(r.Context(), account)
		if err != nil {
			writeStorageError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, history)
		return
	}

	summaries, err := s.db.MatchSummaries(r.Context(), account)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		return
	}

	rec, err := s.db.GetMatch(r.Context(), accountFromContext(r), date)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleSaveMatch(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		return
	}

	var rec models.MatchRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	rec.Date = date

	if rec.GoalsConceded < 0 || rec.Saves < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "goals_conceded and saves must be non-negative"})
		return
	}
	if rec.Rating < 0 || rec.Rating > 10 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "rating must be between 0 and 10"})
		return
	}
	for _, ref := range rec.Counters.Refs() {
		if *ref < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "counters must be non-negative"})
			return
		}
	}

	if err := s.db.SaveMatch(r.Context(), accountFromContext(r), rec); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}
