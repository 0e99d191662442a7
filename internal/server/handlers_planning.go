package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meltforce/gkmanager/internal/drillconfig"
	"github.com/meltforce/gkmanager/internal/models"
	"github.com/meltforce/gkmanager/internal/schedule"
	"github.com/meltforce/gkmanager/internal/storage"
)

func (s *Server) handleListMicrocycles(w http.ResponseWriter, r *http.Request) {
	micros, err := s.db.ListMicrocycles(r.Context(), accountFromContext(r))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, micros)
}

func (s *Server) handleCreateMicrocycle(w http.ResponseWriter, r *http.Request) {
	var m models.Microcycle
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if m.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}
	if _, err := parseDate(m.StartDate); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "start_date must be YYYY-MM-DD"})
		return
	}

	id, err := s.db.CreateMicrocycle(r.Context(), accountFromContext(r), m)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleMicrocycleReport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Report string `json:"report"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if err := s.db.SetMicrocycleReport(r.Context(), accountFromContext(r), chi.URLParam(r, "id"), req.Report); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (s *Server) handleWeekPlan(w http.ResponseWriter, r *http.Request) {
	account := accountFromContext(r)

	micro, err := s.db.GetMicrocycle(r.Context(), account, chi.URLParam(r, "id"))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	start, err := time.Parse(schedule.DateLayout, micro.StartDate)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "stored start_date is malformed"})
		return
	}

	week, err := s.db.WeekPlan(r.Context(), account, start)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"microcycle": micro,
		"days":       week,
	})
}

// savePlanRequest is a day's planning submission: the session type and focus
// plus the drill titles picked per moment category. Load values apply to the
// merged configuration after prior values are carried forward.
type savePlanRequest struct {
	Type      models.SessionType                `json:"type"`
	Title     string                            `json:"title"`
	Selection map[models.Moment][]string        `json:"selection"`
	Loads     map[string]drillconfig.Assignment `json:"loads"`
}

func (s *Server) handleSavePlan(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		return
	}

	var req savePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	switch req.Type {
	case models.SessionTraining, models.SessionMatch, models.SessionRest:
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "type must be Training, Match or Rest"})
		return
	}

	account := accountFromContext(r)

	// Prior configuration, if the day was already planned.
	var prev []drillconfig.Assignment
	existing, err := s.db.GetSessionByDate(r.Context(), account, date)
	if err == nil {
		prev = drillconfig.Decode(existing.DrillsList)
	} else if !errors.Is(err, storage.ErrNotFound) {
		writeStorageError(w, err)
		return
	}

	// Order each category's picks by the library's listing order and drop
	// titles the library does not hold under that moment.
	library, err := s.db.TitlesByMoment(r.Context(), account)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	sel := schedule.Selection{}
	for moment, picked := range req.Selection {
		chosen := make(map[string]bool, len(picked))
		for _, t := range picked {
			chosen[t] = true
		}
		for _, title := range library[moment] {
			if chosen[title] {
				sel[moment] = append(sel[moment], title)
			}
		}
	}

	merged := schedule.Merge(prev, sel)
	schedule.ApplyLoads(merged, req.Loads)

	encoded, err := drillconfig.Encode(merged)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if err := s.db.UpsertSession(r.Context(), account, date, req.Type, req.Title, encoded); err != nil {
		writeStorageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":   date,
		"type":   req.Type,
		"title":  req.Title,
		"config": merged,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		return
	}

	sess, err := s.db.GetSessionByDate(r.Context(), accountFromContext(r), date)
	if err != nil {
		writeStorageError(w, err)
		return
	}

	config := drillconfig.Decode(sess.DrillsList)
	writeJSON(w, http.StatusOK, map[string]any{
		"session": sess,
		"config":  config,
		"summary": drillconfig.Summary(config),
	})
}

func (s *Server) handleSessionReport(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		return
	}

	var req struct {
		Report string `json:"report"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if err := s.db.SetSessionReport(r.Context(), accountFromContext(r), date, req.Report); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// handleRatingsForDate returns the ratings recorded for one training day,
// keyed by athlete. The rating form reads this to prefill prior entries.
func (s *Server) handleRatingsForDate(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		return
	}

	ratings, err := s.db.RatingsForDate(r.Context(), accountFromContext(r), date)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ratings)
}

func (s *Server) handleSaveRatings(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		return
	}

	var req struct {
		Entries []storage.RatingEntry `json:"entries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	for _, e := range req.Entries {
		if e.AthleteID == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "athlete_id is required"})
			return
		}
		if e.Rating < 1 || e.Rating > 10 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "rating must be between 1 and 10"})
			return
		}
	}

	if err := s.db.SaveRatings(r.Context(), accountFromContext(r), date, req.Entries); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}
