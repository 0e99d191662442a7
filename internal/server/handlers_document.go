package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meltforce/gkmanager/internal/drillconfig"
	"github.com/meltforce/gkmanager/internal/report"
)

func (s *Server) handleSessionDocument(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		return
	}

	account := accountFromContext(r)

	sess, err := s.db.GetSessionByDate(r.Context(), account, date)
	if err != nil {
		writeStorageError(w, err)
		return
	}

	config := drillconfig.Decode(sess.DrillsList)
	titles := make([]string, len(config))
	for i, a := range config {
		titles[i] = a.Title
	}
	drills, err := s.db.DrillsByTitles(r.Context(), account, titles)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	roster, err := s.db.ListGoalkeepers(r.Context(), account)
	if err != nil {
		writeStorageError(w, err)
		return
	}

	doc, err := report.Compose(report.Input{
		Coach:   account,
		Session: *sess,
		Roster:  roster,
		Config:  config,
		Drills:  drills,
	})
	if err != nil {
		if errors.Is(err, report.ErrDrillNotFound) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		s.log.Error("composing session document", "date", date, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "document generation failed"})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "Training_"+date+".pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}
