package server

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/meltforce/gkmanager/internal/models"
)

func (s *Server) handleListDrills(w http.ResponseWriter, r *http.Request) {
	drills, err := s.db.ListDrills(r.Context(), accountFromContext(r))
	if err != nil {
		writeStorageError(w, err)
		return
	}

	if moment := r.URL.Query().Get("moment"); moment != "" {
		filtered := drills[:0]
		for _, d := range drills {
			if d.Moment == models.Moment(moment) {
				filtered = append(filtered, d)
			}
		}
		drills = filtered
	}
	writeJSON(w, http.StatusOK, drills)
}

func (s *Server) handleCreateDrill(w http.ResponseWriter, r *http.Request) {
	drill, ok := decodeDrill(w, r)
	if !ok {
		return
	}

	id, err := s.db.CreateDrill(r.Context(), accountFromContext(r), drill)
	if err != nil {
		// Titles are unique per account; a clash is a client error.
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleUpdateDrill(w http.ResponseWriter, r *http.Request) {
	drill, ok := decodeDrill(w, r)
	if !ok {
		return
	}

	if err := s.db.UpdateDrill(r.Context(), accountFromContext(r), chi.URLParam(r, "id"), drill); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeleteDrill(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteDrill(r.Context(), accountFromContext(r), chi.URLParam(r, "id")); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func decodeDrill(w http.ResponseWriter, r *http.Request) (models.Drill, bool) {
	var drill models.Drill
	if err := json.NewDecoder(r.Body).Decode(&drill); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return drill, false
	}
	if drill.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return drill, false
	}
	if !slices.Contains(models.Moments, drill.Moment) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown moment category"})
		return drill, false
	}
	if !slices.Contains(models.TrainingTypes, drill.TrainingType) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown training type"})
		return drill, false
	}
	return drill, true
}
