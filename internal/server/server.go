package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meltforce/gkmanager/internal/auth"
	"github.com/meltforce/gkmanager/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	dir    *auth.Directory
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, dir *auth.Directory, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		dir:    dir,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Account creation is the only unauthenticated endpoint.
	s.router.Post("/api/v1/accounts", s.handleCreateAccount)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(AccountAuth(s.dir))

		r.Get("/goalkeepers", s.handleListGoalkeepers)
		r.Post("/goalkeepers", s.handleCreateGoalkeeper)
		r.Put("/goalkeepers/{id}", s.handleUpdateGoalkeeper)
		r.Delete("/goalkeepers/{id}", s.handleDeleteGoalkeeper)
		r.Get("/goalkeepers/{id}/ratings", s.handleRatingHistory)

		r.Get("/drills", s.handleListDrills)
		r.Post("/drills", s.handleCreateDrill)
		r.Put("/drills/{id}", s.handleUpdateDrill)
		r.Delete("/drills/{id}", s.handleDeleteDrill)

		r.Get("/microcycles", s.handleListMicrocycles)
		r.Post("/microcycles", s.handleCreateMicrocycle)
		r.Put("/microcycles/{id}/report", s.handleMicrocycleReport)
		r.Get("/microcycles/{id}/week", s.handleWeekPlan)

		r.Get("/sessions/{date}", s.handleGetSession)
		r.Put("/sessions/{date}", s.handleSavePlan)
		r.Put("/sessions/{date}/report", s.handleSessionReport)
		r.Get("/sessions/{date}/document", s.handleSessionDocument)

		r.Get("/calendar", s.handleCalendar)
		r.Get("/matchdays", s.handleMatchDays)

		r.Get("/ratings/{date}", s.handleRatingsForDate)
		r.Put("/ratings/{date}", s.handleSaveRatings)

		r.Get("/matches", s.handleListMatches)
		r.Get("/matches/{date}", s.handleGetMatch)
		r.Put("/matches/{date}", s.handleSaveMatch)
	})
}
