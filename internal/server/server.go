// Package server exposes the finder over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"mosque/internal/locate"
	"mosque/internal/presentation"
)

// Server exposes the engine, the location controller and the suggester over
// HTTP. All handlers share one engine, so every client sees the same map.
type Server struct {
	engine     *presentation.Engine
	controller *locate.Controller
	suggester  *locate.Suggester
	geocoder   locate.Geocoder
}

// New wires a Server. The location controller is built here from engine and
// geocoder.
func New(engine *presentation.Engine, geocoder locate.Geocoder, suggester *locate.Suggester) *Server {
	return &Server{
		engine:     engine,
		controller: locate.NewController(engine, geocoder),
		suggester:  suggester,
		geocoder:   geocoder,
	}
}

// Router builds the chi router. An empty origins list allows any origin.
func (s *Server) Router(origins []string) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Client-ID"},
		MaxAge:         300,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("OK"))
		})

		r.Get("/mosques", s.listMosques)
		r.Get("/districts", s.listDistricts)
		r.Get("/nearby", s.nearby)
		r.Get("/search", s.search)
		r.Get("/suggest", s.suggest)
		r.Get("/directions", s.directions)

		r.Route("/session", func(r chi.Router) {
			r.Get("/", s.session)
			r.Post("/events", s.applyEvent)
			r.Post("/locate", s.locate)
			r.Post("/search", s.sessionSearch)
			r.Post("/select", s.selectSuggestion)
			r.Post("/focus/{id}", s.focus)
		})
	})

	return router
}

// HTTPServer wraps handler with the timeouts used in production.
func HTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 40 * time.Second,
	}
}
