package server

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Server holds the HTTP handler, the backing store, and configuration.
type Server struct {
	store  Store
	cfg    Config
	logger zerolog.Logger
	router chi.Router
}

// New constructs a fully-configured Server with all routes mounted.
func New(st Store, cfg Config, logger zerolog.Logger) *Server {
	s := &Server{
		store:  st,
		cfg:    cfg,
		logger: logger,
	}
	s.router = s.buildRouter()
	return s
}

// Router returns the underlying chi.Router so it can be used by http.Server.
func (s *Server) Router() chi.Router {
	return s.router
}

// buildRouter assembles the chi router with the middleware stack and the
// users routes. Order matters: request ids must exist before the logger
// runs, and CORS must wrap everything the browser client touches.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", s.handleHealthz)

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", s.handleListUsers)
		r.Post("/", s.handleCreateUser)
		r.Get("/{id}", s.handleGetUser)
		r.Put("/{id}", s.handleUpdateUser)
		r.Delete("/{id}", s.handleDeleteUser)
	})

	return r
}
