package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/farawebdata/backend/internal/metrics"
	"github.com/farawebdata/backend/internal/repository"
	"github.com/farawebdata/backend/internal/service"
)

// Deps are the collaborators the router is built from.
type Deps struct {
	DB             repository.DB
	Submissions    service.SubmissionService
	Contacts       service.ContactService
	RateLimiter    *RateLimiter // nil disables rate limiting
	AllowedOrigins []string
	Metrics        bool
}

// NewRouter wires every route and middleware of the form API.
func NewRouter(d Deps) http.Handler {
	h := New(d.DB, d.AllowedOrigins)
	submissions := NewSubmissionHandler(d.Submissions)
	contacts := NewContactHandler(d.Contacts)

	r := chi.NewRouter()
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeaders)
	r.Use(h.CORS)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})

	r.Get("/health", h.Health)
	if d.Metrics {
		r.Handle("/metrics", metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.Middleware)
		}
		r.Post("/submit", submissions.Submit)
	})
	r.Get("/webapp/submissions", submissions.List)

	r.Post("/formus", contacts.Submit)
	r.Get("/webapp/contactforms", contacts.List)

	return r
}
