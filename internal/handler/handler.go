package handler

import (
	"net/http"

	"github.com/farawebdata/backend/internal/repository"
)

// Handler serves the cross-cutting endpoints and middleware that need the
// store connection or the origin allow-list.
type Handler struct {
	db             repository.DB
	allowedOrigins map[string]struct{}
}

func New(db repository.DB, allowedOrigins []string) *Handler {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}
	return &Handler{db: db, allowedOrigins: origins}
}

// CORS allows credentialed GET and POST requests from allow-listed origins.
// Requests from other origins are served without CORS headers, so browsers
// refuse to expose the response.
func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")

		origin := r.Header.Get("Origin")
		if _, ok := h.allowedOrigins[origin]; ok && origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
