package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: splitOrigins(s.CORSOrigin),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Post("/patterns/generate", s.handleGeneratePattern)
	r.Post("/patterns/completed", s.handleCompletePattern)
	r.Post("/patterns/options", s.handlePatternOptions)

	r.Post("/ai/hint", s.handleHint)
	r.Post("/api/patterns/hint", s.handleHint)

	r.Post("/users", s.handleUpsertUser)
	r.Get("/users/{id}", s.handleUserDashboard)
	r.Get("/users/{id}/completed", s.handleUserHistory)
	return r
}

func splitOrigins(origin string) []string {
	var out []string
	for _, o := range strings.Split(origin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
