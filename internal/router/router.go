// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chains for the
// icon API. JSON endpoints live under /api; everything else falls through
// to the static client.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"iconforge/internal/handlers"
	"iconforge/internal/middleware"
)

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = 64 << 10

// Options configures the router.
type Options struct {
	// Limiter throttles the expensive POST endpoints per client IP.
	// Nil disables rate limiting.
	Limiter    middleware.Limiter
	RetryAfter time.Duration

	// ClientDir holds the pre-built static client.
	ClientDir string

	// AllowedOrigins for CORS. Empty allows any origin.
	AllowedOrigins []string
}

// New creates the chi router with all middleware and routes wired up.
func New(api *handlers.API, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", "Retry-After"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", api.Health)
		r.Get("/styles", api.Styles)

		r.Get("/history", api.History)
		r.Get("/history/{id}", api.HistoryItem)
		r.Delete("/history/{id}", api.HistoryDelete)

		// Calls that reach the image service or fetch remote files.
		r.Group(func(r chi.Router) {
			if opts.Limiter != nil {
				r.Use(middleware.RateLimit(opts.Limiter, opts.RetryAfter))
			}
			r.Use(middleware.MaxBodySize(MaxBodyBytes))

			r.Post("/generate", api.Generate)
			r.Post("/regenerate", api.Regenerate)
			r.Post("/download", api.Download)
		})

		r.NotFound(apiNotFound)
	})

	r.NotFound(handlers.SPA(opts.ClientDir))

	return r
}

// apiNotFound answers unknown /api paths with the JSON envelope instead of
// the client bundle.
func apiNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not found"}`))
}
