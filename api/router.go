package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tb-digital/formrelay"
)

// NewRouter builds the full HTTP surface for a relay. The submit endpoint, login and
// health check are public; everything the dashboard uses sits behind the token check.
// Allowed CORS origins come from the relay configuration so the marketing site can call
// the submit endpoint cross-origin.
func NewRouter(relay *formrelay.Relay) *chi.Mux {
	server := NewServer(relay)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   relay.Config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/forms/{kind}", server.SubmitForm)
		r.Post("/auth/login", server.Login)
		r.Get("/health", server.Health)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(relay.Config.Dashboard.JWTSecret))

			r.Get("/submissions", server.ListSubmissions)
			r.Get("/submissions/{id}", server.GetSubmission)
			r.Patch("/submissions/{id}/status", server.UpdateStatus)
			r.Post("/submissions/{id}/responses", server.AppendResponse)

			r.Get("/stats", server.Stats)
			r.Post("/sync", server.Sync)
			r.Get("/logs", server.Logs)

			r.Get("/settings/filters", server.GetFilters)
			r.Put("/settings/filters", server.SetFilters)
		})
	})

	return r
}
