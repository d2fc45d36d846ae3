package http

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handlers struct {
	Auth       *AuthHandler
	User       *UserHandler
	Cycle      *CycleHandler
	Suggestion *SuggestionHandler
	Vote       *VoteHandler
	Health     *HealthHandler
}

// NewHandler builds the router. Credentials are only allowed for an explicit
// origin list, never together with the "*" wildcard.
func NewHandler(h Handlers, authenticator Authenticator, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "If-None-Match"},
		ExposedHeaders:   []string{"ETag"},
		AllowCredentials: !slices.Contains(allowedOrigins, "*"),
		MaxAge:           300,
	}))

	r.Get("/health", h.Health.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.Post("/logout", h.Auth.Logout)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(RequireAuth(authenticator))

		r.Get("/me", h.User.GetMe)

		r.Route("/voting-cycles", func(r chi.Router) {
			r.Get("/", h.Cycle.ListCycles)
			r.Get("/current", h.Cycle.GetCurrentCycle)
			r.Get("/{id}", h.Cycle.GetCycle)

			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin)
				r.Post("/", h.Cycle.CreateCycle)
				r.Patch("/{id}", h.Cycle.UpdateCycle)
				r.Post("/{id}/complete", h.Cycle.CompleteCycle)
			})
		})

		r.Route("/book-suggestions", func(r chi.Router) {
			r.Post("/", h.Suggestion.CreateSuggestion)
			r.Patch("/{id}", h.Suggestion.UpdateSuggestion)
			r.Get("/cycle/{cycleId}", h.Suggestion.ListByCycle)
			r.Get("/my/{cycleId}", h.Suggestion.GetOwn)
		})

		r.Route("/votes", func(r chi.Router) {
			r.Post("/", h.Vote.SubmitVotes)
			r.Get("/my/{cycleId}", h.Vote.ListOwnVotes)
			r.Get("/results/{cycleId}", h.Vote.GetResults)
			r.Get("/results/{cycleId}/leaderboard", h.Vote.GetLeaderboard)
		})
	})

	return r
}
