package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"PANTRY-TRACKER/internal/handlers"
	"PANTRY-TRACKER/internal/middleware"
	"PANTRY-TRACKER/internal/repository"
	"PANTRY-TRACKER/internal/session"
	"PANTRY-TRACKER/internal/views"
)

// New assembles the application router: session handling and identity
// restore on every request, then the route table with its gates.
func New(
	sessions *session.Manager,
	renderer *views.Renderer,
	users repository.UserRepository,
	products repository.ProductRepository,
	authHandler *handlers.AuthHandler,
	productHandler *handlers.ProductHandler,
	healthHandler *handlers.HealthHandler,
	log *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(sessions.LoadAndSave)
	r.Use(middleware.RequestLogger(log, renderer))
	r.Use(middleware.MethodOverride)
	r.Use(middleware.WithUser(sessions, users, log))

	requireLogin := middleware.RequireLogin(sessions)
	requireOwner := middleware.RequireOwner(sessions, products, renderer, log)

	// Product routes
	r.Get("/", productHandler.List)
	r.With(requireLogin).Get("/ranOut", productHandler.RanOut)
	r.With(requireLogin).Post("/", productHandler.Create)
	r.With(requireLogin, requireOwner).Delete("/{id}", productHandler.Delete)
	r.With(requireLogin, requireOwner).Put("/{id}/increment", productHandler.Increment)
	r.With(requireLogin, requireOwner).Put("/{id}/decrement", productHandler.Decrement)

	// Authentication routes
	r.Get("/register", authHandler.ShowRegister)
	r.Post("/register", authHandler.Register)
	r.Get("/login", authHandler.ShowLogin)
	r.Post("/login", authHandler.Login)
	r.Get("/logout", authHandler.Logout)

	// Health check routes
	r.Get("/healthz", healthHandler.HealthCheck)
	r.Get("/livez", healthHandler.LivenessCheck)
	r.Get("/readyz", healthHandler.ReadinessCheck)

	notFound := func(w http.ResponseWriter, r *http.Request) {
		renderer.Error(w, r, http.StatusNotFound, "Page Not Found")
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}
