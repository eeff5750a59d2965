package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"PANTRY-TRACKER/internal/models"
	"PANTRY-TRACKER/internal/repository"
	"PANTRY-TRACKER/internal/session"
	"PANTRY-TRACKER/internal/views"
)

type ctxKey int

const productKey ctxKey = iota

// ProductFromContext returns the product loaded by RequireOwner.
func ProductFromContext(ctx context.Context) (*models.Product, bool) {
	product, ok := ctx.Value(productKey).(*models.Product)
	return product, ok
}

// WithUser restores the logged-in user from the session into the request
// context on every request. Anonymous requests pass through unchanged, as
// does a session pointing at a user that no longer exists.
func WithUser(sessions *session.Manager, users repository.UserRepository, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := sessions.UserID(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetByID(r.Context(), id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					// stale identity; treat the caller as anonymous
					_ = sessions.Logout(r.Context())
				} else {
					log.Error("restore session user", "user_id", id, "err", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.ContextWithUser(r.Context(), user)))
		})
	}
}

// RequireLogin redirects anonymous callers to the login form, remembering
// the path they originally asked for.
func RequireLogin(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := session.UserFromContext(r.Context()); !ok {
				sessions.SetReturnTo(r.Context(), r.URL.RequestURI())
				sessions.FlashError(r.Context(), "You must be signed in first!")
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireOwner loads the product addressed by the {id} route parameter and
// rejects callers that do not own it. A missing product renders an explicit
// 404 instead of faulting. Must run after RequireLogin.
func RequireOwner(sessions *session.Manager, products repository.ProductRepository, renderer *views.Renderer, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := session.UserFromContext(r.Context())
			if !ok {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
			if err != nil {
				renderer.Error(w, r, http.StatusNotFound, "Page Not Found")
				return
			}

			product, err := products.GetByID(r.Context(), id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					renderer.Error(w, r, http.StatusNotFound, "Page Not Found")
					return
				}
				log.Error("load product for ownership check", "product_id", id, "err", err)
				renderer.Error(w, r, http.StatusInternalServerError, "")
				return
			}

			if product.UserID != user.ID {
				sessions.FlashError(r.Context(), "You do not have permission to do that!")
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), productKey, product)))
		})
	}
}
