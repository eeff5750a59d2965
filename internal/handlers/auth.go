package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"PANTRY-TRACKER/internal/dto"
	"PANTRY-TRACKER/internal/models"
	"PANTRY-TRACKER/internal/repository"
	"PANTRY-TRACKER/internal/session"
	"PANTRY-TRACKER/internal/views"
)

// ErrInvalidCredentials is returned for both an unknown username and a
// wrong password, so callers cannot tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// dummyHash is compared against when the username does not exist, so the
// unknown-user path costs as much as the wrong-password path.
var dummyHash = []byte("$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW")

// AuthHandler handles registration, login, and logout
type AuthHandler struct {
	users      repository.UserRepository
	sessions   *session.Manager
	views      *views.Renderer
	log        *slog.Logger
	bcryptCost int
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(users repository.UserRepository, sessions *session.Manager, renderer *views.Renderer, log *slog.Logger, bcryptCost int) *AuthHandler {
	return &AuthHandler{
		users:      users,
		sessions:   sessions,
		views:      renderer,
		log:        log,
		bcryptCost: bcryptCost,
	}
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, http.StatusOK, "register", nil)
}

// Register creates the account, signs the new user in, and redirects home.
// Any failure redirects back to the form with a flash message and leaves no
// half-registered user behind.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	form := dto.ParseRegisterForm(r)
	if err := form.Validate(); err != nil {
		h.sessions.FlashError(r.Context(), err.Error())
		http.Redirect(w, r, "/register", http.StatusFound)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), h.bcryptCost)
	if err != nil {
		h.log.Error("hash password", "err", err)
		h.views.Error(w, r, http.StatusInternalServerError, "")
		return
	}

	user, err := h.users.Create(r.Context(), &models.User{
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: string(hashed),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			h.sessions.FlashError(r.Context(), "A user with the given email or username is already registered")
			http.Redirect(w, r, "/register", http.StatusFound)
			return
		}
		h.log.Error("create user", "err", err)
		h.views.Error(w, r, http.StatusInternalServerError, "")
		return
	}

	if err := h.sessions.Login(r.Context(), user.ID); err != nil {
		h.log.Error("establish session", "err", err)
		h.views.Error(w, r, http.StatusInternalServerError, "")
		return
	}

	h.sessions.FlashSuccess(r.Context(), "Welcome to PantryTracker!")
	http.Redirect(w, r, "/", http.StatusFound)
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, http.StatusOK, "login", nil)
}

// Login authenticates the submitted credentials and redirects to the page
// the user originally asked for, or home.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	form := dto.ParseLoginForm(r)
	if err := form.Validate(); err != nil {
		h.sessions.FlashError(r.Context(), err.Error())
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	user, err := h.authenticate(r.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			h.sessions.FlashError(r.Context(), "Wrong user name or password")
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		h.log.Error("login", "err", err)
		h.views.Error(w, r, http.StatusInternalServerError, "")
		return
	}

	if err := h.sessions.Login(r.Context(), user.ID); err != nil {
		h.log.Error("establish session", "err", err)
		h.views.Error(w, r, http.StatusInternalServerError, "")
		return
	}

	h.sessions.FlashSuccess(r.Context(), "welcome back!")
	http.Redirect(w, r, h.sessions.PopReturnTo(r.Context()), http.StatusFound)
}

// Logout clears the authenticated identity and redirects home.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		h.log.Error("logout", "err", err)
		h.views.Error(w, r, http.StatusInternalServerError, "")
		return
	}
	h.sessions.FlashSuccess(r.Context(), "Goodbye!")
	http.Redirect(w, r, "/", http.StatusFound)
}

// authenticate verifies the credentials against the stored bcrypt hash.
func (h *AuthHandler) authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := h.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
