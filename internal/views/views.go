// Package views renders the embedded HTML templates. Every page shares the
// layout template, which shows the signed-in user and any queued flash
// messages.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"PANTRY-TRACKER/internal/models"
	"PANTRY-TRACKER/internal/session"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var pages = []string{"products", "ranout", "login", "register", "error"}

// Renderer renders pages with the shared layout, current user, and popped
// flash messages.
type Renderer struct {
	templates map[string]*template.Template
	sessions  *session.Manager
	log       *slog.Logger
}

// New parses the embedded templates and returns a ready Renderer.
func New(sessions *session.Manager, log *slog.Logger) (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.ParseFS(templatesFS, "templates/layout.tmpl", "templates/"+page+".tmpl")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = t
	}
	return &Renderer{templates: templates, sessions: sessions, log: log}, nil
}

type pageData struct {
	CurrentUser *models.User
	Success     []string
	Error       []string
	Data        any
}

// ErrorData is the payload for the error page.
type ErrorData struct {
	Status  int
	Message string
}

// Render writes the named page. Flash messages are consumed here, so each
// message is shown at most once.
func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	t, ok := rn.templates[page]
	if !ok {
		rn.log.Error("unknown template", "page", page)
		http.Error(w, "Oh No, Something went Wrong!", http.StatusInternalServerError)
		return
	}

	user, _ := session.UserFromContext(r.Context())
	success, errs := rn.sessions.PopFlashes(r.Context())

	// Render to a buffer first so a template fault cannot leave a half
	// written page behind a 200 header.
	var buf bytes.Buffer
	err := t.ExecuteTemplate(&buf, "layout", pageData{
		CurrentUser: user,
		Success:     success,
		Error:       errs,
		Data:        data,
	})
	if err != nil {
		rn.log.Error("render template", "page", page, "err", err)
		http.Error(w, "Oh No, Something went Wrong!", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Error renders the error page with a safe fallback message when none is
// provided.
func (rn *Renderer) Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	if message == "" {
		message = "Oh No, Something went Wrong!"
	}
	rn.Render(w, r, status, "error", ErrorData{Status: status, Message: message})
}
