// Package session wraps scs with the identity, flash-message, and
// return-to conventions the handlers rely on. All state lives server-side;
// the client only holds an opaque token cookie.
package session

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
)

const (
	keyUserID   = "userID"
	keySuccess  = "flash.success"
	keyError    = "flash.error"
	keyReturnTo = "returnTo"
)

// Manager owns login identity and one-shot flash state for each request.
type Manager struct {
	scs *scs.SessionManager
}

// New builds a Manager on top of store. A nil store keeps scs's in-memory
// default, which the tests use.
func New(store scs.Store, cookieName string, lifetime time.Duration, secure bool) *Manager {
	sm := scs.New()
	if store != nil {
		sm.Store = store
	}
	sm.Lifetime = lifetime
	sm.Cookie.Name = cookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = secure
	return &Manager{scs: sm}
}

// LoadAndSave is the middleware that loads the session for each request and
// writes it (and the cookie) back afterwards.
func (m *Manager) LoadAndSave(next http.Handler) http.Handler {
	return m.scs.LoadAndSave(next)
}

// Login records the authenticated user id. The token is renewed so a
// pre-login session cannot be replayed as an authenticated one.
func (m *Manager) Login(ctx context.Context, userID int64) error {
	if err := m.scs.RenewToken(ctx); err != nil {
		return err
	}
	m.scs.Put(ctx, keyUserID, userID)
	return nil
}

// Logout drops the identity but keeps the session alive so the goodbye
// flash survives to the next page.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.scs.RenewToken(ctx); err != nil {
		return err
	}
	m.scs.Remove(ctx, keyUserID)
	return nil
}

// UserID returns the authenticated user id, if any.
func (m *Manager) UserID(ctx context.Context) (int64, bool) {
	if !m.scs.Exists(ctx, keyUserID) {
		return 0, false
	}
	id, ok := m.scs.Get(ctx, keyUserID).(int64)
	return id, ok
}

// FlashSuccess queues a one-shot success message for the next render.
func (m *Manager) FlashSuccess(ctx context.Context, msg string) {
	m.push(ctx, keySuccess, msg)
}

// FlashError queues a one-shot error message for the next render.
func (m *Manager) FlashError(ctx context.Context, msg string) {
	m.push(ctx, keyError, msg)
}

// PopFlashes returns and clears the queued success and error messages.
func (m *Manager) PopFlashes(ctx context.Context) (success, errs []string) {
	return splitFlash(m.scs.PopString(ctx, keySuccess)), splitFlash(m.scs.PopString(ctx, keyError))
}

// SetReturnTo remembers where to send the user after a successful login.
func (m *Manager) SetReturnTo(ctx context.Context, path string) {
	m.scs.Put(ctx, keyReturnTo, path)
}

// PopReturnTo returns and clears the stored post-login path, defaulting
// to "/".
func (m *Manager) PopReturnTo(ctx context.Context) string {
	if path := m.scs.PopString(ctx, keyReturnTo); path != "" {
		return path
	}
	return "/"
}

// Messages are queued newline-joined; scs only round-trips scalar types
// without gob registration.
func (m *Manager) push(ctx context.Context, key, msg string) {
	queued := m.scs.GetString(ctx, key)
	if queued != "" {
		queued += "\n"
	}
	m.scs.Put(ctx, key, queued+msg)
}

func splitFlash(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
