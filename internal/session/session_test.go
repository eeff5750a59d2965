package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return New(nil, "SID", time.Hour, false)
}

// exec runs fn inside the session middleware and returns the session cookie
// written by the response, so state can be carried into a follow-up call.
func exec(t *testing.T, m *Manager, cookie *http.Cookie, fn func(ctx context.Context)) *http.Cookie {
	t.Helper()

	handler := m.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fn(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	for _, c := range w.Result().Cookies() {
		if c.Name == "SID" {
			return c
		}
	}
	return cookie
}

func TestLoginPersistsUserID(t *testing.T) {
	m := newTestManager()

	cookie := exec(t, m, nil, func(ctx context.Context) {
		require.NoError(t, m.Login(ctx, 42))
	})
	require.NotNil(t, cookie)

	exec(t, m, cookie, func(ctx context.Context) {
		id, ok := m.UserID(ctx)
		require.True(t, ok)
		require.Equal(t, int64(42), id)
	})
}

func TestLoginRenewsToken(t *testing.T) {
	m := newTestManager()

	anon := exec(t, m, nil, func(ctx context.Context) {
		m.FlashError(ctx, "seed the session")
	})

	authed := exec(t, m, anon, func(ctx context.Context) {
		require.NoError(t, m.Login(ctx, 1))
	})
	require.NotEqual(t, anon.Value, authed.Value)
}

func TestLogoutClearsIdentity(t *testing.T) {
	m := newTestManager()

	cookie := exec(t, m, nil, func(ctx context.Context) {
		require.NoError(t, m.Login(ctx, 42))
	})
	cookie = exec(t, m, cookie, func(ctx context.Context) {
		require.NoError(t, m.Logout(ctx))
	})
	exec(t, m, cookie, func(ctx context.Context) {
		_, ok := m.UserID(ctx)
		require.False(t, ok)
	})
}

func TestFlashesPopOnce(t *testing.T) {
	m := newTestManager()

	cookie := exec(t, m, nil, func(ctx context.Context) {
		m.FlashSuccess(ctx, "first")
		m.FlashSuccess(ctx, "second")
		m.FlashError(ctx, "oops")
	})

	cookie = exec(t, m, cookie, func(ctx context.Context) {
		success, errs := m.PopFlashes(ctx)
		require.Equal(t, []string{"first", "second"}, success)
		require.Equal(t, []string{"oops"}, errs)
	})

	exec(t, m, cookie, func(ctx context.Context) {
		success, errs := m.PopFlashes(ctx)
		require.Nil(t, success)
		require.Nil(t, errs)
	})
}

func TestReturnToDefaultsToHome(t *testing.T) {
	m := newTestManager()

	exec(t, m, nil, func(ctx context.Context) {
		require.Equal(t, "/", m.PopReturnTo(ctx))
	})
}

func TestReturnToRoundTrip(t *testing.T) {
	m := newTestManager()

	cookie := exec(t, m, nil, func(ctx context.Context) {
		m.SetReturnTo(ctx, "/ranOut")
	})

	cookie = exec(t, m, cookie, func(ctx context.Context) {
		require.Equal(t, "/ranOut", m.PopReturnTo(ctx))
	})

	// cleared after the first pop
	exec(t, m, cookie, func(ctx context.Context) {
		require.Equal(t, "/", m.PopReturnTo(ctx))
	})
}
