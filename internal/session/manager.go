package session

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options configures the session cookie
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Manager binds sessions from a Store to HTTP requests
type Manager struct {
	store  Store
	opts   Options
	logger *zap.Logger
}

// NewManager creates a session manager
func NewManager(store Store, opts Options, logger *zap.Logger) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "bakery_session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &Manager{
		store:  store,
		opts:   opts,
		logger: logger,
	}
}

// Middleware loads the visitor's session (or starts a new one), attaches it to the
// request context, and persists it after the handler returns.
//
// New sessions are only stored once something is written to them.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.load(r)
		m.setCookie(w, sess.ID)

		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), sess)))

		if sess.destroyed || (sess.isNew && !sess.modified) {
			return
		}
		// The response may already be sent; a failed save only loses this request's changes
		if err := m.store.Save(context.WithoutCancel(r.Context()), sess.ID, &sess.data); err != nil {
			m.logger.Error("failed to save session", zap.Error(err))
		}
	})
}

func (m *Manager) load(r *http.Request) *Session {
	cookie, err := r.Cookie(m.opts.CookieName)
	if err == nil && cookie.Value != "" {
		data, err := m.store.Get(r.Context(), cookie.Value)
		if err == nil {
			return newSession(cookie.Value, data, false)
		}
		if !errors.Is(err, ErrNotFound) {
			m.logger.Error("failed to load session", zap.Error(err))
		}
	}
	return newSession(uuid.NewString(), nil, true)
}

// Renew replaces the session with an empty one under a fresh ID.
// It is called on login so a pre-login session ID cannot be reused.
func (m *Manager) Renew(ctx context.Context, w http.ResponseWriter, sess *Session) {
	if !sess.isNew {
		if err := m.store.Delete(ctx, sess.ID); err != nil {
			m.logger.Warn("failed to delete old session", zap.Error(err))
		}
	}
	sess.ID = uuid.NewString()
	sess.data = Data{}
	sess.isNew = true
	sess.modified = true
	m.setCookie(w, sess.ID)
}

// Destroy deletes the session and expires the cookie
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, sess *Session) {
	if err := m.store.Delete(ctx, sess.ID); err != nil {
		m.logger.Warn("failed to delete session", zap.Error(err))
	}
	sess.destroyed = true
	sess.data = Data{}
	m.dropCookie(w)
	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// setCookie replaces any session cookie already queued on w
func (m *Manager) setCookie(w http.ResponseWriter, id string) {
	m.dropCookie(w)
	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(m.opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) dropCookie(w http.ResponseWriter) {
	prefix := m.opts.CookieName + "="
	values := w.Header().Values("Set-Cookie")
	kept := values[:0:0]
	for _, v := range values {
		if !strings.HasPrefix(v, prefix) {
			kept = append(kept, v)
		}
	}
	w.Header().Del("Set-Cookie")
	for _, v := range kept {
		w.Header().Add("Set-Cookie", v)
	}
}
