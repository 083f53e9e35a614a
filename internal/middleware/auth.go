package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/cakebakery/backend/internal/models"
	"github.com/cakebakery/backend/internal/session"
	"go.uber.org/zap"
)

// FlashAdminRequired is shown to visitors turned away from admin pages
const FlashAdminRequired = "Admin access required."

// RequireAuthenticated redirects visitors without a logged-in session to the login page
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		if sess == nil || !sess.IsAuthenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin turns away everyone but admins with a flash message and a redirect home.
// The wrapped handler never runs for them.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		if sess == nil || !sess.IsAdmin() {
			if sess != nil {
				sess.AddFlash(FlashAdminRequired)
			}
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RoleSource is the interface that wraps the lookup of a user's stored role
type RoleSource interface {
	// Method CurrentRole returns the role the user holds right now.
	//
	// If user with such ID does not exist, models.ErrUserNotFound is returned.
	CurrentRole(ctx context.Context, id int) (models.Role, error)
}

// RefreshRole replaces the role remembered by a logged-in session with the stored one,
// so a demotion or deletion takes effect on the next request. Mount it before RequireAdmin.
func RefreshRole(roles RoleSource, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.FromContext(r.Context())
			if sess == nil || !sess.IsAuthenticated() {
				next.ServeHTTP(w, r)
				return
			}

			role, err := roles.CurrentRole(r.Context(), sess.UserID())
			switch {
			case errors.Is(err, models.ErrUserNotFound):
				role = ""
			case err != nil:
				logger.Error("failed to refresh session role",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Int("user_id", sess.UserID()),
					zap.Error(err),
				)
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(internalErrorPage))
				return
			}

			if role != sess.Role() {
				logger.Info("session role changed",
					zap.Int("user_id", sess.UserID()),
					zap.String("from", string(sess.Role())),
					zap.String("to", string(role)),
				)
				sess.SetRole(role)
			}
			next.ServeHTTP(w, r)
		})
	}
}
