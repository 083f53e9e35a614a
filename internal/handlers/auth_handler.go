package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/cakebakery/backend/internal/models"
	"github.com/cakebakery/backend/internal/session"
	"github.com/cakebakery/backend/internal/views"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for registration and login.
type AuthService interface {
	// Method Register creates a user with the "user" role.
	//
	// Invalid input is returned as *models.ValidationError, a taken username as models.ErrDuplicateUsername.
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	// Method Login verifies credentials.
	//
	// Unknown usernames and wrong passwords both return models.ErrInvalidCredentials.
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, error)
}

// SessionManager is the interface that wraps session lifecycle operations used on login and logout.
type SessionManager interface {
	// Method Renew moves the visitor to a fresh, empty session.
	Renew(ctx context.Context, w http.ResponseWriter, sess *session.Session)
	// Method Destroy deletes the session and expires its cookie.
	Destroy(ctx context.Context, w http.ResponseWriter, sess *session.Session)
}

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	BaseHandler
	service  AuthService
	sessions SessionManager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(svc AuthService, sessions SessionManager, renderer PageRenderer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{logger: logger, renderer: renderer},
		service:     svc,
		sessions:    sessions,
	}
}

// RegisterRoutes registers auth routes. limiter throttles the credential forms.
func (h *AuthHandler) RegisterRoutes(r chi.Router, limiter func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter)
		}
		r.Get("/register", h.RegisterForm)
		r.Post("/register", h.Register)
		r.Get("/login", h.LoginForm)
		r.Post("/login", h.Login)
	})
	r.Get("/logout", h.Logout)
}

// RegisterForm handles GET /register
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.PageRegister, "Register", views.AuthFormData{})
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, views.PageRegister, "Register", views.AuthFormData{Error: "Invalid form submission."})
		return
	}

	req := &models.RegisterRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	_, err := h.service.Register(r.Context(), req)
	if err != nil {
		form := views.AuthFormData{Username: req.Username}

		var vErr *models.ValidationError
		switch {
		case errors.As(err, &vErr):
			form.Error = vErr.Message
			h.render(w, r, http.StatusBadRequest, views.PageRegister, "Register", form)
		case errors.Is(err, models.ErrDuplicateUsername):
			currentSession(r).AddFlash(flashUsernameTaken)
			h.render(w, r, http.StatusOK, views.PageRegister, "Register", form)
		default:
			h.logError(r, "failed to register user", err)
			currentSession(r).AddFlash(flashSomethingWentWrong)
			h.render(w, r, http.StatusInternalServerError, views.PageRegister, "Register", form)
		}
		return
	}

	h.redirect(w, r, "/login", flashRegistered)
}

// LoginForm handles GET /login
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.PageLogin, "Login", views.AuthFormData{})
}

// Login handles POST /login.
// The session is renewed on success; admins land on the admin dashboard.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, views.PageLogin, "Login", views.AuthFormData{})
		return
	}

	req := &models.LoginRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	user, err := h.service.Login(r.Context(), req)
	if err != nil {
		form := views.AuthFormData{Username: req.Username}
		if errors.Is(err, models.ErrInvalidCredentials) {
			currentSession(r).AddFlash(flashInvalidCredentials)
			h.render(w, r, http.StatusOK, views.PageLogin, "Login", form)
			return
		}
		h.logError(r, "failed to log in", err)
		currentSession(r).AddFlash(flashSomethingWentWrong)
		h.render(w, r, http.StatusInternalServerError, views.PageLogin, "Login", form)
		return
	}

	sess := currentSession(r)
	h.sessions.Renew(r.Context(), w, sess)
	sess.SetUser(user)

	h.logger.Info("user logged in", zap.Int("userID", user.ID), zap.String("role", string(user.Role)))

	if user.IsAdmin() {
		h.redirect(w, r, "/admin/dashboard")
		return
	}
	h.redirect(w, r, "/")
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := session.FromContext(r.Context()); sess != nil {
		h.sessions.Destroy(r.Context(), w, sess)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
