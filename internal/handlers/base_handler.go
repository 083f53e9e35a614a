package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/cakebakery/backend/internal/middleware"
	"github.com/cakebakery/backend/internal/session"
	"github.com/cakebakery/backend/internal/views"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PageRenderer is the interface that wraps HTML page rendering
type PageRenderer interface {
	// Method Render executes the named page with data into w.
	Render(w io.Writer, page string, data *views.PageData) error
}

type BaseHandler struct {
	logger   *zap.Logger
	renderer PageRenderer
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// render writes a full HTML page. Queued flash messages are consumed.
func (h *BaseHandler) render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	pd := &views.PageData{Title: title, Data: data}
	if sess := session.FromContext(r.Context()); sess != nil {
		pd.Flashes = sess.PopFlashes()
		pd.IsAuthenticated = sess.IsAuthenticated()
		pd.IsAdmin = sess.IsAdmin()
		pd.Username = sess.Username()
		pd.CartCount = sess.CartCount()
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, page, pd); err != nil {
		h.logger.Error("failed to render page",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("page", page),
			zap.Error(err),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// redirect queues flash messages and sends a 303 to url
func (h *BaseHandler) redirect(w http.ResponseWriter, r *http.Request, url string, flashes ...string) {
	if sess := session.FromContext(r.Context()); sess != nil {
		for _, msg := range flashes {
			sess.AddFlash(msg)
		}
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// serverError logs an unexpected error with the request id and renders a 500 response
func (h *BaseHandler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logError(r, msg, err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func (h *BaseHandler) logError(r *http.Request, msg string, err error) {
	h.logger.Error(msg,
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
}

// currentSession returns the request's session. The session middleware guarantees one on every page route.
func currentSession(r *http.Request) *session.Session {
	if sess := session.FromContext(r.Context()); sess != nil {
		return sess
	}
	return session.New("")
}

// pathInt parses a numeric URL parameter
func pathInt(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, false
	}
	return n, true
}
