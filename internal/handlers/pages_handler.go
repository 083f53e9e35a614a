package handlers

import (
	"net/http"

	"github.com/cakebakery/backend/internal/views"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PagesHandler serves the static content pages
type PagesHandler struct {
	BaseHandler
}

// NewPagesHandler creates a new static pages handler
func NewPagesHandler(renderer PageRenderer, logger *zap.Logger) *PagesHandler {
	return &PagesHandler{
		BaseHandler: BaseHandler{logger: logger, renderer: renderer},
	}
}

// RegisterRoutes registers the static page routes
func (h *PagesHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.page(views.PageIndex, "Home"))
	r.Get("/services", h.page(views.PageServices, "Services"))
	r.Get("/about", h.page(views.PageAbout, "About"))
	r.Get("/contact", h.page(views.PageContact, "Contact"))
}

func (h *PagesHandler) page(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, http.StatusOK, name, title, nil)
	}
}
