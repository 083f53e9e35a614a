package handlers

import (
	"context"
	"net/http"

	"github.com/cakebakery/backend/internal/models"
	"github.com/cakebakery/backend/internal/views"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ShopService is the interface that wraps catalog browsing.
type ShopService interface {
	// Method ListCakes retrieves cakes, restricted to an exact category match when "category" is not empty.
	ListCakes(ctx context.Context, category string) ([]models.Cake, error)
	// Method Categories retrieves the categories offered as filters.
	Categories(ctx context.Context) ([]string, error)
}

// ShopHandler serves the public catalog
type ShopHandler struct {
	BaseHandler
	service ShopService
}

// NewShopHandler creates a new shop handler
func NewShopHandler(svc ShopService, renderer PageRenderer, logger *zap.Logger) *ShopHandler {
	return &ShopHandler{
		BaseHandler: BaseHandler{logger: logger, renderer: renderer},
		service:     svc,
	}
}

// RegisterRoutes registers the shop routes
func (h *ShopHandler) RegisterRoutes(r chi.Router) {
	r.Get("/shop", h.Shop)
}

// Shop handles GET /shop?category=
func (h *ShopHandler) Shop(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	cakes, err := h.service.ListCakes(r.Context(), category)
	if err != nil {
		h.serverError(w, r, "failed to list cakes", err)
		return
	}

	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.serverError(w, r, "failed to list categories", err)
		return
	}

	h.render(w, r, http.StatusOK, views.PageShop, "Shop", views.ShopData{
		Cakes:      cakes,
		Categories: categories,
		Selected:   category,
	})
}
