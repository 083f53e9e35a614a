package handlers

import (
	"context"
	"net/http"

	"github.com/cakebakery/backend/internal/models"
	"github.com/cakebakery/backend/internal/views"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrderHistoryService is the interface that wraps a user's order history.
type OrderHistoryService interface {
	// Method UserOrders retrieves the user's orders, most recent first.
	UserOrders(ctx context.Context, userID int) ([]models.Order, error)
}

// UserHandler serves the logged-in user's dashboard
type UserHandler struct {
	BaseHandler
	service OrderHistoryService
}

// NewUserHandler creates a new user dashboard handler
func NewUserHandler(svc OrderHistoryService, renderer PageRenderer, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: BaseHandler{logger: logger, renderer: renderer},
		service:     svc,
	}
}

// RegisterRoutes registers the user dashboard routes
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/user/dashboard", h.Dashboard)
}

// Dashboard handles GET /user/dashboard
func (h *UserHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.UserOrders(r.Context(), currentSession(r).UserID())
	if err != nil {
		h.serverError(w, r, "failed to get user orders", err)
		return
	}

	h.render(w, r, http.StatusOK, views.PageUserDashboard, "My orders", views.UserDashboardData{Orders: orders})
}
