package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/cakebakery/backend/internal/models"
	"github.com/cakebakery/backend/internal/views"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminCatalogService is the interface that wraps catalog management.
type AdminCatalogService interface {
	// Method ListCakes retrieves cakes; an empty "category" returns all of them.
	ListCakes(ctx context.Context, category string) ([]models.Cake, error)
	// Method GetCake retrieves a cake by ID.
	//
	// If cake with such ID does not exist, models.ErrCakeNotFound is returned together with "nil" value.
	GetCake(ctx context.Context, id int) (*models.Cake, error)
	// Method CreateCake validates the form and inserts a cake.
	//
	// Invalid input is returned as *models.ValidationError.
	CreateCake(ctx context.Context, req *models.CakeRequest) (*models.Cake, error)
	// Method UpdateCake validates the form and replaces every field of the cake.
	//
	// Invalid input is returned as *models.ValidationError, an unknown ID as models.ErrCakeNotFound.
	UpdateCake(ctx context.Context, id int, req *models.CakeRequest) (*models.Cake, error)
	// Method DeleteCake removes a cake.
	//
	// If cake with such ID does not exist, models.ErrCakeNotFound is returned.
	DeleteCake(ctx context.Context, id int) error
}

// AdminOrderService is the interface that wraps order management and analytics.
type AdminOrderService interface {
	// Method AllOrders retrieves every order with its owner's username.
	AllOrders(ctx context.Context) ([]models.OrderWithUser, error)
	// Method UpdateStatus sets an order's status.
	//
	// An unknown status yields models.ErrInvalidStatus, an unknown ID models.ErrOrderNotFound.
	UpdateStatus(ctx context.Context, id int, status string) error
	// Method Analytics computes order counts by status and by cake.
	Analytics(ctx context.Context) (*models.Analytics, error)
}

// AdminUserService is the interface that wraps user management.
type AdminUserService interface {
	// Method ListUsers retrieves every user.
	ListUsers(ctx context.Context) ([]models.User, error)
	// Method UpdateRole sets a user's role.
	//
	// An unknown role yields models.ErrInvalidRole, an unknown ID models.ErrUserNotFound.
	UpdateRole(ctx context.Context, id int, role string) error
	// Method DeleteUser removes "targetUserID" on behalf of "actingUserID".
	//
	// Deleting oneself yields models.ErrSelfDelete.
	DeleteUser(ctx context.Context, actingUserID, targetUserID int) error
}

// AdminHandler serves the back-office. Routes must be mounted behind middleware.RequireAdmin.
type AdminHandler struct {
	BaseHandler
	catalog AdminCatalogService
	orders  AdminOrderService
	users   AdminUserService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	catalog AdminCatalogService,
	orders AdminOrderService,
	users AdminUserService,
	renderer PageRenderer,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler: BaseHandler{logger: logger, renderer: renderer},
		catalog:     catalog,
		orders:      orders,
		users:       users,
	}
}

// RegisterRoutes registers admin routes relative to the /admin mount point
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.Dashboard)
	r.Get("/analytics", h.Analytics)
	r.Get("/analytics/data", h.AnalyticsData)

	r.Get("/add_cake", h.AddCakeForm)
	r.Post("/add_cake", h.AddCake)
	r.Get("/edit_cake/{id}", h.EditCakeForm)
	r.Post("/edit_cake/{id}", h.EditCake)
	r.Get("/delete_cake/{id}", h.DeleteCakeConfirm)
	r.Post("/delete_cake/{id}", h.DeleteCake)

	r.Post("/update_order/{id}", h.UpdateOrder)
	r.Post("/update_user_role/{id}", h.UpdateUserRole)
	r.Post("/delete_user/{id}", h.DeleteUser)
}

const dashboardURL = "/admin/dashboard"

// Dashboard handles GET /admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orders, err := h.orders.AllOrders(ctx)
	if err != nil {
		h.serverError(w, r, "failed to get orders", err)
		return
	}
	users, err := h.users.ListUsers(ctx)
	if err != nil {
		h.serverError(w, r, "failed to get users", err)
		return
	}
	cakes, err := h.catalog.ListCakes(ctx, "")
	if err != nil {
		h.serverError(w, r, "failed to get cakes", err)
		return
	}
	analytics, err := h.orders.Analytics(ctx)
	if err != nil {
		h.serverError(w, r, "failed to get analytics", err)
		return
	}

	h.render(w, r, http.StatusOK, views.PageAdminDashboard, "Admin dashboard", views.AdminDashboardData{
		Orders:        orders,
		Users:         users,
		Cakes:         cakes,
		Analytics:     analytics,
		CurrentUserID: currentSession(r).UserID(),
	})
}

// Analytics handles GET /admin/analytics
func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.orders.Analytics(r.Context())
	if err != nil {
		h.serverError(w, r, "failed to get analytics", err)
		return
	}

	h.render(w, r, http.StatusOK, views.PageAnalytics, "Analytics", views.AnalyticsData{Analytics: analytics})
}

// AnalyticsData handles GET /admin/analytics/data
func (h *AdminHandler) AnalyticsData(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.orders.Analytics(r.Context())
	if err != nil {
		h.logError(r, "failed to get analytics", err)
		h.respondError(w, http.StatusInternalServerError, "failed to get analytics")
		return
	}

	h.respondJSON(w, http.StatusOK, analytics)
}

// AddCakeForm handles GET /admin/add_cake
func (h *AdminHandler) AddCakeForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.PageAddCake, "Add cake", views.CakeFormData{})
}

// AddCake handles POST /admin/add_cake
func (h *AdminHandler) AddCake(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseCakeForm(w, r, views.PageAddCake, 0)
	if !ok {
		return
	}

	if _, err := h.catalog.CreateCake(r.Context(), req); err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			h.render(w, r, http.StatusBadRequest, views.PageAddCake, "Add cake", views.CakeFormData{Form: *req, Error: vErr.Message})
			return
		}
		h.logError(r, "failed to create cake", err)
		h.redirect(w, r, dashboardURL, flashCakeSaveFailed)
		return
	}

	h.redirect(w, r, dashboardURL, flashCakeAdded)
}

// EditCakeForm handles GET /admin/edit_cake/{id}
func (h *AdminHandler) EditCakeForm(w http.ResponseWriter, r *http.Request) {
	cake, ok := h.loadCake(w, r)
	if !ok {
		return
	}

	h.render(w, r, http.StatusOK, views.PageEditCake, "Edit cake", views.CakeFormFromCake(cake))
}

// EditCake handles POST /admin/edit_cake/{id}
func (h *AdminHandler) EditCake(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		h.redirect(w, r, dashboardURL, flashCakeNotFound)
		return
	}

	req, ok := h.parseCakeForm(w, r, views.PageEditCake, id)
	if !ok {
		return
	}

	if _, err := h.catalog.UpdateCake(r.Context(), id, req); err != nil {
		var vErr *models.ValidationError
		switch {
		case errors.As(err, &vErr):
			h.render(w, r, http.StatusBadRequest, views.PageEditCake, "Edit cake", views.CakeFormData{ID: id, Form: *req, Error: vErr.Message})
		case errors.Is(err, models.ErrCakeNotFound):
			h.redirect(w, r, dashboardURL, flashCakeNotFound)
		default:
			h.logError(r, "failed to update cake", err)
			h.redirect(w, r, dashboardURL, flashCakeSaveFailed)
		}
		return
	}

	h.redirect(w, r, dashboardURL, flashCakeUpdated)
}

// DeleteCakeConfirm handles GET /admin/delete_cake/{id}
func (h *AdminHandler) DeleteCakeConfirm(w http.ResponseWriter, r *http.Request) {
	cake, ok := h.loadCake(w, r)
	if !ok {
		return
	}

	h.render(w, r, http.StatusOK, views.PageDeleteCake, "Delete cake", views.DeleteCakeData{Cake: cake})
}

// DeleteCake handles POST /admin/delete_cake/{id}
func (h *AdminHandler) DeleteCake(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		h.redirect(w, r, dashboardURL, flashCakeNotFound)
		return
	}

	if err := h.catalog.DeleteCake(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrCakeNotFound) {
			h.redirect(w, r, dashboardURL, flashCakeNotFound)
			return
		}
		h.logError(r, "failed to delete cake", err)
		h.redirect(w, r, dashboardURL, flashSomethingWentWrong)
		return
	}

	h.redirect(w, r, dashboardURL, flashCakeDeleted)
}

// UpdateOrder handles POST /admin/update_order/{id}
func (h *AdminHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		h.redirect(w, r, dashboardURL, flashOrderNotFound)
		return
	}

	err := h.orders.UpdateStatus(r.Context(), id, r.PostFormValue("status"))
	switch {
	case err == nil:
		h.redirect(w, r, dashboardURL, flashOrderUpdated)
	case errors.Is(err, models.ErrInvalidStatus):
		h.redirect(w, r, dashboardURL, flashInvalidStatus)
	case errors.Is(err, models.ErrOrderNotFound):
		h.redirect(w, r, dashboardURL, flashOrderNotFound)
	default:
		h.logError(r, "failed to update order", err)
		h.redirect(w, r, dashboardURL, flashSomethingWentWrong)
	}
}

// UpdateUserRole handles POST /admin/update_user_role/{id}.
// An admin changing their own role sees the change in their session immediately.
func (h *AdminHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		h.redirect(w, r, dashboardURL, flashUserNotFound)
		return
	}

	role := r.PostFormValue("role")
	err := h.users.UpdateRole(r.Context(), id, role)
	switch {
	case err == nil:
		sess := currentSession(r)
		if sess.UserID() == id {
			sess.SetUser(&models.User{ID: id, Username: sess.Username(), Role: models.Role(role)})
		}
		h.redirect(w, r, dashboardURL, flashRoleUpdated)
	case errors.Is(err, models.ErrInvalidRole):
		h.redirect(w, r, dashboardURL, flashInvalidRole)
	case errors.Is(err, models.ErrUserNotFound):
		h.redirect(w, r, dashboardURL, flashUserNotFound)
	default:
		h.logError(r, "failed to update user role", err)
		h.redirect(w, r, dashboardURL, flashSomethingWentWrong)
	}
}

// DeleteUser handles POST /admin/delete_user/{id}
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		h.redirect(w, r, dashboardURL, flashUserNotFound)
		return
	}

	err := h.users.DeleteUser(r.Context(), currentSession(r).UserID(), id)
	switch {
	case err == nil:
		h.redirect(w, r, dashboardURL, flashUserDeleted)
	case errors.Is(err, models.ErrSelfDelete):
		h.redirect(w, r, dashboardURL, flashSelfDelete)
	case errors.Is(err, models.ErrUserNotFound):
		h.redirect(w, r, dashboardURL, flashUserNotFound)
	default:
		h.logError(r, "failed to delete user", err)
		h.redirect(w, r, dashboardURL, flashSomethingWentWrong)
	}
}

// loadCake fetches the cake named by the {id} parameter, redirecting with a flash when it does not exist
func (h *AdminHandler) loadCake(w http.ResponseWriter, r *http.Request) (*models.Cake, bool) {
	id, ok := pathInt(r, "id")
	if !ok {
		h.redirect(w, r, dashboardURL, flashCakeNotFound)
		return nil, false
	}

	cake, err := h.catalog.GetCake(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrCakeNotFound) {
			h.redirect(w, r, dashboardURL, flashCakeNotFound)
			return nil, false
		}
		h.serverError(w, r, "failed to get cake", err)
		return nil, false
	}

	return cake, true
}

func (h *AdminHandler) parseCakeForm(w http.ResponseWriter, r *http.Request, page string, id int) (*models.CakeRequest, bool) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, page, "Cake", views.CakeFormData{ID: id, Error: "Invalid form submission."})
		return nil, false
	}

	return &models.CakeRequest{
		Name:        r.PostFormValue("name"),
		Price:       r.PostFormValue("price"),
		Description: r.PostFormValue("description"),
		Image:       r.PostFormValue("image"),
		Category:    r.PostFormValue("category"),
	}, true
}
