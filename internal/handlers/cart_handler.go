package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cakebakery/backend/internal/models"
	"github.com/cakebakery/backend/internal/views"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CartService is the interface that wraps cart and checkout operations.
type CartService interface {
	// Method AddToCart appends a line for the cake to "cart".
	//
	// If cake with such ID does not exist, models.ErrCakeNotFound is returned and the cart is unchanged.
	// If the cart already holds models.MaxCartUnits cakes, models.ErrCartFull is returned.
	AddToCart(ctx context.Context, cart *models.Cart, cakeID int) (*models.CartItem, error)
	// Method Checkout creates one Pending order per cart unit and clears the cart.
	//
	// An empty cart yields models.ErrEmptyCart and an oversized one models.ErrCartFull. On any error the cart is left unchanged.
	Checkout(ctx context.Context, userID int, cart *models.Cart) (int, error)
}

// CartHandler handles the session cart and checkout. All routes require a logged-in user.
type CartHandler struct {
	BaseHandler
	service CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(svc CartService, renderer PageRenderer, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		BaseHandler: BaseHandler{logger: logger, renderer: renderer},
		service:     svc,
	}
}

// RegisterRoutes registers the cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Get("/add_to_cart/{cakeID}", h.AddToCart)
	r.Get("/cart", h.Cart)
	r.Get("/remove_from_cart/{index}", h.RemoveFromCart)
	r.Get("/checkout", h.Checkout)
}

// AddToCart handles GET /add_to_cart/{cakeID}.
// Unknown cakes are ignored. A full cart sends the visitor to /cart instead.
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	cakeID, ok := pathInt(r, "cakeID")
	if !ok {
		h.redirect(w, r, "/shop")
		return
	}

	item, err := h.service.AddToCart(r.Context(), currentSession(r).Cart(), cakeID)
	if err != nil {
		if errors.Is(err, models.ErrCartFull) {
			h.redirect(w, r, "/cart", fmt.Sprintf(flashCartFullFormat, models.MaxCartUnits))
			return
		}
		if !errors.Is(err, models.ErrCakeNotFound) {
			h.logError(r, "failed to add to cart", err)
			h.redirect(w, r, "/shop", flashSomethingWentWrong)
			return
		}
		h.redirect(w, r, "/shop")
		return
	}

	h.redirect(w, r, "/shop", fmt.Sprintf(flashAddedToCartFormat, item.Name))
}

// Cart handles GET /cart
func (h *CartHandler) Cart(w http.ResponseWriter, r *http.Request) {
	cart := currentSession(r).Cart()
	h.render(w, r, http.StatusOK, views.PageCart, "Cart", views.CartData{
		Items: cart.Items,
		Total: cart.Total(),
	})
}

// RemoveFromCart handles GET /remove_from_cart/{index}.
// Invalid or out-of-range indices are ignored.
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	if index, ok := pathInt(r, "index"); ok {
		currentSession(r).Cart().RemoveAt(index)
	}
	h.redirect(w, r, "/cart")
}

// Checkout handles GET /checkout
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	_, err := h.service.Checkout(r.Context(), sess.UserID(), sess.Cart())
	if err != nil {
		if errors.Is(err, models.ErrEmptyCart) {
			h.redirect(w, r, "/cart", flashCartEmpty)
			return
		}
		if errors.Is(err, models.ErrCartFull) {
			h.redirect(w, r, "/cart", fmt.Sprintf(flashCartFullFormat, models.MaxCartUnits))
			return
		}
		h.logError(r, "checkout failed", err)
		h.redirect(w, r, "/cart", flashOrderFailed)
		return
	}

	h.redirect(w, r, "/user/dashboard", flashOrderPlaced)
}
