package services

import (
	"context"
	"fmt"

	"github.com/cakebakery/backend/internal/metrics"
	"github.com/cakebakery/backend/internal/models"
	"go.uber.org/zap"
)

// CartCakeRepository is the interface that wraps the cake lookup used when adding to a cart
type CartCakeRepository interface {
	// Method GetByID retrieves a cake by ID.
	//
	// If cake with such ID does not exist, models.ErrCakeNotFound is returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Cake, error)
}

// CheckoutOrderRepository is the interface that wraps order creation at checkout
type CheckoutOrderRepository interface {
	// Method CreateBatch inserts one Pending order per cake name, all or nothing.
	CreateBatch(ctx context.Context, userID int, cakeNames []string) error
}

type cartService struct {
	cakeRepo  CartCakeRepository
	orderRepo CheckoutOrderRepository
	logger    *zap.Logger
}

// NewCartService creates a new cart and checkout service
func NewCartService(cakeRepo CartCakeRepository, orderRepo CheckoutOrderRepository, logger *zap.Logger) *cartService {
	return &cartService{
		cakeRepo:  cakeRepo,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// AddToCart appends a line for the cake to cart and returns it.
// An unknown cake yields models.ErrCakeNotFound and a cart holding models.MaxCartUnits
// yields models.ErrCartFull. Either way the cart is unchanged.
func (s *cartService) AddToCart(ctx context.Context, cart *models.Cart, cakeID int) (*models.CartItem, error) {
	if cakeID <= 0 {
		return nil, models.ErrCakeNotFound
	}
	if cart.Full() {
		return nil, models.ErrCartFull
	}

	cake, err := s.cakeRepo.GetByID(ctx, cakeID)
	if err != nil {
		return nil, err
	}

	item := cart.Add(cake)
	return &item, nil
}

// Checkout turns every unit in the cart into a Pending order for the user and clears the cart.
//
// The orders are created atomically; on failure the cart is left as it was.
// Returns the number of orders created.
func (s *cartService) Checkout(ctx context.Context, userID int, cart *models.Cart) (int, error) {
	if cart.Len() == 0 {
		return 0, models.ErrEmptyCart
	}
	if cart.Units() > models.MaxCartUnits {
		return 0, models.ErrCartFull
	}

	names := cart.CakeNames()
	if err := s.orderRepo.CreateBatch(ctx, userID, names); err != nil {
		s.logger.Error("checkout failed", zap.Error(err), zap.Int("userID", userID))
		return 0, fmt.Errorf("failed to place orders: %w", err)
	}

	cart.Clear()
	metrics.OrdersPlaced.Add(float64(len(names)))
	s.logger.Info("orders placed", zap.Int("userID", userID), zap.Int("count", len(names)))
	return len(names), nil
}
