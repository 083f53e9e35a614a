package services

import (
	"context"
	"fmt"

	"github.com/cakebakery/backend/internal/models"
	"go.uber.org/zap"
)

// OrderRepository is the interface that wraps methods for Orders table data access
type OrderRepository interface {
	// Method GetByUserID retrieves a user's orders, most recent first.
	GetByUserID(ctx context.Context, userID int) ([]models.Order, error)
	// Method GetAllWithUsers retrieves all orders with usernames, most recent first.
	GetAllWithUsers(ctx context.Context) ([]models.OrderWithUser, error)
	// Method UpdateStatus overwrites an order's status.
	//
	// If order with such ID does not exist, models.ErrOrderNotFound is returned.
	UpdateStatus(ctx context.Context, id int, status models.OrderStatus) error
	// Method CountByStatus counts orders grouped by status.
	CountByStatus(ctx context.Context) ([]models.StatusCount, error)
	// Method CountByCakeName counts orders grouped by cake name.
	CountByCakeName(ctx context.Context) ([]models.CakeSales, error)
}

type orderService struct {
	repo   OrderRepository
	logger *zap.Logger
}

// NewOrderService creates a new order and analytics service
func NewOrderService(repo OrderRepository, logger *zap.Logger) *orderService {
	return &orderService{
		repo:   repo,
		logger: logger,
	}
}

// UserOrders retrieves the order history of one user
func (s *orderService) UserOrders(ctx context.Context, userID int) ([]models.Order, error) {
	orders, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user orders: %w", err)
	}
	return orders, nil
}

// AllOrders retrieves every order with its owner's username
func (s *orderService) AllOrders(ctx context.Context) ([]models.OrderWithUser, error) {
	orders, err := s.repo.GetAllWithUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets an order's status.
// The status must be one of models.OrderStatuses, otherwise models.ErrInvalidStatus is returned.
func (s *orderService) UpdateStatus(ctx context.Context, id int, status string) error {
	st, err := models.ParseOrderStatus(status)
	if err != nil {
		return err
	}
	if id <= 0 {
		return models.ErrOrderNotFound
	}

	if err := s.repo.UpdateStatus(ctx, id, st); err != nil {
		return err
	}

	s.logger.Info("order status updated", zap.Int("id", id), zap.String("status", string(st)))
	return nil
}

// Analytics computes order counts by status and by cake name
func (s *orderService) Analytics(ctx context.Context) (*models.Analytics, error) {
	statusCounts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get status distribution: %w", err)
	}

	cakeSales, err := s.repo.CountByCakeName(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get cake sales: %w", err)
	}

	if statusCounts == nil {
		statusCounts = []models.StatusCount{}
	}
	if cakeSales == nil {
		cakeSales = []models.CakeSales{}
	}

	return &models.Analytics{StatusCounts: statusCounts, CakeSales: cakeSales}, nil
}
