package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/cakebakery/backend/internal/models"
	"go.uber.org/zap"
)

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

// CreateBatch inserts one Pending order per cake name for the user.
// All rows are written in a single transaction: either every order is created or none is.
func (r *orderRepository) CreateBatch(ctx context.Context, userID int, cakeNames []string) error {
	if len(cakeNames) == 0 {
		return models.ErrEmptyCart
	}

	placeholders := make([]string, len(cakeNames))
	args := make([]any, 0, len(cakeNames)*3)
	for i, name := range cakeNames {
		placeholders[i] = "(?, ?, ?)"
		args = append(args, userID, name, models.OrderStatusPending)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
		INSERT INTO orders (user_id, cake_name, status)
		VALUES %s
	`, strings.Join(placeholders, ","))

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("failed to create orders", zap.Error(err), zap.Int("userID", userID), zap.Int("count", len(cakeNames)))
		return fmt.Errorf("failed to create orders: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByUserID retrieves a user's orders, most recent first
func (r *orderRepository) GetByUserID(ctx context.Context, userID int) ([]models.Order, error) {
	query := `
		SELECT id, user_id, cake_name, status, created_at
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to query user orders", zap.Error(err), zap.Int("userID", userID))
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CakeName, &o.Status, &o.CreatedAt); err != nil {
			r.logger.Error("failed to scan order", zap.Error(err))
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return orders, nil
}

// GetAllWithUsers retrieves every order with its owner's username, most recent first.
// Orders of deleted users are included with an empty username.
func (r *orderRepository) GetAllWithUsers(ctx context.Context) ([]models.OrderWithUser, error) {
	query := `
		SELECT o.id, o.user_id, o.cake_name, o.status, o.created_at, COALESCE(u.username, '')
		FROM orders o
		LEFT JOIN users u ON o.user_id = u.id
		ORDER BY o.created_at DESC, o.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query orders", zap.Error(err))
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []models.OrderWithUser
	for rows.Next() {
		var o models.OrderWithUser
		if err := rows.Scan(&o.ID, &o.UserID, &o.CakeName, &o.Status, &o.CreatedAt, &o.Username); err != nil {
			r.logger.Error("failed to scan order", zap.Error(err))
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return orders, nil
}

// UpdateStatus overwrites an order's status
func (r *orderRepository) UpdateStatus(ctx context.Context, id int, status models.OrderStatus) error {
	query := `UPDATE orders SET status = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		r.logger.Error("failed to update order status", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to update order status: %w", err)
	}

	return requireAffected(result, models.ErrOrderNotFound)
}

// CountByStatus counts orders grouped by status
func (r *orderRepository) CountByStatus(ctx context.Context) ([]models.StatusCount, error) {
	query := `
		SELECT status, COUNT(*) AS count
		FROM orders
		GROUP BY status
		ORDER BY status
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to count orders by status", zap.Error(err))
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}
	defer rows.Close()

	var counts []models.StatusCount
	for rows.Next() {
		var sc models.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts = append(counts, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return counts, nil
}

// CountByCakeName counts orders grouped by cake name
func (r *orderRepository) CountByCakeName(ctx context.Context) ([]models.CakeSales, error) {
	query := `
		SELECT cake_name, COUNT(*) AS count
		FROM orders
		GROUP BY cake_name
		ORDER BY count DESC, cake_name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to count orders by cake", zap.Error(err))
		return nil, fmt.Errorf("failed to count orders by cake: %w", err)
	}
	defer rows.Close()

	var sales []models.CakeSales
	for rows.Next() {
		var cs models.CakeSales
		if err := rows.Scan(&cs.CakeName, &cs.Count); err != nil {
			return nil, fmt.Errorf("failed to scan cake sales: %w", err)
		}
		sales = append(sales, cs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return sales, nil
}
