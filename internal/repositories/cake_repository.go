package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cakebakery/backend/internal/models"
	"go.uber.org/zap"
)

type cakeRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCakeRepository creates a new cake repository
func NewCakeRepository(db *sql.DB, logger *zap.Logger) *cakeRepository {
	return &cakeRepository{
		db:     db,
		logger: logger,
	}
}

// GetAll retrieves cakes ordered by id.
// A non-empty category restricts the result to cakes with exactly that category.
func (r *cakeRepository) GetAll(ctx context.Context, category string) ([]models.Cake, error) {
	query := `
		SELECT id, name, price, description, image, category
		FROM cakes
	`
	args := []any{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query cakes", zap.Error(err), zap.String("category", category))
		return nil, fmt.Errorf("failed to query cakes: %w", err)
	}
	defer rows.Close()

	var cakes []models.Cake
	for rows.Next() {
		var cake models.Cake
		if err := rows.Scan(&cake.ID, &cake.Name, &cake.Price, &cake.Description, &cake.Image, &cake.Category); err != nil {
			r.logger.Error("failed to scan cake", zap.Error(err))
			return nil, fmt.Errorf("failed to scan cake: %w", err)
		}
		cakes = append(cakes, cake)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return cakes, nil
}

// GetCategories retrieves the distinct non-empty categories in alphabetical order
func (r *cakeRepository) GetCategories(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT category
		FROM cakes
		WHERE category <> ''
		ORDER BY category
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query categories", zap.Error(err))
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return categories, nil
}

// GetByID retrieves a cake by its ID
func (r *cakeRepository) GetByID(ctx context.Context, id int) (*models.Cake, error) {
	query := `
		SELECT id, name, price, description, image, category
		FROM cakes
		WHERE id = ?
	`

	var cake models.Cake
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&cake.ID,
		&cake.Name,
		&cake.Price,
		&cake.Description,
		&cake.Image,
		&cake.Category,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrCakeNotFound
		}
		r.logger.Error("failed to query cake by id", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to query cake: %w", err)
	}

	return &cake, nil
}

// Create inserts a cake and sets its ID
func (r *cakeRepository) Create(ctx context.Context, cake *models.Cake) error {
	query := `
		INSERT INTO cakes (name, price, description, image, category)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, cake.Name, cake.Price, cake.Description, cake.Image, cake.Category)
	if err != nil {
		r.logger.Error("failed to create cake", zap.Error(err), zap.String("name", cake.Name))
		return fmt.Errorf("failed to create cake: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	cake.ID = int(id)
	return nil
}

// Update replaces every field of the cake with the given ID
func (r *cakeRepository) Update(ctx context.Context, cake *models.Cake) error {
	query := `
		UPDATE cakes
		SET name = ?, price = ?, description = ?, image = ?, category = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, cake.Name, cake.Price, cake.Description, cake.Image, cake.Category, cake.ID)
	if err != nil {
		r.logger.Error("failed to update cake", zap.Error(err), zap.Int("id", cake.ID))
		return fmt.Errorf("failed to update cake: %w", err)
	}

	return requireAffected(result, models.ErrCakeNotFound)
}

// Delete removes a cake by ID. Orders keep their copy of the cake name.
func (r *cakeRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM cakes WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("failed to delete cake", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete cake: %w", err)
	}

	return requireAffected(result, models.ErrCakeNotFound)
}
