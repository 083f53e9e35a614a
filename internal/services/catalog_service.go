package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/cakebakery/backend/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CakeRepository is the interface that wraps methods for Cakes table data access
type CakeRepository interface {
	// Method GetAll retrieves cakes, restricted to an exact "category" match when it is not empty.
	GetAll(ctx context.Context, category string) ([]models.Cake, error)
	// Method GetCategories retrieves the distinct non-empty categories.
	GetCategories(ctx context.Context) ([]string, error)
	// Method GetByID retrieves a cake by ID.
	//
	// If cake with such ID does not exist, models.ErrCakeNotFound is returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Cake, error)
	// Method Create inserts a cake and sets its ID.
	Create(ctx context.Context, cake *models.Cake) error
	// Method Update replaces all fields of the cake identified by cake.ID.
	//
	// If cake with such ID does not exist, models.ErrCakeNotFound is returned.
	Update(ctx context.Context, cake *models.Cake) error
	// Method Delete removes a cake by ID.
	//
	// If cake with such ID does not exist, models.ErrCakeNotFound is returned.
	Delete(ctx context.Context, id int) error
}

type catalogService struct {
	repo      CakeRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo CakeRepository, logger *zap.Logger) *catalogService {
	return &catalogService{
		repo:      repo,
		validator: newValidator(),
		logger:    logger,
	}
}

// ListCakes retrieves the catalog, optionally filtered by exact category
func (s *catalogService) ListCakes(ctx context.Context, category string) ([]models.Cake, error) {
	cakes, err := s.repo.GetAll(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, fmt.Errorf("failed to list cakes: %w", err)
	}
	return cakes, nil
}

// Categories retrieves the categories available for filtering
func (s *catalogService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetCake retrieves a cake by ID
func (s *catalogService) GetCake(ctx context.Context, id int) (*models.Cake, error) {
	if id <= 0 {
		return nil, models.ErrCakeNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// CreateCake validates the form and inserts a new cake
func (s *catalogService) CreateCake(ctx context.Context, req *models.CakeRequest) (*models.Cake, error) {
	cake, err := s.cakeFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, cake); err != nil {
		return nil, fmt.Errorf("failed to create cake: %w", err)
	}

	s.logger.Info("cake created", zap.Int("id", cake.ID), zap.String("name", cake.Name))
	return cake, nil
}

// UpdateCake validates the form and replaces every field of the cake with the given ID
func (s *catalogService) UpdateCake(ctx context.Context, id int, req *models.CakeRequest) (*models.Cake, error) {
	if id <= 0 {
		return nil, models.ErrCakeNotFound
	}

	cake, err := s.cakeFromRequest(req)
	if err != nil {
		return nil, err
	}
	cake.ID = id

	if err := s.repo.Update(ctx, cake); err != nil {
		return nil, err
	}

	s.logger.Info("cake updated", zap.Int("id", cake.ID))
	return cake, nil
}

// DeleteCake removes a cake. Historical orders are unaffected.
func (s *catalogService) DeleteCake(ctx context.Context, id int) error {
	if id <= 0 {
		return models.ErrCakeNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("cake deleted", zap.Int("id", id))
	return nil
}

func (s *catalogService) cakeFromRequest(req *models.CakeRequest) (*models.Cake, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Price = strings.TrimSpace(req.Price)
	req.Image = strings.TrimSpace(req.Image)
	req.Category = strings.TrimSpace(req.Category)

	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, &models.ValidationError{Field: "Price", Message: priceMessage}
	}

	return &models.Cake{
		Name:        req.Name,
		Price:       price,
		Description: req.Description,
		Image:       req.Image,
		Category:    req.Category,
	}, nil
}
