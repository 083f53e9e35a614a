package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/cakebakery/backend/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SeedUserRepository is the interface that wraps User table access needed for seeding
type SeedUserRepository interface {
	// Method Create inserts a new user into the database.
	Create(ctx context.Context, user *models.User) error
	// Method ExistsByRole checks if at least one user has the role.
	ExistsByRole(ctx context.Context, role models.Role) (bool, error)
	// Method ExistsByUsername checks if a user with such username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Method GetByUsername retrieves a user by username.
	//
	// If user with such username does not exist, models.ErrUserNotFound is returned together with "nil" value.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Method UpdateRole overwrites a user's role.
	UpdateRole(ctx context.Context, id int, role models.Role) error
}

// SeedCakeRepository is the interface that wraps Cakes table access needed for seeding
type SeedCakeRepository interface {
	// Method Create inserts a cake and sets its ID.
	Create(ctx context.Context, cake *models.Cake) error
}

type seedService struct {
	userRepo SeedUserRepository
	cakeRepo SeedCakeRepository
	logger   *zap.Logger
}

// NewSeedService creates a service that provisions the admin account and starter catalog
func NewSeedService(userRepo SeedUserRepository, cakeRepo SeedCakeRepository, logger *zap.Logger) *seedService {
	return &seedService{
		userRepo: userRepo,
		cakeRepo: cakeRepo,
		logger:   logger,
	}
}

// EnsureAdmin makes sure at least one user holds the admin role.
// When nobody does, the account named username is promoted if it exists, otherwise created.
// Reports whether an account was created.
func (s *seedService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	exists, err := s.userRepo.ExistsByRole(ctx, models.RoleAdmin)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if username != "" {
		user, err := s.userRepo.GetByUsername(ctx, username)
		switch {
		case err == nil:
			if err := s.userRepo.UpdateRole(ctx, user.ID, models.RoleAdmin); err != nil {
				return false, fmt.Errorf("failed to promote admin: %w", err)
			}
			s.logger.Warn("no admin left, promoted existing account", zap.String("username", username), zap.Int("id", user.ID))
			return false, nil
		case !errors.Is(err, models.ErrUserNotFound):
			return false, fmt.Errorf("failed to look up admin account: %w", err)
		}
	}

	return s.createAdmin(ctx, username, password)
}

// SeedAdmin creates an admin account with the given username unless that username is taken.
// Reports whether an account was created.
func (s *seedService) SeedAdmin(ctx context.Context, username, password string) (bool, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if exists {
		s.logger.Warn("admin already exists, skipping", zap.String("username", username))
		return false, nil
	}

	return s.createAdmin(ctx, username, password)
}

func (s *seedService) createAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, fmt.Errorf("admin username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}

	s.logger.Info("admin account created", zap.String("username", username), zap.Int("id", admin.ID))
	return true, nil
}

// SeedCakes inserts the starter catalog and returns the number of cakes created
func (s *seedService) SeedCakes(ctx context.Context) (int, error) {
	for i, cake := range StarterCatalog() {
		if err := s.cakeRepo.Create(ctx, &cake); err != nil {
			return i, fmt.Errorf("failed to seed cake %q: %w", cake.Name, err)
		}
	}

	n := len(StarterCatalog())
	s.logger.Info("starter catalog inserted", zap.Int("count", n))
	return n, nil
}

// StarterCatalog returns the bakery's initial products
func StarterCatalog() []models.Cake {
	cake := func(name string, price int64, description, image, category string) models.Cake {
		return models.Cake{
			Name:        name,
			Price:       decimal.NewFromInt(price),
			Description: description,
			Image:       image,
			Category:    category,
		}
	}

	return []models.Cake{
		cake("Dark Chocolate Cake", 499, "Rich dark chocolate layered cake",
			"https://images.unsplash.com/photo-1601979031925-424e53b6caaa", "Chocolate"),
		cake("Chocolate Truffle", 599, "Smooth chocolate truffle delight",
			"https://images.unsplash.com/photo-1578985545062-69928b1d9587", "Chocolate"),
		cake("Chocolate Fudge", 549, "Soft chocolate fudge cake",
			"https://images.unsplash.com/photo-1605475129364-4aebc56cbb92", "Chocolate"),

		cake("Birthday Sprinkles Cake", 699, "Colorful cake perfect for birthdays",
			"https://images.unsplash.com/photo-1565958011703-44f9829ba187", "Birthday"),
		cake("Kids Cartoon Cake", 799, "Fun cartoon themed birthday cake",
			"https://images.unsplash.com/photo-1586985289688-ca3cf47d3e6e", "Birthday"),
		cake("Vanilla Celebration Cake", 649, "Classic vanilla birthday cake",
			"https://images.unsplash.com/photo-1542826438-bd32f43d626f", "Birthday"),

		cake("Classic Wedding Cake", 2499, "Elegant multi-layer wedding cake",
			"https://images.unsplash.com/photo-1525253086316-d0c936c814f8", "Wedding"),
		cake("Royal White Wedding Cake", 2999, "Premium white wedding cake",
			"https://images.unsplash.com/photo-1546039907-7fa05f864c02", "Wedding"),
		cake("Floral Wedding Cake", 2799, "Wedding cake with floral design",
			"https://images.unsplash.com/photo-1607083207186-3d4f2f62d04f", "Wedding"),

		cake("Fresh Fruit Cake", 599, "Seasonal fresh fruit cake",
			"https://images.unsplash.com/photo-1606313564200-e75d5e30476c", "Fruit"),
		cake("Strawberry Cream Cake", 649, "Strawberry layered cream cake",
			"https://images.unsplash.com/photo-1588195538326-c5b1e9f80a1b", "Fruit"),

		cake("Red Velvet Cake", 699, "Classic red velvet with cream cheese",
			"https://images.unsplash.com/photo-1614707267537-b85aaf00c4b7", "Special"),
		cake("Blueberry Cheesecake", 749, "Creamy blueberry cheesecake",
			"https://images.unsplash.com/photo-1562440499-64c9a111f713", "Special"),
	}
}
