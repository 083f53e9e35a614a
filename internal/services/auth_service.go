package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cakebakery/backend/internal/metrics"
	"github.com/cakebakery/backend/internal/models"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthUserRepository is the interface that wraps methods for User table data access needed by authentication
type AuthUserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// On success the generated ID is set on "user".
	// If the username is taken, models.ErrDuplicateUsername is returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByUsername retrieves a user by username.
	//
	// If user with such username does not exist, models.ErrUserNotFound is returned together with "nil" value.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type authService struct {
	userRepo  AuthUserRepository
	validator *validator.Validate
	logger    *zap.Logger
	hashCost  int
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo AuthUserRepository, logger *zap.Logger) *authService {
	return &authService{
		userRepo:  userRepo,
		validator: newValidator(),
		logger:    logger,
		hashCost:  bcrypt.DefaultCost,
	}
}

// Register creates a user account with the "user" role.
//
// Form problems are returned as *models.ValidationError; a taken username as models.ErrDuplicateUsername.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(passwordHash),
		Role:         models.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrDuplicateUsername) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	metrics.Registrations.Inc()
	s.logger.Info("user registered", zap.Int("userID", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login verifies credentials and returns the matching user.
//
// Unknown usernames and wrong passwords both yield models.ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validateStruct(s.validator, req); err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, models.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			metrics.LoginAttempts.WithLabelValues("failure").Inc()
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, models.ErrInvalidCredentials
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return user, nil
}
