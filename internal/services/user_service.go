package services

import (
	"context"
	"fmt"

	"github.com/cakebakery/backend/internal/models"
	"go.uber.org/zap"
)

// AdminUserRepository is the interface that wraps methods for User table data access used by admins
type AdminUserRepository interface {
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, models.ErrUserNotFound is returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.User, error)
	// Method GetAll retrieves all users.
	GetAll(ctx context.Context) ([]models.User, error)
	// Method UpdateRole overwrites a user's role.
	//
	// If user with such ID does not exist, models.ErrUserNotFound is returned.
	UpdateRole(ctx context.Context, id int, role models.Role) error
	// Method Delete removes a user by ID.
	//
	// If user with such ID does not exist, models.ErrUserNotFound is returned.
	Delete(ctx context.Context, id int) error
}

type userService struct {
	repo   AdminUserRepository
	logger *zap.Logger
}

// NewUserService creates a new user management service
func NewUserService(repo AdminUserRepository, logger *zap.Logger) *userService {
	return &userService{
		repo:   repo,
		logger: logger,
	}
}

// ListUsers retrieves every user
func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CurrentRole returns the stored role of the user, which may differ from what their session remembers
func (s *userService) CurrentRole(ctx context.Context, id int) (models.Role, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// UpdateRole sets a user's role. Only "user" and "admin" are accepted.
func (s *userService) UpdateRole(ctx context.Context, id int, role string) error {
	r, err := models.ParseRole(role)
	if err != nil {
		return err
	}
	if id <= 0 {
		return models.ErrUserNotFound
	}

	if err := s.repo.UpdateRole(ctx, id, r); err != nil {
		return err
	}

	s.logger.Info("user role updated", zap.Int("id", id), zap.String("role", string(r)))
	return nil
}

// DeleteUser removes the target user on behalf of actingUserID.
// An admin cannot delete their own account.
func (s *userService) DeleteUser(ctx context.Context, actingUserID, targetUserID int) error {
	if actingUserID == targetUserID {
		return models.ErrSelfDelete
	}
	if targetUserID <= 0 {
		return models.ErrUserNotFound
	}

	if err := s.repo.Delete(ctx, targetUserID); err != nil {
		return err
	}

	s.logger.Info("user deleted", zap.Int("id", targetUserID), zap.Int("by", actingUserID))
	return nil
}
