package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cakebakery/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(repo AuthUserRepository) *authService {
	svc := NewAuthService(repo, zap.NewNop())
	svc.hashCost = bcrypt.MinCost
	return svc
}

func TestNewAuthService(t *testing.T) {
	logger := zap.NewNop()
	repo := newMockUserRepository()

	svc := NewAuthService(repo, logger)

	assert.NotNil(t, svc)
	assert.Equal(t, repo, svc.userRepo)
	assert.Equal(t, logger, svc.logger)
	assert.Equal(t, bcrypt.DefaultCost, svc.hashCost)
	assert.NotNil(t, svc.validator)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		req           models.RegisterRequest
		repo          *mockUserRepository
		expectedErr   error
		expectedField string
	}{
		{
			name: "success",
			req:  models.RegisterRequest{Username: "alice", Password: "secret1"},
			repo: newMockUserRepository(),
		},
		{
			name: "username is trimmed",
			req:  models.RegisterRequest{Username: "  bob  ", Password: "secret1"},
			repo: newMockUserRepository(),
		},
		{
			name:        "duplicate username",
			req:         models.RegisterRequest{Username: "alice", Password: "secret1"},
			repo:        newMockUserRepository(&models.User{ID: 1, Username: "alice", Role: models.RoleUser}),
			expectedErr: models.ErrDuplicateUsername,
		},
		{
			name:          "empty username",
			req:           models.RegisterRequest{Username: "   ", Password: "secret1"},
			repo:          newMockUserRepository(),
			expectedField: "Username",
		},
		{
			name:          "short username",
			req:           models.RegisterRequest{Username: "al", Password: "secret1"},
			repo:          newMockUserRepository(),
			expectedField: "Username",
		},
		{
			name:          "short password",
			req:           models.RegisterRequest{Username: "alice", Password: "123"},
			repo:          newMockUserRepository(),
			expectedField: "Password",
		},
		{
			name:          "password over 72 bytes",
			req:           models.RegisterRequest{Username: "alice", Password: strings.Repeat("é", 40)},
			repo:          newMockUserRepository(),
			expectedField: "Password",
		},
		{
			name: "password of exactly 72 bytes",
			req:  models.RegisterRequest{Username: "alice", Password: strings.Repeat("é", 36)},
			repo: newMockUserRepository(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(tt.repo)
			req := tt.req

			user, err := svc.Register(context.Background(), &req)

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, user)
			case tt.expectedField != "":
				var vErr *models.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.expectedField, vErr.Field)
				assert.NotEmpty(t, vErr.Message)
				assert.Nil(t, user)
			default:
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.NotZero(t, user.ID)
				assert.Equal(t, models.RoleUser, user.Role)
				assert.NotEqual(t, tt.req.Password, user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.req.Password)))
			}
		})
	}
}

func TestAuthService_Register_RepositoryError(t *testing.T) {
	repo := newMockUserRepository()
	repo.err = errors.New("connection refused")
	svc := newTestAuthService(repo)

	user, err := svc.Register(context.Background(), &models.RegisterRequest{Username: "alice", Password: "secret1"})

	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrDuplicateUsername)
	assert.Nil(t, user)
}

func TestAuthService_Login(t *testing.T) {
	svc := newTestAuthService(newMockUserRepository())
	_, err := svc.Register(context.Background(), &models.RegisterRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	tests := []struct {
		name        string
		username    string
		password    string
		expectedErr error
	}{
		{name: "success", username: "alice", password: "secret1"},
		{name: "success with padded username", username: " alice ", password: "secret1"},
		{name: "wrong password", username: "alice", password: "wrong", expectedErr: models.ErrInvalidCredentials},
		{name: "unknown user", username: "mallory", password: "secret1", expectedErr: models.ErrInvalidCredentials},
		{name: "empty password", username: "alice", password: "", expectedErr: models.ErrInvalidCredentials},
		{name: "empty username", username: "", password: "secret1", expectedErr: models.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Login(context.Background(), &models.LoginRequest{Username: tt.username, Password: tt.password})

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "alice", user.Username)
			assert.Equal(t, models.RoleUser, user.Role)
		})
	}
}

func TestAuthService_Login_ReturnsStoredRole(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := newMockUserRepository(&models.User{ID: 7, Username: "admin", PasswordHash: string(hash), Role: models.RoleAdmin})
	svc := newTestAuthService(repo)

	user, err := svc.Login(context.Background(), &models.LoginRequest{Username: "admin", Password: "admin123"})

	require.NoError(t, err)
	assert.Equal(t, 7, user.ID)
	assert.True(t, user.IsAdmin())
}

func TestAuthService_Login_RepositoryError(t *testing.T) {
	repo := newMockUserRepository()
	repo.err = errors.New("connection refused")
	svc := newTestAuthService(repo)

	user, err := svc.Login(context.Background(), &models.LoginRequest{Username: "alice", Password: "secret1"})

	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrInvalidCredentials)
	assert.Nil(t, user)
}
