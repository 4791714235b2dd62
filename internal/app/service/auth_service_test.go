package service

import (
	"testing"
	"time"

	"github.com/rahat/tastybites-backend/config"
	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/internal/app/repository"
	"github.com/rahat/tastybites-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(database *gorm.DB) AuthService {
	return NewAuthService(repository.NewUserRepository(database), config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	})
}

func TestRegister(t *testing.T) {
	database := setupServiceTest(t)
	svc := newAuthService(database)

	user, tokens, err := svc.Register(RegisterInput{
		Email:    "new@example.com",
		Password: "password123",
		Name:     "New User",
		Phone:    "555-0199",
	})
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, model.RoleCustomer, user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)
	require.NotNil(t, tokens)

	claims, err := util.ValidateToken(tokens.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "customer", claims.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	database := setupServiceTest(t)
	svc := newAuthService(database)

	_, _, err := svc.Register(RegisterInput{
		Email: "dup@example.com", Password: "password123", Name: "First",
	})
	require.NoError(t, err)

	_, _, err = svc.Register(RegisterInput{
		Email: "dup@example.com", Password: "password456", Name: "Second",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	database := setupServiceTest(t)
	svc := newAuthService(database)

	registered, _, err := svc.Register(RegisterInput{
		Email: "login@example.com", Password: "password123", Name: "Login User",
	})
	require.NoError(t, err)

	user, tokens, err := svc.Login("login@example.com", "password123")
	require.NoError(t, err)

	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	database := setupServiceTest(t)
	svc := newAuthService(database)

	_, _, err := svc.Register(RegisterInput{
		Email: "login@example.com", Password: "password123", Name: "Login User",
	})
	require.NoError(t, err)

	_, _, err = svc.Login("login@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	database := setupServiceTest(t)
	svc := newAuthService(database)

	_, _, err := svc.Login("ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	database := setupServiceTest(t)
	svc := newAuthService(database)

	user, _, err := svc.Register(RegisterInput{
		Email: "profile@example.com", Password: "password123", Name: "Before",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(user.ID, UpdateProfileInput{Name: "After", Phone: "555-0142"})
	require.NoError(t, err)

	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "555-0142", updated.Phone)
	assert.Equal(t, "profile@example.com", updated.Email)
}
