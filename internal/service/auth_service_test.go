package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository/memory"
)

func newAuthService() AuthService {
	return NewAuthService(memory.NewUserRepository(), "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	user, err := svc.Register(ctx, "Coach", "coach@example.com", "supersecret", domain.RoleTrainer)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, domain.RoleTrainer, user.Role)
	assert.NotEqual(t, "supersecret", user.PasswordHash)

	token, loggedIn, err := svc.Login(ctx, "coach@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	require.NotEmpty(t, token)

	// The token carries the user id and role, signed with our secret.
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID, claims["uid"])
	assert.Equal(t, string(domain.RoleTrainer), claims["role"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	_, err := svc.Register(ctx, "Coach", "coach@example.com", "supersecret", domain.RoleTrainer)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other", "coach@example.com", "different", domain.RoleClient)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	_, err := svc.Register(ctx, "Coach", "coach@example.com", "supersecret", domain.RoleTrainer)
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "coach@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = svc.Login(ctx, "nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}
