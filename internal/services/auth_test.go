package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-system/internal/dto"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/service"
)

func TestAuthService_EnsureAdminAndLogin(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	require.NoError(t, env.auth.EnsureAdmin(ctx, "root", "diadema123"))
	require.NoError(t, env.auth.EnsureAdmin(ctx, "root", "outra-senha"), "повторный вызов ничего не меняет")

	resp, err := env.auth.Login(ctx, dto.LoginDTO{Username: "root", Password: "diadema123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "root", resp.User.Username)
	assert.Equal(t, constants.RoleAdmin, resp.User.Role)

	claims, err := service.NewJWTService("test-secret", 0).ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	actor, err := env.auth.ResolveActor(ctx, claims.UserID)
	require.NoError(t, err)
	assert.True(t, actor.IsAdmin())
}

func TestAuthService_LoginInvalidCredentials(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	require.NoError(t, env.auth.EnsureAdmin(ctx, "root", "diadema123"))

	_, err := env.auth.Login(ctx, dto.LoginDTO{Username: "root", Password: "errada"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusCode(err))

	_, err = env.auth.Login(ctx, dto.LoginDTO{Username: "ninguem", Password: "x"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_LoginThrottling(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	require.NoError(t, env.auth.EnsureAdmin(ctx, "root", "diadema123"))

	for i := 0; i < 3; i++ {
		_, err := env.auth.Login(ctx, dto.LoginDTO{Username: "root", Password: "errada"})
		require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}

	_, err := env.auth.Login(ctx, dto.LoginDTO{Username: "root", Password: "diadema123"})
	require.ErrorIs(t, err, apperrors.ErrTooManyAttempts)
	assert.Equal(t, http.StatusTooManyRequests, apperrors.StatusCode(err))

	// Блокировка снимается вместе со счётчиком.
	require.NoError(t, env.cache.Del(ctx, "login_attempts:root"))
	_, err = env.auth.Login(ctx, dto.LoginDTO{Username: "root", Password: "diadema123"})
	require.NoError(t, err)
}

func TestAuthService_SuccessfulLoginResetsCounter(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	require.NoError(t, env.auth.EnsureAdmin(ctx, "root", "diadema123"))

	for i := 0; i < 2; i++ {
		_, _ = env.auth.Login(ctx, dto.LoginDTO{Username: "root", Password: "errada"})
	}
	_, err := env.auth.Login(ctx, dto.LoginDTO{Username: "root", Password: "diadema123"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = env.auth.Login(ctx, dto.LoginDTO{Username: "root", Password: "errada"})
		require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}
}

func TestAuthService_ResolveActorUnknownUser(t *testing.T) {
	env := newTestEnv()
	_, err := env.auth.ResolveActor(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestAuthService_Me(t *testing.T) {
	env := newTestEnv()
	me, err := env.auth.Me(actorCtx(testStaff))
	require.NoError(t, err)
	assert.Equal(t, dto.UserPublicDTO{ID: testStaff.ID, Username: testStaff.Username, Role: constants.RoleStaff}, *me)

	_, err = env.auth.Me(context.Background())
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusCode(err))
}
