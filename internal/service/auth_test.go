package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/inkwellapp/inkwell-server/internal/errors"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.auth.Register(ctx, RegisterRequest{
		Email:       "reader@example.com",
		Password:    "a long password",
		DisplayName: "Reader",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	login, err := env.auth.Login(ctx, LoginRequest{
		Email:    "reader@example.com",
		Password: "a long password",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, RegisterRequest{Email: "reader@example.com", Password: "a long password"})
	require.NoError(t, err)

	_, err = env.auth.Register(ctx, RegisterRequest{Email: "Reader@Example.com", Password: "another password"})
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestAuthService_Register_ValidatesInput(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(context.Background(), RegisterRequest{Email: "not-an-email", Password: "short"})

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	fields, ok := appErr.Details.(map[string][]string)
	require.True(t, ok)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, RegisterRequest{Email: "reader@example.com", Password: "a long password"})
	require.NoError(t, err)

	_, err = env.auth.Login(ctx, LoginRequest{Email: "reader@example.com", Password: "wrong"})
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeInvalidCredentials, appErr.Code)

	// Unknown email yields the same error code.
	_, err = env.auth.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeInvalidCredentials, appErr.Code)
}

func TestAuthService_RefreshRotatesToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.auth.Register(ctx, RegisterRequest{Email: "reader@example.com", Password: "a long password"})
	require.NoError(t, err)

	refreshed, err := env.auth.Refresh(ctx, RefreshRequest{RefreshToken: reg.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, refreshed.RefreshToken)

	// The old refresh token is dead after rotation.
	_, err = env.auth.Refresh(ctx, RefreshRequest{RefreshToken: reg.RefreshToken})
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeTokenExpired, appErr.Code)
}

func TestAuthService_Logout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.auth.Register(ctx, RegisterRequest{Email: "reader@example.com", Password: "a long password"})
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx, LogoutRequest{RefreshToken: reg.RefreshToken}))

	_, err = env.auth.Refresh(ctx, RefreshRequest{RefreshToken: reg.RefreshToken})
	assert.Error(t, err)

	// Logging out twice is fine.
	require.NoError(t, env.auth.Logout(ctx, LogoutRequest{RefreshToken: reg.RefreshToken}))
}

func TestAuthService_VerifyAccessToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.auth.Register(ctx, RegisterRequest{Email: "reader@example.com", Password: "a long password"})
	require.NoError(t, err)

	user, err := env.auth.VerifyAccessToken(ctx, reg.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, user.ID)

	_, err = env.auth.VerifyAccessToken(ctx, "not a token")
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code)
}
