package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productivite/productivite-server/internal/domain"
	domainerrors "github.com/productivite/productivite-server/internal/errors"
)

// setupAuthTest creates an auth service backed by temporary storage.
func setupAuthTest(t *testing.T) *AuthService {
	t.Helper()

	s := newTestStore(t)
	tokenService := newTestTokenService(t)
	sessionService := NewSessionService(s, tokenService, nil)
	return NewAuthService(s, tokenService, sessionService, testValidator, nil)
}

func TestAuthService_Register_FirstUserIsAdmin(t *testing.T) {
	authService := setupAuthTest(t)
	ctx := context.Background()

	resp, err := authService.Register(ctx, RegisterRequest{
		Email:    "ada@example.com",
		Password: "SecurePassword123!",
		Name:     "Ada Lovelace",
	})
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.Equal(t, domain.RoleAdmin, resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.NotEmpty(t, resp.SessionID)
	assert.Greater(t, resp.ExpiresIn, 0)

	// Subsequent users get the regular role.
	resp2, err := authService.Register(ctx, RegisterRequest{
		Email:    "grace@example.com",
		Password: "SecurePassword123!",
		Name:     "Grace Hopper",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, resp2.User.Role)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	authService := setupAuthTest(t)
	ctx := context.Background()

	req := RegisterRequest{
		Email:    "ada@example.com",
		Password: "SecurePassword123!",
		Name:     "Ada",
	}
	_, err := authService.Register(ctx, req)
	require.NoError(t, err)

	_, err = authService.Register(ctx, req)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrAlreadyExists))
}

func TestAuthService_Register_Validation(t *testing.T) {
	authService := setupAuthTest(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing email", RegisterRequest{Password: "SecurePassword123!", Name: "Ada"}},
		{"bad email", RegisterRequest{Email: "not-an-email", Password: "SecurePassword123!", Name: "Ada"}},
		{"short password", RegisterRequest{Email: "ada@example.com", Password: "short", Name: "Ada"}},
		{"missing name", RegisterRequest{Email: "ada@example.com", Password: "SecurePassword123!"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authService.Register(ctx, tt.req)
			require.Error(t, err)
			assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	authService := setupAuthTest(t)
	ctx := context.Background()

	_, err := authService.Register(ctx, RegisterRequest{
		Email:    "ada@example.com",
		Password: "SecurePassword123!",
		Name:     "Ada",
	})
	require.NoError(t, err)

	resp, err := authService.Login(ctx, LoginRequest{
		Email:    "ada@example.com",
		Password: "SecurePassword123!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.False(t, resp.User.LastLoginAt.IsZero())
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	authService := setupAuthTest(t)
	ctx := context.Background()

	_, err := authService.Register(ctx, RegisterRequest{
		Email:    "ada@example.com",
		Password: "SecurePassword123!",
		Name:     "Ada",
	})
	require.NoError(t, err)

	_, err = authService.Login(ctx, LoginRequest{
		Email:    "ada@example.com",
		Password: "WrongPassword!",
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	authService := setupAuthTest(t)

	// Same error as a wrong password, so the response doesn't reveal
	// which emails are registered.
	_, err := authService.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "SecurePassword123!",
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_RefreshTokens_Rotation(t *testing.T) {
	authService := setupAuthTest(t)
	ctx := context.Background()

	registered, err := authService.Register(ctx, RegisterRequest{
		Email:    "ada@example.com",
		Password: "SecurePassword123!",
		Name:     "Ada",
	})
	require.NoError(t, err)

	refreshed, err := authService.RefreshTokens(ctx, RefreshRequest{
		RefreshToken: registered.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)
	assert.Equal(t, registered.SessionID, refreshed.SessionID)

	// The old refresh token is dead after rotation.
	_, err = authService.RefreshTokens(ctx, RefreshRequest{
		RefreshToken: registered.RefreshToken,
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrTokenExpired))
}

func TestAuthService_Logout(t *testing.T) {
	authService := setupAuthTest(t)
	ctx := context.Background()

	registered, err := authService.Register(ctx, RegisterRequest{
		Email:    "ada@example.com",
		Password: "SecurePassword123!",
		Name:     "Ada",
	})
	require.NoError(t, err)

	require.NoError(t, authService.Logout(ctx, registered.SessionID))

	// The session's refresh token no longer works.
	_, err = authService.RefreshTokens(ctx, RefreshRequest{
		RefreshToken: registered.RefreshToken,
	})
	require.Error(t, err)
}

func TestAuthService_VerifyAccessToken(t *testing.T) {
	authService := setupAuthTest(t)
	ctx := context.Background()

	registered, err := authService.Register(ctx, RegisterRequest{
		Email:    "ada@example.com",
		Password: "SecurePassword123!",
		Name:     "Ada",
	})
	require.NoError(t, err)

	user, claims, err := authService.VerifyAccessToken(ctx, registered.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, user.ID)
	assert.Equal(t, registered.User.ID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.True(t, claims.IsAdmin())

	_, _, err = authService.VerifyAccessToken(ctx, "v4.local.garbage")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrUnauthorized))
}
