package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagehub/stagehub/internal/app/models"
	"github.com/stagehub/stagehub/internal/app/models/dto"
	"github.com/stagehub/stagehub/internal/pkg/apperrors"
	"github.com/stagehub/stagehub/internal/pkg/auth"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:     "test-secret-key-for-auth-service",
		TokenExp:      time.Hour,
		TokenIssuer:   "stagehub.test",
		TokenAudience: "stagehub-clients",
	})
}

func seedUser(t *testing.T, users *fakeUserRepo, username, password string, role models.RoleType) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return users.addUser(&models.User{
		Username: username,
		Password: hash,
		RoleID:   2,
		RoleName: role,
	})
}

func TestLoginSuccess(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "jean.dupont", "S3cret!pass", models.RoleStudent)

	svc := NewAuthService(users, newTestJWTService(), zerolog.Nop())

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "jean.dupont",
		Password: "S3cret!pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "jean.dupont", resp.Username)
	assert.Equal(t, "STUDENT", resp.Role)

	claims, err := newTestJWTService().ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "jean.dupont", claims.Username)
	assert.Equal(t, "STUDENT", claims.RoleName)
}

func TestLoginBadCredentials(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "jean.dupont", "S3cret!pass", models.RoleStudent)

	svc := NewAuthService(users, newTestJWTService(), zerolog.Nop())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "jean.dupont",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// Unknown usernames are indistinguishable from wrong passwords.
	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Username: "nobody",
		Password: "S3cret!pass",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	users := newFakeUserRepo()
	user := seedUser(t, users, "jean.dupont", "OldPass123!", models.RoleStudent)

	svc := NewAuthService(users, newTestJWTService(), zerolog.Nop())
	ctx := context.Background()

	err := svc.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "NewPass123!",
	})
	assert.ErrorIs(t, err, apperrors.ErrWrongPassword)

	err = svc.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "OldPass123!",
		NewPassword:     "OldPass123!",
	})
	assert.ErrorIs(t, err, apperrors.ErrSamePassword)

	err = svc.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "OldPass123!",
		NewPassword:     "NewPass123!",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "jean.dupont", Password: "NewPass123!"})
	assert.NoError(t, err)
	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "jean.dupont", Password: "OldPass123!"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
