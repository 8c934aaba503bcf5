package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagehub/stagehub/internal/app/models"
)

func testJWTService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:     "test-secret-key",
		TokenExp:      exp,
		TokenIssuer:   "stagehub.test",
		TokenAudience: "stagehub-clients",
	})
}

func testUser() *models.User {
	return &models.User{
		ID:       7,
		Username: "jean.dupont",
		RoleName: models.RoleStudent,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testJWTService(time.Hour)

	token, expiresIn, err := svc.GenerateToken(testUser())
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "jean.dupont", claims.Username)
	assert.Equal(t, "jean.dupont", claims.Subject)
	assert.Equal(t, string(models.RoleStudent), claims.RoleName)
	assert.Equal(t, "stagehub.test", claims.Issuer)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := testJWTService(-time.Minute)

	token, _, err := svc.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.True(t, errors.Is(err, ErrExpiredToken), "want ErrExpiredToken, got %v", err)
}

func TestValidateToken_WrongKey(t *testing.T) {
	issuer := testJWTService(time.Hour)
	token, _, err := issuer.GenerateToken(testUser())
	require.NoError(t, err)

	verifier := NewJWTService(JWTConfig{
		SecretKey:     "a-different-key",
		TokenExp:      time.Hour,
		TokenIssuer:   "stagehub.test",
		TokenAudience: "stagehub-clients",
	})

	_, err = verifier.ValidateToken(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestValidateToken_WrongIssuerOrAudience(t *testing.T) {
	issuer := NewJWTService(JWTConfig{
		SecretKey:     "test-secret-key",
		TokenExp:      time.Hour,
		TokenIssuer:   "someone-else",
		TokenAudience: "other-clients",
	})
	token, _, err := issuer.GenerateToken(testUser())
	require.NoError(t, err)

	verifier := testJWTService(time.Hour)
	_, err = verifier.ValidateToken(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestValidateToken_Malformed(t *testing.T) {
	svc := testJWTService(time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.Error(t, err)

	_, err = ExtractBearerToken("abc.def.ghi")
	assert.Error(t, err)
}
