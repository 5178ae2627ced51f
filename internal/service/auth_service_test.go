package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bizcardx/internal/config"
	"bizcardx/internal/domain"
	"bizcardx/internal/service"
)

func authConfig(t *testing.T) config.AuthConfig {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-value"), bcrypt.MinCost)
	require.NoError(t, err)
	return config.AuthConfig{
		Enabled:          true,
		ClientID:         "dashboard",
		ClientSecretHash: string(hash),
		JWTSecret:        "test-signing-key",
		TokenExpiry:      time.Hour,
		Issuer:           "bizcardx",
	}
}

func TestAuthService_IssueAndValidate(t *testing.T) {
	svc := service.NewAuthService(authConfig(t))
	assert.True(t, svc.Enabled())

	tok, err := svc.IssueToken(context.Background(), service.TokenInput{ClientID: "dashboard", ClientSecret: "s3cret-value"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.ExpiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "dashboard", claims.ClientID)
	assert.Equal(t, "dashboard", claims.Subject)
	assert.Equal(t, "bizcardx", claims.Issuer)
}

func TestAuthService_IssueToken_InvalidCredentials(t *testing.T) {
	svc := service.NewAuthService(authConfig(t))

	_, err := svc.IssueToken(context.Background(), service.TokenInput{ClientID: "other", ClientSecret: "s3cret-value"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.IssueToken(context.Background(), service.TokenInput{ClientID: "dashboard", ClientSecret: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_IssueToken_Disabled(t *testing.T) {
	svc := service.NewAuthService(config.AuthConfig{})
	assert.False(t, svc.Enabled())
	_, err := svc.IssueToken(context.Background(), service.TokenInput{ClientID: "a", ClientSecret: "b"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_Rejects(t *testing.T) {
	cfg := authConfig(t)
	svc := service.NewAuthService(cfg)

	sign := func(claims jwt.Claims, method jwt.SigningMethod, key any) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	base := func() *service.Claims {
		return &service.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "dashboard",
				Issuer:    cfg.Issuer,
				Audience:  jwt.ClaimStrings{"bizcardx-api"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			ClientID: "dashboard",
		}
	}

	expired := base()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	wrongIssuer := base()
	wrongIssuer.Issuer = "someone-else"
	wrongAudience := base()
	wrongAudience.Audience = jwt.ClaimStrings{"refresh"}

	tests := map[string]string{
		"garbage":        "not-a-token",
		"wrong_key":      sign(base(), jwt.SigningMethodHS256, []byte("other-key")),
		"expired":        sign(expired, jwt.SigningMethodHS256, []byte(cfg.JWTSecret)),
		"wrong_issuer":   sign(wrongIssuer, jwt.SigningMethodHS256, []byte(cfg.JWTSecret)),
		"wrong_audience": sign(wrongAudience, jwt.SigningMethodHS256, []byte(cfg.JWTSecret)),
		"alg_none":       sign(base(), jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType),
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(tok)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}
