package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "segredo-de-teste")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	svc, err := NewJWTService()
	require.NoError(t, err)
	return svc
}

// signExpired emite um token assinado com a mesma chave, expirado há uma hora
func signExpired(t *testing.T, svc *JWTService) string {
	t.Helper()
	claims := JWTClaims{
		Email: "contador@empresa.com.br",
		Name:  "Contador",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			NotBefore: jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			Issuer:    "controle-fiscal-api",
			Subject:   "contador@empresa.com.br",
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secretKey)
	require.NoError(t, err)
	return token
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.GenerateToken("contador@empresa.com.br", "Contador")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "contador@empresa.com.br", claims.Email)
	assert.Equal(t, "Contador", claims.Name)
}

func TestValidateTokenExpiredReturnsClaims(t *testing.T) {
	svc := newTestService(t)

	claims, err := svc.ValidateToken(signExpired(t, svc))
	assert.ErrorIs(t, err, ErrExpiredToken)
	require.NotNil(t, claims)
	assert.Equal(t, "contador@empresa.com.br", claims.Email)
}

func TestRefreshTokenRenewsExpiredToken(t *testing.T) {
	svc := newTestService(t)

	renewed, err := svc.RefreshToken(signExpired(t, svc))
	require.NoError(t, err)

	claims, err := svc.ValidateToken(renewed)
	require.NoError(t, err)
	assert.Equal(t, "contador@empresa.com.br", claims.Email)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestRefreshTokenRejectsGarbage(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.RefreshToken("nao-e-um-token")
	assert.Error(t, err)
}

func TestRefreshTokenRejectsWrongKey(t *testing.T) {
	svc := newTestService(t)

	other := &JWTService{secretKey: []byte("outra-chave"), expiration: time.Hour}
	forged, err := other.GenerateToken("contador@empresa.com.br", "Contador")
	require.NoError(t, err)

	_, err = svc.RefreshToken(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpirationFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "segredo-de-teste")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")

	svc, err := NewJWTService()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, svc.Expiration())
}
