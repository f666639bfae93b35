package lib

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_access_secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":         uuid.New().String(),
		"business_id": uuid.New().String(),
		"email":       "merchant@example.com",
		"iat":         float64(now.Unix()),
		"exp":         float64(now.Add(time.Hour).Unix()),
		"jti":         uuid.New().String(),
	}
}

func TestParseToken_Valid(t *testing.T) {
	raw := validClaims()
	tokenStr := signToken(t, raw, testSecret)

	claims, err := ParseToken(tokenStr, testSecret)
	require.NoError(t, err)

	assert.Equal(t, raw["sub"], claims.Sub.String())
	assert.Equal(t, raw["business_id"], claims.BusinessId.String())
	assert.Equal(t, "merchant@example.com", claims.Email)
}

func TestParseToken_WrongSecret(t *testing.T) {
	tokenStr := signToken(t, validClaims(), "some_other_secret")

	_, err := ParseToken(tokenStr, testSecret)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	raw := validClaims()
	raw["exp"] = float64(time.Now().Add(-time.Hour).Unix())
	tokenStr := signToken(t, raw, testSecret)

	_, err := ParseToken(tokenStr, testSecret)
	assert.Error(t, err)
}

func TestParseToken_MissingBusinessId(t *testing.T) {
	raw := validClaims()
	delete(raw, "business_id")
	tokenStr := signToken(t, raw, testSecret)

	_, err := ParseToken(tokenStr, testSecret)
	assert.Error(t, err)
}

func TestExtractClaims_BearerHeader(t *testing.T) {
	tokenStr := signToken(t, validClaims(), testSecret)

	r := httptest.NewRequest(http.MethodGet, "/orders", nil)
	r.Header.Set("Authorization", "Bearer "+tokenStr)

	claims, err := ExtractClaims(r, testSecret)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, claims.BusinessId)
}

func TestExtractClaims_Cookie(t *testing.T) {
	tokenStr := signToken(t, validClaims(), testSecret)

	r := httptest.NewRequest(http.MethodGet, "/orders", nil)
	r.AddCookie(&http.Cookie{Name: AccessCookieName, Value: tokenStr})

	claims, err := ExtractClaims(r, testSecret)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, claims.BusinessId)
}

func TestExtractClaims_Missing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/orders", nil)

	_, err := ExtractClaims(r, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
