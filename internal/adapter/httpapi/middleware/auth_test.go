package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alanya-estates/property-service/internal/platform/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, expiresIn time.Duration) string {
	t.Helper()
	claims := Claims{
		UserID: "admin-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func runGate(t *testing.T, authHeader string) (*httptest.ResponseRecorder, bool, string) {
	t.Helper()

	var (
		called  bool
		subject string
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		subject, _ = r.Context().Value(SubjectKey).(string)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/properties/with-files", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	JWTAuth(testSecret, logger.NewLogger())(next).ServeHTTP(rec, req)
	return rec, called, subject
}

func TestJWTAuth_MissingToken(t *testing.T) {
	rec, called, _ := runGate(t, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called, "handler must not run without a credential")
	assert.Contains(t, rec.Body.String(), "message")
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	rec, called, _ := runGate(t, "Token abc")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	rec, called, _ := runGate(t, "Bearer not-a-token")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	rec, called, _ := runGate(t, "Bearer "+signToken(t, "other-secret", time.Hour))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	rec, called, _ := runGate(t, "Bearer "+signToken(t, testSecret, -time.Hour))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "expired")
}

func TestJWTAuth_ValidToken(t *testing.T) {
	rec, called, subject := runGate(t, "Bearer "+signToken(t, testSecret, time.Hour))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
	assert.Equal(t, "admin-1", subject)
}
