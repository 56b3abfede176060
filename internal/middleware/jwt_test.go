package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func signTestToken(t *testing.T, key *rsa.PrivateKey, claims TokenClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestJWTAuth(t *testing.T) {
	key := generateTestKey(t)

	validClaims := TokenClaims{
		UserID: "user-123",
		Email:  "test@example.com",
		Name:   "Test User",
		Roles:  []string{"user"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	expiredClaims := validClaims
	expiredClaims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	otherKey := generateTestKey(t)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer " + signTestToken(t, key, validClaims),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing authorization header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid bearer prefix",
			authHeader:     "Token some-token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "empty token",
			authHeader:     "Bearer ",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed token",
			authHeader:     "Bearer not-a-jwt",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer " + signTestToken(t, key, expiredClaims),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "token signed with wrong key",
			authHeader:     "Bearer " + signTestToken(t, otherKey, validClaims),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()

			router.Use(RequestID())
			router.Use(JWTAuth(&key.PublicKey))
			router.GET("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestJWTAuth_UserInfoInContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	key := generateTestKey(t)

	claims := TokenClaims{
		UserID: "user-456",
		Email:  "test@example.com",
		Name:   "Test User",
		Roles:  []string{"user", "admin"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	router := gin.New()
	router.Use(RequestID())
	router.Use(JWTAuth(&key.PublicKey))
	router.GET("/test", func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		assert.True(t, exists)
		assert.Equal(t, "user-456", userID)

		email, exists := c.Get("user_email")
		assert.True(t, exists)
		assert.Equal(t, "test@example.com", email)

		name, exists := c.Get("user_name")
		assert.True(t, exists)
		assert.Equal(t, "Test User", name)

		roles, exists := c.Get("user_roles")
		assert.True(t, exists)
		assert.Equal(t, []string{"user", "admin"}, roles)

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, key, claims))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseRSAPublicKey(t *testing.T) {
	key := generateTestKey(t)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	t.Run("valid PEM", func(t *testing.T) {
		parsed, err := ParseRSAPublicKey(pemBytes)
		require.NoError(t, err)
		assert.Equal(t, key.PublicKey.N, parsed.N)
	})

	t.Run("invalid PEM", func(t *testing.T) {
		_, err := ParseRSAPublicKey([]byte("not a pem"))
		assert.Error(t, err)
	})
}
