package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/student-nirajkumar/Job-potal-for-Fresher/internal/http/middleware"
	"github.com/student-nirajkumar/Job-potal-for-Fresher/internal/services"
)

const testSecret = "test-secret"

func signSession(t *testing.T, secret, userID string, ttl time.Duration) string {
	t.Helper()
	claims := services.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			Subject:   userID,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.SessionAuth(middleware.AuthConfig{Secret: testSecret}))
	router.GET("/protected", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(middleware.ContextUserID))
	})
	return router
}

func requestWithCookie(router *gin.Engine, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if value != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: value})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSessionAuth(t *testing.T) {
	router := protectedRouter()

	t.Run("valid session exposes user id", func(t *testing.T) {
		token := signSession(t, testSecret, "user-42", time.Hour)
		rec := requestWithCookie(router, token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-42", rec.Body.String())
	})

	t.Run("missing cookie", func(t *testing.T) {
		rec := requestWithCookie(router, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		rec := requestWithCookie(router, "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired session", func(t *testing.T) {
		token := signSession(t, testSecret, "user-42", -time.Hour)
		rec := requestWithCookie(router, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		token := signSession(t, "other-secret", "user-42", time.Hour)
		rec := requestWithCookie(router, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
