package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/student-nirajkumar/Job-potal-for-Fresher/internal/services"
	"github.com/student-nirajkumar/Job-potal-for-Fresher/internal/utils"
)

// SessionCookie is the cookie carrying the signed session credential.
const SessionCookie = "token"

// ContextUserID is the gin context key under which the authenticated user id
// is exposed to downstream handlers.
const ContextUserID = "user_id"

type AuthConfig struct {
	Secret string
}

// SessionAuth verifies the session cookie's signature and expiry and exposes
// the embedded user id. Missing, malformed, expired and badly signed
// credentials are all rejected before any protected handler runs.
func SessionAuth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookie)
		if err != nil || tokenStr == "" {
			utils.RespondError(c, utils.AuthError("User not authenticated"))
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(tokenStr, &services.Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.Secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			utils.RespondError(c, utils.AuthError("Invalid or expired session"))
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*services.Claims)
		if !ok || claims.UserID == "" {
			utils.RespondError(c, utils.AuthError("Invalid or expired session"))
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}
