package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/udconnect/udconnect-api/pkg/helpers"
	"github.com/udconnect/udconnect-api/pkg/response"
)

const (
	CtxUserIDKey = "userID"
	CtxClaimsKey = "claims"
)

// Auth requires a valid, unrevoked session cookie and stores the user id and
// claims in the Gin context.
func Auth(jwt *helpers.JWTManager, cookies *helpers.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookies.Name)
		if err != nil || token == "" {
			response.Abort(c, http.StatusUnauthorized, "No autenticado", nil)
			return
		}
		claims, ok := verify(c, jwt, rdb, token)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "Token inválido", nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid cookie is present and never rejects.
func OptionalAuth(jwt *helpers.JWTManager, cookies *helpers.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(cookies.Name); err == nil && token != "" {
			if claims, ok := verify(c, jwt, rdb, token); ok {
				c.Set(CtxUserIDKey, claims.UserID)
				c.Set(CtxClaimsKey, claims)
			}
		}
		c.Next()
	}
}

func verify(c *gin.Context, jwt *helpers.JWTManager, rdb *redis.Client, token string) (*helpers.Claims, bool) {
	claims, err := jwt.Parse(token)
	if err != nil || claims.UserID == "" {
		return nil, false
	}
	if helpers.IsTokenRevoked(c.Request.Context(), rdb, claims.ID) {
		return nil, false
	}
	return claims, true
}

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c *gin.Context) string { return c.GetString(CtxUserIDKey) }

// SessionClaims returns the parsed session claims, if any.
func SessionClaims(c *gin.Context) *helpers.Claims {
	if v, ok := c.Get(CtxClaimsKey); ok {
		if claims, ok := v.(*helpers.Claims); ok {
			return claims
		}
	}
	return nil
}
