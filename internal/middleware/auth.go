package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"canvas-art-backend/internal/auth"
	"canvas-art-backend/internal/config"
	"canvas-art-backend/internal/models"
)

const (
	UserIDKey = "user_id"
	RoleKey   = "role"
)

// AuthMiddleware validates the bearer token and stores the caller's
// identity in the request context: user id from the "sub" claim and the
// role string from the "role" claim. The role is parsed but not rejected
// here — an unknown role simply fails every downstream gate.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "empty token"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			if cfg.JWTSecret == "" {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWTSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))

		if err != nil {
			var message string
			if strings.Contains(err.Error(), "signature is invalid") {
				message = "token signature is invalid"
			} else if strings.Contains(err.Error(), "token is expired") {
				message = "token has expired"
			} else {
				message = err.Error()
			}
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid token", Message: message})
			c.Abort()
			return
		}

		if !token.Valid {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid token claims"})
			c.Abort()
			return
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "missing user id in token"})
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)

		c.Set(UserIDKey, sub)
		c.Set(RoleKey, string(auth.ParseRole(role)))
		c.Next()
	}
}

// RequireRole is the route-level face of the role gate. It reuses
// auth.HasAccess — the same single implementation the services consult —
// so the two enforcement points cannot drift.
func RequireRole(required auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleStr, exists := c.Get(RoleKey)
		if !exists {
			c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "role not found"})
			c.Abort()
			return
		}
		if !auth.HasAccess(auth.Role(roleStr.(string)), required) {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Error:   "insufficient role",
				Message: "this operation requires " + string(required) + " or above",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
