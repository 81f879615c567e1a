package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var secretKey string

func SetSecretKey(key string) {
	secretKey = key
}

func GetSecretKey() string {
	return secretKey
}

func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		// Gets the authorization header
		authHeader := strings.TrimSpace(ctx.GetHeader("Authorization"))
		if authHeader == "" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Authorization header is required", "data": nil})
			ctx.Abort()
			return
		}

		// Divides the header into Bearer and Token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid authorization format", "data": nil})
			ctx.Abort()
			return
		}

		// Verifies the JWT token
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		})

		// Checks if the token is valid
		if err != nil || !token.Valid {
			ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid token", "data": nil})
			ctx.Abort()
			return
		}

		// Adds expiration validation for the token
		if exp, ok := claims["exp"].(float64); ok {
			if time.Now().Unix() > int64(exp) {
				ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Token expired", "data": nil})
				ctx.Abort()
				return
			}
		}

		// Sets the token claims in the context (user ID and role)
		id, ok := claims["id"].(float64)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid token", "data": nil})
			ctx.Abort()
			return
		}
		role, _ := claims["role"].(string)

		ctx.Set("userId", int(id))
		ctx.Set("userRole", role)
		ctx.Next()
	}
}

// RequireRole rejects the request unless the authenticated user carries one of
// the allowed roles. Must run after AuthMiddleware.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role := ctx.GetString("userRole")
		if role == "" {
			ctx.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "Forbidden", "data": nil})
			ctx.Abort()
			return
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				ctx.Next()
				return
			}
		}
		ctx.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "Insufficient permissions", "data": nil})
		ctx.Abort()
	}
}
