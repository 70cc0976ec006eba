package middleware

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func setSession(c *gin.Context, claims jwt.MapClaims) {
	if id, ok := claims["user_id"].(float64); ok {
		c.Set("user_id", uint(id))
	}
	if role, ok := claims["role"].(string); ok {
		c.Set("role", role)
	}
}

// ValidateToken requires a valid JWT and puts user_id/role in context.
func ValidateToken(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		c.Abort()
		return
	}

	claims, err := parseToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	setSession(c, claims)
	c.Next()
}

// OptionalAuth picks up a session when a token is present but lets
// anonymous requests through. Checkout uses it: guests may submit
// orders, logged-in customers keep their identity.
func OptionalAuth(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if tokenString != "" {
		if claims, err := parseToken(tokenString); err == nil {
			setSession(c, claims)
		}
	}
	c.Next()
}
