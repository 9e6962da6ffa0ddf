package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangle2000/final-project-backend/auth"
)

// ValidateToken guards identity-scoped routes. On success the user id from
// the token's sub claim is stored in the context as "user_id".
func ValidateToken(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "errors": []string{"authorization header is missing"}})
		c.Abort()
		return
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	claims, err := auth.ParseToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "errors": []string{"invalid or expired token"}})
		c.Abort()
		return
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "errors": []string{"invalid token claims"}})
		c.Abort()
		return
	}

	c.Set("user_id", sub)
	c.Next()
}
