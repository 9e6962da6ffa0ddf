package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangle2000/final-project-backend/auth"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers the public credential endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", auth.SignUpHandler(db)) // POST /auth/signup
		authGroup.POST("/login", auth.LoginHandler(db))   // POST /auth/login
	}
}
