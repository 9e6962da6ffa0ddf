package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/sangle2000/final-project-backend/controllers/cart"
	userControllers "github.com/sangle2000/final-project-backend/controllers/user"
	"github.com/sangle2000/final-project-backend/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(db))    // GET /user/
		userGroup.PUT("/", userControllers.UpdateUser(db)) // PUT /user/

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))             // GET /user/cart
			cartGroup.POST("/actions", cartControllers.ApplyCartActions(db)) // POST /user/cart/actions
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))        // DELETE /user/cart
		}
	}
}
