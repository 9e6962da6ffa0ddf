package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry point that wires up the Auth, User,
// Catalog and Payment route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	SetupAuthRoutes(r, db)
	SetupUserRoutes(r, db)
	SetupCatalogRoutes(r, db)
	SetupPaymentRoutes(r)
}
