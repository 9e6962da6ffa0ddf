package routes

import (
	"github.com/gin-gonic/gin"
	catalogControllers "github.com/sangle2000/final-project-backend/controllers/catalog"
	"github.com/sangle2000/final-project-backend/middleware"
	"gorm.io/gorm"
)

// SetupCatalogRoutes registers the catalog endpoints. Listings are public;
// product creation requires a bearer token.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	catalog := r.Group("/catalog")
	{
		catalog.GET("/categories", catalogControllers.GetCategories(db))        // GET /catalog/categories
		catalog.GET("/product-types", catalogControllers.GetProductTypes(db))   // GET /catalog/product-types
		catalog.GET("/products", catalogControllers.GetProducts(db))            // GET /catalog/products
		catalog.GET("/products/:id", catalogControllers.GetProduct(db))         // GET /catalog/products/:id

		catalog.POST("/products", middleware.ValidateToken, catalogControllers.AddProductHandler(db)) // POST /catalog/products
	}
}
