package catalogControllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangle2000/final-project-backend/apperr"
	"github.com/sangle2000/final-project-backend/models"
	"gorm.io/gorm"
)

type ProductInput struct {
	Code          string `json:"code" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	Price         int64  `json:"price" binding:"required,min=0"`
	SalePercent   int    `json:"sale_percent" binding:"min=0,max=100"`
	Stock         int    `json:"stock" binding:"min=0"`
	CategoryID    uint   `json:"category_id"`
	ProductTypeID uint   `json:"product_type_id"`
	Image         string `json:"image"`
}

// ProductView joins the category and product-type names into the listing row.
type ProductView struct {
	ID          uint   `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	SalePercent int    `json:"sale_percent"`
	Stock       int    `json:"stock"`
	Category    string `json:"category"`
	ProductType string `json:"product_type"`
	Image       string `json:"image"`
}

// AddProduct inserts a new product; the product code is the external unique
// key, so a duplicate is a Conflict and leaves the table untouched.
func AddProduct(db *gorm.DB, input ProductInput) (*models.Product, error) {
	var product models.Product

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		err := tx.Where("code = ?", input.Code).First(&existing).Error
		if err == nil {
			return apperr.New(apperr.Conflict, "product code already exists")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.Internal, "failed to check product code", err)
		}

		product = models.Product{
			Code:          input.Code,
			Name:          input.Name,
			Description:   input.Description,
			Price:         input.Price,
			SalePercent:   input.SalePercent,
			Stock:         input.Stock,
			CategoryID:    input.CategoryID,
			ProductTypeID: input.ProductTypeID,
			Image:         input.Image,
		}
		if err := tx.Create(&product).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "failed to create product", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func ListCategories(db *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	if err := db.Order("id").Find(&categories).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch categories", err)
	}
	return categories, nil
}

func ListProductTypes(db *gorm.DB) ([]models.ProductType, error) {
	var types []models.ProductType
	if err := db.Order("id").Find(&types).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch product types", err)
	}
	return types, nil
}

// ListProducts returns every product ordered by ascending id, with category
// and type names joined in.
func ListProducts(db *gorm.DB) ([]ProductView, error) {
	products := []ProductView{}
	err := db.Table("products").
		Select("products.id, products.code, products.name, products.description, products.price, products.sale_percent, products.stock, products.image, categories.name AS category, product_types.name AS product_type").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Joins("LEFT JOIN product_types ON product_types.id = products.product_type_id").
		Order("products.id").
		Scan(&products).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch products", err)
	}
	return products, nil
}

func GetProductByID(db *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "product not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch product", err)
	}
	return &product, nil
}

// POST /catalog/products
func AddProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "errors": []string{"invalid input"}})
			return
		}

		product, err := AddProduct(db, input)
		if err != nil {
			log.Printf("add product %s failed: %v", input.Code, err)
			c.JSON(apperr.HTTPStatus(err), gin.H{"status": "error", "errors": []string{apperr.ClientMessage(err)}})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"status": "success", "errors": []string{}, "data": product})
	}
}

// GET /catalog/categories
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := ListCategories(db)
		if err != nil {
			log.Printf("list categories failed: %v", err)
			c.JSON(apperr.HTTPStatus(err), gin.H{"status": "error", "message": apperr.ClientMessage(err)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "", "data": categories})
	}
}

// GET /catalog/product-types
func GetProductTypes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		types, err := ListProductTypes(db)
		if err != nil {
			log.Printf("list product types failed: %v", err)
			c.JSON(apperr.HTTPStatus(err), gin.H{"status": "error", "message": apperr.ClientMessage(err)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "", "data": types})
	}
}

// GET /catalog/products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := ListProducts(db)
		if err != nil {
			log.Printf("list products failed: %v", err)
			c.JSON(apperr.HTTPStatus(err), gin.H{"status": "error", "message": apperr.ClientMessage(err)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "", "data": products})
	}
}

// GET /catalog/products/:id
func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid product id"})
			return
		}

		product, err := GetProductByID(db, uint(id))
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"status": "error", "message": apperr.ClientMessage(err)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "", "data": product})
	}
}
