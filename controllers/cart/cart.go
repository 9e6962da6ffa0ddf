package cartControllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangle2000/final-project-backend/apperr"
	"github.com/sangle2000/final-project-backend/models"
	"gorm.io/gorm"
)

const (
	ActionAdd    = "add"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

type ActionInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Action    string `json:"action" binding:"required,oneof=add update delete"`
	Quantity  int    `json:"quantity"`
}

// CartLine is a display row joining a cart item with its product.
type CartLine struct {
	ProductID   uint   `json:"product_id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	SalePercent int    `json:"sale_percent"`
	Quantity    int    `json:"quantity"`
	Image       string `json:"image"`
}

// EnsureCart finds or creates the user's cart. Idempotent; called from
// sign-up and again before every cart write, so a write never depends on an
// earlier read having created the cart.
func EnsureCart(tx *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch cart", err)
	}

	cart = models.Cart{UserID: userID}
	if err := tx.Create(&cart).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to create cart", err)
	}
	return &cart, nil
}

// ApplyActions reconciles a batch of add/update/delete intents against the
// user's cart. The whole batch runs in one transaction: either every action
// applies or none does.
func ApplyActions(db *gorm.DB, userID string, actions []ActionInput) error {
	return db.Transaction(func(tx *gorm.DB) error {
		cart, err := EnsureCart(tx, userID)
		if err != nil {
			return err
		}
		for _, action := range actions {
			if err := applyOne(tx, cart.CartID, action); err != nil {
				return err
			}
		}
		return nil
	})
}

func applyOne(tx *gorm.DB, cartID uint, action ActionInput) error {
	switch action.Action {
	case ActionAdd:
		return addItem(tx, cartID, action.ProductID, action.Quantity)
	case ActionUpdate:
		return updateItem(tx, cartID, action.ProductID, action.Quantity)
	case ActionDelete:
		return deleteItem(tx, cartID, action.ProductID)
	default:
		return apperr.New(apperr.Internal, fmt.Sprintf("unknown cart action %q", action.Action))
	}
}

// addItem upserts: an existing (cart, product) row has its quantity
// incremented, otherwise a new row is inserted.
func addItem(tx *gorm.DB, cartID, productID uint, quantity int) error {
	if quantity < 1 {
		return apperr.New(apperr.Internal, "add requires a positive quantity")
	}

	var product models.Product
	if err := tx.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "product does not exist")
		}
		return apperr.Wrap(apperr.Internal, "failed to validate product", err)
	}

	var item models.CartItem
	err := tx.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   time.Now(),
		}
		if err := tx.Create(&item).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "failed to add item to cart", err)
		}
		return nil
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to fetch cart item", err)
	}

	item.Quantity += quantity
	item.AddedAt = time.Now()
	if err := tx.Save(&item).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update cart item", err)
	}
	return nil
}

// updateItem sets the absolute quantity. A missing (cart, product) pair is a
// silent no-op; a quantity of zero or less removes the row.
func updateItem(tx *gorm.DB, cartID, productID uint, quantity int) error {
	var item models.CartItem
	err := tx.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to fetch cart item", err)
	}

	if quantity <= 0 {
		return deleteItem(tx, cartID, productID)
	}

	item.Quantity = quantity
	item.AddedAt = time.Now()
	if err := tx.Save(&item).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update cart item", err)
	}
	return nil
}

// deleteItem removes the row unconditionally; deleting twice is a no-op.
func deleteItem(tx *gorm.DB, cartID, productID uint) error {
	result := tx.Where("cart_id = ? AND product_id = ?", cartID, productID).Delete(&models.CartItem{})
	if result.Error != nil {
		return apperr.Wrap(apperr.Internal, "failed to delete cart item", result.Error)
	}
	return nil
}

// View returns the cart's display rows; an empty slice when the user has no
// cart or no items.
func View(db *gorm.DB, userID string) ([]CartLine, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []CartLine{}, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch cart", err)
	}

	lines := []CartLine{}
	err = db.Table("cart_items").
		Select("cart_items.product_id, products.code, products.name, products.price, products.sale_percent, cart_items.quantity, products.image").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.cart_id = ?", cart.CartID).
		Order("cart_items.product_id").
		Scan(&lines).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch cart items", err)
	}
	return lines, nil
}

// Clear removes every item from the user's cart.
func Clear(db *gorm.DB, userID string) error {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to fetch cart", err)
	}

	if err := db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "failed to clear cart", err)
	}
	return nil
}

// GET /user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		lines, err := View(db, userID)
		if err != nil {
			log.Printf("cart view failed for user %s: %v", userID, err)
			c.JSON(apperr.HTTPStatus(err), gin.H{"status": "error", "message": apperr.ClientMessage(err)})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "", "data": lines})
	}
}

// POST /user/cart/actions
func ApplyCartActions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input struct {
			Items []ActionInput `json:"items" binding:"required,min=1,dive"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "errors": []string{"invalid input"}})
			return
		}
		for _, item := range input.Items {
			if item.Action == ActionAdd && item.Quantity < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "errors": []string{"add requires a positive quantity"}})
				return
			}
		}

		if err := ApplyActions(db, userID, input.Items); err != nil {
			log.Printf("cart actions failed for user %s: %v", userID, err)
			c.JSON(apperr.HTTPStatus(err), gin.H{"status": "error", "errors": []string{apperr.ClientMessage(err)}})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "errors": []string{}})
	}
}

// DELETE /user/cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		if err := Clear(db, userID); err != nil {
			log.Printf("cart clear failed for user %s: %v", userID, err)
			c.JSON(apperr.HTTPStatus(err), gin.H{"status": "error", "errors": []string{apperr.ClientMessage(err)}})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "errors": []string{}})
	}
}
