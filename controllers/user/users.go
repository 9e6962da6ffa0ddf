package userControllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangle2000/final-project-backend/apperr"
	"github.com/sangle2000/final-project-backend/auth"
	"github.com/sangle2000/final-project-backend/models"
	"gorm.io/gorm"
)

type UpdateProfileInput struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// GET /user
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var user models.User
		if err := db.Preload("Cart.Items").First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "user not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "", "data": user})
	}
}

// PUT /user
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input UpdateProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "errors": []string{"invalid input"}})
			return
		}

		token, user, err := auth.UpdateProfile(db, userID, input.Name, input.Phone, input.Address)
		if err != nil {
			log.Printf("profile update failed for user %s: %v", userID, err)
			c.JSON(apperr.HTTPStatus(err), gin.H{"status": "error", "errors": []string{apperr.ClientMessage(err)}})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"errors": []string{},
			"data":   gin.H{"token": token, "user": user},
		})
	}
}
