package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangle2000/final-project-backend/apperr"
	"github.com/sangle2000/final-project-backend/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Unknown email and wrong password must be indistinguishable to the caller.
const badCredentialsMsg = "invalid email or password"

// SignUp registers a new account and returns a token bound to it. The user
// row and their cart are created in one transaction so the cart always
// exists before the first cart write.
func SignUp(db *gorm.DB, email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return "", nil, apperr.New(apperr.Conflict, "email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, apperr.Wrap(apperr.Internal, "failed to check email", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.Internal, "failed to hash password", err)
	}

	user := models.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: string(hashed),
		Role:     "user",
	}
	user.Cart = models.Cart{UserID: user.ID}

	if err := db.Create(&user).Error; err != nil {
		return "", nil, apperr.Wrap(apperr.Internal, "failed to create user", err)
	}

	token, err := IssueToken(&user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Login verifies credentials and issues a fresh token.
func Login(db *gorm.DB, email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperr.New(apperr.Unauthorized, badCredentialsMsg)
		}
		return "", nil, apperr.Wrap(apperr.Internal, "failed to fetch user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.New(apperr.Unauthorized, badCredentialsMsg)
	}

	token, err := IssueToken(&user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// UpdateProfile persists the supplied fields and re-issues a token with
// refreshed claims, since the old token embeds the stale profile.
func UpdateProfile(db *gorm.DB, userID string, name, phone, address *string) (string, *models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperr.New(apperr.NotFound, "user not found")
		}
		return "", nil, apperr.Wrap(apperr.Internal, "failed to fetch user", err)
	}

	updates := make(map[string]interface{})
	if name != nil {
		updates["name"] = *name
	}
	if phone != nil {
		updates["phone"] = *phone
	}
	if address != nil {
		updates["address"] = *address
	}

	if len(updates) > 0 {
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return "", nil, apperr.Wrap(apperr.Internal, "failed to update user", err)
		}
	}

	token, err := IssueToken(&user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

type credentialsInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// POST /auth/signup
func SignUpHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input credentialsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "errors": []string{"invalid input"}})
			return
		}

		token, user, err := SignUp(db, input.Email, input.Password)
		if err != nil {
			log.Printf("sign up failed for %s: %v", input.Email, err)
			c.JSON(apperr.HTTPStatus(err), gin.H{"status": "error", "errors": []string{apperr.ClientMessage(err)}})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"status": "success",
			"errors": []string{},
			"data":   gin.H{"token": token, "user": user},
		})
	}
}

// POST /auth/login
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input credentialsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "errors": []string{"invalid input"}})
			return
		}

		token, user, err := Login(db, input.Email, input.Password)
		if err != nil {
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
