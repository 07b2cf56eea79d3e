package handlers

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/breddit-app/backend/internal/apperr"
	"github.com/breddit-app/backend/internal/models"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

var jwtSecret = []byte(os.Getenv("JWT_SECRET"))

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Avatar   string `json:"avatar"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, apperr.ErrUnexpectedBody)
		return
	}

	var existing models.User
	if err := h.db.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		fail(c, apperr.ErrUsernameTaken)
		return
	}
	if err := h.db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		fail(c, apperr.ErrEmailTaken)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, apperr.ErrServer)
		return
	}

	user := models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
		Avatar:   input.Avatar,
	}

	if err := h.db.Create(&user).Error; err != nil {
		fail(c, apperr.ErrServer)
		return
	}

	token, err := issueToken(user)
	if err != nil {
		fail(c, apperr.ErrServer)
		return
	}

	c.JSON(http.StatusCreated, models.AuthResponse{
		Token:   token,
		User:    user,
		Message: "User registered successfully",
	})
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, apperr.ErrUnexpectedBody)
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		fail(c, apperr.ErrInvalidCredentials)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		fail(c, apperr.ErrInvalidCredentials)
		return
	}

	token, err := issueToken(user)
	if err != nil {
		fail(c, apperr.ErrServer)
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		Token:   token,
		User:    user,
		Message: "Login successful",
	})
}

// GetMe returns the current authenticated user
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, _ := requester(c)
	if userID == 0 {
		fail(c, apperr.ErrNotLoggedIn)
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, apperr.ErrUserNotFound)
			return
		}
		fail(c, apperr.ErrServer)
		return
	}

	c.JSON(http.StatusOK, user)
}

func issueToken(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(72 * time.Hour).Unix(),
	})
	return token.SignedString(jwtSecret)
}
