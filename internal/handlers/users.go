package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/breddit-app/backend/internal/apperr"
	"github.com/breddit-app/backend/internal/models"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// GetUserProfile returns a user's public profile
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	userID, ok := intParam(c, "id")
	if !ok {
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

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"bio":        user.Bio,
		"avatar":     user.Avatar,
		"created_at": user.CreatedAt,
	})
}

// UpdateUserProfile lets a user edit their own bio and avatar
func (h *UserHandler) UpdateUserProfile(c *gin.Context) {
	userID, ok := intParam(c, "id")
	if !ok {
		return
	}
	actorID, _ := requester(c)
	if actorID != userID {
		fail(c, apperr.ErrInsufficientPermissions)
		return
	}

	var input struct {
		Bio    *string `json:"bio"`
		Avatar *string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, apperr.ErrUnexpectedBody)
		return
	}

	updates := map[string]interface{}{}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}
	if input.Avatar != nil {
		updates["avatar"] = *input.Avatar
	}
	if len(updates) == 0 {
		fail(c, apperr.ErrUnexpectedBody)
		return
	}

	if err := h.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		fail(c, apperr.ErrServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}
