package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/breddit-app/backend/internal/apperr"
	"github.com/breddit-app/backend/internal/models"
	"github.com/breddit-app/backend/internal/services"
	"github.com/breddit-app/backend/internal/store/gormstore"
)

// Handler combines all handler types
type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Post      *PostHandler
	Comment   *CommentHandler
	Community *CommunityHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB) *Handler {
	st := gormstore.New(db)

	posts := services.NewPostService(st, st, st)
	comments := services.NewCommentService(st, st, st)
	votes := services.NewVoteService(st)
	communities := services.NewCommunityService(st, st)

	return &Handler{
		Auth:      NewAuthHandler(db),
		User:      NewUserHandler(db),
		Post:      NewPostHandler(posts, votes),
		Comment:   NewCommentHandler(comments, votes),
		Community: NewCommunityHandler(communities),
	}
}

// fail writes the API error for err. Anything that is not an *apperr.Error
// has already been logged where it happened and surfaces as a plain 500.
func fail(c *gin.Context, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = apperr.ErrServer
	}
	c.JSON(ae.Status, ae)
}

// requester returns the authenticated user's id and role, or (0, "") when
// the request is anonymous.
func requester(c *gin.Context) (int, string) {
	id, _ := c.Get("user_id")
	userID, _ := id.(int)
	role := c.GetString("user_role")
	if userID != 0 && role == "" {
		role = models.RoleUser
	}
	return userID, role
}

func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		fail(c, apperr.ErrUnexpectedBody)
		return 0, false
	}
	return v, true
}

// cursorQuery parses the optional ?cursor= pagination parameter. Absent
// means the first page.
func cursorQuery(c *gin.Context) (int, bool) {
	raw := c.Query("cursor")
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		fail(c, apperr.ErrUnexpectedBody)
		return 0, false
	}
	return v, true
}
