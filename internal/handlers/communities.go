package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/breddit-app/backend/internal/apperr"
	"github.com/breddit-app/backend/internal/services"
)

type CommunityHandler struct {
	communities *services.CommunityService
}

func NewCommunityHandler(communities *services.CommunityService) *CommunityHandler {
	return &CommunityHandler{communities: communities}
}

// CreateCommunity creates a community owned by the requester
func (h *CommunityHandler) CreateCommunity(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, apperr.ErrUnexpectedBody)
		return
	}

	ownerID, _ := requester(c)
	community, err := h.communities.Create(c.Request.Context(), input.Name, input.Description, ownerID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, community)
}

// GetCommunity returns a community by name
func (h *CommunityHandler) GetCommunity(c *gin.Context) {
	community, err := h.communities.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, community)
}

// GetCommunities returns one page of communities, optionally filtered by
// ?name= substring
func (h *CommunityHandler) GetCommunities(c *gin.Context) {
	cursor, ok := cursorQuery(c)
	if !ok {
		return
	}

	page, err := h.communities.List(c.Request.Context(), c.Query("name"), cursor)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"communities": page.Items,
		"next_cursor": page.NextCursor,
	})
}

// JoinCommunity adds the requester as a member
func (h *CommunityHandler) JoinCommunity(c *gin.Context) {
	userID, _ := requester(c)
	if err := h.communities.Join(c.Request.Context(), userID, c.Param("name")); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Joined community"})
}

// DeleteCommunity removes a community and soft-deletes its posts
func (h *CommunityHandler) DeleteCommunity(c *gin.Context) {
	actorID, actorRole := requester(c)
	if err := h.communities.Delete(c.Request.Context(), c.Param("name"), actorID, actorRole); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Community deleted"})
}

// UpdateCommunityLogo sets a community's logo URL
func (h *CommunityHandler) UpdateCommunityLogo(c *gin.Context) {
	h.updateMedia(c, h.communities.UpdateLogo)
}

// UpdateCommunityBanner sets a community's banner URL
func (h *CommunityHandler) UpdateCommunityBanner(c *gin.Context) {
	h.updateMedia(c, h.communities.UpdateBanner)
}

func (h *CommunityHandler) updateMedia(c *gin.Context, update func(ctx context.Context, name string, actorID int, actorRole, url string) error) {
	var input struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, apperr.ErrUnexpectedBody)
		return
	}

	actorID, actorRole := requester(c)
	if err := update(c.Request.Context(), c.Param("name"), actorID, actorRole, input.URL); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Community updated"})
}
