package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/breddit-app/backend/internal/apperr"
	"github.com/breddit-app/backend/internal/models"
	"github.com/breddit-app/backend/internal/services"
)

type PostHandler struct {
	posts *services.PostService
	votes *services.VoteService
}

func NewPostHandler(posts *services.PostService, votes *services.VoteService) *PostHandler {
	return &PostHandler{posts: posts, votes: votes}
}

// CreatePost creates a TEXT, LINK or MEDIA post in a community
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.ErrUnexpectedBody)
		return
	}

	authorID, _ := requester(c)
	post, err := h.posts.Create(c.Request.Context(), req, authorID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// GetPosts returns one page of posts, newest first. Filterable by
// ?community_id= and ?author_id=, paginated with ?cursor=.
func (h *PostHandler) GetPosts(c *gin.Context) {
	cursor, ok := cursorQuery(c)
	if !ok {
		return
	}
	requesterID, _ := requester(c)

	q := services.PostQuery{
		CommunityID: intQuery(c, "community_id"),
		AuthorID:    intQuery(c, "author_id"),
		RequesterID: requesterID,
		Cursor:      cursor,
	}

	page, err := h.posts.List(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":       page.Items,
		"next_cursor": page.NextCursor,
	})
}

// GetPost returns a single post with the requester's vote state
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := intParam(c, "id")
	if !ok {
		return
	}
	requesterID, _ := requester(c)

	page, err := h.posts.List(c.Request.Context(), services.PostQuery{
		PostID:      postID,
		RequesterID: requesterID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	if len(page.Items) == 0 {
		fail(c, apperr.ErrPostNotFound)
		return
	}

	c.JSON(http.StatusOK, page.Items[0])
}

// UpdatePost replaces the body of a text or link post
func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID, ok := intParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, apperr.ErrUnexpectedBody)
		return
	}

	actorID, _ := requester(c)
	if err := h.posts.EditContent(c.Request.Context(), postID, actorID, input.Content); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post updated"})
}

// DeletePost soft-deletes a post
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, ok := intParam(c, "id")
	if !ok {
		return
	}

	actorID, actorRole := requester(c)
	if err := h.posts.Delete(c.Request.Context(), postID, actorID, actorRole); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// VotePost casts or replaces the requester's vote on a post
func (h *PostHandler) VotePost(c *gin.Context) {
	postID, ok := intParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		State string `json:"state"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, apperr.ErrUnexpectedBody)
		return
	}

	voterID, _ := requester(c)
	if err := h.votes.CastPostVote(c.Request.Context(), voterID, postID, input.State); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vote recorded"})
}

// UnvotePost removes the requester's vote from a post
func (h *PostHandler) UnvotePost(c *gin.Context) {
	postID, ok := intParam(c, "id")
	if !ok {
		return
	}

	voterID, _ := requester(c)
	if err := h.votes.RemovePostVote(c.Request.Context(), voterID, postID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vote removed"})
}

// intQuery reads an optional positive int query parameter, 0 when absent
// or malformed.
func intQuery(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v <= 0 {
		return 0
	}
	return v
}
