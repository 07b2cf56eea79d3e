package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/breddit-app/backend/internal/apperr"
	"github.com/breddit-app/backend/internal/models"
	"github.com/breddit-app/backend/internal/services"
)

type CommentHandler struct {
	comments *services.CommentService
	votes    *services.VoteService
}

func NewCommentHandler(comments *services.CommentService, votes *services.VoteService) *CommentHandler {
	return &CommentHandler{comments: comments, votes: votes}
}

// CreateComment adds a root comment on a post or a reply to another comment
func (h *CommentHandler) CreateComment(c *gin.Context) {
	postID, ok := intParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Content  string `json:"content"`
		ParentID *int   `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, apperr.ErrUnexpectedBody)
		return
	}

	req := models.CreateCommentRequest{Content: input.Content}
	if input.ParentID != nil {
		req.ParentID = input.ParentID
	} else {
		req.PostID = &postID
	}

	authorID, _ := requester(c)
	comment, err := h.comments.Create(c.Request.Context(), req, authorID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// GetComments returns one page of a post's comment threads. Roots are
// paginated with ?cursor=; each root carries its full reply subtree.
func (h *CommentHandler) GetComments(c *gin.Context) {
	postID, ok := intParam(c, "id")
	if !ok {
		return
	}
	cursor, ok := cursorQuery(c)
	if !ok {
		return
	}
	requesterID, _ := requester(c)

	page, err := h.comments.GetThreads(c.Request.Context(), services.ThreadQuery{
		PostID:      postID,
		RequesterID: requesterID,
		Cursor:      cursor,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments":    page.Items,
		"next_cursor": page.NextCursor,
	})
}

// GetUserComments returns one page of a user's comment threads
func (h *CommentHandler) GetUserComments(c *gin.Context) {
	authorID, ok := intParam(c, "id")
	if !ok {
		return
	}
	cursor, ok := cursorQuery(c)
	if !ok {
		return
	}
	requesterID, _ := requester(c)

	page, err := h.comments.GetThreads(c.Request.Context(), services.ThreadQuery{
		AuthorID:    authorID,
		RequesterID: requesterID,
		Cursor:      cursor,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments":    page.Items,
		"next_cursor": page.NextCursor,
	})
}

// VoteComment casts or replaces the requester's vote on a comment
func (h *CommentHandler) VoteComment(c *gin.Context) {
	commentID, ok := intParam(c, "commentId")
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
	if err := h.votes.CastCommentVote(c.Request.Context(), voterID, commentID, input.State); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vote recorded"})
}

// UnvoteComment removes the requester's vote from a comment
func (h *CommentHandler) UnvoteComment(c *gin.Context) {
	commentID, ok := intParam(c, "commentId")
	if !ok {
		return
	}

	voterID, _ := requester(c)
	if err := h.votes.RemoveCommentVote(c.Request.Context(), voterID, commentID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vote removed"})
}
