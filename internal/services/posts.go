package services

import (
	"context"
	"errors"
	"strings"

	"github.com/breddit-app/backend/internal/apperr"
	"github.com/breddit-app/backend/internal/models"
	"github.com/breddit-app/backend/internal/pagination"
	"github.com/breddit-app/backend/internal/policy"
	"github.com/breddit-app/backend/internal/store"
	"github.com/breddit-app/backend/internal/voting"
)

// PostView is a post decorated with the requester's own vote state.
type PostView struct {
	models.Post
	VoteState voting.State `json:"vote_state,omitempty"`
}

type PostQuery struct {
	PostID      int
	AuthorID    int
	CommunityID int
	RequesterID int
	Cursor      int
}

type PostService struct {
	posts       store.PostStore
	votes       store.VoteStore
	communities store.CommunityStore
}

func NewPostService(posts store.PostStore, votes store.VoteStore, communities store.CommunityStore) *PostService {
	return &PostService{posts: posts, votes: votes, communities: communities}
}

func (s *PostService) Create(ctx context.Context, req models.CreatePostRequest, authorID int) (models.Post, error) {
	if strings.TrimSpace(req.Title) == "" {
		return models.Post{}, apperr.ErrUnexpectedBody
	}

	community, err := s.communities.GetCommunityByName(ctx, req.CommunityName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Post{}, apperr.ErrCommunityNotFound
		}
		return models.Post{}, serverError("create post", err)
	}

	post := models.Post{
		Title:       req.Title,
		Content:     req.Content,
		Type:        req.Type,
		AuthorID:    authorID,
		CommunityID: community.ID,
	}
	switch req.Type {
	case models.PostTypeText, models.PostTypeLink:
	case models.PostTypeMedia:
		if len(req.MediaURLs) == 0 {
			return models.Post{}, apperr.ErrMissingMedia
		}
		post.Content = ""
		post.MediaURLs = req.MediaURLs
	default:
		return models.Post{}, apperr.ErrUnexpectedBody
	}

	if err := s.posts.CreatePost(ctx, &post); err != nil {
		return models.Post{}, serverError("create post", err)
	}
	return post, nil
}

func (s *PostService) List(ctx context.Context, q PostQuery) (pagination.Page[PostView], error) {
	var zero pagination.Page[PostView]

	posts, err := s.posts.ListPosts(ctx, store.PostFilter{
		PostID:      q.PostID,
		AuthorID:    q.AuthorID,
		CommunityID: q.CommunityID,
		Cursor:      q.Cursor,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return zero, apperr.ErrPostNotFound
		}
		return zero, serverError("list posts", err)
	}

	var states map[int]voting.State
	if q.RequesterID != 0 && len(posts) > 0 {
		ids := make([]int, len(posts))
		for i, p := range posts {
			ids[i] = p.ID
		}
		states, err = s.votes.PostVoteStates(ctx, q.RequesterID, ids)
		if err != nil {
			return zero, serverError("annotate posts", err)
		}
	}

	views := make([]PostView, len(posts))
	for i, p := range posts {
		views[i] = PostView{Post: p, VoteState: states[p.ID]}
	}
	return pagination.NewPage(views, func(v PostView) int { return v.ID }), nil
}

// EditContent replaces a text post's body. Only the author may edit, media
// posts cannot be edited, and the replacement must be non-empty.
func (s *PostService) EditContent(ctx context.Context, postID, actorID int, content string) error {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.ErrPostNotFound
		}
		return serverError("edit post", err)
	}

	if strings.TrimSpace(content) == "" {
		return apperr.ErrUnexpectedBody
	}
	if post.Type == models.PostTypeMedia {
		return apperr.ErrMediaPostEditingUnsupported
	}
	if post.AuthorID != actorID {
		return apperr.ErrInsufficientPermissions
	}

	if err := s.posts.UpdatePostContent(ctx, postID, content); err != nil {
		return serverError("edit post", err)
	}
	return nil
}

// Delete soft-deletes a post. Allowed for the author, a platform admin, or
// a moderator of the post's community; the community role is looked up
// fresh on every call.
func (s *PostService) Delete(ctx context.Context, postID, actorID int, actorRole string) error {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.ErrPostNotFound
		}
		return serverError("delete post", err)
	}

	communityRole, err := s.communities.Role(ctx, actorID, post.CommunityID)
	if err != nil {
		return serverError("delete post", err)
	}
	if !policy.CanModerate(actorID, actorRole, post.AuthorID, communityRole) {
		return apperr.ErrInsufficientPermissions
	}

	if err := s.posts.SoftDeletePost(ctx, postID); err != nil {
		return serverError("delete post", err)
	}
	return nil
}
