package services

import (
	"context"
	"errors"
	"strings"

	"github.com/breddit-app/backend/internal/apperr"
	"github.com/breddit-app/backend/internal/models"
	"github.com/breddit-app/backend/internal/pagination"
	"github.com/breddit-app/backend/internal/store"
	"github.com/breddit-app/backend/internal/voting"
)

// maxThreadDepth bounds tree expansion. Parent/child is a strict tree on
// creation, so real data never gets near this; a corrupted parent chain
// fails the whole call instead of looping forever.
const maxThreadDepth = 64

// ThreadNode is the transient tree view of a comment handed to the client.
// It is built per request and never persisted.
type ThreadNode struct {
	models.Comment
	VoteState voting.State  `json:"vote_state,omitempty"`
	Children  []*ThreadNode `json:"children"`
}

type ThreadQuery struct {
	PostID      int
	AuthorID    int
	RequesterID int
	Cursor      int
}

type CommentService struct {
	comments store.CommentStore
	posts    store.PostStore
	votes    store.VoteStore
}

func NewCommentService(comments store.CommentStore, posts store.PostStore, votes store.VoteStore) *CommentService {
	return &CommentService{comments: comments, posts: posts, votes: votes}
}

// Create adds a comment on a post (root) or under a parent comment (reply).
// The target must exist and not be soft-deleted.
func (s *CommentService) Create(ctx context.Context, req models.CreateCommentRequest, authorID int) (models.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return models.Comment{}, apperr.ErrUnexpectedBody
	}

	switch {
	case req.ParentID != nil:
		if _, err := s.comments.GetComment(ctx, *req.ParentID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return models.Comment{}, apperr.ErrCommentNotFound
			}
			return models.Comment{}, serverError("create comment", err)
		}
	case req.PostID != nil:
		if _, err := s.posts.GetPost(ctx, *req.PostID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return models.Comment{}, apperr.ErrPostNotFound
			}
			return models.Comment{}, serverError("create comment", err)
		}
	default:
		return models.Comment{}, apperr.ErrUnexpectedBody
	}

	comment := models.Comment{
		Content:  content,
		AuthorID: authorID,
		PostID:   req.PostID,
		ParentID: req.ParentID,
	}
	if err := s.comments.CreateComment(ctx, &comment); err != nil {
		return models.Comment{}, serverError("create comment", err)
	}
	return comment, nil
}

// GetThreads returns one page of root comments, each with its full
// descendant subtree attached and every node annotated with the requester's
// own vote state. Pagination applies at the root level only.
//
// Expansion is breadth-first, one storage round trip per tree level. A
// repeated node id or a depth past maxThreadDepth means the parent chain is
// corrupted; the whole call fails rather than returning a partial tree.
func (s *CommentService) GetThreads(ctx context.Context, q ThreadQuery) (pagination.Page[*ThreadNode], error) {
	var zero pagination.Page[*ThreadNode]

	roots, err := s.comments.ListRootComments(ctx, store.CommentFilter{
		PostID:   q.PostID,
		AuthorID: q.AuthorID,
		Cursor:   q.Cursor,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return zero, apperr.ErrCommentNotFound
		}
		return zero, serverError("list root comments", err)
	}

	nodes := make([]*ThreadNode, 0, len(roots))
	byID := make(map[int]*ThreadNode)
	frontier := make([]int, 0, len(roots))
	for _, c := range roots {
		n := &ThreadNode{Comment: c, Children: []*ThreadNode{}}
		nodes = append(nodes, n)
		byID[c.ID] = n
		frontier = append(frontier, c.ID)
	}

	for depth := 1; len(frontier) > 0; depth++ {
		if depth > maxThreadDepth {
			return zero, serverError("expand threads", errThreadTooDeep)
		}
		children, err := s.comments.ListChildComments(ctx, frontier)
		if err != nil {
			return zero, serverError("expand threads", err)
		}

		frontier = frontier[:0]
		for _, c := range children {
			if _, seen := byID[c.ID]; seen {
				return zero, serverError("expand threads", errThreadCycle)
			}
			parent := byID[*c.ParentID]
			n := &ThreadNode{Comment: c, Children: []*ThreadNode{}}
			parent.Children = append(parent.Children, n)
			byID[c.ID] = n
			frontier = append(frontier, c.ID)
		}
	}

	if q.RequesterID != 0 && len(byID) > 0 {
		ids := make([]int, 0, len(byID))
		for id := range byID {
			ids = append(ids, id)
		}
		states, err := s.votes.CommentVoteStates(ctx, q.RequesterID, ids)
		if err != nil {
			return zero, serverError("annotate threads", err)
		}
		for id, state := range states {
			byID[id].VoteState = state
		}
	}

	return pagination.NewPage(nodes, func(n *ThreadNode) int { return n.ID }), nil
}

var (
	errThreadTooDeep = errors.New("comment tree exceeds max depth, parent chain corrupted")
	errThreadCycle   = errors.New("comment tree contains a cycle")
)
