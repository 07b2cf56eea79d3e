// Package store defines the storage interfaces the services consume and the
// sentinel errors every implementation translates its driver failures into.
package store

import (
	"context"
	"errors"

	"github.com/breddit-app/backend/internal/models"
	"github.com/breddit-app/backend/internal/voting"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// PostFilter narrows a post listing. Zero fields are ignored. Cursor is the
// id of the last item the client saw; the listing resumes strictly after it.
type PostFilter struct {
	PostID      int
	AuthorID    int
	CommunityID int
	Cursor      int
}

type PostStore interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id int) (models.Post, error)
	// ListPosts returns at most pagination.PageSize non-deleted posts
	// ordered by created_at descending, id descending.
	ListPosts(ctx context.Context, f PostFilter) ([]models.Post, error)
	UpdatePostContent(ctx context.Context, id int, content string) error
	SoftDeletePost(ctx context.Context, id int) error
	SoftDeletePostsByCommunity(ctx context.Context, communityID int) error
}

// CommentFilter narrows the root-comment listing; children are fetched
// separately per level.
type CommentFilter struct {
	PostID   int
	AuthorID int
	Cursor   int
}

type CommentStore interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id int) (models.Comment, error)
	// ListRootComments returns at most pagination.PageSize non-deleted root
	// comments (parent null) ordered by created_at descending, id descending.
	ListRootComments(ctx context.Context, f CommentFilter) ([]models.Comment, error)
	// ListChildComments returns every non-deleted direct child of the given
	// parents in one round trip, ordered by created_at ascending, id ascending.
	ListChildComments(ctx context.Context, parentIDs []int) ([]models.Comment, error)
}

// VoteApply computes the next ledger state and score delta from the current
// one. Implementations call it inside the atomic unit, after reading the
// current state under the same lock that serializes concurrent votes on the
// pair, so the transition is never computed against a stale snapshot.
type VoteApply func(current voting.State) (next voting.State, delta int, err error)

type VoteStore interface {
	// ApplyPostVote runs apply against the voter's current ledger state for
	// the post and persists the ledger change together with an atomic
	// score increment. Either both writes commit or neither does.
	ApplyPostVote(ctx context.Context, voterID, postID int, apply VoteApply) error
	PostVoteStates(ctx context.Context, voterID int, postIDs []int) (map[int]voting.State, error)

	// ApplyCommentVote is the ledger-only counterpart for comments; the
	// delta returned by apply is validated but not persisted anywhere.
	ApplyCommentVote(ctx context.Context, voterID, commentID int, apply VoteApply) error
	CommentVoteStates(ctx context.Context, voterID int, commentIDs []int) (map[int]voting.State, error)
}

type CommunityStore interface {
	CreateCommunity(ctx context.Context, community *models.Community) error
	GetCommunityByName(ctx context.Context, name string) (models.Community, error)
	// ListCommunities returns at most pagination.PageSize communities whose
	// name contains the query, newest first.
	ListCommunities(ctx context.Context, name string, cursor int) ([]models.Community, error)
	DeleteCommunity(ctx context.Context, id int) error
	AddMember(ctx context.Context, member *models.CommunityMember) error
	// Role returns the user's role within the community, or "" when the
	// user is not a member.
	Role(ctx context.Context, userID, communityID int) (string, error)
	UpdateCommunityLogo(ctx context.Context, id int, url string) error
	UpdateCommunityBanner(ctx context.Context, id int, url string) error
}
