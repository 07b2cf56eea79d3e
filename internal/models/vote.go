package models

import (
	"time"

	"github.com/breddit-app/backend/internal/voting"
)

// PostVote is the durable ledger row for one user's current vote on a post.
// Absence of a row means "no vote". At most one row per (user, post) pair.
type PostVote struct {
	ID        int          `gorm:"primaryKey" json:"id"`
	UserID    int          `gorm:"uniqueIndex:idx_vote_user_post" json:"user_id"`
	PostID    int          `gorm:"uniqueIndex:idx_vote_user_post" json:"post_id"`
	State     voting.State `gorm:"type:varchar(8);not null" json:"state"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// CommentVote mirrors PostVote for comments. Comments carry no aggregate
// score; these rows only feed the requester's vote annotation on threads.
type CommentVote struct {
	ID        int          `gorm:"primaryKey" json:"id"`
	UserID    int          `gorm:"uniqueIndex:idx_vote_user_comment" json:"user_id"`
	CommentID int          `gorm:"uniqueIndex:idx_vote_user_comment" json:"comment_id"`
	State     voting.State `gorm:"type:varchar(8);not null" json:"state"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
