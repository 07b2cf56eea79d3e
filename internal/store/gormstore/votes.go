package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/breddit-app/backend/internal/models"
	"github.com/breddit-app/backend/internal/store"
	"github.com/breddit-app/backend/internal/voting"
)

// ApplyPostVote executes one vote transition as a single atomic unit: the
// post row is locked FOR UPDATE, which serializes concurrent operations on
// the same (voter, post) pair; the ledger row and the score increment then
// commit together or roll back together. The score is moved with a relative
// `score + delta` update, never a value read earlier in the request.
func (s *Store) ApplyPostVote(ctx context.Context, voterID, postID int, apply store.VoteApply) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND deleted = ?", postID, false).
			Take(&post).Error
		if err != nil {
			return err
		}

		current := voting.StateNone
		var rec models.PostVote
		err = tx.Where("user_id = ? AND post_id = ?", voterID, postID).Take(&rec).Error
		switch {
		case err == nil:
			current = rec.State
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}

		next, delta, err := apply(current)
		if err != nil {
			return err
		}

		switch {
		case next == voting.StateNone:
			if err := tx.Where("user_id = ? AND post_id = ?", voterID, postID).
				Delete(&models.PostVote{}).Error; err != nil {
				return err
			}
		case current == voting.StateNone:
			if err := tx.Create(&models.PostVote{UserID: voterID, PostID: postID, State: next}).Error; err != nil {
				return err
			}
		case current != next:
			if err := tx.Model(&models.PostVote{}).
				Where("user_id = ? AND post_id = ?", voterID, postID).
				Update("state", next).Error; err != nil {
				return err
			}
		}

		if delta != 0 {
			if err := tx.Model(&models.Post{}).
				Where("id = ?", postID).
				UpdateColumn("score", gorm.Expr("score + ?", delta)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translate(err)
}

func (s *Store) PostVoteStates(ctx context.Context, voterID int, postIDs []int) (map[int]voting.State, error) {
	states := make(map[int]voting.State, len(postIDs))
	if len(postIDs) == 0 {
		return states, nil
	}

	var recs []models.PostVote
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id IN ?", voterID, postIDs).
		Find(&recs).Error
	if err != nil {
		return nil, translate(err)
	}
	for _, r := range recs {
		states[r.PostID] = r.State
	}
	return states, nil
}

// ApplyCommentVote keeps the comment ledger; comments carry no aggregate
// score so the delta is computed (validating the transition) and discarded.
func (s *Store) ApplyCommentVote(ctx context.Context, voterID, commentID int, apply store.VoteApply) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND deleted = ?", commentID, false).
			Take(&comment).Error
		if err != nil {
			return err
		}

		current := voting.StateNone
		var rec models.CommentVote
		err = tx.Where("user_id = ? AND comment_id = ?", voterID, commentID).Take(&rec).Error
		switch {
		case err == nil:
			current = rec.State
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}

		next, _, err := apply(current)
		if err != nil {
			return err
		}

		switch {
		case next == voting.StateNone:
			return tx.Where("user_id = ? AND comment_id = ?", voterID, commentID).
				Delete(&models.CommentVote{}).Error
		case current == voting.StateNone:
			return tx.Create(&models.CommentVote{UserID: voterID, CommentID: commentID, State: next}).Error
		case current != next:
			return tx.Model(&models.CommentVote{}).
				Where("user_id = ? AND comment_id = ?", voterID, commentID).
				Update("state", next).Error
		}
		return nil
	})
	return translate(err)
}

func (s *Store) CommentVoteStates(ctx context.Context, voterID int, commentIDs []int) (map[int]voting.State, error) {
	states := make(map[int]voting.State, len(commentIDs))
	if len(commentIDs) == 0 {
		return states, nil
	}

	var recs []models.CommentVote
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND comment_id IN ?", voterID, commentIDs).
		Find(&recs).Error
	if err != nil {
		return nil, translate(err)
	}
	for _, r := range recs {
		states[r.CommentID] = r.State
	}
	return states, nil
}
