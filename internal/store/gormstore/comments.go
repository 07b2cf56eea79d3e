package gormstore

import (
	"context"

	"github.com/breddit-app/backend/internal/models"
	"github.com/breddit-app/backend/internal/pagination"
	"github.com/breddit-app/backend/internal/store"
)

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	return translate(s.db.WithContext(ctx).Create(comment).Error)
}

func (s *Store) GetComment(ctx context.Context, id int) (models.Comment, error) {
	var comment models.Comment
	err := s.db.WithContext(ctx).
		Where("id = ? AND deleted = ?", id, false).
		Take(&comment).Error
	return comment, translate(err)
}

func (s *Store) ListRootComments(ctx context.Context, f store.CommentFilter) ([]models.Comment, error) {
	q := s.db.WithContext(ctx).Model(&models.Comment{}).
		Where("deleted = ? AND parent_id IS NULL", false)
	if f.PostID != 0 {
		q = q.Where("post_id = ?", f.PostID)
	}
	if f.AuthorID != 0 {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if f.Cursor != 0 {
		createdAt, err := s.cursorCreatedAt(ctx, "comments", f.Cursor)
		if err != nil {
			return nil, err
		}
		q = q.Where("(created_at, id) < (?, ?)", createdAt, f.Cursor)
	}

	var comments []models.Comment
	err := q.Preload("User").
		Order("created_at DESC, id DESC").
		Limit(pagination.PageSize).
		Find(&comments).Error
	return comments, translate(err)
}

func (s *Store) ListChildComments(ctx context.Context, parentIDs []int) ([]models.Comment, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Where("parent_id IN ? AND deleted = ?", parentIDs, false).
		Preload("User").
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, translate(err)
}
