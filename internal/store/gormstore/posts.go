package gormstore

import (
	"context"

	"github.com/breddit-app/backend/internal/models"
	"github.com/breddit-app/backend/internal/pagination"
	"github.com/breddit-app/backend/internal/store"
)

func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	return translate(s.db.WithContext(ctx).Create(post).Error)
}

func (s *Store) GetPost(ctx context.Context, id int) (models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).
		Where("id = ? AND deleted = ?", id, false).
		Take(&post).Error
	return post, translate(err)
}

func (s *Store) ListPosts(ctx context.Context, f store.PostFilter) ([]models.Post, error) {
	q := s.db.WithContext(ctx).Model(&models.Post{}).Where("deleted = ?", false)
	if f.PostID != 0 {
		q = q.Where("id = ?", f.PostID)
	}
	if f.AuthorID != 0 {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if f.CommunityID != 0 {
		q = q.Where("community_id = ?", f.CommunityID)
	}
	if f.Cursor != 0 {
		createdAt, err := s.cursorCreatedAt(ctx, "posts", f.Cursor)
		if err != nil {
			return nil, err
		}
		q = q.Where("(created_at, id) < (?, ?)", createdAt, f.Cursor)
	}

	var posts []models.Post
	err := q.Preload("User").
		Order("created_at DESC, id DESC").
		Limit(pagination.PageSize).
		Find(&posts).Error
	return posts, translate(err)
}

func (s *Store) UpdatePostContent(ctx context.Context, id int, content string) error {
	res := s.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ? AND deleted = ?", id, false).
		Update("content", content)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) SoftDeletePost(ctx context.Context, id int) error {
	res := s.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ? AND deleted = ?", id, false).
		Update("deleted", true)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) SoftDeletePostsByCommunity(ctx context.Context, communityID int) error {
	return translate(s.db.WithContext(ctx).Model(&models.Post{}).
		Where("community_id = ? AND deleted = ?", communityID, false).
		Update("deleted", true).Error)
}
