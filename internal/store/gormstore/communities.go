package gormstore

import (
	"context"

	"github.com/breddit-app/backend/internal/models"
	"github.com/breddit-app/backend/internal/pagination"
	"github.com/breddit-app/backend/internal/store"
)

func (s *Store) CreateCommunity(ctx context.Context, community *models.Community) error {
	return translate(s.db.WithContext(ctx).Create(community).Error)
}

func (s *Store) GetCommunityByName(ctx context.Context, name string) (models.Community, error) {
	var community models.Community
	err := s.db.WithContext(ctx).Where("name = ?", name).Take(&community).Error
	return community, translate(err)
}

func (s *Store) ListCommunities(ctx context.Context, name string, cursor int) ([]models.Community, error) {
	q := s.db.WithContext(ctx).Model(&models.Community{})
	if name != "" {
		q = q.Where("name LIKE ?", "%"+name+"%")
	}
	if cursor != 0 {
		createdAt, err := s.cursorCreatedAt(ctx, "communities", cursor)
		if err != nil {
			return nil, err
		}
		q = q.Where("(created_at, id) < (?, ?)", createdAt, cursor)
	}

	var communities []models.Community
	err := q.Order("created_at DESC, id DESC").
		Limit(pagination.PageSize).
		Find(&communities).Error
	return communities, translate(err)
}

func (s *Store) DeleteCommunity(ctx context.Context, id int) error {
	res := s.db.WithContext(ctx).Delete(&models.Community{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) AddMember(ctx context.Context, member *models.CommunityMember) error {
	return translate(s.db.WithContext(ctx).Create(member).Error)
}

func (s *Store) Role(ctx context.Context, userID, communityID int) (string, error) {
	var member models.CommunityMember
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND community_id = ?", userID, communityID).
		Take(&member).Error
	if translate(err) == store.ErrNotFound {
		return "", nil
	}
	if err != nil {
		return "", translate(err)
	}
	return member.Role, nil
}

func (s *Store) UpdateCommunityLogo(ctx context.Context, id int, url string) error {
	return s.updateCommunityColumn(ctx, id, "logo_url", url)
}

func (s *Store) UpdateCommunityBanner(ctx context.Context, id int, url string) error {
	return s.updateCommunityColumn(ctx, id, "banner_url", url)
}

func (s *Store) updateCommunityColumn(ctx context.Context, id int, column, url string) error {
	res := s.db.WithContext(ctx).Model(&models.Community{}).
		Where("id = ?", id).
		Update(column, url)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
