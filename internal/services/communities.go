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
)

type CommunityService struct {
	communities store.CommunityStore
	posts       store.PostStore
}

func NewCommunityService(communities store.CommunityStore, posts store.PostStore) *CommunityService {
	return &CommunityService{communities: communities, posts: posts}
}

func (s *CommunityService) Create(ctx context.Context, name, description string, ownerID int) (models.Community, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Community{}, apperr.ErrUnexpectedBody
	}

	community := models.Community{Name: name, Description: description, OwnerID: ownerID}
	if err := s.communities.CreateCommunity(ctx, &community); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.Community{}, apperr.ErrCommunityNameTaken
		}
		return models.Community{}, serverError("create community", err)
	}

	// The creator moderates their own community from the start.
	member := models.CommunityMember{
		UserID:      ownerID,
		CommunityID: community.ID,
		Role:        models.CommunityRoleModerator,
	}
	if err := s.communities.AddMember(ctx, &member); err != nil {
		return models.Community{}, serverError("create community", err)
	}
	return community, nil
}

func (s *CommunityService) GetByName(ctx context.Context, name string) (models.Community, error) {
	community, err := s.communities.GetCommunityByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Community{}, apperr.ErrCommunityNotFound
		}
		return models.Community{}, serverError("get community", err)
	}
	return community, nil
}

func (s *CommunityService) List(ctx context.Context, name string, cursor int) (pagination.Page[models.Community], error) {
	var zero pagination.Page[models.Community]

	communities, err := s.communities.ListCommunities(ctx, name, cursor)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return zero, apperr.ErrCommunityNotFound
		}
		return zero, serverError("list communities", err)
	}
	return pagination.NewPage(communities, func(c models.Community) int { return c.ID }), nil
}

func (s *CommunityService) Join(ctx context.Context, userID int, name string) error {
	community, err := s.GetByName(ctx, name)
	if err != nil {
		return err
	}

	member := models.CommunityMember{
		UserID:      userID,
		CommunityID: community.ID,
		Role:        models.CommunityRoleMember,
	}
	if err := s.communities.AddMember(ctx, &member); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return apperr.ErrUserAlreadyInCommunity
		}
		return serverError("join community", err)
	}
	return nil
}

// Delete removes a community and soft-deletes every post in it. Gated by
// the moderation policy; the not-found check runs before the permission
// check so a missing community never reports Forbidden.
func (s *CommunityService) Delete(ctx context.Context, name string, actorID int, actorRole string) error {
	community, err := s.GetByName(ctx, name)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, community, actorID, actorRole); err != nil {
		return err
	}

	if err := s.posts.SoftDeletePostsByCommunity(ctx, community.ID); err != nil {
		return serverError("delete community", err)
	}
	if err := s.communities.DeleteCommunity(ctx, community.ID); err != nil {
		return serverError("delete community", err)
	}
	return nil
}

func (s *CommunityService) UpdateLogo(ctx context.Context, name string, actorID int, actorRole, url string) error {
	return s.updateMedia(ctx, name, actorID, actorRole, url, s.communities.UpdateCommunityLogo)
}

func (s *CommunityService) UpdateBanner(ctx context.Context, name string, actorID int, actorRole, url string) error {
	return s.updateMedia(ctx, name, actorID, actorRole, url, s.communities.UpdateCommunityBanner)
}

func (s *CommunityService) updateMedia(ctx context.Context, name string, actorID int, actorRole, url string, update func(context.Context, int, string) error) error {
	if strings.TrimSpace(url) == "" {
		return apperr.ErrUnexpectedBody
	}

	community, err := s.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, community, actorID, actorRole); err != nil {
		return err
	}

	if err := update(ctx, community.ID, url); err != nil {
		return serverError("update community media", err)
	}
	return nil
}

func (s *CommunityService) authorize(ctx context.Context, community models.Community, actorID int, actorRole string) error {
	communityRole, err := s.communities.Role(ctx, actorID, community.ID)
	if err != nil {
		return serverError("community role lookup", err)
	}
	if !policy.CanModerate(actorID, actorRole, community.OwnerID, communityRole) {
		return apperr.ErrInsufficientPermissions
	}
	return nil
}
