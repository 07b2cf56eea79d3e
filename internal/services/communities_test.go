package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breddit-app/backend/internal/apperr"
	"github.com/breddit-app/backend/internal/models"
	"github.com/breddit-app/backend/internal/store"
	"github.com/breddit-app/backend/internal/store/memstore"
)

func newCommunityEnv(t *testing.T) (*memstore.Store, *CommunityService) {
	t.Helper()
	st := memstore.New()
	return st, NewCommunityService(st, st)
}

func TestCreateCommunity(t *testing.T) {
	ctx := context.Background()
	st, svc := newCommunityEnv(t)

	community, err := svc.Create(ctx, "golang", "gophers", 1)
	require.NoError(t, err)
	assert.NotZero(t, community.ID)

	// The creator starts as a moderator of their own community.
	role, err := st.Role(ctx, 1, community.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CommunityRoleModerator, role)

	_, err = svc.Create(ctx, "golang", "imposters", 2)
	assert.ErrorIs(t, err, apperr.ErrCommunityNameTaken)

	_, err = svc.Create(ctx, "   ", "", 1)
	assert.ErrorIs(t, err, apperr.ErrUnexpectedBody)
}

func TestJoinCommunity(t *testing.T) {
	ctx := context.Background()
	_, svc := newCommunityEnv(t)

	_, err := svc.Create(ctx, "golang", "", 1)
	require.NoError(t, err)

	require.NoError(t, svc.Join(ctx, 2, "golang"))
	assert.ErrorIs(t, svc.Join(ctx, 2, "golang"), apperr.ErrUserAlreadyInCommunity)
	assert.ErrorIs(t, svc.Join(ctx, 2, "rustlang"), apperr.ErrCommunityNotFound)
}

func TestDeleteCommunityPolicy(t *testing.T) {
	ctx := context.Background()
	st, svc := newCommunityEnv(t)
	posts := NewPostService(st, st, st)

	community, err := svc.Create(ctx, "doomed", "", 1)
	require.NoError(t, err)
	post, err := posts.Create(ctx, models.CreatePostRequest{
		Title: "inside", Type: models.PostTypeText, CommunityName: "doomed",
	}, 2)
	require.NoError(t, err)

	// Not-found is reported before any permission check.
	assert.ErrorIs(t, svc.Delete(ctx, "missing", 99, models.RoleUser), apperr.ErrCommunityNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "doomed", 99, models.RoleUser), apperr.ErrInsufficientPermissions)

	require.NoError(t, svc.Delete(ctx, "doomed", 1, models.RoleUser)) // owner

	// Deleting the community cascades a soft delete over its posts.
	_, err = st.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.GetCommunityByName(ctx, community.Name)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteCommunityByAdminAndModerator(t *testing.T) {
	ctx := context.Background()
	st, svc := newCommunityEnv(t)

	_, err := svc.Create(ctx, "a", "", 1)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "a", 99, models.RoleAdmin))

	community, err := svc.Create(ctx, "b", "", 1)
	require.NoError(t, err)
	require.NoError(t, st.AddMember(ctx, &models.CommunityMember{
		UserID: 5, CommunityID: community.ID, Role: models.CommunityRoleModerator,
	}))
	require.NoError(t, svc.Delete(ctx, "b", 5, models.RoleUser))
}

func TestUpdateCommunityMedia(t *testing.T) {
	ctx := context.Background()
	st, svc := newCommunityEnv(t)

	_, err := svc.Create(ctx, "golang", "", 1)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.UpdateLogo(ctx, "golang", 1, models.RoleUser, " "), apperr.ErrUnexpectedBody)
	assert.ErrorIs(t, svc.UpdateLogo(ctx, "missing", 1, models.RoleUser, "https://cdn/x.png"), apperr.ErrCommunityNotFound)
	assert.ErrorIs(t, svc.UpdateLogo(ctx, "golang", 99, models.RoleUser, "https://cdn/x.png"), apperr.ErrInsufficientPermissions)

	require.NoError(t, svc.UpdateLogo(ctx, "golang", 1, models.RoleUser, "https://cdn/logo.png"))
	require.NoError(t, svc.UpdateBanner(ctx, "golang", 1, models.RoleUser, "https://cdn/banner.png"))

	community, err := st.GetCommunityByName(ctx, "golang")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/logo.png", community.LogoURL)
	assert.Equal(t, "https://cdn/banner.png", community.BannerURL)
}
