package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breddit-app/backend/internal/apperr"
	"github.com/breddit-app/backend/internal/models"
	"github.com/breddit-app/backend/internal/pagination"
	"github.com/breddit-app/backend/internal/store/memstore"
	"github.com/breddit-app/backend/internal/voting"
)

func newPostEnv(t *testing.T) (*memstore.Store, *PostService, models.Community) {
	t.Helper()
	ctx := context.Background()
	st := memstore.New()
	community := models.Community{Name: "golang", Description: "gophers", OwnerID: 1}
	require.NoError(t, st.CreateCommunity(ctx, &community))
	return st, NewPostService(st, st, st), community
}

func TestCreatePostValidation(t *testing.T) {
	ctx := context.Background()
	_, svc, community := newPostEnv(t)

	_, err := svc.Create(ctx, models.CreatePostRequest{
		Title: "  ", Type: models.PostTypeText, CommunityName: community.Name,
	}, 1)
	assert.ErrorIs(t, err, apperr.ErrUnexpectedBody)

	_, err = svc.Create(ctx, models.CreatePostRequest{
		Title: "hi", Type: models.PostTypeText, CommunityName: "nowhere",
	}, 1)
	assert.ErrorIs(t, err, apperr.ErrCommunityNotFound)

	_, err = svc.Create(ctx, models.CreatePostRequest{
		Title: "hi", Type: "POLL", CommunityName: community.Name,
	}, 1)
	assert.ErrorIs(t, err, apperr.ErrUnexpectedBody)

	_, err = svc.Create(ctx, models.CreatePostRequest{
		Title: "hi", Type: models.PostTypeMedia, CommunityName: community.Name,
	}, 1)
	assert.ErrorIs(t, err, apperr.ErrMissingMedia)
}

func TestCreateMediaPostDropsTextContent(t *testing.T) {
	ctx := context.Background()
	_, svc, community := newPostEnv(t)

	post, err := svc.Create(ctx, models.CreatePostRequest{
		Title:         "pics",
		Content:       "should be discarded",
		Type:          models.PostTypeMedia,
		CommunityName: community.Name,
		MediaURLs:     []string{"https://cdn.example.com/a.jpg"},
	}, 1)
	require.NoError(t, err)
	assert.Empty(t, post.Content)
	assert.Len(t, post.MediaURLs, 1)
}

func TestListPostsPaginationIsStableAndDisjoint(t *testing.T) {
	ctx := context.Background()
	_, svc, community := newPostEnv(t)

	const total = 25
	ids := make([]int, total)
	for i := 0; i < total; i++ {
		p, err := svc.Create(ctx, models.CreatePostRequest{
			Title: "post", Type: models.PostTypeText, CommunityName: community.Name,
		}, 1)
		require.NoError(t, err)
		ids[i] = p.ID
	}

	page1, err := svc.List(ctx, PostQuery{CommunityID: community.ID})
	require.NoError(t, err)
	require.Len(t, page1.Items, pagination.PageSize)
	require.NotNil(t, page1.NextCursor)

	page2, err := svc.List(ctx, PostQuery{CommunityID: community.ID, Cursor: *page1.NextCursor})
	require.NoError(t, err)
	require.Len(t, page2.Items, pagination.PageSize)

	var got []int
	for _, v := range page1.Items {
		got = append(got, v.ID)
	}
	for _, v := range page2.Items {
		got = append(got, v.ID)
	}
	var want []int
	for i := total - 1; i >= total-20; i-- {
		want = append(want, ids[i])
	}
	assert.Equal(t, want, got)
}

func TestListPostsAnnotatesRequesterVote(t *testing.T) {
	ctx := context.Background()
	st, svc, community := newPostEnv(t)
	votes := NewVoteService(st)

	voted, err := svc.Create(ctx, models.CreatePostRequest{
		Title: "voted", Type: models.PostTypeText, CommunityName: community.Name,
	}, 1)
	require.NoError(t, err)
	unvoted, err := svc.Create(ctx, models.CreatePostRequest{
		Title: "unvoted", Type: models.PostTypeText, CommunityName: community.Name,
	}, 1)
	require.NoError(t, err)

	require.NoError(t, votes.CastPostVote(ctx, 42, voted.ID, "UPVOTE"))

	page, err := svc.List(ctx, PostQuery{CommunityID: community.ID, RequesterID: 42})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	byID := map[int]PostView{}
	for _, v := range page.Items {
		byID[v.ID] = v
	}
	assert.Equal(t, voting.StateUpvote, byID[voted.ID].VoteState)
	assert.Equal(t, voting.StateNone, byID[unvoted.ID].VoteState)
	assert.Equal(t, 1, byID[voted.ID].Score)
}

func TestEditContent(t *testing.T) {
	ctx := context.Background()
	st, svc, community := newPostEnv(t)

	text, err := svc.Create(ctx, models.CreatePostRequest{
		Title: "t", Content: "before", Type: models.PostTypeText, CommunityName: community.Name,
	}, 1)
	require.NoError(t, err)
	media, err := svc.Create(ctx, models.CreatePostRequest{
		Title: "m", Type: models.PostTypeMedia, CommunityName: community.Name,
		MediaURLs: []string{"https://cdn.example.com/a.jpg"},
	}, 1)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.EditContent(ctx, 999, 1, "x"), apperr.ErrPostNotFound)
	assert.ErrorIs(t, svc.EditContent(ctx, text.ID, 1, "  "), apperr.ErrUnexpectedBody)
	assert.ErrorIs(t, svc.EditContent(ctx, media.ID, 1, "x"), apperr.ErrMediaPostEditingUnsupported)
	assert.ErrorIs(t, svc.EditContent(ctx, text.ID, 2, "x"), apperr.ErrInsufficientPermissions)

	require.NoError(t, svc.EditContent(ctx, text.ID, 1, "after"))
	p, err := st.GetPost(ctx, text.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", p.Content)
}

func TestDeletePostPolicy(t *testing.T) {
	ctx := context.Background()
	st, svc, community := newPostEnv(t)

	require.NoError(t, st.AddMember(ctx, &models.CommunityMember{
		UserID: 5, CommunityID: community.ID, Role: models.CommunityRoleModerator,
	}))

	newPost := func() models.Post {
		p, err := svc.Create(ctx, models.CreatePostRequest{
			Title: "victim", Type: models.PostTypeText, CommunityName: community.Name,
		}, 1)
		require.NoError(t, err)
		return p
	}

	assert.ErrorIs(t, svc.Delete(ctx, 999, 1, models.RoleUser), apperr.ErrPostNotFound)

	p := newPost()
	assert.ErrorIs(t, svc.Delete(ctx, p.ID, 99, models.RoleUser), apperr.ErrInsufficientPermissions)
	require.NoError(t, svc.Delete(ctx, p.ID, 1, models.RoleUser)) // author

	require.NoError(t, svc.Delete(ctx, newPost().ID, 99, models.RoleAdmin))     // platform admin
	require.NoError(t, svc.Delete(ctx, newPost().ID, 5, models.RoleUser))       // scoped moderator
	assert.ErrorIs(t, svc.Delete(ctx, p.ID, 1, models.RoleUser), apperr.ErrPostNotFound) // already gone

	page, err := svc.List(ctx, PostQuery{CommunityID: community.ID})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}
