package gormstore

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/breddit-app/backend/internal/models"
	"github.com/breddit-app/backend/internal/pagination"
	"github.com/breddit-app/backend/internal/store"
	"github.com/breddit-app/backend/internal/voting"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	flag.Parse()

	// Skip container setup if running in short mode
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start postgres container: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to terminate postgres container: %v\n", err)
		}
	}()

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get connection string: %v\n", err)
		os.Exit(1)
	}

	testDB, err = gorm.Open(gormpostgres.Open(connStr), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to test database: %v\n", err)
		os.Exit(1)
	}

	err = testDB.AutoMigrate(
		&models.User{},
		&models.Community{},
		&models.CommunityMember{},
		&models.Post{},
		&models.Comment{},
		&models.PostVote{},
		&models.CommentVote{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to migrate test database: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// setupStore returns a store against the shared container and registers
// cleanup to truncate everything it may have touched.
func setupStore(t *testing.T) *Store {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	t.Cleanup(func() {
		err := testDB.Exec("TRUNCATE users, communities, community_members, posts, comments, post_votes, comment_votes RESTART IDENTITY CASCADE").Error
		if err != nil {
			t.Logf("Failed to truncate tables: %v", err)
		}
	})

	return New(testDB)
}

func seedUser(t *testing.T, name string) models.User {
	t.Helper()
	user := models.User{Username: name, Email: name + "@example.com", Password: "x", Role: models.RoleUser}
	require.NoError(t, testDB.Create(&user).Error)
	return user
}

func seedPost(t *testing.T, s *Store, authorID, communityID int) models.Post {
	t.Helper()
	post := models.Post{Title: "t", Type: models.PostTypeText, AuthorID: authorID, CommunityID: communityID}
	require.NoError(t, s.CreatePost(context.Background(), &post))
	return post
}

func castVote(next voting.State) store.VoteApply {
	return func(current voting.State) (voting.State, int, error) {
		delta, err := voting.Cast(current, next)
		if err != nil {
			return voting.StateNone, 0, err
		}
		return next, delta, nil
	}
}

func removeVote(current voting.State) (voting.State, int, error) {
	delta, err := voting.Remove(current)
	if err != nil {
		return voting.StateNone, 0, err
	}
	return voting.StateNone, delta, nil
}

func postScore(t *testing.T, postID int) int {
	t.Helper()
	var post models.Post
	require.NoError(t, testDB.First(&post, postID).Error)
	return post.Score
}

func TestApplyPostVoteTransitions(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	alice := seedUser(t, "alice")
	bob := seedUser(t, "bob")
	post := seedPost(t, s, alice.ID, 1)

	require.NoError(t, s.ApplyPostVote(ctx, alice.ID, post.ID, castVote(voting.StateUpvote)))
	assert.Equal(t, 1, postScore(t, post.ID))

	// Re-casting the same state is a no-op.
	require.NoError(t, s.ApplyPostVote(ctx, alice.ID, post.ID, castVote(voting.StateUpvote)))
	assert.Equal(t, 1, postScore(t, post.ID))

	// Switching direction moves the score by two.
	require.NoError(t, s.ApplyPostVote(ctx, alice.ID, post.ID, castVote(voting.StateDownvote)))
	assert.Equal(t, -1, postScore(t, post.ID))

	require.NoError(t, s.ApplyPostVote(ctx, bob.ID, post.ID, castVote(voting.StateUpvote)))
	assert.Equal(t, 0, postScore(t, post.ID))

	require.NoError(t, s.ApplyPostVote(ctx, alice.ID, post.ID, removeVote))
	assert.Equal(t, 1, postScore(t, post.ID))

	// The ledger row is gone, so removing again surfaces the transition error.
	err := s.ApplyPostVote(ctx, alice.ID, post.ID, removeVote)
	assert.ErrorIs(t, err, voting.ErrNoVote)

	states, err := s.PostVoteStates(ctx, bob.ID, []int{post.ID})
	require.NoError(t, err)
	assert.Equal(t, voting.StateUpvote, states[post.ID])
}

func TestApplyPostVoteMissingPost(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	alice := seedUser(t, "alice")

	err := s.ApplyPostVote(ctx, alice.ID, 9999, castVote(voting.StateUpvote))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestApplyPostVoteConcurrentVoters(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	author := seedUser(t, "author")
	post := seedPost(t, s, author.ID, 1)

	const voters = 20
	users := make([]models.User, voters)
	for i := range users {
		users[i] = seedUser(t, fmt.Sprintf("voter%d", i))
	}

	var wg sync.WaitGroup
	errs := make(chan error, voters)
	for _, u := range users {
		wg.Add(1)
		go func(voterID int) {
			defer wg.Done()
			errs <- s.ApplyPostVote(ctx, voterID, post.ID, castVote(voting.StateUpvote))
		}(u.ID)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, voters, postScore(t, post.ID))
}

func TestListPostsKeysetPagination(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	author := seedUser(t, "author")

	const total = 25
	ids := make([]int, total)
	for i := 0; i < total; i++ {
		post := seedPost(t, s, author.ID, 1)
		// Spread created_at so ordering does not rely on identical timestamps.
		require.NoError(t, testDB.Model(&models.Post{}).Where("id = ?", post.ID).
			UpdateColumn("created_at", time.Now().UTC().Add(time.Duration(i)*time.Second)).Error)
		ids[i] = post.ID
	}

	var got []int
	cursor := 0
	for {
		posts, err := s.ListPosts(ctx, store.PostFilter{Cursor: cursor})
		require.NoError(t, err)
		for _, p := range posts {
			got = append(got, p.ID)
		}
		if len(posts) < pagination.PageSize {
			break
		}
		cursor = posts[len(posts)-1].ID
	}

	var want []int
	for i := total - 1; i >= 0; i-- {
		want = append(want, ids[i])
	}
	assert.Equal(t, want, got)
}

func TestCreateCommunityDuplicateName(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	owner := seedUser(t, "owner")

	first := models.Community{Name: "golang", OwnerID: owner.ID}
	require.NoError(t, s.CreateCommunity(ctx, &first))

	second := models.Community{Name: "golang", OwnerID: owner.ID}
	assert.ErrorIs(t, s.CreateCommunity(ctx, &second), store.ErrDuplicate)
}

func TestCommentTreeRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	author := seedUser(t, "author")
	post := seedPost(t, s, author.ID, 1)

	root := models.Comment{Content: "root", AuthorID: author.ID, PostID: &post.ID}
	require.NoError(t, s.CreateComment(ctx, &root))
	reply := models.Comment{Content: "reply", AuthorID: author.ID, ParentID: &root.ID}
	require.NoError(t, s.CreateComment(ctx, &reply))

	roots, err := s.ListRootComments(ctx, store.CommentFilter{PostID: post.ID})
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, root.ID, roots[0].ID)

	children, err := s.ListChildComments(ctx, []int{root.ID})
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, reply.ID, children[0].ID)
	require.NotNil(t, children[0].ParentID)
	assert.Equal(t, root.ID, *children[0].ParentID)
}
