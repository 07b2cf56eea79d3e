// Package memstore is an in-memory implementation of the store interfaces,
// used as the test double for service-level tests. It mirrors the ordering,
// cursor and atomic-vote semantics of the Postgres implementation.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/breddit-app/backend/internal/models"
	"github.com/breddit-app/backend/internal/pagination"
	"github.com/breddit-app/backend/internal/store"
	"github.com/breddit-app/backend/internal/voting"
)

var (
	_ store.PostStore      = (*Store)(nil)
	_ store.CommentStore   = (*Store)(nil)
	_ store.VoteStore      = (*Store)(nil)
	_ store.CommunityStore = (*Store)(nil)
)

type voteKey struct {
	userID    int
	contentID int
}

type Store struct {
	mu sync.Mutex

	nextPostID      int
	nextCommentID   int
	nextCommunityID int
	nextMemberID    int

	posts        map[int]models.Post
	comments     map[int]models.Comment
	communities  map[int]models.Community
	members      map[int]models.CommunityMember
	postVotes    map[voteKey]voting.State
	commentVotes map[voteKey]voting.State

	clock time.Time
}

func New() *Store {
	return &Store{
		nextPostID:      1,
		nextCommentID:   1,
		nextCommunityID: 1,
		nextMemberID:    1,
		posts:           make(map[int]models.Post),
		comments:        make(map[int]models.Comment),
		communities:     make(map[int]models.Community),
		members:         make(map[int]models.CommunityMember),
		postVotes:       make(map[voteKey]voting.State),
		commentVotes:    make(map[voteKey]voting.State),
		clock:           time.Now().UTC(),
	}
}

// tick hands out strictly increasing timestamps so creation order is a
// total order even within one wall-clock instant.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

// PutComment inserts a comment row verbatim, without touching ids or
// timestamps. Tests use it to build corrupted parent chains.
func (s *Store) PutComment(c models.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID >= s.nextCommentID {
		s.nextCommentID = c.ID + 1
	}
	s.comments[c.ID] = c
}

// --- posts ---

func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = s.nextPostID
	s.nextPostID++
	if post.CreatedAt.IsZero() {
		post.CreatedAt = s.tick()
	}
	post.UpdatedAt = post.CreatedAt
	s.posts[post.ID] = *post
	return nil
}

func (s *Store) GetPost(ctx context.Context, id int) (models.Post, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok || p.Deleted {
		return models.Post{}, store.ErrNotFound
	}
	return p, nil
}

func (s *Store) ListPosts(ctx context.Context, f store.PostFilter) ([]models.Post, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []models.Post
	for _, p := range s.posts {
		if p.Deleted {
			continue
		}
		if f.PostID != 0 && p.ID != f.PostID {
			continue
		}
		if f.AuthorID != 0 && p.AuthorID != f.AuthorID {
			continue
		}
		if f.CommunityID != 0 && p.CommunityID != f.CommunityID {
			continue
		}
		all = append(all, p)
	}
	sortNewestFirst(all, func(p models.Post) (time.Time, int) { return p.CreatedAt, p.ID })

	page, err := afterCursor(all, f.Cursor, func(p models.Post) int { return p.ID })
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (s *Store) UpdatePostContent(ctx context.Context, id int, content string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok || p.Deleted {
		return store.ErrNotFound
	}
	p.Content = content
	p.UpdatedAt = s.tick()
	s.posts[id] = p
	return nil
}

func (s *Store) SoftDeletePost(ctx context.Context, id int) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok || p.Deleted {
		return store.ErrNotFound
	}
	p.Deleted = true
	p.UpdatedAt = s.tick()
	s.posts[id] = p
	return nil
}

func (s *Store) SoftDeletePostsByCommunity(ctx context.Context, communityID int) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, p := range s.posts {
		if p.CommunityID == communityID && !p.Deleted {
			p.Deleted = true
			p.UpdatedAt = s.clock
			s.posts[id] = p
		}
	}
	return nil
}

// --- comments ---

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	comment.ID = s.nextCommentID
	s.nextCommentID++
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = s.tick()
	}
	comment.UpdatedAt = comment.CreatedAt
	s.comments[comment.ID] = *comment
	return nil
}

func (s *Store) GetComment(ctx context.Context, id int) (models.Comment, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok || c.Deleted {
		return models.Comment{}, store.ErrNotFound
	}
	return c, nil
}

func (s *Store) ListRootComments(ctx context.Context, f store.CommentFilter) ([]models.Comment, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []models.Comment
	for _, c := range s.comments {
		if c.Deleted || c.ParentID != nil {
			continue
		}
		if f.PostID != 0 && (c.PostID == nil || *c.PostID != f.PostID) {
			continue
		}
		if f.AuthorID != 0 && c.AuthorID != f.AuthorID {
			continue
		}
		all = append(all, c)
	}
	sortNewestFirst(all, func(c models.Comment) (time.Time, int) { return c.CreatedAt, c.ID })

	page, err := afterCursor(all, f.Cursor, func(c models.Comment) int { return c.ID })
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (s *Store) ListChildComments(ctx context.Context, parentIDs []int) ([]models.Comment, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[int]bool, len(parentIDs))
	for _, id := range parentIDs {
		wanted[id] = true
	}

	var children []models.Comment
	for _, c := range s.comments {
		if c.Deleted || c.ParentID == nil || !wanted[*c.ParentID] {
			continue
		}
		children = append(children, c)
	}
	sort.Slice(children, func(i, j int) bool {
		if !children[i].CreatedAt.Equal(children[j].CreatedAt) {
			return children[i].CreatedAt.Before(children[j].CreatedAt)
		}
		return children[i].ID < children[j].ID
	})
	return children, nil
}

// --- votes ---

func (s *Store) ApplyPostVote(ctx context.Context, voterID, postID int, apply store.VoteApply) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok || post.Deleted {
		return store.ErrNotFound
	}

	key := voteKey{userID: voterID, contentID: postID}
	next, delta, err := apply(s.postVotes[key])
	if err != nil {
		return err
	}

	if next == voting.StateNone {
		delete(s.postVotes, key)
	} else {
		s.postVotes[key] = next
	}
	post.Score += delta
	s.posts[postID] = post
	return nil
}

func (s *Store) PostVoteStates(ctx context.Context, voterID int, postIDs []int) (map[int]voting.State, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	states := make(map[int]voting.State, len(postIDs))
	for _, id := range postIDs {
		if st, ok := s.postVotes[voteKey{userID: voterID, contentID: id}]; ok {
			states[id] = st
		}
	}
	return states, nil
}

func (s *Store) ApplyCommentVote(ctx context.Context, voterID, commentID int, apply store.VoteApply) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[commentID]
	if !ok || c.Deleted {
		return store.ErrNotFound
	}

	key := voteKey{userID: voterID, contentID: commentID}
	next, _, err := apply(s.commentVotes[key])
	if err != nil {
		return err
	}

	if next == voting.StateNone {
		delete(s.commentVotes, key)
	} else {
		s.commentVotes[key] = next
	}
	return nil
}

func (s *Store) CommentVoteStates(ctx context.Context, voterID int, commentIDs []int) (map[int]voting.State, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	states := make(map[int]voting.State, len(commentIDs))
	for _, id := range commentIDs {
		if st, ok := s.commentVotes[voteKey{userID: voterID, contentID: id}]; ok {
			states[id] = st
		}
	}
	return states, nil
}

// --- communities ---

func (s *Store) CreateCommunity(ctx context.Context, community *models.Community) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.communities {
		if c.Name == community.Name {
			return store.ErrDuplicate
		}
	}
	community.ID = s.nextCommunityID
	s.nextCommunityID++
	if community.CreatedAt.IsZero() {
		community.CreatedAt = s.tick()
	}
	community.UpdatedAt = community.CreatedAt
	s.communities[community.ID] = *community
	return nil
}

func (s *Store) GetCommunityByName(ctx context.Context, name string) (models.Community, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.communities {
		if c.Name == name {
			return c, nil
		}
	}
	return models.Community{}, store.ErrNotFound
}

func (s *Store) ListCommunities(ctx context.Context, name string, cursor int) ([]models.Community, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []models.Community
	for _, c := range s.communities {
		if name != "" && !strings.Contains(c.Name, name) {
			continue
		}
		all = append(all, c)
	}
	sortNewestFirst(all, func(c models.Community) (time.Time, int) { return c.CreatedAt, c.ID })

	return afterCursor(all, cursor, func(c models.Community) int { return c.ID })
}

func (s *Store) DeleteCommunity(ctx context.Context, id int) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.communities[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.communities, id)
	return nil
}

func (s *Store) AddMember(ctx context.Context, member *models.CommunityMember) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.members {
		if m.UserID == member.UserID && m.CommunityID == member.CommunityID {
			return store.ErrDuplicate
		}
	}
	member.ID = s.nextMemberID
	s.nextMemberID++
	if member.CreatedAt.IsZero() {
		member.CreatedAt = s.tick()
	}
	s.members[member.ID] = *member
	return nil
}

func (s *Store) Role(ctx context.Context, userID, communityID int) (string, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.members {
		if m.UserID == userID && m.CommunityID == communityID {
			return m.Role, nil
		}
	}
	return "", nil
}

func (s *Store) UpdateCommunityLogo(ctx context.Context, id int, url string) error {
	return s.updateCommunity(id, func(c *models.Community) { c.LogoURL = url })
}

func (s *Store) UpdateCommunityBanner(ctx context.Context, id int, url string) error {
	return s.updateCommunity(id, func(c *models.Community) { c.BannerURL = url })
}

func (s *Store) updateCommunity(id int, mutate func(*models.Community)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.communities[id]
	if !ok {
		return store.ErrNotFound
	}
	mutate(&c)
	c.UpdatedAt = s.tick()
	s.communities[id] = c
	return nil
}

// --- ordering helpers ---

func sortNewestFirst[T any](items []T, keyOf func(T) (time.Time, int)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := keyOf(items[i])
		tj, idj := keyOf(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return idi > idj
	})
}

// afterCursor slices an ordered result to the page that starts strictly
// after the cursor item, exclusive of the cursor itself.
func afterCursor[T any](ordered []T, cursor int, idOf func(T) int) ([]T, error) {
	start := 0
	if cursor != 0 {
		found := false
		for i, item := range ordered {
			if idOf(item) == cursor {
				start = i + 1
				found = true
				break
			}
		}
		if !found {
			return nil, store.ErrNotFound
		}
	}
	end := start + pagination.PageSize
	if end > len(ordered) {
		end = len(ordered)
	}
	return ordered[start:end], nil
}
