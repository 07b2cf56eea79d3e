package services

import (
	"context"
	"errors"

	"github.com/breddit-app/backend/internal/apperr"
	"github.com/breddit-app/backend/internal/store"
	"github.com/breddit-app/backend/internal/voting"
)

// VoteService is the score aggregator: every vote request flows through it,
// and it is the only component allowed to mutate the ledger or a post's
// score. The transition itself is computed by the store inside the atomic
// unit, via the callbacks below, so it always sees the committed state.
type VoteService struct {
	votes store.VoteStore
}

func NewVoteService(votes store.VoteStore) *VoteService {
	return &VoteService{votes: votes}
}

func (s *VoteService) CastPostVote(ctx context.Context, voterID, postID int, state string) error {
	next, err := voting.Parse(state)
	if err != nil {
		return apperr.ErrUnknownVoteState
	}
	err = s.votes.ApplyPostVote(ctx, voterID, postID, castTransition(next))
	return s.mapErr("cast post vote", err, apperr.ErrPostNotFound)
}

func (s *VoteService) RemovePostVote(ctx context.Context, voterID, postID int) error {
	err := s.votes.ApplyPostVote(ctx, voterID, postID, removeTransition)
	return s.mapErr("remove post vote", err, apperr.ErrPostNotFound)
}

func (s *VoteService) CastCommentVote(ctx context.Context, voterID, commentID int, state string) error {
	next, err := voting.Parse(state)
	if err != nil {
		return apperr.ErrUnknownVoteState
	}
	err = s.votes.ApplyCommentVote(ctx, voterID, commentID, castTransition(next))
	return s.mapErr("cast comment vote", err, apperr.ErrCommentNotFound)
}

func (s *VoteService) RemoveCommentVote(ctx context.Context, voterID, commentID int) error {
	err := s.votes.ApplyCommentVote(ctx, voterID, commentID, removeTransition)
	return s.mapErr("remove comment vote", err, apperr.ErrCommentNotFound)
}

func castTransition(next voting.State) store.VoteApply {
	return func(current voting.State) (voting.State, int, error) {
		delta, err := voting.Cast(current, next)
		if err != nil {
			return voting.StateNone, 0, err
		}
		return next, delta, nil
	}
}

func removeTransition(current voting.State) (voting.State, int, error) {
	delta, err := voting.Remove(current)
	if err != nil {
		return voting.StateNone, 0, err
	}
	return voting.StateNone, delta, nil
}

func (s *VoteService) mapErr(op string, err error, notFound *apperr.Error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return notFound
	case errors.Is(err, voting.ErrNoVote):
		return apperr.ErrNoVoteToRemove
	case errors.Is(err, voting.ErrUnknownState):
		return apperr.ErrUnknownVoteState
	default:
		return serverError(op, err)
	}
}
