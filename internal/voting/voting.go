// Package voting holds the vote state machine shared by posts and comments.
// A vote per (user, content) pair is in one of three states; transitions
// return the score delta to apply to the content item in the same atomic
// unit as the ledger write.
package voting

import "errors"

// State is the current vote of one user on one content item. The zero value
// means no ledger row exists.
type State string

const (
	StateNone     State = ""
	StateUpvote   State = "UPVOTE"
	StateDownvote State = "DOWNVOTE"
)

var (
	// ErrUnknownState is returned for any state other than UPVOTE/DOWNVOTE.
	ErrUnknownState = errors.New("vote state must be UPVOTE or DOWNVOTE")
	// ErrNoVote is returned when removing a vote that does not exist.
	ErrNoVote = errors.New("no vote to remove")
)

// Parse validates a wire-level vote state.
func Parse(s string) (State, error) {
	switch State(s) {
	case StateUpvote, StateDownvote:
		return State(s), nil
	default:
		return StateNone, ErrUnknownState
	}
}

// Cast returns the score delta for casting next over current.
//
// Re-casting the same state is a no-op (delta 0). Switching sides moves the
// score by 2: one point undoing the old vote plus one for the new. A fresh
// vote moves it by 1. These are net-movement deltas; do not collapse them
// into a uniform ±1.
func Cast(current, next State) (int, error) {
	if next != StateUpvote && next != StateDownvote {
		return 0, ErrUnknownState
	}

	switch {
	case current == next:
		return 0, nil
	case current == StateUpvote && next == StateDownvote:
		return -2, nil
	case current == StateDownvote && next == StateUpvote:
		return 2, nil
	case next == StateUpvote:
		return 1, nil
	default:
		return -1, nil
	}
}

// Remove returns the score delta for clearing current back to StateNone.
func Remove(current State) (int, error) {
	switch current {
	case StateUpvote:
		return -1, nil
	case StateDownvote:
		return 1, nil
	default:
		return 0, ErrNoVote
	}
}
