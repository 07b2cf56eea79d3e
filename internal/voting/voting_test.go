package voting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastDeltas(t *testing.T) {
	tests := []struct {
		name    string
		current State
		next    State
		delta   int
	}{
		{"fresh upvote", StateNone, StateUpvote, 1},
		{"fresh downvote", StateNone, StateDownvote, -1},
		{"switch up to down", StateUpvote, StateDownvote, -2},
		{"switch down to up", StateDownvote, StateUpvote, 2},
		{"recast upvote", StateUpvote, StateUpvote, 0},
		{"recast downvote", StateDownvote, StateDownvote, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta, err := Cast(tt.current, tt.next)
			require.NoError(t, err)
			assert.Equal(t, tt.delta, delta)
		})
	}
}

func TestCastRejectsUnknownState(t *testing.T) {
	_, err := Cast(StateNone, StateNone)
	assert.ErrorIs(t, err, ErrUnknownState)

	_, err = Cast(StateUpvote, State("SIDEWAYS"))
	assert.ErrorIs(t, err, ErrUnknownState)
}

func TestRemoveDeltas(t *testing.T) {
	delta, err := Remove(StateUpvote)
	require.NoError(t, err)
	assert.Equal(t, -1, delta)

	delta, err = Remove(StateDownvote)
	require.NoError(t, err)
	assert.Equal(t, 1, delta)
}

func TestRemoveWithoutVote(t *testing.T) {
	_, err := Remove(StateNone)
	assert.ErrorIs(t, err, ErrNoVote)
}

func TestParse(t *testing.T) {
	s, err := Parse("UPVOTE")
	require.NoError(t, err)
	assert.Equal(t, StateUpvote, s)

	s, err = Parse("DOWNVOTE")
	require.NoError(t, err)
	assert.Equal(t, StateDownvote, s)

	_, err = Parse("")
	assert.ErrorIs(t, err, ErrUnknownState)

	_, err = Parse("upvote")
	assert.ErrorIs(t, err, ErrUnknownState)
}

// Cast then Remove must net to zero against the pre-vote baseline, and
// up -> down -> remove must net to -1.
func TestNetMovement(t *testing.T) {
	up, err := Cast(StateNone, StateUpvote)
	require.NoError(t, err)
	undo, err := Remove(StateUpvote)
	require.NoError(t, err)
	assert.Equal(t, 0, up+undo)

	swing, err := Cast(StateUpvote, StateDownvote)
	require.NoError(t, err)
	clear, err := Remove(StateDownvote)
	require.NoError(t, err)
	assert.Equal(t, -1, up+swing+clear)
}
