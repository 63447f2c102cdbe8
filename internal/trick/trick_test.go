package trick

import (
	"testing"

	"github.com/pidro-game/engine/internal/card"
	"github.com/pidro-game/engine/internal/seat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWinnerEmptyTrick(t *testing.T) {
	tr := New(seat.North)
	_, err := tr.Winner(card.Hearts)
	require.ErrorIs(t, err, ErrIncompleteTrick)
}

func TestWinnerHighestTrump(t *testing.T) {
	tr := New(seat.North)
	tr = tr.AddPlay(seat.North, card.MustNew(card.Ace, card.Hearts))
	tr = tr.AddPlay(seat.East, card.MustNew(card.Jack, card.Hearts))
	tr = tr.AddPlay(seat.South, card.MustNew(card.Ten, card.Hearts))
	tr = tr.AddPlay(seat.West, card.MustNew(card.Two, card.Hearts))

	winner, err := tr.Winner(card.Hearts)
	require.NoError(t, err)
	assert.Equal(t, seat.North, winner)
	assert.True(t, tr.Complete())
}

func TestTwoOfTrumpRule(t *testing.T) {
	// Spec §8.4 scenario 3.
	tr := New(seat.North)
	tr = tr.AddPlay(seat.North, card.MustNew(card.Ace, card.Hearts))
	tr = tr.AddPlay(seat.East, card.MustNew(card.Jack, card.Hearts))
	tr = tr.AddPlay(seat.South, card.MustNew(card.Ten, card.Hearts))
	tr = tr.AddPlay(seat.West, card.MustNew(card.Two, card.Hearts))

	assert.Equal(t, 3, tr.Points(card.Hearts))

	twoPlayer, ok := tr.TwoOfTrumpPlayer(card.Hearts)
	require.True(t, ok)
	assert.Equal(t, seat.West, twoPlayer)
}

func TestPointsWithoutTwoOfTrump(t *testing.T) {
	tr := New(seat.North)
	tr = tr.AddPlay(seat.North, card.MustNew(card.Ace, card.Hearts))
	tr = tr.AddPlay(seat.East, card.MustNew(card.King, card.Hearts))
	tr = tr.AddPlay(seat.South, card.MustNew(card.Queen, card.Hearts))
	tr = tr.AddPlay(seat.West, card.MustNew(card.Jack, card.Hearts))

	assert.Equal(t, 2, tr.Points(card.Hearts)) // A + J, no 2 played
	_, ok := tr.TwoOfTrumpPlayer(card.Hearts)
	assert.False(t, ok)
}

func TestNonTrumpTieBrokenByLeader(t *testing.T) {
	tr := New(seat.East)
	tr = tr.AddPlay(seat.East, card.MustNew(card.King, card.Clubs))
	tr = tr.AddPlay(seat.South, card.MustNew(card.Queen, card.Spades))
	tr = tr.AddPlay(seat.West, card.MustNew(card.Jack, card.Diamonds))
	tr = tr.AddPlay(seat.North, card.MustNew(card.Nine, card.Clubs))

	winner, err := tr.Winner(card.Hearts)
	require.NoError(t, err)
	assert.Equal(t, seat.East, winner, "no trump played; leader wins among non-trump cards")
}

func TestAddPlayDoesNotMutateOriginal(t *testing.T) {
	tr := New(seat.North)
	tr2 := tr.AddPlay(seat.North, card.MustNew(card.Ace, card.Hearts))
	assert.Equal(t, 0, len(tr.Plays))
	assert.Equal(t, 1, len(tr2.Plays))
}
