package fingerprint

import (
	"testing"

	"github.com/pidro-game/engine/internal/card"
	"github.com/pidro-game/engine/internal/seat"
	"github.com/pidro-game/engine/internal/state"
	"github.com/pidro-game/engine/internal/trick"
	"github.com/stretchr/testify/assert"
)

func baseState() state.GameState {
	s := state.New(state.DefaultConfig())
	s = s.WithPhase(state.Playing)
	s = s.WithDealer(seat.North)
	s = s.WithTrump(card.Hearts)
	s = s.WithPlayer(s.Players[seat.North].WithHand([]card.Card{
		card.MustNew(card.Ace, card.Hearts),
		card.MustNew(card.Five, card.Diamonds),
	}))
	return s
}

func TestFingerprintDeterministic(t *testing.T) {
	s := baseState()
	assert.Equal(t, Fingerprint(s), Fingerprint(s))
	assert.Equal(t, FingerprintFor(s, seat.North), FingerprintFor(s, seat.North))
}

func TestFingerprintPermutationInvariantForHandOrder(t *testing.T) {
	a := baseState()
	b := a.WithPlayer(state.NewPlayer(seat.North).WithHand([]card.Card{
		card.MustNew(card.Five, card.Diamonds),
		card.MustNew(card.Ace, card.Hearts),
	}))

	assert.Equal(t, Fingerprint(a), Fingerprint(b), "dealing order within a hand must not affect the fingerprint")
}

func TestFingerprintDiffersOnMeaningfulChange(t *testing.T) {
	a := baseState()
	b := a.WithTrump(card.Clubs)
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprintForIsNarrowerThanFingerprint(t *testing.T) {
	a := baseState()
	b := a.AddScore(seat.NorthSouth, 50)

	assert.NotEqual(t, Fingerprint(a), Fingerprint(b), "Fingerprint includes scores")
	assert.Equal(t, FingerprintFor(a, seat.North), FingerprintFor(b, seat.North), "FingerprintFor excludes scores")
}

func TestFingerprintVariesWithRevealedCardsNotDiscards(t *testing.T) {
	a := baseState()

	west := a.Players[seat.West]
	west.RevealedCards = []card.Card{card.MustNew(card.Nine, card.Clubs)}
	b := a.WithPlayer(west)

	assert.NotEqual(t, Fingerprint(a), Fingerprint(b), "going cold changes the fingerprint")
	assert.NotEqual(t, FingerprintFor(a, seat.West), FingerprintFor(b, seat.West))

	c := a.WithDiscards(seat.East, []card.Card{card.MustNew(card.Two, card.Spades)})
	assert.Equal(t, Fingerprint(a), Fingerprint(c), "routine discards are not part of the fingerprint tuple")
}

func TestFingerprintForDistinguishesTrickOrder(t *testing.T) {
	s := baseState()
	tr1 := trick.New(seat.North).AddPlay(seat.North, card.MustNew(card.Ace, card.Hearts)).AddPlay(seat.East, card.MustNew(card.King, card.Hearts))
	tr2 := trick.New(seat.East).AddPlay(seat.East, card.MustNew(card.King, card.Hearts)).AddPlay(seat.North, card.MustNew(card.Ace, card.Hearts))

	s1 := s.WithCurrentTrick(&tr1)
	s2 := s.WithCurrentTrick(&tr2)

	assert.NotEqual(t, FingerprintFor(s1, seat.North), FingerprintFor(s2, seat.North), "play order within a trick is significant")
}

func TestCacheTracksHitsAndMisses(t *testing.T) {
	c := NewCache[[]string]()
	key := uint64(42)

	_, ok := c.Get(key)
	assert.False(t, ok)

	c.Put(key, []string{"Pass", "Bid(6)"})
	v, ok := c.Get(key)
	assert.True(t, ok)
	assert.Equal(t, []string{"Pass", "Bid(6)"}, v)

	stats := c.Stats()
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, 1, stats.Hits)
	assert.Equal(t, 1, stats.Misses)
	assert.InDelta(t, 0.5, stats.HitRate, 0.0001)
}

func TestCacheGetOrCompute(t *testing.T) {
	c := NewCache[int]()
	calls := 0
	compute := func() int {
		calls++
		return 99
	}

	assert.Equal(t, 99, c.GetOrCompute(1, compute))
	assert.Equal(t, 99, c.GetOrCompute(1, compute))
	assert.Equal(t, 1, calls, "compute should only run on the first miss")
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache[int]()
	c.Put(1, 10)
	c.Put(2, 20)

	c.Invalidate(1)
	_, ok := c.Get(1)
	assert.False(t, ok)
	_, ok = c.Get(2)
	assert.True(t, ok)

	c.InvalidateAll()
	assert.Equal(t, 0, c.Stats().Size)
}
