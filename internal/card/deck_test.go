package card

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderedDeckHas52UniqueCards(t *testing.T) {
	d := NewOrderedDeck()
	require.Equal(t, 52, d.Len())

	seen := make(map[Card]bool, 52)
	for _, c := range d.Cards() {
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
}

func TestShuffledDeckIsAPermutation(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	shuffled := NewShuffledDeck(rng)
	ordered := NewOrderedDeck()

	require.Equal(t, ordered.Len(), shuffled.Len())

	want := make(map[Card]bool, 52)
	for _, c := range ordered.Cards() {
		want[c] = true
	}
	for _, c := range shuffled.Cards() {
		assert.True(t, want[c], "shuffled deck contains unexpected card %s", c)
		delete(want, c)
	}
	assert.Empty(t, want, "shuffled deck is missing cards")
}

func TestSameSeedProducesSameShuffle(t *testing.T) {
	a := NewShuffledDeck(rand.New(rand.NewPCG(42, 7)))
	b := NewShuffledDeck(rand.New(rand.NewPCG(42, 7)))
	assert.Equal(t, a.Cards(), b.Cards())
}

func TestDealBatch(t *testing.T) {
	d := NewOrderedDeck()
	taken, rest := d.DealBatch(9)
	assert.Len(t, taken, 9)
	assert.Equal(t, 43, rest.Len())

	// Original deck is unmutated (immutable-update discipline).
	assert.Equal(t, 52, d.Len())

	taken2, rest2 := rest.DealBatch(100)
	assert.Len(t, taken2, 43, "DealBatch should clamp to remaining count")
	assert.Equal(t, 0, rest2.Len())
}

func TestDrawIsAliasOfDealBatch(t *testing.T) {
	d := NewOrderedDeck()
	a, da := d.DealBatch(5)
	b, db := d.Draw(5)
	assert.Equal(t, a, b)
	assert.Equal(t, da.Len(), db.Len())
}

func TestWithoutRemovesExactCards(t *testing.T) {
	d := NewOrderedDeck()
	target := MustNew(Ace, Hearts)
	require.True(t, d.Contains(target))

	after := d.Without(target)
	assert.False(t, after.Contains(target))
	assert.Equal(t, 51, after.Len())
}
