package card

import "math/rand/v2"

// Deck is an immutable-update sequence of remaining cards. Operations
// return a new deck rather than mutating in place, consistent with the
// engine's whole-state-update discipline (spec §3.5, §9.1).
type Deck struct {
	cards []Card
}

// NewOrderedDeck returns the 52-card deck in canonical (unshuffled) order:
// suits per card.Suits, ranks 2..14 within each suit.
func NewOrderedDeck() Deck {
	cards := make([]Card, 0, 52)
	for _, s := range Suits {
		for r := Two; r <= Ace; r++ {
			cards = append(cards, Card{Rank: r, Suit: s})
		}
	}
	return Deck{cards: cards}
}

// NewShuffledDeck returns a 52-card deck shuffled with a uniform
// Fisher-Yates permutation driven by rng. Callers supply the *rand.Rand
// (see internal/randutil) so that shuffles are reproducible given a seed,
// which is required for deterministic replay (spec §8.2 L5, §9.4).
func NewShuffledDeck(rng *rand.Rand) Deck {
	d := NewOrderedDeck()
	cards := make([]Card, len(d.cards))
	copy(cards, d.cards)
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return Deck{cards: cards}
}

// NewDeckFrom returns a deck containing exactly the given cards, in the
// given order. Used by the binary codec (C6) to reconstruct a decoded
// remaining-deck slice.
func NewDeckFrom(cards []Card) Deck {
	cp := make([]Card, len(cards))
	copy(cp, cards)
	return Deck{cards: cp}
}

// Cards returns a defensive copy of the remaining cards, in deal order
// (index 0 is dealt first).
func (d Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Len returns the number of cards remaining.
func (d Deck) Len() int {
	return len(d.cards)
}

// DealBatch splits off the first n cards (fewer if the deck has fewer
// remaining) and returns them along with the resulting deck. Spec §4.1.
func (d Deck) DealBatch(n int) ([]Card, Deck) {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	if n <= 0 {
		return nil, d
	}
	taken := make([]Card, n)
	copy(taken, d.cards[:n])
	rest := make([]Card, len(d.cards)-n)
	copy(rest, d.cards[n:])
	return taken, Deck{cards: rest}
}

// Draw is an alias of DealBatch for call sites where "drawing" reads more
// naturally than "dealing" (spec §4.1).
func (d Deck) Draw(n int) ([]Card, Deck) {
	return d.DealBatch(n)
}

// Contains reports whether c remains in the deck.
func (d Deck) Contains(c Card) bool {
	for _, dc := range d.cards {
		if dc == c {
			return true
		}
	}
	return false
}

// Without returns a new deck with the given cards removed, preserving
// relative order of the rest. Used by the dealer's "rob the pack" to pull
// specific cards out of the remaining pool (spec §4.5.1 step 7).
func (d Deck) Without(cards ...Card) Deck {
	remove := make(map[Card]int, len(cards))
	for _, c := range cards {
		remove[c]++
	}
	out := make([]Card, 0, len(d.cards))
	for _, c := range d.cards {
		if remove[c] > 0 {
			remove[c]--
			continue
		}
		out = append(out, c)
	}
	return Deck{cards: out}
}
