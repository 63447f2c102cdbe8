package state

import (
	"github.com/pidro-game/engine/internal/card"
	"github.com/pidro-game/engine/internal/seat"
)

// Player is one seat's per-hand state (spec §3.1).
type Player struct {
	Position      seat.Position
	Team          seat.Team
	Hand          []card.Card
	Eliminated    bool
	RevealedCards []card.Card
	TricksWon     int
}

// NewPlayer returns an empty player at position, with its team derived
// from position per the partnership mapping (spec invariant I2).
func NewPlayer(position seat.Position) Player {
	return Player{
		Position: position,
		Team:     seat.TeamOf(position),
	}
}

// HasCard reports whether the player holds c.
func (p Player) HasCard(c card.Card) bool {
	for _, h := range p.Hand {
		if h == c {
			return true
		}
	}
	return false
}

// WithHand returns a copy of p with its hand replaced.
func (p Player) WithHand(hand []card.Card) Player {
	cp := make([]card.Card, len(hand))
	copy(cp, hand)
	p.Hand = cp
	return p
}

// WithoutCards returns a copy of p with the given cards removed from its
// hand (each removed at most once, matching multiplicity in cards).
func (p Player) WithoutCards(cards ...card.Card) Player {
	remove := make(map[card.Card]int, len(cards))
	for _, c := range cards {
		remove[c]++
	}
	out := make([]card.Card, 0, len(p.Hand))
	for _, h := range p.Hand {
		if remove[h] > 0 {
			remove[h]--
			continue
		}
		out = append(out, h)
	}
	p.Hand = out
	return p
}

// WithAddedCards returns a copy of p with cards appended to its hand.
func (p Player) WithAddedCards(cards ...card.Card) Player {
	out := make([]card.Card, len(p.Hand), len(p.Hand)+len(cards))
	copy(out, p.Hand)
	out = append(out, cards...)
	p.Hand = out
	return p
}

// TrumpCount returns how many cards in the player's hand are trump under t.
func (p Player) TrumpCount(t card.Suit) int {
	n := 0
	for _, c := range p.Hand {
		if c.IsTrump(t) {
			n++
		}
	}
	return n
}
