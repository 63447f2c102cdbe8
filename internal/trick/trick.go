// Package trick implements a single trick: the accumulation of up to four
// plays and the determination of its winner and point value (spec §4.2,
// C2).
package trick

import (
	"errors"

	"github.com/pidro-game/engine/internal/card"
	"github.com/pidro-game/engine/internal/seat"
)

// Play is one card played by one seat, in the order it was played.
type Play struct {
	Position seat.Position
	Card     card.Card
}

// Trick accumulates plays for a single trick. It does not validate
// legality of a play — the rules engine does that before calling AddPlay
// (spec §4.2).
type Trick struct {
	Leader seat.Position
	Plays  []Play
}

// New returns an empty trick led by leader.
func New(leader seat.Position) Trick {
	return Trick{Leader: leader}
}

// AddPlay returns a new trick with (position, card) appended.
func (t Trick) AddPlay(position seat.Position, c card.Card) Trick {
	plays := make([]Play, len(t.Plays), len(t.Plays)+1)
	copy(plays, t.Plays)
	plays = append(plays, Play{Position: position, Card: c})
	return Trick{Leader: t.Leader, Plays: plays}
}

// Complete reports whether four cards have been played.
func (t Trick) Complete() bool {
	return len(t.Plays) == 4
}

// ErrIncompleteTrick is returned by Winner when the trick has zero plays.
var ErrIncompleteTrick = errors.New("trick: cannot determine winner of an empty trick")

// Winner returns the seat that won the trick under trump suit t: the
// highest-ranked card per card.Compare, with ties among non-trump cards
// (possible once enough seats are eliminated that a trick never sees
// trump) broken in favor of the earliest play — the leader — per spec
// §4.2.
func (t Trick) Winner(trump card.Suit) (seat.Position, error) {
	if len(t.Plays) == 0 {
		return seat.None, ErrIncompleteTrick
	}
	best := t.Plays[0]
	for _, p := range t.Plays[1:] {
		if card.Compare(p.Card, best.Card, trump) > 0 {
			best = p
		}
	}
	return best.Position, nil
}

// Points sums the point values of every card played in the trick, then
// applies the 2-of-trump rule (spec §4.2, §4.5.1 step 8): whichever seat
// played the 2 of trump keeps 1 of its own point, so the amount returned
// here is what the *winner* receives, which is the raw sum minus 1 if the
// 2 of trump was played by anyone (including the winner — the winner would
// otherwise double count that point).
func (t Trick) Points(trump card.Suit) int {
	total := 0
	sawTwoOfTrump := false
	for _, p := range t.Plays {
		total += p.Card.PointValue(trump)
		if p.Card.Rank == card.Two && p.Card.IsTrump(trump) {
			sawTwoOfTrump = true
		}
	}
	if sawTwoOfTrump {
		total--
	}
	return total
}

// TwoOfTrumpPlayer returns the seat that played the 2 of trump in this
// trick, if any.
func (t Trick) TwoOfTrumpPlayer(trump card.Suit) (seat.Position, bool) {
	for _, p := range t.Plays {
		if p.Card.Rank == card.Two && p.Card.IsTrump(trump) {
			return p.Position, true
		}
	}
	return seat.None, false
}

// Cards returns the cards played so far, in play order.
func (t Trick) Cards() []card.Card {
	out := make([]card.Card, len(t.Plays))
	for i, p := range t.Plays {
		out[i] = p.Card
	}
	return out
}
