// Package view builds player- and spectator-facing projections of a
// GameState (spec §4.8, C8): pure functions that mask hidden information
// the way a client message ever should, never mutating the state they
// read from. The shape mirrors the teacher's own "hole cards only for the
// acting player" projection in internal/server/message.go, generalized
// from "one acting player" to "one viewing seat."
package view

import (
	"github.com/pidro-game/engine/internal/card"
	"github.com/pidro-game/engine/internal/seat"
	"github.com/pidro-game/engine/internal/state"
	"github.com/pidro-game/engine/internal/trick"
)

// PlayerView is one seat's projection. Hand is nil and HandSize carries the
// count whenever the viewer is not allowed to see the seat's actual cards.
type PlayerView struct {
	Position      seat.Position
	Team          seat.Team
	Hand          []card.Card
	HandSize      int
	Eliminated    bool
	RevealedCards []card.Card
	TricksWon     int
}

// GameView is the redacted projection handed to a player, spectator, or
// administrative tool. Discards, the event log, the legal-action cache,
// and Config never appear here (spec §4.8).
type GameView struct {
	Phase       state.Phase
	HandNumber  int
	Dealer      seat.Position
	CurrentTurn seat.Position

	// Deck is nil except for ViewFull and ViewFor(dealer) during
	// SecondDeal, when the dealer is choosing their final hand from the
	// combined rob pool.
	Deck []card.Card

	Players map[seat.Position]PlayerView

	Bids        []state.Bid
	HighestBid  *state.Bid
	BiddingTeam seat.Team

	TrumpSuit card.Suit

	CompletedTricks []trick.Trick
	CurrentTrick    *trick.Trick
	TrickNumber     int

	HandPoints map[seat.Team]int
	Scores     map[seat.Team]int

	Winner seat.Team
}

// ViewFor projects s for viewer: viewer's own hand is unmasked; every
// other seat's hand is masked to its length. The remaining deck is
// visible only if viewer is the dealer mid-SecondDeal, choosing their
// final hand from the rob pool.
func ViewFor(s state.GameState, viewer seat.Position) GameView {
	v := baseView(s)
	v.Players = playersView(s, func(p seat.Position) bool { return p == viewer })
	if s.Phase == state.SecondDeal && viewer == s.Dealer {
		v.Deck = s.Deck.Cards()
	}
	return v
}

// ViewForSpectator projects s with every hand masked to its length and the
// deck never visible.
func ViewForSpectator(s state.GameState) GameView {
	v := baseView(s)
	v.Players = playersView(s, func(seat.Position) bool { return false })
	return v
}

// ViewFull projects s fully unmasked (every hand, the deck), aside from
// Config and the legal-action cache, which this projection never carries
// in the first place. Intended for administrative tooling, not for any
// player or spectator transport.
func ViewFull(s state.GameState) GameView {
	v := baseView(s)
	v.Players = playersView(s, func(seat.Position) bool { return true })
	v.Deck = s.Deck.Cards()
	return v
}

func baseView(s state.GameState) GameView {
	return GameView{
		Phase:           s.Phase,
		HandNumber:      s.HandNumber,
		Dealer:          s.Dealer,
		CurrentTurn:     s.CurrentTurn,
		Bids:            s.Bids,
		HighestBid:      s.HighestBid,
		BiddingTeam:     s.BiddingTeam,
		TrumpSuit:       s.TrumpSuit,
		CompletedTricks: s.CompletedTricks,
		CurrentTrick:    s.CurrentTrick,
		TrickNumber:     s.TrickNumber,
		HandPoints:      s.HandPoints,
		Scores:          s.Scores,
		Winner:          s.Winner,
	}
}

func playersView(s state.GameState, unmasked func(seat.Position) bool) map[seat.Position]PlayerView {
	out := make(map[seat.Position]PlayerView, len(s.Players))
	for _, p := range seat.All {
		pl := s.Players[p]
		pv := PlayerView{
			Position:      pl.Position,
			Team:          pl.Team,
			HandSize:      len(pl.Hand),
			Eliminated:    pl.Eliminated,
			RevealedCards: pl.RevealedCards,
			TricksWon:     pl.TricksWon,
		}
		if unmasked(p) {
			pv.Hand = pl.Hand
		}
		out[p] = pv
	}
	return out
}
