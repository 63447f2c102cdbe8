// Package state defines the authoritative game data model (spec §3, C3):
// the immutable GameState aggregate and its pure field-update methods.
// Nothing in this package validates legality of a transition — that is
// the rules engine's job (package rules, C5). state only guarantees that
// every value it hands out is a new, independent snapshot: existing
// references to a prior GameState remain valid forever (spec §3.5, §9.1).
package state

import (
	"github.com/pidro-game/engine/internal/card"
	"github.com/pidro-game/engine/internal/seat"
	"github.com/pidro-game/engine/internal/trick"
)

// SecondDealRecord captures the bookkeeping of the "rob the pack" second
// deal (spec §4.5.1 step 5): how many replenishment cards each non-dealer
// seat received, and how large the dealer's combined rob pool was. It is
// nil until the SecondDeal phase completes, and then persists read-only
// for the rest of the hand (it is part of the notation's redeal field,
// spec §4.7).
type SecondDealRecord struct {
	CardsReceived  map[seat.Position]int
	DealerPoolSize int
}

// Clone returns a deep copy of r, or nil if r is nil.
func (r *SecondDealRecord) Clone() *SecondDealRecord {
	if r == nil {
		return nil
	}
	cp := &SecondDealRecord{
		CardsReceived:  make(map[seat.Position]int, len(r.CardsReceived)),
		DealerPoolSize: r.DealerPoolSize,
	}
	for k, v := range r.CardsReceived {
		cp.CardsReceived[k] = v
	}
	return cp
}

// GameState is the complete, immutable snapshot of one game in progress
// (spec §3.1). Every With* method below returns a new GameState; it never
// mutates the receiver's slices or maps in place.
type GameState struct {
	Config Config

	Phase      Phase
	HandNumber int

	Dealer      seat.Position
	CurrentTurn seat.Position

	Deck card.Deck

	Players map[seat.Position]Player

	Bids        []Bid
	HighestBid  *Bid
	BiddingTeam seat.Team

	TrumpSuit card.Suit

	// DealerPool holds the dealer's combined rob pool (dealer's hand plus
	// the remaining deck) while the dealer chooses their final six cards
	// during SecondDeal (spec §4.5.1 step 7). Populated when
	// SecondDealComplete is applied, cleared back to nil once
	// DealerRobbedPack is applied; nil outside that window.
	DealerPool []card.Card

	SecondDeal *SecondDealRecord

	// Discards holds the cards each seat has permanently lost from play
	// this hand: a non-dealer's automatic non-trump discard (spec §4.5.1
	// step 6), or the dealer's rejected rob-pool cards (step 7). Never
	// returned to Deck. Omitted from per-seat views (spec §4.8).
	Discards map[seat.Position][]card.Card

	CompletedTricks []trick.Trick
	CurrentTrick    *trick.Trick
	TrickNumber     int

	HandPoints map[seat.Team]int
	Scores     map[seat.Team]int

	Winner seat.Team
}

// New returns the initial GameState for a fresh game under cfg: no hand in
// progress, zero scores, dealer not yet chosen.
func New(cfg Config) GameState {
	players := make(map[seat.Position]Player, 4)
	for _, p := range seat.All {
		players[p] = NewPlayer(p)
	}
	return GameState{
		Config:      cfg,
		Phase:       DealerSelection,
		HandNumber:  1,
		Dealer:      seat.None,
		CurrentTurn: seat.None,
		Players:     players,
		TrumpSuit:   card.NoSuit,
		BiddingTeam: seat.NoTeam,
		HandPoints:  map[seat.Team]int{seat.NorthSouth: 0, seat.EastWest: 0},
		Scores:      map[seat.Team]int{seat.NorthSouth: 0, seat.EastWest: 0},
		Winner:      seat.NoTeam,
	}
}

// clonePlayers returns a shallow-per-player copy of the players map,
// suitable as the starting point for a With* method that edits one seat.
func (s GameState) clonePlayers() map[seat.Position]Player {
	out := make(map[seat.Position]Player, len(s.Players))
	for k, v := range s.Players {
		out[k] = v
	}
	return out
}

func cloneTeamInts(m map[seat.Team]int) map[seat.Team]int {
	out := make(map[seat.Team]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// WithPhase returns a copy of s with its phase replaced.
func (s GameState) WithPhase(p Phase) GameState {
	s.Phase = p
	return s
}

// WithTurn returns a copy of s with the seat to act next replaced.
func (s GameState) WithTurn(p seat.Position) GameState {
	s.CurrentTurn = p
	return s
}

// WithDealer returns a copy of s with the dealer seat replaced.
func (s GameState) WithDealer(p seat.Position) GameState {
	s.Dealer = p
	return s
}

// WithDeck returns a copy of s with the deck replaced.
func (s GameState) WithDeck(d card.Deck) GameState {
	s.Deck = d
	return s
}

// WithPlayer returns a copy of s with one player's record replaced.
func (s GameState) WithPlayer(p Player) GameState {
	players := s.clonePlayers()
	players[p.Position] = p
	s.Players = players
	return s
}

// WithBid appends a bid (or a pass) to the bidding log.
func (s GameState) WithBid(b Bid) GameState {
	bids := make([]Bid, len(s.Bids), len(s.Bids)+1)
	copy(bids, s.Bids)
	bids = append(bids, b)
	s.Bids = bids
	if !b.Passed {
		hb := b
		s.HighestBid = &hb
		s.BiddingTeam = seat.TeamOf(b.Position)
	}
	return s
}

// WithTrump returns a copy of s with the declared trump suit replaced.
func (s GameState) WithTrump(t card.Suit) GameState {
	s.TrumpSuit = t
	return s
}

// WithDealerPool returns a copy of s with the dealer's rob pool replaced
// (pass nil to clear it once the dealer has chosen their final hand).
func (s GameState) WithDealerPool(pool []card.Card) GameState {
	if pool == nil {
		s.DealerPool = nil
		return s
	}
	cp := make([]card.Card, len(pool))
	copy(cp, pool)
	s.DealerPool = cp
	return s
}

// WithSecondDeal returns a copy of s with its second-deal record replaced.
func (s GameState) WithSecondDeal(r *SecondDealRecord) GameState {
	s.SecondDeal = r.Clone()
	return s
}

// WithDiscards appends cards to position's permanently-lost pile for this
// hand (spec §4.5.1 steps 6-7, §4.8).
func (s GameState) WithDiscards(position seat.Position, cards []card.Card) GameState {
	out := make(map[seat.Position][]card.Card, len(s.Discards))
	for k, v := range s.Discards {
		cp := make([]card.Card, len(v))
		copy(cp, v)
		out[k] = cp
	}
	existing := out[position]
	merged := make([]card.Card, len(existing), len(existing)+len(cards))
	copy(merged, existing)
	merged = append(merged, cards...)
	out[position] = merged
	s.Discards = out
	return s
}

// WithCurrentTrick returns a copy of s with the in-progress trick replaced.
// Pass nil to clear it (e.g. immediately after it is completed and filed
// into CompletedTricks).
func (s GameState) WithCurrentTrick(t *trick.Trick) GameState {
	if t == nil {
		s.CurrentTrick = nil
		return s
	}
	cp := *t
	s.CurrentTrick = &cp
	return s
}

// WithTrickFiled appends t to CompletedTricks, clears CurrentTrick, and
// advances TrickNumber.
func (s GameState) WithTrickFiled(t trick.Trick) GameState {
	completed := make([]trick.Trick, len(s.CompletedTricks), len(s.CompletedTricks)+1)
	copy(completed, s.CompletedTricks)
	completed = append(completed, t)
	s.CompletedTricks = completed
	s.CurrentTrick = nil
	s.TrickNumber++
	return s
}

// WithHandPoints returns a copy of s with team's accumulated hand points
// set to value.
func (s GameState) WithHandPoints(team seat.Team, value int) GameState {
	hp := cloneTeamInts(s.HandPoints)
	hp[team] = value
	s.HandPoints = hp
	return s
}

// AddHandPoints returns a copy of s with delta added to team's hand
// points.
func (s GameState) AddHandPoints(team seat.Team, delta int) GameState {
	return s.WithHandPoints(team, s.HandPoints[team]+delta)
}

// WithScores returns a copy of s with team's cumulative game score set to
// value.
func (s GameState) WithScores(team seat.Team, value int) GameState {
	sc := cloneTeamInts(s.Scores)
	sc[team] = value
	s.Scores = sc
	return s
}

// AddScore returns a copy of s with delta added to team's cumulative game
// score.
func (s GameState) AddScore(team seat.Team, delta int) GameState {
	return s.WithScores(team, s.Scores[team]+delta)
}

// WithWinner returns a copy of s with the game's winning team set.
func (s GameState) WithWinner(t seat.Team) GameState {
	s.Winner = t
	return s
}

// WithHandNumber returns a copy of s with the hand counter replaced.
func (s GameState) WithHandNumber(n int) GameState {
	s.HandNumber = n
	return s
}

// NextHand returns a copy of s reset for a new hand: phase back to
// Dealing, hand number incremented, bidding/trick/trump state cleared,
// players' per-hand fields reset, dealer rotated to the next seat.
// Cumulative scores and the dealer's new identity are preserved.
func (s GameState) NextHand() GameState {
	next := s
	next.Phase = Dealing
	next.HandNumber = s.HandNumber + 1
	next.Dealer = s.Dealer.Next()
	next.CurrentTurn = seat.None
	next.Deck = card.Deck{}
	next.Bids = nil
	next.HighestBid = nil
	next.BiddingTeam = seat.NoTeam
	next.TrumpSuit = card.NoSuit
	next.DealerPool = nil
	next.SecondDeal = nil
	next.Discards = nil
	next.CompletedTricks = nil
	next.CurrentTrick = nil
	next.TrickNumber = 0
	next.HandPoints = map[seat.Team]int{seat.NorthSouth: 0, seat.EastWest: 0}

	players := make(map[seat.Position]Player, 4)
	for _, p := range seat.All {
		players[p] = NewPlayer(p)
	}
	next.Players = players
	return next
}

// ActivePlayers returns the seats that have not gone cold (spec §4.5.1
// step 8, §8.3), in clockwise seating order.
func (s GameState) ActivePlayers() []seat.Position {
	out := make([]seat.Position, 0, 4)
	for _, p := range seat.All {
		if !s.Players[p].Eliminated {
			out = append(out, p)
		}
	}
	return out
}

// NextActiveSeat returns the next seat clockwise from (but excluding) from
// that has not gone cold, wrapping around the table. It never returns
// from itself unless from is the only active seat left.
func (s GameState) NextActiveSeat(from seat.Position) seat.Position {
	p := from
	for i := 0; i < 4; i++ {
		p = p.Next()
		if !s.Players[p].Eliminated {
			return p
		}
	}
	return from
}
