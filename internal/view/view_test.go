package view

import (
	"testing"

	"github.com/pidro-game/engine/internal/card"
	"github.com/pidro-game/engine/internal/seat"
	"github.com/pidro-game/engine/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewForUnmasksOwnHandOnly(t *testing.T) {
	s := state.New(state.DefaultConfig())
	s = s.WithPhase(state.Playing)
	hands := map[seat.Position][]card.Card{
		seat.North: {card.MustNew(card.Ace, card.Hearts)},
		seat.East:  {card.MustNew(card.King, card.Hearts), card.MustNew(card.Queen, card.Hearts)},
		seat.South: {card.MustNew(card.Jack, card.Hearts)},
		seat.West:  {card.MustNew(card.Ten, card.Hearts)},
	}
	for p, h := range hands {
		s = s.WithPlayer(s.Players[p].WithHand(h))
	}

	v := ViewFor(s, seat.East)
	require.Len(t, v.Players, 4)
	assert.Equal(t, hands[seat.East], v.Players[seat.East].Hand)
	assert.Equal(t, 2, v.Players[seat.East].HandSize)

	for _, p := range []seat.Position{seat.North, seat.South, seat.West} {
		assert.Nil(t, v.Players[p].Hand, "seat %s hand should be masked", p)
		assert.Equal(t, len(hands[p]), v.Players[p].HandSize)
	}
}

func TestViewForSpectatorMasksEveryHand(t *testing.T) {
	s := state.New(state.DefaultConfig())
	s = s.WithPlayer(s.Players[seat.North].WithHand([]card.Card{card.MustNew(card.Ace, card.Hearts)}))

	v := ViewForSpectator(s)
	for _, p := range seat.All {
		assert.Nil(t, v.Players[p].Hand)
	}
	assert.Equal(t, 1, v.Players[seat.North].HandSize)
	assert.Nil(t, v.Deck)
}

func TestViewFullUnmasksEverything(t *testing.T) {
	s := state.New(state.DefaultConfig())
	s = s.WithPlayer(s.Players[seat.South].WithHand([]card.Card{card.MustNew(card.Five, card.Clubs)}))
	s = s.WithDealerPool([]card.Card{card.MustNew(card.Nine, card.Diamonds)})

	v := ViewFull(s)
	for _, p := range seat.All {
		assert.Equal(t, s.Players[p].Hand, v.Players[p].Hand)
	}
}

func TestViewForDealerSeesDeckDuringSecondDeal(t *testing.T) {
	s := state.New(state.DefaultConfig())
	s = s.WithPhase(state.SecondDeal)
	s = s.WithDealer(seat.South)
	remaining := []card.Card{card.MustNew(card.Nine, card.Clubs), card.MustNew(card.King, card.Spades)}
	s = s.WithDeck(card.NewDeckFrom(remaining))

	dealerView := ViewFor(s, seat.South)
	assert.Equal(t, remaining, dealerView.Deck)

	otherView := ViewFor(s, seat.East)
	assert.Nil(t, otherView.Deck)
}

func TestViewForOutsideSecondDealNeverShowsDeck(t *testing.T) {
	s := state.New(state.DefaultConfig())
	s = s.WithPhase(state.Playing)
	s = s.WithDealer(seat.South)
	s = s.WithDeck(card.NewDeckFrom([]card.Card{card.MustNew(card.Nine, card.Clubs)}))

	v := ViewFor(s, seat.South)
	assert.Nil(t, v.Deck)
}

func TestViewCarriesPublicFields(t *testing.T) {
	s := state.New(state.DefaultConfig())
	s = s.WithPhase(state.Bidding)
	s = s.WithTrump(card.Hearts)
	s = s.WithBid(state.Bid{Position: seat.North, Amount: 8})
	s = s.AddScore(seat.NorthSouth, 20)

	v := ViewFor(s, seat.East)
	assert.Equal(t, state.Bidding, v.Phase)
	assert.Equal(t, card.Hearts, v.TrumpSuit)
	require.NotNil(t, v.HighestBid)
	assert.Equal(t, 8, v.HighestBid.Amount)
	assert.Equal(t, 20, v.Scores[seat.NorthSouth])
}
