package state

import (
	"testing"

	"github.com/pidro-game/engine/internal/card"
	"github.com/pidro-game/engine/internal/seat"
	"github.com/pidro-game/engine/internal/trick"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameStateDefaults(t *testing.T) {
	s := New(DefaultConfig())
	assert.Equal(t, DealerSelection, s.Phase)
	assert.Equal(t, seat.None, s.Dealer)
	assert.Equal(t, card.NoSuit, s.TrumpSuit)
	assert.Len(t, s.Players, 4)
	for _, p := range seat.All {
		assert.Equal(t, seat.TeamOf(p), s.Players[p].Team)
	}
}

func TestWithMethodsDoNotMutateOriginal(t *testing.T) {
	s := New(DefaultConfig())
	s2 := s.WithPhase(Bidding).WithDealer(seat.North).WithTurn(seat.East)

	assert.Equal(t, DealerSelection, s.Phase, "original must be unaffected")
	assert.Equal(t, seat.None, s.Dealer)
	assert.Equal(t, Bidding, s2.Phase)
	assert.Equal(t, seat.North, s2.Dealer)
	assert.Equal(t, seat.East, s2.CurrentTurn)
}

func TestWithPlayerIsolatesMap(t *testing.T) {
	s := New(DefaultConfig())
	north := s.Players[seat.North].WithHand([]card.Card{card.MustNew(card.Ace, card.Hearts)})
	s2 := s.WithPlayer(north)

	assert.Empty(t, s.Players[seat.North].Hand, "original player map entry must be untouched")
	assert.Len(t, s2.Players[seat.North].Hand, 1)
}

func TestWithBidTracksHighestAndTeam(t *testing.T) {
	s := New(DefaultConfig())
	s = s.WithBid(Bid{Position: seat.North, Amount: 6})
	s = s.WithBid(Bid{Position: seat.East, Passed: true})
	s = s.WithBid(Bid{Position: seat.South, Amount: 8})

	require.NotNil(t, s.HighestBid)
	assert.Equal(t, seat.South, s.HighestBid.Position)
	assert.Equal(t, 8, s.HighestBid.Amount)
	assert.Equal(t, seat.NorthSouth, s.BiddingTeam)
	assert.Len(t, s.Bids, 3)
}

func TestWithTrickFiledAdvancesTrickNumber(t *testing.T) {
	s := New(DefaultConfig())
	tr := trick.New(seat.North)
	tr = tr.AddPlay(seat.North, card.MustNew(card.Ace, card.Hearts))
	tr = tr.AddPlay(seat.East, card.MustNew(card.King, card.Hearts))
	tr = tr.AddPlay(seat.South, card.MustNew(card.Queen, card.Hearts))
	tr = tr.AddPlay(seat.West, card.MustNew(card.Jack, card.Hearts))

	s = s.WithCurrentTrick(&tr)
	s2 := s.WithTrickFiled(tr)

	assert.NotNil(t, s.CurrentTrick, "original snapshot keeps its in-progress trick")
	assert.Nil(t, s2.CurrentTrick)
	assert.Len(t, s2.CompletedTricks, 1)
	assert.Equal(t, 1, s2.TrickNumber)
}

func TestNextHandRotatesDealerAndResetsHand(t *testing.T) {
	s := New(DefaultConfig())
	s = s.WithDealer(seat.North)
	s = s.AddScore(seat.NorthSouth, 10)
	s = s.WithPhase(Scoring)
	s = s.WithHandPoints(seat.NorthSouth, 7)
	s = s.WithTrump(card.Hearts)

	next := s.NextHand()

	assert.Equal(t, Dealing, next.Phase)
	assert.Equal(t, 2, next.HandNumber)
	assert.Equal(t, seat.East, next.Dealer, "dealer rotates clockwise")
	assert.Equal(t, card.NoSuit, next.TrumpSuit)
	assert.Equal(t, 0, next.HandPoints[seat.NorthSouth], "hand points reset")
	assert.Equal(t, 10, next.Scores[seat.NorthSouth], "cumulative score carries over")
	for _, p := range seat.All {
		assert.Empty(t, next.Players[p].Hand)
	}
}

func TestActivePlayersExcludesEliminated(t *testing.T) {
	s := New(DefaultConfig())
	west := s.Players[seat.West]
	west.Eliminated = true
	s = s.WithPlayer(west)

	active := s.ActivePlayers()
	assert.Len(t, active, 3)
	assert.NotContains(t, active, seat.West)
}

func TestSecondDealRecordCloneIndependence(t *testing.T) {
	rec := &SecondDealRecord{CardsReceived: map[seat.Position]int{seat.East: 2}, DealerPoolSize: 8}
	s := New(DefaultConfig()).WithSecondDeal(rec)
	rec.CardsReceived[seat.East] = 99

	assert.Equal(t, 2, s.SecondDeal.CardsReceived[seat.East], "state must hold its own copy")
}
