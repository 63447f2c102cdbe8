package notation

import (
	"testing"

	"github.com/pidro-game/engine/internal/card"
	"github.com/pidro-game/engine/internal/seat"
	"github.com/pidro-game/engine/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFreshGame(t *testing.T) {
	s := state.New(state.DefaultConfig())
	assert.Equal(t, "ds/-/-/-/-/NS:0:EW:0/h1/t0/-", Encode(s))
}

func TestDecodeFreshGame(t *testing.T) {
	decoded, err := Decode("ds/-/-/-/-/NS:0:EW:0/h1/t0/-")
	require.NoError(t, err)
	assert.Equal(t, state.DealerSelection, decoded.Phase)
	assert.Equal(t, seat.None, decoded.Dealer)
	assert.Equal(t, seat.None, decoded.CurrentTurn)
	assert.Equal(t, card.NoSuit, decoded.TrumpSuit)
	assert.Nil(t, decoded.HighestBid)
	assert.Equal(t, 1, decoded.HandNumber)
	assert.Equal(t, 0, decoded.TrickNumber)
	assert.Nil(t, decoded.SecondDeal)
}

func TestEncodeMidHandWithBid(t *testing.T) {
	s := state.New(state.DefaultConfig())
	s = s.WithPhase(state.Playing)
	s = s.WithDealer(seat.North)
	s = s.WithTurn(seat.East)
	s = s.WithTrump(card.Hearts)
	s = s.WithBid(state.Bid{Position: seat.North, Amount: 10})
	s = s.AddScore(seat.NorthSouth, 15)
	s = s.AddScore(seat.EastWest, 8)
	s = s.WithHandNumber(2)
	s.TrickNumber = 3

	assert.Equal(t, "pl/N/E/h/N:10/NS:15:EW:8/h2/t3/-", Encode(s))
}

func TestDecodeMidHandWithBid(t *testing.T) {
	decoded, err := Decode("pl/N/E/h/N:10/NS:15:EW:8/h2/t3/-")
	require.NoError(t, err)
	assert.Equal(t, state.Playing, decoded.Phase)
	assert.Equal(t, seat.North, decoded.Dealer)
	assert.Equal(t, seat.East, decoded.CurrentTurn)
	assert.Equal(t, card.Hearts, decoded.TrumpSuit)
	require.NotNil(t, decoded.HighestBid)
	assert.Equal(t, seat.North, decoded.HighestBid.Position)
	assert.Equal(t, 10, decoded.HighestBid.Amount)
	assert.Equal(t, seat.NorthSouth, decoded.BiddingTeam)
	assert.Equal(t, 15, decoded.Scores[seat.NorthSouth])
	assert.Equal(t, 8, decoded.Scores[seat.EastWest])
	assert.Equal(t, 2, decoded.HandNumber)
	assert.Equal(t, 3, decoded.TrickNumber)
}

func TestEncodeWithRedealSegments(t *testing.T) {
	s := state.New(state.DefaultConfig())
	s = s.WithPhase(state.Playing)
	s = s.WithDealer(seat.North)
	s = s.WithTurn(seat.East)
	s = s.WithTrump(card.Hearts)
	s = s.WithBid(state.Bid{Position: seat.North, Amount: 10})
	s = s.WithHandNumber(1)
	s.TrickNumber = 2
	s.SecondDeal = &state.SecondDealRecord{
		CardsReceived: map[seat.Position]int{seat.East: 2, seat.South: 3, seat.West: 1},
		DealerPoolSize: 8,
	}
	south := s.Players[seat.South]
	south.RevealedCards = []card.Card{card.MustNew(card.Four, card.Hearts), card.MustNew(card.Three, card.Hearts)}
	s = s.WithPlayer(south)

	assert.Equal(t, "pl/N/E/h/N:10/NS:0:EW:0/h1/t2/cr:E:2,S:3,W:1;dp:8;kc:S:4h,3h", Encode(s))
}

func TestDecodeWithRedealSegments(t *testing.T) {
	decoded, err := Decode("pl/N/E/h/N:10/NS:0:EW:0/h1/t2/cr:E:2,S:3,W:1;dp:8;kc:S:4h,3h")
	require.NoError(t, err)
	require.NotNil(t, decoded.SecondDeal)
	assert.Equal(t, 2, decoded.SecondDeal.CardsReceived[seat.East])
	assert.Equal(t, 3, decoded.SecondDeal.CardsReceived[seat.South])
	assert.Equal(t, 1, decoded.SecondDeal.CardsReceived[seat.West])
	assert.Equal(t, 8, decoded.SecondDeal.DealerPoolSize)
	assert.Equal(t, []card.Card{
		card.MustNew(card.Four, card.Hearts),
		card.MustNew(card.Three, card.Hearts),
	}, decoded.Players[seat.South].RevealedCards)
}

func TestRoundTripPreservesPublicFields(t *testing.T) {
	s := state.New(state.DefaultConfig())
	s = s.WithPhase(state.Discarding)
	s = s.WithDealer(seat.South)
	s = s.WithTurn(seat.West)
	s = s.WithTrump(card.Clubs)
	s = s.WithBid(state.Bid{Position: seat.South, Amount: 7})
	s = s.AddScore(seat.NorthSouth, -6)
	s = s.AddScore(seat.EastWest, 20)
	s = s.WithHandNumber(5)
	s.TrickNumber = 1

	decoded, err := Decode(Encode(s))
	require.NoError(t, err)
	assert.Equal(t, s.Phase, decoded.Phase)
	assert.Equal(t, s.Dealer, decoded.Dealer)
	assert.Equal(t, s.CurrentTurn, decoded.CurrentTurn)
	assert.Equal(t, s.TrumpSuit, decoded.TrumpSuit)
	assert.Equal(t, s.HighestBid, decoded.HighestBid)
	assert.Equal(t, s.BiddingTeam, decoded.BiddingTeam)
	assert.Equal(t, s.Scores, decoded.Scores)
	assert.Equal(t, s.HandNumber, decoded.HandNumber)
	assert.Equal(t, s.TrickNumber, decoded.TrickNumber)
}

func TestDecodeWrongFieldCountIsInvalid(t *testing.T) {
	_, err := Decode("ds/-/-/-/-/NS:0:EW:0/h1")
	var invalid InvalidNotationError
	require.ErrorAs(t, err, &invalid)
}

func TestDecodeUnknownPhaseCodeIsInvalid(t *testing.T) {
	_, err := Decode("xx/-/-/-/-/NS:0:EW:0/h1/t0/-")
	var invalid InvalidNotationError
	require.ErrorAs(t, err, &invalid)
}

func TestDecodeMalformedScoresIsInvalid(t *testing.T) {
	_, err := Decode("ds/-/-/-/-/NS:0/h1/t0/-")
	var invalid InvalidNotationError
	require.ErrorAs(t, err, &invalid)
}

func TestDecodeMalformedBidIsInvalid(t *testing.T) {
	_, err := Decode("bd/N/E/-/N/NS:0:EW:0/h1/t0/-")
	var invalid InvalidNotationError
	require.ErrorAs(t, err, &invalid)
}

func TestDecodeUnknownRedealSegmentIsInvalid(t *testing.T) {
	_, err := Decode("pl/N/E/h/N:10/NS:0:EW:0/h1/t2/zz:1")
	var invalid InvalidNotationError
	require.ErrorAs(t, err, &invalid)
}

func TestDecodeMalformedCardInRedealIsInvalid(t *testing.T) {
	_, err := Decode("pl/N/E/h/N:10/NS:0:EW:0/h1/t2/kc:S:xx")
	var invalid InvalidNotationError
	require.ErrorAs(t, err, &invalid)
}
