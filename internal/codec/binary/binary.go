// Package binary implements the bit-exact state codec (spec §4.6, C6): a
// dense, lossy-by-design snapshot of GameState meant for wire transport and
// storage, not for full replay. Fields the layout omits (event history,
// cache, winner) come back at their zero value from Decode; config comes
// back as state.DefaultConfig().
package binary

import (
	"errors"

	"github.com/pidro-game/engine/internal/card"
	"github.com/pidro-game/engine/internal/seat"
	"github.com/pidro-game/engine/internal/state"
)

// ErrInvalidBinary is returned by Decode for a truncated buffer or any
// out-of-range enum field (spec §4.6).
var ErrInvalidBinary = errors.New("binary: invalid or truncated state buffer")

// Encode packs s into its bit-exact binary form (spec §4.6).
func Encode(s state.GameState) []byte {
	w := &bitWriter{}
	w.writeBits(uint64(s.Phase), 4)
	w.writeBits(uint64(s.HandNumber), 8)
	w.writeBits(uint64(s.Dealer), 3)
	w.writeBits(uint64(s.CurrentTurn), 3)
	w.writeBits(uint64(s.TrumpSuit), 3)

	if s.HighestBid != nil {
		w.writeBits(1, 1)
		w.writeBits(uint64(s.HighestBid.Position), 3)
		w.writeBits(uint64(s.HighestBid.Amount), 4)
	} else {
		w.writeBits(0, 1)
	}

	for _, p := range seat.All {
		pl := s.Players[p]
		w.writeBits(boolBit(pl.Eliminated), 1)
		writeHand(w, pl.Hand)
	}

	writeHand(w, s.Deck.Cards())

	w.writeBits(uint64(uint16(int16(s.Scores[seat.NorthSouth]))), 16)
	w.writeBits(uint64(uint16(int16(s.Scores[seat.EastWest]))), 16)

	return w.bytes()
}

// Decode is the exact inverse of Encode. Fields the layout does not carry
// (bids log, dealer pool, second-deal record, discards, tricks, hand
// points, winner) come back at their GameState zero value and config comes
// back as state.DefaultConfig(); the
// decoder does not attempt to infer them beyond BiddingTeam, which is
// re-derived from the decoded highest bid since both describe the same
// fact.
func Decode(data []byte) (state.GameState, error) {
	r := &bitReader{buf: data}

	phaseVal, err := r.readBits(4)
	if err != nil {
		return state.GameState{}, err
	}
	if phaseVal > uint64(state.Complete) {
		return state.GameState{}, ErrInvalidBinary
	}

	handNumber, err := r.readBits(8)
	if err != nil {
		return state.GameState{}, err
	}

	dealer, err := readPosition(r)
	if err != nil {
		return state.GameState{}, err
	}
	turn, err := readPosition(r)
	if err != nil {
		return state.GameState{}, err
	}
	trump, err := readTrumpSuit(r)
	if err != nil {
		return state.GameState{}, err
	}

	hasBid, err := r.readBits(1)
	if err != nil {
		return state.GameState{}, err
	}
	var highestBid *state.Bid
	biddingTeam := seat.NoTeam
	if hasBid == 1 {
		bidPos, err := readPosition(r)
		if err != nil {
			return state.GameState{}, err
		}
		if !bidPos.Valid() {
			return state.GameState{}, ErrInvalidBinary
		}
		amount, err := r.readBits(4)
		if err != nil {
			return state.GameState{}, err
		}
		highestBid = &state.Bid{Position: bidPos, Amount: int(amount)}
		biddingTeam = seat.TeamOf(bidPos)
	}

	players := make(map[seat.Position]state.Player, 4)
	for _, p := range seat.All {
		elimBit, err := r.readBits(1)
		if err != nil {
			return state.GameState{}, err
		}
		hand, err := readHand(r)
		if err != nil {
			return state.GameState{}, err
		}
		players[p] = state.Player{
			Position:   p,
			Hand:       hand,
			Eliminated: elimBit == 1,
		}
	}

	deck, err := readHand(r)
	if err != nil {
		return state.GameState{}, err
	}

	nsRaw, err := r.readBits(16)
	if err != nil {
		return state.GameState{}, err
	}
	ewRaw, err := r.readBits(16)
	if err != nil {
		return state.GameState{}, err
	}

	cfg := state.DefaultConfig()
	return state.GameState{
		Config:      cfg,
		Phase:       state.Phase(phaseVal),
		HandNumber:  int(handNumber),
		Dealer:      dealer,
		CurrentTurn: turn,
		Deck:        card.NewDeckFrom(deck),
		Players:     players,
		HighestBid:  highestBid,
		BiddingTeam: biddingTeam,
		TrumpSuit:   trump,
		HandPoints:  map[seat.Team]int{seat.NorthSouth: 0, seat.EastWest: 0},
		Scores: map[seat.Team]int{
			seat.NorthSouth: int(int16(nsRaw)),
			seat.EastWest:   int(int16(ewRaw)),
		},
		Winner: seat.NoTeam,
	}, nil
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func readPosition(r *bitReader) (seat.Position, error) {
	v, err := r.readBits(3)
	if err != nil {
		return seat.None, err
	}
	if v > uint64(seat.West) {
		return seat.None, ErrInvalidBinary
	}
	return seat.Position(v), nil
}

func readTrumpSuit(r *bitReader) (card.Suit, error) {
	v, err := r.readBits(3)
	if err != nil {
		return card.NoSuit, err
	}
	if v > uint64(card.Spades) {
		return card.NoSuit, ErrInvalidBinary
	}
	return card.Suit(v), nil
}

// writeHand appends an 8-bit count followed by one 6-bit card per entry
// (spec §4.6).
func writeHand(w *bitWriter, cards []card.Card) {
	w.writeBits(uint64(len(cards)), 8)
	for _, c := range cards {
		w.writeBits(uint64(c.Rank-card.Two), 4)
		w.writeBits(uint64(cardSuitCode(c.Suit)), 2)
	}
}

func readHand(r *bitReader) ([]card.Card, error) {
	count, err := r.readBits(8)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	cards := make([]card.Card, 0, count)
	for i := uint64(0); i < count; i++ {
		rankBits, err := r.readBits(4)
		if err != nil {
			return nil, err
		}
		if rankBits > uint64(card.Ace-card.Two) {
			return nil, ErrInvalidBinary
		}
		suitBits, err := r.readBits(2)
		if err != nil {
			return nil, err
		}
		suit := cardSuitFromCode(int(suitBits))
		c, err := card.New(card.Two+card.Rank(rankBits), suit)
		if err != nil {
			return nil, ErrInvalidBinary
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// cardSuitCode maps a suit to its 2-bit per-card encoding, distinct from
// the suit's ordinal used elsewhere (H=0,D=1,C=2,S=3; no nil slot, spec
// §6.3).
func cardSuitCode(s card.Suit) int {
	switch s {
	case card.Hearts:
		return 0
	case card.Diamonds:
		return 1
	case card.Clubs:
		return 2
	case card.Spades:
		return 3
	default:
		return 0
	}
}

func cardSuitFromCode(c int) card.Suit {
	switch c {
	case 0:
		return card.Hearts
	case 1:
		return card.Diamonds
	case 2:
		return card.Clubs
	case 3:
		return card.Spades
	default:
		return card.NoSuit
	}
}
