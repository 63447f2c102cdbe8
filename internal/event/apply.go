package event

import (
	"fmt"

	"github.com/pidro-game/engine/internal/card"
	"github.com/pidro-game/engine/internal/seat"
	"github.com/pidro-game/engine/internal/state"
	"github.com/pidro-game/engine/internal/trick"
)

// ErrUnknownEvent is returned by ApplyEvent when it is handed a variant it
// does not recognize. Since Event is a closed sum type defined entirely
// within this package, this can only happen if a caller fabricates an
// Event from another package.
type ErrUnknownEvent struct {
	Kind Kind
}

func (e ErrUnknownEvent) Error() string {
	return fmt.Sprintf("event: unknown event kind %q", e.Kind)
}

// ApplyEvent is a pure, total function: every event variant updates
// exactly the GameState fields documented for it in spec §4.5. It never
// validates a transition — that already happened when the rules engine
// produced this event from an action. ApplyEvent's only job is to make
// Replay possible.
func ApplyEvent(s state.GameState, evt Event) (state.GameState, error) {
	switch e := evt.(type) {
	case DealerSelected:
		return s.WithDealer(e.Position).WithPhase(state.Dealing), nil

	case CardsDealt:
		for pos, hand := range e.Hands {
			s = s.WithPlayer(s.Players[pos].WithHand(hand))
		}
		s = s.WithDeck(card.NewDeckFrom(e.Remaining))
		s = s.WithTurn(s.Dealer.Next())
		return s.WithPhase(state.Bidding), nil

	case BidMade:
		s = s.WithBid(state.Bid{Position: e.Position, Amount: e.Amount, Timestamp: e.At()})
		return s.WithTurn(s.NextActiveSeat(e.Position)), nil

	case PlayerPassed:
		s = s.WithBid(state.Bid{Position: e.Position, Passed: true, Timestamp: e.At()})
		return s.WithTurn(s.NextActiveSeat(e.Position)), nil

	case BiddingComplete:
		return s.WithPhase(state.Declaring).WithTurn(e.Position), nil

	case TrumpDeclared:
		return s.WithTrump(e.Suit).WithPhase(state.Discarding), nil

	case CardsDiscarded:
		s = s.WithPlayer(s.Players[e.Position].WithoutCards(e.Cards...))
		return s.WithDiscards(e.Position, e.Cards), nil

	case SecondDealComplete:
		var dealt []card.Card
		for pos, cards := range e.Dealt {
			s = s.WithPlayer(s.Players[pos].WithAddedCards(cards...))
			dealt = append(dealt, cards...)
		}
		s = s.WithDeck(s.Deck.Without(dealt...))
		pool := append(append([]card.Card{}, s.Players[s.Dealer].Hand...), s.Deck.Cards()...)
		s = s.WithDealerPool(pool)
		return s.WithSecondDeal(&state.SecondDealRecord{
			CardsReceived: countsByPosition(e.Dealt),
		}).WithPhase(state.SecondDeal), nil

	case DealerRobbedPack:
		s = s.WithPlayer(s.Players[e.Position].WithHand(e.Kept))
		s = s.WithDiscards(e.Position, rejected(e.Received, e.Kept))
		s = s.WithDeck(card.Deck{})
		s = s.WithDealerPool(nil)
		rec := s.SecondDeal.Clone()
		if rec == nil {
			rec = &state.SecondDealRecord{CardsReceived: map[seat.Position]int{}}
		}
		rec.DealerPoolSize = len(e.Received)
		s = s.WithSecondDeal(rec)
		s = s.WithPhase(state.Playing)
		return s.WithTurn(s.NextActiveSeat(s.Dealer)), nil

	case CardPlayed:
		s = s.WithPlayer(s.Players[e.Position].WithoutCards(e.Card))
		cur := s.CurrentTrick
		if cur == nil {
			t := trick.New(e.Position)
			cur = &t
		}
		played := cur.AddPlay(e.Position, e.Card)
		return s.WithCurrentTrick(&played), nil

	case PlayerWentCold:
		p := s.Players[e.Position]
		p.Eliminated = true
		p.RevealedCards = e.Revealed
		return s.WithPlayer(p), nil

	case TrickWon:
		if s.CurrentTrick != nil {
			s = s.WithTrickFiled(*s.CurrentTrick)
		}
		winner := s.Players[e.Winner]
		winner.TricksWon++
		s = s.WithPlayer(winner)
		s = s.AddHandPoints(winner.Team, e.Points)
		return s.WithTurn(e.Winner), nil

	case HandScored:
		return s.AddScore(e.Team, e.Points), nil

	case GameWon:
		return s.WithWinner(e.Team).WithPhase(state.Complete), nil

	default:
		return s, ErrUnknownEvent{Kind: evt.Kind()}
	}
}

// Replay left-folds ApplyEvent over events starting from initial,
// reproducing whatever state originally emitted that sequence (spec
// §4.4, §8.2 L3).
func Replay(initial state.GameState, events []Event) (state.GameState, error) {
	s := initial
	for i, e := range events {
		var err error
		s, err = ApplyEvent(s, e)
		if err != nil {
			return s, fmt.Errorf("event: replay failed at index %d: %w", i, err)
		}
	}
	return s, nil
}

func countsByPosition(dealt map[seat.Position][]card.Card) map[seat.Position]int {
	out := make(map[seat.Position]int, len(dealt))
	for pos, cards := range dealt {
		out[pos] = len(cards)
	}
	return out
}

// rejected returns the cards in pool that are not among kept, i.e. the
// dealer's rob-pool cards that were discarded (spec §4.5.1 step 7).
func rejected(pool, kept []card.Card) []card.Card {
	keep := make(map[card.Card]int, len(kept))
	for _, c := range kept {
		keep[c]++
	}
	var out []card.Card
	for _, c := range pool {
		if keep[c] > 0 {
			keep[c]--
			continue
		}
		out = append(out, c)
	}
	return out
}
