package rules

import (
	"github.com/pidro-game/engine/internal/card"
	"github.com/pidro-game/engine/internal/seat"
	"github.com/pidro-game/engine/internal/state"
)

// LegalActions enumerates every action the given seat may legally submit
// right now (spec §4.5). Combinatorial actions are enumerated when the
// set is small (Bid, PlayCard); SelectHand's legal payloads are a
// 6-of-N choice over the dealer's rob pool, far too large to enumerate,
// so a single zero-value SelectHand{} is returned as a symbolic marker
// that the dealer is expected to submit one — apply_action validates the
// actual cards chosen.
func LegalActions(s state.GameState, who seat.Position) []Action {
	var actions []Action

	if s.Phase != state.Complete && !s.Players[who].Eliminated {
		actions = append(actions, Resign{})
	}

	switch s.Phase {
	case state.DealerSelection:
		actions = append(actions, SelectDealer{})
		return actions

	case state.Bidding:
		if who != s.CurrentTurn {
			return actions
		}
		forced := isDealer(s, who) && othersAllPassed(s)
		if forced {
			return append(actions, Bid{Amount: minLegalBid(s)})
		}
		for n := minLegalBid(s); n <= s.Config.MaxBid; n++ {
			actions = append(actions, Bid{Amount: n})
		}
		actions = append(actions, Pass{})
		return actions

	case state.Declaring:
		if s.HighestBid == nil || who != s.HighestBid.Position || who != s.CurrentTurn {
			return actions
		}
		for _, suit := range card.Suits {
			actions = append(actions, DeclareTrump{Suit: suit})
		}
		return actions

	case state.SecondDeal:
		if who != s.Dealer || who != s.CurrentTurn {
			return actions
		}
		return append(actions, SelectHand{})

	case state.Playing:
		if who != s.CurrentTurn || s.Players[who].Eliminated {
			return actions
		}
		seen := make(map[card.Card]bool)
		for _, c := range s.Players[who].Hand {
			if c.IsTrump(s.TrumpSuit) && !seen[c] {
				seen[c] = true
				actions = append(actions, PlayCard{Card: c})
			}
		}
		return actions

	default:
		return actions
	}
}

func isDealer(s state.GameState, who seat.Position) bool {
	return s.Dealer == who
}

// othersAllPassed reports whether the three non-dealer seats have each
// recorded a pass for the current hand's bidding (spec §4.5.1 step 3).
func othersAllPassed(s state.GameState) bool {
	passed := make(map[seat.Position]bool, 3)
	for _, b := range s.Bids {
		if b.Position != s.Dealer && b.Passed {
			passed[b.Position] = true
		}
		if b.Position != s.Dealer && !b.Passed {
			// A non-dealer bid means the dealer is not forced.
			return false
		}
	}
	for _, p := range seat.All {
		if p == s.Dealer {
			continue
		}
		if !passed[p] {
			return false
		}
	}
	return true
}

// minLegalBid returns the lowest legal bid given prior bids this hand: one
// more than the highest numeric bid so far, or min_bid if there is none
// (spec §4.5.1 step 3).
func minLegalBid(s state.GameState) int {
	floor := s.Config.MinBid - 1
	for _, b := range s.Bids {
		if !b.Passed && b.Amount > floor {
			floor = b.Amount
		}
	}
	return floor + 1
}
