// Package handhistory renders event.Event values as human-readable hand
// history lines, the way the teacher's internal/game/event_formatter.go
// turns PlayerActionEvent/HandEndEvent values into prose for its hand
// history log. It is a pure formatter over C4's event stream — not a new
// source of truth — so the CLI's replay/inspect subcommands and any
// future transport can share one rendering.
package handhistory

import (
	"fmt"
	"strings"

	"github.com/pidro-game/engine/internal/card"
	"github.com/pidro-game/engine/internal/event"
)

// Format renders a single event as one line of hand history text.
func Format(e event.Event) string {
	switch e := e.(type) {
	case event.DealerSelected:
		return fmt.Sprintf("%s cuts %s and deals", e.Position, e.CutCard)
	case event.CardsDealt:
		perSeat := 0
		for _, hand := range e.Hands {
			perSeat = max(perSeat, len(hand))
		}
		return fmt.Sprintf("deals %d cards to each seat", perSeat)
	case event.BidMade:
		return fmt.Sprintf("%s bids %d", e.Position, e.Amount)
	case event.PlayerPassed:
		return fmt.Sprintf("%s passes", e.Position)
	case event.BiddingComplete:
		return fmt.Sprintf("bidding ends: %s wins the bid at %d", e.Position, e.Amount)
	case event.TrumpDeclared:
		return fmt.Sprintf("trump declared: %s", e.Suit)
	case event.CardsDiscarded:
		return fmt.Sprintf("%s discards %s", e.Position, formatCards(e.Cards))
	case event.SecondDealComplete:
		return fmt.Sprintf("second deal completes for %d seats", len(e.Dealt))
	case event.DealerRobbedPack:
		return fmt.Sprintf("%s robs the pack, keeps %s", e.Position, formatCards(e.Kept))
	case event.CardPlayed:
		return fmt.Sprintf("%s plays %s", e.Position, e.Card)
	case event.TrickWon:
		return fmt.Sprintf("%s wins the trick (%d points)", e.Winner, e.Points)
	case event.PlayerWentCold:
		return fmt.Sprintf("%s goes cold, reveals %s", e.Position, formatCards(e.Revealed))
	case event.HandScored:
		return fmt.Sprintf("%s scores %d", e.Team, e.Points)
	case event.GameWon:
		return fmt.Sprintf("%s wins the game with %d points", e.Team, e.FinalScore)
	default:
		return fmt.Sprintf("%s", e.Kind())
	}
}

// FormatAll renders a full event log, one line per event, in order.
func FormatAll(events []event.Event) []string {
	lines := make([]string, len(events))
	for i, e := range events {
		lines[i] = Format(e)
	}
	return lines
}

func formatCards(cards []card.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
