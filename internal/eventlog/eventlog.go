// Package eventlog serializes an event.Event sequence to and from JSON,
// the wire format the teacher already uses for its own message envelopes
// (internal/server/message.go). It exists purely so the CLI harness's
// replay/inspect subcommands can read a saved hand back and fold it
// through event.Replay (spec §8.2 L3) — it is not C4 itself, just JSON
// plumbing around it.
package eventlog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pidro-game/engine/internal/card"
	"github.com/pidro-game/engine/internal/event"
	"github.com/pidro-game/engine/internal/seat"
)

// entry is the on-the-wire shape of one event.Event: a kind tag plus
// every field any variant might need, all optional. This mirrors the
// teacher's own envelope-with-a-type-tag messages in message.go rather
// than inventing per-kind JSON schemas.
type entry struct {
	Kind      event.Kind         `json:"kind"`
	Timestamp time.Time          `json:"timestamp"`
	Position  seat.Position      `json:"position,omitempty"`
	Team      seat.Team          `json:"team,omitempty"`
	Amount    int                `json:"amount,omitempty"`
	Points    int                `json:"points,omitempty"`
	FinalScore int               `json:"final_score,omitempty"`
	Suit      card.Suit          `json:"suit,omitempty"`
	Card      *card.Card         `json:"card,omitempty"`
	Cards     []card.Card        `json:"cards,omitempty"`
	Received  []card.Card        `json:"received,omitempty"`
	Kept      []card.Card        `json:"kept,omitempty"`
	Revealed  []card.Card        `json:"revealed,omitempty"`
	Winner    seat.Position      `json:"winner,omitempty"`
	CutCard   *card.Card         `json:"cut_card,omitempty"`
	Hands     map[string][]card.Card `json:"hands,omitempty"`
	Remaining []card.Card        `json:"remaining,omitempty"`
	Dealt     map[string][]card.Card `json:"dealt,omitempty"`
}

// Encode marshals events to indented JSON, oldest first.
func Encode(events []event.Event) ([]byte, error) {
	entries := make([]entry, len(events))
	for i, e := range events {
		entries[i] = toEntry(e)
	}
	return json.MarshalIndent(entries, "", "  ")
}

// Decode unmarshals a JSON event log back into event.Event values.
func Decode(data []byte) ([]event.Event, error) {
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("eventlog: decode: %w", err)
	}
	events := make([]event.Event, len(entries))
	for i, e := range entries {
		ev, err := e.toEvent()
		if err != nil {
			return nil, fmt.Errorf("eventlog: entry %d: %w", i, err)
		}
		events[i] = ev
	}
	return events, nil
}

func toEntry(e event.Event) entry {
	out := entry{Kind: e.Kind(), Timestamp: e.At()}
	switch e := e.(type) {
	case event.DealerSelected:
		out.Position = e.Position
		out.CutCard = &e.CutCard
	case event.CardsDealt:
		out.Hands = seatKeyed(e.Hands)
		out.Remaining = e.Remaining
	case event.BidMade:
		out.Position = e.Position
		out.Amount = e.Amount
	case event.PlayerPassed:
		out.Position = e.Position
	case event.BiddingComplete:
		out.Position = e.Position
		out.Amount = e.Amount
	case event.TrumpDeclared:
		out.Suit = e.Suit
	case event.CardsDiscarded:
		out.Position = e.Position
		out.Cards = e.Cards
	case event.SecondDealComplete:
		out.Dealt = seatKeyed(e.Dealt)
	case event.DealerRobbedPack:
		out.Position = e.Position
		out.Received = e.Received
		out.Kept = e.Kept
	case event.CardPlayed:
		out.Position = e.Position
		out.Card = &e.Card
	case event.TrickWon:
		out.Winner = e.Winner
		out.Points = e.Points
	case event.PlayerWentCold:
		out.Position = e.Position
		out.Revealed = e.Revealed
	case event.HandScored:
		out.Team = e.Team
		out.Points = e.Points
	case event.GameWon:
		out.Team = e.Team
		out.FinalScore = e.FinalScore
	}
	return out
}

func (e entry) toEvent() (event.Event, error) {
	switch e.Kind {
	case event.KindDealerSelected:
		if e.CutCard == nil {
			return nil, fmt.Errorf("DealerSelected missing cut_card")
		}
		return event.NewDealerSelected(e.Timestamp, e.Position, *e.CutCard), nil
	case event.KindCardsDealt:
		return event.NewCardsDealt(e.Timestamp, positionKeyed(e.Hands), e.Remaining), nil
	case event.KindBidMade:
		return event.NewBidMade(e.Timestamp, e.Position, e.Amount), nil
	case event.KindPlayerPassed:
		return event.NewPlayerPassed(e.Timestamp, e.Position), nil
	case event.KindBiddingComplete:
		return event.NewBiddingComplete(e.Timestamp, e.Position, e.Amount), nil
	case event.KindTrumpDeclared:
		return event.NewTrumpDeclared(e.Timestamp, e.Suit), nil
	case event.KindCardsDiscarded:
		return event.NewCardsDiscarded(e.Timestamp, e.Position, e.Cards), nil
	case event.KindSecondDealComplete:
		return event.NewSecondDealComplete(e.Timestamp, positionKeyed(e.Dealt)), nil
	case event.KindDealerRobbedPack:
		return event.NewDealerRobbedPack(e.Timestamp, e.Position, e.Received, e.Kept), nil
	case event.KindCardPlayed:
		if e.Card == nil {
			return nil, fmt.Errorf("CardPlayed missing card")
		}
		return event.NewCardPlayed(e.Timestamp, e.Position, *e.Card), nil
	case event.KindTrickWon:
		return event.NewTrickWon(e.Timestamp, e.Winner, e.Points), nil
	case event.KindPlayerWentCold:
		return event.NewPlayerWentCold(e.Timestamp, e.Position, e.Revealed), nil
	case event.KindHandScored:
		return event.NewHandScored(e.Timestamp, e.Team, e.Points), nil
	case event.KindGameWon:
		return event.NewGameWon(e.Timestamp, e.Team, e.FinalScore), nil
	default:
		return nil, fmt.Errorf("unknown event kind %q", e.Kind)
	}
}

func seatKeyed(hands map[seat.Position][]card.Card) map[string][]card.Card {
	out := make(map[string][]card.Card, len(hands))
	for p, cards := range hands {
		out[p.String()] = cards
	}
	return out
}

func positionKeyed(hands map[string][]card.Card) map[seat.Position][]card.Card {
	out := make(map[seat.Position][]card.Card, len(hands))
	for s, cards := range hands {
		out[parseSeatLetter(s)] = cards
	}
	return out
}

func parseSeatLetter(s string) seat.Position {
	for _, p := range seat.All {
		if p.String() == s {
			return p
		}
	}
	return seat.None
}
