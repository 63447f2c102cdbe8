// Package rules implements the phase state machine (C5, spec §4.5): legal
// action enumeration, action application (producing a new state and the
// events that produced it), and game-over / winner queries. It is the
// only package allowed to produce GameState transitions from player
// intent; everything else either reads state (view, codec, fingerprint)
// or replays events that rules already validated (event.Replay).
package rules

import "github.com/pidro-game/engine/internal/card"

// Kind identifies the variant of an Action.
type Kind string

const (
	KindSelectDealer   Kind = "SelectDealer"
	KindBid            Kind = "Bid"
	KindPass           Kind = "Pass"
	KindDeclareTrump   Kind = "DeclareTrump"
	KindDiscard        Kind = "Discard"
	KindSelectHand     Kind = "SelectHand"
	KindPlayCard       Kind = "PlayCard"
	KindResign         Kind = "Resign"
	KindClaimRemaining Kind = "ClaimRemaining"
)

// Action is any of the nine player-submitted intents (spec §4.5).
type Action interface {
	Kind() Kind
}

// SelectDealer asks the engine to simulate the opening cut and assign a
// dealer (spec §4.5.1 step 1). Any seat may submit it while the game is
// in DealerSelection; it carries no data.
type SelectDealer struct{}

func (SelectDealer) Kind() Kind { return KindSelectDealer }

// Bid submits a numeric bid during Bidding.
type Bid struct {
	Amount int
}

func (Bid) Kind() Kind { return KindBid }

// Pass declines to bid during Bidding.
type Pass struct{}

func (Pass) Kind() Kind { return KindPass }

// DeclareTrump names the trump suit; legal only for the bid winner in
// Declaring.
type DeclareTrump struct {
	Suit card.Suit
}

func (DeclareTrump) Kind() Kind { return KindDeclareTrump }

// Discard is part of the closed action set (spec §4.5) but the Discarding
// phase is an unconditional auto-advance with no player precondition
// (spec §4.5.1 step 6): the engine removes every non-trump card from each
// non-dealer hand on its own. legal_actions never offers Discard and
// apply_action always rejects it with IllegalAction.
type Discard struct {
	Cards []card.Card
}

func (Discard) Kind() Kind { return KindDiscard }

// SelectHand is the dealer's rob-the-pack choice of exactly six cards to
// keep from their combined pool (spec §4.5.1 step 7).
type SelectHand struct {
	Cards []card.Card
}

func (SelectHand) Kind() Kind { return KindSelectHand }

// PlayCard plays a card from the acting seat's hand to the current trick.
type PlayCard struct {
	Card card.Card
}

func (PlayCard) Kind() Kind { return KindPlayCard }

// Resign forfeits the game; the opposing team wins immediately.
type Resign struct{}

func (Resign) Kind() Kind { return KindResign }

// ClaimRemaining asserts that the claiming seat's remaining hand wins
// every remaining trick against optimal defense. This implementation is
// conservative per spec §4.5.1: it always returns IllegalAction.
type ClaimRemaining struct{}

func (ClaimRemaining) Kind() Kind { return KindClaimRemaining }
