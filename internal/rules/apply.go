package rules

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/pidro-game/engine/internal/card"
	ev "github.com/pidro-game/engine/internal/event"
	"github.com/pidro-game/engine/internal/seat"
	"github.com/pidro-game/engine/internal/state"
)

// ApplyAction validates action for who against s, and if legal, applies
// it and every auto-advance it triggers in the same atomic step (spec
// §4.5.1, §5 "Suspension"). It returns the resulting state and the
// ordered events that produced it. rng drives the one place the engine
// needs randomness (the opening cut and the deal shuffle); the same rng
// state plus the same action sequence always produces the same state and
// event stream (spec §8.2 L5). now stamps every emitted event.
func ApplyAction(s state.GameState, rng *rand.Rand, now time.Time, who seat.Position, action Action) (state.GameState, []ev.Event, error) {
	if action.Kind() == KindResign {
		return applyResign(s, now, who)
	}
	if action.Kind() == KindDiscard || action.Kind() == KindClaimRemaining {
		// Discard has no phase where the engine waits for player input
		// (spec §4.5.1 step 6 is an unconditional auto-advance) and
		// ClaimRemaining is conservatively disabled (spec §4.5.1). Both
		// are permanently absent from legal_actions.
		return s, nil, fmt.Errorf("%w: %s is never offered", ErrIllegalAction, action.Kind())
	}

	switch s.Phase {
	case state.DealerSelection:
		return applySelectDealer(s, rng, now, who, action)
	case state.Bidding:
		return applyBid(s, now, who, action)
	case state.Declaring:
		return applyDeclareTrump(s, rng, now, who, action)
	case state.SecondDeal:
		return applySelectHand(s, now, who, action)
	case state.Playing:
		return applyPlayCard(s, now, who, action)
	default:
		return s, nil, fmt.Errorf("%w: no actions accepted in %s", ErrWrongPhase, s.Phase)
	}
}

// mustApply applies e to s via event.ApplyEvent, panicking if it fails.
// Every call site here constructs e to match exactly what ApplyEvent
// expects; a failure indicates an invariant violation inside this
// package, not a rule violation from the caller (spec §7 "invariant
// violations ... fatal for the session").
func mustApply(s state.GameState, e ev.Event) state.GameState {
	ns, err := ev.ApplyEvent(s, e)
	if err != nil {
		panic(fmt.Sprintf("rules: internal invariant violated applying %s: %v", e.Kind(), err))
	}
	return ns
}

func applyResign(s state.GameState, now time.Time, who seat.Position) (state.GameState, []ev.Event, error) {
	if s.Phase == state.Complete {
		return s, nil, fmt.Errorf("%w: game already complete", ErrIllegalAction)
	}
	winner := seat.TeamOf(who).Opponent()
	e := ev.NewGameWon(now, winner, s.Scores[winner])
	return mustApply(s, e), []ev.Event{e}, nil
}

// applySelectDealer implements spec §4.5.1 steps 1-2: simulate the cut,
// assign a dealer, then immediately shuffle and deal (the Dealing phase
// never pauses for input).
func applySelectDealer(s state.GameState, rng *rand.Rand, now time.Time, who seat.Position, action Action) (state.GameState, []ev.Event, error) {
	if _, ok := action.(SelectDealer); !ok {
		return s, nil, fmt.Errorf("%w: %s not accepted in %s", ErrWrongPhase, action.Kind(), s.Phase)
	}

	cutDeck := card.NewShuffledDeck(rng)
	cutCard := cutDeck.Cards()[0]
	dealer := seat.All[rng.IntN(4)]

	events := []ev.Event{ev.NewDealerSelected(now, dealer, cutCard)}
	s = mustApply(s, events[0])

	deck := card.NewShuffledDeck(rng)
	hands := make(map[seat.Position][]card.Card, 4)
	for _, p := range seat.All {
		var batch []card.Card
		batch, deck = deck.DealBatch(s.Config.InitialDealCount)
		hands[p] = batch
	}
	dealtEvt := ev.NewCardsDealt(now, hands, deck.Cards())
	s = mustApply(s, dealtEvt)
	events = append(events, dealtEvt)

	return s, events, nil
}

// applyBid implements spec §4.5.1 steps 3-4.
func applyBid(s state.GameState, now time.Time, who seat.Position, action Action) (state.GameState, []ev.Event, error) {
	if who != s.CurrentTurn {
		return s, nil, fmt.Errorf("%w: it is %s's turn", ErrNotYourTurn, s.CurrentTurn)
	}
	forced := isDealer(s, who) && othersAllPassed(s)

	var events []ev.Event
	switch act := action.(type) {
	case Bid:
		lo := minLegalBid(s)
		if forced && act.Amount != lo {
			return s, nil, fmt.Errorf("%w: dealer must bid the forced minimum %d", ErrInvalidBid, lo)
		}
		if !forced && (act.Amount < lo || act.Amount > s.Config.MaxBid) {
			return s, nil, fmt.Errorf("%w: %d must be in %d..%d", ErrInvalidBid, act.Amount, lo, s.Config.MaxBid)
		}
		e := ev.NewBidMade(now, who, act.Amount)
		s = mustApply(s, e)
		events = append(events, e)
	case Pass:
		if forced {
			return s, nil, fmt.Errorf("%w: dealer cannot pass once the other three have passed", ErrIllegalAction)
		}
		e := ev.NewPlayerPassed(now, who)
		s = mustApply(s, e)
		events = append(events, e)
	default:
		return s, nil, fmt.Errorf("%w: %s not legal in Bidding", ErrIllegalAction, action.Kind())
	}

	if biddingDone, winner, amount := biddingComplete(s); biddingDone {
		e := ev.NewBiddingComplete(now, winner, amount)
		s = mustApply(s, e)
		events = append(events, e)
	}
	return s, events, nil
}

// biddingComplete reports whether every active seat has acted this hand
// and exactly one holds the highest bid (spec §4.5.1 step 4).
func biddingComplete(s state.GameState) (done bool, winner seat.Position, amount int) {
	acted := make(map[seat.Position]bool, 4)
	for _, b := range s.Bids {
		acted[b.Position] = true
	}
	for _, p := range seat.All {
		if !acted[p] {
			return false, seat.None, 0
		}
	}
	if s.HighestBid == nil {
		return false, seat.None, 0
	}
	return true, s.HighestBid.Position, s.HighestBid.Amount
}

// applyDeclareTrump implements spec §4.5.1 steps 5-7 up to (but not
// including) the dealer's rob-the-pack choice: trump declaration cascades
// through the automatic non-dealer discard and the automatic replenishing
// deal, then pauses with current_turn on the dealer awaiting SelectHand.
func applyDeclareTrump(s state.GameState, rng *rand.Rand, now time.Time, who seat.Position, action Action) (state.GameState, []ev.Event, error) {
	if s.HighestBid == nil || who != s.HighestBid.Position {
		return s, nil, fmt.Errorf("%w: only %s may declare trump", ErrBidderRequired, safePos(s.HighestBid))
	}
	decl, ok := action.(DeclareTrump)
	if !ok {
		return s, nil, fmt.Errorf("%w: %s not legal in Declaring", ErrIllegalAction, action.Kind())
	}
	if !validSuit(decl.Suit) {
		return s, nil, fmt.Errorf("%w: %v is not a suit", ErrIllegalAction, decl.Suit)
	}

	var events []ev.Event
	e := ev.NewTrumpDeclared(now, decl.Suit)
	s = mustApply(s, e)
	events = append(events, e)

	// Step 6: each non-dealer seat's non-trump cards are auto-discarded.
	for _, p := range seat.All {
		if p == s.Dealer {
			continue
		}
		hand := s.Players[p].Hand
		var nonTrump []card.Card
		for _, c := range hand {
			if !c.IsTrump(decl.Suit) {
				nonTrump = append(nonTrump, c)
			}
		}
		if len(nonTrump) == 0 {
			continue
		}
		de := ev.NewCardsDiscarded(now, p, nonTrump)
		s = mustApply(s, de)
		events = append(events, de)
	}

	// Step 7 (part 1): replenish non-dealer seats up to final_hand_size.
	dealt := make(map[seat.Position][]card.Card)
	deck := s.Deck
	for _, p := range seat.All {
		if p == s.Dealer {
			continue
		}
		need := s.Config.FinalHandSize - len(s.Players[p].Hand)
		if need <= 0 {
			continue
		}
		var batch []card.Card
		batch, deck = deck.DealBatch(need)
		if len(batch) > 0 {
			dealt[p] = batch
		}
	}
	se := ev.NewSecondDealComplete(now, dealt)
	s = mustApply(s, se)
	events = append(events, se)

	s = s.WithTurn(s.Dealer)
	return s, events, nil
}

func validSuit(s card.Suit) bool {
	for _, c := range card.Suits {
		if s == c {
			return true
		}
	}
	return false
}

func safePos(b *state.Bid) seat.Position {
	if b == nil {
		return seat.None
	}
	return b.Position
}

// applySelectHand implements the rest of spec §4.5.1 step 7: the dealer's
// rob-the-pack choice.
func applySelectHand(s state.GameState, now time.Time, who seat.Position, action Action) (state.GameState, []ev.Event, error) {
	if who != s.Dealer {
		return s, nil, fmt.Errorf("%w: only the dealer robs the pack", ErrIllegalAction)
	}
	sel, ok := action.(SelectHand)
	if !ok {
		return s, nil, fmt.Errorf("%w: %s not legal in SecondDeal", ErrIllegalAction, action.Kind())
	}
	if len(sel.Cards) != s.Config.FinalHandSize {
		return s, nil, fmt.Errorf("%w: must keep exactly %d cards, got %d", ErrHandSizeViolation, s.Config.FinalHandSize, len(sel.Cards))
	}

	pool := s.DealerPool
	poolCount := make(map[card.Card]int, len(pool))
	for _, c := range pool {
		poolCount[c]++
	}
	for _, c := range sel.Cards {
		if poolCount[c] <= 0 {
			return s, nil, fmt.Errorf("%w: %s is not in the dealer's pool", ErrInvalidCard, c)
		}
		poolCount[c]--
	}

	e := ev.NewDealerRobbedPack(now, who, pool, sel.Cards)
	s = mustApply(s, e)
	return s, []ev.Event{e}, nil
}

// applyPlayCard implements spec §4.5.1 steps 8-10: a single card play,
// trick resolution, elimination, hand end detection, scoring, and the
// next-hand or game-over cascade.
func applyPlayCard(s state.GameState, now time.Time, who seat.Position, action Action) (state.GameState, []ev.Event, error) {
	if who != s.CurrentTurn {
		return s, nil, fmt.Errorf("%w: it is %s's turn", ErrNotYourTurn, s.CurrentTurn)
	}
	pc, ok := action.(PlayCard)
	if !ok {
		return s, nil, fmt.Errorf("%w: %s not legal in Playing", ErrIllegalAction, action.Kind())
	}
	if !s.Players[who].HasCard(pc.Card) {
		return s, nil, fmt.Errorf("%w: %s not in %s's hand", ErrInvalidCard, pc.Card, who)
	}
	if !pc.Card.IsTrump(s.TrumpSuit) {
		return s, nil, fmt.Errorf("%w: %s is not trump", ErrInvalidCard, pc.Card)
	}

	var events []ev.Event
	e := ev.NewCardPlayed(now, who, pc.Card)
	s = mustApply(s, e)
	events = append(events, e)

	wentCold := s.Players[who].TrumpCount(s.TrumpSuit) == 0 && moreTricksRemain(s, who)
	if wentCold {
		ce := ev.NewPlayerWentCold(now, who, s.Players[who].Hand)
		s = mustApply(s, ce)
		events = append(events, ce)
	}
	s = s.WithTurn(s.NextActiveSeat(who))

	if trickSatisfied(s) {
		tr := *s.CurrentTrick
		winner, err := tr.Winner(s.TrumpSuit)
		if err != nil {
			panic(fmt.Sprintf("rules: internal invariant violated resolving trick: %v", err))
		}
		points := tr.Points(s.TrumpSuit)
		we := ev.NewTrickWon(now, winner, points)
		s = mustApply(s, we)
		events = append(events, we)

		if twoPos, ok := tr.TwoOfTrumpPlayer(s.TrumpSuit); ok {
			s = s.AddHandPoints(seat.TeamOf(twoPos), 1)
		}

		// The new leader must still hold trump; a winner who went cold
		// on their own winning card cannot lead, so pass to the next
		// active seat instead.
		if s.Players[s.CurrentTurn].Eliminated {
			s = s.WithTurn(s.NextActiveSeat(s.CurrentTurn))
		}
	}

	if s.Phase == state.Playing && !anyActiveHasTrump(s) {
		scoringEvents := scoreHand(&s, now)
		events = append(events, scoringEvents...)
	}

	return s, events, nil
}

// moreTricksRemain reports whether any seat other than who, among those
// active for the trick in progress, still holds trump after who's play —
// used to decide whether who goes cold now or the hand is simply ending.
func moreTricksRemain(s state.GameState, who seat.Position) bool {
	for _, p := range seat.All {
		if p == who || s.Players[p].Eliminated {
			continue
		}
		if s.Players[p].TrumpCount(s.TrumpSuit) > 0 {
			return true
		}
	}
	return false
}

// trickSatisfied reports whether every currently active seat has a play
// recorded in the current trick — the "still-active seat" completion
// condition of spec §4.5.1 step 8. A seat that goes cold mid-trick already
// contributed its play before going cold, so it is never the reason a
// trick waits; only seats that have yet to play hold it open. Comparing
// play counts directly would undercount once more than one seat goes cold
// within the same trick, since the active-seat count keeps shrinking as
// each of them is eliminated in turn.
func trickSatisfied(s state.GameState) bool {
	if s.CurrentTrick == nil {
		return false
	}
	played := make(map[seat.Position]bool, len(s.CurrentTrick.Plays))
	for _, p := range s.CurrentTrick.Plays {
		played[p.Position] = true
	}
	for _, p := range s.ActivePlayers() {
		if !played[p] {
			return false
		}
	}
	return true
}

func anyActiveHasTrump(s state.GameState) bool {
	for _, p := range s.ActivePlayers() {
		if s.Players[p].TrumpCount(s.TrumpSuit) > 0 {
			return true
		}
	}
	return false
}
