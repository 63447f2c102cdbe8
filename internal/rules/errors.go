package rules

import "errors"

// Sentinel errors for the seven rule-violation kinds apply_action can
// report (spec §4.5.4, §7). Each is wrapped with contextual detail via
// fmt.Errorf("%w: ...", Err...) at the call site, so callers can still
// errors.Is against the bare sentinel.
var (
	ErrNotYourTurn       = errors.New("rules: not your turn")
	ErrIllegalAction     = errors.New("rules: action not in legal_actions")
	ErrInvalidCard       = errors.New("rules: invalid card")
	ErrInvalidBid        = errors.New("rules: invalid bid")
	ErrWrongPhase        = errors.New("rules: wrong phase for this action")
	ErrBidderRequired    = errors.New("rules: only the bid winner may act here")
	ErrHandSizeViolation = errors.New("rules: wrong number of cards")
)

// ErrNotOver is returned by Winner when the game has not yet produced a
// winning team.
var ErrNotOver = errors.New("rules: game is not over")
