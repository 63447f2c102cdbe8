package rules

import (
	"time"

	ev "github.com/pidro-game/engine/internal/event"
	"github.com/pidro-game/engine/internal/seat"
	"github.com/pidro-game/engine/internal/state"
)

// scoreHand implements spec §4.5.2 (hand scoring) followed by §4.5.3
// (game-over detection), mutating *s in place and returning the events it
// emitted. Called once Playing has no active seat left holding trump
// (spec §4.5.1 step 9).
func scoreHand(s *state.GameState, now time.Time) []ev.Event {
	bt := s.BiddingTeam
	dt := bt.Opponent()
	bid := 0
	if s.HighestBid != nil {
		bid = s.HighestBid.Amount
	}

	hpBT := s.HandPoints[bt]
	hpDT := s.HandPoints[dt]

	var deltaBT, deltaDT int
	madeBid := hpBT >= bid
	if madeBid {
		deltaBT = hpBT
	} else {
		deltaBT = -bid
	}
	deltaDT = hpDT

	deltaBT = floored(s.Scores[bt], deltaBT, s.Config.AllowNegativeScores)
	deltaDT = floored(s.Scores[dt], deltaDT, s.Config.AllowNegativeScores)

	events := []ev.Event{
		ev.NewHandScored(now, bt, deltaBT),
		ev.NewHandScored(now, dt, deltaDT),
	}
	*s = mustApply(*s, events[0])
	*s = mustApply(*s, events[1])

	if over, winner := gameOverAfterScoring(*s, madeBid); over {
		final := s.Scores[winner]
		we := ev.NewGameWon(now, winner, final)
		*s = mustApply(*s, we)
		events = append(events, we)
		return events
	}

	*s = s.NextHand()
	return events
}

// floored clamps a negative delta so current+delta never drops below 0,
// unless the config allows negative cumulative scores (spec §4.5.2).
func floored(current, delta int, allowNegative bool) int {
	if allowNegative || current+delta >= 0 {
		return delta
	}
	return -current
}

// gameOverAfterScoring implements spec §4.5.3: exactly one team at or
// above winning_score wins outright; if both cross in the same hand, the
// bidding team wins iff it made its bid, else the non-bidding team wins;
// a tie at the threshold with neither resolved by bidding-team preference
// continues play.
func gameOverAfterScoring(s state.GameState, biddingTeamMadeBid bool) (bool, seat.Team) {
	nsOver := s.Scores[seat.NorthSouth] >= s.Config.WinningScore
	ewOver := s.Scores[seat.EastWest] >= s.Config.WinningScore

	switch {
	case nsOver && !ewOver:
		return true, seat.NorthSouth
	case ewOver && !nsOver:
		return true, seat.EastWest
	case nsOver && ewOver:
		if biddingTeamMadeBid {
			return true, s.BiddingTeam
		}
		return true, s.BiddingTeam.Opponent()
	default:
		return false, seat.NoTeam
	}
}

// GameOver reports whether s.Phase has reached Complete.
func GameOver(s state.GameState) bool {
	return s.Phase == state.Complete
}

// Winner returns the winning team, or ErrNotOver if the game has not
// concluded.
func Winner(s state.GameState) (seat.Team, error) {
	if !GameOver(s) {
		return seat.NoTeam, ErrNotOver
	}
	return s.Winner, nil
}
