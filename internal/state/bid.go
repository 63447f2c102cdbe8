package state

import (
	"time"

	"github.com/pidro-game/engine/internal/seat"
)

// Bid is a single bidding action recorded in hand order (spec §3.1).
// A Pass is recorded with Passed true and Amount 0.
type Bid struct {
	Position  seat.Position
	Amount    int
	Passed    bool
	Timestamp time.Time
}
