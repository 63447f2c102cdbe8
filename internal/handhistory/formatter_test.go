package handhistory

import (
	"testing"
	"time"

	"github.com/pidro-game/engine/internal/card"
	"github.com/pidro-game/engine/internal/event"
	"github.com/pidro-game/engine/internal/seat"
	"github.com/stretchr/testify/assert"
)

var ts = time.Unix(1_700_000_000, 0)

func TestFormatBidMade(t *testing.T) {
	e := event.NewBidMade(ts, seat.North, 8)
	assert.Equal(t, "N bids 8", Format(e))
}

func TestFormatCardPlayed(t *testing.T) {
	e := event.NewCardPlayed(ts, seat.East, card.MustNew(card.Ace, card.Hearts))
	assert.Equal(t, "E plays Ah", Format(e))
}

func TestFormatGameWon(t *testing.T) {
	e := event.NewGameWon(ts, seat.NorthSouth, 64)
	assert.Equal(t, "NS wins the game with 64 points", Format(e))
}

func TestFormatAllPreservesOrder(t *testing.T) {
	events := []event.Event{
		event.NewBidMade(ts, seat.North, 6),
		event.NewPlayerPassed(ts, seat.East),
	}
	lines := FormatAll(events)
	assert.Equal(t, []string{"N bids 6", "E passes"}, lines)
}
