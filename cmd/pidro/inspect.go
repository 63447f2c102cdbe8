package main

import (
	"fmt"
	"os"

	"github.com/pidro-game/engine/internal/event"
	"github.com/pidro-game/engine/internal/eventlog"
	"github.com/pidro-game/engine/internal/fingerprint"
	"github.com/pidro-game/engine/internal/seat"
	"github.com/pidro-game/engine/internal/state"
	"github.com/pidro-game/engine/internal/view"
)

// InspectCmd reads a JSON event log, replays it, and prints the
// resulting state's fingerprint (C9) and a summary of its full (unmasked)
// view (C8): phase, hand, dealer, turn, trump and scores, no hands —
// a debugging aid over saved hands, not a new query surface.
type InspectCmd struct {
	File string `arg:"" help:"Path to a JSON event log written by eventlog.Encode"`
}

func (c *InspectCmd) Run() error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	events, err := eventlog.Decode(data)
	if err != nil {
		return err
	}

	final, err := event.Replay(state.New(state.DefaultConfig()), events)
	if err != nil {
		return err
	}

	v := view.ViewFull(final)
	fmt.Printf("phase:       %s\n", v.Phase)
	fmt.Printf("hand:        %d\n", v.HandNumber)
	fmt.Printf("dealer:      %s\n", v.Dealer)
	fmt.Printf("turn:        %s\n", v.CurrentTurn)
	fmt.Printf("trump:       %s\n", v.TrumpSuit)
	fmt.Printf("scores:      NS=%d EW=%d\n", v.Scores[seat.NorthSouth], v.Scores[seat.EastWest])
	fmt.Printf("fingerprint: %016x\n", fingerprint.Fingerprint(final))
	return nil
}
