package main

import (
	"fmt"
	"os"

	"github.com/pidro-game/engine/internal/codec/notation"
	"github.com/pidro-game/engine/internal/event"
	"github.com/pidro-game/engine/internal/eventlog"
	"github.com/pidro-game/engine/internal/handhistory"
	"github.com/pidro-game/engine/internal/state"
)

// ReplayCmd reads a JSON event log and folds it through event.Replay
// (spec §8.2 L3: the same state is reachable purely from its event
// stream, independent of the actions that produced it), printing each
// event as hand history and the resulting state's notation.
type ReplayCmd struct {
	File string `arg:"" help:"Path to a JSON event log written by eventlog.Encode"`
}

func (c *ReplayCmd) Run() error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	events, err := eventlog.Decode(data)
	if err != nil {
		return err
	}

	for _, line := range handhistory.FormatAll(events) {
		fmt.Println(line)
	}

	final, err := event.Replay(state.New(state.DefaultConfig()), events)
	if err != nil {
		return err
	}
	fmt.Println(notation.Encode(final))
	return nil
}
