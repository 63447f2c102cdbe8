package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pidro-game/engine/internal/config"
	"github.com/pidro-game/engine/internal/directory"
	"github.com/pidro-game/engine/internal/handhistory"
	"github.com/pidro-game/engine/internal/randutil"
	"github.com/pidro-game/engine/internal/rules"
	"github.com/pidro-game/engine/internal/seat"
	"github.com/pidro-game/engine/internal/session"
)

// ServeCmd spawns a session through the process-wide directory (C11) and
// auto-plays every seat (first legal action each turn) to completion,
// printing hand history lines as events land — a self-contained exercise
// of the whole session API, not a network server.
type ServeCmd struct {
	ConfigFile string `help:"HCL config file (defaults applied if absent)"`
	Seed       *int64 `help:"Deterministic RNG seed (default: time-based)"`
}

func (c *ServeCmd) Run() error {
	cfg, err := config.Load(c.ConfigFile)
	if err != nil {
		return err
	}
	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		return err
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}

	dir := directory.New()
	sess := dir.Spawn(session.Options{
		Config: cfg.Game,
		RNG:    randutil.Seeded(seed),
		Logger: logger,
	})
	defer dir.Terminate(sess.ID())

	fmt.Printf("game %s started (seed=%d)\n", sess.ID(), seed)

	ctx := context.Background()
	if _, _, err := sess.ApplyAction(ctx, seat.North, rules.SelectDealer{}); err != nil {
		return err
	}

	for {
		over, err := sess.GameOver(ctx)
		if err != nil {
			return err
		}
		if over {
			break
		}

		st, err := sess.GetState(ctx)
		if err != nil {
			return err
		}
		actions, err := sess.LegalActions(ctx, st.CurrentTurn)
		if err != nil {
			return err
		}
		if len(actions) == 0 {
			break
		}

		_, events, err := sess.ApplyAction(ctx, st.CurrentTurn, actions[0])
		if err != nil {
			return err
		}
		for _, line := range handhistory.FormatAll(events) {
			fmt.Println(line)
		}
	}

	winner, err := sess.Winner(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("game %s over: %s wins\n", sess.ID(), winner)
	return nil
}
