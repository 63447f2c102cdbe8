package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pidro-game/engine/internal/card"
	"github.com/pidro-game/engine/internal/config"
	"github.com/pidro-game/engine/internal/handhistory"
	"github.com/pidro-game/engine/internal/randutil"
	"github.com/pidro-game/engine/internal/rules"
	"github.com/pidro-game/engine/internal/seat"
	"github.com/pidro-game/engine/internal/session"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	handStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	winStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// PlayCmd runs one interactive game from the terminal: the named seat is
// prompted for its choice at every turn via stdin; every other seat
// auto-plays its first legal action. Styling follows
// cmd/poker-odds/main.go's lipgloss palette.
type PlayCmd struct {
	ConfigFile string `help:"HCL config file (defaults applied if absent)"`
	Seed       *int64 `help:"Deterministic RNG seed (default: time-based)"`
	Seat       string `help:"Seat the terminal controls: N, E, S, or W" default:"N"`
}

func (c *PlayCmd) Run() error {
	human, ok := parseSeatLetter(c.Seat)
	if !ok {
		return fmt.Errorf("play: unknown seat %q", c.Seat)
	}

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

	sess := session.New(session.Options{Config: cfg.Game, RNG: randutil.Seeded(seed), Logger: logger})
	defer sess.Terminate()

	ctx := context.Background()
	if _, _, err := sess.ApplyAction(ctx, seat.North, rules.SelectDealer{}); err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println(headerStyle.Render(fmt.Sprintf("game %s — you are %s", sess.ID(), human)))

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

		var chosen rules.Action
		if st.CurrentTurn == human {
			fmt.Println(handStyle.Render(fmt.Sprintf("your hand: %s", formatHand(st.Players[human].Hand))))
			for i, a := range actions {
				fmt.Printf("  [%d] %s\n", i, describeAction(a))
			}
			chosen = promptChoice(scanner, actions)
		} else {
			chosen = actions[0]
		}

		_, events, err := sess.ApplyAction(ctx, st.CurrentTurn, chosen)
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
	fmt.Println(winStyle.Render(fmt.Sprintf("%s wins!", winner)))
	return nil
}

func promptChoice(scanner *bufio.Scanner, actions []rules.Action) rules.Action {
	for {
		fmt.Print("choice> ")
		if !scanner.Scan() {
			return actions[0]
		}
		n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || n < 0 || n >= len(actions) {
			fmt.Println("invalid choice, try again")
			continue
		}
		return actions[n]
	}
}

func describeAction(a rules.Action) string {
	switch a := a.(type) {
	case rules.Bid:
		return fmt.Sprintf("Bid(%d)", a.Amount)
	case rules.DeclareTrump:
		return fmt.Sprintf("DeclareTrump(%s)", a.Suit)
	case rules.SelectHand:
		return fmt.Sprintf("SelectHand(%d cards)", len(a.Cards))
	case rules.PlayCard:
		return fmt.Sprintf("PlayCard(%s)", a.Card)
	default:
		return string(a.Kind())
	}
}

func formatHand(cards []card.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func parseSeatLetter(s string) (seat.Position, bool) {
	for _, p := range seat.All {
		if strings.EqualFold(p.String(), s) {
			return p, true
		}
	}
	return seat.None, false
}
