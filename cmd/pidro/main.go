// Command pidro is a thin CLI harness around the engine's session API
// (C10/C11), grounded on the teacher's cmd/pokerforbots: one kong.CLI
// struct with a handful of `cmd:""` subcommands, each a small struct
// whose Run does the work.
package main

import (
	"github.com/alecthomas/kong"
)

var version = "dev"

// CLI is the root command set.
type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Serve   ServeCmd         `cmd:"" help:"Spawn a session and auto-play it to completion"`
	Play    PlayCmd          `cmd:"" help:"Play an interactive game from the terminal"`
	Replay  ReplayCmd        `cmd:"" help:"Replay a saved event log through the rules engine"`
	Inspect InspectCmd       `cmd:"" help:"Print fingerprint and view details for a saved event log"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pidro"),
		kong.Description("Finnish Pidro game engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
