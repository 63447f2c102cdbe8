// Package config loads the engine's HCL configuration file, mirroring
// the teacher's internal/server/config.go ServerConfig/TableConfig
// pattern: a block-shaped struct decoded with gohcl, a missing-file
// fallback to sensible defaults, and an explicit Validate pass.
package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/pidro-game/engine/internal/state"
)

// File is the root of an HCL configuration file: a "game" block
// (decoded straight into state.Config, which already carries hcl tags)
// plus the log_level every teacher binary takes as a top-level flag or
// config field.
type File struct {
	Game     state.Config `hcl:"game,block"`
	LogLevel string       `hcl:"log_level,optional"`
}

// Default returns the standard configuration: Finnish Pidro's rules
// defaults plus info-level logging.
func Default() *File {
	return &File{
		Game:     state.DefaultConfig(),
		LogLevel: "info",
	}
}

// Load reads and decodes an HCL file at filename. A missing file is not
// an error: it returns Default(), the same fallback
// server/config.go's LoadServerConfig takes. Zero-valued numeric game
// fields left unset by the file are backfilled from the default
// configuration before Validate runs.
func Load(filename string) (*File, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parse %s: %s", filename, diags.Error())
	}

	var cfg File
	diags = gohcl.DecodeBody(hclFile.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: decode %s: %s", filename, diags.Error())
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills unset (zero-valued) fields from Default, the same
// way LoadServerConfig backfills ServerSettings.Port and friends after
// decoding. Note this cannot distinguish "absent from the file" from
// "explicitly set to zero/false" for AllowNegativeScores — the teacher's
// own config.go has the identical limitation for its bool fields
// (AutoStart is never defaulted either) and we match it rather than
// invent a presence-tracking mechanism the teacher doesn't use.
func applyDefaults(cfg *File) {
	d := state.DefaultConfig()
	if cfg.Game.MinBid == 0 {
		cfg.Game.MinBid = d.MinBid
	}
	if cfg.Game.MaxBid == 0 {
		cfg.Game.MaxBid = d.MaxBid
	}
	if cfg.Game.WinningScore == 0 {
		cfg.Game.WinningScore = d.WinningScore
	}
	if cfg.Game.InitialDealCount == 0 {
		cfg.Game.InitialDealCount = d.InitialDealCount
	}
	if cfg.Game.FinalHandSize == 0 {
		cfg.Game.FinalHandSize = d.FinalHandSize
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// Validate checks that the decoded configuration is internally
// consistent, following server/config.go's ServerConfig.Validate shape.
func (f *File) Validate() error {
	if f.Game.MinBid < 1 {
		return fmt.Errorf("config: min_bid must be positive")
	}
	if f.Game.MaxBid < f.Game.MinBid {
		return fmt.Errorf("config: max_bid must be >= min_bid")
	}
	if f.Game.WinningScore <= 0 {
		return fmt.Errorf("config: winning_score must be positive")
	}
	if f.Game.InitialDealCount <= 0 {
		return fmt.Errorf("config: initial_deal_count must be positive")
	}
	if f.Game.FinalHandSize <= 0 {
		return fmt.Errorf("config: final_hand_size must be positive")
	}
	if _, err := log.ParseLevel(f.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	return nil
}

// Logger builds a charmbracelet/log logger at the file's configured
// level, writing to w, the same construction cmd/simulate and
// cmd/holdem use (log.NewWithOptions + log.ParseLevel).
func (f *File) Logger(w *os.File) (*log.Logger, error) {
	level, err := log.ParseLevel(f.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: log_level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{Level: level, ReportTimestamp: true}), nil
}
