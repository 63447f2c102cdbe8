package state

// Config holds the tunable rules of a game (spec §3.1).
type Config struct {
	MinBid              int  `hcl:"min_bid,optional"`
	MaxBid              int  `hcl:"max_bid,optional"`
	WinningScore        int  `hcl:"winning_score,optional"`
	InitialDealCount    int  `hcl:"initial_deal_count,optional"`
	FinalHandSize       int  `hcl:"final_hand_size,optional"`
	AllowNegativeScores bool `hcl:"allow_negative_scores,optional"`
}

// DefaultConfig returns the standard Finnish Pidro configuration (spec
// §3.1).
func DefaultConfig() Config {
	return Config{
		MinBid:              6,
		MaxBid:              14,
		WinningScore:        62,
		InitialDealCount:    9,
		FinalHandSize:       6,
		AllowNegativeScores: true,
	}
}
