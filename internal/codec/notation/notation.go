// Package notation implements the compact text state codec (spec §4.7,
// C7): a slash-separated, human-readable rendering of the public parts of
// a GameState, meant for logs and quick manual inspection rather than
// full replay. Like the binary codec, it is lossy by design.
package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pidro-game/engine/internal/card"
	"github.com/pidro-game/engine/internal/seat"
	"github.com/pidro-game/engine/internal/state"
)

// InvalidNotationError reports a malformed notation string, naming the
// specific field or segment that failed to parse.
type InvalidNotationError struct {
	Reason string
}

func (e InvalidNotationError) Error() string {
	return fmt.Sprintf("notation: invalid input: %s", e.Reason)
}

// Encode renders s as phase/dealer/turn/trump/bid/scores/hand/tricks/redeal
// (spec §4.7). The redeal field is "-" unless a second deal has happened
// this hand. GameState.HandNumber is already 1-based ("h1" for the first
// hand in progress), matching how a player at the table would count.
func Encode(s state.GameState) string {
	fields := []string{
		s.Phase.NotationCode(),
		s.Dealer.String(),
		s.CurrentTurn.String(),
		s.TrumpSuit.NotationLetter(),
		encodeBid(s.HighestBid),
		encodeScores(s.Scores),
		fmt.Sprintf("h%d", s.HandNumber),
		fmt.Sprintf("t%d", s.TrickNumber),
		encodeRedeal(s),
	}
	return strings.Join(fields, "/")
}

func encodeBid(b *state.Bid) string {
	if b == nil {
		return "-"
	}
	return fmt.Sprintf("%s:%d", b.Position, b.Amount)
}

func encodeScores(scores map[seat.Team]int) string {
	return fmt.Sprintf("NS:%d:EW:%d", scores[seat.NorthSouth], scores[seat.EastWest])
}

// nonDealerOrder lists the three non-dealer seats clockwise starting right
// after dealer, matching the order the second deal visits them in.
func nonDealerOrder(dealer seat.Position) []seat.Position {
	if !dealer.Valid() {
		return nil
	}
	out := make([]seat.Position, 0, 3)
	p := dealer
	for i := 0; i < 3; i++ {
		p = p.Next()
		out = append(out, p)
	}
	return out
}

func encodeRedeal(s state.GameState) string {
	var segments []string

	if s.SecondDeal != nil && len(s.SecondDeal.CardsReceived) > 0 && s.Dealer.Valid() {
		var parts []string
		for _, p := range nonDealerOrder(s.Dealer) {
			if n, ok := s.SecondDeal.CardsReceived[p]; ok {
				parts = append(parts, fmt.Sprintf("%s:%d", p, n))
			}
		}
		if len(parts) > 0 {
			segments = append(segments, "cr:"+strings.Join(parts, ","))
		}
	}

	if s.SecondDeal != nil && s.SecondDeal.DealerPoolSize > 0 {
		segments = append(segments, fmt.Sprintf("dp:%d", s.SecondDeal.DealerPoolSize))
	}

	var revealedParts []string
	for _, p := range seat.All {
		cards := s.Players[p].RevealedCards
		if len(cards) == 0 {
			continue
		}
		cardStrs := make([]string, 0, len(cards))
		for _, c := range cards {
			cardStrs = append(cardStrs, c.String())
		}
		revealedParts = append(revealedParts, fmt.Sprintf("%s:%s", p, strings.Join(cardStrs, ",")))
	}
	if len(revealedParts) > 0 {
		segments = append(segments, "kc:"+strings.Join(revealedParts, "|"))
	}

	if len(segments) == 0 {
		return "-"
	}
	return strings.Join(segments, ";")
}

// Decode inverts Encode. It accepts both the 8-field form (no redeal data)
// and the 9-field form. Fields the notation does not carry (event history,
// bids log, completed tricks, hand points, routine discards, winner) come
// back at their GameState zero value.
func Decode(input string) (state.GameState, error) {
	fields := strings.Split(input, "/")
	if len(fields) != 8 && len(fields) != 9 {
		return state.GameState{}, InvalidNotationError{Reason: fmt.Sprintf("expected 8 or 9 fields, got %d", len(fields))}
	}

	phase, ok := state.PhaseFromNotationCode(fields[0])
	if !ok {
		return state.GameState{}, InvalidNotationError{Reason: "unknown phase code " + fields[0]}
	}
	dealer, err := parsePosition(fields[1])
	if err != nil {
		return state.GameState{}, err
	}
	turn, err := parsePosition(fields[2])
	if err != nil {
		return state.GameState{}, err
	}
	trump, err := parseTrump(fields[3])
	if err != nil {
		return state.GameState{}, err
	}
	bid, err := parseBid(fields[4])
	if err != nil {
		return state.GameState{}, err
	}
	scores, err := parseScores(fields[5])
	if err != nil {
		return state.GameState{}, err
	}
	handDisplay, err := parsePrefixedInt(fields[6], "h")
	if err != nil {
		return state.GameState{}, err
	}
	handNumber := handDisplay
	trickNumber, err := parsePrefixedInt(fields[7], "t")
	if err != nil {
		return state.GameState{}, err
	}

	redealField := "-"
	if len(fields) == 9 {
		redealField = fields[8]
	}
	secondDeal, revealed, err := parseRedeal(redealField)
	if err != nil {
		return state.GameState{}, err
	}

	biddingTeam := seat.NoTeam
	if bid != nil {
		biddingTeam = seat.TeamOf(bid.Position)
	}

	players := make(map[seat.Position]state.Player, 4)
	for _, p := range seat.All {
		pl := state.NewPlayer(p)
		pl.RevealedCards = revealed[p]
		players[p] = pl
	}

	return state.GameState{
		Config:      state.DefaultConfig(),
		Phase:       phase,
		HandNumber:  handNumber,
		Dealer:      dealer,
		CurrentTurn: turn,
		Players:     players,
		HighestBid:  bid,
		BiddingTeam: biddingTeam,
		TrumpSuit:   trump,
		SecondDeal:  secondDeal,
		TrickNumber: trickNumber,
		HandPoints:  map[seat.Team]int{seat.NorthSouth: 0, seat.EastWest: 0},
		Scores:      scores,
		Winner:      seat.NoTeam,
	}, nil
}

func parsePosition(s string) (seat.Position, error) {
	switch s {
	case "-":
		return seat.None, nil
	case "N":
		return seat.North, nil
	case "E":
		return seat.East, nil
	case "S":
		return seat.South, nil
	case "W":
		return seat.West, nil
	default:
		return seat.None, InvalidNotationError{Reason: "invalid position " + s}
	}
}

func parseTrump(s string) (card.Suit, error) {
	if s == "-" {
		return card.NoSuit, nil
	}
	suit, ok := card.ParseSuitLetter(s)
	if !ok {
		return card.NoSuit, InvalidNotationError{Reason: "invalid trump " + s}
	}
	return suit, nil
}

func parseBid(s string) (*state.Bid, error) {
	if s == "-" {
		return nil, nil
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return nil, InvalidNotationError{Reason: "malformed bid " + s}
	}
	pos, err := parsePosition(parts[0])
	if err != nil || !pos.Valid() {
		return nil, InvalidNotationError{Reason: "malformed bid position " + s}
	}
	amount, convErr := strconv.Atoi(parts[1])
	if convErr != nil {
		return nil, InvalidNotationError{Reason: "malformed bid amount " + s}
	}
	return &state.Bid{Position: pos, Amount: amount}, nil
}

func parseScores(s string) (map[seat.Team]int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 || parts[0] != "NS" || parts[2] != "EW" {
		return nil, InvalidNotationError{Reason: "malformed scores " + s}
	}
	ns, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, InvalidNotationError{Reason: "malformed NS score " + s}
	}
	ew, err := strconv.Atoi(parts[3])
	if err != nil {
		return nil, InvalidNotationError{Reason: "malformed EW score " + s}
	}
	return map[seat.Team]int{seat.NorthSouth: ns, seat.EastWest: ew}, nil
}

func parsePrefixedInt(s, prefix string) (int, error) {
	if !strings.HasPrefix(s, prefix) {
		return 0, InvalidNotationError{Reason: fmt.Sprintf("expected %q prefix in %q", prefix, s)}
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, prefix))
	if err != nil {
		return 0, InvalidNotationError{Reason: "malformed integer in " + s}
	}
	return n, nil
}

// parseRedeal parses the "-" or ";"-joined cr:/dp:/kc: segments into a
// SecondDealRecord and a map of each seat's revealed (going-cold) cards
// (spec §4.7, §4.8).
func parseRedeal(redeal string) (*state.SecondDealRecord, map[seat.Position][]card.Card, error) {
	if redeal == "-" || redeal == "" {
		return nil, nil, nil
	}

	var rec *state.SecondDealRecord
	revealed := make(map[seat.Position][]card.Card)

	for _, segment := range strings.Split(redeal, ";") {
		switch {
		case strings.HasPrefix(segment, "cr:"):
			counts, err := parseCounts(strings.TrimPrefix(segment, "cr:"))
			if err != nil {
				return nil, nil, err
			}
			if rec == nil {
				rec = &state.SecondDealRecord{CardsReceived: map[seat.Position]int{}}
			}
			rec.CardsReceived = counts

		case strings.HasPrefix(segment, "dp:"):
			n, err := strconv.Atoi(strings.TrimPrefix(segment, "dp:"))
			if err != nil {
				return nil, nil, InvalidNotationError{Reason: "malformed dp segment " + segment}
			}
			if rec == nil {
				rec = &state.SecondDealRecord{CardsReceived: map[seat.Position]int{}}
			}
			rec.DealerPoolSize = n

		case strings.HasPrefix(segment, "kc:"):
			if err := parseRevealedCards(strings.TrimPrefix(segment, "kc:"), revealed); err != nil {
				return nil, nil, err
			}

		default:
			return nil, nil, InvalidNotationError{Reason: "unknown redeal segment " + segment}
		}
	}

	if len(revealed) == 0 {
		revealed = nil
	}
	return rec, revealed, nil
}

func parseCounts(body string) (map[seat.Position]int, error) {
	counts := make(map[seat.Position]int)
	for _, entry := range strings.Split(body, ",") {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			return nil, InvalidNotationError{Reason: "malformed cr entry " + entry}
		}
		pos, err := parsePosition(parts[0])
		if err != nil || !pos.Valid() {
			return nil, InvalidNotationError{Reason: "malformed cr position " + entry}
		}
		n, convErr := strconv.Atoi(parts[1])
		if convErr != nil {
			return nil, InvalidNotationError{Reason: "malformed cr count " + entry}
		}
		counts[pos] = n
	}
	return counts, nil
}

func parseRevealedCards(body string, out map[seat.Position][]card.Card) error {
	for _, group := range strings.Split(body, "|") {
		if group == "" {
			continue
		}
		parts := strings.SplitN(group, ":", 2)
		if len(parts) != 2 {
			return InvalidNotationError{Reason: "malformed kc group " + group}
		}
		pos, err := parsePosition(parts[0])
		if err != nil || !pos.Valid() {
			return InvalidNotationError{Reason: "malformed kc position " + group}
		}
		var cards []card.Card
		for _, cs := range strings.Split(parts[1], ",") {
			if cs == "" {
				continue
			}
			c, parseErr := card.ParseCard(cs)
			if parseErr != nil {
				return InvalidNotationError{Reason: "malformed kc card " + cs}
			}
			cards = append(cards, c)
		}
		out[pos] = cards
	}
	return nil
}
