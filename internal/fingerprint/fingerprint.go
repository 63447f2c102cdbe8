// Package fingerprint computes stable, permutation-invariant hashes of a
// GameState (spec §4.9, C9), for use as legal-action cache keys. The hash
// is built by serializing a canonical tuple of the state's fields —
// logically-unordered collections (hands, the deck, revealed cards) are sorted
// first so two states differing only in dealing or iteration order hash
// identically — and folding the bytes with the same FNV-1a construction
// the teacher hand-rolls for its regret-table shard keys
// (sdk/solver/regret.go's hashKey), widened from 32 to 64 bits.
package fingerprint

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pidro-game/engine/internal/card"
	"github.com/pidro-game/engine/internal/seat"
	"github.com/pidro-game/engine/internal/state"
	"github.com/pidro-game/engine/internal/trick"
)

const (
	offset64 uint64 = 14695981039346656037
	prime64  uint64 = 1099511628211
)

// hashBytes is FNV-1a over b, matching the teacher's hashKey in shape
// (offset, XOR-then-multiply per byte) but over 64 bits.
func hashBytes(b []byte) uint64 {
	hash := offset64
	for i := 0; i < len(b); i++ {
		hash ^= uint64(b[i])
		hash *= prime64
	}
	return hash
}

// Fingerprint returns a stable hash of the whole-game canonical tuple
// (spec §4.9): phase, hand number, dealer, turn, trump, highest bid,
// every seat's sorted hand and eliminated flag, the sorted remaining
// deck, cumulative scores, the second-deal bookkeeping, and each seat's
// sorted revealed (going-cold) cards.
func Fingerprint(s state.GameState) uint64 {
	var b strings.Builder
	writeInt(&b, int(s.Phase))
	writeInt(&b, s.HandNumber)
	writeInt(&b, int(s.Dealer))
	writeInt(&b, int(s.CurrentTurn))
	writeInt(&b, int(s.TrumpSuit))
	writeBid(&b, s.HighestBid)

	for _, p := range seat.All {
		pl := s.Players[p]
		b.WriteByte('|')
		writeCards(&b, pl.Hand)
		writeBool(&b, pl.Eliminated)
	}

	b.WriteByte('|')
	writeCards(&b, s.Deck.Cards())

	writeInt(&b, s.Scores[seat.NorthSouth])
	writeInt(&b, s.Scores[seat.EastWest])

	if s.SecondDeal != nil {
		for _, p := range seat.All {
			writeInt(&b, s.SecondDeal.CardsReceived[p])
		}
		writeInt(&b, s.SecondDeal.DealerPoolSize)
	}

	for _, p := range seat.All {
		b.WriteByte('|')
		writeCards(&b, s.Players[p].RevealedCards)
	}

	return hashBytes([]byte(b.String()))
}

// FingerprintFor returns the narrower per-seat hash used to key the
// legal-action cache (spec §4.9): phase, trump, the seat's own sorted
// hand, the current trick's plays in the order they were made (trick
// order is legally significant, unlike hand order, so it is not sorted),
// and the seat's own sorted revealed cards.
func FingerprintFor(s state.GameState, who seat.Position) uint64 {
	var b strings.Builder
	writeInt(&b, int(s.Phase))
	writeInt(&b, int(s.TrumpSuit))
	writeCards(&b, s.Players[who].Hand)
	writeTrickPlays(&b, s.CurrentTrick)
	writeCards(&b, s.Players[who].RevealedCards)
	return hashBytes([]byte(b.String()))
}

func writeInt(b *strings.Builder, n int) {
	b.WriteString(strconv.Itoa(n))
	b.WriteByte(',')
}

func writeBool(b *strings.Builder, v bool) {
	if v {
		b.WriteByte('1')
	} else {
		b.WriteByte('0')
	}
	b.WriteByte(',')
}

func writeBid(b *strings.Builder, bid *state.Bid) {
	if bid == nil {
		b.WriteString("-,")
		return
	}
	writeInt(b, int(bid.Position))
	writeInt(b, bid.Amount)
}

// writeCards sorts a defensive copy of cards by (suit, rank) before
// writing, so the result is invariant to the order cards were dealt or
// collected in.
func writeCards(b *strings.Builder, cards []card.Card) {
	sorted := make([]card.Card, len(cards))
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Suit != sorted[j].Suit {
			return sorted[i].Suit < sorted[j].Suit
		}
		return sorted[i].Rank < sorted[j].Rank
	})
	for _, c := range sorted {
		writeInt(b, int(c.Suit))
		writeInt(b, int(c.Rank))
	}
	b.WriteByte(';')
}

func writeTrickPlays(b *strings.Builder, t *trick.Trick) {
	if t == nil {
		b.WriteString("-,")
		return
	}
	for _, play := range t.Plays {
		writeInt(b, int(play.Position))
		writeInt(b, int(play.Card.Suit))
		writeInt(b, int(play.Card.Rank))
	}
	b.WriteByte(';')
}
