package game

import (
	"strings"

	"github.com/lox/blackjackrl/internal/deck"
)

// Hand is an ordered sequence of cards belonging to one participant. Cards
// are only ever appended as they are dealt; the score is always derived.
type Hand []deck.Card

// Score returns the best blackjack total for the hand. Face cards count 10
// and Aces count 11, then Aces are demoted to 1 one at a time while the total
// busts. An empty hand scores 0.
func (h Hand) Score() int {
	score := 0
	aces := 0
	for _, c := range h {
		switch {
		case c.IsFaceCard():
			score += 10
		case c.IsAce():
			aces++
			score += 11
		default:
			score += int(c.Rank)
		}
	}
	for score > 21 && aces > 0 {
		score -= 10
		aces--
	}
	return score
}

// IsBust returns true if the hand total exceeds 21.
func (h Hand) IsBust() bool {
	return h.Score() > 21
}

// HasSoftAce reports whether any single Ace in the hand, scored alone, would
// itself count 11. This is a per-card check, not a hand-level one, so it can
// under-detect multi-Ace soft hands. The distinction is deliberate: it is
// part of the learning state, and "fixing" it changes the policy space.
func (h Hand) HasSoftAce() bool {
	for _, c := range h {
		if c.IsAce() && (Hand{c}).Score() == 11 {
			return true
		}
	}
	return false
}

// String renders the hand in compact display notation, e.g. "A♠ K♥".
func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
