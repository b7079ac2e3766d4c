package deck

import (
	rand "math/rand/v2"
)

// Shoe is the source of cards dealt during play. It holds a single 52-card
// deck, uniformly shuffled at creation, and rebuilds itself when exhausted.
type Shoe struct {
	cards []Card
	rng   *rand.Rand
}

// NewShoe creates a shuffled single-deck shoe drawing randomness from rng.
func NewShoe(rng *rand.Rand) *Shoe {
	s := &Shoe{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	s.rebuild()
	return s
}

// NewStackedShoe creates a shoe that deals the given cards in order. Once the
// stacked cards run out the shoe reshuffles a full deck as usual, using rng.
// Intended for deterministic tests and scripted scenarios.
func NewStackedShoe(rng *rand.Rand, cards ...Card) *Shoe {
	// Deal pops from the end, so store the stacked cards in reverse.
	stacked := make([]Card, len(cards))
	for i, c := range cards {
		stacked[len(cards)-1-i] = c
	}
	return &Shoe{cards: stacked, rng: rng}
}

// Deal removes and returns the next card. An exhausted shoe is not an error:
// it is silently rebuilt to a full shuffled 52-card deck before dealing. This
// means a reshuffle can happen mid-round, which is an accepted simplification
// rather than true casino shoe semantics.
func (s *Shoe) Deal() Card {
	if len(s.cards) == 0 {
		s.rebuild()
	}
	card := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	return card
}

// Remaining returns the number of cards left before the next reshuffle.
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// rebuild restores the full 52-card deck and shuffles it in place.
func (s *Shoe) rebuild() {
	s.cards = s.cards[:0]
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			s.cards = append(s.cards, NewCard(suit, rank))
		}
	}
	s.shuffle()
}

// shuffle applies a Fisher-Yates permutation over the remaining cards.
func (s *Shoe) shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}
