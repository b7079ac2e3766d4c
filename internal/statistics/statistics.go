// Package statistics tracks session results across training rounds.
package statistics

import (
	"fmt"

	"github.com/lox/blackjackrl/internal/game"
)

// Statistics accumulates round outcomes and the running win-rate history.
// Win rate excludes ties, matching how the session reports progress.
type Statistics struct {
	Rounds int
	Wins   int
	Losses int
	Ties   int

	// Rates holds the win percentage after each round, for plotting or
	// progress displays. One entry per round added.
	Rates []float64
}

// Add incorporates one finished round. Busts and plain losses both count as
// losses; only the exact tie is neutral.
func (s *Statistics) Add(outcome game.Outcome) {
	s.Rounds++
	switch {
	case outcome.Reward > 0:
		s.Wins++
	case outcome.Reward < 0:
		s.Losses++
	default:
		s.Ties++
	}
	s.Rates = append(s.Rates, s.WinRate())
}

// WinRate returns the percentage of decisive rounds won, 0 when no decisive
// round has been played.
func (s *Statistics) WinRate() float64 {
	decisive := s.Wins + s.Losses
	if decisive == 0 {
		return 0
	}
	return float64(s.Wins) / float64(decisive) * 100
}

// Validate checks internal consistency.
func (s *Statistics) Validate() error {
	if s.Wins+s.Losses+s.Ties != s.Rounds {
		return fmt.Errorf("outcome counts (%d+%d+%d) do not sum to rounds (%d)",
			s.Wins, s.Losses, s.Ties, s.Rounds)
	}
	if len(s.Rates) != s.Rounds {
		return fmt.Errorf("rate history length (%d) does not match rounds (%d)",
			len(s.Rates), s.Rounds)
	}
	return nil
}
