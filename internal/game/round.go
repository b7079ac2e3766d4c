package game

import (
	"errors"
	"fmt"

	"github.com/lox/blackjackrl/internal/deck"
)

// ErrInvalidTransition is returned when a round operation is called in the
// wrong phase, e.g. hitting a terminal round. These are usage errors and are
// always surfaced synchronously.
var ErrInvalidTransition = errors.New("invalid round transition")

// Phase tracks where a round is in its lifecycle.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress
	PhaseDealerPlaying
	PhaseTerminal
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseInProgress:
		return "in-progress"
	case PhaseDealerPlaying:
		return "dealer-playing"
	case PhaseTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// dealerStandScore is the fixed threshold the dealer draws up to. The dealer
// policy is not learned: draw while below 17, then stop.
const dealerStandScore = 17

// Round holds the state of a single hand of play: the player hand, the dealer
// hand and the current phase. Rounds are created per hand and discarded once
// the outcome is computed.
type Round struct {
	shoe   *deck.Shoe
	player Hand
	dealer Hand
	phase  Phase
}

// NewRound creates an undealt round drawing cards from shoe.
func NewRound(shoe *deck.Shoe) *Round {
	return &Round{shoe: shoe}
}

// Phase returns the round's current phase.
func (r *Round) Phase() Phase {
	return r.phase
}

// PlayerHand returns the player's hand.
func (r *Round) PlayerHand() Hand {
	return r.player
}

// DealerHand returns the dealer's hand.
func (r *Round) DealerHand() Hand {
	return r.dealer
}

// DealerUpcard returns the dealer's visible (first) card, or false if the
// dealer has not been dealt yet.
func (r *Round) DealerUpcard() (deck.Card, bool) {
	if len(r.dealer) == 0 {
		return deck.Card{}, false
	}
	return r.dealer[0], true
}

// DealInitial deals two cards to the player and two to the dealer and moves
// the round into play. Valid only on an undealt round.
func (r *Round) DealInitial() error {
	if r.phase != PhaseNotStarted {
		return fmt.Errorf("%w: deal during %s", ErrInvalidTransition, r.phase)
	}
	r.player = append(r.player, r.shoe.Deal(), r.shoe.Deal())
	r.dealer = append(r.dealer, r.shoe.Deal(), r.shoe.Deal())
	r.phase = PhaseInProgress
	return nil
}

// Hit deals one card to the player. If the player busts the round is over and
// no further action is possible.
func (r *Round) Hit() error {
	if r.phase != PhaseInProgress {
		return fmt.Errorf("%w: hit during %s", ErrInvalidTransition, r.phase)
	}
	r.player = append(r.player, r.shoe.Deal())
	if r.player.IsBust() {
		r.phase = PhaseTerminal
	}
	return nil
}

// Stand ends the player's turn and runs the dealer's fixed policy: draw while
// the dealer total is below 17, then stop. The round is terminal afterwards,
// with the dealer total in [17,21] or busted.
func (r *Round) Stand() error {
	if r.phase != PhaseInProgress {
		return fmt.Errorf("%w: stand during %s", ErrInvalidTransition, r.phase)
	}
	r.phase = PhaseDealerPlaying
	for r.dealer.Score() < dealerStandScore {
		r.dealer = append(r.dealer, r.shoe.Deal())
	}
	r.phase = PhaseTerminal
	return nil
}

// Outcome holds the learning reward and a human-readable result for a
// completed round.
type Outcome struct {
	Reward int
	Result string
}

// Reward values are shaped for the learning signal rather than taken from a
// casino payout table: busting is punished much harder than losing to the
// dealer, and wins pay double.
const (
	RewardBust = -10
	RewardWin  = 2
	RewardLoss = -1
	RewardTie  = 0
)

// Outcome computes the round result. Valid only once the round is terminal.
// Exactly one of the four branches applies to any pair of final scores.
func (r *Round) Outcome() (Outcome, error) {
	if r.phase != PhaseTerminal {
		return Outcome{}, fmt.Errorf("%w: outcome during %s", ErrInvalidTransition, r.phase)
	}
	playerScore := r.player.Score()
	dealerScore := r.dealer.Score()
	switch {
	case playerScore > 21:
		return Outcome{Reward: RewardBust, Result: "Player busts! Dealer wins."}, nil
	case dealerScore > 21 || playerScore > dealerScore:
		return Outcome{Reward: RewardWin, Result: "Player wins!"}, nil
	case playerScore < dealerScore:
		return Outcome{Reward: RewardLoss, Result: "Dealer wins."}, nil
	default:
		return Outcome{Reward: RewardTie, Result: "It's a tie."}, nil
	}
}
