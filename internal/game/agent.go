package game

import "github.com/lox/blackjackrl/internal/deck"

// Action is one of the two moves the player can make.
type Action int

const (
	Hit Action = iota
	Stand
)

func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	default:
		return "unknown"
	}
}

// State is the compact learning key an agent observes: the player's hand
// total, the dealer's visible card rank (NoRank before the deal) and whether
// the player holds a soft Ace. Equal states are interchangeable for value
// updates; the aliasing is the point of the abstraction.
type State struct {
	PlayerTotal  int
	DealerUpcard deck.Rank
	SoftAce      bool
}

// ComputeState maps a round snapshot to its learning state.
func ComputeState(r *Round) State {
	upcard := deck.NoRank
	if c, ok := r.DealerUpcard(); ok {
		upcard = c.Rank
	}
	return State{
		PlayerTotal:  r.PlayerHand().Score(),
		DealerUpcard: upcard,
		SoftAce:      r.PlayerHand().HasSoftAce(),
	}
}

// Decision carries the chosen action plus the diagnostics a driver displays:
// the observed state, the action values for that state and the exploration
// rate at the time of the decision.
type Decision struct {
	Action  Action
	State   State
	Values  [2]float64
	Epsilon float64
}

// Agent is any decision maker that can play a round and learn from its
// outcome. Agents receive immutable state and return decisions; the engine
// owns all game state mutation.
type Agent interface {
	// MakeDecision observes a state and picks hit or stand.
	MakeDecision(state State) Decision

	// Learn applies credit for a finished round: the state observed before
	// the terminal-triggering action, the action itself, the reward, and the
	// state observed after.
	Learn(prev State, action Action, reward int, next State)
}
