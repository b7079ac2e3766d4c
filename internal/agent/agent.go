// Package agent implements a tabular Q-learning player for the blackjack
// engine: epsilon-greedy action selection with multiplicative decay and a
// one-step temporal-difference update per completed round.
package agent

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/blackjackrl/internal/game"
)

// Config holds the learning parameters. All values are validated at
// construction; a misconfigured agent is a usage error, not something to
// limp along with.
type Config struct {
	// Alpha is the learning rate blended into each TD update, in (0,1].
	Alpha float64

	// Gamma discounts the estimated future value, in [0,1].
	Gamma float64

	// Epsilon is the starting exploration probability, in [0,1].
	Epsilon float64

	// Decay multiplies epsilon after every decision, in (0,1]. There is no
	// floor: epsilon tends asymptotically toward zero.
	Decay float64
}

// Validate ensures the learning parameters are in range.
func (c Config) Validate() error {
	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha must be in (0,1], got %v", c.Alpha)
	}
	if c.Gamma < 0 || c.Gamma > 1 {
		return fmt.Errorf("gamma must be in [0,1], got %v", c.Gamma)
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0,1], got %v", c.Epsilon)
	}
	if c.Decay <= 0 || c.Decay > 1 {
		return fmt.Errorf("decay must be in (0,1], got %v", c.Decay)
	}
	return nil
}

// DefaultConfig returns the standard training parameters.
func DefaultConfig() Config {
	return Config{
		Alpha:   0.5,
		Gamma:   0.9,
		Epsilon: 1.0,
		Decay:   0.995,
	}
}

// Agent is a tabular Q-learning decision maker. It owns its table as instance
// state; there are no globals, and a single agent must not be shared across
// concurrent engines without external coordination.
type Agent struct {
	cfg     Config
	epsilon float64
	table   *QTable
	rng     *rand.Rand
}

// New constructs an agent with validated parameters drawing exploration
// randomness from rng.
func New(cfg Config, rng *rand.Rand) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("agent config: %w", err)
	}
	if rng == nil {
		return nil, errors.New("agent requires a random source")
	}
	return &Agent{
		cfg:     cfg,
		epsilon: cfg.Epsilon,
		table:   NewQTable(),
		rng:     rng,
	}, nil
}

// MakeDecision picks hit or stand for the observed state. With probability
// epsilon the action is uniformly random, otherwise the higher-valued action
// wins with ties broken toward hit. Epsilon decays after every call, once per
// decision rather than once per round.
func (a *Agent) MakeDecision(state game.State) game.Decision {
	values := a.table.Ensure(state)

	var action game.Action
	if a.rng.Float64() < a.epsilon {
		action = game.Action(a.rng.IntN(2))
	} else {
		action = game.Hit
		if values[game.Stand] > values[game.Hit] {
			action = game.Stand
		}
	}

	a.epsilon *= a.cfg.Decay

	return game.Decision{
		Action:  action,
		State:   state,
		Values:  values,
		Epsilon: a.epsilon,
	}
}

// Learn applies the one-step temporal-difference update:
//
//	Q[prev][a] += alpha * (reward + gamma*max(Q[next]) - Q[prev][a])
//
// The next-state lookup never inserts into the table; an unseen next state
// contributes a zero future term.
func (a *Agent) Learn(prev game.State, action game.Action, reward int, next game.State) {
	current := a.table.Lookup(prev)[action]
	future := maxValue(a.table.Lookup(next))
	updated := current + a.cfg.Alpha*(float64(reward)+a.cfg.Gamma*future-current)
	a.table.Set(prev, action, updated)
}

// Epsilon returns the current exploration probability.
func (a *Agent) Epsilon() float64 {
	return a.epsilon
}

// States returns the number of distinct states the agent has visited.
func (a *Agent) States() int {
	return a.table.Len()
}

// Values returns the current action values for a state without recording a
// visit. Used by drivers for display.
func (a *Agent) Values(state game.State) [2]float64 {
	return a.table.Lookup(state)
}

func maxValue(values [2]float64) float64 {
	if values[0] >= values[1] {
		return values[0]
	}
	return values[1]
}
