package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackrl/internal/deck"
)

// Engine runs rounds of play between an agent and the rule-bound dealer. It
// owns the shoe and the current round and implements the driver contract:
// StartRound, Decide, Apply, Finish. A single engine is strictly sequential;
// one round runs to completion before the next begins.
type Engine struct {
	shoe   *deck.Shoe
	agent  Agent
	logger *log.Logger

	round   *Round
	last    Decision
	decided bool
}

// NewEngine creates an engine playing from shoe with the given agent.
func NewEngine(shoe *deck.Shoe, agent Agent, logger *log.Logger) *Engine {
	return &Engine{
		shoe:   shoe,
		agent:  agent,
		logger: logger.WithPrefix("engine"),
	}
}

// Round returns the current round, or nil when none is in progress.
func (e *Engine) Round() *Round {
	return e.round
}

// StartRound deals a fresh round. The previous round must have been finished.
func (e *Engine) StartRound() (*Round, error) {
	if e.round != nil {
		return nil, fmt.Errorf("%w: round already in progress", ErrInvalidTransition)
	}
	round := NewRound(e.shoe)
	if err := round.DealInitial(); err != nil {
		return nil, err
	}
	e.round = round
	e.decided = false

	upcard, _ := round.DealerUpcard()
	e.logger.Debug("round started",
		"player", round.PlayerHand().String(),
		"total", round.PlayerHand().Score(),
		"upcard", upcard.String())
	return round, nil
}

// Decide asks the agent for its next action and records the observed state.
// The recorded state from the final Decide of the round is the one credited
// when the round finishes.
func (e *Engine) Decide() (Decision, error) {
	if e.round == nil || e.round.Phase() != PhaseInProgress {
		return Decision{}, fmt.Errorf("%w: decide with no round in play", ErrInvalidTransition)
	}
	state := ComputeState(e.round)
	decision := e.agent.MakeDecision(state)
	e.last = decision
	e.decided = true

	e.logger.Debug("agent decision",
		"state", fmt.Sprintf("%+v", decision.State),
		"values", fmt.Sprintf("[%.3f %.3f]", decision.Values[0], decision.Values[1]),
		"action", decision.Action,
		"epsilon", decision.Epsilon)
	return decision, nil
}

// Apply plays the given action against the current round and reports whether
// the round is now terminal.
func (e *Engine) Apply(action Action) (bool, error) {
	if e.round == nil {
		return false, fmt.Errorf("%w: apply with no round in play", ErrInvalidTransition)
	}
	var err error
	switch action {
	case Hit:
		err = e.round.Hit()
	case Stand:
		err = e.round.Stand()
	default:
		return false, fmt.Errorf("unknown action %d", action)
	}
	if err != nil {
		return false, err
	}
	return e.round.Phase() == PhaseTerminal, nil
}

// Finish computes the outcome of a terminal round and applies the round's
// single learning update: the state observed immediately before the final
// action against the state observed now. Intermediate hits earlier in the
// round are not individually credited.
func (e *Engine) Finish() (Outcome, error) {
	if e.round == nil {
		return Outcome{}, fmt.Errorf("%w: finish with no round in play", ErrInvalidTransition)
	}
	outcome, err := e.round.Outcome()
	if err != nil {
		return Outcome{}, err
	}

	if e.decided {
		next := ComputeState(e.round)
		e.agent.Learn(e.last.State, e.last.Action, outcome.Reward, next)
	}

	e.logger.Debug("round finished",
		"player", e.round.PlayerHand().Score(),
		"dealer", e.round.DealerHand().Score(),
		"reward", outcome.Reward,
		"result", outcome.Result)

	e.round = nil
	e.decided = false
	return outcome, nil
}

// PlayRound runs one full round: deal, decision loop, finish. It is the
// convenience path used by the trainer and the TUI auto-play mode.
func (e *Engine) PlayRound() (Outcome, error) {
	if _, err := e.StartRound(); err != nil {
		return Outcome{}, err
	}
	for e.round.Phase() == PhaseInProgress {
		decision, err := e.Decide()
		if err != nil {
			return Outcome{}, err
		}
		if _, err := e.Apply(decision.Action); err != nil {
			return Outcome{}, err
		}
	}
	return e.Finish()
}
