// Package trainer runs the auto-play training session: many rounds of play
// through the engine with progress reporting, optional pacing and context
// cancellation.
package trainer

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjackrl/internal/agent"
	"github.com/lox/blackjackrl/internal/deck"
	"github.com/lox/blackjackrl/internal/game"
	"github.com/lox/blackjackrl/internal/randutil"
	"github.com/lox/blackjackrl/internal/statistics"
)

// Config controls a training session.
type Config struct {
	// Rounds is the number of full rounds to play.
	Rounds int

	// Seed seeds the shoe and the agent's exploration. Zero picks a
	// time-based seed, making runs non-deterministic.
	Seed int64

	// Delay paces auto-play by waiting between rounds. Zero disables pacing.
	Delay time.Duration

	// ProgressEvery emits a progress callback every n rounds. Zero reports
	// only the final round.
	ProgressEvery int

	Logger *log.Logger

	// Clock defaults to the real clock; tests inject a mock.
	Clock quartz.Clock
}

// Validate ensures the session parameters are safe to use.
func (c Config) Validate() error {
	if c.Rounds <= 0 {
		return errors.New("rounds must be > 0")
	}
	if c.Delay < 0 {
		return errors.New("delay cannot be negative")
	}
	if c.ProgressEvery < 0 {
		return errors.New("progress interval cannot be negative")
	}
	return nil
}

// Progress is emitted during a session so drivers can display training state.
type Progress struct {
	Round   int     `json:"round"`
	Reward  int     `json:"reward"`
	Result  string  `json:"result"`
	Epsilon float64 `json:"epsilon"`
	States  int     `json:"states"`
	WinRate float64 `json:"win_rate"`
}

// Trainer plays training rounds against the dealer with a single Q-learning
// agent. One trainer owns one agent, one shoe and one engine; rounds are
// strictly sequential.
type Trainer struct {
	cfg    Config
	agent  *agent.Agent
	engine *game.Engine
	clock  quartz.Clock
	logger *log.Logger
}

// New constructs a training session from session and agent configs.
func New(cfg Config, agentCfg agent.Config) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)

	a, err := agent.New(agentCfg, rng)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	shoe := deck.NewShoe(rng)
	return &Trainer{
		cfg:    cfg,
		agent:  a,
		engine: game.NewEngine(shoe, a, logger),
		clock:  clock,
		logger: logger.WithPrefix("trainer"),
	}, nil
}

// Agent returns the trained agent.
func (t *Trainer) Agent() *agent.Agent {
	return t.agent
}

// Run plays the configured number of rounds, invoking progress as configured.
// Cancelling ctx stops the session between rounds and returns the statistics
// gathered so far alongside ctx's error.
func (t *Trainer) Run(ctx context.Context, progress func(Progress)) (*statistics.Statistics, error) {
	stats := &statistics.Statistics{}

	batch := t.cfg.ProgressEvery
	if batch <= 0 {
		batch = t.cfg.Rounds
	}

	for round := 1; round <= t.cfg.Rounds; round++ {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		outcome, err := t.engine.PlayRound()
		if err != nil {
			return stats, err
		}
		stats.Add(outcome)

		if progress != nil && (round%batch == 0 || round == t.cfg.Rounds) {
			progress(Progress{
				Round:   round,
				Reward:  outcome.Reward,
				Result:  outcome.Result,
				Epsilon: t.agent.Epsilon(),
				States:  t.agent.States(),
				WinRate: stats.WinRate(),
			})
		}

		if t.cfg.Delay > 0 && round < t.cfg.Rounds {
			timer := t.clock.NewTimer(t.cfg.Delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return stats, ctx.Err()
			}
		}
	}

	t.logger.Info("session complete",
		"rounds", stats.Rounds,
		"wins", stats.Wins,
		"losses", stats.Losses,
		"ties", stats.Ties,
		"winRate", stats.WinRate(),
		"states", t.agent.States(),
		"epsilon", t.agent.Epsilon())

	if err := stats.Validate(); err != nil {
		return stats, err
	}
	return stats, nil
}
