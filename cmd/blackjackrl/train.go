package main

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjackrl/cmd/blackjackrl/shared"
	"github.com/lox/blackjackrl/internal/monitor"
	"github.com/lox/blackjackrl/internal/trainer"
)

const (
	defaultRounds        = 1000
	defaultProgressEvery = 100
)

// TrainCmd runs a headless training session
type TrainCmd struct {
	Rounds        int           `kong:"help='Number of rounds to play (default 1000)'"`
	Seed          int64         `kong:"help='Deterministic RNG seed (0 uses a time-based seed)'"`
	Config        string        `kong:"default='blackjackrl.hcl',help='Path to HCL config file'"`
	Listen        string        `kong:"help='Serve live progress over WebSocket on this address'"`
	Delay         time.Duration `kong:"help='Pause between rounds, e.g. 50ms'"`
	ProgressEvery int           `kong:"help='Report progress every n rounds (default 100)'"`
	Debug         bool          `kong:"help='Enable debug logging'"`
}

func (c *TrainCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	fileCfg, err := trainer.LoadFile(c.Config)
	if err != nil {
		return err
	}

	cfg := fileCfg.SessionConfig(trainer.Config{
		Rounds:        c.Rounds,
		Seed:          c.Seed,
		Delay:         c.Delay,
		ProgressEvery: c.ProgressEvery,
		Logger:        logger,
	})
	if cfg.Rounds == 0 {
		cfg.Rounds = defaultRounds
	}
	if cfg.ProgressEvery == 0 {
		cfg.ProgressEvery = defaultProgressEvery
	}

	listen := c.Listen
	if listen == "" {
		listen = fileCfg.ListenAddr()
	}

	t, err := trainer.New(cfg, fileCfg.AgentConfig())
	if err != nil {
		return err
	}

	logger.Info("starting training session",
		"rounds", cfg.Rounds,
		"seed", cfg.Seed,
		"delay", cfg.Delay,
		"progressEvery", cfg.ProgressEvery)

	ctx, cancel := context.WithCancel(shared.SetupSignalHandler(logger))
	defer cancel()

	var mon *monitor.Server
	g, gctx := errgroup.WithContext(ctx)
	if listen != "" {
		mon = monitor.New(listen, logger)
		g.Go(func() error {
			return mon.Run(gctx)
		})
	}

	stats, runErr := t.Run(gctx, func(p trainer.Progress) {
		logger.Info("progress",
			"round", p.Round,
			"result", p.Result,
			"winRate", fmt.Sprintf("%.1f%%", p.WinRate),
			"epsilon", fmt.Sprintf("%.4f", p.Epsilon),
			"states", p.States)
		if mon != nil {
			mon.Broadcast(p)
		}
	})

	// Stop the monitor once training is done, whatever the reason.
	cancel()
	if err := g.Wait(); err != nil && runErr == nil {
		runErr = err
	}

	fmt.Printf("Played %d rounds: %d wins, %d losses, %d ties (%.1f%% win rate excluding ties)\n",
		stats.Rounds, stats.Wins, stats.Losses, stats.Ties, stats.WinRate())
	fmt.Printf("Agent explored %d states, final epsilon %.4f\n",
		t.Agent().States(), t.Agent().Epsilon())

	if runErr != nil {
		return runErr
	}
	return nil
}
