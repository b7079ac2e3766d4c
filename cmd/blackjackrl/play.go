package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/blackjackrl/cmd/blackjackrl/shared"
	"github.com/lox/blackjackrl/internal/agent"
	"github.com/lox/blackjackrl/internal/deck"
	"github.com/lox/blackjackrl/internal/game"
	"github.com/lox/blackjackrl/internal/randutil"
	"github.com/lox/blackjackrl/internal/trainer"
	"github.com/lox/blackjackrl/internal/tui"
)

// PlayCmd runs the interactive TUI session
type PlayCmd struct {
	Seed   int64  `kong:"help='Deterministic RNG seed (0 uses a time-based seed)'"`
	Config string `kong:"default='blackjackrl.hcl',help='Path to HCL config file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)
	lipgloss.SetColorProfile(termenv.ColorProfile())

	fileCfg, err := trainer.LoadFile(c.Config)
	if err != nil {
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)

	a, err := agent.New(fileCfg.AgentConfig(), rng)
	if err != nil {
		return err
	}

	engine := game.NewEngine(deck.NewShoe(rng), a, logger)
	model := tui.New(engine, a, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
