// Package tui is the interactive driver: it lets a user watch the learning
// agent play blackjack round by round, showing each decision's state,
// Q-values and exploration rate alongside the running session stats.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjackrl/internal/agent"
	"github.com/lox/blackjackrl/internal/deck"
	"github.com/lox/blackjackrl/internal/game"
	"github.com/lox/blackjackrl/internal/statistics"
)

const autoPlayInterval = 250 * time.Millisecond

// tickMsg drives auto-play rounds.
type tickMsg struct{}

// Model is the Bubble Tea model for interactive play.
type Model struct {
	engine *game.Engine
	agent  *agent.Agent
	stats  *statistics.Statistics
	logger *log.Logger

	viewport viewport.Model
	lines    []string

	autoPlay    bool
	round       int
	width       int
	height      int
	initialized bool
	quitting    bool
	err         error
}

// New creates the interactive play model.
func New(engine *game.Engine, a *agent.Agent, logger *log.Logger) *Model {
	return &Model{
		engine: engine,
		agent:  a,
		stats:  &statistics.Statistics{},
		logger: logger.WithPrefix("tui"),
		lines: []string{
			"Watch the agent learn blackjack.",
			"It explores at random early on and exploits its Q-table as epsilon decays.",
			"",
		},
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.initialized {
			m.viewport = viewport.New(msg.Width, max(msg.Height-5, 3))
			m.initialized = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = max(msg.Height-5, 3)
		}
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "enter", " ", "y":
			m.playRound()
			return m, nil
		case "a":
			m.autoPlay = !m.autoPlay
			if m.autoPlay {
				return m, m.tick()
			}
			return m, nil
		}

	case tickMsg:
		if m.autoPlay {
			m.playRound()
			return m, m.tick()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("blackjackrl"))
	b.WriteString("\n")
	if m.initialized {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(strings.Join(m.lines, "\n"))
	}
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	autoLabel := "a auto-play"
	if m.autoPlay {
		autoLabel = "a stop auto-play"
	}
	b.WriteString(HelpStyle.Render(fmt.Sprintf("enter play a round • %s • q quit", autoLabel)))
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(LossStyle.Render("error: " + m.err.Error()))
	}
	return b.String()
}

func (m *Model) statusLine() string {
	return StatsStyle.Render(fmt.Sprintf(
		"rounds %d • wins %d • losses %d • ties %d • win rate %.1f%% • epsilon %.4f • states %d",
		m.stats.Rounds, m.stats.Wins, m.stats.Losses, m.stats.Ties,
		m.stats.WinRate(), m.agent.Epsilon(), m.agent.States()))
}

// playRound runs one full round through the engine and appends a transcript
// of the hands, decisions and outcome to the log.
func (m *Model) playRound() {
	m.round++
	m.appendLine(fmt.Sprintf("── Round %d ──", m.round))

	round, err := m.engine.StartRound()
	if err != nil {
		m.fail(err)
		return
	}
	upcard, _ := round.DealerUpcard()
	m.appendLine(fmt.Sprintf("Player: %s (%d)  Dealer shows: %s",
		styleHand(round.PlayerHand()), round.PlayerHand().Score(), styleCard(upcard)))

	for round.Phase() == game.PhaseInProgress {
		decision, err := m.engine.Decide()
		if err != nil {
			m.fail(err)
			return
		}
		m.appendLine(DecisionStyle.Render(fmt.Sprintf(
			"Agent %ss  q=[%.2f %.2f] ε=%.4f",
			decision.Action, decision.Values[game.Hit], decision.Values[game.Stand], decision.Epsilon)))
		if _, err := m.engine.Apply(decision.Action); err != nil {
			m.fail(err)
			return
		}
		if decision.Action == game.Hit {
			m.appendLine(fmt.Sprintf("Player: %s (%d)",
				styleHand(round.PlayerHand()), round.PlayerHand().Score()))
		}
	}

	dealerHand := round.DealerHand()
	outcome, err := m.engine.Finish()
	if err != nil {
		m.fail(err)
		return
	}
	m.stats.Add(outcome)

	m.appendLine(fmt.Sprintf("Dealer: %s (%d)", styleHand(dealerHand), dealerHand.Score()))
	m.appendLine(styleResult(outcome))
	m.appendLine("")
	m.refreshViewport()
}

func (m *Model) fail(err error) {
	m.err = err
	m.autoPlay = false
	m.logger.Error("round failed", "error", err)
}

func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
}

func (m *Model) refreshViewport() {
	if !m.initialized {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(autoPlayInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func styleHand(h game.Hand) string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = styleCard(c)
	}
	return strings.Join(parts, " ")
}

func styleCard(c deck.Card) string {
	if c.IsRed() {
		return RedCardStyle.Render(c.String())
	}
	return BlackCardStyle.Render(c.String())
}

func styleResult(o game.Outcome) string {
	switch {
	case o.Reward > 0:
		return WinStyle.Render(o.Result)
	case o.Reward < 0:
		return LossStyle.Render(o.Result)
	default:
		return TieStyle.Render(o.Result)
	}
}
