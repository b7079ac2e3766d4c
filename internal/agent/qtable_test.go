package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/blackjackrl/internal/deck"
	"github.com/lox/blackjackrl/internal/game"
)

func TestQTableEnsureInsertsOnce(t *testing.T) {
	table := NewQTable()
	state := game.State{PlayerTotal: 14, DealerUpcard: deck.King}

	assert.Equal(t, [2]float64{0, 0}, table.Ensure(state))
	assert.Equal(t, 1, table.Len())

	table.Set(state, game.Stand, 2.5)
	assert.Equal(t, [2]float64{0, 2.5}, table.Ensure(state), "ensure must not reset values")
	assert.Equal(t, 1, table.Len())
}

func TestQTableLookupDoesNotInsert(t *testing.T) {
	table := NewQTable()
	state := game.State{PlayerTotal: 20, DealerUpcard: deck.Two}

	assert.Equal(t, [2]float64{0, 0}, table.Lookup(state))
	assert.Equal(t, 0, table.Len())
}

func TestQTableSetCreatesEntry(t *testing.T) {
	table := NewQTable()
	state := game.State{PlayerTotal: 11, DealerUpcard: deck.Ace, SoftAce: true}

	table.Set(state, game.Hit, -1.25)
	assert.Equal(t, [2]float64{-1.25, 0}, table.Lookup(state))
	assert.Equal(t, 1, table.Len())
}

func TestQTableStatesAliasByValue(t *testing.T) {
	table := NewQTable()
	a := game.State{PlayerTotal: 17, DealerUpcard: deck.Six, SoftAce: true}
	b := game.State{PlayerTotal: 17, DealerUpcard: deck.Six, SoftAce: true}

	table.Set(a, game.Hit, 3)
	assert.Equal(t, [2]float64{3, 0}, table.Lookup(b), "equal states share one entry")
	assert.Equal(t, 1, table.Len())
}
