package agent

import "github.com/lox/blackjackrl/internal/game"

// QTable maps learning states to a fixed pair of action values, indexed by
// game.Hit and game.Stand. Entries are created lazily on first visit and the
// table grows monotonically for the life of the process; there is no eviction
// and no persistence across runs.
type QTable struct {
	values map[game.State][2]float64
}

// NewQTable returns an empty table.
func NewQTable() *QTable {
	return &QTable{values: make(map[game.State][2]float64)}
}

// Ensure returns the action values for state, inserting a zero entry if the
// state has never been visited.
func (t *QTable) Ensure(state game.State) [2]float64 {
	values, ok := t.values[state]
	if !ok {
		t.values[state] = values
	}
	return values
}

// Lookup returns the action values for state without inserting an entry.
// Unvisited states read as [0,0]; this is the accessor the TD update uses
// for the max-future term so that lookups never grow the table.
func (t *QTable) Lookup(state game.State) [2]float64 {
	return t.values[state]
}

// Set writes the value for one action of a state, creating the entry if
// needed.
func (t *QTable) Set(state game.State, action game.Action, value float64) {
	values := t.values[state]
	values[action] = value
	t.values[state] = values
}

// Len returns the number of states tracked.
func (t *QTable) Len() int {
	return len(t.values)
}
