package state

import (
	"fmt"
	"time"
)

// Player holds one participant's standing. Controlled and TotalArmies
// are derived statistics, recomputed by GameState.UpdateStatistics
// rather than maintained transactionally.
type Player struct {
	ID    int
	Name  string
	Color [3]uint8

	Active bool
	Human  bool

	// Runtime accumulates the wall-clock time this player's agent has
	// spent deciding.
	Runtime time.Duration

	Controlled  map[int]struct{}
	TotalArmies int
}

// NewPlayer creates an active, non-human player.
func NewPlayer(id int, name string, color [3]uint8) *Player {
	return &Player{
		ID:         id,
		Name:       name,
		Color:      color,
		Active:     true,
		Controlled: make(map[int]struct{}),
	}
}

// TerritoryCount returns the number of territories the player controls,
// per the last statistics update.
func (p *Player) TerritoryCount() int { return len(p.Controlled) }

// IsEliminated reports whether the player controls no territories.
func (p *Player) IsEliminated() bool { return len(p.Controlled) == 0 }

// Clone returns a deep copy of the player.
func (p *Player) Clone() *Player {
	cpy := *p
	cpy.Controlled = make(map[int]struct{}, len(p.Controlled))
	for id := range p.Controlled {
		cpy.Controlled[id] = struct{}{}
	}
	return &cpy
}

func (p *Player) String() string {
	return fmt.Sprintf("Player(id=%d, name=%q, active=%t, territories=%d, armies=%d)",
		p.ID, p.Name, p.Active, len(p.Controlled), p.TotalArmies)
}
