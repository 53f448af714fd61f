package state

import (
	"fmt"
	"sort"
)

// NoWinner marks a game without a decided winner.
const NoWinner = -1

// defaultColors is the palette players are assigned from, by id.
var defaultColors = [][3]uint8{
	{200, 50, 50},
	{50, 200, 50},
	{50, 50, 200},
	{200, 200, 50},
	{200, 50, 200},
	{50, 200, 200},
	{150, 75, 0},
	{255, 165, 0},
}

// GameState is the complete mutable world of a simulation: territories,
// players and the turn bookkeeping. During a run it is written from
// within the controller's steps: armies, ownership and placement
// credits change through side-effect events, while the phase, turn
// counters, winner, player statistics and runtime are written directly
// by the engines that process turn, phase and agent elements.
type GameState struct {
	Regions        int
	NumPlayers     int
	StartingArmies int

	Phase          Phase
	CurrentTurn    int
	TotalTurns     int
	CurrentPlayer  int
	Winner         int
	StartingPlayer int

	// PlacementsLeft is the reinforcement credit counter for the
	// current placement phase. It never goes negative.
	PlacementsLeft int

	Territories map[int]*Territory
	Players     map[int]*Player
}

// NewGameState creates a state with initialized players and no board.
func NewGameState(regions, numPlayers, startingArmies int) *GameState {
	g := &GameState{
		Regions:        regions,
		NumPlayers:     numPlayers,
		StartingArmies: startingArmies,
		Phase:          PhaseInit,
		Winner:         NoWinner,
		Territories:    make(map[int]*Territory),
		Players:        make(map[int]*Player),
	}
	for i := 0; i < numPlayers; i++ {
		g.Players[i] = NewPlayer(i, fmt.Sprintf("Player %d", i+1), defaultColors[i%len(defaultColors)])
	}
	return g
}

// Territory returns the territory with the given id, or nil.
func (g *GameState) Territory(id int) *Territory { return g.Territories[id] }

// Player returns the player with the given id, or nil.
func (g *GameState) Player(id int) *Player { return g.Players[id] }

// AddTerritory registers a territory on the board.
func (g *GameState) AddTerritory(t *Territory) { g.Territories[t.ID] = t }

// TerritoryIDs returns every territory id in ascending order.
func (g *GameState) TerritoryIDs() []int {
	ids := make([]int, 0, len(g.Territories))
	for id := range g.Territories {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// PlayerIDs returns every player id in ascending order.
func (g *GameState) PlayerIDs() []int {
	ids := make([]int, 0, len(g.Players))
	for id := range g.Players {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// CalculateReinforcements works out the reinforcement credit for a
// player: a floor of three, otherwise a third of their territories.
func (g *GameState) CalculateReinforcements(player int) int {
	p := g.Player(player)
	if p == nil {
		return 0
	}
	credits := p.TerritoryCount() / 3
	if credits < 3 {
		credits = 3
	}
	return credits
}

// ActivePlayers returns the players still in the game, in id order.
func (g *GameState) ActivePlayers() []*Player {
	var active []*Player
	for _, id := range g.PlayerIDs() {
		p := g.Players[id]
		if p.Active && !p.IsEliminated() {
			active = append(active, p)
		}
	}
	return active
}

// TerritoriesOwnedBy returns the territories a player owns, in id order.
func (g *GameState) TerritoriesOwnedBy(player int) []*Territory {
	var owned []*Territory
	for _, id := range g.TerritoryIDs() {
		if t := g.Territories[id]; t.IsOwnedBy(player) {
			owned = append(owned, t)
		}
	}
	return owned
}

// FreeTerritories returns the unowned territories, in id order.
func (g *GameState) FreeTerritories() []*Territory {
	var free []*Territory
	for _, id := range g.TerritoryIDs() {
		if t := g.Territories[id]; t.IsFree() {
			free = append(free, t)
		}
	}
	return free
}

// AdvanceTurn moves play to the next active player, wrapping around the
// table. Passing the starting player increments the turn counters. The
// walk is bounded by the table size, so a lone surviving player cannot
// spin it forever.
func (g *GameState) AdvanceTurn() {
	var active int
	for _, p := range g.Players {
		if p.Active {
			active++
		}
	}
	if active <= 1 {
		return
	}
	for i := 0; i < g.NumPlayers; i++ {
		g.CurrentPlayer = (g.CurrentPlayer + 1) % g.NumPlayers
		if g.CurrentPlayer == g.StartingPlayer {
			g.TotalTurns++
			g.CurrentTurn++
		}
		if p := g.Player(g.CurrentPlayer); p != nil && p.Active {
			return
		}
	}
}

// CheckVictory looks for a winner: a single remaining active player, or
// a player owning every territory. Finding one records it and moves the
// game to its end phase.
func (g *GameState) CheckVictory() (int, bool) {
	active := g.ActivePlayers()
	if len(active) == 1 {
		g.Winner = active[0].ID
		g.Phase = PhaseGameEnd
		return g.Winner, true
	}
	for _, p := range active {
		if p.TerritoryCount() == len(g.Territories) && len(g.Territories) > 0 {
			g.Winner = p.ID
			g.Phase = PhaseGameEnd
			return p.ID, true
		}
	}
	return NoWinner, false
}

// UpdateStatistics recomputes every player's controlled-territory set
// and army total from territory ownership, then deactivates players who
// control nothing.
func (g *GameState) UpdateStatistics() {
	for _, p := range g.Players {
		owned := g.TerritoriesOwnedBy(p.ID)
		p.Controlled = make(map[int]struct{}, len(owned))
		p.TotalArmies = 0
		for _, t := range owned {
			p.Controlled[t.ID] = struct{}{}
			p.TotalArmies += t.Armies
		}
	}
	for _, p := range g.Players {
		if p.Active && p.IsEliminated() {
			p.Active = false
		}
	}
}

// TotalArmies sums the armies on every territory.
func (g *GameState) TotalArmies() int {
	var total int
	for _, t := range g.Territories {
		total += t.Armies
	}
	return total
}

// Clone returns a deep copy of the state.
func (g *GameState) Clone() *GameState {
	cpy := *g
	cpy.Territories = make(map[int]*Territory, len(g.Territories))
	for id, t := range g.Territories {
		cpy.Territories[id] = t.Clone()
	}
	cpy.Players = make(map[int]*Player, len(g.Players))
	for id, p := range g.Players {
		cpy.Players[id] = p.Clone()
	}
	return &cpy
}

// Excerpt produces a short diagnostic description of the state, used
// when reporting fatal invariant violations.
func (g *GameState) Excerpt() string {
	return fmt.Sprintf("phase=%s turn=%d player=%d credits=%d territories=%d armies=%d",
		g.Phase, g.CurrentTurn, g.CurrentPlayer, g.PlacementsLeft, len(g.Territories), g.TotalArmies())
}
