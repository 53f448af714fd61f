package state

import (
	"fmt"
	"math/rand"
)

// GenerateBoard lays out a deterministic ring board: regions arranged in
// a cycle, every third pair bridged, territories dealt round-robin and
// the starting armies spread across each player's holdings. It exists
// so tests and the CLI have a playable state; board quality is not a
// concern of the kernel.
func GenerateBoard(g *GameState, rng *rand.Rand) {
	for i := 0; i < g.Regions; i++ {
		t := NewTerritory(i, fmt.Sprintf("Region %d", i))
		t.Continent = fmt.Sprintf("Continent %d", i/5)
		g.AddTerritory(t)
	}

	for i := 0; i < g.Regions; i++ {
		t := g.Territory(i)
		t.AddAdjacent((i + 1) % g.Regions)
		t.AddAdjacent((i - 1 + g.Regions) % g.Regions)
		if i%3 == 0 && g.Regions > 4 {
			t.AddAdjacent((i + g.Regions/2) % g.Regions)
			g.Territory((i + g.Regions/2) % g.Regions).AddAdjacent(i)
		}
	}

	for i := 0; i < g.Regions; i++ {
		owner := i % g.NumPlayers
		g.Territory(i).SetOwner(owner, 1)
	}

	// Spread the remaining starting armies over each player's
	// territories using the shared stream, so boards are reproducible
	// per seed.
	for player := 0; player < g.NumPlayers; player++ {
		owned := g.TerritoriesOwnedBy(player)
		if len(owned) == 0 {
			continue
		}
		remaining := g.StartingArmies - len(owned)
		for i := 0; i < remaining; i++ {
			owned[rng.Intn(len(owned))].Armies++
		}
	}

	g.UpdateStatistics()
}

// Initialise prepares a state for simulation: picks the starting player
// with the shared stream (generating a board first when generateBoard is
// set or none is present) and enters the player-turn phase.
func (g *GameState) Initialise(rng *rand.Rand, generateBoard bool) {
	if len(g.Territories) == 0 || generateBoard {
		GenerateBoard(g, rng)
	}
	ids := g.PlayerIDs()
	g.CurrentPlayer = ids[rng.Intn(len(ids))]
	g.StartingPlayer = g.CurrentPlayer
	g.Phase = PhasePlayerTurn
	g.UpdateStatistics()
}
