package agents

import (
	"fmt"
	"math/rand"

	"github.com/riskforge/risksim/internal/events"
	"github.com/riskforge/risksim/internal/stack"
	"github.com/riskforge/risksim/internal/state"
)

// RandomAgent is the baseline policy: placements spread one credit at a
// time over random holdings, attacks fire with the configured
// probability from random eligible borders, and movement consolidates
// forces from safe territories toward the front line.
type RandomAgent struct {
	BaseAgent
	rng *rand.Rand
}

// NewRandomAgent creates a random agent drawing from the shared stream.
func NewRandomAgent(playerID int, attackProbability float64, rng *rand.Rand) *RandomAgent {
	return &RandomAgent{
		BaseAgent: NewBaseAgent(playerID, fmt.Sprintf("Random Agent %d", playerID+1), attackProbability),
		rng:       rng,
	}
}

// DecidePlacement spends every assigned credit, one troop at a time, on
// random owned territories.
func (a *RandomAgent) DecidePlacement(g *state.GameState, _ *Goal) []stack.Element {
	owned := g.TerritoriesOwnedBy(a.PlayerID())
	if len(owned) == 0 {
		return nil
	}
	plan := make([]stack.Element, 0, g.PlacementsLeft)
	for i := 0; i < g.PlacementsLeft; i++ {
		target := owned[a.rng.Intn(len(owned))]
		plan = append(plan, events.NewTroopPlacement(g.CurrentTurn, a.PlayerID(), target.ID, 1))
	}
	return plan
}

// DecideAttack keeps proposing attacks while the probability holds,
// using each source territory at most once per turn.
func (a *RandomAgent) DecideAttack(g *state.GameState, _ *Goal) []stack.Element {
	type border struct{ from, to int }

	var candidates []border
	for _, t := range g.TerritoriesOwnedBy(a.PlayerID()) {
		if !t.CanAttackFrom() {
			continue
		}
		for _, adjID := range t.AdjacentIDs() {
			adj := g.Territory(adjID)
			if adj != nil && !adj.IsOwnedBy(a.PlayerID()) && adj.CanBeAttacked() {
				candidates = append(candidates, border{from: t.ID, to: adjID})
			}
		}
	}

	var plan []stack.Element
	usedSources := make(map[int]struct{})
	for len(candidates) > 0 {
		if a.rng.Float64() > a.AttackProbability() {
			break
		}
		pick := candidates[a.rng.Intn(len(candidates))]
		from := g.Territory(pick.from)
		maxTroops := from.Armies - 1
		if maxTroops < 1 {
			break
		}
		troops := a.rng.Intn(maxTroops) + 1
		plan = append(plan, events.NewAttackOnTerritory(g.CurrentTurn, a.PlayerID(), pick.from, pick.to, troops))

		usedSources[pick.from] = struct{}{}
		remaining := candidates[:0]
		for _, c := range candidates {
			if _, used := usedSources[c.from]; !used {
				remaining = append(remaining, c)
			}
		}
		candidates = remaining
	}
	return plan
}

// DecideMovement walks a safe territory's spare armies toward the front
// line. The path runs through owned territories and is emitted as one
// single-hop movement per edge, so the kernel validates each hop.
func (a *RandomAgent) DecideMovement(g *state.GameState, _ *Goal) []stack.Element {
	owned := g.TerritoriesOwnedBy(a.PlayerID())
	if len(owned) <= 1 {
		return nil
	}

	ownedIDs := make(map[int]struct{}, len(owned))
	for _, t := range owned {
		ownedIDs[t.ID] = struct{}{}
	}

	frontline := make(map[int]struct{})
	var safe []*state.Territory
	for _, t := range owned {
		enemyNeighbor := false
		for _, adjID := range t.AdjacentIDs() {
			adj := g.Territory(adjID)
			if adj != nil && !adj.IsOwnedBy(a.PlayerID()) {
				enemyNeighbor = true
				break
			}
		}
		if enemyNeighbor {
			frontline[t.ID] = struct{}{}
		} else if t.Armies > 1 {
			safe = append(safe, t)
		}
	}
	if len(safe) == 0 || len(frontline) == 0 {
		return nil
	}

	type route struct {
		source int
		path   []int
		troops int
	}
	var routes []route
	for _, source := range safe {
		if path := a.pathToFrontline(g, source.ID, ownedIDs, frontline); len(path) > 0 {
			routes = append(routes, route{source: source.ID, path: path, troops: source.Armies - 1})
		}
	}
	if len(routes) == 0 {
		return nil
	}

	chosen := routes[a.rng.Intn(len(routes))]
	plan := make([]stack.Element, 0, len(chosen.path))
	from := chosen.source
	for _, hop := range chosen.path {
		plan = append(plan, events.NewMovementOfTroops(g.CurrentTurn, a.PlayerID(), from, hop, chosen.troops))
		from = hop
	}
	return plan
}

// pathToFrontline finds a shortest path from the source to any
// front-line territory through owned territories, breadth first. The
// returned hops exclude the source itself.
func (a *RandomAgent) pathToFrontline(g *state.GameState, source int, ownedIDs, frontline map[int]struct{}) []int {
	visited := map[int]struct{}{source: {}}
	parents := make(map[int]int)
	queue := []int{source}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if _, ok := frontline[current]; ok && current != source {
			var path []int
			for at := current; at != source; at = parents[at] {
				path = append([]int{at}, path...)
			}
			return path
		}

		t := g.Territory(current)
		if t == nil {
			continue
		}
		for _, adjID := range t.AdjacentIDs() {
			if _, owned := ownedIDs[adjID]; !owned {
				continue
			}
			if _, seen := visited[adjID]; seen {
				continue
			}
			visited[adjID] = struct{}{}
			parents[adjID] = current
			queue = append(queue, adjID)
		}
	}
	return nil
}
