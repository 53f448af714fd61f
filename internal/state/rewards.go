package state

// PositionRewards scores every player's standing as an even blend of
// territory share and army share, in [0, 1]. Planner families use it to
// compare candidate futures.
func PositionRewards(g *GameState) map[int]float64 {
	totalTerritories := len(g.Territories)
	var totalArmies int
	for _, p := range g.Players {
		totalArmies += p.TotalArmies
	}

	rewards := make(map[int]float64, len(g.Players))
	for _, id := range g.PlayerIDs() {
		p := g.Players[id]

		var territoryRatio, armyRatio float64
		if totalTerritories > 0 {
			territoryRatio = float64(p.TerritoryCount()) / float64(totalTerritories)
		}
		if totalArmies > 0 {
			armyRatio = float64(p.TotalArmies) / float64(totalArmies)
		}

		rewards[id] = 0.5*territoryRatio + 0.5*armyRatio
	}
	return rewards
}
