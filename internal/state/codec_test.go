package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codecFixture(t *testing.T) *GameState {
	t.Helper()
	g := NewGameState(4, 2, 15)
	g.Phase = PhasePlaceTroops
	g.CurrentTurn = 3
	g.TotalTurns = 2
	g.CurrentPlayer = 1
	g.StartingPlayer = 0
	g.PlacementsLeft = 2
	g.Players[0].Name = `Player "Zero"`
	g.Players[1].Human = true

	for i := 0; i < 4; i++ {
		terr := NewTerritory(i, "Region "+string(rune('A'+i)))
		terr.Continent = "North"
		terr.AddAdjacent((i + 1) % 4)
		terr.AddAdjacent((i + 3) % 4)
		terr.SetOwner(i%2, i+1)
		g.AddTerritory(terr)
	}
	g.UpdateStatistics()
	return g
}

func TestRenderParseRoundTrip(t *testing.T) {
	g := codecFixture(t)

	rendered := Render(g)
	parsed, err := ParseString(rendered)
	require.NoError(t, err)

	assert.Equal(t, rendered, Render(parsed), "render -> parse -> render must be byte-identical")

	assert.Equal(t, g.CurrentTurn, parsed.CurrentTurn)
	assert.Equal(t, g.CurrentPlayer, parsed.CurrentPlayer)
	assert.Equal(t, g.PlacementsLeft, parsed.PlacementsLeft)
	assert.Equal(t, g.Phase, parsed.Phase)
	assert.Equal(t, `Player "Zero"`, parsed.Player(0).Name)
	assert.True(t, parsed.Player(1).Human)

	terr := parsed.Territory(2)
	require.NotNil(t, terr)
	assert.Equal(t, 0, terr.Owner)
	assert.Equal(t, 3, terr.Armies)
	assert.True(t, terr.IsAdjacentTo(1))
	assert.True(t, terr.IsAdjacentTo(3))
}

func TestRenderStableUnderStatisticsUpdate(t *testing.T) {
	g := codecFixture(t)
	rendered := Render(g)

	parsed, err := ParseString(rendered)
	require.NoError(t, err)
	parsed.UpdateStatistics()

	assert.Equal(t, rendered, Render(parsed))
}

func TestParseRejectsMalformedDocuments(t *testing.T) {
	cases := map[string]string{
		"empty":             "",
		"bad header":        "not-a-state\n",
		"no game record":    "risksim-state v1\nend\n",
		"orphan player":     "risksim-state v1\nplayer id=0 name=\"x\" active=true human=false\n",
		"unknown record":    "risksim-state v1\ngame regions=1 players=1 starting_armies=1 phase=init turn=0 total_turns=0 current=0 starting=0 winner=-1 credits=0\nbogus id=1\n",
		"malformed field":   "risksim-state v1\ngame regions=1 players=1 starting_armies=1 phase=init turn=0 total_turns=0 current=0 starting=0 winner=-1 credits=zero\n",
		"unknown phase":     "risksim-state v1\ngame regions=1 players=1 starting_armies=1 phase=warp turn=0 total_turns=0 current=0 starting=0 winner=-1 credits=0\n",
		"unterminated name": "risksim-state v1\ngame regions=1 players=1 starting_armies=1 phase=init turn=0 total_turns=0 current=0 starting=0 winner=-1 credits=0\nplayer id=0 name=\"x active=true human=false\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseString(doc)
			assert.Error(t, err)
		})
	}
}

func TestRenderOmitsUIFields(t *testing.T) {
	g := codecFixture(t)
	g.Territory(0).Vertices = [][2]int{{0, 0}, {10, 0}, {5, 8}}
	g.Territory(0).Center = [2]int{5, 3}

	rendered := Render(g)
	assert.NotContains(t, rendered, "vertices")
	assert.NotContains(t, rendered, "center")

	parsed, err := ParseString(rendered)
	require.NoError(t, err)
	assert.Equal(t, rendered, Render(parsed))
}
