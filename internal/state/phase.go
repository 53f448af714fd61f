package state

import "fmt"

// Phase represents the broad phases of a simulation run.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseGameTurn
	PhasePlayerTurn
	PhaseGetTroops
	PhasePlaceTroops
	PhaseMoveTroops
	PhaseEndTurn
	PhaseGameEnd
	PhaseScore
)

var phaseNames = map[Phase]string{
	PhaseInit:        "init",
	PhaseGameTurn:    "game_turn",
	PhasePlayerTurn:  "player_turn",
	PhaseGetTroops:   "get_troops",
	PhasePlaceTroops: "place_troops",
	PhaseMoveTroops:  "move_troops",
	PhaseEndTurn:     "end_turn",
	PhaseGameEnd:     "game_end",
	PhaseScore:       "score",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase_%d", int(p))
}

// ParsePhase maps a phase name back to its value.
func ParsePhase(name string) (Phase, error) {
	for p, n := range phaseNames {
		if n == name {
			return p, nil
		}
	}
	return PhaseInit, fmt.Errorf("unknown phase %q", name)
}
