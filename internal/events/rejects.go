package events

import (
	"fmt"

	"github.com/riskforge/risksim/internal/stack"
)

// Attack rejection reason codes and their fixed texts.
const (
	ReasonAttackOwnTerritory  = "T1"
	ReasonNotEnoughAttackers  = "T2"
	ReasonNotAttackOwner      = "T3"
	ReasonMustLeaveOneBehind  = "T4"
	ReasonNotEnoughToTransfer = "T5"
)

// ReasonText maps a reason code to its prose form.
var ReasonText = map[string]string{
	ReasonAttackOwnTerritory:  "cannot attack your own territory",
	ReasonNotEnoughAttackers:  "not enough troops to attack",
	ReasonNotAttackOwner:      "you do not own the attacking territory",
	ReasonMustLeaveOneBehind:  "must leave at least one troop behind",
	ReasonNotEnoughToTransfer: "not enough troops to transfer",
}

// RejectTroopPlacement signals an invalid placement intent. The state
// is untouched.
type RejectTroopPlacement struct {
	stack.Event
	Turn      int
	Player    int
	Territory int
	NumTroops int
	Reason    string
}

// NewRejectTroopPlacement creates a placement rejection.
func NewRejectTroopPlacement(turn, player, territory, numTroops int, reason string) RejectTroopPlacement {
	return RejectTroopPlacement{
		Event: stack.NewEvent(KindRejectTroopPlacement,
			fmt.Sprintf("Reject-Troop-Placement-T%d-L%d-T%d: %s", territory, numTroops, turn, reason),
			fmt.Sprintf("territory=%d, num_troops=%d, turn_number=%d, player=%d, reason=%s", territory, numTroops, turn, player, reason)),
		Turn:      turn,
		Player:    player,
		Territory: territory,
		NumTroops: numTroops,
		Reason:    reason,
	}
}

// RejectAttack signals an invalid attack intent, carrying one of the
// fixed T1..T5 reason codes. The state is untouched.
type RejectAttack struct {
	stack.Event
	Turn               int
	Player             int
	AttackingTerritory int
	DefendingTerritory int
	Code               string
	Reason             string
}

// NewRejectAttack creates an attack rejection from a reason code.
func NewRejectAttack(turn, player, attackingTerritory, defendingTerritory int, code string) RejectAttack {
	reason := ReasonText[code]
	return RejectAttack{
		Event: stack.NewEvent(KindRejectAttack,
			fmt.Sprintf("Reject-Attack-T%d-P%d-AT%d-DT%d: %s", turn, player, attackingTerritory, defendingTerritory, reason),
			fmt.Sprintf("turn_number=%d, player=%d, attacking_territory=%d, defending_territory=%d, code=%s, reason=%s",
				turn, player, attackingTerritory, defendingTerritory, code, reason)),
		Turn:               turn,
		Player:             player,
		AttackingTerritory: attackingTerritory,
		DefendingTerritory: defendingTerritory,
		Code:               code,
		Reason:             reason,
	}
}

// NewRejectAttackWithReason creates an attack rejection for a failure
// outside the fixed code table, such as a non-adjacent target.
func NewRejectAttackWithReason(turn, player, attackingTerritory, defendingTerritory int, reason string) RejectAttack {
	return RejectAttack{
		Event: stack.NewEvent(KindRejectAttack,
			fmt.Sprintf("Reject-Attack-T%d-P%d-AT%d-DT%d: %s", turn, player, attackingTerritory, defendingTerritory, reason),
			fmt.Sprintf("turn_number=%d, player=%d, attacking_territory=%d, defending_territory=%d, reason=%s",
				turn, player, attackingTerritory, defendingTerritory, reason)),
		Turn:               turn,
		Player:             player,
		AttackingTerritory: attackingTerritory,
		DefendingTerritory: defendingTerritory,
		Reason:             reason,
	}
}

// RejectTransfer signals an invalid movement intent. The state is
// untouched.
type RejectTransfer struct {
	stack.Event
	Turn          int
	Player        int
	FromTerritory int
	ToTerritory   int
	NumTroops     int
	Reason        string
}

// NewRejectTransfer creates a movement rejection.
func NewRejectTransfer(turn, player, fromTerritory, toTerritory, numTroops int, reason string) RejectTransfer {
	return RejectTransfer{
		Event: stack.NewEvent(KindRejectTransfer,
			fmt.Sprintf("Reject-Transfer-T%d-P%d-FT%d-TT%d-U%d: %s", turn, player, fromTerritory, toTerritory, numTroops, reason),
			fmt.Sprintf("turn_number=%d, player=%d, from_territory=%d, to_territory=%d, num_troops=%d, reason=%s",
				turn, player, fromTerritory, toTerritory, numTroops, reason)),
		Turn:          turn,
		Player:        player,
		FromTerritory: fromTerritory,
		ToTerritory:   toTerritory,
		NumTroops:     numTroops,
		Reason:        reason,
	}
}
