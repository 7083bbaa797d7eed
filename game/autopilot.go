package game

import (
	"math/rand"

	"github.com/pthm-cable/gridsnake/locomotion"
)

// Autopilot stands in for a player in headless runs: at every cycle
// boundary it may request a turn and may nudge the speed.
type Autopilot struct {
	rng         *rand.Rand
	turnChance  float64
	speedChance float64
}

// NewAutopilot creates an autopilot. The same seed yields the same intents.
func NewAutopilot(seed int64, turnChance, speedChance float64) *Autopilot {
	return &Autopilot{
		rng:         rand.New(rand.NewSource(seed)),
		turnChance:  turnChance,
		speedChance: speedChance,
	}
}

// Next returns the intents for the coming cycle.
func (a *Autopilot) Next() []locomotion.Intent {
	var intents []locomotion.Intent

	if a.rng.Float64() < a.turnChance {
		kind := locomotion.IntentTurnLeft
		if a.rng.Intn(2) == 1 {
			kind = locomotion.IntentTurnRight
		}
		intents = append(intents, locomotion.Intent{Kind: kind})
	}

	if a.rng.Float64() < a.speedChance {
		delta := 1.0
		if a.rng.Intn(2) == 0 {
			delta = -1
		}
		intents = append(intents, locomotion.Intent{Kind: locomotion.IntentSpeed, Delta: delta})
	}

	return intents
}
