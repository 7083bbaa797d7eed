package game

import (
	"reflect"
	"testing"

	"github.com/pthm-cable/gridsnake/locomotion"
)

func TestAutopilotChances(t *testing.T) {
	tests := []struct {
		name        string
		turnChance  float64
		speedChance float64
		wantTurns   bool
		wantSpeed   bool
	}{
		{"idle", 0, 0, false, false},
		{"always turn", 1, 0, true, false},
		{"always speed", 0, 1, false, true},
		{"both", 1, 1, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAutopilot(1, tt.turnChance, tt.speedChance)
			for i := 0; i < 100; i++ {
				var turns, speeds int
				for _, in := range a.Next() {
					switch in.Kind {
					case locomotion.IntentTurnLeft, locomotion.IntentTurnRight:
						turns++
					case locomotion.IntentSpeed:
						speeds++
						if in.Delta != 1 && in.Delta != -1 {
							t.Fatalf("unexpected speed delta %f", in.Delta)
						}
					default:
						t.Fatalf("unexpected intent %v", in)
					}
				}
				if (turns == 1) != tt.wantTurns || turns > 1 {
					t.Fatalf("call %d: %d turns", i, turns)
				}
				if (speeds == 1) != tt.wantSpeed || speeds > 1 {
					t.Fatalf("call %d: %d speed changes", i, speeds)
				}
			}
		})
	}
}

func TestAutopilotDeterministic(t *testing.T) {
	a := NewAutopilot(11, 0.5, 0.2)
	b := NewAutopilot(11, 0.5, 0.2)

	var left, right int
	for i := 0; i < 500; i++ {
		ia, ib := a.Next(), b.Next()
		if !reflect.DeepEqual(ia, ib) {
			t.Fatalf("call %d: %v vs %v", i, ia, ib)
		}
		for _, in := range ia {
			switch in.Kind {
			case locomotion.IntentTurnLeft:
				left++
			case locomotion.IntentTurnRight:
				right++
			}
		}
	}
	if left == 0 || right == 0 {
		t.Errorf("expected turns both ways, got %d left and %d right", left, right)
	}
}
