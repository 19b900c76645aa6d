package matching

import (
	"testing"

	"github.com/familiarcat/candid-sub002/internal/dataset"
)

func TestScoreDecisionPower(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		power         string
		decisionMaker bool
		score         float64
		reasons       int
	}{
		{
			name:    "ultimate power",
			power:   dataset.PowerUltimate,
			score:   100,
			reasons: 1,
		},
		{
			name:          "ultimate power bonus stays capped",
			power:         dataset.PowerUltimate,
			decisionMaker: true,
			score:         100,
			reasons:       2,
		},
		{
			name:    "high power",
			power:   dataset.PowerHigh,
			score:   85,
			reasons: 1,
		},
		{
			name:          "high power with direct say",
			power:         dataset.PowerHigh,
			decisionMaker: true,
			score:         95,
			reasons:       2,
		},
		{
			name:    "medium power",
			power:   dataset.PowerMedium,
			score:   70,
			reasons: 1,
		},
		{
			name:    "unknown power scores the base",
			power:   "Advisory",
			score:   50,
			reasons: 1,
		},
		{
			name:    "missing power scores the base",
			power:   "",
			score:   50,
			reasons: 1,
		},
		{
			name:          "missing power with direct say",
			power:         "",
			decisionMaker: true,
			score:         60,
			reasons:       2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			authority := &dataset.HiringAuthority{
				HiringPower:   tt.power,
				DecisionMaker: tt.decisionMaker,
			}

			result := scoreDecisionPower(authority)
			if result.score != tt.score {
				t.Fatalf("expected score %v, got %v", tt.score, result.score)
			}
			if len(result.reasons) != tt.reasons {
				t.Fatalf("expected %d reasons, got %v", tt.reasons, result.reasons)
			}
			if tt.decisionMaker && result.reasons[len(result.reasons)-1] != "Direct decision maker" {
				t.Fatalf("expected decision maker reason last, got %v", result.reasons)
			}
		})
	}
}

func TestScoreDecisionPowerMissingAuthority(t *testing.T) {
	result := scoreDecisionPower(nil)
	if result.score != 50 {
		t.Fatalf("expected base score, got %v", result.score)
	}
	if len(result.reasons) != 1 {
		t.Fatalf("expected one reason, got %v", result.reasons)
	}
}
