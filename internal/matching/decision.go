package matching

import (
	"math"

	"github.com/familiarcat/candid-sub002/internal/dataset"
)

// decisionMakerBonus is added when the authority personally signs off on
// hires, on top of the base hiring power score.
const decisionMakerBonus = 10

// scoreDecisionPower rates how much say the authority has in hiring.
// Unknown power levels score the conservative base.
func scoreDecisionPower(authority *dataset.HiringAuthority) factorResult {
	var power string
	var decisionMaker bool
	if authority != nil {
		power = authority.HiringPower
		decisionMaker = authority.DecisionMaker
	}

	var score float64
	var reason string
	switch power {
	case dataset.PowerUltimate:
		score, reason = 100, "Ultimate hiring authority with final say"
	case dataset.PowerHigh:
		score, reason = 85, "High hiring authority"
	case dataset.PowerMedium:
		score, reason = 70, "Moderate hiring influence"
	default:
		score, reason = 50, "Limited hiring authority"
	}

	reasons := []string{reason}
	if decisionMaker {
		score = math.Min(score+decisionMakerBonus, 100)
		reasons = append(reasons, "Direct decision maker")
	}

	return factorResult{score: score, reasons: reasons}
}
