package matching

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/familiarcat/candid-sub002/internal/dataset"
)

// experienceRange extracts the "min-max" years span from free-form
// requirement text like "3-8 years".
var experienceRange = regexp.MustCompile(`(\d+)-(\d+)`)

const (
	experienceInRangeScore = 90
	experienceUnclearScore = 50

	underExperienceFloor   = 40
	underExperiencePenalty = 15

	overExperienceFloor   = 60
	overExperiencePenalty = 10
)

// scoreExperience rates the seeker's years of experience against the
// authority's preferred range. Requirements that do not parse score neutral
// rather than failing the match.
func scoreExperience(seeker *dataset.JobSeeker, authority *dataset.HiringAuthority) factorResult {
	var preferred string
	if authority != nil {
		preferred = authority.PreferredExperience
	}

	bounds := experienceRange.FindStringSubmatch(preferred)
	if bounds == nil {
		return factorResult{
			score:   experienceUnclearScore,
			reasons: []string{"Experience requirements unclear"},
		}
	}

	// The regexp guarantees both captures are digit runs.
	minYears, _ := strconv.Atoi(bounds[1])
	maxYears, _ := strconv.Atoi(bounds[2])

	var years int
	if seeker != nil {
		years = seeker.Experience
	}

	switch {
	case years >= minYears && years <= maxYears:
		return factorResult{
			score: experienceInRangeScore,
			reasons: []string{fmt.Sprintf("%d years experience perfectly matches %d-%d years requirement",
				years, minYears, maxYears)},
		}

	case years < minYears:
		gap := minYears - years
		return factorResult{
			score: math.Max(underExperienceFloor,
				experienceInRangeScore-float64(gap)*underExperiencePenalty),
			reasons: []string{fmt.Sprintf("%d years below preferred minimum of %d years", gap, minYears)},
		}

	default:
		excess := years - maxYears
		return factorResult{
			score: math.Max(overExperienceFloor,
				experienceInRangeScore-float64(excess)*overExperiencePenalty),
			reasons: []string{fmt.Sprintf("%d years above preferred maximum, possible overqualification", excess)},
		}
	}
}
