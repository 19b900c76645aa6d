package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/familiarcat/candid-sub002/internal/dataset"
)

const (
	// Points contributed per matched skill, scaled by the seeker's level.
	exactMatchWeight    = 15
	semanticMatchWeight = 8

	// defaultSkillLevel is assumed when a seeker lists a skill without a
	// proficiency level.
	defaultSkillLevel = 5

	// strongAlignmentMin is the combined match count from which the
	// alignment is called strong.
	strongAlignmentMin = 3
)

// scoreSkills rates the overlap between the skills an authority is looking
// for and the skills a seeker offers. Each wanted skill matches at most
// once: an exact normalized match wins over a related one. The accumulated
// points are averaged per match, capped at 100 and scaled by the share of
// wanted skills that matched.
func (s *Scorer) scoreSkills(seeker *dataset.JobSeeker, authority *dataset.HiringAuthority) factorResult {
	var wanted, offered []Skill
	if authority != nil {
		wanted = NormalizeSkills(authority.SkillsLookingFor)
	}
	if seeker != nil {
		offered = NormalizeSkills(seeker.Skills)
	}

	var exact, semantic []string
	var accumulated float64

	for _, want := range wanted {
		if found := findSkill(offered, want.Normalized); found != nil {
			exact = append(exact, want.Original)
			accumulated += float64(skillLevel(seeker, found.Original)) * exactMatchWeight
			continue
		}

		if related := s.findRelated(offered, want.Normalized); related != nil {
			semantic = append(semantic, want.Original)
			accumulated += float64(skillLevel(seeker, related.Original)) * semanticMatchWeight
		}
	}

	total := len(exact) + len(semantic)

	score := accumulated
	if len(wanted) > 0 {
		matchPercentage := float64(total) / float64(len(wanted)) * 100
		average := math.Min(accumulated/math.Max(float64(total), 1), 100)
		score = average * matchPercentage / 100
	}

	var reasons []string
	if len(exact) > 0 {
		reasons = append(reasons, fmt.Sprintf("%d exact skill match(es): %s",
			len(exact), strings.Join(exact, ", ")))
	}
	if len(semantic) > 0 {
		reasons = append(reasons, fmt.Sprintf("%d related skill match(es): %s",
			len(semantic), strings.Join(semantic, ", ")))
	}
	if total >= strongAlignmentMin {
		reasons = append(reasons, "Strong technical skill alignment")
	}
	if total == 0 {
		reasons = append(reasons, "Limited skill overlap")
	}

	return factorResult{score: score, reasons: reasons}
}

// skillLevel returns the seeker's proficiency for a skill as spelled in the
// seeker's own list, defaulting when no level is recorded.
func skillLevel(seeker *dataset.JobSeeker, skill string) int {
	if seeker == nil {
		return defaultSkillLevel
	}
	if level, ok := seeker.SkillLevels[skill]; ok && level > 0 {
		return level
	}
	return defaultSkillLevel
}

func findSkill(skills []Skill, normalized string) *Skill {
	for i := range skills {
		if skills[i].Normalized == normalized {
			return &skills[i]
		}
	}
	return nil
}

func (s *Scorer) findRelated(skills []Skill, normalized string) *Skill {
	for i := range skills {
		if s.relations.Related(skills[i].Normalized, normalized) {
			return &skills[i]
		}
	}
	return nil
}
