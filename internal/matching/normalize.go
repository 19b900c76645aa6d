package matching

import (
	"strings"
	"unicode"
)

// Skill keeps the original spelling of a skill mention next to its
// normalized form. Originals are what reasons and level lookups report,
// normalized forms are what comparisons run on.
type Skill struct {
	Original   string
	Normalized string
}

// NormalizeSkill lowercases the skill, trims surrounding whitespace and
// strips every rune that is not a letter or a digit, so "Node.js",
// "node js" and "NODEJS" all compare equal.
func NormalizeSkill(skill string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(skill)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeSkills normalizes a list of skill mentions, preserving order
// and original spellings.
func NormalizeSkills(skills []string) []Skill {
	normalized := make([]Skill, 0, len(skills))
	for _, skill := range skills {
		normalized = append(normalized, Skill{
			Original:   skill,
			Normalized: NormalizeSkill(skill),
		})
	}
	return normalized
}
