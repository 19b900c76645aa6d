package matching

import "testing"

func TestNormalizeSkill(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "lowercases",
			input:  "React",
			expect: "react",
		},
		{
			name:   "strips punctuation",
			input:  "Node.js",
			expect: "nodejs",
		},
		{
			name:   "strips inner whitespace",
			input:  "Machine Learning",
			expect: "machinelearning",
		},
		{
			name:   "trims surrounding whitespace",
			input:  "  GraphQL  ",
			expect: "graphql",
		},
		{
			name:   "keeps digits",
			input:  "HTML5",
			expect: "html5",
		},
		{
			name:   "collapses symbol-only differences",
			input:  "UI/UX",
			expect: "uiux",
		},
		{
			name:   "empty stays empty",
			input:  "",
			expect: "",
		},
		{
			name:   "symbols only become empty",
			input:  "+++",
			expect: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeSkill(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestNormalizeSkillsPreservesOriginals(t *testing.T) {
	skills := NormalizeSkills([]string{"React", "Node.js"})

	if len(skills) != 2 {
		t.Fatalf("expected 2 skills, got %d", len(skills))
	}

	if skills[0].Original != "React" || skills[0].Normalized != "react" {
		t.Fatalf("unexpected first skill: %+v", skills[0])
	}
	if skills[1].Original != "Node.js" || skills[1].Normalized != "nodejs" {
		t.Fatalf("unexpected second skill: %+v", skills[1])
	}
}

func TestNormalizeSkillsEmpty(t *testing.T) {
	if got := NormalizeSkills(nil); len(got) != 0 {
		t.Fatalf("expected no skills, got %d", len(got))
	}
}
