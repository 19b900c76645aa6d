package matching

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// Relations maps a normalized skill to the normalized skills considered
// adjacent to it. Lookups are symmetric: two skills are related when either
// side lists the other. The table is never mutated after construction, so a
// single Relations value is safe to share across goroutines.
type Relations map[string][]string

// Related reports whether two normalized skills are adjacent in either
// direction.
func (r Relations) Related(a, b string) bool {
	return r.lists(a, b) || r.lists(b, a)
}

func (r Relations) lists(skill, candidate string) bool {
	for _, related := range r[skill] {
		if related == candidate {
			return true
		}
	}
	return false
}

// DefaultRelations returns the built-in adjacency table. Callers must treat
// the result as read-only.
func DefaultRelations() Relations {
	return defaultRelations
}

// LoadRelations reads an adjacency table override from a JSON file of the
// shape {"skill": ["related", ...]}. Keys and values are normalized the same
// way skill mentions are, so override files may use natural spellings.
func LoadRelations(path string) (Relations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading relations file: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing relations file %q: %w", path, err)
	}

	var decoded map[string][]string
	if err := mapstructure.Decode(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decoding relations file %q: %w", path, err)
	}

	relations := make(Relations, len(decoded))
	for skill, related := range decoded {
		normalized := make([]string, 0, len(related))
		for _, candidate := range related {
			if n := NormalizeSkill(candidate); n != "" {
				normalized = append(normalized, n)
			}
		}
		if key := NormalizeSkill(skill); key != "" {
			relations[key] = normalized
		}
	}

	return relations, nil
}

var defaultRelations = Relations{
	"react":           {"frontend", "javascript", "jsx", "ui", "webdevelopment"},
	"vue":             {"frontend", "javascript", "ui", "webdevelopment"},
	"angular":         {"frontend", "typescript", "javascript"},
	"javascript":      {"frontend", "backend", "react", "nodejs", "typescript"},
	"typescript":      {"javascript", "react", "angular", "nodejs"},
	"nodejs":          {"backend", "javascript", "express", "api", "serverside"},
	"python":          {"backend", "datascience", "machinelearning", "django", "flask"},
	"java":            {"backend", "spring", "enterprise", "jvm"},
	"go":              {"backend", "microservices", "concurrency", "cloud"},
	"html":            {"frontend", "css", "webdevelopment"},
	"css":             {"frontend", "ui", "html", "design"},
	"ui":              {"ux", "design", "frontend", "css"},
	"ux":              {"ui", "design", "research", "frontend"},
	"graphql":         {"api", "apidesign", "backend", "rest"},
	"rest":            {"api", "apidesign", "backend", "http"},
	"sql":             {"database", "postgresql", "mysql", "datamodeling"},
	"postgresql":      {"sql", "database", "backend"},
	"mongodb":         {"database", "nosql", "backend"},
	"aws":             {"cloud", "devops", "infrastructure", "terraform"},
	"docker":          {"devops", "kubernetes", "containers", "cloud"},
	"kubernetes":      {"devops", "docker", "cloud", "orchestration"},
	"devops":          {"cicd", "docker", "kubernetes", "automation"},
	"machinelearning": {"datascience", "python", "ai", "statistics"},
	"datascience":     {"python", "machinelearning", "statistics", "analytics"},
	"leadership":      {"management", "mentoring", "communication", "strategy"},
	"management":      {"leadership", "planning", "agile", "delivery"},
	"agile":           {"scrum", "kanban", "management", "delivery"},
	"communication":   {"leadership", "presentation", "writing"},
}
