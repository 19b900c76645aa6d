package matching

import (
	"math"
	"time"

	"github.com/familiarcat/candid-sub002/internal/dataset"

	"go.uber.org/zap"
)

// Strength buckets a composite score for display.
type Strength string

const (
	StrengthStrong Strength = "Strong"
	StrengthMedium Strength = "Medium"
	StrengthWeak   Strength = "Weak"
	StrengthPoor   Strength = "Poor"
)

// Status classifies a kept match.
type Status string

const (
	StatusRecommended Status = "recommended"
	StatusPotential   Status = "potential"
)

// Connection strength thresholds on the composite score.
const (
	strongMin = 85
	mediumMin = 70
	weakMin   = 55
)

// maxReasons caps how many reason strings a match carries.
const maxReasons = 4

// Factors holds the unweighted sub-scores behind a composite score.
type Factors struct {
	Hierarchy     float64 `json:"hierarchy"`
	Skills        float64 `json:"skills"`
	Experience    float64 `json:"experience"`
	DecisionPower float64 `json:"decisionPower"`
}

// Match is one scored seeker/authority pairing. Key, Status and CreatedAt
// are only set on matches produced by ScoreAll.
type Match struct {
	Key          string `json:"_key,omitempty"`
	JobSeekerKey string `json:"jobSeekerKey,omitempty"`
	AuthorityKey string `json:"authorityKey,omitempty"`
	CompanyKey   string `json:"companyKey,omitempty"`

	JobSeekerName string `json:"jobSeekerName,omitempty"`
	AuthorityName string `json:"authorityName,omitempty"`
	CompanyName   string `json:"companyName,omitempty"`

	Score              int      `json:"score"`
	Factors            Factors  `json:"factors"`
	Reasons            []string `json:"matchReasons"`
	HierarchyMatch     string   `json:"hierarchyMatch"`
	ConnectionStrength Strength `json:"connectionStrength"`

	Status    Status    `json:"status,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// factor is one weighted component of the composite score. The table below
// fixes both the weights and the order reasons are reported in.
type factor struct {
	name   string
	weight float64
	score  func(s *Scorer, seeker *dataset.JobSeeker, authority *dataset.HiringAuthority, company *dataset.Company) factorResult
	record func(f *Factors, score float64)
	value  func(f *Factors) float64
}

var factors = []factor{
	{
		name:   "hierarchy",
		weight: 0.30,
		score: func(_ *Scorer, _ *dataset.JobSeeker, authority *dataset.HiringAuthority, company *dataset.Company) factorResult {
			return scoreHierarchy(authority, company)
		},
		record: func(f *Factors, score float64) { f.Hierarchy = score },
		value:  func(f *Factors) float64 { return f.Hierarchy },
	},
	{
		name:   "skills",
		weight: 0.40,
		score: func(s *Scorer, seeker *dataset.JobSeeker, authority *dataset.HiringAuthority, _ *dataset.Company) factorResult {
			return s.scoreSkills(seeker, authority)
		},
		record: func(f *Factors, score float64) { f.Skills = score },
		value:  func(f *Factors) float64 { return f.Skills },
	},
	{
		name:   "experience",
		weight: 0.20,
		score: func(_ *Scorer, seeker *dataset.JobSeeker, authority *dataset.HiringAuthority, _ *dataset.Company) factorResult {
			return scoreExperience(seeker, authority)
		},
		record: func(f *Factors, score float64) { f.Experience = score },
		value:  func(f *Factors) float64 { return f.Experience },
	},
	{
		name:   "decision power",
		weight: 0.10,
		score: func(_ *Scorer, _ *dataset.JobSeeker, authority *dataset.HiringAuthority, _ *dataset.Company) factorResult {
			return scoreDecisionPower(authority)
		},
		record: func(f *Factors, score float64) { f.DecisionPower = score },
		value:  func(f *Factors) float64 { return f.DecisionPower },
	},
}

// Contribution is one weighted component behind a composite score.
type Contribution struct {
	Factor string
	Weight float64
	Score  float64
}

// Contributions lists the weighted components of the match's score in
// reporting order.
func (m *Match) Contributions() []Contribution {
	contributions := make([]Contribution, 0, len(factors))
	for _, f := range factors {
		contributions = append(contributions, Contribution{
			Factor: f.name,
			Weight: f.weight,
			Score:  f.value(&m.Factors),
		})
	}
	return contributions
}

// Scorer computes match scores. The zero options give a sequential scorer
// with the built-in relations table and silent logging.
type Scorer struct {
	relations Relations
	workers   int
	logger    *zap.Logger
	now       func() time.Time
}

type Option func(*Scorer)

// WithRelations swaps the skill adjacency table.
func WithRelations(relations Relations) Option {
	return func(s *Scorer) {
		if relations != nil {
			s.relations = relations
		}
	}
}

// WithWorkers sets how many goroutines ScoreAll may use.
func WithWorkers(workers int) Option {
	return func(s *Scorer) {
		if workers > 0 {
			s.workers = workers
		}
	}
}

// WithLogger attaches a logger used by ScoreAll for progress reporting.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scorer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces the creation-time source used by ScoreAll.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		if now != nil {
			s.now = now
		}
	}
}

func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		relations: DefaultRelations(),
		workers:   1,
		logger:    zap.NewNop(),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Score rates a single seeker against a single authority at a company. It
// never fails: missing or partial inputs degrade to conservative defaults.
// The same inputs always produce the same match.
func (s *Scorer) Score(seeker *dataset.JobSeeker, authority *dataset.HiringAuthority, company *dataset.Company) *Match {
	match := &Match{}
	if seeker != nil {
		match.JobSeekerKey = seeker.Key
		match.JobSeekerName = seeker.Name
	}
	if authority != nil {
		match.AuthorityKey = authority.Key
		match.AuthorityName = authority.Name
	}
	if company != nil {
		match.CompanyKey = company.Key
		match.CompanyName = company.Name
	}

	var weighted float64
	var reasons []string
	for _, f := range factors {
		result := f.score(s, seeker, authority, company)
		weighted += result.score * f.weight
		reasons = append(reasons, result.reasons...)
		f.record(&match.Factors, result.score)
		if result.fit != "" {
			match.HierarchyMatch = result.fit
		}
	}

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}

	match.Score = int(math.Round(weighted))
	match.Reasons = reasons
	match.ConnectionStrength = strengthFor(match.Score)

	return match
}

func strengthFor(score int) Strength {
	switch {
	case score >= strongMin:
		return StrengthStrong
	case score >= mediumMin:
		return StrengthMedium
	case score >= weakMin:
		return StrengthWeak
	default:
		return StrengthPoor
	}
}
