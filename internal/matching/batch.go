package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/familiarcat/candid-sub002/internal/dataset"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// MinMatchScore is the lowest composite score ScoreAll keeps.
	MinMatchScore = 50
	// RecommendedScore is the composite score from which a kept match is
	// recommended instead of merely potential.
	RecommendedScore = 80
)

// Matches is an ordered list of scored matches.
type Matches struct {
	Items []*Match
}

func (m *Matches) Len() int {
	return len(m.Items)
}

func (m *Matches) FindByKey(key string) *Match {
	for _, match := range m.Items {
		if match.Key == key {
			return match
		}
	}
	return nil
}

// Recommended returns the recommended subset, preserving order.
func (m *Matches) Recommended() *Matches {
	recommended := &Matches{}
	for _, match := range m.Items {
		if match.Status == StatusRecommended {
			recommended.Items = append(recommended.Items, match)
		}
	}
	return recommended
}

func (m *Matches) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return "", err
	}
	return file.Name(), nil
}

type pair struct {
	seeker    *dataset.JobSeeker
	authority *dataset.HiringAuthority
	company   *dataset.Company
}

// ScoreAll scores every seeker against every authority whose company
// resolves, keeps the pairs scoring at least MinMatchScore, stamps them
// with a composite key, a status and a shared creation time, and returns
// them ordered by score. Ties break on seeker key, then authority key, so
// the order is stable regardless of worker count.
func (s *Scorer) ScoreAll(ctx context.Context, seekers *dataset.JobSeekers, authorities *dataset.HiringAuthorities, companies *dataset.Companies) (*Matches, error) {
	matches := &Matches{}
	if seekers == nil || authorities == nil {
		return matches, nil
	}

	var pairs []pair
	for _, authority := range authorities.Items {
		company := companies.Resolve(authority.CompanyID)
		if company == nil {
			s.logger.Debug("skipping authority without resolvable company",
				zap.String("authority", authority.Key),
				zap.String("company_id", authority.CompanyID),
			)
			continue
		}

		for _, seeker := range seekers.Items {
			pairs = append(pairs, pair{seeker: seeker, authority: authority, company: company})
		}
	}

	results := make([]*Match, len(pairs))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)
	for i, p := range pairs {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.Score(p.seeker, p.authority, p.company)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("scoring pairs: %w", err)
	}

	created := s.now().UTC()

	for _, match := range results {
		if match.Score < MinMatchScore {
			continue
		}

		match.Key = fmt.Sprintf("%s:%s", match.JobSeekerKey, match.AuthorityKey)
		match.Status = StatusPotential
		if match.Score >= RecommendedScore {
			match.Status = StatusRecommended
		}
		match.CreatedAt = created

		matches.Items = append(matches.Items, match)
	}

	sort.Slice(matches.Items, func(i, j int) bool {
		a, b := matches.Items[i], matches.Items[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.JobSeekerKey != b.JobSeekerKey {
			return a.JobSeekerKey < b.JobSeekerKey
		}
		return a.AuthorityKey < b.AuthorityKey
	})

	s.logger.Info("scoring step",
		zap.Int("initial", len(pairs)),
		zap.Int("dropped", len(pairs)-matches.Len()),
		zap.Int("left", matches.Len()),
	)

	return matches, nil
}
