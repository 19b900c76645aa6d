package store

import (
	"time"

	"github.com/familiarcat/candid-sub002/internal/dataset"
	"github.com/familiarcat/candid-sub002/internal/matching"

	"github.com/google/uuid"
)

// Run is one saved invocation of the batch scorer.
type Run struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Source      string    `json:"source"`
	JobSeekers  int       `json:"job_seekers"`
	Authorities int       `json:"authorities"`
	Companies   int       `json:"companies"`
	Matches     int       `json:"matches"`
	Recommended int       `json:"recommended"`
}

// NewRun describes a freshly scored dataset, ready to be saved. Source names
// where the dataset came from (a file path or URL).
func NewRun(source string, ds *dataset.Dataset, matches *matching.Matches) *Run {
	run := &Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Source:    source,
	}

	if ds != nil {
		run.JobSeekers = ds.JobSeekers.Len()
		run.Authorities = ds.HiringAuthorities.Len()
		run.Companies = ds.Companies.Len()
	}
	if matches != nil {
		run.Matches = matches.Len()
		run.Recommended = matches.Recommended().Len()
	}

	return run
}
