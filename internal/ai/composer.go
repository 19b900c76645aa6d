// Package ai defines how introduction messages are drafted for scored
// matches, independent of the model provider behind them.
package ai

import (
	"context"

	"github.com/familiarcat/candid-sub002/internal/dataset"
	"github.com/familiarcat/candid-sub002/internal/matching"
)

// Intro is a drafted introduction from a job seeker to a hiring authority.
type Intro struct {
	Subject string
	Message string
	Raw     string
}

// IntroRequest carries everything a composer may draw on when drafting.
// Company and Match are optional context; Seeker and Authority are not.
type IntroRequest struct {
	Seeker    *dataset.JobSeeker
	Authority *dataset.HiringAuthority
	Company   *dataset.Company
	Match     *matching.Match
}

type Composer interface {
	Compose(ctx context.Context, req *IntroRequest) (*Intro, error)
}
