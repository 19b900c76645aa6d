package matching

import (
	"github.com/familiarcat/candid-sub002/internal/dataset"
)

// Fit descriptors emitted by the hierarchy factor.
const (
	FitPerfect    = "Perfect"
	FitGood       = "Good"
	FitAcceptable = "Acceptable"
	FitSuboptimal = "Suboptimal"
	FitPoor       = "Poor"
)

// Company size bands. A company with fewer than 100 employees is treated as
// a startup, up to and including 1000 as mid-size, anything above as
// enterprise.
const (
	startupMaxEmployees = 100
	midsizeMaxEmployees = 1000
)

// factorResult is what each factor scorer produces: a 0-100 sub-score,
// fixed reason strings, and (for the hierarchy factor only) a fit
// descriptor.
type factorResult struct {
	score   float64
	fit     string
	reasons []string
}

// scoreHierarchy rates how well an authority's level fits hiring at a
// company of the given size. The table is fixed: every size band pins one
// ideal level set, with graded fallbacks.
func scoreHierarchy(authority *dataset.HiringAuthority, company *dataset.Company) factorResult {
	var level string
	if authority != nil {
		level = authority.Level
	}

	var employees int
	if company != nil {
		employees = company.EmployeeCount
	}

	switch {
	case employees < startupMaxEmployees:
		if level == dataset.LevelCSuite {
			return factorResult{
				score:   95,
				fit:     FitPerfect,
				reasons: []string{"C-Suite leaders drive hiring directly at startups"},
			}
		}
		return factorResult{
			score:   60,
			fit:     FitSuboptimal,
			reasons: []string{"Smaller companies concentrate hiring with the C-Suite"},
		}

	case employees <= midsizeMaxEmployees:
		switch level {
		case dataset.LevelExecutive, dataset.LevelDirector:
			return factorResult{
				score:   90,
				fit:     FitPerfect,
				reasons: []string{"Executives and Directors lead hiring at mid-size companies"},
			}
		case dataset.LevelCSuite:
			return factorResult{
				score:   75,
				fit:     FitGood,
				reasons: []string{"C-Suite stays involved but less hands-on at mid-size companies"},
			}
		default:
			return factorResult{
				score:   65,
				fit:     FitAcceptable,
				reasons: []string{"Managers take part in mid-size hiring with limited reach"},
			}
		}

	default:
		switch level {
		case dataset.LevelDirector, dataset.LevelManager:
			return factorResult{
				score:   85,
				fit:     FitPerfect,
				reasons: []string{"Directors and Managers own hiring decisions at enterprises"},
			}
		case dataset.LevelExecutive:
			return factorResult{
				score:   70,
				fit:     FitGood,
				reasons: []string{"Executives shape enterprise hiring at the strategic level"},
			}
		default:
			return factorResult{
				score:   50,
				fit:     FitPoor,
				reasons: []string{"C-Suite is too removed from enterprise hiring decisions"},
			}
		}
	}
}
