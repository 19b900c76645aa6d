// Package report renders scored matches and run history as terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/familiarcat/candid-sub002/internal/matching"
	"github.com/familiarcat/candid-sub002/internal/store"
	"github.com/familiarcat/candid-sub002/internal/util"

	"github.com/olekukonko/tablewriter"
)

const timeLayout = "2006-01-02 15:04"

// Matches renders the ranked match table. When top is positive only the
// first top rows are shown.
func Matches(w io.Writer, matches *matching.Matches, top int) error {
	if matches.Len() == 0 {
		_, err := fmt.Fprintln(w, "No matches to show.")
		return err
	}

	items := matches.Items
	if top > 0 && len(items) > top {
		items = items[:top]
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "Job seeker", "Authority", "Company", "Score", "Status", "Strength", "Top reason")

	for i, match := range items {
		table.Append([]string{
			strconv.Itoa(i + 1),
			displayName(match.JobSeekerName, match.JobSeekerKey),
			displayName(match.AuthorityName, match.AuthorityKey),
			displayName(match.CompanyName, match.CompanyKey),
			strconv.Itoa(match.Score),
			string(match.Status),
			string(match.ConnectionStrength),
			util.JoinLimited(match.Reasons, 1),
		})
	}

	if err := table.Render(); err != nil {
		return err
	}

	if len(items) < matches.Len() {
		_, err := fmt.Fprintf(w, "... and %d more\n", matches.Len()-len(items))
		return err
	}
	return nil
}

// ByAuthority renders a rollup of matches per hiring authority, best
// authorities first.
func ByAuthority(w io.Writer, matches *matching.Matches) error {
	if matches.Len() == 0 {
		_, err := fmt.Fprintln(w, "No matches to show.")
		return err
	}

	type rollup struct {
		name        string
		company     string
		matches     int
		recommended int
		best        *matching.Match
	}

	byKey := make(map[string]*rollup)
	var order []string

	// Matches arrive sorted by score, so the first match seen per
	// authority is also its best one.
	for _, match := range matches.Items {
		entry, ok := byKey[match.AuthorityKey]
		if !ok {
			entry = &rollup{
				name:    displayName(match.AuthorityName, match.AuthorityKey),
				company: displayName(match.CompanyName, match.CompanyKey),
				best:    match,
			}
			byKey[match.AuthorityKey] = entry
			order = append(order, match.AuthorityKey)
		}

		entry.matches++
		if match.Status == matching.StatusRecommended {
			entry.recommended++
		}
	}

	table := tablewriter.NewWriter(w)
	table.Header("Authority", "Company", "Matches", "Recommended", "Best candidate", "Best score")

	for _, key := range order {
		entry := byKey[key]
		table.Append([]string{
			entry.name,
			entry.company,
			strconv.Itoa(entry.matches),
			strconv.Itoa(entry.recommended),
			displayName(entry.best.JobSeekerName, entry.best.JobSeekerKey),
			strconv.Itoa(entry.best.Score),
		})
	}

	return table.Render()
}

// Breakdown renders one match's factor contributions and reasons.
func Breakdown(w io.Writer, match *matching.Match) error {
	if match == nil {
		_, err := fmt.Fprintln(w, "No match to show.")
		return err
	}

	_, err := fmt.Fprintf(w, "%s -> %s (%s)\n",
		displayName(match.JobSeekerName, match.JobSeekerKey),
		displayName(match.AuthorityName, match.AuthorityKey),
		displayName(match.CompanyName, match.CompanyKey),
	)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Factor", "Weight", "Sub-score", "Weighted")

	for _, c := range match.Contributions() {
		table.Append([]string{
			c.Factor,
			fmt.Sprintf("%.0f%%", c.Weight*100),
			fmt.Sprintf("%.1f", c.Score),
			fmt.Sprintf("%.1f", c.Score*c.Weight),
		})
	}

	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Composite score: %d (%s", match.Score, match.ConnectionStrength)
	if match.Status != "" {
		fmt.Fprintf(w, ", %s", match.Status)
	}
	fmt.Fprintln(w, ")")
	fmt.Fprintf(w, "Hierarchy fit:   %s\n", match.HierarchyMatch)

	if len(match.Reasons) > 0 {
		fmt.Fprintln(w, "Reasons:")
		for _, reason := range match.Reasons {
			fmt.Fprintf(w, "  - %s\n", reason)
		}
	}

	return nil
}

// Runs renders stored run history, newest first.
func Runs(w io.Writer, runs []*store.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No saved runs.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Run", "Created (UTC)", "Source", "Seekers", "Authorities", "Companies", "Matches", "Recommended")

	for _, run := range runs {
		table.Append([]string{
			run.ID,
			run.CreatedAt.UTC().Format(timeLayout),
			run.Source,
			strconv.Itoa(run.JobSeekers),
			strconv.Itoa(run.Authorities),
			strconv.Itoa(run.Companies),
			strconv.Itoa(run.Matches),
			strconv.Itoa(run.Recommended),
		})
	}

	return table.Render()
}

func displayName(name, key string) string {
	if name != "" {
		return name
	}
	return key
}
