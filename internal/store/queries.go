package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/familiarcat/candid-sub002/internal/matching"
)

// SaveRun inserts a run and its matches in one transaction.
func (s *Store) SaveRun(ctx context.Context, run *Run, matches *matching.Matches) error {
	if run == nil {
		return fmt.Errorf("run is required")
	}

	return s.Transaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO runs (
				id, created_at, source, job_seekers, authorities, companies,
				matches, recommended
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			run.ID, run.CreatedAt, run.Source, run.JobSeekers, run.Authorities,
			run.Companies, run.Matches, run.Recommended,
		)
		if err != nil {
			return fmt.Errorf("inserting run: %w", err)
		}

		if matches == nil {
			return nil
		}

		for _, match := range matches.Items {
			reasons, err := json.Marshal(match.Reasons)
			if err != nil {
				return fmt.Errorf("encoding reasons for %q: %w", match.Key, err)
			}

			_, err = tx.ExecContext(ctx, `
				INSERT INTO matches (
					run_id, key, job_seeker_key, job_seeker_name,
					authority_key, authority_name, company_key, company_name,
					score, status, strength, hierarchy_match, reasons, created_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				run.ID, match.Key, match.JobSeekerKey, match.JobSeekerName,
				match.AuthorityKey, match.AuthorityName, match.CompanyKey, match.CompanyName,
				match.Score, string(match.Status), string(match.ConnectionStrength),
				match.HierarchyMatch, string(reasons), match.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("inserting match %q: %w", match.Key, err)
			}
		}

		return nil
	})
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `
		SELECT id, created_at, source, job_seekers, authorities, companies,
		       matches, recommended
		FROM runs ORDER BY created_at DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		if err := rows.Scan(
			&run.ID, &run.CreatedAt, &run.Source, &run.JobSeekers,
			&run.Authorities, &run.Companies, &run.Matches, &run.Recommended,
		); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetRun returns one run by id, or nil when it does not exist.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	run := &Run{}
	err := s.QueryRowContext(ctx, `
		SELECT id, created_at, source, job_seekers, authorities, companies,
		       matches, recommended
		FROM runs WHERE id = ?
	`, id).Scan(
		&run.ID, &run.CreatedAt, &run.Source, &run.JobSeekers,
		&run.Authorities, &run.Companies, &run.Matches, &run.Recommended,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting run %q: %w", id, err)
	}

	return run, nil
}

// RunMatches returns a run's saved matches in their original order.
func (s *Store) RunMatches(ctx context.Context, runID string) (*matching.Matches, error) {
	rows, err := s.QueryContext(ctx, `
		SELECT key, job_seeker_key, job_seeker_name, authority_key, authority_name,
		       company_key, company_name, score, status, strength,
		       hierarchy_match, reasons, created_at
		FROM matches WHERE run_id = ?
		ORDER BY score DESC, job_seeker_key, authority_key
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing matches for run %q: %w", runID, err)
	}
	defer rows.Close()

	matches := &matching.Matches{}
	for rows.Next() {
		match := &matching.Match{}
		var status, strength, reasons string

		if err := rows.Scan(
			&match.Key, &match.JobSeekerKey, &match.JobSeekerName,
			&match.AuthorityKey, &match.AuthorityName,
			&match.CompanyKey, &match.CompanyName,
			&match.Score, &status, &strength,
			&match.HierarchyMatch, &reasons, &match.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}

		match.Status = matching.Status(status)
		match.ConnectionStrength = matching.Strength(strength)
		if err := json.Unmarshal([]byte(reasons), &match.Reasons); err != nil {
			return nil, fmt.Errorf("decoding reasons for %q: %w", match.Key, err)
		}

		matches.Items = append(matches.Items, match)
	}

	return matches, rows.Err()
}
