package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/familiarcat/candid-sub002/internal/dataset"
	"github.com/familiarcat/candid-sub002/internal/matching"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "candid-match.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func sampleMatches(created time.Time) *matching.Matches {
	return &matching.Matches{Items: []*matching.Match{
		{
			Key:                "alice:dana",
			JobSeekerKey:       "alice",
			JobSeekerName:      "Alice Chen",
			AuthorityKey:       "dana",
			AuthorityName:      "Dana Fox",
			CompanyKey:         "acme",
			CompanyName:        "Acme Robotics",
			Score:              95,
			Reasons:            []string{"2 exact skill match(es): React, Node.js", "Direct decision maker"},
			HierarchyMatch:     "Perfect",
			ConnectionStrength: matching.StrengthStrong,
			Status:             matching.StatusRecommended,
			CreatedAt:          created,
		},
		{
			Key:                "bob:dana",
			JobSeekerKey:       "bob",
			JobSeekerName:      "Bob Miller",
			AuthorityKey:       "dana",
			AuthorityName:      "Dana Fox",
			CompanyKey:         "acme",
			CompanyName:        "Acme Robotics",
			Score:              62,
			Reasons:            []string{"Limited skill overlap"},
			HierarchyMatch:     "Perfect",
			ConnectionStrength: matching.StrengthWeak,
			Status:             matching.StatusPotential,
			CreatedAt:          created,
		},
	}}
}

func TestOpenCreatesSchema(t *testing.T) {
	store := setupTestStore(t)

	for _, table := range []string{"runs", "matches"} {
		var count int
		err := store.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&count)
		if err != nil {
			t.Fatalf("checking table %q: %v", table, err)
		}
		if count != 1 {
			t.Fatalf("expected table %q to exist", table)
		}
	}

	if err := store.Health(context.Background()); err != nil {
		t.Fatalf("health check failed: %v", err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candid-match.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	second.Close()
}

func TestSaveRunRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	matches := sampleMatches(created)

	ds := &dataset.Dataset{
		JobSeekers:        &dataset.JobSeekers{Items: []*dataset.JobSeeker{{Key: "alice"}, {Key: "bob"}}},
		HiringAuthorities: &dataset.HiringAuthorities{Items: []*dataset.HiringAuthority{{Key: "dana"}}},
		Companies:         &dataset.Companies{Items: []*dataset.Company{{Key: "acme"}}},
	}

	run := NewRun("testdata/export.json", ds, matches)
	if run.ID == "" {
		t.Fatal("expected a generated run id")
	}
	if run.JobSeekers != 2 || run.Authorities != 1 || run.Companies != 1 {
		t.Fatalf("unexpected entity counts: %+v", run)
	}
	if run.Matches != 2 || run.Recommended != 1 {
		t.Fatalf("unexpected match counts: %+v", run)
	}

	if err := store.SaveRun(ctx, run, matches); err != nil {
		t.Fatalf("saving run: %v", err)
	}

	fetched, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("getting run: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected the saved run to be found")
	}
	if fetched.Source != run.Source || fetched.Matches != 2 || fetched.Recommended != 1 {
		t.Fatalf("unexpected run after round trip: %+v", fetched)
	}

	stored, err := store.RunMatches(ctx, run.ID)
	if err != nil {
		t.Fatalf("listing matches: %v", err)
	}
	if stored.Len() != 2 {
		t.Fatalf("expected 2 stored matches, got %d", stored.Len())
	}

	first := stored.Items[0]
	if first.Key != "alice:dana" || first.Score != 95 {
		t.Fatalf("expected highest score first, got %+v", first)
	}
	if first.Status != matching.StatusRecommended || first.ConnectionStrength != matching.StrengthStrong {
		t.Fatalf("unexpected status/strength: %+v", first)
	}
	if !first.CreatedAt.Equal(created) {
		t.Fatalf("expected creation time %v, got %v", created, first.CreatedAt)
	}
	if !reflect.DeepEqual(first.Reasons, matches.Items[0].Reasons) {
		t.Fatalf("reasons did not round trip: %v", first.Reasons)
	}
}

func TestSaveRunDuplicateIDFails(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	run := NewRun("export.json", nil, nil)
	if err := store.SaveRun(ctx, run, nil); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.SaveRun(ctx, run, nil); err == nil {
		t.Fatal("expected duplicate run id to fail")
	}
}

func TestSaveRunRollsBackOnBadMatch(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	matches := sampleMatches(created)
	// A duplicate key inside one run violates the primary key and must roll
	// back the whole save, including the run row.
	matches.Items = append(matches.Items, matches.Items[0])

	run := NewRun("export.json", nil, matches)
	if err := store.SaveRun(ctx, run, matches); err == nil {
		t.Fatal("expected save to fail on duplicate match key")
	}

	fetched, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("getting run: %v", err)
	}
	if fetched != nil {
		t.Fatalf("expected rollback to remove the run, got %+v", fetched)
	}
}

func TestListRuns(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for i, created := range []time.Time{
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC),
	} {
		run := NewRun("export.json", nil, nil)
		run.CreatedAt = created
		run.Matches = i
		if err := store.SaveRun(ctx, run, nil); err != nil {
			t.Fatalf("saving run %d: %v", i, err)
		}
	}

	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("listing runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected limit to cap runs at 2, got %d", len(runs))
	}
	if !runs[0].CreatedAt.After(runs[1].CreatedAt) {
		t.Fatalf("expected newest first, got %v then %v", runs[0].CreatedAt, runs[1].CreatedAt)
	}

	all, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("listing all runs: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(all))
	}
}

func TestGetRunMissing(t *testing.T) {
	store := setupTestStore(t)

	run, err := store.GetRun(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run != nil {
		t.Fatalf("expected nil for unknown run, got %+v", run)
	}
}
