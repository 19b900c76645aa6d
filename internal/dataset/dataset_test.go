package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

const exportFixture = `{
  "jobSeekers": [
    {
      "_key": "alice",
      "_id": "jobSeekers/alice",
      "_rev": "rev1",
      "name": "Alice Chen",
      "skills": ["React", "Node.js", "GraphQL"],
      "skillLevels": {"React": 9, "Node.js": 7},
      "experience": 5
    },
    {
      "_key": "bob",
      "name": "Bob Ortiz",
      "skills": ["Python"],
      "experience": 2
    }
  ],
  "hiringAuthorities": [
    {
      "_key": "carol",
      "_id": "hiringAuthorities/carol",
      "name": "Carol Diaz",
      "level": "Director",
      "skillsLookingFor": ["React", "Leadership"],
      "preferredExperience": "3-8 years",
      "hiringPower": "High",
      "decisionMaker": true,
      "companyId": "companies/acme"
    }
  ],
  "companies": [
    {
      "_key": "acme",
      "_id": "companies/acme",
      "name": "Acme Robotics",
      "employeeCount": 500
    }
  ]
}`

func writeExport(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "export.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadDecodesExportDocuments(t *testing.T) {
	ds, err := Load(writeExport(t, exportFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ds.JobSeekers.Len() != 2 {
		t.Fatalf("expected 2 job seekers, got %d", ds.JobSeekers.Len())
	}

	alice := ds.JobSeekers.FindByKey("alice")
	if alice == nil {
		t.Fatal("expected to find job seeker alice")
	}
	if alice.Name != "Alice Chen" {
		t.Fatalf("unexpected name: %q", alice.Name)
	}
	if alice.SkillLevels["React"] != 9 {
		t.Fatalf("expected React level 9, got %d", alice.SkillLevels["React"])
	}
	if alice.Experience != 5 {
		t.Fatalf("expected 5 years experience, got %d", alice.Experience)
	}

	carol := ds.HiringAuthorities.FindByKey("carol")
	if carol == nil {
		t.Fatal("expected to find hiring authority carol")
	}
	if carol.Level != LevelDirector {
		t.Fatalf("unexpected level: %q", carol.Level)
	}
	if !carol.DecisionMaker {
		t.Fatal("expected carol to be a decision maker")
	}
	if len(carol.SkillsLookingFor) != 2 {
		t.Fatalf("expected 2 wanted skills, got %d", len(carol.SkillsLookingFor))
	}

	acme := ds.Companies.FindByKey("acme")
	if acme == nil {
		t.Fatal("expected to find company acme")
	}
	if acme.EmployeeCount != 500 {
		t.Fatalf("unexpected employee count: %d", acme.EmployeeCount)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	if _, err := Load(writeExport(t, "{not json")); err == nil {
		t.Fatal("expected error for malformed file")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResolveCompanyHandle(t *testing.T) {
	companies := &Companies{Items: []*Company{
		{Key: "acme", Name: "Acme Robotics", EmployeeCount: 500},
		{Key: "globex", Name: "Globex", EmployeeCount: 50},
	}}

	if got := companies.Resolve("companies/acme"); got == nil || got.Key != "acme" {
		t.Fatalf("expected acme, got %+v", got)
	}

	if got := companies.Resolve("companies/unknown"); got != nil {
		t.Fatalf("expected nil for unknown company, got %+v", got)
	}

	// A bare key without the collection prefix is not a valid handle.
	if got := companies.Resolve("acme"); got != nil {
		t.Fatalf("expected nil for bare key, got %+v", got)
	}
}

func TestCompanyHandleRoundTrips(t *testing.T) {
	company := &Company{Key: "acme"}
	companies := &Companies{Items: []*Company{company}}

	if got := companies.Resolve(company.Handle()); got != company {
		t.Fatalf("expected handle to resolve back to the company, got %+v", got)
	}
}

func TestPruneDropsInvalidRecords(t *testing.T) {
	ds := &Dataset{
		JobSeekers: &JobSeekers{Items: []*JobSeeker{
			{Key: "alice", Experience: 5},
			{Key: "", Experience: 1},
			{Key: "bob", Experience: -2},
		}},
		HiringAuthorities: &HiringAuthorities{Items: []*HiringAuthority{
			{Key: "carol", CompanyID: "companies/acme"},
			{Key: "dave"},
		}},
		Companies: &Companies{Items: []*Company{
			{Key: "acme", EmployeeCount: 500},
			{Key: "globex", EmployeeCount: -1},
		}},
	}

	dropped := ds.Prune()
	if len(dropped) != 4 {
		t.Fatalf("expected 4 dropped records, got %d: %v", len(dropped), dropped)
	}

	if ds.JobSeekers.Len() != 1 || ds.JobSeekers.Items[0].Key != "alice" {
		t.Fatalf("unexpected job seekers after prune: %v", ds.JobSeekers.Keys())
	}
	if ds.HiringAuthorities.Len() != 1 || ds.HiringAuthorities.Items[0].Key != "carol" {
		t.Fatalf("unexpected authorities after prune: %v", ds.HiringAuthorities.Keys())
	}
	if ds.Companies.Len() != 1 || ds.Companies.Items[0].Key != "acme" {
		t.Fatalf("unexpected companies after prune: %d left", ds.Companies.Len())
	}
}

func TestRemoveByIndexDoesNotPreserveOrder(t *testing.T) {
	seekers := &JobSeekers{Items: []*JobSeeker{
		{Key: "a"}, {Key: "b"}, {Key: "c"},
	}}

	seekers.RemoveByIndex(0)

	if seekers.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", seekers.Len())
	}
	if seekers.FindByKey("a") != nil {
		t.Fatal("expected a to be removed")
	}
	if seekers.FindByKey("b") == nil || seekers.FindByKey("c") == nil {
		t.Fatal("expected b and c to survive")
	}
}
