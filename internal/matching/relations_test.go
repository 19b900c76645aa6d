package matching

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelatedIsSymmetric(t *testing.T) {
	relations := DefaultRelations()

	// jsx is listed under react but has no entry of its own.
	if !relations.Related("react", "jsx") {
		t.Fatal("expected react and jsx to be related")
	}
	if !relations.Related("jsx", "react") {
		t.Fatal("expected the lookup to work in both directions")
	}
}

func TestRelatedUnrelatedSkills(t *testing.T) {
	relations := DefaultRelations()

	if relations.Related("react", "leadership") {
		t.Fatal("expected react and leadership to be unrelated")
	}
	if relations.Related("", "react") {
		t.Fatal("expected empty skill to be unrelated")
	}
}

func TestRelatedOnCustomTable(t *testing.T) {
	relations := Relations{
		"rust": {"systems", "webassembly"},
	}

	if !relations.Related("webassembly", "rust") {
		t.Fatal("expected reverse lookup on custom table")
	}
	if relations.Related("rust", "frontend") {
		t.Fatal("expected unlisted pair to be unrelated")
	}
}

func TestLoadRelationsNormalizesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relations.json")
	content := `{"Node.js": ["Back End", "API Design"], "  ": ["dropped"]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	relations, err := LoadRelations(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !relations.Related("nodejs", "backend") {
		t.Fatal("expected normalized key and value to relate")
	}
	if !relations.Related("apidesign", "nodejs") {
		t.Fatal("expected symmetric lookup on loaded table")
	}
	if len(relations) != 1 {
		t.Fatalf("expected empty key to be dropped, table has %d entries", len(relations))
	}
}

func TestLoadRelationsErrors(t *testing.T) {
	if _, err := LoadRelations(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := LoadRelations(path); err == nil {
		t.Fatal("expected error for malformed file")
	}
}
