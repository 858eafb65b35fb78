package taxonomy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/curator-labs/curator/internal/errdefs"
)

func TestDiscover_EmptyLibrary(t *testing.T) {
	root := t.TempDir()
	cats, err := Discover(root, KindDomain)
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	if len(cats) != 0 {
		t.Errorf("Discover = %d categories, want 0", len(cats))
	}
}

func TestDiscover_SkipsHiddenAndFiles(t *testing.T) {
	root := t.TempDir()
	parent := filepath.Join(root, "domains")
	for _, dir := range []string{"payments", "site-reliability", ".git"} {
		if err := os.MkdirAll(filepath.Join(parent, dir), 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(parent, "README.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	cats, err := Discover(root, KindDomain)
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("Discover = %d categories, want 2", len(cats))
	}
	for _, c := range cats {
		if c.Name == ".git" || c.Name == "README.md" {
			t.Errorf("Discover returned %q; hidden dirs and files must be skipped", c.Name)
		}
		if c.IndexPath != filepath.Join(c.Dir, IndexFileName) {
			t.Errorf("IndexPath = %q, want under %q", c.IndexPath, c.Dir)
		}
	}
}

func TestCreate_SeedsCatalog(t *testing.T) {
	root := t.TempDir()
	cat, err := Create(root, KindTeam, "audits")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	data, err := os.ReadFile(cat.IndexPath)
	if err != nil {
		t.Fatalf("reading seeded catalog: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "# Audits\n") {
		t.Errorf("catalog heading missing, got %q", content)
	}
	if !strings.Contains(content, "Item Count: 0") {
		t.Errorf("catalog zero-count footer missing, got %q", content)
	}
}

func TestCreate_Conflict(t *testing.T) {
	root := t.TempDir()
	if _, err := Create(root, KindTeam, "audits"); err != nil {
		t.Fatalf("first Create error: %v", err)
	}
	_, err := Create(root, KindTeam, "audits")
	if !errdefs.IsKind(err, errdefs.KindConflict) {
		t.Errorf("second Create = %v, want ConflictError", err)
	}
}

func TestCreate_InvalidName(t *testing.T) {
	_, err := Create(t.TempDir(), KindDomain, "Bad_Name")
	if !errdefs.IsKind(err, errdefs.KindFormat) {
		t.Errorf("Create = %v, want FormatError", err)
	}
}

func TestDiscover_FreshSnapshotSeesNewCategory(t *testing.T) {
	root := t.TempDir()
	before, err := Discover(root, KindDomain)
	if err != nil {
		t.Fatal(err)
	}
	if len(before) != 0 {
		t.Fatalf("unexpected categories: %v", before)
	}

	if _, err := Create(root, KindDomain, "payments"); err != nil {
		t.Fatal(err)
	}

	after, err := Discover(root, KindDomain)
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != 1 || after[0].Name != "payments" {
		t.Errorf("Discover after Create = %+v, want the new category", after)
	}
}

func TestCategoryItemCounts(t *testing.T) {
	root := t.TempDir()
	cat, err := Create(root, KindDomain, "payments")
	if err != nil {
		t.Fatal(err)
	}
	// Two definitions plus the catalog file; catalog must not be counted.
	for _, f := range []string{"def-one.md", "def-two.md"} {
		if err := os.WriteFile(filepath.Join(cat.Dir, f), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cats, err := Discover(root, KindDomain)
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 1 || cats[0].Items != 2 {
		t.Errorf("Items = %d, want 2", cats[0].Items)
	}
}

func TestCategoryTitle(t *testing.T) {
	c := Category{Name: "site-reliability"}
	if got := c.Title(); got != "Site Reliability" {
		t.Errorf("Title = %q, want %q", got, "Site Reliability")
	}
}
