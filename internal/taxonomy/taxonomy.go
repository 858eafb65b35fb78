package taxonomy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/curator-labs/curator/internal/errdefs"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind distinguishes the two taxonomy parents.
type Kind string

const (
	// KindDomain groups definition documents under domains/.
	KindDomain Kind = "domain"
	// KindTeam groups packages under teams/.
	KindTeam Kind = "team"
)

// ParentDir returns the library-relative parent directory for a kind.
func ParentDir(kind Kind) string {
	if kind == KindTeam {
		return "teams"
	}
	return "domains"
}

// IndexFileName is the fixed name of each category's catalog file.
const IndexFileName = "INDEX.md"

// Category is a discovered taxonomy entry.
type Category struct {
	Name      string // validated identifier, e.g. "site-reliability"
	Kind      Kind
	Dir       string // absolute path to the category directory
	IndexPath string // absolute path to its catalog file
	Items     int    // unit count, populated by Discover
}

var titleCaser = cases.Title(language.English)

// Title returns the display heading for the category ("site-reliability" →
// "Site Reliability").
func (c Category) Title() string {
	return titleCaser.String(strings.ReplaceAll(c.Name, "-", " "))
}

// Discover lists the taxonomy parent for kind under root and returns the
// category set as a fresh snapshot. Entries starting with "." are skipped.
// Callers must not cache the result across operations that create categories.
func Discover(root string, kind Kind) ([]Category, error) {
	parent := filepath.Join(root, ParentDir(kind))
	entries, err := os.ReadDir(parent)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errdefs.IO(fmt.Sprintf("listing %s", parent), err)
	}

	var result []Category
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		dir := filepath.Join(parent, e.Name())
		cat := Category{
			Name:      e.Name(),
			Kind:      kind,
			Dir:       dir,
			IndexPath: filepath.Join(dir, IndexFileName),
		}
		cat.Items = countUnits(cat)
		result = append(result, cat)
	}
	return result, nil
}

// Lookup returns the named category from a fresh Discover snapshot, or
// ok=false if it does not exist.
func Lookup(root string, kind Kind, name string) (Category, bool, error) {
	cats, err := Discover(root, kind)
	if err != nil {
		return Category{}, false, err
	}
	for _, c := range cats {
		if c.Name == name {
			return c, true, nil
		}
	}
	return Category{}, false, nil
}

// Create validates name, checks for collisions against a fresh snapshot,
// creates the category directory, and seeds an empty catalog index with a
// heading and a zero-count footer.
func Create(root string, kind Kind, name string) (Category, error) {
	if err := ValidateName(name); err != nil {
		return Category{}, err
	}

	existing, err := Discover(root, kind)
	if err != nil {
		return Category{}, err
	}
	for _, c := range existing {
		if c.Name == name {
			return Category{}, errdefs.Conflict("category %q already exists under %s/", name, ParentDir(kind))
		}
	}

	dir := filepath.Join(root, ParentDir(kind), name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Category{}, errdefs.IO(fmt.Sprintf("creating category directory %s", dir), err)
	}

	cat := Category{
		Name:      name,
		Kind:      kind,
		Dir:       dir,
		IndexPath: filepath.Join(dir, IndexFileName),
	}

	seed := fmt.Sprintf("# %s\n\nItem Count: 0\n", cat.Title())
	if err := os.WriteFile(cat.IndexPath, []byte(seed), 0644); err != nil {
		return Category{}, errdefs.IO(fmt.Sprintf("seeding catalog %s", cat.IndexPath), err)
	}

	return cat, nil
}

// countUnits counts content units directly under a category directory:
// subdirectories (packages) plus .md files other than the catalog itself
// (definition documents). Best effort; unreadable directories count zero.
func countUnits(cat Category) int {
	entries, err := os.ReadDir(cat.Dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if e.IsDir() {
			n++
			continue
		}
		if strings.HasSuffix(name, ".md") && name != IndexFileName {
			n++
		}
	}
	return n
}
