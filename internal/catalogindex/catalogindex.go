// Package catalogindex maintains the per-category catalog file (INDEX.md):
// an ordered list of entries, one per content unit, with an optional running
// Item Count footer.
//
// The only mutation is an append at a located insertion point; the file is
// never restructured. Appending is deliberately not idempotent: calling
// Append twice for the same unit produces a duplicate entry, and callers
// must guarantee a single invocation per successfully scaffolded unit.
package catalogindex

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/curator-labs/curator/internal/errdefs"
	"github.com/curator-labs/curator/internal/taxonomy"
)

// entryPrefix opens every catalog entry line.
const entryPrefix = "- "

// countPattern matches the running count footer, capturing the number.
var countPattern = regexp.MustCompile(`^(Item Count:\s*)(\d+)(.*)$`)

// FormatEntry renders the catalog line for a unit.
func FormatEntry(id, summary string) string {
	if summary == "" {
		return fmt.Sprintf("- **%s**", id)
	}
	return fmt.Sprintf("- **%s** — %s", id, summary)
}

// Append inserts one entry into the category's catalog and bumps the Item
// Count footer when one is present. The insertion point is immediately after
// the last existing entry line, or immediately after the category heading if
// the list is empty. A missing catalog is auto-created with a heading and a
// zero footer before the append; a malformed one (no heading) is a
// CatalogError and is never silently repaired.
func Append(cat taxonomy.Category, id, summary string) error {
	data, err := os.ReadFile(cat.IndexPath)
	if os.IsNotExist(err) {
		seed := fmt.Sprintf("# %s\n\nItem Count: 0\n", cat.Title())
		data = []byte(seed)
	} else if err != nil {
		return errdefs.IO(fmt.Sprintf("reading catalog %s", cat.IndexPath), err)
	}

	lines := strings.Split(string(data), "\n")

	headingIdx := -1
	lastEntryIdx := -1
	for i, line := range lines {
		if headingIdx < 0 && strings.HasPrefix(line, "# ") {
			headingIdx = i
		}
		if strings.HasPrefix(line, entryPrefix) {
			lastEntryIdx = i
		}
	}
	if headingIdx < 0 {
		return errdefs.Catalog("catalog %s has no heading line; expected it to open with %q", cat.IndexPath, "# <category>")
	}

	insertAfter := headingIdx
	if lastEntryIdx > headingIdx {
		insertAfter = lastEntryIdx
	}

	entry := FormatEntry(id, summary)
	updated := make([]string, 0, len(lines)+1)
	updated = append(updated, lines[:insertAfter+1]...)
	updated = append(updated, entry)
	updated = append(updated, lines[insertAfter+1:]...)

	// Bump the running count footer, leaving all other footer text intact.
	for i, line := range updated {
		if m := countPattern.FindStringSubmatch(line); m != nil {
			n, convErr := strconv.Atoi(m[2])
			if convErr != nil {
				continue
			}
			updated[i] = m[1] + strconv.Itoa(n+1) + m[3]
			break
		}
	}

	if err := os.WriteFile(cat.IndexPath, []byte(strings.Join(updated, "\n")), 0644); err != nil {
		return errdefs.IO(fmt.Sprintf("writing catalog %s", cat.IndexPath), err)
	}
	return nil
}

// Entries returns the entry lines currently in the catalog, in order.
func Entries(cat taxonomy.Category) ([]string, error) {
	data, err := os.ReadFile(cat.IndexPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errdefs.Catalog("catalog %s does not exist", cat.IndexPath)
		}
		return nil, errdefs.IO(fmt.Sprintf("reading catalog %s", cat.IndexPath), err)
	}
	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, entryPrefix) {
			entries = append(entries, line)
		}
	}
	return entries, nil
}
