package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/curator-labs/curator/internal/unit"
)

// validBody is a document body that satisfies every content check: all five
// required sections, two workflow and one example subsection, three
// categorized capability bullets, and a relative reference to the category
// catalog seeded by the fixtures.
const validBody = `# %TITLE%

## Overview

Describes the unit in one or two sentences.

## Capabilities

- **Posting:** records double-entry postings
- **Balancing:** computes a trial balance
- **Auditing:** keeps an immutable journal

## Workflows

### Record a transaction

Steps for recording.

### Close a period

Steps for closing.

## Examples

### Minimal posting

A worked example.

## Related Units

- See %CATALOG% for the category catalog.
`

func renderBody(title, catalogRef string) string {
	s := strings.ReplaceAll(validBody, "%TITLE%", title)
	return strings.ReplaceAll(s, "%CATALOG%", catalogRef)
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// writeDefinition builds a valid definition document under
// root/domains/<category>/ and returns its path.
func writeDefinition(t *testing.T, root, category, id string) string {
	t.Helper()
	dir := filepath.Join(root, "domains", category)
	write(t, filepath.Join(dir, "INDEX.md"), "# "+category+"\n\nItem Count: 0\n")

	doc := "---\n" +
		"name: " + id + "\n" +
		"domain: " + category + "\n" +
		"tier: core\n" +
		"version: 1.0.0\n" +
		"summary: Fixture definition\n" +
		"---\n\n" + renderBody(id, "./INDEX.md")
	path := filepath.Join(dir, id+".md")
	write(t, path, doc)
	return path
}

// writePackage builds a valid package directory under root/teams/<category>/
// with its fixed subdirectories and declared companion files, and returns the
// package path.
func writePackage(t *testing.T, root, category, id string) string {
	t.Helper()
	catDir := filepath.Join(root, "teams", category)
	write(t, filepath.Join(catDir, "INDEX.md"), "# "+category+"\n\nItem Count: 0\n")

	pkgDir := filepath.Join(catDir, id)
	doc := "---\n" +
		"name: " + id + "\n" +
		"team: " + category + "\n" +
		"tier: supported\n" +
		"version: 0.1.0\n" +
		"summary: Fixture package\n" +
		"tools:\n" +
		"  - scan.sh\n" +
		"references:\n" +
		"  - guide.md\n" +
		"---\n\n" + renderBody(id, "../INDEX.md")
	write(t, filepath.Join(pkgDir, unit.PackageDocName), doc)
	write(t, filepath.Join(pkgDir, unit.ToolsDir, "scan.sh"), "#!/usr/bin/env bash\n")
	write(t, filepath.Join(pkgDir, unit.ReferencesDir, "guide.md"), "# Guide\n")
	write(t, filepath.Join(pkgDir, unit.AssetsDir, ".gitkeep"), "")
	return pkgDir
}

func load(t *testing.T, path string) *unit.Unit {
	t.Helper()
	u, err := unit.Load(path)
	if err != nil {
		t.Fatalf("loading fixture %s: %v", path, err)
	}
	return u
}

func checkByName(t *testing.T, r *Report, name string) CheckResult {
	t.Helper()
	for _, c := range r.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("report has no %q check: %+v", name, r.Checks)
	return CheckResult{}
}
