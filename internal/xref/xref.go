// Package xref extracts relative cross-references from a content unit's body
// and resolves them against the local filesystem. A reference either resolves
// to an existing absolute path or is reported unresolved; no judgment is made
// about whether an existing target is the intended one, and nothing is ever
// fetched over the network.
package xref

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// refPattern matches relative-reference shapes in free text: one or more
// "../" ascent markers, or an explicit "./", followed by path segments.
// Trailing punctuation that commonly follows a path in prose is excluded.
var refPattern = regexp.MustCompile(`(?:\.\./)+[A-Za-z0-9._/-]*|\./[A-Za-z0-9._/-]+`)

// Reference is one extracted cross-reference and its resolution outcome.
type Reference struct {
	Raw      string // the reference exactly as written in the body
	Resolved string // absolute path, empty when unresolved
	Exists   bool
}

// Extract returns the distinct relative references in body, in first-seen
// order.
func Extract(body string) []string {
	matches := refPattern.FindAllString(body, -1)
	seen := make(map[string]bool, len(matches))
	var refs []string
	for _, m := range matches {
		// Sentence punctuation after a path is part of the prose, not the
		// reference.
		m = strings.TrimRight(m, ".,")
		m = strings.TrimRight(m, "/")
		if m == "" || m == "." || m == ".." {
			continue
		}
		if !seen[m] {
			seen[m] = true
			refs = append(refs, m)
		}
	}
	return refs
}

// Resolve extracts the distinct relative references in body and resolves
// each against the directory containing unitPath, then checks filesystem
// existence. Files and directories both satisfy a reference.
func Resolve(unitPath string, body string) []Reference {
	baseDir := filepath.Dir(unitPath)

	var result []Reference
	for _, raw := range Extract(body) {
		abs, err := filepath.Abs(filepath.Join(baseDir, filepath.FromSlash(raw)))
		if err != nil {
			result = append(result, Reference{Raw: raw})
			continue
		}
		if _, statErr := os.Stat(abs); statErr != nil {
			result = append(result, Reference{Raw: raw})
			continue
		}
		result = append(result, Reference{Raw: raw, Resolved: abs, Exists: true})
	}
	return result
}

// Unresolved filters a resolution result down to the references that did not
// resolve to an existing target.
func Unresolved(refs []Reference) []Reference {
	var missing []Reference
	for _, r := range refs {
		if !r.Exists {
			missing = append(missing, r)
		}
	}
	return missing
}
