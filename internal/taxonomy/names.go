package taxonomy

import (
	"regexp"
	"strings"

	"github.com/curator-labs/curator/internal/errdefs"
)

// Identifier grammar: lowercase letter first, then lowercase alphanumerics
// and hyphens, length 3–30, no consecutive hyphens, no trailing hyphen.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

const (
	// MinNameLen and MaxNameLen bound identifier length, inclusive.
	MinNameLen = 3
	MaxNameLen = 30
)

// ValidateName applies the identifier grammar shared by category names and
// unit identifiers. Pure function, no I/O. The returned FormatError names
// the specific rule violated and the expected shape.
func ValidateName(name string) error {
	if len(name) < MinNameLen || len(name) > MaxNameLen {
		return errdefs.Format("name %q is %d characters; must be %d-%d", name, len(name), MinNameLen, MaxNameLen)
	}
	if !namePattern.MatchString(name) {
		return errdefs.Format("name %q is invalid; expected a lowercase letter followed by lowercase letters, digits, or hyphens", name)
	}
	if strings.Contains(name, "--") {
		return errdefs.Format("name %q contains consecutive hyphens", name)
	}
	if strings.HasSuffix(name, "-") {
		return errdefs.Format("name %q ends with a hyphen", name)
	}
	return nil
}

// secondarySuffix is appended to a domain name to derive its team name.
const secondarySuffix = "-team"

// DefaultSecondaryOverrides maps domains whose team name does not follow the
// suffix convention. Injectable so callers (and tests) can substitute their
// own table.
var DefaultSecondaryOverrides = map[string]string{
	"machine-learning": "ml-platform",
	"data-engineering": "data-infra",
	"site-reliability": "sre",
}

// MapToSecondaryCategory derives the team category name for a domain:
// the override table wins, otherwise the "-team" suffix is appended.
// Pure function, no I/O.
func MapToSecondaryCategory(primary string, overrides map[string]string) string {
	if overrides == nil {
		overrides = DefaultSecondaryOverrides
	}
	if mapped, ok := overrides[primary]; ok {
		return mapped
	}
	return primary + secondarySuffix
}
