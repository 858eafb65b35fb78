package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/curator-labs/curator/internal/metadata"
	"github.com/curator-labs/curator/internal/taxonomy"
	"github.com/curator-labs/curator/internal/unit"
	"github.com/curator-labs/curator/internal/xref"
)

// Check names, in suite order.
const (
	CheckIdentifier   = "identifier-format"
	CheckMetadata     = "metadata"
	CheckCategory     = "category-match"
	CheckCrossRefs    = "cross-references"
	CheckCompanions   = "companion-artifacts"
	CheckWorkflows    = "workflow-coverage"
	CheckCapabilities = "capability-summary"
	CheckSections     = "required-sections"
	CheckRelated      = "related-units"
	CheckClean        = "workspace-clean"
)

// Tiers is the closed vocabulary for the "tier" metadata key.
var Tiers = []string{"core", "supported", "experimental", "deprecated"}

// Minimum content-completeness thresholds.
const (
	MinWorkflows    = 2
	MinExamples     = 1
	MinCapabilities = 3
)

// RequiredSections must all appear as "## " headings, in any order.
var RequiredSections = []string{"Overview", "Capabilities", "Workflows", "Examples", "Related Units"}

// checkIdentifier applies the identifier grammar plus the kind-specific
// prefix rule: definitions carry the reserved "def-" prefix, packages must
// not.
func checkIdentifier(u *unit.Unit) CheckResult {
	if err := taxonomy.ValidateName(u.ID); err != nil {
		return fail(CheckIdentifier, "%v", err)
	}
	hasPrefix := strings.HasPrefix(u.ID, unit.DefinitionPrefix)
	if u.Kind == unit.KindDefinition && !hasPrefix {
		return fail(CheckIdentifier, "definition identifier %q must carry the %q prefix", u.ID, unit.DefinitionPrefix)
	}
	if u.Kind == unit.KindPackage && hasPrefix {
		return fail(CheckIdentifier, "package identifier %q must not carry the reserved %q prefix", u.ID, unit.DefinitionPrefix)
	}
	return pass(CheckIdentifier, "identifier %q is well-formed", u.ID)
}

// requiredKeys lists the required metadata keys per kind, in report order.
func requiredKeys(kind unit.Kind) []string {
	if kind == unit.KindPackage {
		return []string{"name", "team", "tier", "version", "summary", "tools", "references"}
	}
	return []string{"name", "domain", "tier", "version", "summary"}
}

// listKeys are required keys whose values must be lists; all other required
// keys must be scalars.
var listKeys = map[string]bool{"tools": true, "references": true}

// checkMetadata verifies the metadata block is present and parseable, that
// all required keys exist with the right value shapes, that "tier" is in the
// closed vocabulary, and that "version" is valid semver. A "deprecated" tier
// downgrades an otherwise clean result to Warn.
func checkMetadata(u *unit.Unit) CheckResult {
	if u.DocErr != nil {
		return fail(CheckMetadata, "%v", u.DocErr)
	}
	if u.MetaErr != nil {
		return fail(CheckMetadata, "metadata block does not parse: %v", u.MetaErr)
	}
	if !u.MetaFound {
		return fail(CheckMetadata, "document does not open with a %q-delimited metadata block", metadata.Delimiter)
	}

	var problems []string
	for _, key := range requiredKeys(u.Kind) {
		v, ok := u.Meta[key]
		if !ok {
			problems = append(problems, fmt.Sprintf("missing required key %q", key))
			continue
		}
		if listKeys[key] {
			if v.Kind != metadata.ListKind {
				problems = append(problems, fmt.Sprintf("key %q must be a list, got %s", key, v.Kind))
			}
			continue
		}
		if v.Kind != metadata.ScalarKind {
			problems = append(problems, fmt.Sprintf("key %q must be a scalar, got %s", key, v.Kind))
		} else if v.Scalar == "" {
			problems = append(problems, fmt.Sprintf("key %q is empty", key))
		}
	}

	tier := u.Meta.GetString("tier")
	if tier != "" && !contains(Tiers, tier) {
		problems = append(problems, fmt.Sprintf("tier %q is not one of %s", tier, strings.Join(Tiers, ", ")))
	}

	if version := u.Meta.GetString("version"); version != "" {
		if _, err := semver.StrictNewVersion(version); err != nil {
			problems = append(problems, fmt.Sprintf("version %q is not valid semver: %v", version, err))
		}
	}

	if u.Meta.GetString("name") != "" && u.Meta.GetString("name") != u.ID {
		problems = append(problems, fmt.Sprintf("metadata name %q does not match identifier %q", u.Meta.GetString("name"), u.ID))
	}

	if len(problems) > 0 {
		res := fail(CheckMetadata, "%d metadata problem(s)", len(problems))
		res.Details = problems
		return res
	}
	if tier == "deprecated" {
		return warn(CheckMetadata, "metadata is complete; unit is marked deprecated")
	}
	return pass(CheckMetadata, "metadata is complete and well-formed")
}

// checkCategory verifies the declared category matches the directory the
// unit actually lives in.
func checkCategory(u *unit.Unit) CheckResult {
	if u.Meta == nil {
		return fail(CheckCategory, "metadata unavailable; cannot verify declared category")
	}
	key := "domain"
	if u.Kind == unit.KindPackage {
		key = "team"
	}
	declared := u.Meta.GetString(key)
	if declared == "" {
		return fail(CheckCategory, "metadata does not declare %q", key)
	}
	if declared != u.Category {
		return fail(CheckCategory, "declared %s %q but unit lives in category %q", key, declared, u.Category)
	}
	return pass(CheckCategory, "declared %s matches directory %q", key, u.Category)
}

// checkCrossRefs resolves every relative reference in the body against the
// unit's location; any unresolved reference is a Fail.
func checkCrossRefs(u *unit.Unit) CheckResult {
	refs := xref.Resolve(u.DocPath, u.Body)
	if len(refs) == 0 {
		return pass(CheckCrossRefs, "no relative references in body")
	}
	missing := xref.Unresolved(refs)
	if len(missing) > 0 {
		res := fail(CheckCrossRefs, "%d of %d reference(s) do not resolve", len(missing), len(refs))
		for _, m := range missing {
			res.Details = append(res.Details, fmt.Sprintf("%s does not resolve to an existing path", m.Raw))
		}
		return res
	}
	return pass(CheckCrossRefs, "%d reference(s) resolve", len(refs))
}

// checkCompanions verifies a package's fixed subdirectories exist and that
// every declared tool and reference file is physically present. Definitions
// declare no companion artifacts.
func checkCompanions(u *unit.Unit) CheckResult {
	if u.Kind != unit.KindPackage {
		return pass(CheckCompanions, "definition documents declare no companion artifacts")
	}

	var problems []string
	for _, sub := range []string{unit.ToolsDir, unit.ReferencesDir, unit.AssetsDir} {
		if info, err := os.Stat(filepath.Join(u.Path, sub)); err != nil || !info.IsDir() {
			problems = append(problems, fmt.Sprintf("missing %s/ directory", sub))
		}
	}

	if u.Meta != nil {
		for _, tool := range u.Meta.GetList("tools") {
			if !fileExists(filepath.Join(u.Path, unit.ToolsDir, tool)) {
				problems = append(problems, fmt.Sprintf("declared tool %q missing from %s/", tool, unit.ToolsDir))
			}
		}
		for _, ref := range u.Meta.GetList("references") {
			if !fileExists(filepath.Join(u.Path, unit.ReferencesDir, ref)) {
				problems = append(problems, fmt.Sprintf("declared reference %q missing from %s/", ref, unit.ReferencesDir))
			}
		}
	}

	if len(problems) > 0 {
		res := fail(CheckCompanions, "%d companion artifact problem(s)", len(problems))
		res.Details = problems
		return res
	}
	return pass(CheckCompanions, "all declared companion artifacts are present")
}

// checkWorkflows counts "###" subsections under the Workflows and Examples
// sections against the documented minimums.
func checkWorkflows(u *unit.Unit) CheckResult {
	workflows := countSubsections(sectionBody(u.Body, "Workflows"))
	examples := countSubsections(sectionBody(u.Body, "Examples"))

	var problems []string
	if workflows < MinWorkflows {
		problems = append(problems, fmt.Sprintf("found %d workflow subsection(s), need at least %d", workflows, MinWorkflows))
	}
	if examples < MinExamples {
		problems = append(problems, fmt.Sprintf("found %d example subsection(s), need at least %d", examples, MinExamples))
	}
	if len(problems) > 0 {
		res := fail(CheckWorkflows, "content completeness below minimum")
		res.Details = problems
		return res
	}
	return pass(CheckWorkflows, "%d workflow and %d example subsection(s) documented", workflows, examples)
}

// capabilityBullet matches a categorized summary bullet: "- **Label:** text".
var capabilityBullet = regexp.MustCompile(`(?m)^-\s+\*\*[^*]+:\*\*`)

// checkCapabilities counts categorized summary bullets in the Capabilities
// section.
func checkCapabilities(u *unit.Unit) CheckResult {
	n := len(capabilityBullet.FindAllString(sectionBody(u.Body, "Capabilities"), -1))
	if n < MinCapabilities {
		return fail(CheckCapabilities, "found %d categorized capability bullet(s), need at least %d", n, MinCapabilities)
	}
	return pass(CheckCapabilities, "%d categorized capability bullet(s)", n)
}

// checkSections verifies every required top-level section heading appears,
// in any order.
func checkSections(u *unit.Unit) CheckResult {
	present := sectionSet(u.Body)
	var missing []string
	for _, s := range RequiredSections {
		if !present[s] {
			missing = append(missing, "## "+s)
		}
	}
	if len(missing) > 0 {
		res := fail(CheckSections, "%d required section(s) missing", len(missing))
		res.Details = missing
		return res
	}
	return pass(CheckSections, "all %d required sections present", len(RequiredSections))
}

// checkRelated verifies the unit declares at least one reference to a
// related unit.
func checkRelated(u *unit.Unit) CheckResult {
	body := sectionBody(u.Body, "Related Units")
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "- ") {
			return pass(CheckRelated, "related units declared")
		}
	}
	return fail(CheckRelated, "the Related Units section must list at least one related unit")
}

// junkPatterns are incidental workspace artifacts that the opt-in
// cleanliness check rejects.
var junkPatterns = []string{"*~", "*.bak", "*.swp", ".DS_Store", "__pycache__", "notes-internal.md"}

// checkClean walks a package tree for incidental artifacts. Opt-in: excluded
// from the suite unless explicitly requested, so existing units remain
// compatible with the stricter standard.
func checkClean(u *unit.Unit) CheckResult {
	var found []string
	_ = filepath.WalkDir(u.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		for _, pattern := range junkPatterns {
			if ok, _ := filepath.Match(pattern, d.Name()); ok {
				rel, relErr := filepath.Rel(u.Path, path)
				if relErr != nil {
					rel = path
				}
				found = append(found, rel)
				break
			}
		}
		return nil
	})
	if len(found) > 0 {
		res := fail(CheckClean, "%d incidental artifact(s) in package tree", len(found))
		res.Details = found
		return res
	}
	return pass(CheckClean, "package tree is clean")
}

// ─── body helpers ──────────────────────────────────────────────────

var h2Pattern = regexp.MustCompile(`(?m)^##\s+(.+?)\s*$`)
var h3Pattern = regexp.MustCompile(`(?m)^###\s+\S`)

// sectionSet returns the set of "## " heading titles in body.
func sectionSet(body string) map[string]bool {
	set := map[string]bool{}
	for _, m := range h2Pattern.FindAllStringSubmatch(body, -1) {
		set[m[1]] = true
	}
	return set
}

// sectionBody returns the text between the named "## " heading and the next
// "## " heading (or end of document). Empty string when the section is
// absent.
func sectionBody(body, title string) string {
	lines := strings.Split(body, "\n")
	start := -1
	for i, line := range lines {
		if m := h2Pattern.FindStringSubmatch(line); m != nil {
			if start >= 0 {
				return strings.Join(lines[start:i], "\n")
			}
			if m[1] == title {
				start = i + 1
			}
		}
	}
	if start < 0 {
		return ""
	}
	return strings.Join(lines[start:], "\n")
}

func countSubsections(section string) int {
	return len(h3Pattern.FindAllString(section, -1))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
