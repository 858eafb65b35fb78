package validation

import (
	"strings"
	"testing"

	"github.com/curator-labs/curator/internal/metadata"
)

func TestValidate_DefinitionPasses(t *testing.T) {
	root := t.TempDir()
	path := writeDefinition(t, root, "payments", "def-ledger")

	report, err := ValidatePath(path, Options{})
	if err != nil {
		t.Fatalf("ValidatePath error: %v", err)
	}
	if !report.Passed() {
		t.Fatalf("report failed:\n%s", renderReport(report))
	}
	if report.ChecksTotal != len(suite) {
		t.Errorf("ChecksTotal = %d, want %d", report.ChecksTotal, len(suite))
	}
	if report.ChecksPassed != report.ChecksTotal {
		t.Errorf("ChecksPassed = %d, want %d", report.ChecksPassed, report.ChecksTotal)
	}
}

func TestValidate_PackagePasses(t *testing.T) {
	root := t.TempDir()
	path := writePackage(t, root, "audits", "quality-scan")

	report, err := ValidatePath(path, Options{CleanCheck: true})
	if err != nil {
		t.Fatalf("ValidatePath error: %v", err)
	}
	if !report.Passed() {
		t.Fatalf("report failed:\n%s", renderReport(report))
	}
	if report.ChecksTotal != len(suite)+1 {
		t.Errorf("ChecksTotal = %d, want the suite plus the opt-in cleanliness check", report.ChecksTotal)
	}
	if checkByName(t, report, CheckClean).Status != Pass {
		t.Error("workspace-clean should pass on a freshly built package")
	}
}

func TestValidate_CleanCheckIsOptIn(t *testing.T) {
	root := t.TempDir()
	path := writePackage(t, root, "audits", "quality-scan")

	report, err := ValidatePath(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range report.Checks {
		if c.Name == CheckClean {
			t.Error("workspace-clean ran without being requested")
		}
	}
}

// A single defect fails its own check and leaves every other check running
// to its own verdict.
func TestValidate_ChecksAreIndependent(t *testing.T) {
	root := t.TempDir()
	path := writeDefinition(t, root, "payments", "def-ledger")

	u := load(t, path)
	u.Meta["version"] = metadata.String("1.0") // not strict semver

	report := Validate(u, Options{})
	if report.Passed() {
		t.Fatal("report should fail on the bad version")
	}
	if got := checkByName(t, report, CheckMetadata).Status; got != Fail {
		t.Errorf("metadata check = %s, want fail", got)
	}
	if report.ChecksPassed != report.ChecksTotal-1 {
		t.Errorf("ChecksPassed = %d, want %d: only the metadata check should fail",
			report.ChecksPassed, report.ChecksTotal-1)
	}
}

func TestValidate_DeprecatedTierWarns(t *testing.T) {
	root := t.TempDir()
	path := writeDefinition(t, root, "payments", "def-ledger")

	u := load(t, path)
	u.Meta["tier"] = metadata.String("deprecated")

	report := Validate(u, Options{})
	if !report.Passed() {
		t.Fatalf("a deprecated unit is still valid:\n%s", renderReport(report))
	}
	if got := checkByName(t, report, CheckMetadata).Status; got != Warn {
		t.Errorf("metadata check = %s, want warn", got)
	}
}

func TestValidate_MissingMetadataBlock(t *testing.T) {
	root := t.TempDir()
	path := writeDefinition(t, root, "payments", "def-ledger")
	write(t, path, renderBody("def-ledger", "./INDEX.md")) // no front block

	report, err := ValidatePath(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := checkByName(t, report, CheckMetadata).Status; got != Fail {
		t.Errorf("metadata check = %s, want fail", got)
	}
	// Checks that only read the body still succeed.
	if got := checkByName(t, report, CheckSections).Status; got != Pass {
		t.Errorf("required-sections check = %s, want pass", got)
	}
}

func renderReport(r *Report) string {
	var b strings.Builder
	r.Render(&b)
	return b.String()
}
