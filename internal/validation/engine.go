package validation

import (
	"fmt"

	"github.com/curator-labs/curator/internal/unit"
)

// Options parameterize a validation run.
type Options struct {
	// CleanCheck opts the workspace-cleanliness check into the required
	// suite for packages.
	CleanCheck bool
}

type namedCheck struct {
	name string
	fn   func(*unit.Unit) CheckResult
}

// suite is the ordered standard check suite shared by both unit kinds.
var suite = []namedCheck{
	{CheckIdentifier, checkIdentifier},
	{CheckMetadata, checkMetadata},
	{CheckCategory, checkCategory},
	{CheckCrossRefs, checkCrossRefs},
	{CheckCompanions, checkCompanions},
	{CheckWorkflows, checkWorkflows},
	{CheckCapabilities, checkCapabilities},
	{CheckSections, checkSections},
	{CheckRelated, checkRelated},
}

// Validate runs the ordered check suite against a loaded unit and aggregates
// the results. Every check runs regardless of earlier outcomes; a panicking
// check is captured as a Fail on that check only.
func Validate(u *unit.Unit, opts Options) *Report {
	checks := suite
	if opts.CleanCheck && u.Kind == unit.KindPackage {
		checks = append(append([]namedCheck{}, suite...), namedCheck{CheckClean, checkClean})
	}

	report := &Report{
		Target:      u.Path,
		ChecksTotal: len(checks),
	}

	for _, c := range checks {
		res := runCheck(c, u)
		if res.Status != Fail {
			report.ChecksPassed++
		}
		report.Checks = append(report.Checks, res)
	}

	report.Status = Pass
	for _, c := range report.Checks {
		if c.Status == Fail {
			report.Status = Fail
			break
		}
	}
	return report
}

// ValidatePath loads the unit at path and validates it. The returned error
// is only for an unreadable target (exit code 2 territory); validation
// outcomes are always in the report.
func ValidatePath(path string, opts Options) (*Report, error) {
	u, err := unit.Load(path)
	if err != nil {
		return nil, err
	}
	return Validate(u, opts), nil
}

func runCheck(c namedCheck, u *unit.Unit) (res CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			res = fail(c.name, "check panicked: %v", r)
		}
	}()
	res = c.fn(u)
	if res.Name == "" {
		res.Name = c.name
	}
	if res.Message == "" {
		res.Message = fmt.Sprintf("%s check completed", c.name)
	}
	return res
}
