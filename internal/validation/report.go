package validation

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// Status is a check outcome.
type Status string

const (
	Pass Status = "pass"
	Fail Status = "fail"
	Warn Status = "warn"
)

// CheckResult is the outcome of a single check.
type CheckResult struct {
	Name    string   `json:"name" yaml:"name"`
	Status  Status   `json:"status" yaml:"status"`
	Message string   `json:"message" yaml:"message"`
	Details []string `json:"details,omitempty" yaml:"details,omitempty"`
}

// Report is the validation outcome for one unit. A unit is fully valid only
// when no required check reports Fail; Warn results are surfaced but do not
// affect the overall status.
type Report struct {
	Target       string        `json:"target" yaml:"target"`
	Status       Status        `json:"status" yaml:"status"`
	ChecksPassed int           `json:"checksPassed" yaml:"checksPassed"`
	ChecksTotal  int           `json:"checksTotal" yaml:"checksTotal"`
	Checks       []CheckResult `json:"checks" yaml:"checks"`
}

// Passed reports whether the unit is fully valid.
func (r *Report) Passed() bool {
	return r.Status == Pass
}

// EncodeJSON writes the machine-readable report as indented JSON.
func (r *Report) EncodeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// EncodeYAML writes the machine-readable report as YAML.
func (r *Report) EncodeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(r)
}

// Render writes the human-readable report.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintf(w, "%s: %s (%d/%d checks passed)\n", r.Target, r.Status, r.ChecksPassed, r.ChecksTotal)
	for _, c := range r.Checks {
		fmt.Fprintf(w, "  [%s] %-20s %s\n", marker(c.Status), c.Name, c.Message)
		for _, d := range c.Details {
			fmt.Fprintf(w, "        - %s\n", d)
		}
	}
}

func marker(s Status) string {
	switch s {
	case Pass:
		return "ok"
	case Warn:
		return "warn"
	default:
		return "FAIL"
	}
}

func pass(name, format string, args ...any) CheckResult {
	return CheckResult{Name: name, Status: Pass, Message: fmt.Sprintf(format, args...)}
}

func fail(name, format string, args ...any) CheckResult {
	return CheckResult{Name: name, Status: Fail, Message: fmt.Sprintf(format, args...)}
}

func warn(name, format string, args ...any) CheckResult {
	return CheckResult{Name: name, Status: Warn, Message: fmt.Sprintf(format, args...)}
}
