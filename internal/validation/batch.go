package validation

import (
	"fmt"
	"io"
	"sort"

	"github.com/curator-labs/curator/internal/unit"
)

// Summary aggregates a batch validation run across a library.
type Summary struct {
	Total   int       `json:"total" yaml:"total"`
	Passed  int       `json:"passed" yaml:"passed"`
	Failed  int       `json:"failed" yaml:"failed"`
	Reports []*Report `json:"reports" yaml:"reports"`
	// CheckFailures maps check name to how many units failed it.
	CheckFailures map[string]int `json:"checkFailures" yaml:"checkFailures"`
	// NeedsAttention lists failing targets, worst first.
	NeedsAttention []string `json:"needsAttention,omitempty" yaml:"needsAttention,omitempty"`
}

// ValidateAll discovers every unit under root and validates each in turn.
// A unit whose load or validation errors is recorded as a Fail on that unit
// alone; the batch never aborts early. The returned error is only for an
// undiscoverable library (unreadable taxonomy parents).
func ValidateAll(root string, opts Options) (*Summary, error) {
	located, err := unit.DiscoverAll(root)
	if err != nil {
		return nil, err
	}

	summary := &Summary{CheckFailures: map[string]int{}}
	for _, loc := range located {
		summary.Reports = append(summary.Reports, validateOne(loc, opts))
	}

	type attention struct {
		target string
		fails  int
	}
	var failing []attention

	summary.Total = len(summary.Reports)
	for _, r := range summary.Reports {
		if r.Passed() {
			summary.Passed++
			continue
		}
		summary.Failed++
		fails := 0
		for _, c := range r.Checks {
			if c.Status == Fail {
				summary.CheckFailures[c.Name]++
				fails++
			}
		}
		failing = append(failing, attention{r.Target, fails})
	}

	sort.Slice(failing, func(i, j int) bool {
		if failing[i].fails != failing[j].fails {
			return failing[i].fails > failing[j].fails
		}
		return failing[i].target < failing[j].target
	})
	for _, a := range failing {
		summary.NeedsAttention = append(summary.NeedsAttention, a.target)
	}

	return summary, nil
}

// validateOne validates a single discovered unit, converting any load error
// or panic into a one-check Fail report so the batch can continue.
func validateOne(loc unit.Located, opts Options) (report *Report) {
	defer func() {
		if r := recover(); r != nil {
			report = failReport(loc.Path, fmt.Sprintf("validation panicked: %v", r))
		}
	}()

	u, err := unit.Load(loc.Path)
	if err != nil {
		return failReport(loc.Path, err.Error())
	}
	return Validate(u, opts)
}

func failReport(target, msg string) *Report {
	return &Report{
		Target:      target,
		Status:      Fail,
		ChecksTotal: 1,
		Checks:      []CheckResult{{Name: "load", Status: Fail, Message: msg}},
	}
}

// Render writes the human-readable batch summary.
func (s *Summary) Render(w io.Writer) {
	fmt.Fprintf(w, "%d unit(s) validated: %d passed, %d failed\n", s.Total, s.Passed, s.Failed)
	if s.Failed == 0 {
		return
	}
	fmt.Fprintln(w, "\nFailures by check:")
	for _, name := range sortedCheckNames(s.CheckFailures) {
		fmt.Fprintf(w, "  %-20s %d\n", name, s.CheckFailures[name])
	}
	fmt.Fprintln(w, "\nNeeds attention:")
	for _, target := range s.NeedsAttention {
		fmt.Fprintf(w, "  %s\n", target)
	}
}

func sortedCheckNames(m map[string]int) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if m[names[i]] != m[names[j]] {
			return m[names[i]] > m[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
