package metadata

import (
	"strings"
	"testing"

	"github.com/curator-labs/curator/internal/errdefs"
	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, text string) Block {
	t.Helper()
	b, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse error: %v\ninput:\n%s", err, text)
	}
	return b
}

func TestParse_Scalars(t *testing.T) {
	b := mustParse(t, "name: def-error-budgets\ntier: core\nversion: 1.0.0\n")
	want := Block{
		"name":    String("def-error-budgets"),
		"tier":    String("core"),
		"version": String("1.0.0"),
	}
	if diff := cmp.Diff(want, b); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_EmptyValueIsEmptyString(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"trailing bare key", "name: x\nsummary:\n"},
		{"bare key before another", "summary:\nname: x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustParse(t, tt.text)
			v, ok := b["summary"]
			if !ok {
				t.Fatal("summary key missing")
			}
			if v.Kind != ScalarKind || v.Scalar != "" {
				t.Errorf("summary = %+v, want empty scalar", v)
			}
		})
	}
}

func TestParse_InlineList(t *testing.T) {
	b := mustParse(t, "tags: [slo, budgets, ops]\n")
	want := Block{"tags": List("slo", "budgets", "ops")}
	if diff := cmp.Diff(want, b); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_EmptyInlineList(t *testing.T) {
	b := mustParse(t, "tags: []\n")
	if diff := cmp.Diff(Block{"tags": List()}, b); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DashList(t *testing.T) {
	b := mustParse(t, "tools:\n  - scan.sh\n  - report.sh\n")
	want := Block{"tools": List("scan.sh", "report.sh")}
	if diff := cmp.Diff(want, b); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_NestedMapping(t *testing.T) {
	text := "contact:\n  owner: alice\n  channel: ops-help\n  escalation:\n    - pager\n    - email\n"
	b := mustParse(t, text)
	want := Block{
		"contact": Mapping(map[string]Value{
			"owner":      String("alice"),
			"channel":    String("ops-help"),
			"escalation": List("pager", "email"),
		}),
	}
	if diff := cmp.Diff(want, b); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_CommentsStripped(t *testing.T) {
	text := "# full-line comment\nname: def-x # trailing comment\n# another\ntier: core\n"
	b := mustParse(t, text)
	want := Block{"name": String("def-x"), "tier": String("core")}
	if diff := cmp.Diff(want, b); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_QuotedValues(t *testing.T) {
	b := mustParse(t, `summary: "How error budgets: are computed"` + "\n")
	// The colon split happens at the first colon; quoted values keep the rest.
	if got := b.GetString("summary"); got != "How error budgets: are computed" {
		t.Errorf("summary = %q", got)
	}
}

func TestParse_DuplicateKeysLastWins(t *testing.T) {
	b := mustParse(t, "tier: core\ntier: supported\n")
	if got := b.GetString("tier"); got != "supported" {
		t.Errorf("tier = %q, want last value %q", got, "supported")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantLine int
	}{
		{"missing colon", "name def-x\n", 1},
		{"dash without key", "- stray\n", 1},
		{"inline and dash list", "tags: [a]\n  - b\n", 2},
		{"list of lists inline", "tags: [[a], [b]]\n", 1},
		{"list of lists dash", "tags:\n  - [a, b]\n", 2},
		{"nested dash list", "tags:\n  - a\n    - b\n", 3},
		{"mapping of mappings", "contact:\n  owner:\n    name: alice\n", 3},
		{"indented key without parent", "name: x\n  owner: alice\n", 2},
		{"tab indentation", "contact:\n\towner: alice\n", 2},
		{"empty key", ": value\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			if err == nil {
				t.Fatalf("Parse succeeded, want ParseError\ninput:\n%s", tt.text)
			}
			if !errdefs.IsKind(err, errdefs.KindParse) {
				t.Fatalf("error kind = %v, want ParseError", err)
			}
			var ce *errdefs.Error
			if !asError(err, &ce) {
				t.Fatalf("error is not *errdefs.Error: %v", err)
			}
			if ce.Line != tt.wantLine {
				t.Errorf("error line = %d, want %d (%v)", ce.Line, tt.wantLine, err)
			}
		})
	}
}

func TestSplitDocument(t *testing.T) {
	doc := "---\nname: def-x\n---\n\n# Body\n"
	meta, body, found, err := SplitDocument(doc)
	if err != nil {
		t.Fatalf("SplitDocument error: %v", err)
	}
	if !found {
		t.Fatal("found = false, want true")
	}
	if meta != "name: def-x" {
		t.Errorf("meta = %q", meta)
	}
	if !strings.Contains(body, "# Body") {
		t.Errorf("body = %q", body)
	}
}

func TestSplitDocument_NoBlock(t *testing.T) {
	_, body, found, err := SplitDocument("# Just a heading\n")
	if err != nil {
		t.Fatalf("SplitDocument error: %v", err)
	}
	if found {
		t.Error("found = true, want false")
	}
	if body != "# Just a heading\n" {
		t.Errorf("body = %q, want original text", body)
	}
}

func TestSplitDocument_Unterminated(t *testing.T) {
	_, _, found, err := SplitDocument("---\nname: def-x\n")
	if !found {
		t.Error("found = false; the opening delimiter was present")
	}
	if !errdefs.IsKind(err, errdefs.KindParse) {
		t.Errorf("err = %v, want ParseError", err)
	}
}

// asError adapts errors.As without importing errors in every test.
func asError(err error, target **errdefs.Error) bool {
	for err != nil {
		if ce, ok := err.(*errdefs.Error); ok {
			*target = ce
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
