package taxonomy

import "testing"

func TestValidateName_Valid(t *testing.T) {
	valid := []string{
		"abc",
		"quality-scan",
		"a1b2c3",
		"site-reliability",
		"x23",
		"machine-learning-ops",
		"abcdefghijklmnopqrstuvwxyz0123", // exactly 30
	}
	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) = %v, want nil", name, err)
		}
	}
}

func TestValidateName_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		reason string
	}{
		{"ab", "too short"},
		{"abcdefghijklmnopqrstuvwxyz01234", "too long"},
		{"Audits", "uppercase"},
		{"data_eng", "underscore"},
		{"1team", "leading digit"},
		{"-team", "leading hyphen"},
		{"dev--ops", "consecutive hyphens"},
		{"devops-", "trailing hyphen"},
		{"dev ops", "space"},
		{"", "empty"},
	}
	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			if err := ValidateName(tt.name); err == nil {
				t.Errorf("ValidateName(%q) = nil, want error (%s)", tt.name, tt.reason)
			}
		})
	}
}

func TestMapToSecondaryCategory_Suffix(t *testing.T) {
	if got := MapToSecondaryCategory("payments", nil); got != "payments-team" {
		t.Errorf("MapToSecondaryCategory(payments) = %q, want %q", got, "payments-team")
	}
}

func TestMapToSecondaryCategory_DefaultOverrides(t *testing.T) {
	if got := MapToSecondaryCategory("site-reliability", nil); got != "sre" {
		t.Errorf("MapToSecondaryCategory(site-reliability) = %q, want %q", got, "sre")
	}
}

func TestMapToSecondaryCategory_InjectedOverrides(t *testing.T) {
	overrides := map[string]string{"payments": "money-movers"}
	if got := MapToSecondaryCategory("payments", overrides); got != "money-movers" {
		t.Errorf("override ignored: got %q", got)
	}
	// Injected table fully replaces the default one.
	if got := MapToSecondaryCategory("site-reliability", overrides); got != "site-reliability-team" {
		t.Errorf("default table leaked through: got %q", got)
	}
}
