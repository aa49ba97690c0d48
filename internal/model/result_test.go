package model

import (
	"strings"
	"testing"
)

// TestFormatScamType tests display formatting of scam type labels.
func TestFormatScamType(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"two segments", "romance_scam", "Romance Scam"},
		{"three segments", "tech_support_scam", "Tech Support Scam"},
		{"single segment", "phishing", "Phishing"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"keeps inner capitals", "iRS_impersonation", "IRS Impersonation"},
		{"digits stay", "419_scam", "419 Scam"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatScamType(tc.input); got != tc.expected {
				t.Errorf("FormatScamType(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

// TestAnalysisResultSummary tests the clipboard summary format.
func TestAnalysisResultSummary(t *testing.T) {
	t.Parallel()

	t.Run("includes label confidence and explanation", func(t *testing.T) {
		t.Parallel()

		r := &AnalysisResult{
			RiskLevel:   RiskLikelyScam,
			Confidence:  85,
			Explanation: "The sender asks for gift cards.",
		}

		expected := "Scam Check Result: Likely Scam (85% confidence)\n\nThe sender asks for gift cards."
		if got := r.Summary(); got != expected {
			t.Errorf("Summary() = %q, expected %q", got, expected)
		}
	})

	t.Run("missing explanation leaves an empty body", func(t *testing.T) {
		t.Parallel()

		r := &AnalysisResult{RiskLevel: RiskSafe, Confidence: 10}
		if got := r.Summary(); !strings.HasSuffix(got, "(10% confidence)\n\n") {
			t.Errorf("unexpected summary %q", got)
		}
	})

	t.Run("unknown risk level uses suspicious label", func(t *testing.T) {
		t.Parallel()

		r := &AnalysisResult{RiskLevel: "whatever", Confidence: 50}
		if !strings.HasPrefix(r.Summary(), "Scam Check Result: Suspicious") {
			t.Errorf("unexpected summary %q", r.Summary())
		}
	})
}

// TestAnalysisResultHelpers tests the presence helpers.
func TestAnalysisResultHelpers(t *testing.T) {
	t.Parallel()

	empty := &AnalysisResult{}
	if empty.HasRedFlags() {
		t.Error("expected no red flags")
	}
	if empty.HasRecommendations() {
		t.Error("expected no recommendations")
	}
	if empty.FormattedScamType() != "" {
		t.Error("expected empty scam type")
	}

	full := &AnalysisResult{
		ScamType:        "phishing_email",
		RedFlags:        []RedFlag{{Description: "Spoofed sender"}},
		Recommendations: []string{"Delete the message"},
	}
	if !full.HasRedFlags() {
		t.Error("expected red flags")
	}
	if !full.HasRecommendations() {
		t.Error("expected recommendations")
	}
	if full.FormattedScamType() != "Phishing Email" {
		t.Errorf("FormattedScamType() = %q", full.FormattedScamType())
	}
}

// TestRedFlagHasEvidence tests evidence detection.
func TestRedFlagHasEvidence(t *testing.T) {
	t.Parallel()

	if (RedFlag{Description: "x"}).HasEvidence() {
		t.Error("expected no evidence")
	}
	if (RedFlag{Description: "x", Evidence: "  "}).HasEvidence() {
		t.Error("expected whitespace evidence to count as absent")
	}
	if !(RedFlag{Description: "x", Evidence: "act now"}).HasEvidence() {
		t.Error("expected evidence")
	}
}
