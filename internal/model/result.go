package model

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RedFlag is one discrete scam indicator found by the classifier.
type RedFlag struct {
	// Description says what the indicator is.
	Description string `json:"description"`

	// Evidence is a literal excerpt of the input supporting the indicator.
	Evidence string `json:"evidence,omitempty"`
}

// HasEvidence reports whether the flag carries a supporting excerpt.
func (f RedFlag) HasEvidence() bool {
	return strings.TrimSpace(f.Evidence) != ""
}

// AnalysisResult is the structured verdict for a single check.
// It is created fresh for each successful classifier call and is never
// merged with a previous result.
type AnalysisResult struct {
	RiskLevel       RiskLevel `json:"risk_level"`
	Confidence      int       `json:"confidence"`
	ScamType        string    `json:"scam_type,omitempty"`
	Explanation     string    `json:"explanation,omitempty"`
	RedFlags        []RedFlag `json:"red_flags,omitempty"`
	Recommendations []string  `json:"recommendations,omitempty"`

	// CheckID identifies the submission that produced this result.
	CheckID string `json:"check_id,omitempty"`

	// Modality is the input kind that was checked.
	Modality Modality `json:"modality,omitempty"`

	// Model is the classifier model that produced the verdict.
	Model string `json:"model,omitempty"`

	// AnalyzedAt is when the classifier reply was parsed.
	AnalyzedAt time.Time `json:"analyzed_at,omitzero"`
}

// Treatment returns the presentation bundle for the result's risk level.
func (r *AnalysisResult) Treatment() Treatment {
	return TreatmentFor(r.RiskLevel)
}

// HasRedFlags reports whether any red flag is present.
func (r *AnalysisResult) HasRedFlags() bool {
	return len(r.RedFlags) > 0
}

// HasRecommendations reports whether any recommendation is present.
func (r *AnalysisResult) HasRecommendations() bool {
	return len(r.Recommendations) > 0
}

// FormattedScamType returns the display form of ScamType, or "" when unset.
func (r *AnalysisResult) FormattedScamType() string {
	return FormatScamType(r.ScamType)
}

// Summary is the plain-text form placed on the clipboard by the copy action.
func (r *AnalysisResult) Summary() string {
	return fmt.Sprintf("Scam Check Result: %s (%d%% confidence)\n\n%s",
		r.Treatment().Label, r.Confidence, r.Explanation)
}

// FormatScamType turns "tech_support_scam" into "Tech Support Scam".
// Segments are split on underscores and only their first letter is changed.
func FormatScamType(scamType string) string {
	if strings.TrimSpace(scamType) == "" {
		return ""
	}

	// A Caser is stateful, so each call gets its own.
	caser := cases.Title(language.English, cases.NoLower)

	segments := strings.Split(scamType, "_")
	for i, seg := range segments {
		segments[i] = caser.String(seg)
	}
	return strings.Join(segments, " ")
}
