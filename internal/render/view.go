package render

import (
	"fmt"
	"strconv"
	"time"

	"github.com/nao1215/scamcheck/internal/model"
)

// Disclaimer closes every rendered result.
const Disclaimer = "This analysis is for guidance only. Always verify through official channels before taking action."

// Section labels shared by every rendering.
const (
	ScamTypeLabel         = "Scam Type:"
	RecommendationsHeader = "Recommended Actions"
)

// Action labels shared by every interactive rendering.
const (
	CopyLabel         = "Copy Result"
	CheckAnotherLabel = "Check Another"
)

// View is the presentation-neutral form of one result.
type View struct {
	Treatment model.Treatment

	// Confidence is the 0-100 score, ConfidenceText its display form.
	Confidence     int
	ConfidenceText string

	// ScamType is the formatted scam type, empty when unset.
	ScamType string

	Explanation string

	// RedFlagsHeader is empty when there are no red flags.
	RedFlagsHeader string
	RedFlags       []model.RedFlag

	// Recommendations keep their input order and wording; NumberedRecommendations
	// prefixes them for display.
	Recommendations         []string
	NumberedRecommendations []string

	Disclaimer string

	// Summary is the clipboard text.
	Summary string

	CheckID    string
	Modality   model.Modality
	Model      string
	AnalyzedAt time.Time

	result *model.AnalysisResult
}

// NewView builds the view for r. It returns nil when r is nil.
func NewView(r *model.AnalysisResult) *View {
	if r == nil {
		return nil
	}

	v := &View{
		Treatment:       r.Treatment(),
		Confidence:      r.Confidence,
		ConfidenceText:  strconv.Itoa(r.Confidence) + "% confidence",
		ScamType:        r.FormattedScamType(),
		Explanation:     r.Explanation,
		RedFlags:        r.RedFlags,
		Recommendations: r.Recommendations,
		Disclaimer:      Disclaimer,
		Summary:         r.Summary(),
		CheckID:         r.CheckID,
		Modality:        r.Modality,
		Model:           r.Model,
		AnalyzedAt:      r.AnalyzedAt,
		result:          r,
	}
	if r.HasRedFlags() {
		v.RedFlagsHeader = fmt.Sprintf("Red Flags Detected (%d)", len(r.RedFlags))
	}
	if r.HasRecommendations() {
		v.NumberedRecommendations = make([]string, len(r.Recommendations))
		for i, rec := range r.Recommendations {
			v.NumberedRecommendations[i] = fmt.Sprintf("%d. %s", i+1, rec)
		}
	}
	return v
}

// HasRedFlags reports whether the red flag section is shown.
func (v *View) HasRedFlags() bool {
	return len(v.RedFlags) > 0
}

// HasRecommendations reports whether the recommendation section is shown.
func (v *View) HasRecommendations() bool {
	return len(v.Recommendations) > 0
}

// Result returns the result the view was built from.
func (v *View) Result() *model.AnalysisResult {
	return v.result
}
