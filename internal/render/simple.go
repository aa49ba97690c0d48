package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/scamcheck/internal/model"
)

// ruleWidth is the width of the horizontal rules in terminal output.
const ruleWidth = 60

// SimpleWriter outputs a plain text result for the terminal.
type SimpleWriter struct {
	baseWriter

	// verbose adds the check metadata block.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose adds check ID, model and timestamp to the output.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the result in human-readable format.
func (w *SimpleWriter) Write(result *model.AnalysisResult) (int, error) {
	v := NewView(result)
	if v == nil {
		return 0, nil
	}

	var sb strings.Builder
	w.writeHeader(&sb, v)
	w.writeExplanation(&sb, v)
	w.writeRedFlags(&sb, v)
	w.writeRecommendations(&sb, v)
	w.writeFooter(&sb, v)

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, v *View) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "%s %s  (%s)\n", iconGlyph(v.Treatment.Icon), strings.ToUpper(v.Treatment.Label), v.ConfidenceText)
	sb.WriteString(v.Treatment.Description)
	sb.WriteString("\n")
	if v.ScamType != "" {
		fmt.Fprintf(sb, "%s %s\n", ScamTypeLabel, v.ScamType)
	}
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeExplanation(sb *strings.Builder, v *View) {
	if v.Explanation == "" {
		return
	}
	sb.WriteString(v.Explanation)
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeRedFlags(sb *strings.Builder, v *View) {
	if !v.HasRedFlags() {
		return
	}
	sb.WriteString(v.RedFlagsHeader)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", len(v.RedFlagsHeader)))
	sb.WriteString("\n")
	for _, flag := range v.RedFlags {
		fmt.Fprintf(sb, "  ! %s\n", flag.Description)
		if flag.HasEvidence() {
			fmt.Fprintf(sb, "    \"%s\"\n", flag.Evidence)
		}
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeRecommendations(sb *strings.Builder, v *View) {
	if !v.HasRecommendations() {
		return
	}
	sb.WriteString(RecommendationsHeader)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", len(RecommendationsHeader)))
	sb.WriteString("\n")
	for _, line := range v.NumberedRecommendations {
		fmt.Fprintf(sb, "  %s\n", line)
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeFooter(sb *strings.Builder, v *View) {
	if w.verbose {
		if v.CheckID != "" {
			fmt.Fprintf(sb, "Check ID: %s\n", v.CheckID)
		}
		if v.Model != "" {
			fmt.Fprintf(sb, "Model:    %s\n", v.Model)
		}
		if !v.AnalyzedAt.IsZero() {
			fmt.Fprintf(sb, "Checked:  %s\n", v.AnalyzedAt.Format("2006-01-02 15:04:05 MST"))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(v.Disclaimer)
	sb.WriteString("\n")
}

// iconGlyph maps a treatment icon onto a terminal-safe marker.
func iconGlyph(icon model.Icon) string {
	switch icon {
	case model.IconShield:
		return "[OK]"
	case model.IconShieldAlert:
		return "[!!]"
	case model.IconShieldX:
		return "[XX]"
	default:
		return "[!]"
	}
}
