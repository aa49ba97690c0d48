package render

import (
	"io"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/scamcheck/internal/model"
)

// MarkdownWriter outputs a result as GitHub-flavored Markdown, suitable
// for pasting into an issue or a report to a bank or platform.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the result in Markdown format.
func (w *MarkdownWriter) Write(result *model.AnalysisResult) (int, error) {
	v := NewView(result)
	if v == nil {
		return 0, nil
	}

	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, v)
	w.writeAlert(md, v)
	w.writeConfidenceChart(md, v)
	w.writeExplanation(md, v)
	w.writeRedFlags(md, v)
	w.writeRecommendations(md, v)
	w.writeFooter(md, v)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, v *View) {
	md.H1("Scam Check Result")
	md.PlainText("")

	rows := [][]string{
		{"Risk Level", colorEmoji(v.Treatment.Color) + " " + v.Treatment.Label},
		{"Confidence", v.ConfidenceText},
	}
	if v.ScamType != "" {
		rows = append(rows, []string{"Scam Type", v.ScamType})
	}
	if v.Modality != "" {
		rows = append(rows, []string{"Input", v.Modality.Label()})
	}
	if v.Model != "" {
		rows = append(rows, []string{"Model", "`" + v.Model + "`"})
	}
	if !v.AnalyzedAt.IsZero() {
		rows = append(rows, []string{"Checked", v.AnalyzedAt.Format("2006-01-02 15:04:05 MST")})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeAlert picks the GFM alert kind from the risk color.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, v *View) {
	switch v.Treatment.Color {
	case model.ColorRed:
		md.Cautionf("%s: %s", v.Treatment.Label, v.Treatment.Description)
	case model.ColorOrange:
		md.Warningf("%s: %s", v.Treatment.Label, v.Treatment.Description)
	case model.ColorGreen:
		md.Tip(v.Treatment.Label + ": " + v.Treatment.Description)
	default:
		md.Importantf("%s: %s", v.Treatment.Label, v.Treatment.Description)
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeConfidenceChart(md *markdown.Markdown, v *View) {
	confidence := min(max(v.Confidence, 0), 100)

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Classifier Confidence"),
		piechart.WithShowData(true),
	)
	if confidence > 0 {
		chart.LabelAndIntValue("Confident", uint64(confidence))
	}
	if confidence < 100 {
		chart.LabelAndIntValue("Uncertain", uint64(100-confidence))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeExplanation(md *markdown.Markdown, v *View) {
	if v.Explanation == "" {
		return
	}
	md.H2("Explanation")
	md.PlainText("")
	md.PlainText(v.Explanation)
	md.PlainText("")
}

func (w *MarkdownWriter) writeRedFlags(md *markdown.Markdown, v *View) {
	if !v.HasRedFlags() {
		return
	}
	md.H2(v.RedFlagsHeader)
	md.PlainText("")
	for _, flag := range v.RedFlags {
		md.PlainText("- " + flag.Description)
		if flag.HasEvidence() {
			md.PlainText("  > \"" + flag.Evidence + "\"")
		}
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeRecommendations(md *markdown.Markdown, v *View) {
	if !v.HasRecommendations() {
		return
	}
	md.H2(RecommendationsHeader)
	md.PlainText("")
	for _, line := range v.NumberedRecommendations {
		md.PlainText(line)
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown, v *View) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*%s*", v.Disclaimer)
}

func colorEmoji(c model.Color) string {
	switch c {
	case model.ColorGreen:
		return "🟢"
	case model.ColorOrange:
		return "🟠"
	case model.ColorRed:
		return "🔴"
	default:
		return "🟡"
	}
}
