package render

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/nao1215/scamcheck/internal/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// resultTemplates is used by HTMLWriter.
var resultTemplates = template.Must(ParseTemplates())

// ParseTemplates returns a fresh template set holding the "result"
// fragment. Callers may parse their own templates into it and call
// "result" with an HTMLView.
func ParseTemplates() (*template.Template, error) {
	return template.New("render").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.tmpl")
}

// FuncMap returns the template helpers used by the result fragment.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"iconGlyph":             htmlIconGlyph,
		"scamTypeLabel":         func() string { return ScamTypeLabel },
		"recommendationsHeader": func() string { return RecommendationsHeader },
		"copyLabel":             func() string { return CopyLabel },
		"checkAnotherLabel":     func() string { return CheckAnotherLabel },
	}
}

// HTMLView is the data passed to the "result" template.
type HTMLView struct {
	*View

	// Actions shows the copy and check-another buttons.
	Actions bool
}

// HTMLWriter outputs the result as an HTML fragment.
type HTMLWriter struct {
	baseWriter
	actions bool
}

// HTMLWriterOption configures an HTMLWriter.
type HTMLWriterOption func(*HTMLWriter)

// WithActions renders the copy and check-another buttons.
func WithActions(actions bool) HTMLWriterOption {
	return func(w *HTMLWriter) {
		w.actions = actions
	}
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer.
func NewHTMLWriter(output io.Writer, opts ...HTMLWriterOption) *HTMLWriter {
	w := &HTMLWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the result fragment. The fragment is rendered fully
// before anything is written.
func (w *HTMLWriter) Write(result *model.AnalysisResult) (int, error) {
	v := NewView(result)
	if v == nil {
		return 0, nil
	}
	var buf bytes.Buffer
	if err := resultTemplates.ExecuteTemplate(&buf, "result", HTMLView{View: v, Actions: w.actions}); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}

// HTML renders the result fragment to a string. A nil result yields "".
func HTML(result *model.AnalysisResult, actions bool) (template.HTML, error) {
	var buf bytes.Buffer
	if _, err := NewHTMLWriter(&buf, WithActions(actions)).Write(result); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil //nolint:gosec // produced by html/template
}

func htmlIconGlyph(icon model.Icon) string {
	switch icon {
	case model.IconShield:
		return "✔"
	case model.IconShieldAlert:
		return "⚠"
	case model.IconShieldX:
		return "✖"
	default:
		return "!"
	}
}
