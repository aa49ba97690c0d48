// Package render presents an AnalysisResult.
//
// NewView flattens a result into presentation-neutral fields (risk
// treatment, confidence line, formatted scam type, red flag header,
// numbered recommendations, disclaimer). The writers turn a View into
// terminal text, GitHub-flavored Markdown, JSON or an HTML fragment for
// the browser UI. A nil result renders nothing.
//
// Panel adds the two actions a displayed result offers: copying its
// summary to the clipboard and starting another check.
package render
