package render

import (
	"log/slog"

	"github.com/nao1215/scamcheck/internal/clipboard"
	"github.com/nao1215/scamcheck/internal/log"
	"github.com/nao1215/scamcheck/internal/model"
)

// Panel is a displayed result with its two actions.
type Panel struct {
	view      *View
	reset     func()
	clipboard clipboard.Clipboard
	logger    *slog.Logger
}

// PanelOption configures a Panel.
type PanelOption func(*Panel)

// WithClipboard sets the clipboard used by Copy.
func WithClipboard(cb clipboard.Clipboard) PanelOption {
	return func(p *Panel) {
		p.clipboard = cb
	}
}

// WithLogger sets the logger used to report copy failures.
func WithLogger(logger *slog.Logger) PanelOption {
	return func(p *Panel) {
		p.logger = logger
	}
}

// NewPanel creates the panel for result. reset is invoked by CheckAnother.
// The system clipboard is used unless WithClipboard says otherwise.
func NewPanel(result *model.AnalysisResult, reset func(), opts ...PanelOption) *Panel {
	p := &Panel{
		view:  NewView(result),
		reset: reset,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.clipboard == nil {
		p.clipboard = clipboard.NewSystem()
	}
	if p.logger == nil {
		p.logger = log.Discard()
	}
	return p
}

// View returns the panel's view, nil when there is no result.
func (p *Panel) View() *View {
	return p.view
}

// Copy writes the result summary to the clipboard. It never fails.
func (p *Panel) Copy() {
	if p.view == nil {
		return
	}
	clipboard.CopySummary(p.logger, p.clipboard, p.view.Result())
}

// CheckAnother invokes the reset callback and nothing else.
func (p *Panel) CheckAnother() {
	if p.reset != nil {
		p.reset()
	}
}
