// Package clipboard writes result summaries to the system clipboard.
package clipboard

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/nao1215/scamcheck/internal/model"
)

// ErrUnsupported is returned when no clipboard utility is available,
// for example on a headless Linux host without xclip, xsel or wl-copy.
var ErrUnsupported = errors.New("system clipboard is not available")

// Clipboard accepts one plain-text write.
type Clipboard interface {
	WriteAll(text string) error
}

// System is the operating system clipboard.
type System struct{}

// NewSystem returns the system clipboard.
func NewSystem() *System {
	return &System{}
}

// WriteAll replaces the clipboard contents with text.
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// Memory is an in-process clipboard for tests and headless servers.
type Memory struct {
	mu   sync.Mutex
	text string
}

// WriteAll stores text.
func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// Text returns the last stored text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// CopySummary writes the result summary to cb. Failures are logged and
// otherwise ignored; the copy action has no error state.
func CopySummary(logger *slog.Logger, cb Clipboard, result *model.AnalysisResult) {
	if result == nil || cb == nil {
		return
	}
	if err := cb.WriteAll(result.Summary()); err != nil {
		if logger != nil {
			logger.Warn("failed to copy result to clipboard", "error", err)
		}
		return
	}
	if logger != nil {
		logger.Debug("result copied to clipboard", "check_id", result.CheckID)
	}
}
