package render

import (
	"io"

	"github.com/nao1215/scamcheck/internal/model"
)

// Writer outputs one result in a specific format.
// Writing a nil result writes nothing and returns 0, nil.
type Writer interface {
	Write(result *model.AnalysisResult) (int, error)
}

// MultiWriter writes the same result to several Writers.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the result to every writer and stops on the first error.
func (m *MultiWriter) Write(result *model.AnalysisResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter holds the output destination.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
