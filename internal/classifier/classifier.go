package classifier

import (
	"context"

	"github.com/nao1215/scamcheck/internal/model"
)

// Request is one classification request.
type Request struct {
	// Modality selects the prompt.
	Modality model.Modality

	// Content is the text to classify, or the URL for URL checks.
	Content string

	// Image is the raw image for image checks.
	Image []byte

	// ImageMIME is the sniffed MIME type of Image.
	ImageMIME string

	// Hints are extra context lines gathered during preprocessing, such as
	// EXIF fields or a fetched page snapshot.
	Hints []string
}

// Reply is the raw classifier answer.
type Reply struct {
	// Text is the model output, expected to be JSON.
	Text string

	// Model is the model that produced Text.
	Model string
}

// Classifier sends one request to the external classifier.
type Classifier interface {
	Classify(ctx context.Context, req *Request) (*Reply, error)
}

// Func adapts a function to Classifier.
type Func func(ctx context.Context, req *Request) (*Reply, error)

// Classify calls f.
func (f Func) Classify(ctx context.Context, req *Request) (*Reply, error) {
	return f(ctx, req)
}

// Configurer is implemented by classifiers that need credentials.
type Configurer interface {
	Configured() bool
}

// Ready reports whether c can send requests. A nil classifier is not
// ready; one without a Configured method always is.
func Ready(c Classifier) bool {
	if c == nil {
		return false
	}
	if cc, ok := c.(Configurer); ok {
		return cc.Configured()
	}
	return true
}
