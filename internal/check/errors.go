package check

import (
	"errors"
	"strings"

	"github.com/nao1215/scamcheck/internal/classifier"
)

var (
	// ErrEmptyInput is returned when the submission has nothing to check.
	ErrEmptyInput = errors.New("nothing to check: input is empty")

	// ErrBusy is returned when a check is submitted while its previous
	// request is still outstanding.
	ErrBusy = errors.New("a check is already in progress")

	// ErrTextTooLong is returned when text exceeds the configured limit.
	ErrTextTooLong = errors.New("text is too long")

	// ErrUnsupportedImage is returned when the upload is not an image.
	ErrUnsupportedImage = errors.New("unsupported file type: please upload an image")

	// ErrImageTooLarge is returned when the image exceeds the configured limit.
	ErrImageTooLarge = errors.New("image is too large")

	// ErrInvalidURL is returned when the URL cannot be checked.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrInvalidOnionAddress is returned for onion hosts with a bad checksum.
	ErrInvalidOnionAddress = errors.New("invalid onion address")
)

// inputErrors are the failures caused by the submission itself. Their
// messages are shown as-is.
var inputErrors = []error{
	ErrEmptyInput,
	ErrTextTooLong,
	ErrUnsupportedImage,
	ErrImageTooLarge,
	ErrInvalidURL,
	ErrInvalidOnionAddress,
}

// Message converts a check failure into the line shown in the error state.
// Transport and parse failures share one wording.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, classifier.ErrNotConfigured) {
		return "API key not configured. Set GEMINI_API_KEY and try again."
	}
	if errors.Is(err, ErrBusy) {
		return "A check is already in progress."
	}
	for _, target := range inputErrors {
		if errors.Is(err, target) {
			return capitalize(err.Error())
		}
	}
	if errors.Is(err, classifier.ErrTimeout) {
		return "Analysis failed: the request timed out. Please try again."
	}
	return "Analysis failed: " + err.Error()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
