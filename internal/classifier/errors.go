package classifier

import "errors"

var (
	// ErrNotConfigured is returned before any network activity when no API
	// key is available.
	ErrNotConfigured = errors.New("classifier not configured: set GEMINI_API_KEY")

	// ErrNilRequest is returned when Classify is called without a request.
	ErrNilRequest = errors.New("classifier request is nil")

	// ErrRequestFailed wraps transport failures and non-2xx responses.
	ErrRequestFailed = errors.New("classifier request failed")

	// ErrTimeout is returned when the request exceeds its deadline.
	ErrTimeout = errors.New("classifier request timed out")

	// ErrEmptyResponse is returned when the classifier answers with no text.
	ErrEmptyResponse = errors.New("classifier returned an empty response")

	// ErrMalformedResponse is returned when the reply is not the expected JSON.
	ErrMalformedResponse = errors.New("classifier returned a malformed response")

	// ErrClassifierReported is returned when the reply carries an "error" field.
	ErrClassifierReported = errors.New("classifier reported an error")
)
