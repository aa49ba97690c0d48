package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidTimeout is returned when the classifier timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrNoModel is returned when the model name is empty.
	ErrNoModel = errors.New("no model specified")

	// ErrInvalidMaxTextLength is returned when the text limit is not positive.
	ErrInvalidMaxTextLength = errors.New("invalid max text length: must be positive")

	// ErrInvalidMaxImageSize is returned when the image limit is not positive.
	ErrInvalidMaxImageSize = errors.New("invalid max image size: must be positive")

	// ErrInvalidMaxBodySize is returned when the fetch body limit is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and --markdown are set.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidBaseURL is returned when the base URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("invalid base URL: must be an absolute http or https URL")

	// ErrInvalidProxyAddress is returned when the proxy is not "host:port".
	ErrInvalidProxyAddress = errors.New("invalid proxy address: must be host:port")

	// ErrInvalidListenAddr is returned when the listen address is not "host:port".
	ErrInvalidListenAddr = errors.New("invalid listen address: must be host:port")
)
