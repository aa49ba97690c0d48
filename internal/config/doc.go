// Package config holds the scamcheck configuration.
//
// Values are layered in this order, later layers winning:
//  1. defaults from NewConfig
//  2. the YAML configuration file (.scamcheck in the current directory, the
//     home directory, or config.yaml in the XDG config directory)
//  3. environment variables (GEMINI_API_KEY, GEMINI_BASE_URL and their
//     SCAMCHECK_ prefixed overrides)
//  4. command line flags
//
// A missing API key is not a validation error. The browser UI starts anyway
// and shows a warning banner; checks then fail fast without contacting the
// classifier.
package config
