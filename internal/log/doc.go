// Package log provides the scamcheck logger: a log/slog handler wrapper that
// redacts credentials before records reach the output.
//
// The classifier is authenticated with a Gemini API key, and that key travels
// through configuration, HTTP headers and error messages. SecureHandler masks
// it wherever it shows up:
//   - attributes whose key names a credential (api_key, x-goog-api-key, ...)
//   - string values shaped like a Google API key (AIza...)
//   - bearer and basic authorization values, JWTs and private key blocks
//
// Verbose mode lowers the level to Debug but never disables redaction.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("classifier configured", "model", cfg.Model, "api_key", cfg.APIKey)
//	// api_key=***REDACTED***
package log
