// Package check turns one user submission into one classifier verdict.
//
// There is one Check per input modality. Each check validates its input,
// runs a short preprocessing pipeline that builds a classifier.Request
// (trimming text, sniffing and inspecting images, normalizing URLs and
// optionally fetching a page snapshot), sends the request and parses the
// reply into a model.AnalysisResult.
//
// Wallet addresses and contact emails found in a message or fetched page
// are passed to the classifier as hints. They never decide the verdict.
//
// Every accepted Run delivers exactly one of Callbacks.OnResult or
// Callbacks.OnError. A Run that is rejected up front (empty input, or a
// request already outstanding on the same check) returns an error and
// delivers nothing.
package check
