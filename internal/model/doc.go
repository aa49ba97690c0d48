// Package model defines the data shared by every part of scamcheck.
//
// The main types are:
//   - AnalysisResult: the structured verdict produced for one check
//   - RedFlag: a single scam indicator with optional literal evidence
//   - RiskLevel and Treatment: the closed risk enum and its presentation bundle
//   - Modality: the kind of input being checked (text, image, URL)
//
// Check components produce AnalysisResult values, renderers consume them,
// and the orchestrator holds at most one of them at a time. Keeping these
// types in their own package lets check, render and session share them
// without import cycles.
package model
