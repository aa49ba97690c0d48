// Package classifier talks to the hosted language model that decides whether
// an input looks like a scam.
//
// The model is treated as an opaque classifier: it receives a prompt and the
// input content and answers with a JSON document in the AnalysisResult shape.
// Classifier is the seam used by the check components; GeminiClassifier is the
// production implementation on top of google.golang.org/genai.
//
// ParseResult turns the raw reply into a model.AnalysisResult and classifies
// every failure into one of the package's sentinel errors.
package classifier
