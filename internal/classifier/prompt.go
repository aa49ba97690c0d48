package classifier

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/nao1215/scamcheck/internal/model"
)

// systemInstruction frames every request.
const systemInstruction = `You are a fraud analyst helping ordinary people decide whether something they received is a scam.
Judge only the content provided. Be calibrated: legitimate messages exist, and urgency alone is not proof of fraud.
Answer with a single JSON object and nothing else.`

// outputContract describes the JSON shape. It is repeated in the prompt even
// though the response schema is also sent, because some gateways drop the schema.
const outputContract = `Respond with JSON in exactly this shape:
{
  "risk_level": "safe" | "suspicious" | "likely_scam" | "confirmed_scam",
  "confidence": <integer 0-100>,
  "scam_type": "<lowercase_underscore_category, e.g. phishing_email, romance_scam, tech_support_scam; empty if safe>",
  "explanation": "<two or three plain sentences for a non-expert>",
  "red_flags": [{"description": "<indicator>", "evidence": "<exact excerpt from the input, optional>"}],
  "recommendations": ["<concrete next step>", "..."]
}
Evidence must be quoted literally from the input. Order recommendations by importance.`

// BuildPrompt returns the user prompt text for req.
func BuildPrompt(req *Request) string {
	var b strings.Builder

	switch req.Modality {
	case model.ModalityImage:
		b.WriteString("Analyze the attached image (a screenshot or photo) for signs of a scam. ")
		b.WriteString("Read any visible text, sender names, logos, links and payment requests.\n")
	case model.ModalityURL:
		b.WriteString("Analyze this URL for signs of a scam or phishing site. ")
		b.WriteString("Consider the domain (typosquatting, unusual TLDs, brand impersonation), the path and any page details provided.\n\n")
		fmt.Fprintf(&b, "URL: %s\n", req.Content)
	default:
		b.WriteString("Analyze this message (email, SMS or chat) for signs of a scam.\n\n")
		b.WriteString("=== MESSAGE ===\n")
		b.WriteString(req.Content)
		b.WriteString("\n=== END MESSAGE ===\n")
	}

	if len(req.Hints) > 0 {
		b.WriteString("\nAdditional context collected locally:\n")
		for _, hint := range req.Hints {
			fmt.Fprintf(&b, "- %s\n", hint)
		}
	}

	b.WriteString("\n")
	b.WriteString(outputContract)
	return b.String()
}

// BuildContents returns the request contents for req: the prompt text and,
// for image checks, the inline image.
func BuildContents(req *Request) []*genai.Content {
	parts := []*genai.Part{genai.NewPartFromText(BuildPrompt(req))}
	if req.Modality == model.ModalityImage && len(req.Image) > 0 {
		parts = append(parts, genai.NewPartFromBytes(req.Image, req.ImageMIME))
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}

// ResponseSchema mirrors model.AnalysisResult.
func ResponseSchema() *genai.Schema {
	levels := make([]string, 0, len(model.RiskLevels))
	for _, level := range model.RiskLevels {
		levels = append(levels, string(level))
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"risk_level": {
				Type: genai.TypeString,
				Enum: levels,
			},
			"confidence": {
				Type:    genai.TypeInteger,
				Minimum: genai.Ptr[float64](0),
				Maximum: genai.Ptr[float64](100),
			},
			"scam_type":   {Type: genai.TypeString},
			"explanation": {Type: genai.TypeString},
			"red_flags": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"description": {Type: genai.TypeString},
						"evidence":    {Type: genai.TypeString},
					},
					Required: []string{"description"},
				},
			},
			"recommendations": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"risk_level", "confidence", "explanation"},
	}
}
