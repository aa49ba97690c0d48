package classifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nao1215/scamcheck/internal/model"
)

// wireResult is the JSON document the classifier is asked to return.
// It is looser than model.AnalysisResult so that small deviations such as a
// fractional confidence or string red flags still parse.
type wireResult struct {
	RiskLevel       string       `json:"risk_level"`
	Confidence      confidence   `json:"confidence"`
	ScamType        string       `json:"scam_type"`
	Explanation     string       `json:"explanation"`
	RedFlags        []wireFlag   `json:"red_flags"`
	Recommendations []string     `json:"recommendations"`
	Error           wireErrorMsg `json:"error"`
}

type wireFlag struct {
	Description string `json:"description"`
	Evidence    string `json:"evidence"`
}

// UnmarshalJSON accepts either an object or a bare string.
func (f *wireFlag) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &f.Description)
	}
	type plain wireFlag
	return json.Unmarshal(data, (*plain)(f))
}

// confidence accepts 85, 85.4, "85" and "85%".
type confidence struct {
	value int
	set   bool
}

func (c *confidence) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSuffix(strings.TrimSpace(s), "%")
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("confidence %q is not a number", raw)
	}
	c.value = int(math.Round(f))
	c.set = true
	return nil
}

// wireErrorMsg accepts "error": "message" and "error": {"message": "..."}.
type wireErrorMsg string

func (e *wireErrorMsg) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*e = wireErrorMsg(s)
	case len(data) > 0 && data[0] == '{':
		var obj struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*e = wireErrorMsg(obj.Message)
		if *e == "" {
			*e = "unspecified error"
		}
	default:
		*e = wireErrorMsg(string(data))
	}
	return nil
}

// ParseResult converts a raw classifier reply into an AnalysisResult.
//
// Markdown code fences around the JSON are removed. Any risk level other
// than the four exact values becomes suspicious. Confidence is only rounded.
// Red flags and recommendations are kept as given, in order.
func ParseResult(raw string) (*model.AnalysisResult, error) {
	body := stripCodeFence(strings.TrimSpace(raw))
	if body == "" {
		return nil, ErrEmptyResponse
	}

	var w wireResult
	if err := json.Unmarshal([]byte(body), &w); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if w.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrClassifierReported, string(w.Error))
	}

	if w.RiskLevel == "" && !w.Confidence.set && w.Explanation == "" {
		return nil, fmt.Errorf("%w: no risk_level, confidence or explanation", ErrMalformedResponse)
	}

	result := &model.AnalysisResult{
		RiskLevel:   model.ParseRiskLevel(w.RiskLevel),
		Confidence:  w.Confidence.value,
		ScamType:    strings.TrimSpace(w.ScamType),
		Explanation: strings.TrimSpace(w.Explanation),
	}

	for _, flag := range w.RedFlags {
		result.RedFlags = append(result.RedFlags, model.RedFlag{
			Description: flag.Description,
			Evidence:    flag.Evidence,
		})
	}
	result.Recommendations = append(result.Recommendations, w.Recommendations...)

	return result, nil
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
