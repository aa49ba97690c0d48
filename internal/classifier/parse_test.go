package classifier

import (
	"errors"
	"testing"

	"github.com/nao1215/scamcheck/internal/model"
)

// TestParseResult tests conversion of classifier replies.
func TestParseResult(t *testing.T) {
	t.Parallel()

	t.Run("full reply", func(t *testing.T) {
		t.Parallel()

		raw := `{
			"risk_level": "confirmed_scam",
			"confidence": 97,
			"scam_type": "tech_support_scam",
			"explanation": "Classic support scam.",
			"red_flags": [{"description": "Urgency pressure", "evidence": "act now or lose access"}],
			"recommendations": ["Do not call the number provided", "Report to your bank"]
		}`

		got, err := ParseResult(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.RiskLevel != model.RiskConfirmedScam {
			t.Errorf("RiskLevel = %q", got.RiskLevel)
		}
		if got.Confidence != 97 {
			t.Errorf("Confidence = %d", got.Confidence)
		}
		if got.ScamType != "tech_support_scam" {
			t.Errorf("ScamType = %q", got.ScamType)
		}
		if len(got.RedFlags) != 1 || got.RedFlags[0].Evidence != "act now or lose access" {
			t.Errorf("RedFlags = %+v", got.RedFlags)
		}
		if len(got.Recommendations) != 2 || got.Recommendations[0] != "Do not call the number provided" {
			t.Errorf("Recommendations = %+v", got.Recommendations)
		}
	})

	t.Run("code fence is stripped", func(t *testing.T) {
		t.Parallel()

		raw := "```json\n{\"risk_level\":\"safe\",\"confidence\":12,\"explanation\":\"ok\"}\n```"
		got, err := ParseResult(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.RiskLevel != model.RiskSafe {
			t.Errorf("RiskLevel = %q", got.RiskLevel)
		}
	})

	t.Run("confidence is not clamped", func(t *testing.T) {
		t.Parallel()

		tests := map[string]int{
			`{"risk_level":"safe","confidence":140}`:   140,
			`{"risk_level":"safe","confidence":-3}`:    -3,
			`{"risk_level":"safe","confidence":"55%"}`: 55,
		}
		for raw, want := range tests {
			got, err := ParseResult(raw)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", raw, err)
			}
			if got.Confidence != want {
				t.Errorf("%s: Confidence = %d, want %d", raw, got.Confidence, want)
			}
		}
	})

	t.Run("bare fence without language", func(t *testing.T) {
		t.Parallel()

		raw := "```\n{\"risk_level\":\"likely_scam\",\"confidence\":70}\n```"
		got, err := ParseResult(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.RiskLevel != model.RiskLikelyScam {
			t.Errorf("RiskLevel = %q", got.RiskLevel)
		}
	})

	t.Run("unknown risk level becomes suspicious", func(t *testing.T) {
		t.Parallel()

		got, err := ParseResult(`{"risk_level":"critical","confidence":50}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.RiskLevel != model.RiskSuspicious {
			t.Errorf("RiskLevel = %q, expected suspicious", got.RiskLevel)
		}
	})

	t.Run("missing risk level becomes suspicious", func(t *testing.T) {
		t.Parallel()

		got, err := ParseResult(`{"confidence":40,"explanation":"unclear"}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.RiskLevel != model.RiskSuspicious {
			t.Errorf("RiskLevel = %q, expected suspicious", got.RiskLevel)
		}
	})

	t.Run("off-format risk levels become suspicious", func(t *testing.T) {
		t.Parallel()

		for _, level := range []string{"Safe", "SAFE", " safe", "Likely Scam", "likely-scam", "Confirmed Scam"} {
			got, err := ParseResult(`{"risk_level":"` + level + `","confidence":90}`)
			if err != nil {
				t.Fatalf("%q: unexpected error: %v", level, err)
			}
			if got.RiskLevel != model.RiskSuspicious {
				t.Errorf("%q: RiskLevel = %q, expected suspicious", level, got.RiskLevel)
			}
		}
	})

	t.Run("confidence forms", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			raw      string
			expected int
		}{
			{`{"risk_level":"safe","confidence":85}`, 85},
			{`{"risk_level":"safe","confidence":85.6}`, 86},
			{`{"risk_level":"safe","confidence":"42"}`, 42},
			{`{"risk_level":"safe","confidence":"42%"}`, 42},
			{`{"risk_level":"safe","confidence":null}`, 0},
			{`{"risk_level":"safe"}`, 0},
		}
		for _, tt := range tests {
			got, err := ParseResult(tt.raw)
			if err != nil {
				t.Errorf("%s: unexpected error: %v", tt.raw, err)
				continue
			}
			if got.Confidence != tt.expected {
				t.Errorf("%s: Confidence = %d, expected %d", tt.raw, got.Confidence, tt.expected)
			}
		}
	})

	t.Run("red flags and recommendations are kept as given", func(t *testing.T) {
		t.Parallel()

		raw := `{"risk_level":"suspicious","confidence":60,
			"red_flags":["Unknown sender", {"description":"  "}, {"description":"Link mismatch","evidence":" bit.ly/x "}],
			"recommendations":["Do X", "  ", "Do Y"]}`
		got, err := ParseResult(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got.RedFlags) != 3 {
			t.Fatalf("expected 3 red flags, got %+v", got.RedFlags)
		}
		if got.RedFlags[0].Description != "Unknown sender" || got.RedFlags[0].HasEvidence() {
			t.Errorf("unexpected first flag %+v", got.RedFlags[0])
		}
		if got.RedFlags[1].Description != "  " {
			t.Errorf("unexpected second flag %+v", got.RedFlags[1])
		}
		if got.RedFlags[2].Evidence != " bit.ly/x " {
			t.Errorf("unexpected evidence %q", got.RedFlags[2].Evidence)
		}
		want := []string{"Do X", "  ", "Do Y"}
		if len(got.Recommendations) != len(want) {
			t.Fatalf("Recommendations = %+v", got.Recommendations)
		}
		for i := range want {
			if got.Recommendations[i] != want[i] {
				t.Errorf("Recommendations[%d] = %q, want %q", i, got.Recommendations[i], want[i])
			}
		}
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name    string
			raw     string
			wantErr error
		}{
			{"empty", "", ErrEmptyResponse},
			{"whitespace", "  \n ", ErrEmptyResponse},
			{"empty fence", "```json\n```", ErrEmptyResponse},
			{"not json", "This looks like a scam.", ErrMalformedResponse},
			{"array", `[{"risk_level":"safe"}]`, ErrMalformedResponse},
			{"empty object", `{}`, ErrMalformedResponse},
			{"bad confidence", `{"risk_level":"safe","confidence":"high"}`, ErrMalformedResponse},
			{"string error", `{"error":"image could not be read"}`, ErrClassifierReported},
			{"object error", `{"error":{"message":"quota"}}`, ErrClassifierReported},
		}
		for _, tt := range tests {
			_, err := ParseResult(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("%s: expected %v, got %v", tt.name, tt.wantErr, err)
			}
		}
	})
}

// TestStripCodeFence tests fence removal.
func TestStripCodeFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}```", `{"a":1}`},
		{"```json{\"a\":1}```", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := stripCodeFence(tt.input); got != tt.expected {
			t.Errorf("stripCodeFence(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
