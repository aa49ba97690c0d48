package model

import "testing"

// TestParseRiskLevel tests that known values pass through and everything else
// falls back to suspicious.
func TestParseRiskLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected RiskLevel
	}{
		{"safe", RiskSafe},
		{"suspicious", RiskSuspicious},
		{"likely_scam", RiskLikelyScam},
		{"confirmed_scam", RiskConfirmedScam},
		{"", RiskSuspicious},
		{"SAFE", RiskSuspicious},
		{"critical", RiskSuspicious},
		{"unknown", RiskSuspicious},
	}

	for _, tc := range testCases {
		t.Run("input "+tc.input, func(t *testing.T) {
			t.Parallel()
			if got := ParseRiskLevel(tc.input); got != tc.expected {
				t.Errorf("ParseRiskLevel(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

// TestRiskLevelIsKnown tests the IsKnown method.
func TestRiskLevelIsKnown(t *testing.T) {
	t.Parallel()

	for _, level := range RiskLevels {
		if !level.IsKnown() {
			t.Errorf("expected %q to be known", level)
		}
	}
	if RiskLevel("").IsKnown() {
		t.Error("expected empty level to be unknown")
	}
	if RiskLevel("high").IsKnown() {
		t.Error("expected \"high\" to be unknown")
	}
}

// TestTreatmentFor tests the risk level to treatment mapping.
func TestTreatmentFor(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		level       RiskLevel
		label       string
		description string
		color       Color
		icon        Icon
	}{
		{RiskSafe, "Safe", "No scam indicators detected", ColorGreen, IconShield},
		{RiskSuspicious, "Suspicious", "Some concerning elements found", ColorYellow, IconAlertTriangle},
		{RiskLikelyScam, "Likely Scam", "Multiple scam indicators detected", ColorOrange, IconShieldAlert},
		{RiskConfirmedScam, "Scam Detected", "Matches known scam patterns", ColorRed, IconShieldX},
	}

	for _, tc := range testCases {
		t.Run(string(tc.level), func(t *testing.T) {
			t.Parallel()

			tr := TreatmentFor(tc.level)
			if tr.Level != tc.level {
				t.Errorf("Level = %q, expected %q", tr.Level, tc.level)
			}
			if tr.Label != tc.label {
				t.Errorf("Label = %q, expected %q", tr.Label, tc.label)
			}
			if tr.Description != tc.description {
				t.Errorf("Description = %q, expected %q", tr.Description, tc.description)
			}
			if tr.Color != tc.color {
				t.Errorf("Color = %q, expected %q", tr.Color, tc.color)
			}
			if tr.Icon != tc.icon {
				t.Errorf("Icon = %q, expected %q", tr.Icon, tc.icon)
			}
		})
	}

	t.Run("unknown levels use the suspicious treatment", func(t *testing.T) {
		t.Parallel()

		suspicious := TreatmentFor(RiskSuspicious)
		for _, raw := range []RiskLevel{"", "bogus", "Safe", "confirmed"} {
			if got := TreatmentFor(raw); got != suspicious {
				t.Errorf("TreatmentFor(%q) = %+v, expected suspicious treatment", raw, got)
			}
		}
	})

	t.Run("unknown levels never resolve to safe", func(t *testing.T) {
		t.Parallel()

		if TreatmentFor("not_a_level").Color == ColorGreen {
			t.Error("unknown level must not use the safe color")
		}
	})
}
