package model

// RiskLevel is the scam likelihood verdict returned by the classifier.
// The set of values is closed; see ParseRiskLevel for how unknown values
// are handled.
type RiskLevel string

const (
	// RiskSafe means no scam indicators were detected.
	RiskSafe RiskLevel = "safe"

	// RiskSuspicious means some concerning elements were found.
	// This is also the level used for any unknown or missing value,
	// so that malformed classifier output never renders as safe.
	RiskSuspicious RiskLevel = "suspicious"

	// RiskLikelyScam means multiple scam indicators were detected.
	RiskLikelyScam RiskLevel = "likely_scam"

	// RiskConfirmedScam means the content matches known scam patterns.
	RiskConfirmedScam RiskLevel = "confirmed_scam"
)

// RiskLevels lists every known risk level from least to most severe.
var RiskLevels = []RiskLevel{
	RiskSafe,
	RiskSuspicious,
	RiskLikelyScam,
	RiskConfirmedScam,
}

// ParseRiskLevel maps a raw classifier value onto a known RiskLevel.
// Anything that is not one of the four known values resolves to RiskSuspicious.
func ParseRiskLevel(s string) RiskLevel {
	switch RiskLevel(s) {
	case RiskSafe, RiskSuspicious, RiskLikelyScam, RiskConfirmedScam:
		return RiskLevel(s)
	default:
		return RiskSuspicious
	}
}

// IsKnown reports whether r is one of the four defined levels.
func (r RiskLevel) IsKnown() bool {
	return ParseRiskLevel(string(r)) == r
}

// Color identifies the palette shared by badge, background, border and icon.
type Color string

const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
)

// Icon names the glyph shown next to the risk label.
type Icon string

const (
	IconShield        Icon = "shield"
	IconAlertTriangle Icon = "alert-triangle"
	IconShieldAlert   Icon = "shield-alert"
	IconShieldX       Icon = "shield-x"
)

// Treatment is the visual bundle for one risk level.
type Treatment struct {
	Level       RiskLevel
	Label       string
	Description string
	Color       Color
	Icon        Icon
}

// TreatmentFor returns the treatment for the given level.
// The switch is the single source of truth for risk presentation; its
// default arm resolves unknown levels to the suspicious treatment.
func TreatmentFor(level RiskLevel) Treatment {
	switch level {
	case RiskSafe:
		return Treatment{
			Level:       RiskSafe,
			Label:       "Safe",
			Description: "No scam indicators detected",
			Color:       ColorGreen,
			Icon:        IconShield,
		}
	case RiskLikelyScam:
		return Treatment{
			Level:       RiskLikelyScam,
			Label:       "Likely Scam",
			Description: "Multiple scam indicators detected",
			Color:       ColorOrange,
			Icon:        IconShieldAlert,
		}
	case RiskConfirmedScam:
		return Treatment{
			Level:       RiskConfirmedScam,
			Label:       "Scam Detected",
			Description: "Matches known scam patterns",
			Color:       ColorRed,
			Icon:        IconShieldX,
		}
	case RiskSuspicious:
		fallthrough
	default:
		return Treatment{
			Level:       RiskSuspicious,
			Label:       "Suspicious",
			Description: "Some concerning elements found",
			Color:       ColorYellow,
			Icon:        IconAlertTriangle,
		}
	}
}
