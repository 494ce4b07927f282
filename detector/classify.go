package detector

import "deepcheck/common/models"

// Classify buckets a 0-100 confidence into the four-level label. The cuts
// sit at 20, 60 and 90; boundary values land in the upper bracket.
func Classify(confidence float64) models.Classification {
	switch {
	case confidence < 20:
		return models.HighlyAuthentic
	case confidence < 60:
		return models.LikelyAuthentic
	case confidence < 90:
		return models.PossiblyManipulated
	default:
		return models.HighlyManipulated
	}
}

// riskFor maps the verdict to a risk level. Authentic media is always low
// risk; manipulated media gets a coin flip between medium and high, so the
// same verdict can yield either on repeated calls.
func riskFor(r Rand, manipulated bool) models.RiskLevel {
	if !manipulated {
		return models.RiskLow
	}
	if r.Intn(2) == 0 {
		return models.RiskMedium
	}
	return models.RiskHigh
}
