package detector

// band is a half-open [Lo, Hi) interval scores are drawn from.
type band struct {
	Lo, Hi float64
}

func (b band) draw(r Rand) float64 {
	return between(r, b.Lo, b.Hi)
}

// outcomeBands pairs the manipulated and authentic bands for one score.
type outcomeBands struct {
	manipulated band
	authentic   band
}

func (ob outcomeBands) forOutcome(manipulated bool) band {
	if manipulated {
		return ob.manipulated
	}
	return ob.authentic
}

// Canonical score bands, one pair per score for every media type.
// Manipulated media lands mid-range on the headline confidence, authentic
// media lands high. Sub-scores are drawn independently of the headline
// score and of each other.
var (
	confidenceBands = outcomeBands{manipulated: band{35, 65}, authentic: band{85, 99}}
	faceBands       = outcomeBands{manipulated: band{50, 75}, authentic: band{90, 100}}
	lightingBands   = outcomeBands{manipulated: band{40, 70}, authentic: band{85, 100}}
	artifactBands   = outcomeBands{manipulated: band{50, 90}, authentic: band{10, 20}}
)

// Audio sub-scores use their own band table, disjoint from the image/video
// sub-scores.
var (
	pitchBands      = outcomeBands{manipulated: band{45, 70}, authentic: band{88, 98}}
	frequencyBands  = outcomeBands{manipulated: band{55, 85}, authentic: band{5, 15}}
	artificialBands = outcomeBands{manipulated: band{60, 95}, authentic: band{2, 12}}
)

// primaryConfidence draws the headline confidence for the given verdict.
func primaryConfidence(r Rand, manipulated bool) float64 {
	return confidenceBands.forOutcome(manipulated).draw(r)
}

// subScores draws the three sub-scores shared by every media type.
func subScores(r Rand, manipulated bool) (face, lighting, artifacts float64) {
	face = faceBands.forOutcome(manipulated).draw(r)
	lighting = lightingBands.forOutcome(manipulated).draw(r)
	artifacts = artifactBands.forOutcome(manipulated).draw(r)
	return face, lighting, artifacts
}

// audioScores draws the audio-specific sub-scores.
func audioScores(r Rand, manipulated bool) (pitch, frequency, artificial float64) {
	pitch = pitchBands.forOutcome(manipulated).draw(r)
	frequency = frequencyBands.forOutcome(manipulated).draw(r)
	artificial = artificialBands.forOutcome(manipulated).draw(r)
	return pitch, frequency, artificial
}
