package sentiment

import "math"

// Wire labels kept from the original product surface.
const (
	LabelPositive = "positif"
	LabelNegative = "négatif"
)

// Result pairs the chosen label with the model's certainty in it.
// Confidence always lands in [0.5, 1].
type Result struct {
	Sentiment  string
	Confidence float64
}

// Decide thresholds a raw sigmoid score, inclusive on the positive side:
// exactly 0.5 is positive. Pure and deterministic; callers must only pass
// scores already validated to lie in [0, 1].
func Decide(rawScore float64) Result {
	if rawScore >= 0.5 {
		return Result{Sentiment: LabelPositive, Confidence: rawScore}
	}
	return Result{Sentiment: LabelNegative, Confidence: 1 - rawScore}
}

// Round4 rounds to 4 decimal places for presentation. Internal comparisons
// always use full precision.
func Round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
