package stats

import "gonum.org/v1/gonum/stat/distuv"

// Confidence is the level, in percent, of the interval reported around the
// mean of a summary.
const Confidence = 99.0

// ZVal returns the two-tailed z-value for a confidence level given in
// percent, e.g. 1.96 for 95.
func ZVal(confidence float64) float64 {
	return distuv.UnitNormal.Quantile((1 + confidence/100) / 2)
}
