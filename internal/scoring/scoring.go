// Package scoring holds the pure aggregation functions that turn rule
// outcomes into compliance percentages and severity-weighted risk
// scores. Two frameworks with identical pass/fail counts can carry
// different risk scores when failures cluster on high-severity rules;
// that property is the point of the weighted formula.
package scoring

import (
	"math"

	"github.com/seclens/seclens/pkg/types"
)

// roundPercent applies round-half-up to a percentage ratio
func roundPercent(numerator, denominator float64) int {
	if denominator == 0 {
		return 0
	}
	return int(math.Round(numerator / denominator * 100))
}

// CompliancePercent computes the unweighted share of passed rules over
// non-skipped rules, 0 when the denominator is 0.
func CompliancePercent(passed, total, skipped int) int {
	return roundPercent(float64(passed), float64(total-skipped))
}

// OverallRisk computes the unweighted share of failed rules over
// non-skipped rules, 0 when the denominator is 0. The overall score is
// deliberately unweighted while per-framework risk is severity-weighted.
func OverallRisk(failed, total, skipped int) int {
	return roundPercent(float64(failed), float64(total-skipped))
}

// RiskScore computes the severity-weighted risk for a set of outcomes:
// the weight of failed outcomes (FAIL and ERROR) over the weight of all
// non-skipped outcomes, as a rounded percentage.
func RiskScore(outcomes []types.RuleOutcome) int {
	var failedWeight, totalWeight int
	for _, o := range outcomes {
		if o.Status == types.StatusSkip {
			continue
		}
		w := o.Severity.Weight()
		totalWeight += w
		if o.Status.CountsAsFailed() {
			failedWeight += w
		}
	}
	return roundPercent(float64(failedWeight), float64(totalWeight))
}

// RiskLevel classifies a 0-100 risk score into a coarse band
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"
)

// ClassifyRisk maps a risk score to its level: High at 70 and above,
// Medium at 40 and above, Low below.
func ClassifyRisk(score int) RiskLevel {
	switch {
	case score >= 70:
		return RiskLevelHigh
	case score >= 40:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}
