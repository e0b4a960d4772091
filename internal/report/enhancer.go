// Package report derives executive-summary analytics from an
// evaluation result. It consumes only the engine's output contract and
// never reaches into the catalog or rule internals.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/seclens/seclens/internal/scoring"
	"github.com/seclens/seclens/pkg/types"
)

// DefaultTopRisks is how many failed outcomes the top-risks view keeps
const DefaultTopRisks = 5

// TopRisk is one entry in the ranked view of failed outcomes
type TopRisk struct {
	RuleCode  string         `json:"rule_code"`
	RuleTitle string         `json:"rule_title"`
	Framework string         `json:"framework"`
	Severity  types.Severity `json:"severity"`
	Weight    int            `json:"weight"`
	Message   string         `json:"message"`
}

// RemediationItem is one entry in the remediation priority ordering
type RemediationItem struct {
	RuleCode    string         `json:"rule_code"`
	RuleTitle   string         `json:"rule_title"`
	Framework   string         `json:"framework"`
	Severity    types.Severity `json:"severity"`
	Priority    int            `json:"priority"`
	Remediation string         `json:"remediation"`
}

// Summary is the executive-level view of one evaluation
type Summary struct {
	SessionID          string                       `json:"session_id"`
	GeneratedAt        time.Time                    `json:"generated_at"`
	OverallRiskScore   int                          `json:"overall_risk_score"`
	RiskLevel          scoring.RiskLevel            `json:"risk_level"`
	FrameworkRisk      map[string]scoring.RiskLevel `json:"framework_risk"`
	FailuresBySeverity map[types.Severity]int       `json:"failures_by_severity"`
	TopRisks           []TopRisk                    `json:"top_risks"`
	Remediation        []RemediationItem            `json:"remediation_priority"`
	KeyFindings        []string                     `json:"key_findings"`
}

// Enhancer builds executive summaries from evaluation results
type Enhancer struct {
	topN int
}

// NewEnhancer creates an enhancer keeping topN entries in the top-risks
// view; non-positive values fall back to the default.
func NewEnhancer(topN int) *Enhancer {
	if topN <= 0 {
		topN = DefaultTopRisks
	}
	return &Enhancer{topN: topN}
}

// Enhance derives the executive summary for a result
func (e *Enhancer) Enhance(result *types.EvaluationResult) *Summary {
	failed := result.FailedOutcomes()

	summary := &Summary{
		SessionID:          result.SessionID,
		GeneratedAt:        time.Now().UTC(),
		OverallRiskScore:   result.OverallRiskScore,
		RiskLevel:          scoring.ClassifyRisk(result.OverallRiskScore),
		FrameworkRisk:      make(map[string]scoring.RiskLevel, len(result.Frameworks)),
		FailuresBySeverity: bucketBySeverity(failed),
		TopRisks:           topRisks(failed, e.topN),
		Remediation:        remediationPriority(failed),
	}
	for code, fr := range result.Frameworks {
		summary.FrameworkRisk[code] = scoring.ClassifyRisk(fr.RiskScore)
	}
	summary.KeyFindings = keyFindings(result, summary)
	return summary
}

// bucketBySeverity counts failed outcomes per severity level
func bucketBySeverity(failed []types.RuleOutcome) map[types.Severity]int {
	buckets := make(map[types.Severity]int)
	for _, o := range failed {
		buckets[o.Severity]++
	}
	return buckets
}

// topRisks ranks failed outcomes by severity weight descending and
// keeps the first n. The sort is stable so rules of equal weight keep
// their evaluation order.
func topRisks(failed []types.RuleOutcome, n int) []TopRisk {
	ranked := make([]types.RuleOutcome, len(failed))
	copy(ranked, failed)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Severity.Weight() > ranked[j].Severity.Weight()
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	risks := make([]TopRisk, 0, len(ranked))
	for _, o := range ranked {
		risks = append(risks, TopRisk{
			RuleCode:  o.RuleCode,
			RuleTitle: o.RuleTitle,
			Framework: o.Framework,
			Severity:  o.Severity,
			Weight:    o.Severity.Weight(),
			Message:   o.Message,
		})
	}
	return risks
}

// remediationPriority orders failed outcomes by severity weight times
// business impact weight, descending. Both weight tables are the
// severity table, so the priority is effectively weight squared; the
// impact table exists separately so product can diverge later.
func remediationPriority(failed []types.RuleOutcome) []RemediationItem {
	items := make([]RemediationItem, 0, len(failed))
	for _, o := range failed {
		w := o.Severity.Weight()
		items = append(items, RemediationItem{
			RuleCode:    o.RuleCode,
			RuleTitle:   o.RuleTitle,
			Framework:   o.Framework,
			Severity:    o.Severity,
			Priority:    w * businessImpactWeight(o.Severity),
			Remediation: o.Remediation,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Priority > items[j].Priority
	})
	return items
}

// businessImpactWeight mirrors the severity weight table
func businessImpactWeight(s types.Severity) int {
	return s.Weight()
}

// keyFindings produces the headline statements for the summary
func keyFindings(result *types.EvaluationResult, summary *Summary) []string {
	var findings []string
	findings = append(findings, fmt.Sprintf("%d of %d rules failed across %d frameworks",
		result.FailedRules, result.TotalRules, len(result.FrameworksTested)))
	if n := summary.FailuresBySeverity[types.SeverityCritical]; n > 0 {
		findings = append(findings, fmt.Sprintf("%d critical severity failures require immediate attention", n))
	}
	for _, code := range result.FrameworksTested {
		fr := result.Frameworks[code]
		if scoring.ClassifyRisk(fr.RiskScore) == scoring.RiskLevelHigh {
			findings = append(findings, fmt.Sprintf("framework %s is at high risk (score %d)", code, fr.RiskScore))
		}
	}
	return findings
}
