package types

import (
	"fmt"
	"time"
)

// CheckResult is what a rule predicate returns. Passed=false with a
// message is how a rule reports both genuine failures and checks it
// could not complete for lack of data.
type CheckResult struct {
	Passed   bool                   `json:"passed"`
	Message  string                 `json:"message"`
	Details  map[string]interface{} `json:"details,omitempty"`
	Findings []string               `json:"findings,omitempty"`
	Evidence map[string]interface{} `json:"evidence,omitempty"`
}

// RuleOutcome records the result of evaluating one rule against one
// snapshot. Immutable once produced.
type RuleOutcome struct {
	RuleCode    string                 `json:"rule_code"`
	RuleTitle   string                 `json:"rule_title"`
	Framework   string                 `json:"framework"`
	Status      Status                 `json:"status"`
	Message     string                 `json:"message"`
	Details     map[string]interface{} `json:"details,omitempty"`
	Findings    []string               `json:"findings,omitempty"`
	Evidence    map[string]interface{} `json:"evidence,omitempty"`
	Severity    Severity               `json:"severity"`
	Category    string                 `json:"category"`
	Remediation string                 `json:"remediation,omitempty"`
}

// FrameworkMeta carries the identifying metadata of a compliance framework
type FrameworkMeta struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// FrameworkResult aggregates the outcomes of one framework's rules
type FrameworkResult struct {
	Framework            FrameworkMeta `json:"framework"`
	Total                int           `json:"total_rules"`
	Passed               int           `json:"passed_rules"`
	Failed               int           `json:"failed_rules"`
	Skipped              int           `json:"skipped_rules"`
	CompliancePercentage int           `json:"compliance_percentage"`
	RiskScore            int           `json:"risk_score"`
	Outcomes             []RuleOutcome `json:"outcomes"`
}

// EvaluationResult is the top-level product of one evaluation run,
// persisted downstream as an opaque record keyed by SessionID.
type EvaluationResult struct {
	SessionID        string                     `json:"session_id"`
	Timestamp        time.Time                  `json:"timestamp"`
	Snapshot         SnapshotSummary            `json:"snapshot"`
	FrameworksTested []string                   `json:"frameworks_tested"`
	TotalRules       int                        `json:"total_rules"`
	PassedRules      int                        `json:"passed_rules"`
	FailedRules      int                        `json:"failed_rules"`
	SkippedRules     int                        `json:"skipped_rules"`
	OverallRiskScore int                        `json:"overall_risk_score"`
	Frameworks       map[string]FrameworkResult `json:"frameworks"`
	Outcomes         []RuleOutcome              `json:"outcomes"`
}

// OutcomesByStatus returns all outcomes with the given status, in
// evaluation order.
func (r *EvaluationResult) OutcomesByStatus(status Status) []RuleOutcome {
	var filtered []RuleOutcome
	for _, o := range r.Outcomes {
		if o.Status == status {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

// FailedOutcomes returns all outcomes that count as failed (FAIL and ERROR)
func (r *EvaluationResult) FailedOutcomes() []RuleOutcome {
	var filtered []RuleOutcome
	for _, o := range r.Outcomes {
		if o.Status.CountsAsFailed() {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

// Criteria filters which rules an evaluation run selects. A rule is
// selected only when it satisfies every non-empty filter; an empty or
// nil slice places no constraint on that dimension.
type Criteria struct {
	Frameworks []string `json:"frameworks,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Severities []string `json:"severities,omitempty"`
}

// Validate rejects structurally malformed criteria. Unregistered
// framework codes or unknown categories are not an error (they simply
// select nothing) but a severity outside the known set is a caller bug.
func (c Criteria) Validate() error {
	for _, raw := range c.Severities {
		if _, ok := ParseSeverity(raw); !ok {
			return fmt.Errorf("invalid severity filter %q (want one of low, medium, high, critical)", raw)
		}
	}
	return nil
}
