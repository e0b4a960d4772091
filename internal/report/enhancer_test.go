package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seclens/seclens/internal/scoring"
	"github.com/seclens/seclens/pkg/types"
)

func failedOutcome(code string, severity types.Severity) types.RuleOutcome {
	return types.RuleOutcome{
		RuleCode:    code,
		RuleTitle:   code + " title",
		Framework:   "CIS",
		Status:      types.StatusFail,
		Message:     code + " failed",
		Severity:    severity,
		Remediation: "fix " + code,
	}
}

func testResult() *types.EvaluationResult {
	return &types.EvaluationResult{
		SessionID:        "session-1",
		FrameworksTested: []string{"CIS"},
		TotalRules:       6,
		PassedRules:      2,
		FailedRules:      4,
		OverallRiskScore: 67,
		Frameworks: map[string]types.FrameworkResult{
			"CIS": {
				Framework: types.FrameworkMeta{Code: "CIS"},
				Total:     6,
				Passed:    2,
				Failed:    4,
				RiskScore: 75,
			},
		},
		Outcomes: []types.RuleOutcome{
			failedOutcome("CIS-1", types.SeverityLow),
			failedOutcome("CIS-2", types.SeverityCritical),
			{RuleCode: "CIS-3", Status: types.StatusPass, Severity: types.SeverityHigh},
			failedOutcome("CIS-4", types.SeverityHigh),
			failedOutcome("CIS-5", types.SeverityCritical),
			{RuleCode: "CIS-6", Status: types.StatusPass, Severity: types.SeverityLow},
		},
	}
}

func TestEnhancer_Enhance(t *testing.T) {
	summary := NewEnhancer(0).Enhance(testResult())

	assert.Equal(t, "session-1", summary.SessionID)
	assert.False(t, summary.GeneratedAt.IsZero())
	assert.Equal(t, 67, summary.OverallRiskScore)
	assert.Equal(t, scoring.RiskLevelMedium, summary.RiskLevel)
	assert.Equal(t, scoring.RiskLevelHigh, summary.FrameworkRisk["CIS"])
}

func TestEnhancer_FailuresBySeverity(t *testing.T) {
	summary := NewEnhancer(0).Enhance(testResult())

	assert.Equal(t, 2, summary.FailuresBySeverity[types.SeverityCritical])
	assert.Equal(t, 1, summary.FailuresBySeverity[types.SeverityHigh])
	assert.Equal(t, 1, summary.FailuresBySeverity[types.SeverityLow])
	assert.Equal(t, 0, summary.FailuresBySeverity[types.SeverityMedium])
}

func TestEnhancer_TopRisks(t *testing.T) {
	summary := NewEnhancer(3).Enhance(testResult())

	require.Len(t, summary.TopRisks, 3)
	// weight descending; equal weights keep evaluation order
	assert.Equal(t, "CIS-2", summary.TopRisks[0].RuleCode)
	assert.Equal(t, "CIS-5", summary.TopRisks[1].RuleCode)
	assert.Equal(t, "CIS-4", summary.TopRisks[2].RuleCode)
	assert.Equal(t, 4, summary.TopRisks[0].Weight)
}

func TestEnhancer_TopRisks_FewerFailuresThanN(t *testing.T) {
	result := testResult()
	summary := NewEnhancer(10).Enhance(result)
	assert.Len(t, summary.TopRisks, 4)
}

func TestEnhancer_RemediationPriority(t *testing.T) {
	summary := NewEnhancer(0).Enhance(testResult())

	require.Len(t, summary.Remediation, 4)
	// priority is severity weight times business impact weight
	assert.Equal(t, 16, summary.Remediation[0].Priority)
	assert.Equal(t, "CIS-2", summary.Remediation[0].RuleCode)
	assert.Equal(t, 9, summary.Remediation[2].Priority)
	assert.Equal(t, 1, summary.Remediation[3].Priority)
	assert.Equal(t, "fix CIS-2", summary.Remediation[0].Remediation)
}

func TestEnhancer_KeyFindings(t *testing.T) {
	summary := NewEnhancer(0).Enhance(testResult())

	require.NotEmpty(t, summary.KeyFindings)
	assert.Contains(t, summary.KeyFindings[0], "4 of 6 rules failed")
	assert.Contains(t, summary.KeyFindings, "2 critical severity failures require immediate attention")
}

func TestEnhancer_NoFailures(t *testing.T) {
	result := &types.EvaluationResult{
		SessionID:        "clean",
		FrameworksTested: []string{"CIS"},
		TotalRules:       2,
		PassedRules:      2,
		Frameworks: map[string]types.FrameworkResult{
			"CIS": {Framework: types.FrameworkMeta{Code: "CIS"}, Total: 2, Passed: 2},
		},
		Outcomes: []types.RuleOutcome{
			{RuleCode: "CIS-1", Status: types.StatusPass, Severity: types.SeverityHigh},
			{RuleCode: "CIS-2", Status: types.StatusPass, Severity: types.SeverityLow},
		},
	}
	summary := NewEnhancer(0).Enhance(result)

	assert.Equal(t, scoring.RiskLevelLow, summary.RiskLevel)
	assert.Empty(t, summary.TopRisks)
	assert.Empty(t, summary.Remediation)
	assert.Empty(t, summary.FailuresBySeverity)
}

// ERROR outcomes are failures for reporting purposes too.
func TestEnhancer_ErrorOutcomesCounted(t *testing.T) {
	result := &types.EvaluationResult{
		SessionID:        "errored",
		FrameworksTested: []string{"CIS"},
		TotalRules:       1,
		FailedRules:      1,
		OverallRiskScore: 100,
		Frameworks: map[string]types.FrameworkResult{
			"CIS": {Framework: types.FrameworkMeta{Code: "CIS"}, Total: 1, Failed: 1, RiskScore: 100},
		},
		Outcomes: []types.RuleOutcome{
			{RuleCode: "CIS-1", Status: types.StatusError, Severity: types.SeverityHigh, Message: "rule evaluation failed: boom"},
		},
	}
	summary := NewEnhancer(0).Enhance(result)

	require.Len(t, summary.TopRisks, 1)
	assert.Equal(t, 1, summary.FailuresBySeverity[types.SeverityHigh])
	assert.Equal(t, scoring.RiskLevelHigh, summary.RiskLevel)
}
