package output

import (
	"bytes"
	"fmt"

	"github.com/seclens/seclens/internal/report"
	"github.com/seclens/seclens/pkg/types"
)

// MarkdownFormatter renders results as markdown documents
type MarkdownFormatter struct {
	config Config
}

// NewMarkdownFormatter creates a new markdown formatter
func NewMarkdownFormatter(config Config) *MarkdownFormatter {
	return &MarkdownFormatter{config: config}
}

// FormatResult formats an evaluation result as markdown
func (m *MarkdownFormatter) FormatResult(result *types.EvaluationResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# Compliance Evaluation\n\n")
	fmt.Fprintf(&buf, "- **Session:** %s\n", result.SessionID)
	fmt.Fprintf(&buf, "- **Snapshot:** %s\n", result.Snapshot.ID)
	fmt.Fprintf(&buf, "- **Timestamp:** %s\n", result.Timestamp.Format(m.config.TimeFormat))
	fmt.Fprintf(&buf, "- **Overall risk score:** %d\n\n", result.OverallRiskScore)

	if result.TotalRules == 0 {
		fmt.Fprintf(&buf, "No rules matched the given criteria.\n")
		return buf.Bytes(), nil
	}

	fmt.Fprintf(&buf, "## Frameworks\n\n")
	fmt.Fprintf(&buf, "| Framework | Compliance | Risk | Passed | Failed | Skipped |\n")
	fmt.Fprintf(&buf, "|-----------|-----------:|-----:|-------:|-------:|--------:|\n")
	for _, code := range result.FrameworksTested {
		fr := result.Frameworks[code]
		fmt.Fprintf(&buf, "| %s %s | %d%% | %d | %d | %d | %d |\n",
			fr.Framework.Name, fr.Framework.Version,
			fr.CompliancePercentage, fr.RiskScore, fr.Passed, fr.Failed, fr.Skipped)
	}
	fmt.Fprintf(&buf, "\n")

	failed := result.FailedOutcomes()
	if len(failed) > 0 {
		fmt.Fprintf(&buf, "## Failed Checks\n\n")
		for _, o := range failed {
			fmt.Fprintf(&buf, "### %s: %s\n\n", o.RuleCode, o.RuleTitle)
			fmt.Fprintf(&buf, "- **Severity:** %s\n", o.Severity)
			fmt.Fprintf(&buf, "- **Status:** %s\n", o.Status)
			fmt.Fprintf(&buf, "- **Message:** %s\n", o.Message)
			for _, finding := range o.Findings {
				fmt.Fprintf(&buf, "- %s\n", finding)
			}
			if o.Remediation != "" {
				fmt.Fprintf(&buf, "\n*Remediation:* %s\n", o.Remediation)
			}
			fmt.Fprintf(&buf, "\n")
		}
	}

	return buf.Bytes(), nil
}

// FormatSummary formats an executive summary as markdown
func (m *MarkdownFormatter) FormatSummary(summary *report.Summary) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# Executive Summary\n\n")
	fmt.Fprintf(&buf, "- **Session:** %s\n", summary.SessionID)
	fmt.Fprintf(&buf, "- **Overall risk:** %d (%s)\n\n", summary.OverallRiskScore, summary.RiskLevel)

	if len(summary.KeyFindings) > 0 {
		fmt.Fprintf(&buf, "## Key Findings\n\n")
		for _, f := range summary.KeyFindings {
			fmt.Fprintf(&buf, "- %s\n", f)
		}
		fmt.Fprintf(&buf, "\n")
	}

	if len(summary.TopRisks) > 0 {
		fmt.Fprintf(&buf, "## Top Risks\n\n")
		fmt.Fprintf(&buf, "| Rule | Framework | Severity | Message |\n")
		fmt.Fprintf(&buf, "|------|-----------|----------|--------|\n")
		for _, risk := range summary.TopRisks {
			fmt.Fprintf(&buf, "| %s | %s | %s | %s |\n",
				risk.RuleCode, risk.Framework, risk.Severity, risk.Message)
		}
		fmt.Fprintf(&buf, "\n")
	}

	if len(summary.Remediation) > 0 {
		fmt.Fprintf(&buf, "## Remediation Priority\n\n")
		for i, item := range summary.Remediation {
			fmt.Fprintf(&buf, "%d. **%s** (%s): %s\n", i+1, item.RuleTitle, item.RuleCode, item.Remediation)
		}
	}

	return buf.Bytes(), nil
}
