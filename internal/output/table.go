package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/seclens/seclens/internal/report"
	"github.com/seclens/seclens/internal/storage"
	"github.com/seclens/seclens/pkg/types"
)

// TableFormatter handles terminal table output
type TableFormatter struct {
	config Config
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(config Config) *TableFormatter {
	return &TableFormatter{config: config}
}

// FormatResult formats an evaluation result as a table
func (t *TableFormatter) FormatResult(result *types.EvaluationResult) ([]byte, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Compliance Evaluation\n")
	fmt.Fprintf(w, "=====================\n")
	fmt.Fprintf(w, "Session:\t%s\n", result.SessionID)
	fmt.Fprintf(w, "Snapshot:\t%s\n", result.Snapshot.ID)
	fmt.Fprintf(w, "Timestamp:\t%s\n", result.Timestamp.Format(t.config.TimeFormat))
	fmt.Fprintf(w, "Rules:\t%d total, %d passed, %d failed, %d skipped\n",
		result.TotalRules, result.PassedRules, result.FailedRules, result.SkippedRules)
	fmt.Fprintf(w, "Overall Risk:\t%s\n", t.colorScore(result.OverallRiskScore))
	fmt.Fprintf(w, "\n")

	if result.TotalRules == 0 {
		fmt.Fprintf(w, "No rules matched the given criteria.\n")
		w.Flush()
		return buf.Bytes(), nil
	}

	fmt.Fprintf(w, "Framework\tCompliance\tRisk\tPassed\tFailed\n")
	fmt.Fprintf(w, "---------\t----------\t----\t------\t------\n")
	for _, code := range result.FrameworksTested {
		fr := result.Frameworks[code]
		fmt.Fprintf(w, "%s %s\t%d%%\t%s\t%d\t%d\n",
			fr.Framework.Name, fr.Framework.Version,
			fr.CompliancePercentage, t.colorScore(fr.RiskScore),
			fr.Passed, fr.Failed)
	}
	fmt.Fprintf(w, "\n")

	failed := result.FailedOutcomes()
	if len(failed) > 0 {
		fmt.Fprintf(w, "Failed Checks:\n")
		fmt.Fprintf(w, "Rule\tSeverity\tStatus\tMessage\n")
		fmt.Fprintf(w, "----\t--------\t------\t-------\n")
		for _, o := range failed {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				o.RuleCode, t.colorSeverity(o.Severity), o.Status, truncateString(o.Message, 60))
		}
	}

	w.Flush()
	return buf.Bytes(), nil
}

// FormatSummary formats an executive summary as a table
func (t *TableFormatter) FormatSummary(summary *report.Summary) ([]byte, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Executive Summary\n")
	fmt.Fprintf(w, "=================\n")
	fmt.Fprintf(w, "Session:\t%s\n", summary.SessionID)
	fmt.Fprintf(w, "Overall Risk:\t%s (%s)\n", t.colorScore(summary.OverallRiskScore), summary.RiskLevel)
	fmt.Fprintf(w, "\n")

	if len(summary.KeyFindings) > 0 {
		fmt.Fprintf(w, "Key Findings:\n")
		for _, f := range summary.KeyFindings {
			fmt.Fprintf(w, "  - %s\n", f)
		}
		fmt.Fprintf(w, "\n")
	}

	if len(summary.TopRisks) > 0 {
		fmt.Fprintf(w, "Top Risks:\n")
		fmt.Fprintf(w, "Rule\tFramework\tSeverity\tMessage\n")
		fmt.Fprintf(w, "----\t---------\t--------\t-------\n")
		for _, risk := range summary.TopRisks {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				risk.RuleCode, risk.Framework, t.colorSeverity(risk.Severity), truncateString(risk.Message, 60))
		}
		fmt.Fprintf(w, "\n")
	}

	if len(summary.Remediation) > 0 {
		fmt.Fprintf(w, "Remediation Priority:\n")
		for i, item := range summary.Remediation {
			fmt.Fprintf(w, "  %d. [%s] %s: %s\n", i+1, item.RuleCode, item.RuleTitle, item.Remediation)
		}
	}

	w.Flush()
	return buf.Bytes(), nil
}

// FormatSessionList formats stored sessions as a table
func (t *TableFormatter) FormatSessionList(sessions []storage.ResultInfo) ([]byte, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Session\tTimestamp\tSnapshot\tRules\tFailed\tRisk\n")
	fmt.Fprintf(w, "-------\t---------\t--------\t-----\t------\t----\n")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			s.SessionID, s.Timestamp.Format(t.config.TimeFormat), s.SnapshotID,
			s.TotalRules, s.FailedRules, s.OverallRiskScore)
	}

	w.Flush()
	return buf.Bytes(), nil
}

// colorScore renders a risk score, colored by band when enabled
func (t *TableFormatter) colorScore(score int) string {
	text := fmt.Sprintf("%d", score)
	if !t.config.EnableColors {
		return text
	}
	switch {
	case score >= 70:
		return color.RedString(text)
	case score >= 40:
		return color.YellowString(text)
	default:
		return color.GreenString(text)
	}
}

// colorSeverity renders a severity label, colored when enabled
func (t *TableFormatter) colorSeverity(s types.Severity) string {
	if !t.config.EnableColors {
		return string(s)
	}
	switch s {
	case types.SeverityCritical:
		return color.New(color.FgRed, color.Bold).Sprint(string(s))
	case types.SeverityHigh:
		return color.RedString(string(s))
	case types.SeverityMedium:
		return color.YellowString(string(s))
	default:
		return color.GreenString(string(s))
	}
}

// truncateString shortens long messages for table cells
func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
