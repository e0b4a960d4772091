package rules

import (
	"context"
	"fmt"

	"github.com/seclens/seclens/internal/catalog"
	"github.com/seclens/seclens/pkg/types"
)

// ISOFramework describes the ISO 27001 rule pack
var ISOFramework = catalog.Framework{
	Code:        "ISO27001",
	Name:        "ISO/IEC 27001",
	Version:     "2022",
	Description: "Information security management system controls",
}

var isoDefinitions = []Definition{
	{
		Code: "ISO-1", Framework: "ISO27001", Title: "Access reviews within 90 days",
		Description: "User access reviews are performed at least every 90 days",
		Category:    "access_control", Severity: "critical",
		Remediation: "Schedule and record access reviews every 90 days or less.",
		Field:       "security_config.access_review_days", Op: OpLessEq, Value: 90,
	},
	{
		Code: "ISO-2", Framework: "ISO27001", Title: "Backup policy exists and tested",
		Description: "A backup policy exists and restores are tested",
		Category:    "resilience", Severity: "high",
		Remediation: "Implement a backup policy and run restore tests periodically.",
		Field:       "security_config.backup.exists_and_tested", Op: OpEqual, Value: true,
	},
	{
		Code: "ISO-5", Framework: "ISO27001", Title: "Endpoint protection running",
		Description: "Endpoint protection is deployed and running",
		Category:    "services", Severity: "high",
		Remediation: "Deploy endpoint protection on all servers and workstations.",
		Field:       "services.antivirus.running", Op: OpEqual, Value: true,
	},
	{
		Code: "ISO-6", Framework: "ISO27001", Title: "Database encryption at rest",
		Description: "Sensitive databases are encrypted at rest",
		Category:    "encryption", Severity: "critical",
		Remediation: "Enable TDE or filesystem encryption for sensitive databases.",
		Field:       "security_config.encryption.db_at_rest", Op: OpEqual, Value: true,
	},
	{
		Code: "ISO-7", Framework: "ISO27001", Title: "Hardening baseline applied",
		Description: "A secure configuration baseline is enforced",
		Category:    "hardening", Severity: "high",
		Remediation: "Apply and enforce a CIS benchmark baseline via configuration management.",
		Field:       "security_config.baseline.cis_applied", Op: OpEqual, Value: true,
	},
	{
		Code: "ISO-8", Framework: "ISO27001", Title: "Segregation of duties",
		Description: "Administrative roles enforce segregation of duties",
		Category:    "access_control", Severity: "high",
		Remediation: "Implement role separation and approval workflows for admin roles.",
		Field:       "security_config.iam.separation_of_duties", Op: OpEqual, Value: true,
	},
	{
		Code: "ISO-9", Framework: "ISO27001", Title: "Change management enforced",
		Description: "Changes follow an enforced approval process",
		Category:    "governance", Severity: "medium",
		Remediation: "Enforce change approvals and track them in a ticketing system.",
		Field:       "security_config.change_mgmt.process_enforced", Op: OpEqual, Value: true,
	},
	{
		Code: "ISO-10", Framework: "ISO27001", Title: "Vendor risk assessments current",
		Description: "Third-party risk assessments are up to date",
		Category:    "governance", Severity: "medium",
		Remediation: "Perform vendor risk reviews and track remediation.",
		Field:       "security_config.vendor_risk.assessments_up_to_date", Op: OpEqual, Value: true,
	},
}

// checkIncidentResponse requires both an incident response plan and a
// test exercise within the last year. Two fields, so it is a predicate
// instead of a declarative rule.
func checkIncidentResponse(_ context.Context, snapshot *types.Snapshot) (types.CheckResult, error) {
	planExists, ok := snapshot.LookupBool("security_config.incident_response.plan_exists")
	if !ok {
		return types.CheckResult{
			Passed:   false,
			Message:  "missing field security_config.incident_response.plan_exists",
			Findings: []string{"snapshot has no value at security_config.incident_response.plan_exists"},
		}, nil
	}

	var findings []string
	if !planExists {
		findings = append(findings, "no incident response plan is published")
	}

	lastTest, ok := snapshot.LookupNumber("security_config.incident_response.last_test_days")
	switch {
	case !ok:
		findings = append(findings, "incident response has never been exercised")
	case lastTest > 365:
		findings = append(findings, fmt.Sprintf("last incident response exercise was %.0f days ago", lastTest))
	}

	result := types.CheckResult{
		Passed: len(findings) == 0,
		Evidence: map[string]interface{}{
			"plan_exists":    planExists,
			"last_test_days": lastTest,
		},
	}
	if result.Passed {
		result.Message = "incident response plan exists and was tested within 365 days"
	} else {
		result.Message = "incident response program is incomplete"
		result.Findings = findings
	}
	return result, nil
}

// isoRules compiles the ISO 27001 pack into catalog rules
func isoRules() ([]catalog.Rule, error) {
	rules, err := compileAll(isoDefinitions)
	if err != nil {
		return nil, err
	}
	// ISO-3/ISO-4 are folded into one incident response predicate
	// placed after ISO-2.
	out := make([]catalog.Rule, 0, len(rules)+1)
	out = append(out, rules[:2]...)
	out = append(out, catalog.Rule{
		Code:        "ISO-3",
		Framework:   "ISO27001",
		Title:       "Incident response plan exists and is tested",
		Description: "An incident response plan exists and was exercised within 12 months",
		Category:    "resilience",
		Severity:    types.SeverityCritical,
		Remediation: "Publish an incident response playbook and run a tabletop exercise yearly.",
		Check:       checkIncidentResponse,
	})
	out = append(out, rules[2:]...)
	return out, nil
}
