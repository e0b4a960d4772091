package rules

import "github.com/seclens/seclens/internal/catalog"

// RBIFramework describes the RBI cyber security rule pack
var RBIFramework = catalog.Framework{
	Code:        "RBI",
	Name:        "RBI Cyber Security Framework",
	Version:     "2016",
	Description: "Reserve Bank of India cyber security controls for regulated entities",
}

var rbiDefinitions = []Definition{
	{
		Code: "RBI-1", Framework: "RBI", Title: "MFA for privileged accounts",
		Description: "Multi-factor authentication is enabled for admin accounts",
		Category:    "authentication", Severity: "critical",
		Remediation: "Enable MFA for admin and privileged accounts using OTP or hardware tokens.",
		Field:       "security_config.iam.mfa_for_admins", Op: OpEqual, Value: true,
	},
	{
		Code: "RBI-2", Framework: "RBI", Title: "Transaction log retention",
		Description: "Transaction logs are retained for at least five years",
		Category:    "logging", Severity: "critical",
		Remediation: "Configure transaction log retention of five years or more in secure storage.",
		Field:       "security_config.data_retention.transaction_logs_days", Op: OpGreaterEq, Value: 1825,
	},
	{
		Code: "RBI-3", Framework: "RBI", Title: "Quarterly VAPT",
		Description: "Vulnerability assessment and penetration testing runs quarterly",
		Category:    "patching", Severity: "critical",
		Remediation: "Run VAPT quarterly and remediate critical findings.",
		Field:       "security_config.vapt.last_days", Op: OpLessEq, Value: 90,
	},
	{
		Code: "RBI-4", Framework: "RBI", Title: "Customer data encrypted",
		Description: "Customer data is encrypted in transit and at rest",
		Category:    "encryption", Severity: "critical",
		Remediation: "Enable TLS 1.2+ in transit and AES-256 at rest for customer data.",
		Field:       "security_config.encryption.customer_data", Op: OpEqual, Value: true,
	},
	{
		Code: "RBI-5", Framework: "RBI", Title: "SOC monitoring in place",
		Description: "A dedicated SOC monitors critical channels",
		Category:    "monitoring", Severity: "high",
		Remediation: "Deploy a SOC or MSSP with 24/7 monitoring of critical channels.",
		Field:       "security_config.soc.enabled", Op: OpEqual, Value: true,
	},
	{
		Code: "RBI-6", Framework: "RBI", Title: "Incident reporting timelines",
		Description: "Incidents are reported to CERT-In/RBI within mandated timelines",
		Category:    "governance", Severity: "high",
		Remediation: "Report incidents to CERT-In/RBI within the mandated timelines.",
		Field:       "security_config.incident_reporting.last_report_days", Op: OpLessEq, Value: 7,
	},
	{
		Code: "RBI-7", Framework: "RBI", Title: "SAST in CI pipeline",
		Description: "Static analysis runs in the build pipeline",
		Category:    "hardening", Severity: "medium",
		Remediation: "Integrate SAST and fix findings during CI builds.",
		Field:       "security_config.devsecops.sast_enabled", Op: OpEqual, Value: true,
	},
	{
		Code: "RBI-8", Framework: "RBI", Title: "Monthly data access reviews",
		Description: "Access to customer data is logged and reviewed monthly",
		Category:    "access_control", Severity: "high",
		Remediation: "Review access logs for sensitive data monthly.",
		Field:       "security_config.data_access.review_days", Op: OpLessEq, Value: 30,
	},
	{
		Code: "RBI-9", Framework: "RBI", Title: "DLP controls deployed",
		Description: "Data loss prevention controls are in place",
		Category:    "data_protection", Severity: "high",
		Remediation: "Deploy DLP for exfiltration control on endpoints and gateways.",
		Field:       "security_config.dlp.enabled", Op: OpEqual, Value: true,
	},
	{
		Code: "RBI-10", Framework: "RBI", Title: "BCP tested annually",
		Description: "Business continuity plan is tested every year",
		Category:    "resilience", Severity: "high",
		Remediation: "Test BCP/DR annually and document the results.",
		Field:       "security_config.bcp.last_test_days", Op: OpLessEq, Value: 365,
	},
}

func rbiRules() ([]catalog.Rule, error) {
	return compileAll(rbiDefinitions)
}
