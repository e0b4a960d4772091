package rules

import (
	"context"
	"fmt"

	"github.com/seclens/seclens/internal/catalog"
	"github.com/seclens/seclens/pkg/types"
)

// CISFramework describes the CIS benchmark rule pack
var CISFramework = catalog.Framework{
	Code:        "CIS",
	Name:        "CIS Benchmarks",
	Version:     "8.0",
	Description: "Center for Internet Security baseline hardening checks",
}

// cisDefinitions are the declarative CIS checks
var cisDefinitions = []Definition{
	{
		Code: "CIS-1", Framework: "CIS", Title: "Minimum password length",
		Description: "Password policy requires at least 12 characters",
		Category:    "authentication", Severity: "critical",
		Remediation: "Set system password policy minimum length to 12 or more.",
		Field:       "security_config.password_policy.min_length", Op: OpGreaterEq, Value: 12,
	},
	{
		Code: "CIS-2", Framework: "CIS", Title: "Password complexity required",
		Description: "Password policy enforces character class complexity",
		Category:    "authentication", Severity: "high",
		Remediation: "Enable password complexity (upper/lower/digit/special) in PAM or AD policies.",
		Field:       "security_config.password_policy.complexity_required", Op: OpEqual, Value: true,
	},
	{
		Code: "CIS-3", Framework: "CIS", Title: "Firewall enabled",
		Description: "Host firewall is enabled with default deny rules",
		Category:    "network", Severity: "critical",
		Remediation: "Enable the host firewall and apply default deny rules.",
		Field:       "network.firewall_enabled", Op: OpEqual, Value: true,
	},
	{
		Code: "CIS-4", Framework: "CIS", Title: "Audit logging enabled",
		Description: "Audit daemon is running and forwarding events",
		Category:    "logging", Severity: "high",
		Remediation: "Enable auditd or Windows event forwarding to a central SIEM.",
		Field:       "security_config.audit.enabled", Op: OpEqual, Value: true,
	},
	{
		Code: "CIS-5", Framework: "CIS", Title: "Disk encryption enabled",
		Description: "System disks use full-disk encryption",
		Category:    "encryption", Severity: "high",
		Remediation: "Enable LUKS/BitLocker full-disk encryption for hosts with sensitive data.",
		Field:       "security_config.disk_encrypted", Op: OpEqual, Value: true,
	},
	{
		Code: "CIS-6", Framework: "CIS", Title: "Insecure FTP service stopped",
		Description: "Plaintext FTP service is not running",
		Category:    "services", Severity: "medium",
		Remediation: "Stop and remove the FTP service; use SFTP or another secure alternative.",
		Field:       "services.ftp.status", Op: OpEqual, Value: "stopped",
	},
	{
		Code: "CIS-7", Framework: "CIS", Title: "SSH root login disabled",
		Description: "Direct root login over SSH is disabled",
		Category:    "authentication", Severity: "critical",
		Remediation: "Set PermitRootLogin no in /etc/ssh/sshd_config and restart sshd.",
		Field:       "security_config.ssh.root_login", Op: OpEqual, Value: false,
	},
	{
		Code: "CIS-8", Framework: "CIS", Title: "OS patch age within 30 days",
		Description: "Operating system patches are no older than 30 days",
		Category:    "patching", Severity: "critical",
		Remediation: "Patch systems automatically or within 30 days via patch management.",
		Field:       "system_info.patch_age_days", Op: OpLessEq, Value: 30,
	},
	{
		Code: "CIS-10", Framework: "CIS", Title: "Audit rules present",
		Description: "auditd rules cover critical files and processes",
		Category:    "logging", Severity: "high",
		Remediation: "Configure audit rules for critical files and processes.",
		Field:       "security_config.audit.rules_present", Op: OpEqual, Value: true,
	},
}

// databasePorts are service ports that must never be exposed publicly
var databasePorts = map[int]string{
	1433:  "mssql",
	3306:  "mysql",
	5432:  "postgres",
	6379:  "redis",
	27017: "mongodb",
}

// checkDatabasePortsClosed verifies no database port appears in the
// snapshot's open port list. Written as a predicate rather than a
// declarative rule because it inspects every list element.
func checkDatabasePortsClosed(_ context.Context, snapshot *types.Snapshot) (types.CheckResult, error) {
	v, ok := snapshot.Lookup("network.open_ports")
	if !ok {
		return types.CheckResult{
			Passed:   false,
			Message:  "missing field network.open_ports",
			Findings: []string{"snapshot has no value at network.open_ports"},
		}, nil
	}
	ports, ok := v.([]interface{})
	if !ok {
		return types.CheckResult{}, fmt.Errorf("network.open_ports is not a list (%T)", v)
	}

	var findings []string
	var exposed []int
	for _, p := range ports {
		n, ok := toFloat(p)
		if !ok {
			continue
		}
		port := int(n)
		if service, bad := databasePorts[port]; bad {
			exposed = append(exposed, port)
			findings = append(findings, fmt.Sprintf("database port %d (%s) is open", port, service))
		}
	}

	result := types.CheckResult{
		Passed: len(exposed) == 0,
		Evidence: map[string]interface{}{
			"open_ports":     v,
			"database_ports": exposed,
		},
	}
	if result.Passed {
		result.Message = "no database ports exposed"
	} else {
		result.Message = fmt.Sprintf("%d database port(s) exposed", len(exposed))
		result.Findings = findings
	}
	return result, nil
}

// cisRules compiles the CIS pack into catalog rules
func cisRules() ([]catalog.Rule, error) {
	rules, err := compileAll(cisDefinitions)
	if err != nil {
		return nil, err
	}
	// CIS-9 sits between CIS-8 and CIS-10 in the benchmark ordering
	out := make([]catalog.Rule, 0, len(rules)+1)
	out = append(out, rules[:8]...)
	out = append(out, catalog.Rule{
		Code:        "CIS-9",
		Framework:   "CIS",
		Title:       "Database ports not publicly open",
		Description: "Database service ports are not in the open port list",
		Category:    "network",
		Severity:    types.SeverityHigh,
		Remediation: "Close public database ports or restrict them via firewall rules.",
		Check:       checkDatabasePortsClosed,
	})
	out = append(out, rules[8:]...)
	return out, nil
}
