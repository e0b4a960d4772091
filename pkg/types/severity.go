package types

import "strings"

// Severity classifies how serious a rule failure is
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// IsValid checks if the Severity is one of the known levels
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	default:
		return false
	}
}

// Weight returns the scoring weight for the severity.
// Unknown or empty severities weigh the same as low.
func (s Severity) Weight() int {
	switch Severity(strings.ToLower(string(s))) {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	default:
		return 1
	}
}

// String returns the string representation of Severity
func (s Severity) String() string {
	return string(s)
}

// ParseSeverity normalizes a raw string into a Severity
func ParseSeverity(raw string) (Severity, bool) {
	s := Severity(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.IsValid()
}

// Status represents the outcome of evaluating one rule
type Status string

const (
	StatusPass  Status = "PASS"
	StatusFail  Status = "FAIL"
	StatusSkip  Status = "SKIP"
	StatusError Status = "ERROR"
)

// IsValid checks if the Status is valid
func (st Status) IsValid() bool {
	switch st {
	case StatusPass, StatusFail, StatusSkip, StatusError:
		return true
	default:
		return false
	}
}

// CountsAsFailed reports whether the status contributes to the failed
// counter. Evaluation errors are treated as failures for scoring.
func (st Status) CountsAsFailed() bool {
	return st == StatusFail || st == StatusError
}

// String returns the string representation of Status
func (st Status) String() string {
	return string(st)
}
