package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		ID: "snap-1",
		Sections: map[string]interface{}{
			"security_config": map[string]interface{}{
				"password_policy": map[string]interface{}{
					"min_length":          float64(14),
					"complexity_required": true,
				},
				"disk_encrypted": false,
			},
			"network": map[string]interface{}{
				"open_ports": []interface{}{float64(22), float64(443)},
			},
			"hostname": "web-01",
		},
	}
}

func TestSnapshot_Lookup(t *testing.T) {
	snap := testSnapshot()

	tests := []struct {
		name  string
		path  string
		want  interface{}
		found bool
	}{
		{"nested value", "security_config.password_policy.min_length", float64(14), true},
		{"boolean leaf", "security_config.disk_encrypted", false, true},
		{"top level", "hostname", "web-01", true},
		{"missing section", "services.ftp.status", nil, false},
		{"missing leaf", "security_config.password_policy.max_age", nil, false},
		{"traverse through leaf", "hostname.sub", nil, false},
		{"empty path", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := snap.Lookup(tt.path)
			assert.Equal(t, tt.found, found)
			if found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSnapshot_LookupTyped(t *testing.T) {
	snap := testSnapshot()

	n, ok := snap.LookupNumber("security_config.password_policy.min_length")
	assert.True(t, ok)
	assert.Equal(t, float64(14), n)

	b, ok := snap.LookupBool("security_config.password_policy.complexity_required")
	assert.True(t, ok)
	assert.True(t, b)

	s, ok := snap.LookupString("hostname")
	assert.True(t, ok)
	assert.Equal(t, "web-01", s)

	// type mismatch is reported as not found
	_, ok = snap.LookupBool("hostname")
	assert.False(t, ok)
}

func TestSnapshot_LookupNilSections(t *testing.T) {
	snap := &Snapshot{ID: "empty"}
	_, found := snap.Lookup("anything")
	assert.False(t, found)
	assert.Nil(t, snap.Section("anything"))
}

func TestSnapshot_Summary(t *testing.T) {
	snap := testSnapshot()
	summary := snap.Summary()
	assert.Equal(t, "snap-1", summary.ID)
	// section names are sorted for deterministic output
	assert.Equal(t, []string{"hostname", "network", "security_config"}, summary.Sections)
}

func TestSeverity_Weight(t *testing.T) {
	tests := []struct {
		severity Severity
		weight   int
	}{
		{SeverityCritical, 4},
		{SeverityHigh, 3},
		{SeverityMedium, 2},
		{SeverityLow, 1},
		{Severity("unknown"), 1},
		{Severity(""), 1},
		{Severity("CRITICAL"), 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.weight, tt.severity.Weight(), "severity %q", tt.severity)
	}
}

func TestParseSeverity(t *testing.T) {
	s, ok := ParseSeverity(" High ")
	assert.True(t, ok)
	assert.Equal(t, SeverityHigh, s)

	_, ok = ParseSeverity("severe")
	assert.False(t, ok)
}

func TestStatus_CountsAsFailed(t *testing.T) {
	assert.True(t, StatusFail.CountsAsFailed())
	assert.True(t, StatusError.CountsAsFailed())
	assert.False(t, StatusPass.CountsAsFailed())
	assert.False(t, StatusSkip.CountsAsFailed())
}

func TestCriteria_Validate(t *testing.T) {
	assert.NoError(t, Criteria{}.Validate())
	assert.NoError(t, Criteria{Severities: []string{"critical", "LOW"}}.Validate())
	assert.Error(t, Criteria{Severities: []string{"severe"}}.Validate())
}
