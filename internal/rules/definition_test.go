package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seclens/seclens/pkg/types"
)

func testSnapshot() *types.Snapshot {
	return &types.Snapshot{
		ID: "snap-1",
		Sections: map[string]interface{}{
			"security_config": map[string]interface{}{
				"password_policy": map[string]interface{}{
					"min_length": float64(14),
				},
				"ssh": map[string]interface{}{
					"root_login": false,
				},
			},
			"services": map[string]interface{}{
				"ftp": map[string]interface{}{"status": "stopped"},
			},
			"network": map[string]interface{}{
				"open_ports": []interface{}{float64(22), float64(443), float64(5432)},
			},
			"banner": "Authorized access only",
		},
	}
}

func TestDefinition_Compile_Validation(t *testing.T) {
	valid := Definition{
		Code: "R-1", Framework: "CIS", Field: "a.b", Op: OpEqual, Severity: "high",
	}

	_, err := valid.Compile()
	assert.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Definition)
	}{
		{"missing code", func(d *Definition) { d.Code = "" }},
		{"missing framework", func(d *Definition) { d.Framework = "" }},
		{"missing field", func(d *Definition) { d.Field = "" }},
		{"bad op", func(d *Definition) { d.Op = "=" }},
		{"bad severity", func(d *Definition) { d.Severity = "extreme" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := valid
			tt.mutate(&def)
			_, err := def.Compile()
			assert.Error(t, err)
		})
	}
}

func TestDefinition_Check_Operators(t *testing.T) {
	snap := testSnapshot()

	tests := []struct {
		name   string
		field  string
		op     string
		value  interface{}
		passed bool
	}{
		{"eq bool", "security_config.ssh.root_login", OpEqual, false, true},
		{"eq bool mismatch", "security_config.ssh.root_login", OpEqual, true, false},
		{"eq string case insensitive", "services.ftp.status", OpEqual, "STOPPED", true},
		{"eq cross numeric types", "security_config.password_policy.min_length", OpEqual, 14, true},
		{"ne", "services.ftp.status", OpNotEqual, "running", true},
		{"ge pass", "security_config.password_policy.min_length", OpGreaterEq, 12, true},
		{"ge fail", "security_config.password_policy.min_length", OpGreaterEq, 16, false},
		{"le pass", "security_config.password_policy.min_length", OpLessEq, 20, true},
		{"le fail", "security_config.password_policy.min_length", OpLessEq, 10, false},
		{"contains list", "network.open_ports", OpContains, 5432, true},
		{"contains list absent", "network.open_ports", OpContains, 3306, false},
		{"not_contains list", "network.open_ports", OpNotContains, 3306, true},
		{"contains substring", "banner", OpContains, "authorized", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := Definition{
				Code: "R-1", Framework: "CIS", Severity: "low",
				Field: tt.field, Op: tt.op, Value: tt.value,
			}
			result, err := def.check(context.Background(), snap)
			require.NoError(t, err)
			assert.Equal(t, tt.passed, result.Passed)
		})
	}
}

func TestDefinition_Check_MissingField(t *testing.T) {
	def := Definition{
		Code: "R-1", Framework: "CIS", Severity: "low",
		Field: "security_config.mfa.enabled", Op: OpEqual, Value: true,
	}

	result, err := def.check(context.Background(), testSnapshot())
	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Equal(t, "missing field security_config.mfa.enabled", result.Message)
}

func TestDefinition_Check_TypeErrors(t *testing.T) {
	snap := testSnapshot()

	numericOnString := Definition{
		Code: "R-1", Framework: "CIS", Severity: "low",
		Field: "banner", Op: OpGreaterEq, Value: 5,
	}
	_, err := numericOnString.check(context.Background(), snap)
	assert.Error(t, err)

	containsOnBool := Definition{
		Code: "R-2", Framework: "CIS", Severity: "low",
		Field: "security_config.ssh.root_login", Op: OpContains, Value: "x",
	}
	_, err = containsOnBool.check(context.Background(), snap)
	assert.Error(t, err)
}

func TestDefinition_Check_Evidence(t *testing.T) {
	def := Definition{
		Code: "R-1", Framework: "CIS", Severity: "low",
		Field: "security_config.password_policy.min_length", Op: OpGreaterEq, Value: 16,
	}

	result, err := def.check(context.Background(), testSnapshot())
	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Equal(t, float64(14), result.Evidence["actual"])
	assert.NotEmpty(t, result.Findings)
}

func TestCheckDatabasePortsClosed(t *testing.T) {
	snap := testSnapshot()

	// 5432 is in the open port list
	result, err := checkDatabasePortsClosed(context.Background(), snap)
	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Contains(t, result.Findings[0], "5432")

	snap.Sections["network"] = map[string]interface{}{
		"open_ports": []interface{}{float64(22), float64(443)},
	}
	result, err = checkDatabasePortsClosed(context.Background(), snap)
	require.NoError(t, err)
	assert.True(t, result.Passed)
}

func TestCheckIncidentResponse(t *testing.T) {
	snap := &types.Snapshot{
		Sections: map[string]interface{}{
			"security_config": map[string]interface{}{
				"incident_response": map[string]interface{}{
					"plan_exists":    true,
					"last_test_days": float64(120),
				},
			},
		},
	}

	result, err := checkIncidentResponse(context.Background(), snap)
	require.NoError(t, err)
	assert.True(t, result.Passed)

	snap.Sections["security_config"].(map[string]interface{})["incident_response"].(map[string]interface{})["last_test_days"] = float64(400)
	result, err = checkIncidentResponse(context.Background(), snap)
	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.NotEmpty(t, result.Findings)
}
