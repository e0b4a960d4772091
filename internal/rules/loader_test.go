package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seclens/seclens/internal/catalog"
)

const customPack = `framework:
  code: ACME
  name: Acme Internal Baseline
  version: "1.0"
rules:
  - code: ACME-1
    title: MFA enforced for admins
    category: authentication
    severity: critical
    remediation: Enforce MFA in the identity provider.
    field: security_config.mfa.enabled
    op: "=="
    value: true
  - code: ACME-2
    title: Log retention at least 90 days
    category: logging
    severity: medium
    field: security_config.log_retention_days
    op: ">="
    value: 90
`

func writePack(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "acme.yaml", customPack)
	writePack(t, dir, "notes.txt", "not a rule pack")

	packs, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, packs, 1)

	pack := packs[0]
	assert.Equal(t, "ACME", pack.Framework.Code)
	require.Len(t, pack.Rules, 2)
	assert.Equal(t, "ACME-1", pack.Rules[0].Code)
	assert.Equal(t, OpGreaterEq, pack.Rules[1].Op)
	assert.Equal(t, 90, pack.Rules[1].Value)
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLoadDir_BadYAML(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "broken.yaml", "framework: [not a mapping")

	_, err := LoadDir(dir)
	assert.Error(t, err)
}

func TestLoadDir_MissingFrameworkCode(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "anon.yaml", "framework:\n  name: Nameless\nrules: []\n")

	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "framework.code is required")
}

func TestRegisterPacks(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "acme.yaml", customPack)

	packs, err := LoadDir(dir)
	require.NoError(t, err)

	cat := catalog.New()
	require.NoError(t, RegisterPacks(cat, packs))

	fw, ok := cat.Framework("ACME")
	require.True(t, ok)
	assert.Equal(t, "Acme Internal Baseline", fw.Name)

	// rules inherit the pack framework code when their own is empty
	rule, ok := cat.Rule(catalog.RuleKey{Framework: "ACME", Code: "ACME-1"})
	require.True(t, ok)
	assert.Equal(t, "ACME", rule.Framework)
	assert.Len(t, cat.Rules("ACME"), 2)
}

func TestRegisterPacks_BadDefinition(t *testing.T) {
	packs := []Pack{{
		Framework: catalog.Framework{Code: "ACME"},
		Rules: []Definition{
			{Code: "ACME-1", Field: "a.b", Op: "~=", Severity: "low"},
		},
	}}

	err := RegisterPacks(catalog.New(), packs)
	assert.Error(t, err)
}

func TestRegisterBuiltin(t *testing.T) {
	cat := catalog.New()
	require.NoError(t, RegisterBuiltin(cat))

	fws := cat.Frameworks()
	require.Len(t, fws, 3)
	assert.Equal(t, "CIS", fws[0].Code)
	assert.Equal(t, "ISO27001", fws[1].Code)
	assert.Equal(t, "RBI", fws[2].Code)

	assert.Len(t, cat.Rules("CIS"), 10)
	assert.Len(t, cat.Rules("ISO27001"), 9)
	assert.Len(t, cat.Rules("RBI"), 10)

	// predicate rules sit at their benchmark positions
	cis := cat.Rules("CIS")
	assert.Equal(t, "CIS-9", cis[8].Code)
	iso := cat.Rules("ISO27001")
	assert.Equal(t, "ISO-3", iso[2].Code)

	// registering twice replaces in place instead of duplicating
	require.NoError(t, RegisterBuiltin(cat))
	assert.Equal(t, 29, cat.Size())
}
