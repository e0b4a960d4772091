package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoad_Defaults(t *testing.T) {
	resetViper(t)
	// point at an empty directory so no stray config file is picked up
	viper.AddConfigPath(t.TempDir())
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.Equal(t, 0, cfg.Engine.Workers)
	assert.Equal(t, 30*time.Second, cfg.Engine.RuleTimeout)
	assert.Equal(t, 5, cfg.Engine.TopRisks)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, "seclens", cfg.Storage.S3.Prefix)
}

func TestLoad_ConfigFile(t *testing.T) {
	resetViper(t)

	dir := t.TempDir()
	content := `logging:
  level: debug
output:
  format: json
engine:
  workers: 8
  rule_timeout: 5s
storage:
  backend: s3
  s3:
    bucket: compliance-results
    region: eu-west-1
rules_dir: /etc/seclens/rules
`
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	viper.SetConfigFile(path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 8, cfg.Engine.Workers)
	assert.Equal(t, 5*time.Second, cfg.Engine.RuleTimeout)
	assert.Equal(t, "s3", cfg.Storage.Backend)
	assert.Equal(t, "compliance-results", cfg.Storage.S3.Bucket)
	assert.Equal(t, "eu-west-1", cfg.Storage.S3.Region)
	assert.Equal(t, "/etc/seclens/rules", cfg.RulesDir)
}

func TestLoad_Environment(t *testing.T) {
	resetViper(t)
	viper.AddConfigPath(t.TempDir())
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	t.Setenv("SECLENS_LOGGING_LEVEL", "warn")
	t.Setenv("SECLENS_OUTPUT_FORMAT", "markdown")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "markdown", cfg.Output.Format)
}

func TestLoad_BadConfigFile(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: [broken"), 0o644))
	viper.SetConfigFile(path)

	_, err := Load()
	assert.Error(t, err)
}
