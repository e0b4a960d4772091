// Package config loads seclens configuration from file, environment
// and flags via viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/seclens/seclens/internal/storage"
)

// Config is the root seclens configuration
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Output   OutputConfig   `mapstructure:"output"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Storage  storage.Config `mapstructure:"storage"`
	RulesDir string         `mapstructure:"rules_dir"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// OutputConfig holds rendering settings
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// EngineConfig holds evaluation engine settings
type EngineConfig struct {
	Workers     int           `mapstructure:"workers"`
	RuleTimeout time.Duration `mapstructure:"rule_timeout"`
	TopRisks    int           `mapstructure:"top_risks"`
}

// Load reads configuration, applying defaults, the config file (if
// any) and SECLENS_* environment variables.
func Load() (*Config, error) {
	setDefaults()

	viper.SetEnvPrefix("SECLENS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if viper.ConfigFileUsed() == "" {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".seclens"))
		}
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Missing config file is fine, defaults apply
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("output.format", "table")
	viper.SetDefault("output.no_color", false)

	viper.SetDefault("engine.workers", 0) // 0 = NumCPU
	viper.SetDefault("engine.rule_timeout", "30s")
	viper.SetDefault("engine.top_risks", 5)

	viper.SetDefault("storage.backend", "local")
	viper.SetDefault("storage.base_dir", "")
	viper.SetDefault("storage.s3.prefix", "seclens")
	viper.SetDefault("storage.s3.use_path_style", false)

	viper.SetDefault("rules_dir", "")
}
