package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/seclens/seclens/internal/app"
	"github.com/seclens/seclens/internal/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "seclens",
	Short: "Compliance evaluation and risk scoring for configuration snapshots",
	Long: `seclens evaluates a machine's security configuration snapshot against
compliance rule catalogs (CIS, ISO 27001, RBI and your own rule packs)
and produces a risk-scored report.

  seclens evaluate snapshot.json          # run all registered rules
  seclens evaluate snapshot.json \
      --framework CIS --severity critical # filtered run
  seclens report <session-id> --summary   # executive summary of a stored run
  seclens frameworks                      # list registered frameworks`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.seclens/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "output format (table, json, markdown)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("output.no_color", rootCmd.PersistentFlags().Lookup("no-color"))

	rootCmd.AddCommand(newEvaluateCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newFrameworksCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newSessionsCommand())
	rootCmd.AddCommand(newVersionCommand())
}

// buildApp loads configuration and wires the application for a command
func buildApp(cmd *cobra.Command) (*app.App, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}
	return a, nil
}
