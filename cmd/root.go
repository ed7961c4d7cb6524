// Package cmd provides the command-line interface for taskweave with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --build-type, etc.) - highest priority
//	2. TASKWEAVE_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (TASKWEAVE_PROFILE_OS, etc.)
//	4. Configuration files (.taskweave.yml) - lowest priority
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eelitiawan/taskweave/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskweave",
	Short: "Build configuration and source maintenance for the taskweave package",
	Long: `taskweave drives the package's build configuration and source maintenance.

It generates the toolchain descriptor, configuration presets, and dependency
metadata the build orchestrator consumes, and keeps the C++ sources formatted
with the project's external formatter.

Quick Start:
  taskweave configure             Generate toolchain and preset files
  taskweave format                Format all sources under src/ and tests/
  taskweave format --watch        Re-format whenever sources change`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .taskweave.yml, can also use TASKWEAVE_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. TASKWEAVE_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .taskweave.yml in current directory
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("TASKWEAVE_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".taskweave")
	}

	// Enable automatic environment variable binding with TASKWEAVE_ prefix
	// Examples: TASKWEAVE_PROFILE_OS, TASKWEAVE_FORMAT_TOOL
	viper.SetEnvPrefix("TASKWEAVE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Missing or malformed config files degrade to defaults without failing.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the root logger from the configured level.
func newLogger() logging.Logger {
	return logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.ParseLevel(viper.GetString("log-level")),
		Format: "text",
		Output: os.Stderr,
	})
}
