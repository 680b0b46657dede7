package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile         string
	logLevel        string
	logFormat       string
	sampleSize      int
	maxSubdocuments int
	workers         int
)

var rootCmd = &cobra.Command{
	Use:   "goschema",
	Short: "Schema inference for document collections",
	Long: `A CLI tool that infers an outline schema for collections of nested,
heterogeneous documents: every field reachable at every depth, the types
observed for it, their occurrence counts, and min/max values.

Features:
  - Bounded breadth-first flattening with per-document traversal budgets
  - Order-independent aggregation across the whole sample
  - MongoDB, MySQL JSON-column, and newline-delimited JSON file sources
  - Parallel analysis on a configurable worker pool`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "goschema.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Analysis overrides
	rootCmd.PersistentFlags().IntVar(&sampleSize, "sample-size", 0,
		"Override sample size (number of documents to analyze)")
	rootCmd.PersistentFlags().IntVar(&maxSubdocuments, "max-subdocs", 0,
		"Override per-document traversal budget")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0,
		"Override number of analysis workers")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel        string
	LogFormat       string
	SampleSize      int
	MaxSubdocuments int
	Workers         int
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:        logLevel,
		LogFormat:       logFormat,
		SampleSize:      sampleSize,
		MaxSubdocuments: maxSubdocuments,
		Workers:         workers,
	}
}
