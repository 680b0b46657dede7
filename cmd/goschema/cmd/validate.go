package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goschema/internal/config"
	"github.com/dbsmedya/goschema/internal/database"
	"github.com/dbsmedya/goschema/internal/logger"
)

var validateSkipConnect bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and check source connectivity",
	Long: `Validate checks the configuration file and verifies that the configured
document source is reachable.

Checks performed:
  - Configuration syntax and required fields
  - Per-target settings for the configured source type
  - Source connectivity (unless --skip-connect is set)

Example:
  goschema validate --config goschema.yaml`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateSkipConnect, "skip-connect", false,
		"Validate configuration only, without connecting to the source")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Apply CLI overrides
	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.SampleSize, overrides.MaxSubdocuments, overrides.Workers)

	// Initialize logger
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	log.Info("Starting validation checks...")

	cmd.Printf("\n=== Configuration Validation ===\n")
	cmd.Printf("Config file: %s\n", configFile)
	cmd.Printf("Source type: %s\n", cfg.Source.Type)
	cmd.Printf("Targets found: %d\n\n", len(cfg.Targets))

	if err := cfg.Validate(); err != nil {
		return err
	}

	for _, name := range cfg.ListTargets() {
		target, err := cfg.GetTarget(name)
		if err != nil {
			return err
		}
		analysis := target.GetTargetAnalysis(cfg.Analysis)
		cmd.Printf("--- Target: %s ---\n", name)
		switch cfg.Source.Type {
		case "mongo":
			cmd.Printf("Collection: %s\n", target.Collection)
		case "mysql":
			cmd.Printf("Table: %s, Column: %s\n", target.Table, target.Column)
		case "file":
			cmd.Printf("Path: %s\n", target.Path)
		}
		cmd.Printf("Effective settings: sample_size=%d max_subdocuments=%d workers=%d\n\n",
			analysis.SampleSize, analysis.MaxSubdocuments, analysis.Workers)
	}

	if validateSkipConnect {
		cmd.Println("=== Validation Complete (connectivity skipped) ===")
		return nil
	}

	ctx := database.SetupSignalHandler()

	// Connect to the configured source
	dbManager := database.NewManager(cfg)
	if err := dbManager.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to source: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.Ping(ctx); err != nil {
		return fmt.Errorf("source connection failed: %w", err)
	}

	cmd.Println("=== Validation Complete ===")
	cmd.Println("Configuration valid, source reachable")
	return nil
}
