package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goschema/internal/analyzer"
	"github.com/dbsmedya/goschema/internal/config"
	"github.com/dbsmedya/goschema/internal/database"
	"github.com/dbsmedya/goschema/internal/logger"
	"github.com/dbsmedya/goschema/internal/report"
	"github.com/dbsmedya/goschema/internal/source"
)

var (
	analyzeTarget string
	analyzeOutput string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a target and print its inferred schema",
	Long: `Analyze samples documents from the configured source, flattens each one
with a bounded breadth-first traversal, and merges the results into an
outline schema: every field at every depth with its observed types,
occurrence counts, and min/max values.

The analysis process follows these steps:
  1. Sample documents from the target (collection, table column, or file)
  2. Flatten each document on a worker pool, respecting the traversal budget
  3. Merge per-document records into (path, field, type) summaries
  4. Sort and render the final report

Example:
  goschema analyze --config goschema.yaml --target orders`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeTarget, "target", "t", "",
		"Target name from configuration file (required)")
	analyzeCmd.MarkFlagRequired("target")

	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "table",
		"Output format (table, json)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Get target config first (before applying overrides)
	target, err := cfg.GetTarget(analyzeTarget)
	if err != nil {
		return err
	}

	// Apply CLI overrides (to global config for logging, and get effective analysis config)
	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.SampleSize, overrides.MaxSubdocuments, overrides.Workers)
	analysis := cfg.ApplyTargetOverrides(analyzeTarget,
		overrides.SampleSize, overrides.MaxSubdocuments, overrides.Workers)

	switch analyzeOutput {
	case "table", "json":
	default:
		return fmt.Errorf("unknown output format %q (expected table or json)", analyzeOutput)
	}

	// Initialize logger
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()
	log = log.WithTarget(analyzeTarget)

	// Cancel the run at the next document boundary on SIGINT/SIGTERM;
	// the partial aggregate stays valid either way.
	ctx := database.SetupSignalHandler()

	// Connect to the configured source
	dbManager := database.NewManager(cfg)
	if err := dbManager.Connect(ctx); err != nil {
		return err
	}
	defer dbManager.Close()

	src, err := openSource(ctx, cfg, target, analysis.SampleSize, dbManager)
	if err != nil {
		return err
	}
	defer src.Close()

	result, runErr := analyzer.New(analysis, log).Run(ctx, src)

	renderer := report.NewRenderer(cmd.OutOrStdout(), analyzeOutput == "table")
	if analyzeOutput == "json" {
		err = renderer.RenderJSON(result.Entries, result.Stats)
	} else {
		err = renderer.RenderTable(result.Entries, result.Stats)
	}
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if runErr != nil {
		// The rendered report covers the documents processed before the
		// interruption; still report the run as failed.
		return runErr
	}
	if result.Stats.DocumentsFailed > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d document(s) could not be analyzed\n",
			result.Stats.DocumentsFailed)
	}
	return nil
}

// openSource builds the document source matching the configured source type.
func openSource(ctx context.Context, cfg *config.Config, target *config.TargetConfig, sampleSize int, dbManager *database.Manager) (analyzer.Source, error) {
	switch cfg.Source.Type {
	case "mongo":
		return source.NewMongo(ctx, dbManager.Mongo, cfg.Source.Mongo.Database,
			target.Collection, sampleSize)
	case "mysql":
		return source.NewMySQL(ctx, dbManager.MySQL, target.Table, target.Column, sampleSize)
	case "file":
		return source.NewFile(target.Path, sampleSize)
	default:
		return nil, fmt.Errorf("unknown source type %q", cfg.Source.Type)
	}
}
