package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goschema/internal/config"
)

var listTargetsCmd = &cobra.Command{
	Use:   "list-targets",
	Short: "List all analysis targets defined in configuration",
	Long: `List-targets displays all analysis targets defined in the configuration
file along with their basic settings.

Example:
  goschema list-targets --config goschema.yaml`,
	RunE: runListTargets,
}

func init() {
	rootCmd.AddCommand(listTargetsCmd)
}

func runListTargets(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	targetNames := cfg.ListTargets()

	if len(targetNames) == 0 {
		cmd.Printf("No targets defined in %s\n", configFile)
		return nil
	}

	cmd.Printf("Targets defined in %s (source type: %s):\n\n", configFile, cfg.Source.Type)

	for i, name := range targetNames {
		target, err := cfg.GetTarget(name)
		if err != nil {
			return fmt.Errorf("failed to get target %q: %w", name, err)
		}

		// Target header
		cmd.Printf("%d. %s\n", i+1, name)
		switch cfg.Source.Type {
		case "mongo":
			cmd.Printf("   Collection:    %s\n", target.Collection)
		case "mysql":
			cmd.Printf("   Table:         %s\n", target.Table)
			cmd.Printf("   Column:        %s\n", target.Column)
		case "file":
			cmd.Printf("   Path:          %s\n", target.Path)
		}

		analysis := target.GetTargetAnalysis(cfg.Analysis)
		cmd.Printf("   Sample size:   %d\n", analysis.SampleSize)
		cmd.Printf("   Budget:        %d subdocuments\n", analysis.MaxSubdocuments)
		cmd.Printf("   Workers:       %d\n", analysis.Workers)
		cmd.Println()
	}

	return nil
}
