package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goschema/internal/config"
	"github.com/dbsmedya/goschema/internal/database"
	"github.com/dbsmedya/goschema/internal/source"
)

var listCollectionsCmd = &cobra.Command{
	Use:   "list-collections",
	Short: "List collections of the configured MongoDB database",
	Long: `List-collections connects to the configured MongoDB source and lists the
collections of its database with estimated document counts, as a starting
point for defining analysis targets.

Example:
  goschema list-collections --config goschema.yaml`,
	RunE: runListCollections,
}

func init() {
	rootCmd.AddCommand(listCollectionsCmd)
}

func runListCollections(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Source.Type != "mongo" {
		return fmt.Errorf("list-collections requires a mongo source, configured type is %q",
			cfg.Source.Type)
	}

	ctx := database.SetupSignalHandler()

	dbManager := database.NewManager(cfg)
	if err := dbManager.Connect(ctx); err != nil {
		return err
	}
	defer dbManager.Close()

	infos, err := source.ListCollections(ctx, dbManager.Mongo, cfg.Source.Mongo.Database)
	if err != nil {
		return err
	}

	if len(infos) == 0 {
		cmd.Printf("No collections in database %s\n", cfg.Source.Mongo.Database)
		return nil
	}

	cmd.Printf("Collections in %s:\n\n", cfg.Source.Mongo.Database)
	for _, info := range infos {
		cmd.Printf("  %-40s ~%d documents\n", info.Name, info.Count)
	}

	return nil
}
