package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/tramline"
	"github.com/theoremus-urban-solutions/tramline/config"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a network file or GTFS feed into SQLite or PostgreSQL",
	Example: `  tramline import --source gtfs --path gtfs.zip --sqlite network.db
  tramline import --path network.yml --database-url postgres://localhost/tramline`,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")
		path, _ := cmd.Flags().GetString("path")
		sqlitePath, _ := cmd.Flags().GetString("sqlite")
		databaseURL, _ := cmd.Flags().GetString("database-url")
		if databaseURL == "" {
			databaseURL = os.Getenv("TRAMLINE_DATABASE_URL")
		}
		if source != "file" && source != "gtfs" {
			return fmt.Errorf("import reads file or gtfs sources, got %q", source)
		}

		var colorByRoute map[string]string
		if cfg, err := loadConfig(); err == nil {
			colorByRoute = cfg.Network.ColorByRoute
		}

		n, err := tramline.LoadNetwork(cmd.Context(), config.NetworkConfig{
			Source:       source,
			Path:         path,
			ColorByRoute: colorByRoute,
		})
		if err != nil {
			return err
		}
		if err := tramline.ImportNetwork(cmd.Context(), n, sqlitePath, databaseURL); err != nil {
			return err
		}
		log.Printf("Imported %d stations and %d lines", n.NumStations(), len(n.Colors()))
		return nil
	},
}

func init() {
	importCmd.Flags().String("source", "file", "input kind: file|gtfs")
	importCmd.Flags().String("path", "", "network file, GTFS zip or GTFS URL")
	importCmd.Flags().String("sqlite", "", "target SQLite database file")
	importCmd.Flags().String("database-url", "", "target PostgreSQL URL (default $TRAMLINE_DATABASE_URL)")
	_ = importCmd.MarkFlagRequired("path")
}
