package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/tramline"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the live vehicle feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, stop := tramline.SignalContext(cmd.Context())
		defer stop()

		n, err := tramline.LoadNetwork(ctx, cfg.Network)
		if err != nil {
			return err
		}
		svc := tramline.NewService(n, tramline.OptionsFromConfig(cfg))

		go func() {
			if err := tramline.RunFeed(ctx, cfg.Feed, cfg.Network.ColorByRoute, svc); err != nil {
				log.Printf("Vehicle feed stopped: %v", err)
			}
		}()
		return tramline.Serve(ctx, tramline.NewServer(svc, cfg.Server))
	},
}
