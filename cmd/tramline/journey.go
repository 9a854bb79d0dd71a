package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/tramline"
	"github.com/theoremus-urban-solutions/tramline/formatter"
	"github.com/theoremus-urban-solutions/tramline/geo"
	"github.com/theoremus-urban-solutions/tramline/routing"
	"github.com/theoremus-urban-solutions/tramline/utils"
)

var journeyCmd = &cobra.Command{
	Use:   "journey",
	Short: "Compose one journey and print it",
	Example: `  tramline journey --from S1 --to S7
  tramline journey --lat 42.6977 --lng 23.3219 --to S7 --format geojson`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		format, _ := cmd.Flags().GetString("format")

		req := tramline.JourneyRequest{FromID: from, ToID: to}
		if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
			lat, _ := cmd.Flags().GetFloat64("lat")
			lng, _ := cmd.Flags().GetFloat64("lng")
			req.Location = &geo.Point{Lat: lat, Lng: lng}
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		n, err := tramline.LoadNetwork(cmd.Context(), cfg.Network)
		if err != nil {
			return err
		}
		svc := tramline.NewService(n, tramline.OptionsFromConfig(cfg))

		j, err := svc.Journey(req)
		if err != nil {
			if kind := routing.KindOf(err); kind != routing.KindUnknown {
				return fmt.Errorf("%s: %w", kind, err)
			}
			return err
		}
		return writeJourney(os.Stdout, j, format)
	},
}

func init() {
	journeyCmd.Flags().String("from", "", "origin station id")
	journeyCmd.Flags().String("to", "", "destination station id")
	journeyCmd.Flags().Float64("lat", 0, "current latitude (instead of --from)")
	journeyCmd.Flags().Float64("lng", 0, "current longitude (instead of --from)")
	journeyCmd.Flags().String("format", "text", "text|json|geojson")
	_ = journeyCmd.MarkFlagRequired("to")
}

func writeJourney(w io.Writer, j *routing.Journey, format string) error {
	rb := formatter.NewResponseBuilder()
	switch format {
	case "json":
		b, err := rb.BuildJourneyJSON(j)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "geojson":
		b, err := rb.BuildJSON(formatter.JourneyFeatureCollection(j))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "text":
		printJourney(w, j)
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func printJourney(w io.Writer, j *routing.Journey) {
	fmt.Fprintf(w, "%s -> %s: %s, %s\n", j.OriginID, j.DestinationID,
		utils.PresentableDistance(j.TotalDistanceKM), utils.PresentableDuration(j.TotalDurationMin))
	for _, leg := range j.Legs {
		label := "walk"
		if leg.Kind == routing.LegTransit {
			label = leg.Color.DisplayName() + " line"
		}
		fmt.Fprintf(w, "  %-12s %8s %10s\n", label,
			utils.PresentableDistance(leg.DistanceKM), utils.PresentableDuration(leg.DurationMin))
	}
	for _, warn := range j.Warnings {
		fmt.Fprintf(w, "  ! %s: %s\n", warn.Code, warn.Message)
	}
}
